package container

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
)

// Resolver is the context of one top-level resolution. Factories receive
// it and use Inject / InjectKey to pull their own dependencies; those
// nested calls run under the lock the top-level Resolve already holds.
//
// A Resolver must not be retained after the factory returns.
type Resolver struct {
	table    *table
	logger   *slog.Logger
	maxDepth int

	// depth counts constructing resolutions (value, shared, exclusive) on
	// the current call chain.
	depth int
	// refs counts Ref hops on the current call chain. Ref hops never touch
	// depth; refs only exists so a cycle made purely of Refs fails instead
	// of exhausting the stack.
	refs int

	trace  *Trace
	cursor *TraceNode
}

func newResolver(c *Container) *Resolver {
	r := &Resolver{
		table:    c.table,
		logger:   c.logger,
		maxDepth: c.maxDepth,
	}
	if c.tracing {
		r.trace = &Trace{}
	}
	return r
}

// Depth returns the current constructing depth.
func (r *Resolver) Depth() int { return r.depth }

// MaxDepth returns the configured ceiling.
func (r *Resolver) MaxDepth() int { return r.maxDepth }

// Inject resolves T from inside a factory. The shape of T picks the
// ownership kind: Shared[U], Exclusive[U] and Ref[U] resolve U in that
// form, any other type resolves as a value.
//
//	container.Register[Mailer](c, func(r *container.Resolver) (Mailer, error) {
//	    tr, err := container.Inject[container.Shared[Transport]](r)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return &SMTPMailer{transport: tr}, nil
//	})
func Inject[T any](r *Resolver) (T, error) {
	return inject[T](r, "")
}

// InjectKey is Inject for a registration made with a custom id.
func InjectKey[T any](r *Resolver, id string) (T, error) {
	return inject[T](r, id)
}

func inject[T any](r *Resolver, id string) (T, error) {
	var zero T
	if d, ok := wrapperFor(reflect.TypeFor[T]()); ok {
		v, err := d.resolveDependency(r, id)
		if err != nil {
			return zero, err
		}
		w, ok := v.(T)
		if !ok {
			return zero, fmt.Errorf("container: %s resolved as %T", TypeName(reflect.TypeFor[T]()), v)
		}
		return w, nil
	}
	h, err := r.construct(NamedKey[T](id), KindValue)
	if err != nil {
		return zero, err
	}
	return *(h.(*T)), nil
}

// resolveType is inject for a type only known through reflection, used by
// constructor-based registrations.
func (r *Resolver) resolveType(t reflect.Type) (reflect.Value, error) {
	if d, ok := wrapperFor(t); ok {
		v, err := d.resolveDependency(r, "")
		if err != nil {
			return reflect.Value{}, err
		}
		rv := reflect.ValueOf(v)
		if rv.Type() != t {
			return reflect.Value{}, fmt.Errorf("container: %s resolved as %s", TypeName(t), rv.Type())
		}
		return rv, nil
	}
	h, err := r.construct(Key{Type: t}, KindValue)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(h).Elem(), nil
}

var containerPkg = reflect.TypeFor[Kind]().PkgPath()

// wrapperFor reports whether t is exactly Shared, Exclusive or Ref of some
// type. Pointers to a wrapper and structs embedding one resolve as plain
// values.
func wrapperFor(t reflect.Type) (dependency, bool) {
	if t == nil || t.Kind() != reflect.Struct || t.PkgPath() != containerPkg {
		return nil, false
	}
	d, ok := reflect.Zero(t).Interface().(dependency)
	return d, ok
}

// ── Recursion guard ───────────────────────────────────────────────────────────

// construct builds a new instance for key under the depth guard. depth is
// restored on every exit path.
func (r *Resolver) construct(key Key, kind Kind) (any, error) {
	if r.depth > r.maxDepth {
		return nil, &MaxRecursionError{MaxDepth: r.maxDepth, Key: key}
	}
	r.depth++
	defer func() { r.depth-- }()

	node := r.enterTrace(key, kind)
	h, err := r.invoke(key)
	r.leaveTrace(node, err)
	return h, err
}

// reference locates the value for key without depth bookkeeping.
func (r *Resolver) reference(key Key) (any, error) {
	if r.refs > r.maxDepth {
		return nil, &MaxRecursionError{MaxDepth: r.maxDepth, Key: key, Reference: true}
	}
	r.refs++
	defer func() { r.refs-- }()

	node := r.enterTrace(key, KindRef)
	h, err := r.invoke(key)
	r.leaveTrace(node, err)
	return h, err
}

func (r *Resolver) invoke(key Key) (any, error) {
	f, ok := r.table.lookup(key)
	if !ok {
		return nil, &NotRegisteredError{Key: key}
	}
	r.logger.Debug("container: resolving", "key", key.String(), "depth", r.depth)

	h, err := f(r)
	if err != nil {
		return nil, wrapFactoryError(key, err)
	}
	r.logger.Debug("container: constructed", "key", key.String(), "depth", r.depth)
	return h, nil
}

// wrapFactoryError passes container errors through untouched so they keep
// the key they were raised for, and wraps anything else with the key being built.
func wrapFactoryError(key Key, err error) error {
	var re *ResolveError
	if errors.Is(err, ErrNotRegistered) || errors.Is(err, ErrMaxRecursion) || errors.As(err, &re) {
		return err
	}
	return &ResolveError{Key: key, Cause: err}
}

// ── Tracing ───────────────────────────────────────────────────────────────────

func (r *Resolver) enterTrace(key Key, kind Kind) *TraceNode {
	if r.trace == nil {
		return nil
	}
	node := &TraceNode{Key: key, Kind: kind, Depth: r.depth}
	if r.cursor == nil {
		r.trace.Root = node
	} else {
		r.cursor.Children = append(r.cursor.Children, node)
	}
	node.parent = r.cursor
	r.cursor = node
	return node
}

func (r *Resolver) leaveTrace(node *TraceNode, err error) {
	if node == nil {
		return
	}
	node.Err = err
	r.cursor = node.parent
}

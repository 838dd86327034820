package container

import (
	"fmt"
	"log/slog"
	"sync"
)

// DefaultMaxDepth is the resolution depth ceiling used by New.
const DefaultMaxDepth = 50

// ── Container ─────────────────────────────────────────────────────────────────

// Container maps type keys to constructors and builds fully wired instance
// graphs on demand. It never caches instances: every Resolve, and every
// nested dependency inside it, gets a freshly built value.
//
// A single mutex guards both the registration table and the resolution
// context. Resolve holds it for the whole top-level call; nested
// resolutions made through the *Resolver handed to factories run under
// that same lock. Calling Resolve on the same container from inside a
// factory therefore deadlocks.
type Container struct {
	mu sync.Mutex

	table    *table
	maxDepth int
	logger   *slog.Logger
	tracing  bool

	// last recorded trace, only kept when tracing is on
	last *Trace
}

// Option configures a Container.
type Option func(*Container)

// WithMaxDepth sets the resolution depth ceiling. Values below zero are
// treated as zero.
func WithMaxDepth(n int) Option {
	return func(c *Container) {
		if n < 0 {
			n = 0
		}
		c.maxDepth = n
	}
}

// WithLogger routes registration and resolution events to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracing records the resolution graph of each Resolve call, readable
// through LastTrace.
func WithTracing(on bool) Option {
	return func(c *Container) { c.tracing = on }
}

// New creates an empty container.
//
//	c := container.New()                            // max depth 50
//	c := container.New(container.WithMaxDepth(5))
func New(opts ...Option) *Container {
	c := &Container{
		table:    newTable(),
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxDepth returns the resolution depth ceiling.
func (c *Container) MaxDepth() int { return c.maxDepth }

// ── Registration ──────────────────────────────────────────────────────────────

// Register binds I's natural key to fn. The first registration for a key
// wins: a later one is ignored and Register returns false.
//
//	container.Register[Clock](c, func(r *container.Resolver) (Clock, error) {
//	    return systemClock{}, nil
//	})
func Register[I any](c *Container, fn func(r *Resolver) (I, error)) bool {
	return RegisterKey[I](c, "", fn)
}

// RegisterKey binds I qualified by id, so the same interface can be
// registered several times with different constructors.
func RegisterKey[I any](c *Container, id string, fn func(r *Resolver) (I, error)) bool {
	return c.register(NamedKey[I](id), func(r *Resolver) (any, error) {
		v, err := fn(r)
		if err != nil {
			return nil, err
		}
		h := new(I)
		*h = v
		return h, nil
	})
}

// RegisterNew binds T to a constructor returning T's zero value. It is the
// registration for plain types with no dependencies.
func RegisterNew[T any](c *Container) bool {
	return c.register(KeyOf[T](), func(*Resolver) (any, error) {
		return new(T), nil
	})
}

func (c *Container) register(key Key, f factory) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.table.insert(key, f) {
		c.logger.Debug("container: duplicate registration ignored", "key", key.String())
		return false
	}
	c.logger.Debug("container: registered", "key", key.String())
	return true
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Resolve builds a T. Shared[U], Exclusive[U] and Ref[U] request U in that
// ownership form; any other T is built and returned by value.
//
//	svc, err := container.Resolve[Greeter](c)
//	sh, err := container.Resolve[container.Shared[Greeter]](c)
func Resolve[T any](c *Container) (T, error) {
	return ResolveKey[T](c, "")
}

// ResolveKey resolves a registration made with a custom id.
func ResolveKey[T any](c *Container, id string) (T, error) {
	var out T
	err := c.resolve(func(r *Resolver) error {
		v, err := inject[T](r, id)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// MustResolve is Resolve for assembly code that cannot continue without
// the instance. It panics on error.
func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(fmt.Sprintf("container: MustResolve[%T]: %v", *new(T), err))
	}
	return v
}

// resolve runs fn with a fresh resolution context under the container lock.
func (c *Container) resolve(fn func(r *Resolver) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := newResolver(c)
	err := fn(r)
	if r.trace != nil {
		r.trace.Err = err
		c.last = r.trace
	}
	if err != nil {
		c.logger.Debug("container: resolve failed", "error", err)
	}
	return err
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound reports whether key has a registration.
func (c *Container) Bound(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.table.lookup(key)
	return ok
}

// Keys returns all registered keys, sorted by their string form.
func (c *Container) Keys() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.keys()
}

// Len returns the number of registrations.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.len()
}

// Flush removes every registration. It is the only operation that drops
// entries from the table.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table.clear()
	c.last = nil
}

// LastTrace returns the resolution graph of the most recent Resolve call,
// or nil when tracing is off or nothing was resolved yet.
func (c *Container) LastTrace() *Trace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

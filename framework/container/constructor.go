package container

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// RegisterType binds I to a constructor function. Each constructor
// parameter is resolved left to right, in the ownership form its type
// asks for, then the constructor is called:
//
//	container.RegisterNew[Config](c)
//	container.RegisterType[Store](c, NewSQLStore)        // func(Config, container.Ref[Config]) *SQLStore
//	container.RegisterType[Service](c, NewService)       // func(container.Shared[Store]) (*Service, error)
//
// The constructor must return a type assignable to I, optionally followed
// by an error. Violations are reported here, at registration time, as a
// *ConstructorError; a duplicate key is not an error and is ignored.
func RegisterType[I any](c *Container, ctor any) error {
	return RegisterTypeKey[I](c, "", ctor)
}

// RegisterTypeKey is RegisterType under a custom id.
func RegisterTypeKey[I any](c *Container, id string, ctor any) error {
	key := NamedKey[I](id)
	plan, err := newConstructor(key, ctor)
	if err != nil {
		return err
	}
	c.register(key, plan.build)
	return nil
}

// constructor is a validated constructor function for one key.
type constructor struct {
	key        Key
	fn         reflect.Value
	params     []reflect.Type
	returnsErr bool
}

func newConstructor(key Key, ctor any) (*constructor, error) {
	fail := func(format string, args ...any) (*constructor, error) {
		return nil, &ConstructorError{Key: key, Reason: fmt.Sprintf(format, args...)}
	}

	fv := reflect.ValueOf(ctor)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return fail("expected a function, got %T", ctor)
	}
	if fv.IsNil() {
		return fail("constructor is nil")
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return fail("variadic constructors are not supported")
	}

	returnsErr := false
	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return fail("second result must be error, got %s", ft.Out(1))
		}
		returnsErr = true
	default:
		return fail("must return the concrete type, optionally followed by error")
	}

	out := ft.Out(0)
	if !out.AssignableTo(key.Type) {
		return fail("%s does not satisfy %s", TypeName(out), TypeName(key.Type))
	}

	params := make([]reflect.Type, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}
	return &constructor{key: key, fn: fv, params: params, returnsErr: returnsErr}, nil
}

// build is the factory stored in the table for this constructor.
func (p *constructor) build(r *Resolver) (any, error) {
	args := make([]reflect.Value, len(p.params))
	for i, t := range p.params {
		v, err := r.resolveType(t)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	out := p.fn.Call(args)
	if p.returnsErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}

	h := reflect.New(p.key.Type)
	h.Elem().Set(out[0])
	return h.Interface(), nil
}

// Package factory provides a strict named factory registry: a string to
// constructor map where registering a name twice is an error.
package factory

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrDuplicate is returned when a name is registered twice.
	ErrDuplicate = errors.New("factory: name already registered")

	// ErrUnknown is returned when Create is called with an unknown name.
	ErrUnknown = errors.New("factory: unknown name")
)

// DuplicateError reports a second registration for Name.
type DuplicateError struct {
	Registry string
	Name     string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("factory %s: %q already registered", e.Registry, e.Name)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// UnknownError reports a Create for a name nobody registered.
type UnknownError struct {
	Registry string
	Name     string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("factory %s: unknown type under name %q", e.Registry, e.Name)
}

func (e *UnknownError) Is(target error) bool { return target == ErrUnknown }

// MakeFunc builds a T from caller supplied arguments.
type MakeFunc[T any] func(args ...any) (T, error)

// Registry maps names to MakeFuncs producing T. Each Registry owns its own
// table; there is no process-wide state.
type Registry[T any] struct {
	name  string
	mu    sync.RWMutex
	makes map[string]MakeFunc[T]
}

// New creates an empty registry. name only appears in error messages.
func New[T any](name string) *Registry[T] {
	return &Registry[T]{name: name, makes: make(map[string]MakeFunc[T])}
}

// Register stores fn under name. A second registration for the same name
// fails with *DuplicateError and leaves the first in place.
func (r *Registry[T]) Register(name string, fn MakeFunc[T]) error {
	if fn == nil {
		return fmt.Errorf("factory %s: nil constructor for %q", r.name, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.makes[name]; exists {
		return &DuplicateError{Registry: r.name, Name: name}
	}
	r.makes[name] = fn
	return nil
}

// MustRegister is Register for package init code. It panics on error.
func (r *Registry[T]) MustRegister(name string, fn MakeFunc[T]) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Create builds the T registered under name.
func (r *Registry[T]) Create(name string, args ...any) (T, error) {
	r.mu.RLock()
	fn, ok := r.makes[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, &UnknownError{Registry: r.name, Name: name}
	}
	return fn(args...)
}

// Registered returns the number of registered names.
func (r *Registry[T]) Registered() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.makes)
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.makes))
	for name := range r.makes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

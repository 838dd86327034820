package container

import "sync/atomic"

// Kind is the ownership form a dependency is delivered in.
type Kind int

const (
	// KindValue delivers an owned copy of the registered type.
	KindValue Kind = iota
	// KindRef delivers a non-owning Ref to the built value.
	KindRef
	// KindShared delivers a reference-counted Shared handle.
	KindShared
	// KindExclusive delivers a sole-owner Exclusive handle.
	KindExclusive
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindRef:
		return "ref"
	case KindShared:
		return "shared"
	case KindExclusive:
		return "exclusive"
	}
	return "unknown"
}

// dependency is implemented by the ownership wrappers. The zero value of a
// wrapper type knows how to resolve itself, so the requested type alone
// selects the resolution path.
type dependency interface {
	resolveDependency(r *Resolver, id string) (any, error)
}

// ── Shared ────────────────────────────────────────────────────────────────────

// Shared is a reference-counted handle. Every resolution of Shared[T]
// builds a new T; copies made with Clone share it.
type Shared[T any] struct {
	box *sharedBox[T]
}

type sharedBox[T any] struct {
	value atomic.Pointer[T]
	refs  atomic.Int64
}

func newShared[T any](p *T) Shared[T] {
	b := &sharedBox[T]{}
	b.value.Store(p)
	b.refs.Store(1)
	return Shared[T]{box: b}
}

func (Shared[T]) resolveDependency(r *Resolver, id string) (any, error) {
	h, err := r.construct(NamedKey[T](id), KindShared)
	if err != nil {
		return nil, err
	}
	return newShared(h.(*T)), nil
}

// Get returns the shared value, or T's zero value once released.
func (s Shared[T]) Get() T {
	var zero T
	if p := s.Ptr(); p != nil {
		return *p
	}
	return zero
}

// Ptr returns the shared pointer, nil once the last reference is released.
func (s Shared[T]) Ptr() *T {
	if s.box == nil {
		return nil
	}
	return s.box.value.Load()
}

// Clone adds a reference and returns a handle to the same value.
func (s Shared[T]) Clone() Shared[T] {
	if s.box != nil {
		s.box.refs.Add(1)
	}
	return s
}

// Release drops one reference and returns how many remain. The value is
// dropped when the count reaches zero.
func (s Shared[T]) Release() int64 {
	if s.box == nil {
		return 0
	}
	n := s.box.refs.Add(-1)
	if n <= 0 {
		s.box.value.Store(nil)
		s.box.refs.Store(0)
		return 0
	}
	return n
}

// Refs returns the current reference count.
func (s Shared[T]) Refs() int64 {
	if s.box == nil {
		return 0
	}
	return s.box.refs.Load()
}

// Valid reports whether the handle still holds a value.
func (s Shared[T]) Valid() bool { return s.Ptr() != nil }

// ── Exclusive ─────────────────────────────────────────────────────────────────

// Exclusive is a sole-owner handle. Every resolution builds a new T;
// ownership moves with Take.
type Exclusive[T any] struct {
	cell *exclusiveCell[T]
}

type exclusiveCell[T any] struct {
	value *T
}

func newExclusive[T any](p *T) Exclusive[T] {
	return Exclusive[T]{cell: &exclusiveCell[T]{value: p}}
}

func (Exclusive[T]) resolveDependency(r *Resolver, id string) (any, error) {
	h, err := r.construct(NamedKey[T](id), KindExclusive)
	if err != nil {
		return nil, err
	}
	return newExclusive(h.(*T)), nil
}

// Get returns the owned value, or T's zero value when empty.
func (e Exclusive[T]) Get() T {
	var zero T
	if p := e.Ptr(); p != nil {
		return *p
	}
	return zero
}

// Ptr returns the owned pointer, nil when empty.
func (e Exclusive[T]) Ptr() *T {
	if e.cell == nil {
		return nil
	}
	return e.cell.value
}

// Take moves ownership into a new handle and leaves e empty.
func (e Exclusive[T]) Take() Exclusive[T] {
	p := e.Ptr()
	if e.cell != nil {
		e.cell.value = nil
	}
	return newExclusive(p)
}

// Release drops the owned value.
func (e Exclusive[T]) Release() {
	if e.cell != nil {
		e.cell.value = nil
	}
}

// Valid reports whether the handle still owns a value.
func (e Exclusive[T]) Valid() bool { return e.Ptr() != nil }

// ── Ref ───────────────────────────────────────────────────────────────────────

// Ref is a non-owning view of a built value.
type Ref[T any] struct {
	ptr *T
}

// RefTo wraps an existing pointer.
func RefTo[T any](p *T) Ref[T] { return Ref[T]{ptr: p} }

func (Ref[T]) resolveDependency(r *Resolver, id string) (any, error) {
	h, err := r.reference(NamedKey[T](id))
	if err != nil {
		return nil, err
	}
	return Ref[T]{ptr: h.(*T)}, nil
}

// Get returns the referenced value, or T's zero value for a nil Ref.
func (r Ref[T]) Get() T {
	var zero T
	if r.ptr == nil {
		return zero
	}
	return *r.ptr
}

// Ptr returns the underlying pointer.
func (r Ref[T]) Ptr() *T { return r.ptr }

// IsNil reports whether the Ref points nowhere.
func (r Ref[T]) IsNil() bool { return r.ptr == nil }

package container

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below match them through errors.Is.
var (
	// ErrNotRegistered is returned when no factory exists for a key.
	ErrNotRegistered = errors.New("container: type not registered")

	// ErrMaxRecursion is returned when the resolution depth ceiling is
	// crossed, which almost always means a dependency cycle.
	ErrMaxRecursion = errors.New("container: max recursion depth reached")

	// ErrInvalidConstructor is returned by RegisterType when the
	// constructor cannot build the requested interface.
	ErrInvalidConstructor = errors.New("container: invalid constructor")
)

// NotRegisteredError reports a lookup miss.
type NotRegisteredError struct {
	Key Key
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("container: no registration for [%s]", e.Key)
}

func (e *NotRegisteredError) Is(target error) bool {
	return target == ErrNotRegistered
}

// MaxRecursionError reports that resolving Key went deeper than MaxDepth.
// Reference is set when the ceiling was hit by chained Ref hops, which are
// counted separately from constructing resolutions.
type MaxRecursionError struct {
	MaxDepth  int
	Key       Key
	Reference bool
}

func (e *MaxRecursionError) Error() string {
	kind := "resolution"
	if e.Reference {
		kind = "reference"
	}
	return fmt.Sprintf("container: max %s depth reached (%d) while resolving [%s]; possible dependency cycle",
		kind, e.MaxDepth, e.Key)
}

func (e *MaxRecursionError) Is(target error) bool {
	return target == ErrMaxRecursion
}

// ConstructorError reports a constructor rejected at registration time.
type ConstructorError struct {
	Key    Key
	Reason string
}

func (e *ConstructorError) Error() string {
	return fmt.Sprintf("container: constructor for [%s]: %s", e.Key, e.Reason)
}

func (e *ConstructorError) Is(target error) bool {
	return target == ErrInvalidConstructor
}

// ResolveError wraps an error returned by a user factory or constructor.
type ResolveError struct {
	Key   Key
	Cause error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("container: building [%s]: %v", e.Key, e.Cause)
}

func (e *ResolveError) Unwrap() error {
	return e.Cause
}

// IsNotRegistered reports whether err is, or wraps, ErrNotRegistered.
func IsNotRegistered(err error) bool {
	return errors.Is(err, ErrNotRegistered)
}

// IsMaxRecursion reports whether err is, or wraps, ErrMaxRecursion.
func IsMaxRecursion(err error) bool {
	return errors.Is(err, ErrMaxRecursion)
}

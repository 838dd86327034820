package container

import (
	"fmt"
	"reflect"
)

// Key identifies a registration: the registered type plus an optional
// custom id, so one interface can be registered more than once.
type Key struct {
	Type reflect.Type
	ID   string
}

// KeyOf returns the natural key of T.
//
//	container.KeyOf[Notifier]()  // "example.com/app.Notifier"
func KeyOf[T any]() Key {
	return Key{Type: reflect.TypeFor[T]()}
}

// NamedKey returns T's key qualified by id.
func NamedKey[T any](id string) Key {
	return Key{Type: reflect.TypeFor[T](), ID: id}
}

// String renders the key for logs and error messages.
func (k Key) String() string {
	name := TypeName(k.Type)
	if k.ID == "" {
		return name
	}
	return fmt.Sprintf("%s[%s]", name, k.ID)
}

// TypeName returns the package-qualified name of t. Unnamed types
// (pointers, slices, maps...) fall back to t.String().
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

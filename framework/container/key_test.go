package container_test

import (
	"testing"

	"github.com/km-arc/go-ioc/framework/container"
)

func TestKeyOf_StableAcrossCallSites(t *testing.T) {
	if container.KeyOf[InterfaceA]() != container.KeyOf[InterfaceA]() {
		t.Error("KeyOf should be identical for the same type")
	}
	if container.KeyOf[InterfaceA]() == container.KeyOf[InterfaceB]() {
		t.Error("distinct types must not share a key")
	}
	if container.KeyOf[InterfaceA]() == container.NamedKey[InterfaceA]("x") {
		t.Error("a custom id must produce a distinct key")
	}
}

func TestKeyOf_LocalTypesDoNotCollide(t *testing.T) {
	first := func() container.Key {
		type local struct{}
		return container.KeyOf[local]()
	}()
	second := func() container.Key {
		type local struct{}
		return container.KeyOf[local]()
	}()
	if first == second {
		t.Error("function-local types with the same name must not collide")
	}
}

func TestKey_String(t *testing.T) {
	tests := []struct {
		key  container.Key
		want string
	}{
		{container.KeyOf[C](), "github.com/km-arc/go-ioc/framework/container_test.C"},
		{container.NamedKey[C]("primary"), "github.com/km-arc/go-ioc/framework/container_test.C[primary]"},
		{container.KeyOf[*C](), "*container_test.C"},
		{container.Key{}, "<nil>"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

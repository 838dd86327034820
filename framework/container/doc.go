// Package container provides a type-directed dependency-injection container.
//
// # Overview
//
// A Container maps type keys to constructors. Resolving a type walks the
// constructor-dependency graph recursively and returns a fully wired
// instance tree. The container is a graph builder, not an instance cache:
// every Resolve, and every dependency reached inside it, gets a freshly
// built value.
//
// # Keys
//
// A Key is the registered type (reflect.TypeFor[T]) plus an optional custom
// id. The same type always yields the same key, and distinct types never
// collide, even function-local types that share a name.
//
// # Registering
//
//	c := container.New()                           // max depth 50
//
//	// Plain type, no dependencies
//	container.RegisterNew[Config](c)
//
//	// Constructor function; parameters are resolved left to right
//	container.RegisterType[Store](c, NewSQLStore)   // func(Config, container.Ref[Config]) *SQLStore
//
//	// Explicit factory
//	container.Register[Clock](c, func(r *container.Resolver) (Clock, error) {
//	    return systemClock{}, nil
//	})
//
//	// Same interface, second recipe under a custom id
//	container.RegisterKey[Store](c, "readonly", func(r *container.Resolver) (Store, error) { ... })
//
// The first registration for a key wins. Registering the key again is
// silently ignored; the Register helpers report it by returning false.
//
// # Ownership kinds
//
// The shape of the requested type selects how a dependency is delivered:
//
//	T               value: an owned copy of the built T
//	Ref[T]          non-owning view of a built T
//	Shared[T]       reference-counted handle to a new T
//	Exclusive[T]    sole-owner handle to a new T
//
// The same applies to constructor parameters and to Inject calls made from
// factories.
//
// # Resolving
//
//	svc, err := container.Resolve[Service](c)
//	ro, err := container.ResolveKey[Store](c, "readonly")
//
// Failures are returned, never panicked: *NotRegisteredError (matches
// ErrNotRegistered) and *MaxRecursionError (matches ErrMaxRecursion). Factory
// errors come back as *ResolveError wrapping the cause.
//
// # Recursion guard
//
// Value, Shared and Exclusive resolutions count toward a per-call depth; once
// it exceeds the ceiling the whole Resolve fails with MaxRecursionError.
// Ref hops do not count toward that depth. They are bounded by their own
// counter with the same ceiling, so a cycle made purely of Refs also fails
// cleanly.
//
// # Service Providers
//
//	type StoreProvider struct{ container.BaseProvider }
//
//	func (p *StoreProvider) Register(c *container.Container) error {
//	    return container.RegisterType[Store](c, NewSQLStore)
//	}
//
//	registry := container.NewProviderRegistry(c)
//	_ = registry.Register(&StoreProvider{})
//	_ = registry.Boot()
package container

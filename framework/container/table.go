package container

import "sort"

// factory builds a raw handle: a *T pointing at a new value of the
// registered type T.
type factory func(r *Resolver) (any, error)

// table maps keys to factories. It has no lock of its own; the owning
// Container serialises access.
type table struct {
	entries map[Key]factory
}

func newTable() *table {
	return &table{entries: make(map[Key]factory)}
}

// insert stores f under key unless key is already present. The first
// registration wins; later ones are dropped and insert returns false.
func (t *table) insert(key Key, f factory) bool {
	if _, exists := t.entries[key]; exists {
		return false
	}
	t.entries[key] = f
	return true
}

func (t *table) lookup(key Key) (factory, bool) {
	f, ok := t.entries[key]
	return f, ok
}

func (t *table) len() int { return len(t.entries) }

// keys returns every registered key, sorted by String().
func (t *table) keys() []Key {
	out := make([]Key, 0, len(t.entries))
	for k := range t.entries {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (t *table) clear() {
	t.entries = make(map[Key]factory)
}

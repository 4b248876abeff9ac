package itemadapter

import (
	"iter"
	"maps"
	"slices"
)

// Meta is a read-only view of the metadata declared for one field.
// The zero value is the empty mapping.
type Meta struct {
	m map[string]any
}

// FieldTable is a per-field metadata side table, keyed by field name.
// Record types return one from ItemFields.
type FieldTable map[string]map[string]any

// NewMeta returns a Meta holding a copy of m.
func NewMeta(m map[string]any) Meta {
	if len(m) == 0 {
		return Meta{}
	}
	return Meta{m: maps.Clone(m)}
}

// Get returns the value stored under key.
func (m Meta) Get(key string) (any, bool) {
	v, ok := m.m[key]
	return v, ok
}

// Len returns the number of entries.
func (m Meta) Len() int {
	return len(m.m)
}

// Empty reports whether the mapping has no entries.
func (m Meta) Empty() bool {
	return len(m.m) == 0
}

// Keys returns the entry keys in sorted order.
func (m Meta) Keys() []string {
	return slices.Sorted(maps.Keys(m.m))
}

// All yields entries in key order.
func (m Meta) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range m.Keys() {
			if !yield(k, m.m[k]) {
				return
			}
		}
	}
}

// Map returns a mutable copy of the entries.
func (m Meta) Map() map[string]any {
	out := make(map[string]any, len(m.m))
	maps.Copy(out, m.m)
	return out
}

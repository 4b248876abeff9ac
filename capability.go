package itemadapter

import (
	"iter"
	"reflect"
)

// Strategy is the capability contract every item-handling strategy satisfies.
// A Strategy knows how to recognize one shape of container and how to touch
// its fields. Strategies are stateless with respect to any wrapped item and
// must be safe to share across adapters.
//
// Per-item methods receive the item as held by an Adapter: maps as-is,
// structs and slices as a pointer. On failure they must leave the item
// unmodified.
type Strategy interface {
	// Name identifies the strategy in configuration and events.
	Name() string

	// IsItemType reports whether values of t can be adapted.
	IsItemType(t reflect.Type) bool

	// IsItem reports whether v can be adapted. Most strategies answer with
	// MatchType; structural detection may override it.
	IsItem(v any) bool

	// FieldMeta returns the metadata declared for field on type t.
	// The zero Meta is returned when the strategy has no metadata support
	// or the field declares none.
	FieldMeta(t reflect.Type, field string) (Meta, error)

	// Get returns the value held by field, or ErrFieldNotFound.
	Get(item any, field string) (any, error)

	// Set writes value into field in place.
	Set(item any, field string, value any) error

	// Delete removes or resets field, or returns ErrFieldNotFound.
	Delete(item any, field string) error

	// Keys yields the names of the fields the item currently holds.
	// The sequence is finite and may be ranged over more than once.
	Keys(item any) iter.Seq[string]

	// Len returns the number of fields Keys yields.
	Len(item any) int

	// FieldNames returns every declared field name, populated or not.
	FieldNames(item any) []string
}

// MatchType is the default instance test: v is an item when its dynamic
// type passes s.IsItemType.
func MatchType(s Strategy, v any) bool {
	if v == nil {
		return false
	}
	return s.IsItemType(reflect.TypeOf(v))
}

// typeName returns a short type name for messages and events.
func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return typeNameOf(reflect.TypeOf(v))
}

// typeNameOf returns the name of t with pointers stripped.
func typeNameOf(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// structType returns the struct type behind t, following one pointer.
func structType(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	return t, true
}

// keysOf adapts a slice of names into a restartable sequence.
func keysOf(names func() []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range names() {
			if !yield(name) {
				return
			}
		}
	}
}

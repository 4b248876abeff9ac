// Package itemadapter provides uniform mapping access over heterogeneous item types.
//
// Code that moves data around (pipelines, exporters, middleware) often holds
// values whose concrete shape it does not control: a map from a decoder, a
// struct declared by another package, an ordered BSON document. An Adapter
// gives all of them the same interface: get, set, delete, iterate, count,
// field metadata, and conversion into plain nested maps.
//
// # Strategies
//
// Each container shape is handled by a Strategy. The built-in strategies are:
//
//   - Mapping: maps with string keys (map[string]any, bson.M, named maps)
//   - Records: struct types implementing Record; metadata comes from the
//     ItemFields side table
//   - Annotated: struct types with item struct tags; metadata is the tag body
//
// Further strategies (see the bson subpackage) satisfy the same interface and
// are added to a Registry.
//
// # Resolution
//
// A Registry holds strategies in order and resolves a value or type to the
// first strategy that accepts it. Registration order is the only tie-break:
//
//	reg := itemadapter.Default()
//	reg.PushFront(bson.Strategy()) // wins over every built-in
//
// The default order (mapping, record, annotated) is configuration; see Config.
//
// # Basic Usage
//
//	type Price struct {
//	    Value    int    `json:"value" item:"serializer: str, limit: 100"`
//	    Currency string `json:"currency" item:""`
//	}
//
//	type Product struct {
//	    Name  string `json:"name" item:""`
//	    Price *Price `json:"price" item:""`
//	}
//
//	p := &Product{Name: "Stuff", Price: &Price{Value: 42, Currency: "UYU"}}
//	a, _ := itemadapter.New(p)
//
//	name, _ := a.Get("name")       // "Stuff"
//	_ = a.Set("name", "Things")    // p.Name is now "Things"
//	m, _ := a.AsDict()             // {"name": "Things", "price": {"value": 42, "currency": "UYU"}}
//	meta, _ := itemadapter.FieldMetaFromType(reflect.TypeOf(Price{}), "value")
//
// # Records and populated fields
//
// Struct records have a closed field set: writing an undeclared field fails
// with ErrUnknownField. A field whose type can be nil (pointer, interface,
// map, slice, func, chan) is populated only while non-nil; unpopulated fields
// are skipped by Keys and Len, and reading them fails with ErrFieldNotFound.
// FieldNames always lists every declared field.
//
// # Events
//
// Registry mutations and failed adaptations are emitted as capitan signals
// (see signals.go). Errors are always returned to the caller as well.
package itemadapter

import (
	"reflect"
)

// IsItem reports whether the default registry can adapt v.
// A value no strategy accepts yields false, never an error.
func IsItem(v any) bool {
	return defaultRegistry.IsItem(v)
}

// IsItemType reports whether the default registry can adapt values of t.
func IsItemType(t reflect.Type) bool {
	return defaultRegistry.IsItemType(t)
}

// FieldMetaFromType returns the metadata declared for field on t.
// It fails with ErrUnsupportedType when no strategy accepts t.
func FieldMetaFromType(t reflect.Type, field string) (Meta, error) {
	return defaultRegistry.FieldMeta(t, field)
}

// FieldMetaFor is the generic form of FieldMetaFromType. Struct types are
// prepared first; see Prepare.
func FieldMetaFor[T any](field string) (Meta, error) {
	Prepare[T]()
	return defaultRegistry.FieldMeta(reflect.TypeFor[T](), field)
}

// Prepare scans the struct type T, and the types it references within the
// same module, with sentinel. Record strategies then build T's field set from
// sentinel's metadata instead of extracting it on first use. Non-struct types
// are ignored.
func Prepare[T any]() {
	prepareType[T]()
}

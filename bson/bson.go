// Package bson provides an item strategy for ordered BSON documents.
//
// The strategy is not registered by default. Add it to a registry to adapt
// bson.D values:
//
//	itemadapter.Default().PushFront(bson.Strategy())
//
//	doc := bson.D{{Key: "name", Value: "Stuff"}}
//	a, _ := itemadapter.New(&doc)
//	_ = a.Set("price", 42) // appended, document order kept
//
// bson.M needs no extra strategy: it is a string-keyed map and the built-in
// mapping strategy already handles it.
package bson

import (
	"iter"
	"reflect"
	"slices"

	"github.com/zoobzio/itemadapter"
	"go.mongodb.org/mongo-driver/bson"
)

// typeName is the item type reported in errors.
const typeName = "bson.D"

var (
	docType     = reflect.TypeFor[bson.D]()
	docStrategy = &documentStrategy{name: "bson.document"}
)

// Strategy returns the strategy for bson.D and *bson.D.
// Field names are element keys in document order; there is no metadata support.
func Strategy() itemadapter.Strategy {
	return docStrategy
}

// documentStrategy implements itemadapter.Strategy over bson.D.
type documentStrategy struct {
	name string
}

var _ itemadapter.Strategy = (*documentStrategy)(nil)

func (s *documentStrategy) Name() string { return s.name }

func (s *documentStrategy) IsItemType(t reflect.Type) bool {
	return t == docType || t == reflect.PointerTo(docType)
}

func (s *documentStrategy) IsItem(v any) bool {
	if d, ok := v.(*bson.D); ok {
		return d != nil
	}
	return itemadapter.MatchType(s, v)
}

func (s *documentStrategy) FieldMeta(reflect.Type, string) (itemadapter.Meta, error) {
	return itemadapter.Meta{}, nil
}

func (s *documentStrategy) Get(item any, field string) (any, error) {
	d := document(item)
	if i := index(d, field); i >= 0 {
		return d[i].Value, nil
	}
	return nil, fieldError(itemadapter.ErrFieldNotFound, field)
}

// Set replaces the first element named field, or appends a new one.
func (s *documentStrategy) Set(item any, field string, value any) error {
	d, ok := item.(*bson.D)
	if !ok || d == nil {
		return fieldError(itemadapter.ErrNilItem, field)
	}
	if i := index(*d, field); i >= 0 {
		(*d)[i].Value = value
		return nil
	}
	*d = append(*d, bson.E{Key: field, Value: value})
	return nil
}

// Delete removes the first element named field, keeping document order.
func (s *documentStrategy) Delete(item any, field string) error {
	d, ok := item.(*bson.D)
	if !ok || d == nil {
		return fieldError(itemadapter.ErrNilItem, field)
	}
	i := index(*d, field)
	if i < 0 {
		return fieldError(itemadapter.ErrFieldNotFound, field)
	}
	*d = slices.Delete(*d, i, i+1)
	return nil
}

func (s *documentStrategy) Keys(item any) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range document(item) {
			if !yield(e.Key) {
				return
			}
		}
	}
}

func (s *documentStrategy) Len(item any) int {
	return len(document(item))
}

func (s *documentStrategy) FieldNames(item any) []string {
	d := document(item)
	names := make([]string, len(d))
	for i, e := range d {
		names[i] = e.Key
	}
	return names
}

// document returns the elements behind item.
func document(item any) bson.D {
	switch d := item.(type) {
	case *bson.D:
		if d == nil {
			return nil
		}
		return *d
	case bson.D:
		return d
	default:
		return nil
	}
}

func index(d bson.D, field string) int {
	return slices.IndexFunc(d, func(e bson.E) bool { return e.Key == field })
}

func fieldError(sentinel error, field string) error {
	return &itemadapter.FieldError{
		Err:   sentinel,
		Type:  typeName,
		Field: field,
	}
}

package itemadapter

import (
	"iter"
	"reflect"
	"slices"
)

var mappingStrategy = &mapStrategy{name: "mapping"}

// Mapping returns the strategy for string-keyed maps.
// Field names are map keys; there is no metadata support.
func Mapping() Strategy {
	return mappingStrategy
}

// mapStrategy adapts any map whose key kind is string.
type mapStrategy struct {
	name string
}

var _ Strategy = (*mapStrategy)(nil)

func (s *mapStrategy) Name() string { return s.name }

func (s *mapStrategy) IsItemType(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

func (s *mapStrategy) IsItem(v any) bool { return MatchType(s, v) }

func (s *mapStrategy) FieldMeta(reflect.Type, string) (Meta, error) {
	return Meta{}, nil
}

func (s *mapStrategy) Get(item any, field string) (any, error) {
	m := reflect.ValueOf(item)
	v := m.MapIndex(mapKey(m, field))
	if !v.IsValid() {
		return nil, newFieldError(ErrFieldNotFound, typeName(item), field, nil)
	}
	return v.Interface(), nil
}

func (s *mapStrategy) Set(item any, field string, value any) error {
	m := reflect.ValueOf(item)
	if m.IsNil() {
		return newFieldError(ErrNilItem, typeName(item), field, nil)
	}
	v, ok := assignable(value, m.Type().Elem())
	if !ok {
		return newFieldError(ErrFieldType, typeName(item), field, nil)
	}
	m.SetMapIndex(mapKey(m, field), v)
	return nil
}

func (s *mapStrategy) Delete(item any, field string) error {
	m := reflect.ValueOf(item)
	key := mapKey(m, field)
	if !m.MapIndex(key).IsValid() {
		return newFieldError(ErrFieldNotFound, typeName(item), field, nil)
	}
	m.SetMapIndex(key, reflect.Value{})
	return nil
}

// Keys yields map keys in sorted order; Go maps carry no insertion order.
func (s *mapStrategy) Keys(item any) iter.Seq[string] {
	return keysOf(func() []string { return s.FieldNames(item) })
}

func (s *mapStrategy) Len(item any) int {
	return reflect.ValueOf(item).Len()
}

func (s *mapStrategy) FieldNames(item any) []string {
	m := reflect.ValueOf(item)
	names := make([]string, 0, m.Len())
	it := m.MapRange()
	for it.Next() {
		names = append(names, it.Key().String())
	}
	slices.Sort(names)
	return names
}

// mapKey converts field into the map's (possibly named) string key type.
func mapKey(m reflect.Value, field string) reflect.Value {
	return reflect.ValueOf(field).Convert(m.Type().Key())
}

// assignable returns value as a reflect.Value storable in a slot of type t.
// A nil value yields the zero value of t. No conversion is attempted.
func assignable(value any, t reflect.Type) (reflect.Value, bool) {
	if value == nil {
		return reflect.Zero(t), true
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return v, true
}

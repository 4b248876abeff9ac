package itemadapter

import (
	"reflect"
)

var anyType = reflect.TypeFor[any]()

// AsDict converts the item into plain nested maps. Field values that are
// items themselves are converted recursively, as are slices, arrays and maps
// holding items. Anything else is copied as-is. Items that contain
// themselves are not supported.
func (a *Adapter) AsDict() (map[string]any, error) {
	out := make(map[string]any, a.Len())
	for key := range a.Keys() {
		v, err := a.Get(key)
		if err != nil {
			return nil, err
		}
		cv, err := a.registry.Convert(v)
		if err != nil {
			return nil, err
		}
		out[key] = cv
	}
	return out, nil
}

// Convert returns v with every item it reaches replaced by its AsDict form.
// Nil maps and slices are returned unchanged.
//
//   - items become map[string]any
//   - slices and arrays that may hold items become []any
//   - non-item maps that may hold items become map[K]any
//   - all other values are returned unchanged
func (r *Registry) Convert(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Map || rv.Kind() == reflect.Slice) && rv.IsNil() {
		return v, nil
	}
	if s, err := r.ForItem(v); err == nil {
		return r.bind(v, s).AsDict()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if !r.mayHoldItems(rv.Type().Elem()) {
			return v, nil
		}
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			cv, err := r.Convert(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil

	case reflect.Map:
		if !r.mayHoldItems(rv.Type().Elem()) {
			return v, nil
		}
		out := reflect.MakeMapWithSize(reflect.MapOf(rv.Type().Key(), anyType), rv.Len())
		it := rv.MapRange()
		for it.Next() {
			cv, err := r.Convert(it.Value().Interface())
			if err != nil {
				return nil, err
			}
			out.SetMapIndex(it.Key(), reflect.ValueOf(&cv).Elem())
		}
		return out.Interface(), nil

	default:
		return v, nil
	}
}

// mayHoldItems reports whether values of t can be, or can contain, items.
func (r *Registry) mayHoldItems(t reflect.Type) bool {
	return r.holdsItems(t, make(map[reflect.Type]bool))
}

// holdsItems walks container element types. Types that refer to themselves
// (type tree map[int]tree) are visited once.
func (r *Registry) holdsItems(t reflect.Type, visited map[reflect.Type]bool) bool {
	if visited[t] {
		return false
	}
	visited[t] = true

	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Slice, reflect.Array, reflect.Map:
		return r.IsItemType(t) || r.holdsItems(t.Elem(), visited)
	default:
		return r.IsItemType(t)
	}
}

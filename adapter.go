package itemadapter

import (
	"context"
	"fmt"
	"iter"
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// Adapter is a uniform mapping view over one item. The strategy is resolved
// once at construction and never changes.
//
// The adapter does not own the item. Pointers and maps are written in place,
// so every holder sees mutations. Struct and slice values passed by value are
// copied into fresh storage first; read them back through Item.
//
// An Adapter is not safe for concurrent mutation.
type Adapter struct {
	item     any
	strategy Strategy
	registry *Registry
}

// spewConfig renders items for String without addresses or capacities.
var spewConfig = spew.ConfigState{
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// New wraps item using the default registry.
func New(item any) (*Adapter, error) {
	return defaultRegistry.Adapt(item)
}

// Adapt wraps item with the first strategy in r that accepts it.
// It fails with ErrUnsupportedType when none does.
func (r *Registry) Adapt(item any) (*Adapter, error) {
	s, err := r.ForItem(item)
	if err != nil {
		emitAdaptFailed(context.Background(), typeName(item), err)
		return nil, err
	}
	return r.bind(item, s), nil
}

// bind builds an adapter for an item already resolved to s.
func (r *Registry) bind(item any, s Strategy) *Adapter {
	return &Adapter{
		item:     box(item),
		strategy: s,
		registry: r,
	}
}

// box copies struct, slice and array values into addressable storage.
func box(item any) any {
	rv := reflect.ValueOf(item)
	switch rv.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Array:
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		return p.Interface()
	default:
		return item
	}
}

// Item returns the wrapped item.
func (a *Adapter) Item() any {
	return a.item
}

// Strategy returns the strategy resolved for the item.
func (a *Adapter) Strategy() Strategy {
	return a.strategy
}

// Get returns the value of field.
func (a *Adapter) Get(field string) (any, error) {
	return a.strategy.Get(a.item, field)
}

// Set writes value into field in place.
func (a *Adapter) Set(field string, value any) error {
	return a.strategy.Set(a.item, field, value)
}

// Delete removes or resets field.
func (a *Adapter) Delete(field string) error {
	return a.strategy.Delete(a.item, field)
}

// Has reports whether the item currently holds field.
func (a *Adapter) Has(field string) bool {
	_, err := a.strategy.Get(a.item, field)
	return err == nil
}

// Len returns the number of fields the item holds.
func (a *Adapter) Len() int {
	return a.strategy.Len(a.item)
}

// Keys yields the names of the fields the item holds.
func (a *Adapter) Keys() iter.Seq[string] {
	return a.strategy.Keys(a.item)
}

// All yields field names with their raw values. Nested items are not converted.
func (a *Adapter) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for key := range a.strategy.Keys(a.item) {
			v, err := a.strategy.Get(a.item, key)
			if err != nil {
				continue
			}
			if !yield(key, v) {
				return
			}
		}
	}
}

// FieldNames returns every declared field name. For records this includes
// fields that are not populated.
func (a *Adapter) FieldNames() []string {
	return a.strategy.FieldNames(a.item)
}

// FieldMeta returns the metadata declared for field on the item's type.
func (a *Adapter) FieldMeta(field string) (Meta, error) {
	return a.strategy.FieldMeta(reflect.TypeOf(a.item), field)
}

// Equal reports whether both adapters wrap deeply equal items.
func (a *Adapter) Equal(other *Adapter) bool {
	if a == nil || other == nil {
		return a == other
	}
	return reflect.DeepEqual(a.item, other.item)
}

func (a *Adapter) String() string {
	return fmt.Sprintf("ItemAdapter for type %s: %s", typeName(a.item), spewConfig.Sprintf("%+v", a.item))
}

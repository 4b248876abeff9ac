package itemadapter

import (
	"context"
	"reflect"
	"slices"
	"sync"
)

// Registry is an ordered list of strategies. Resolution scans head to tail
// and returns the first strategy that accepts a value or type; registration
// order is the only tie-break. Duplicates are allowed.
//
// Registries are safe for concurrent use, but resolution observes whatever
// order is current, so strategies should be registered during setup.
type Registry struct {
	mu         sync.RWMutex
	strategies []Strategy
	initial    []Strategy // restored by Reset
}

var defaultRegistry = NewRegistry(defaultStrategies()...)

// NewRegistry returns a registry holding strategies in order. Nil strategies are ignored.
func NewRegistry(strategies ...Strategy) *Registry {
	initial := compact(strategies)
	return &Registry{
		strategies: slices.Clone(initial),
		initial:    initial,
	}
}

// Default returns the process-wide registry used by New and the free functions.
func Default() *Registry {
	return defaultRegistry
}

// PushFront inserts strategies at the head, keeping their relative order,
// so they win over everything already registered.
func (r *Registry) PushFront(strategies ...Strategy) {
	strategies = compact(strategies)
	if len(strategies) == 0 {
		return
	}

	r.mu.Lock()
	r.strategies = slices.Insert(r.strategies, 0, strategies...)
	count := len(r.strategies)
	r.mu.Unlock()

	for _, s := range strategies {
		emitStrategyRegistered(context.Background(), s.Name(), positionFront, count)
	}
}

// PushBack appends strategies at the tail.
func (r *Registry) PushBack(strategies ...Strategy) {
	strategies = compact(strategies)
	if len(strategies) == 0 {
		return
	}

	r.mu.Lock()
	r.strategies = append(r.strategies, strategies...)
	count := len(r.strategies)
	r.mu.Unlock()

	for _, s := range strategies {
		emitStrategyRegistered(context.Background(), s.Name(), positionBack, count)
	}
}

// PopFront removes and returns the head strategy.
func (r *Registry) PopFront() (Strategy, bool) {
	r.mu.Lock()
	if len(r.strategies) == 0 {
		r.mu.Unlock()
		return nil, false
	}
	s := r.strategies[0]
	r.strategies = slices.Delete(r.strategies, 0, 1)
	count := len(r.strategies)
	r.mu.Unlock()

	emitStrategyRemoved(context.Background(), s.Name(), positionFront, count)
	return s, true
}

// PopBack removes and returns the tail strategy.
func (r *Registry) PopBack() (Strategy, bool) {
	r.mu.Lock()
	n := len(r.strategies)
	if n == 0 {
		r.mu.Unlock()
		return nil, false
	}
	s := r.strategies[n-1]
	r.strategies = slices.Delete(r.strategies, n-1, n)
	count := len(r.strategies)
	r.mu.Unlock()

	emitStrategyRemoved(context.Background(), s.Name(), positionBack, count)
	return s, true
}

// Remove deletes the first occurrence of s and reports whether it was present.
func (r *Registry) Remove(s Strategy) bool {
	if s == nil {
		return false
	}

	r.mu.Lock()
	i := slices.IndexFunc(r.strategies, func(x Strategy) bool { return sameStrategy(x, s) })
	if i < 0 {
		r.mu.Unlock()
		return false
	}
	r.strategies = slices.Delete(r.strategies, i, i+1)
	count := len(r.strategies)
	r.mu.Unlock()

	emitStrategyRemoved(context.Background(), s.Name(), "", count)
	return true
}

// Strategies returns a snapshot of the registered strategies, head to tail.
func (r *Registry) Strategies() []Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.strategies)
}

// Len returns the number of registered strategies.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.strategies)
}

// Reset restores the strategies the registry was built with, in their
// original order. For Default that is the DefaultConfig order; for a registry
// from NewRegistryFromConfig it is that configuration.
// This is primarily useful for test isolation.
func (r *Registry) Reset() {
	r.mu.Lock()
	strategies := slices.Clone(r.initial)
	r.strategies = strategies
	r.mu.Unlock()

	emitRegistryReset(context.Background(), len(strategies))
}

// ForItem returns the first strategy accepting v.
func (r *Registry) ForItem(v any) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.strategies {
		if s.IsItem(v) {
			return s, nil
		}
	}
	if v == nil {
		return nil, newTypeError(nil)
	}
	return nil, newTypeError(reflect.TypeOf(v))
}

// ForType returns the first strategy accepting values of t.
func (r *Registry) ForType(t reflect.Type) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t != nil {
		for _, s := range r.strategies {
			if s.IsItemType(t) {
				return s, nil
			}
		}
	}
	return nil, newTypeError(t)
}

// IsItem reports whether some strategy accepts v.
func (r *Registry) IsItem(v any) bool {
	_, err := r.ForItem(v)
	return err == nil
}

// IsItemType reports whether some strategy accepts values of t.
func (r *Registry) IsItemType(t reflect.Type) bool {
	_, err := r.ForType(t)
	return err == nil
}

// FieldMeta returns the metadata declared for field on t by the strategy resolved for t.
func (r *Registry) FieldMeta(t reflect.Type, field string) (Meta, error) {
	s, err := r.ForType(t)
	if err != nil {
		return Meta{}, err
	}
	return s.FieldMeta(t, field)
}

// compact drops nil strategies.
func compact(strategies []Strategy) []Strategy {
	out := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// sameStrategy compares strategies by identity without panicking on
// non-comparable dynamic types.
func sameStrategy(a, b Strategy) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// Package testing provides shared item fixtures and helpers for itemadapter tests.
package testing

import (
	"testing"

	"github.com/zoobzio/itemadapter"
)

// Price is an annotated record with metadata on Value.
type Price struct {
	Value    int    `json:"value" item:"serializer: str, limit: 100"`
	Currency string `json:"currency" item:""`
}

// Product is an annotated record nesting another item.
type Product struct {
	Name  string   `json:"name" item:""`
	Price *Price   `json:"price" item:""`
	Tags  []string `json:"tags,omitempty" item:""`
}

// Money is a Record whose metadata lives in its side table.
type Money struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Note     string `json:"-"`
}

// ItemFields implements itemadapter.Record.
func (Money) ItemFields() itemadapter.FieldTable {
	return itemadapter.FieldTable{
		"amount": {"serializer": "str", "limit": 100},
	}
}

// Listing is a Record holding items inside slices and maps.
type Listing struct {
	Title    string           `json:"title"`
	Products []*Product       `json:"products"`
	Prices   map[string]Money `json:"prices"`
	ByRank   map[int]*Price   `json:"by_rank"`
	Extra    any              `json:"extra"`
}

// ItemFields implements itemadapter.Record with a pointer receiver.
func (*Listing) ItemFields() itemadapter.FieldTable {
	return nil
}

// Plain is a struct no built-in strategy accepts.
type Plain struct {
	Name string
}

// NewProduct returns the canonical nested fixture.
func NewProduct() *Product {
	return &Product{
		Name:  "Stuff",
		Price: &Price{Value: 42, Currency: "UYU"},
	}
}

// ProductDict is the AsDict form of NewProduct.
func ProductDict() map[string]any {
	return map[string]any{
		"name": "Stuff",
		"price": map[string]any{
			"value":    42,
			"currency": "UYU",
		},
	}
}

// MustAdapt wraps v with the default registry or fails the test.
func MustAdapt(tb testing.TB, v any) *itemadapter.Adapter {
	tb.Helper()
	a, err := itemadapter.New(v)
	if err != nil {
		tb.Fatalf("New(%T) error: %v", v, err)
	}
	return a
}

// ResetDefault restores the default registry when the test ends.
func ResetDefault(tb testing.TB) {
	tb.Helper()
	tb.Cleanup(itemadapter.Default().Reset)
}

package itemadapter_test

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/zoobzio/itemadapter"
	itemtest "github.com/zoobzio/itemadapter/testing"
)

type badTag struct {
	Value int `item:"limit: [1, 2"`
}

type bothFlavors struct {
	Name string `json:"name" item:"from: tag"`
}

func (bothFlavors) ItemFields() itemadapter.FieldTable {
	return itemadapter.FieldTable{"name": {"from": "table"}}
}

func TestRecords_TypeTest(t *testing.T) {
	s := itemadapter.Records()

	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"value receiver", reflect.TypeOf(itemtest.Money{}), true},
		{"value receiver ptr", reflect.TypeOf(&itemtest.Money{}), true},
		{"pointer receiver", reflect.TypeOf(itemtest.Listing{}), true},
		{"pointer receiver ptr", reflect.TypeOf(&itemtest.Listing{}), true},
		{"annotated", reflect.TypeOf(itemtest.Price{}), false},
		{"plain", reflect.TypeOf(itemtest.Plain{}), false},
		{"map", reflect.TypeOf(map[string]any{}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsItemType(tt.typ); got != tt.want {
				t.Errorf("IsItemType(%v) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}

	if s.IsItem((*itemtest.Money)(nil)) {
		t.Error("IsItem(nil pointer) should be false")
	}
}

func TestAnnotated_TypeTest(t *testing.T) {
	s := itemadapter.Annotated()

	if !s.IsItemType(reflect.TypeOf(itemtest.Price{})) {
		t.Error("Price should be annotated")
	}
	if !s.IsItemType(reflect.TypeOf(&itemtest.Product{})) {
		t.Error("*Product should be annotated")
	}
	if s.IsItemType(reflect.TypeOf(itemtest.Plain{})) {
		t.Error("Plain has no item tags")
	}
	if s.IsItemType(reflect.TypeOf(42)) {
		t.Error("int is not a struct")
	}
}

func TestRecord_ClosedFieldSet(t *testing.T) {
	price := &itemtest.Price{Value: 42, Currency: "UYU"}
	a := itemtest.MustAdapt(t, price)

	err := a.Set("color", "red")
	if !errors.Is(err, itemadapter.ErrUnknownField) {
		t.Errorf("Set(undeclared) error = %v, want ErrUnknownField", err)
	}
	if *price != (itemtest.Price{Value: 42, Currency: "UYU"}) {
		t.Errorf("failed Set() modified the item: %+v", price)
	}

	if _, err := a.Get("color"); !errors.Is(err, itemadapter.ErrFieldNotFound) {
		t.Errorf("Get(undeclared) error = %v, want ErrFieldNotFound", err)
	}
	if err := a.Delete("color"); !errors.Is(err, itemadapter.ErrFieldNotFound) {
		t.Errorf("Delete(undeclared) error = %v, want ErrFieldNotFound", err)
	}

	if err := a.Set("value", "forty-two"); !errors.Is(err, itemadapter.ErrFieldType) {
		t.Errorf("Set(wrong type) error = %v, want ErrFieldType", err)
	}
	if price.Value != 42 {
		t.Errorf("failed Set() modified Value: %d", price.Value)
	}
}

func TestRecord_PopulatedFields(t *testing.T) {
	product := &itemtest.Product{Name: "Stuff"}
	a := itemtest.MustAdapt(t, product)

	if got := slices.Collect(a.Keys()); !slices.Equal(got, []string{"name"}) {
		t.Errorf("Keys() = %v, want [name]", got)
	}
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1", a.Len())
	}
	if got := a.FieldNames(); !slices.Equal(got, []string{"name", "price", "tags"}) {
		t.Errorf("FieldNames() = %v, want every declared field", got)
	}

	if _, err := a.Get("price"); !errors.Is(err, itemadapter.ErrFieldNotFound) {
		t.Errorf("Get(unpopulated) error = %v, want ErrFieldNotFound", err)
	}
	if err := a.Delete("price"); !errors.Is(err, itemadapter.ErrFieldNotFound) {
		t.Errorf("Delete(unpopulated) error = %v, want ErrFieldNotFound", err)
	}

	if err := a.Set("price", &itemtest.Price{Value: 1}); err != nil {
		t.Fatalf("Set(price) error: %v", err)
	}
	if product.Price == nil || product.Price.Value != 1 {
		t.Errorf("Set() should write through, Price = %+v", product.Price)
	}
	if got := slices.Collect(a.Keys()); !slices.Equal(got, []string{"name", "price"}) {
		t.Errorf("Keys() after Set = %v, want declaration order [name price]", got)
	}

	if err := a.Delete("price"); err != nil {
		t.Fatalf("Delete(price) error: %v", err)
	}
	if product.Price != nil {
		t.Error("Delete() should reset the pointer field to nil")
	}

	if err := a.Delete("name"); err != nil {
		t.Fatalf("Delete(name) error: %v", err)
	}
	if product.Name != "" {
		t.Errorf("Delete() should reset Name, got %q", product.Name)
	}
	if !a.Has("name") {
		t.Error("non-nilable fields stay populated after Delete")
	}
}

func TestRecord_JSONNames(t *testing.T) {
	money := &itemtest.Money{Amount: 10, Currency: "EUR", Note: "internal"}
	a := itemtest.MustAdapt(t, money)

	if got := a.FieldNames(); !slices.Equal(got, []string{"amount", "currency"}) {
		t.Errorf("FieldNames() = %v, want [amount currency]", got)
	}
	if v, err := a.Get("amount"); err != nil || v != 10 {
		t.Errorf("Get(amount) = %v, %v", v, err)
	}
	if err := a.Set("Note", "x"); !errors.Is(err, itemadapter.ErrUnknownField) {
		t.Errorf(`Set on json:"-" field error = %v, want ErrUnknownField`, err)
	}
}

func TestRecord_FieldMeta(t *testing.T) {
	tests := []struct {
		name  string
		typ   reflect.Type
		field string
		want  map[string]any
	}{
		{"side table", reflect.TypeOf(itemtest.Money{}), "amount", map[string]any{"serializer": "str", "limit": 100}},
		{"side table pointer", reflect.TypeOf(&itemtest.Money{}), "amount", map[string]any{"serializer": "str", "limit": 100}},
		{"side table absent", reflect.TypeOf(itemtest.Money{}), "currency", map[string]any{}},
		{"nil side table", reflect.TypeOf(&itemtest.Listing{}), "title", map[string]any{}},
		{"tag", reflect.TypeOf(itemtest.Price{}), "value", map[string]any{"serializer": "str", "limit": 100}},
		{"empty tag", reflect.TypeOf(itemtest.Price{}), "currency", map[string]any{}},
		{"undeclared", reflect.TypeOf(itemtest.Price{}), "color", map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := itemadapter.FieldMetaFromType(tt.typ, tt.field)
			if err != nil {
				t.Fatalf("FieldMetaFromType() error: %v", err)
			}
			if !reflect.DeepEqual(meta.Map(), tt.want) {
				t.Errorf("FieldMetaFromType() = %v, want %v", meta.Map(), tt.want)
			}
		})
	}
}

func TestAnnotated_InvalidTag(t *testing.T) {
	_, err := itemadapter.FieldMetaFromType(reflect.TypeOf(badTag{}), "Value")
	if !errors.Is(err, itemadapter.ErrInvalidTag) {
		t.Errorf("FieldMetaFromType(bad tag) error = %v, want ErrInvalidTag", err)
	}

	// field access is unaffected by a malformed tag
	a := itemtest.MustAdapt(t, &badTag{Value: 3})
	if v, err := a.Get("Value"); err != nil || v != 3 {
		t.Errorf("Get(Value) = %v, %v", v, err)
	}
}

func TestRecord_WinsOverAnnotated(t *testing.T) {
	a := itemtest.MustAdapt(t, &bothFlavors{Name: "x"})
	if a.Strategy() != itemadapter.Records() {
		t.Errorf("strategy = %s, want record (registered first)", a.Strategy().Name())
	}

	meta, err := a.FieldMeta("name")
	if err != nil {
		t.Fatalf("FieldMeta() error: %v", err)
	}
	if v, _ := meta.Get("from"); v != "table" {
		t.Errorf("FieldMeta(name) from = %v, want table", v)
	}

	meta, err = itemadapter.Annotated().FieldMeta(reflect.TypeOf(bothFlavors{}), "name")
	if err != nil {
		t.Fatalf("Annotated().FieldMeta() error: %v", err)
	}
	if v, _ := meta.Get("from"); v != "tag" {
		t.Errorf("annotated FieldMeta(name) from = %v, want tag", v)
	}
}

func TestRecord_DirectStrategyOnValue(t *testing.T) {
	s := itemadapter.Annotated()
	price := itemtest.Price{Value: 42}

	v, err := s.Get(price, "value")
	if err != nil || v != 42 {
		t.Errorf("Get(value struct) = %v, %v", v, err)
	}
	if err := s.Set(price, "value", 1); !errors.Is(err, itemadapter.ErrNilItem) {
		t.Errorf("Set(value struct) error = %v, want ErrNilItem", err)
	}
}

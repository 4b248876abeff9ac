package bson

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/itemadapter"
	"go.mongodb.org/mongo-driver/bson"
)

func newRegistry() *itemadapter.Registry {
	reg := itemadapter.NewRegistry(itemadapter.Mapping(), itemadapter.Records(), itemadapter.Annotated())
	reg.PushFront(Strategy())
	return reg
}

func TestStrategy_TypeTests(t *testing.T) {
	s := Strategy()

	assert.Equal(t, "bson.document", s.Name())
	assert.True(t, s.IsItemType(reflect.TypeOf(bson.D{})))
	assert.True(t, s.IsItemType(reflect.TypeOf(&bson.D{})))
	assert.False(t, s.IsItemType(reflect.TypeOf(bson.M{})))
	assert.False(t, s.IsItemType(reflect.TypeOf([]bson.E{})))

	assert.True(t, s.IsItem(bson.D{}))
	assert.True(t, s.IsItem(&bson.D{}))
	assert.False(t, s.IsItem((*bson.D)(nil)))
	assert.False(t, s.IsItem(nil))
}

func TestAdapter_DocumentOrder(t *testing.T) {
	reg := newRegistry()
	doc := bson.D{{Key: "name", Value: "Stuff"}, {Key: "price", Value: 42}}

	a, err := reg.Adapt(&doc)
	require.NoError(t, err)
	assert.Same(t, Strategy(), a.Strategy())

	v, err := a.Get("price")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	require.NoError(t, a.Set("currency", "UYU"))
	require.NoError(t, a.Set("price", 9))
	assert.Equal(t, []string{"name", "price", "currency"}, slices.Collect(a.Keys()))
	assert.Equal(t, 3, a.Len())

	// mutation is in place
	assert.Equal(t, bson.E{Key: "price", Value: 9}, doc[1])
	assert.Equal(t, bson.E{Key: "currency", Value: "UYU"}, doc[2])

	require.NoError(t, a.Delete("name"))
	assert.Equal(t, []string{"price", "currency"}, a.FieldNames())
	assert.Len(t, doc, 2)
}

func TestAdapter_MissingField(t *testing.T) {
	reg := newRegistry()
	doc := bson.D{{Key: "name", Value: "Stuff"}}
	a, err := reg.Adapt(&doc)
	require.NoError(t, err)

	_, err = a.Get("missing")
	assert.True(t, errors.Is(err, itemadapter.ErrFieldNotFound))

	err = a.Delete("missing")
	assert.True(t, errors.Is(err, itemadapter.ErrFieldNotFound))
	assert.Len(t, doc, 1)
}

func TestAdapter_ValueIsBoxed(t *testing.T) {
	reg := newRegistry()
	doc := bson.D{{Key: "name", Value: "Stuff"}}

	a, err := reg.Adapt(doc)
	require.NoError(t, err)
	require.NoError(t, a.Set("name", "Things"))

	assert.Equal(t, "Stuff", doc[0].Value)
	boxed, ok := a.Item().(*bson.D)
	require.True(t, ok)
	assert.Equal(t, "Things", (*boxed)[0].Value)
}

func TestStrategy_SetOnValueFails(t *testing.T) {
	err := Strategy().Set(bson.D{}, "name", "Stuff")
	assert.True(t, errors.Is(err, itemadapter.ErrNilItem))
}

func TestAdapter_AsDictNested(t *testing.T) {
	reg := newRegistry()
	doc := bson.D{
		{Key: "name", Value: "Stuff"},
		{Key: "price", Value: bson.D{{Key: "value", Value: int32(42)}, {Key: "currency", Value: "UYU"}}},
		{Key: "tags", Value: bson.A{"a", bson.M{"k": "v"}}},
	}

	a, err := reg.Adapt(&doc)
	require.NoError(t, err)

	got, err := a.AsDict()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":  "Stuff",
		"price": map[string]any{"value": int32(42), "currency": "UYU"},
		"tags":  []any{"a", map[string]any{"k": "v"}},
	}, got)
}

func TestAdapter_DecodedDocument(t *testing.T) {
	raw, err := bson.Marshal(bson.D{{Key: "b", Value: "two"}, {Key: "a", Value: "one"}})
	require.NoError(t, err)

	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))

	a, err := newRegistry().Adapt(&doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, slices.Collect(a.Keys()))
}

func TestFieldMeta_Empty(t *testing.T) {
	meta, err := newRegistry().FieldMeta(reflect.TypeOf(bson.D{}), "name")
	require.NoError(t, err)
	assert.True(t, meta.Empty())
}

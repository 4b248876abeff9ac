package itemadapter

import (
	"reflect"
)

var (
	recordType     = reflect.TypeFor[Record]()
	recordStrategy = &recordStruct{structCore{name: "record"}}
)

// Records returns the strategy for struct types implementing Record.
// Metadata comes from the type's ItemFields side table.
func Records() Strategy {
	return recordStrategy
}

type recordStruct struct {
	structCore
}

var _ Strategy = (*recordStruct)(nil)

func (s *recordStruct) IsItemType(t reflect.Type) bool {
	st, ok := structType(t)
	if !ok {
		return false
	}
	return reflect.PointerTo(st).Implements(recordType)
}

func (s *recordStruct) IsItem(v any) bool {
	return MatchType(s, v) && !isNilPointer(v)
}

func (s *recordStruct) FieldMeta(t reflect.Type, field string) (Meta, error) {
	st, ok := structType(t)
	if !ok || !s.IsItemType(st) {
		return Meta{}, nil
	}
	rec, ok := reflect.New(st).Interface().(Record)
	if !ok {
		return Meta{}, nil
	}
	return NewMeta(rec.ItemFields()[field]), nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

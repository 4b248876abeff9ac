package itemadapter

import (
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

var annotatedStrategy = &annotatedStruct{structCore{name: "annotated"}}

// Annotated returns the strategy for struct types whose fields carry item tags.
// The tag body is a YAML flow mapping holding the field's metadata:
//
//	type Price struct {
//	    Value    int    `json:"value" item:"serializer: str, limit: 100"`
//	    Currency string `json:"currency" item:""`
//	    Internal string `item:"-"`
//	}
//
// A single tagged field marks the type; untagged exported fields are still
// declared fields with empty metadata.
func Annotated() Strategy {
	return annotatedStrategy
}

type annotatedStruct struct {
	structCore
}

var _ Strategy = (*annotatedStruct)(nil)

func (s *annotatedStruct) IsItemType(t reflect.Type) bool {
	st, ok := structType(t)
	if !ok {
		return false
	}
	return plansFor(st).tagged
}

func (s *annotatedStruct) IsItem(v any) bool {
	return MatchType(s, v) && !isNilPointer(v)
}

func (s *annotatedStruct) FieldMeta(t reflect.Type, field string) (Meta, error) {
	st, ok := structType(t)
	if !ok {
		return Meta{}, nil
	}
	plans := plansFor(st)
	plan, ok := plans.lookup(field)
	if !ok {
		return Meta{}, nil
	}
	if plan.metaErr != nil {
		return Meta{}, newFieldError(ErrInvalidTag, plans.typeName, field, plan.metaErr)
	}
	return plan.meta, nil
}

// parseItemTag decodes an item tag body. Braces are optional.
func parseItemTag(tag string) (Meta, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Meta{}, nil
	}
	if !strings.HasPrefix(tag, "{") {
		tag = "{" + tag + "}"
	}
	var m map[string]any
	if err := yaml.Unmarshal([]byte(tag), &m); err != nil {
		return Meta{}, err
	}
	return NewMeta(m), nil
}

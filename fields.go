package itemadapter

import (
	"iter"
	"reflect"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

// itemTag is the struct tag carrying per-field metadata for annotated records.
const itemTag = "item"

func init() {
	// Register the item tag so sentinel scans capture it
	sentinel.Tag(itemTag)
}

// typeFieldPlans is the declared field set of one struct type.
type typeFieldPlans struct {
	typeName string
	fields   []fieldPlan
	byKey    map[string]int
	tagged   bool // at least one field carries an item tag
	scanned  bool // built from sentinel's cached metadata
}

// fieldPlan describes how to reach a single declared field.
type fieldPlan struct {
	key     string       // external field name
	index   []int        // reflect.Value.FieldByIndex access path
	typ     reflect.Type // declared field type
	nilable bool         // unpopulated while nil
	tag     string       // raw item tag body
	tagged  bool         // item tag present
	meta    Meta         // parsed item tag
	metaErr error        // item tag parse failure
}

var (
	planCache   = make(map[reflect.Type]*typeFieldPlans)
	planCacheMu sync.RWMutex
)

// plansFor returns the cached field plans for struct type t, building them on first use.
func plansFor(t reflect.Type) *typeFieldPlans {
	// Fast path: read-lock cache check
	planCacheMu.RLock()
	if cached, ok := planCache[t]; ok {
		planCacheMu.RUnlock()
		return cached
	}
	planCacheMu.RUnlock()

	// Slow path: build and cache with write-lock
	planCacheMu.Lock()
	defer planCacheMu.Unlock()

	// Double-check pattern
	if cached, ok := planCache[t]; ok {
		return cached
	}

	plans := buildFieldPlans(t)
	planCache[t] = plans
	return plans
}

// prepareType scans T with sentinel, following related types in the same
// module, and rebuilds T's field plans from the scanned metadata.
func prepareType[T any]() {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	if _, err := sentinel.TryScan[T](); err != nil {
		return
	}

	planCacheMu.Lock()
	defer planCacheMu.Unlock()
	if cached, ok := planCache[t]; ok && cached.scanned {
		return
	}
	planCache[t] = buildFieldPlans(t)
}

// buildFieldPlans creates field plans for struct type t from its sentinel metadata.
func buildFieldPlans(t reflect.Type) *typeFieldPlans {
	spec, scanned := scanType(t)
	plans := &typeFieldPlans{
		typeName: spec.TypeName,
		byKey:    make(map[string]int, len(spec.Fields)),
		scanned:  scanned,
	}
	if plans.typeName == "" {
		plans.typeName = t.String()
	}

	for _, field := range spec.Fields {
		sf, ok := structField(t, field)
		if !ok || sf.Anonymous || !sf.IsExported() {
			continue
		}

		// sentinel keeps non-empty tags only; item:"" still marks the field
		tag, tagged := field.Tags[itemTag]
		if !tagged {
			tag, tagged = sf.Tag.Lookup(itemTag)
		}
		if tagged && strings.TrimSpace(tag) == "-" {
			continue
		}

		key := resolveKey(sf)
		if key == "-" {
			continue
		}
		if _, dup := plans.byKey[key]; dup {
			continue
		}

		plan := fieldPlan{
			key:     key,
			index:   field.Index,
			typ:     field.ReflectType,
			nilable: isNilable(field.ReflectType.Kind()),
			tag:     tag,
			tagged:  tagged,
		}
		if tagged {
			plans.tagged = true
			plan.meta, plan.metaErr = parseItemTag(tag)
		}

		plans.byKey[key] = len(plans.fields)
		plans.fields = append(plans.fields, plan)
	}

	return plans
}

// scanType returns sentinel metadata for t. Sentinel caches by bare type
// name, so a cached entry is used only when it describes t itself; otherwise
// the metadata is extracted here in the same shape. The bool reports a
// cache hit.
func scanType(t reflect.Type) (sentinel.Metadata, bool) {
	if spec, ok := sentinel.Lookup(t.Name()); ok && describes(spec, t) {
		return spec, true
	}

	spec := sentinel.Metadata{
		TypeName:    t.Name(),
		PackageName: t.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, t.NumField()),
	}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Kind:        fieldKind(sf.Type),
			Tags:        map[string]string{},
		}
		if tag := sf.Tag.Get(itemTag); tag != "" {
			fm.Tags[itemTag] = tag
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return spec, false
}

// describes reports whether cached metadata was extracted from t. Types from
// different packages, or local types in one package, can share a name.
func describes(spec sentinel.Metadata, t reflect.Type) bool {
	if t.Name() == "" || spec.TypeName != t.Name() || spec.PackageName != t.PkgPath() {
		return false
	}

	exported := 0
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			exported++
		}
	}
	if len(spec.Fields) != exported {
		return false
	}

	for _, field := range spec.Fields {
		if len(field.Index) != 1 || field.Index[0] >= t.NumField() {
			return false
		}
		sf := t.Field(field.Index[0])
		if sf.Name != field.Name || sf.Type != field.ReflectType {
			return false
		}
	}
	return true
}

func fieldKind(t reflect.Type) sentinel.FieldKind {
	switch t.Kind() {
	case reflect.Struct:
		return sentinel.KindStruct
	case reflect.Ptr:
		return sentinel.KindPointer
	case reflect.Slice, reflect.Array:
		return sentinel.KindSlice
	case reflect.Map:
		return sentinel.KindMap
	case reflect.Interface:
		return sentinel.KindInterface
	default:
		return sentinel.KindScalar
	}
}

// structField resolves the reflect.StructField behind a sentinel field.
func structField(t reflect.Type, field sentinel.FieldMetadata) (reflect.StructField, bool) {
	if len(field.Index) == 1 && field.Index[0] < t.NumField() {
		return t.Field(field.Index[0]), true
	}
	return t.FieldByName(field.Name)
}

// resolveKey returns the external name of a struct field.
// Priority: json tag name > field name; "-" disables the field.
func resolveKey(sf reflect.StructField) string {
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt
		}
	}
	return sf.Name
}

func isNilable(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

func (p *typeFieldPlans) lookup(key string) (*fieldPlan, bool) {
	i, ok := p.byKey[key]
	if !ok {
		return nil, false
	}
	return &p.fields[i], true
}

// structCore implements the per-item half of Strategy for struct records.
// Record flavors differ only in detection and metadata source.
type structCore struct {
	name string
}

// value returns the struct behind item, following one pointer.
func (c *structCore) value(item any) (reflect.Value, *typeFieldPlans, bool) {
	rv := reflect.ValueOf(item)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}, nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, nil, false
	}
	return rv, plansFor(rv.Type()), true
}

func (c *structCore) Name() string { return c.name }

func (c *structCore) Get(item any, field string) (any, error) {
	rv, plans, ok := c.value(item)
	if !ok {
		return nil, newFieldError(ErrFieldNotFound, typeName(item), field, nil)
	}
	plan, ok := plans.lookup(field)
	if !ok {
		return nil, newFieldError(ErrFieldNotFound, plans.typeName, field, nil)
	}
	fv := rv.FieldByIndex(plan.index)
	if plan.nilable && fv.IsNil() {
		return nil, newFieldError(ErrFieldNotFound, plans.typeName, field, nil)
	}
	return fv.Interface(), nil
}

func (c *structCore) Set(item any, field string, value any) error {
	rv, plans, ok := c.value(item)
	if !ok {
		return newFieldError(ErrNilItem, typeName(item), field, nil)
	}
	plan, ok := plans.lookup(field)
	if !ok {
		return newFieldError(ErrUnknownField, plans.typeName, field, nil)
	}
	fv := rv.FieldByIndex(plan.index)
	if !fv.CanSet() {
		return newFieldError(ErrNilItem, plans.typeName, field, nil)
	}
	v, ok := assignable(value, plan.typ)
	if !ok {
		return newFieldError(ErrFieldType, plans.typeName, field, nil)
	}
	fv.Set(v)
	return nil
}

func (c *structCore) Delete(item any, field string) error {
	rv, plans, ok := c.value(item)
	if !ok {
		return newFieldError(ErrFieldNotFound, typeName(item), field, nil)
	}
	plan, ok := plans.lookup(field)
	if !ok {
		return newFieldError(ErrFieldNotFound, plans.typeName, field, nil)
	}
	fv := rv.FieldByIndex(plan.index)
	if plan.nilable && fv.IsNil() {
		return newFieldError(ErrFieldNotFound, plans.typeName, field, nil)
	}
	if !fv.CanSet() {
		return newFieldError(ErrNilItem, plans.typeName, field, nil)
	}
	fv.Set(reflect.Zero(plan.typ))
	return nil
}

// Keys yields populated fields in declaration order.
func (c *structCore) Keys(item any) iter.Seq[string] {
	return func(yield func(string) bool) {
		rv, plans, ok := c.value(item)
		if !ok {
			return
		}
		for i := range plans.fields {
			plan := &plans.fields[i]
			if plan.nilable && rv.FieldByIndex(plan.index).IsNil() {
				continue
			}
			if !yield(plan.key) {
				return
			}
		}
	}
}

func (c *structCore) Len(item any) int {
	n := 0
	for range c.Keys(item) {
		n++
	}
	return n
}

func (c *structCore) FieldNames(item any) []string {
	_, plans, ok := c.value(item)
	if !ok {
		return nil
	}
	names := make([]string, len(plans.fields))
	for i, plan := range plans.fields {
		names[i] = plan.key
	}
	return names
}

package itemadapter

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnsupportedType indicates no registered strategy accepts a value or type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrFieldNotFound indicates a get or delete referenced a field the item does not hold.
	ErrFieldNotFound = errors.New("field not found")

	// ErrUnknownField indicates a set referenced a field outside a closed record's declared set.
	ErrUnknownField = errors.New("unknown field")

	// ErrFieldType indicates a value is not assignable to the field's type.
	ErrFieldType = errors.New("value not assignable to field")

	// ErrNilItem indicates a write to an item that cannot accept writes (nil map, nil pointer).
	ErrNilItem = errors.New("nil item")

	// ErrInvalidTag indicates an item struct tag could not be parsed.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrUnknownStrategy indicates a configuration named a strategy that is not available.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrInvalidConfig indicates a configuration could not be parsed or is empty.
	ErrInvalidConfig = errors.New("invalid config")
)

// TypeError reports a value or type that no strategy accepts.
type TypeError struct {
	Err  error        // Underlying sentinel error (ErrUnsupportedType)
	Type reflect.Type // Offending type, nil for a nil value
}

func (e *TypeError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("%s: <nil>", e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Type.String())
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// FieldError represents a failed field operation.
// It wraps a sentinel error with the item type and field name.
type FieldError struct {
	Err   error  // Underlying sentinel error (ErrFieldNotFound, ErrUnknownField, etc.)
	Type  string // Item type name
	Field string // Field name that triggered the error
	Cause error  // Optional original error
}

func (e *FieldError) Error() string {
	msg := e.Err.Error()
	switch {
	case e.Type != "" && e.Field != "":
		msg = fmt.Sprintf("%s: %s does not support field %q", msg, e.Type, e.Field)
	case e.Field != "":
		msg = fmt.Sprintf("%s (field %s)", msg, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ConfigError represents a registry configuration error.
type ConfigError struct {
	Err      error  // Underlying sentinel error (ErrUnknownStrategy, ErrInvalidConfig)
	Strategy string // Strategy name, if any
	Cause    error  // Original error from the decoder
}

func (e *ConfigError) Error() string {
	if e.Strategy != "" {
		return fmt.Sprintf("%s %q", e.Err.Error(), e.Strategy)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// newTypeError creates a TypeError for a value or type without a strategy.
func newTypeError(t reflect.Type) error {
	return &TypeError{
		Err:  ErrUnsupportedType,
		Type: t,
	}
}

// newFieldError creates a FieldError for a failed field operation.
func newFieldError(sentinel error, typeName, field string, cause error) error {
	return &FieldError{
		Err:   sentinel,
		Type:  typeName,
		Field: field,
		Cause: cause,
	}
}

// newConfigError creates a ConfigError.
func newConfigError(sentinel error, strategy string, cause error) error {
	return &ConfigError{
		Err:      sentinel,
		Strategy: strategy,
		Cause:    cause,
	}
}

package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Type defines the contract for parameter value validation.
type Type interface {
	// Name returns the catalog name of the type (e.g. "string", "number").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Catalog Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// NumberType validates numeric values (integer or floating point).
type NumberType struct{}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Validate(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64, json.Number:
		return nil
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

// IntegerType validates integer values. Whole floats are accepted because
// JSON unmarshaling produces float64 for every number.
type IntegerType struct{}

func (t *IntegerType) Name() string { return "integer" }

func (t *IntegerType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		return nil
	case float64:
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected integer, got float (not a whole number)")
	case json.Number:
		if _, err := v.Int64(); err != nil {
			return fmt.Errorf("expected integer, got %s", v.String())
		}
		return nil
	default:
		return fmt.Errorf("expected integer, got %T", value)
	}
}

// BooleanType validates boolean values.
type BooleanType struct{}

func (t *BooleanType) Name() string { return "boolean" }

func (t *BooleanType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected boolean, got %T", value)
	}
	return nil
}

// ArrayType validates slice values. Element types are not declared in the
// catalog format, so elements are unchecked here; tool derivation applies
// stricter per-element rules where needed.
type ArrayType struct{}

func (t *ArrayType) Name() string { return "array" }

func (t *ArrayType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected array, got %T", value)
	}
	return nil
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Number creates a numeric type validator.
func Number() Type { return &NumberType{} }

// Integer creates an integer type validator.
func Integer() Type { return &IntegerType{} }

// Boolean creates a boolean type validator.
func Boolean() Type { return &BooleanType{} }

// Array creates an array type validator.
func Array() Type { return &ArrayType{} }

// ParseType converts a catalog type name to a Type.
func ParseType(typeStr string) (Type, error) {
	switch typeStr {
	case "string":
		return String(), nil
	case "number":
		return Number(), nil
	case "integer":
		return Integer(), nil
	case "boolean":
		return Boolean(), nil
	case "array":
		return Array(), nil
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", typeStr)
	}
}

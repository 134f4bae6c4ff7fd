package schema

import (
	"fmt"
	"reflect"
)

// Type defines the contract for value normalization.
// Implementations determine how raw values are checked and canonicalized.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Normalize checks that a value conforms to this type and returns its
	// canonical representation.
	Normalize(value any) (any, error)
}

// --- Built-in Type Implementations ---

// StringType normalizes string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Normalize(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %T", value)
	}
	return s, nil
}

// IntType normalizes integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Normalize(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == float64(int64(v)) {
			return int(v), nil
		}
		return nil, fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return nil, fmt.Errorf("expected int, got %T", value)
	}
}

// FloatType normalizes floating-point values.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Normalize(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return nil, fmt.Errorf("expected float, got %T", value)
	}
}

// BoolType normalizes boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Normalize(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("expected bool, got %T", value)
	}
	return b, nil
}

// ListType normalizes slices of a specific element type.
type ListType struct {
	elemType Type
}

func (t *ListType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *ListType) Normalize(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected list, got %T", value)
	}

	// Normalize each element
	result := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem, err := t.elemType.Normalize(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		result = append(result, elem)
	}
	return result, nil
}

// CustomType applies a user-defined normalization function.
type CustomType struct {
	name      string
	normalize func(any) (any, error)
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Normalize(value any) (any, error) {
	return t.normalize(value)
}

// --- Factory Functions ---

// String creates a string type normalizer.
func String() Type { return &StringType{} }

// Int creates an integer type normalizer.
func Int() Type { return &IntType{} }

// Float creates a float type normalizer.
func Float() Type { return &FloatType{} }

// Bool creates a boolean type normalizer.
func Bool() Type { return &BoolType{} }

// List creates a list type normalizer for elements of the given type.
func List(elemType Type) Type {
	return &ListType{elemType: elemType}
}

// Custom creates a custom type normalizer with a user-defined function.
func Custom(name string, normalize func(any) (any, error)) Type {
	return &CustomType{name: name, normalize: normalize}
}

// ParseType converts a string type name to a Type.
// Supports basic types: "string", "int", "float", "bool", "[string]", "[int]", etc.
func ParseType(typeStr string) (Type, error) {
	// Handle list types: [string], [int], etc.
	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elemTypeStr := typeStr[1 : len(typeStr)-1]
		elemType, err := ParseType(elemTypeStr)
		if err != nil {
			return nil, err
		}
		return List(elemType), nil
	}

	// Handle built-in types
	switch typeStr {
	case "string":
		return String(), nil
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// Package schema provides a type system for normalizing loosely-typed values.
//
// It defines built-in types (string, int, float, bool) with support for lists
// and custom normalizers. Normalizing a value checks it against the expected
// type and returns the canonical representation (for example, whole-number
// floats decoded from JSON become ints).
//
// Basic usage:
//
//	t := schema.List(schema.String())
//	value, err := t.Normalize([]any{"alpha", "beta"})
//
// Field schemas map names to types, enabling normalization of structured
// customization arguments:
//
//	fields := schema.Schema{
//	    "maxValue": schema.Int(),
//	    "labels":   schema.List(schema.String()),
//	}
//	normalized, err := fields.Normalize(data)
//
// Types can also be parsed from strings ("string", "int", "[string]", ...),
// which is how parameter specifications declare their object types.
package schema

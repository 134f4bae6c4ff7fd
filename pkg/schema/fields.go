package schema

// Schema is a map of field names to their expected types.
// Example: {"maxValue": Int(), "labels": List(String())}
type Schema map[string]Type

// Normalize checks that data conforms to the schema and returns a map with
// every declared field in canonical form. Fields absent from the schema are
// passed through untouched. All failures found are aggregated.
func (s Schema) Normalize(data map[string]any) (map[string]any, error) {
	if len(s) == 0 {
		// No schema = no normalization
		return data, nil
	}

	result := make(map[string]any, len(data))
	for key, value := range data {
		result[key] = value
	}

	var errs []error
	for fieldName, fieldType := range s {
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &NormalizationError{
				Key:    fieldName,
				Reason: "required",
				Value:  nil,
			})
			continue
		}

		normalized, err := fieldType.Normalize(value)
		if err != nil {
			errs = append(errs, &NormalizationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
			continue
		}
		result[fieldName] = normalized
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return result, nil
}

// ParseTypeMap converts a map of field names to type strings into a Schema.
// Example: {"maxValue": "int", "labels": "[string]"}
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema)
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, &NormalizationError{Key: key, Reason: err.Error()}
		}
		result[key] = t
	}
	return result, nil
}

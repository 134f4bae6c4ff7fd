package migrate

// Small accessors over the loosely typed document tree. Every shape mismatch
// is a ConversionError; the pipeline has no recovery story for malformed
// input.

func mapField(d map[string]any, key string) (map[string]any, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return nil, Conversionf("missing field %q", key)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, Conversionf("field %q: expected map, got %T", key, v)
	}
	return m, nil
}

func listField(d map[string]any, key string) ([]any, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return nil, Conversionf("missing field %q", key)
	}
	l, ok := v.([]any)
	if !ok {
		return nil, Conversionf("field %q: expected list, got %T", key, v)
	}
	return l, nil
}

func stringField(d map[string]any, key string) (string, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return "", Conversionf("missing field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", Conversionf("field %q: expected string, got %T", key, v)
	}
	return s, nil
}

func intField(d map[string]any, key string) (int, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return 0, Conversionf("missing field %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == float64(int64(n)) {
			return int(n), nil
		}
	}
	return 0, Conversionf("field %q: expected int, got %T", key, v)
}

// optString returns "" for a missing or nil value and errors only on a
// non-string.
func optString(d map[string]any, key string) (string, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", Conversionf("field %q: expected string, got %T", key, v)
	}
	return s, nil
}

// eachState iterates the states dict, handing each state's body to fn.
func eachState(states map[string]any, fn func(name string, state map[string]any) error) error {
	for name, raw := range states {
		state, ok := raw.(map[string]any)
		if !ok {
			return Conversionf("state %q: expected map, got %T", name, raw)
		}
		if err := fn(name, state); err != nil {
			return err
		}
	}
	return nil
}

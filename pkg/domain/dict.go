package domain

// Helpers for picking typed fields out of the generic dicts produced by YAML
// or JSON decoding. Each returns a ValidationError naming the offending key
// so FromDict failures are actionable.

import "fmt"

func stringAt(d map[string]any, key string) (string, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return "", Validationf("missing field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", Validationf("field %q: expected string, got %T", key, v)
	}
	return s, nil
}

// optStringAt treats a missing or nil value as the empty string.
func optStringAt(d map[string]any, key string) (string, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", Validationf("field %q: expected string, got %T", key, v)
	}
	return s, nil
}

func boolAt(d map[string]any, key string) (bool, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, Validationf("field %q: expected bool, got %T", key, v)
	}
	return b, nil
}

func intAt(d map[string]any, key string) (int, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return 0, Validationf("missing field %q", key)
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
	return 0, Validationf("field %q: expected int, got %T", key, v)
}

func mapAt(d map[string]any, key string) (map[string]any, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return map[string]any{}, nil
	}
	m, err := asStringMap(v)
	if err != nil {
		return nil, Validationf("field %q: %v", key, err)
	}
	return m, nil
}

func listAt(d map[string]any, key string) ([]any, error) {
	v, ok := d[key]
	if !ok || v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, Validationf("field %q: expected list, got %T", key, v)
	}
	return l, nil
}

// asStringMap accepts both map[string]any and the map[any]any shape older
// YAML decoders produce.
func asStringMap(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("expected string key, got %T", k)
			}
			out[ks] = val
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

// mapList converts a decoded list into a slice of string-keyed maps.
func mapList(v any, key string) ([]map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, Validationf("field %q: expected list, got %T", key, v)
	}
	out := make([]map[string]any, 0, len(raw))
	for i, item := range raw {
		m, err := asStringMap(item)
		if err != nil {
			return nil, Validationf("field %q, element %d: %v", key, i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

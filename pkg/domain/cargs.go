package domain

import "github.com/lessonforge/lessonforge/pkg/schema"

// fullCustomizationArgs completes user-supplied customization arguments
// against the declared specs. The result contains exactly the declared
// names: missing ones are filled with their defaults and undeclared ones are
// dropped with a warning. Values are normalized against each spec's schema;
// normalization failures are deliberately absorbed here because customization
// values may hold parameter references that only resolve at play time.
// validateCustomizationArgs applies the strict check.
func fullCustomizationArgs(caps *Capabilities, provided map[string]any, specs []CustomizationArgSpec) map[string]any {
	full := make(map[string]any, len(specs))
	declared := make(map[string]bool, len(specs))
	for _, spec := range specs {
		declared[spec.Name] = true
		raw, ok := provided[spec.Name]
		if !ok {
			full[spec.Name] = map[string]any{"value": spec.DefaultValue}
			continue
		}
		entry, err := asStringMap(raw)
		if err != nil {
			full[spec.Name] = map[string]any{"value": raw}
			continue
		}
		out := make(map[string]any, len(entry))
		for k, v := range entry {
			out[k] = v
		}
		if value, ok := out["value"]; ok && spec.Schema != nil {
			if normalized, err := spec.Schema.Normalize(value); err == nil {
				out["value"] = normalized
			}
		}
		full[spec.Name] = out
	}
	for name := range provided {
		if !declared[name] {
			caps.log().Warn("dropping undeclared customization arg", "name", name)
		}
	}
	return full
}

// validateCustomizationArgs checks completed customization arguments: the
// name set must match the declared specs exactly and every value must
// normalize against its schema.
func validateCustomizationArgs(args map[string]any, specs []CustomizationArgSpec) error {
	declared := make(map[string]schema.Type, len(specs))
	for _, spec := range specs {
		declared[spec.Name] = spec.Schema
	}
	for name := range args {
		if _, ok := declared[name]; !ok {
			return Validationf("extra customization arg: %s", name)
		}
	}
	for _, spec := range specs {
		raw, ok := args[spec.Name]
		if !ok {
			return Validationf("customization arg is missing: %s", spec.Name)
		}
		entry, err := asStringMap(raw)
		if err != nil {
			return Validationf("customization arg %q: %v", spec.Name, err)
		}
		if spec.Schema == nil {
			continue
		}
		if value, ok := entry["value"]; ok {
			if _, err := spec.Schema.Normalize(value); err != nil {
				if !holdsParamReference(value) {
					return Validationf("customization arg %q: %v", spec.Name, err)
				}
			}
		}
	}
	return nil
}

// holdsParamReference reports whether value contains a {{name}} placeholder
// somewhere, in which case type checks are deferred to play time.
func holdsParamReference(value any) bool {
	switch v := value.(type) {
	case string:
		return paramPlaceholderRE.MatchString(v)
	case []any:
		for _, item := range v {
			if holdsParamReference(item) {
				return true
			}
		}
	case map[string]any:
		for _, item := range v {
			if holdsParamReference(item) {
				return true
			}
		}
	}
	return false
}

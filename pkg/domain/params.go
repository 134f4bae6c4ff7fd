package domain

import (
	"github.com/lessonforge/lessonforge/pkg/schema"
)

// ParamSpec declares the type of an exploration parameter.
type ParamSpec struct {
	// ObjType names the value type, e.g. "string" or "int".
	ObjType string
}

// NewParamSpecFromDict builds a ParamSpec from its dict form.
func NewParamSpecFromDict(d map[string]any) (*ParamSpec, error) {
	objType, err := stringAt(d, "obj_type")
	if err != nil {
		return nil, err
	}
	return &ParamSpec{ObjType: objType}, nil
}

// ToDict returns the persistable form of the spec.
func (p *ParamSpec) ToDict() map[string]any {
	return map[string]any{"obj_type": p.ObjType}
}

// Validate checks that ObjType names a known value type.
func (p *ParamSpec) Validate() error {
	if _, err := schema.ParseType(p.ObjType); err != nil {
		return Validationf("invalid object type for parameter: %s", p.ObjType)
	}
	return nil
}

// ParamChange assigns a new value to an exploration parameter at runtime,
// using a named value generator.
type ParamChange struct {
	Name              string
	GeneratorID       string
	CustomizationArgs map[string]any
}

// NewParamChangeFromDict builds a ParamChange from its dict form.
func NewParamChangeFromDict(d map[string]any) (*ParamChange, error) {
	name, err := stringAt(d, "name")
	if err != nil {
		return nil, err
	}
	generatorID, err := stringAt(d, "generator_id")
	if err != nil {
		return nil, err
	}
	customizationArgs, err := mapAt(d, "customization_args")
	if err != nil {
		return nil, err
	}
	return &ParamChange{
		Name:              name,
		GeneratorID:       generatorID,
		CustomizationArgs: customizationArgs,
	}, nil
}

// ToDict returns the persistable form of the change.
func (p *ParamChange) ToDict() map[string]any {
	return map[string]any{
		"name":               p.Name,
		"generator_id":       p.GeneratorID,
		"customization_args": p.CustomizationArgs,
	}
}

// Validate checks the parameter name against the reserved list.
func (p *ParamChange) Validate() error {
	if p.Name == "" {
		return Validationf("missing parameter name")
	}
	for _, reserved := range InvalidParameterNames {
		if p.Name == reserved {
			return Validationf("the parameter name %q is reserved", p.Name)
		}
	}
	if !isAlphanumeric(p.Name) {
		return Validationf("only parameter names with characters in [a-zA-Z0-9] are accepted, got %q", p.Name)
	}
	return nil
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func paramChangesFromList(v any, key string) ([]*ParamChange, error) {
	dicts, err := mapList(v, key)
	if err != nil {
		return nil, err
	}
	changes := make([]*ParamChange, 0, len(dicts))
	for _, d := range dicts {
		c, err := NewParamChangeFromDict(d)
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, nil
}

func paramChangesToList(changes []*ParamChange) []any {
	out := make([]any, 0, len(changes))
	for _, c := range changes {
		out = append(out, c.ToDict())
	}
	return out
}

package domain

import "sort"

const maxGadgetNameLength = 20

// GadgetInstance is a configured gadget placed in one panel of the skin and
// shown during the states it declares.
type GadgetInstance struct {
	Type string
	// Name is unique across the exploration.
	Name              string
	VisibleInStates   []string
	CustomizationArgs map[string]any
}

// NewGadgetInstanceFromDict builds a GadgetInstance from its dict form,
// completing customization arguments against the gadget type when known.
func NewGadgetInstanceFromDict(caps *Capabilities, d map[string]any) (*GadgetInstance, error) {
	gadgetType, err := stringAt(d, "gadget_type")
	if err != nil {
		return nil, err
	}
	name, err := stringAt(d, "gadget_name")
	if err != nil {
		return nil, err
	}
	rawStates, err := listAt(d, "visible_in_states")
	if err != nil {
		return nil, err
	}
	visibleIn := make([]string, 0, len(rawStates))
	for i, item := range rawStates {
		s, ok := item.(string)
		if !ok {
			return nil, Validationf("visible_in_states element %d: expected string, got %T", i, item)
		}
		visibleIn = append(visibleIn, s)
	}
	args, err := mapAt(d, "customization_args")
	if err != nil {
		return nil, err
	}
	if spec := lookupGadget(caps, gadgetType); spec != nil {
		args = fullCustomizationArgs(caps, args, spec.CustomizationArgSpecs())
	}
	return &GadgetInstance{
		Type:              gadgetType,
		Name:              name,
		VisibleInStates:   visibleIn,
		CustomizationArgs: args,
	}, nil
}

func lookupGadget(caps *Capabilities, gadgetType string) GadgetSpec {
	if caps == nil || caps.Gadgets == nil || gadgetType == "" {
		return nil
	}
	spec, err := caps.Gadgets.GadgetByType(gadgetType)
	if err != nil {
		return nil
	}
	return spec
}

// ToDict returns the persistable form of the gadget.
func (g *GadgetInstance) ToDict() map[string]any {
	states := make([]any, 0, len(g.VisibleInStates))
	for _, s := range g.VisibleInStates {
		states = append(states, s)
	}
	return map[string]any{
		"gadget_type":        g.Type,
		"gadget_name":        g.Name,
		"visible_in_states":  states,
		"customization_args": g.CustomizationArgs,
	}
}

// Width returns the gadget's rendered width in pixels per its type spec, or
// zero for an unknown type.
func (g *GadgetInstance) Width(caps *Capabilities) int {
	if spec := lookupGadget(caps, g.Type); spec != nil {
		return spec.Width(g.CustomizationArgs)
	}
	return 0
}

// Height returns the gadget's rendered height in pixels per its type spec,
// or zero for an unknown type.
func (g *GadgetInstance) Height(caps *Capabilities) int {
	if spec := lookupGadget(caps, g.Type); spec != nil {
		return spec.Height(g.CustomizationArgs)
	}
	return 0
}

// Validate checks the gadget's name, type, visibility list and customization
// arguments.
func (g *GadgetInstance) Validate(caps *Capabilities) error {
	if err := ValidateGadgetName(g.Name); err != nil {
		return err
	}
	if caps == nil || caps.Gadgets == nil {
		return Validationf("unknown gadget type: %s", g.Type)
	}
	spec, err := caps.Gadgets.GadgetByType(g.Type)
	if err != nil {
		return Validationf("unknown gadget type: %s", g.Type)
	}
	if err := validateCustomizationArgs(g.CustomizationArgs, spec.CustomizationArgSpecs()); err != nil {
		return err
	}
	if err := spec.Validate(g.CustomizationArgs); err != nil {
		return err
	}
	if len(g.VisibleInStates) == 0 {
		return Validationf("gadget %q should be visible in at least one state", g.Name)
	}
	seen := make(map[string]int, len(g.VisibleInStates))
	for _, s := range g.VisibleInStates {
		seen[s]++
	}
	var dups []string
	for s, n := range seen {
		if n > 1 {
			dups = append(dups, s)
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		return Validationf("gadget %q has duplicate visibility entries: %v", g.Name, dups)
	}
	return nil
}

// ValidateGadgetName checks a gadget name for emptiness, length and
// character set. Only letters, digits and spaces are allowed.
func ValidateGadgetName(name string) error {
	if name == "" {
		return Validationf("gadget name must not be an empty string")
	}
	if len(name) > maxGadgetNameLength {
		return Validationf("gadget name %q exceeds maximum length of %d", name, maxGadgetNameLength)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == ' ':
		default:
			return Validationf("gadget names may only contain letters, digits and spaces, got %q", name)
		}
	}
	return nil
}

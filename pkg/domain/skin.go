package domain

import "sort"

// SkinInstance is the gadget layout of an exploration: named panels, each
// holding an ordered list of gadgets.
type SkinInstance struct {
	SkinID string
	Panels map[string][]*GadgetInstance
}

// NewSkinInstance returns an empty layout with one empty slot per panel the
// registry declares.
func NewSkinInstance(caps *Capabilities, skinID string) *SkinInstance {
	panels := map[string][]*GadgetInstance{}
	if caps != nil && caps.Panels != nil {
		for _, name := range caps.Panels.PanelNames() {
			panels[name] = []*GadgetInstance{}
		}
	}
	return &SkinInstance{SkinID: skinID, Panels: panels}
}

// NewSkinInstanceFromDict builds a SkinInstance from its dict form:
// {"panels_contents": {panelName: [gadget dicts]}}.
func NewSkinInstanceFromDict(caps *Capabilities, skinID string, d map[string]any) (*SkinInstance, error) {
	panelsContents, err := mapAt(d, "panels_contents")
	if err != nil {
		return nil, err
	}
	skin := NewSkinInstance(caps, skinID)
	for panelName, raw := range panelsContents {
		gadgetDicts, err := mapList(raw, panelName)
		if err != nil {
			return nil, err
		}
		gadgets := make([]*GadgetInstance, 0, len(gadgetDicts))
		for _, gd := range gadgetDicts {
			g, err := NewGadgetInstanceFromDict(caps, gd)
			if err != nil {
				return nil, err
			}
			gadgets = append(gadgets, g)
		}
		skin.Panels[panelName] = gadgets
	}
	return skin, nil
}

// ToDict returns the persistable form of the layout.
func (s *SkinInstance) ToDict() map[string]any {
	panelsContents := map[string]any{}
	for panelName, gadgets := range s.Panels {
		list := make([]any, 0, len(gadgets))
		for _, g := range gadgets {
			list = append(list, g.ToDict())
		}
		panelsContents[panelName] = list
	}
	return map[string]any{"panels_contents": panelsContents}
}

// AllGadgets returns every gadget in the layout, panel by panel in sorted
// panel order.
func (s *SkinInstance) AllGadgets() []*GadgetInstance {
	names := make([]string, 0, len(s.Panels))
	for name := range s.Panels {
		names = append(names, name)
	}
	sort.Strings(names)
	var gadgets []*GadgetInstance
	for _, name := range names {
		gadgets = append(gadgets, s.Panels[name]...)
	}
	return gadgets
}

// StateNamesRequiredByGadgets returns the sorted union of state names any
// gadget claims visibility for.
func (s *SkinInstance) StateNamesRequiredByGadgets() []string {
	seen := map[string]bool{}
	for _, g := range s.AllGadgets() {
		for _, stateName := range g.VisibleInStates {
			seen[stateName] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every gadget, gadget name uniqueness across panels, panel
// existence, and that each panel's gadgets fit its declared capacity in every
// state they share.
func (s *SkinInstance) Validate(caps *Capabilities) error {
	seenNames := map[string]bool{}
	for _, g := range s.AllGadgets() {
		if err := g.Validate(caps); err != nil {
			return err
		}
		if seenNames[g.Name] {
			return Validationf("duplicate gadget name: %s", g.Name)
		}
		seenNames[g.Name] = true
	}

	panelNames := make([]string, 0, len(s.Panels))
	for name := range s.Panels {
		panelNames = append(panelNames, name)
	}
	sort.Strings(panelNames)
	for _, panelName := range panelNames {
		gadgets := s.Panels[panelName]
		if len(gadgets) == 0 {
			continue
		}
		if caps == nil || caps.Panels == nil {
			return Validationf("unknown gadget panel: %s", panelName)
		}
		panel, err := caps.Panels.PanelByName(panelName)
		if err != nil {
			return Validationf("unknown gadget panel: %s", panelName)
		}
		if err := validatePanelFit(caps, panel, gadgets); err != nil {
			return err
		}
	}
	return nil
}

// validatePanelFit checks, for each state any of the panel's gadgets is
// visible in, that the simultaneously visible gadgets fit the panel's gadget
// count and pixel capacity.
func validatePanelFit(caps *Capabilities, panel PanelSpec, gadgets []*GadgetInstance) error {
	byState := map[string][]*GadgetInstance{}
	for _, g := range gadgets {
		for _, stateName := range g.VisibleInStates {
			byState[stateName] = append(byState[stateName], g)
		}
	}

	stateNames := make([]string, 0, len(byState))
	for name := range byState {
		stateNames = append(stateNames, name)
	}
	sort.Strings(stateNames)

	for _, stateName := range stateNames {
		visible := byState[stateName]
		if len(visible) > panel.MaxGadgets {
			return Validationf(
				"panel %q can only have %d gadget(s) visible at a time, but state %q has %d",
				panel.Name, panel.MaxGadgets, stateName, len(visible))
		}
		if panel.StackableAxis != GadgetPanelAxisHorizontal {
			return Validationf("unsupported stackable axis for panel %q: %s", panel.Name, panel.StackableAxis)
		}
		width := 0
		height := 0
		for _, g := range visible {
			width += g.Width(caps)
			if h := g.Height(caps); h > height {
				height = h
			}
		}
		if len(visible) > 1 {
			width += panel.PixelsBetweenGadgets * (len(visible) - 1)
		}
		if width > panel.Width {
			return Validationf(
				"size exceeded: panel %q width of %d exceeds limit of %d in state %q",
				panel.Name, width, panel.Width, stateName)
		}
		if height > panel.Height {
			return Validationf(
				"size exceeded: panel %q height of %d exceeds limit of %d in state %q",
				panel.Name, height, panel.Height, stateName)
		}
	}
	return nil
}

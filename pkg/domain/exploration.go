package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lessonforge/lessonforge/pkg/migrate"
)

// Exploration is the full document: metadata, the state graph, parameter
// declarations and the gadget layout.
type Exploration struct {
	ID           string
	Title        string
	Category     string
	Objective    string
	LanguageCode string
	// Tags are lowercase keywords used for discovery.
	Tags        []string
	Blurb       string
	AuthorNotes string

	StatesSchemaVersion int
	InitStateName       string
	States              map[string]*State

	ParamSpecs   map[string]*ParamSpec
	ParamChanges []*ParamChange

	Skin *SkinInstance

	Version     int
	CreatedOn   time.Time
	LastUpdated time.Time
}

// ValidateStateName checks a candidate state name: non-empty, bounded length,
// no structural characters, tidy whitespace, and not a reserved placeholder.
func ValidateStateName(name string) error {
	if name == "" {
		return Validationf("state name must not be an empty string")
	}
	if len(name) > maxStateNameLength {
		return Validationf("state name %q exceeds maximum length of %d", name, maxStateNameLength)
	}
	if strings.ContainsAny(name, invalidNameChars) {
		return Validationf("invalid character in state name: %s", name)
	}
	if strings.TrimSpace(name) != name {
		return Validationf("state name must not start or end with whitespace: %q", name)
	}
	if strings.Contains(name, "  ") {
		return Validationf("adjacent whitespace in state name is not allowed: %q", name)
	}
	lowered := strings.ToLower(name)
	for _, reserved := range reservedStateNames {
		if lowered == reserved {
			return Validationf("invalid state name: %s", name)
		}
	}
	return nil
}

// NewDefaultExploration returns a fresh exploration with a single default
// initial state and an empty gadget layout.
func NewDefaultExploration(caps *Capabilities, id, title, category, objective, languageCode string) *Exploration {
	return &Exploration{
		ID:                  id,
		Title:               title,
		Category:            category,
		Objective:           objective,
		LanguageCode:        languageCode,
		Tags:                []string{},
		StatesSchemaVersion: migrate.CurrentStatesSchemaVersion,
		InitStateName:       DefaultInitStateName,
		States: map[string]*State{
			DefaultInitStateName: NewDefaultState(caps, DefaultInitStateName),
		},
		ParamSpecs: map[string]*ParamSpec{},
		Skin:       NewSkinInstance(caps, DefaultSkinID),
	}
}

// NewExplorationFromDict reconstructs an exploration from its current-schema
// dict form. Construction goes through the same mutation operations editors
// use: the default shell's seeded state is renamed to the incoming initial
// state, the remaining states are added as placeholders, and each placeholder
// is then overwritten from its per-state dict.
func NewExplorationFromDict(caps *Capabilities, d map[string]any) (*Exploration, error) {
	id, err := optStringAt(d, "id")
	if err != nil {
		return nil, err
	}
	title, err := optStringAt(d, "title")
	if err != nil {
		return nil, err
	}
	category, err := optStringAt(d, "category")
	if err != nil {
		return nil, err
	}
	objective, err := optStringAt(d, "objective")
	if err != nil {
		return nil, err
	}
	languageCode, err := optStringAt(d, "language_code")
	if err != nil {
		return nil, err
	}

	exp := NewDefaultExploration(caps, id, title, category, objective, languageCode)

	rawTags, err := listAt(d, "tags")
	if err != nil {
		return nil, err
	}
	for i, raw := range rawTags {
		tag, ok := raw.(string)
		if !ok {
			return nil, Validationf("tag element %d: expected string, got %T", i, raw)
		}
		exp.Tags = append(exp.Tags, tag)
	}
	if exp.Blurb, err = optStringAt(d, "blurb"); err != nil {
		return nil, err
	}
	if exp.AuthorNotes, err = optStringAt(d, "author_notes"); err != nil {
		return nil, err
	}

	paramSpecDicts, err := mapAt(d, "param_specs")
	if err != nil {
		return nil, err
	}
	for name, raw := range paramSpecDicts {
		sd, err := asStringMap(raw)
		if err != nil {
			return nil, Validationf("param spec %q: %v", name, err)
		}
		spec, err := NewParamSpecFromDict(sd)
		if err != nil {
			return nil, Validationf("param spec %q: %v", name, err)
		}
		exp.ParamSpecs[name] = spec
	}
	if exp.ParamChanges, err = paramChangesFromList(d["param_changes"], "param_changes"); err != nil {
		return nil, err
	}

	initStateName, err := stringAt(d, "init_state_name")
	if err != nil {
		return nil, err
	}
	if err := exp.RenameState(DefaultInitStateName, initStateName); err != nil {
		return nil, err
	}

	statesDict, err := mapAt(d, "states")
	if err != nil {
		return nil, err
	}
	var otherNames []string
	for name := range statesDict {
		if name != initStateName {
			otherNames = append(otherNames, name)
		}
	}
	sort.Strings(otherNames)
	if err := exp.AddStates(caps, otherNames); err != nil {
		return nil, err
	}
	for name, raw := range statesDict {
		sd, err := asStringMap(raw)
		if err != nil {
			return nil, Validationf("state %q: %v", name, err)
		}
		st, err := NewStateFromDict(caps, sd)
		if err != nil {
			return nil, Validationf("state %q: %v", name, err)
		}
		*exp.States[name] = *st
	}

	if raw, ok := d["skin_customizations"]; ok && raw != nil {
		skinDict, err := asStringMap(raw)
		if err != nil {
			return nil, Validationf("field \"skin_customizations\": %v", err)
		}
		if exp.Skin, err = NewSkinInstanceFromDict(caps, DefaultSkinID, skinDict); err != nil {
			return nil, err
		}
	}

	if v, ok := d["states_schema_version"]; ok && v != nil {
		if exp.StatesSchemaVersion, err = intAt(d, "states_schema_version"); err != nil {
			return nil, err
		}
	}
	return exp, nil
}

// ToDict returns the current-schema dict form of the exploration.
func (e *Exploration) ToDict(caps *Capabilities) map[string]any {
	states := map[string]any{}
	for name, st := range e.States {
		states[name] = st.ToDict(caps)
	}
	paramSpecs := map[string]any{}
	for name, spec := range e.ParamSpecs {
		paramSpecs[name] = spec.ToDict()
	}
	tags := make([]any, 0, len(e.Tags))
	for _, t := range e.Tags {
		tags = append(tags, t)
	}
	return map[string]any{
		"id":                    e.ID,
		"title":                 e.Title,
		"category":              e.Category,
		"objective":             e.Objective,
		"language_code":         e.LanguageCode,
		"tags":                  tags,
		"blurb":                 e.Blurb,
		"author_notes":          e.AuthorNotes,
		"states_schema_version": e.StatesSchemaVersion,
		"init_state_name":       e.InitStateName,
		"states":                states,
		"param_specs":           paramSpecs,
		"param_changes":         paramChangesToList(e.ParamChanges),
		"skin_customizations":   e.Skin.ToDict(),
	}
}

// ToPlayerDict returns the subset of the exploration the player frontend
// needs.
func (e *Exploration) ToPlayerDict(caps *Capabilities) map[string]any {
	states := map[string]any{}
	for name, st := range e.States {
		states[name] = st.ToDict(caps)
	}
	paramSpecs := map[string]any{}
	for name, spec := range e.ParamSpecs {
		paramSpecs[name] = spec.ToDict()
	}
	return map[string]any{
		"init_state_name":     e.InitStateName,
		"title":               e.Title,
		"states":              states,
		"param_changes":       paramChangesToList(e.ParamChanges),
		"param_specs":         paramSpecs,
		"language_code":       e.LanguageCode,
		"skin_customizations": e.Skin.ToDict(),
	}
}

// HasState reports whether the exploration contains a state with this name.
func (e *Exploration) HasState(name string) bool {
	_, ok := e.States[name]
	return ok
}

// StateNames returns all state names, sorted.
func (e *Exploration) StateNames() []string {
	names := make([]string, 0, len(e.States))
	for name := range e.States {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitState returns the initial state.
func (e *Exploration) InitState() *State {
	return e.States[e.InitStateName]
}

// InteractionIDs returns the distinct interaction type ids in use, sorted.
func (e *Exploration) InteractionIDs() []string {
	seen := map[string]bool{}
	for _, st := range e.States {
		if st.Interaction.ID != "" {
			seen[st.Interaction.ID] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TrainableStateNames returns the sorted names of states whose answer groups
// carry enough training data for classifier training.
func (e *Exploration) TrainableStateNames() []string {
	var names []string
	for _, name := range e.StateNames() {
		if e.States[name].CanUndergoClassification() {
			names = append(names, name)
		}
	}
	return names
}

// GadgetTypes returns the distinct gadget types in use, sorted.
func (e *Exploration) GadgetTypes() []string {
	seen := map[string]bool{}
	for _, g := range e.Skin.AllGadgets() {
		seen[g.Type] = true
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ParamSpecsDict returns the parameter declarations as a mapping of parameter
// name to object type, the inverse of UpdateParamSpecs.
func (e *Exploration) ParamSpecsDict() map[string]string {
	specs := make(map[string]string, len(e.ParamSpecs))
	for name, spec := range e.ParamSpecs {
		specs[name] = spec.ObjType
	}
	return specs
}

// ParamChangeDicts returns the exploration-level parameter changes in dict
// form.
func (e *Exploration) ParamChangeDicts() []any {
	return paramChangesToList(e.ParamChanges)
}

// ParamChangeNames returns the distinct parameter names referenced by any
// param change anywhere in the document, sorted.
func (e *Exploration) ParamChangeNames() []string {
	seen := map[string]bool{}
	for _, c := range e.ParamChanges {
		seen[c.Name] = true
	}
	for _, st := range e.States {
		for _, c := range st.ParamChanges {
			seen[c.Name] = true
		}
		for _, o := range st.Interaction.AllOutcomes() {
			for _, c := range o.ParamChanges {
				seen[c.Name] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddStates adds a default state per name. All names are checked before any
// state is added.
func (e *Exploration) AddStates(caps *Capabilities, names []string) error {
	for _, name := range names {
		if err := ValidateStateName(name); err != nil {
			return err
		}
		if e.HasState(name) {
			return fmt.Errorf("%w: %s", ErrDuplicateStateName, name)
		}
	}
	for _, name := range names {
		e.States[name] = NewDefaultState(caps, name)
	}
	return nil
}

// RenameState renames a state and rewrites every reference to it: the
// initial-state pointer, every outcome destination, and gadget visibility
// entries. Renaming a state to itself is a no-op.
func (e *Exploration) RenameState(oldName, newName string) error {
	if !e.HasState(oldName) {
		return fmt.Errorf("%w: %s", ErrStateNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if err := ValidateStateName(newName); err != nil {
		return err
	}
	if e.HasState(newName) {
		return fmt.Errorf("%w: %s", ErrDuplicateStateName, newName)
	}

	if e.InitStateName == oldName {
		e.InitStateName = newName
	}
	e.States[newName] = e.States[oldName]
	delete(e.States, oldName)

	for _, st := range e.States {
		for _, o := range st.Interaction.AllOutcomes() {
			if o.Dest == oldName {
				o.Dest = newName
			}
		}
	}

	for _, g := range e.Skin.AllGadgets() {
		for i, stateName := range g.VisibleInStates {
			if stateName == oldName {
				g.VisibleInStates[i] = newName
			}
		}
	}
	return nil
}

// DeleteState removes a state. Every outcome that pointed at it is rewired
// to self-loop on its own state, and gadget visibility entries are dropped.
// The initial state cannot be deleted, and neither can a state whose removal
// would leave a gadget visible nowhere; both checks run before any mutation.
func (e *Exploration) DeleteState(name string) error {
	if !e.HasState(name) {
		return fmt.Errorf("%w: %s", ErrStateNotFound, name)
	}
	if name == e.InitStateName {
		return fmt.Errorf("%w: %s", ErrInitialStateDeletion, name)
	}
	for _, g := range e.Skin.AllGadgets() {
		remaining := 0
		claims := false
		for _, stateName := range g.VisibleInStates {
			if stateName == name {
				claims = true
			} else {
				remaining++
			}
		}
		if claims && remaining == 0 {
			return Validationf(
				"deleting state %q would leave gadget %q with no visible states", name, g.Name)
		}
	}

	delete(e.States, name)
	for stateName, st := range e.States {
		for _, o := range st.Interaction.AllOutcomes() {
			if o.Dest == name {
				o.Dest = stateName
			}
		}
	}
	for _, g := range e.Skin.AllGadgets() {
		kept := g.VisibleInStates[:0]
		for _, stateName := range g.VisibleInStates {
			if stateName != name {
				kept = append(kept, stateName)
			}
		}
		g.VisibleInStates = kept
	}
	return nil
}

// AddGadget places a gadget into a named panel. The gadget's name must be
// unique across all panels and the panel must exist in the layout.
func (e *Exploration) AddGadget(caps *Capabilities, gadgetDict map[string]any, panelName string) error {
	gadget, err := NewGadgetInstanceFromDict(caps, gadgetDict)
	if err != nil {
		return err
	}
	if err := ValidateGadgetName(gadget.Name); err != nil {
		return err
	}
	for _, g := range e.Skin.AllGadgets() {
		if g.Name == gadget.Name {
			return fmt.Errorf("%w: %s", ErrDuplicateGadgetName, gadget.Name)
		}
	}
	if _, ok := e.Skin.Panels[panelName]; !ok {
		return fmt.Errorf("%w: %s", ErrPanelNotFound, panelName)
	}
	e.Skin.Panels[panelName] = append(e.Skin.Panels[panelName], gadget)
	return nil
}

// RenameGadget renames a gadget. Renaming a gadget to itself is a no-op.
func (e *Exploration) RenameGadget(oldName, newName string) error {
	gadget := e.gadgetByName(oldName)
	if gadget == nil {
		return fmt.Errorf("%w: %s", ErrGadgetNotFound, oldName)
	}
	if oldName == newName {
		return nil
	}
	if err := ValidateGadgetName(newName); err != nil {
		return err
	}
	if e.gadgetByName(newName) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateGadgetName, newName)
	}
	gadget.Name = newName
	return nil
}

// DeleteGadget removes a gadget from whichever panel holds it.
func (e *Exploration) DeleteGadget(name string) error {
	for panelName, gadgets := range e.Skin.Panels {
		for i, g := range gadgets {
			if g.Name == name {
				e.Skin.Panels[panelName] = append(gadgets[:i], gadgets[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s", ErrGadgetNotFound, name)
}

func (e *Exploration) gadgetByName(name string) *GadgetInstance {
	for _, g := range e.Skin.AllGadgets() {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// UpdateTitle sets the exploration's title.
func (e *Exploration) UpdateTitle(title string) { e.Title = title }

// UpdateCategory sets the exploration's category.
func (e *Exploration) UpdateCategory(category string) { e.Category = category }

// UpdateObjective sets the exploration's objective.
func (e *Exploration) UpdateObjective(objective string) { e.Objective = objective }

// UpdateLanguageCode sets the exploration's language code.
func (e *Exploration) UpdateLanguageCode(code string) { e.LanguageCode = code }

// UpdateBlurb sets the exploration's blurb.
func (e *Exploration) UpdateBlurb(blurb string) { e.Blurb = blurb }

// UpdateAuthorNotes sets the exploration's author notes.
func (e *Exploration) UpdateAuthorNotes(notes string) { e.AuthorNotes = notes }

// UpdateTags replaces the exploration's tags.
func (e *Exploration) UpdateTags(tags []string) { e.Tags = tags }

// UpdateInitStateName repoints the initial state. The target must exist.
func (e *Exploration) UpdateInitStateName(name string) error {
	if !e.HasState(name) {
		return fmt.Errorf("%w: invalid new initial state name %s", ErrStateNotFound, name)
	}
	e.InitStateName = name
	return nil
}

// UpdateParamSpecs replaces the parameter declarations from a mapping of
// parameter name to object type.
func (e *Exploration) UpdateParamSpecs(specs map[string]string) {
	paramSpecs := make(map[string]*ParamSpec, len(specs))
	for name, objType := range specs {
		paramSpecs[name] = &ParamSpec{ObjType: objType}
	}
	e.ParamSpecs = paramSpecs
}

// UpdateParamChanges replaces the exploration-level parameter changes.
func (e *Exploration) UpdateParamChanges(dicts []map[string]any) error {
	changes := make([]*ParamChange, 0, len(dicts))
	for _, d := range dicts {
		c, err := NewParamChangeFromDict(d)
		if err != nil {
			return err
		}
		changes = append(changes, c)
	}
	e.ParamChanges = changes
	return nil
}

// Package registry holds the catalogs of interaction, gadget and trigger
// types an exploration may reference, plus the panel geometry of the skin.
// The registries satisfy the capability interfaces the domain package
// consumes, so tests can swap in trimmed-down catalogs.
package registry

import (
	"fmt"
	"sync"

	"github.com/lessonforge/lessonforge/pkg/domain"
	"github.com/lessonforge/lessonforge/pkg/schema"
)

// Interaction is a registered interaction type: its terminality, its
// customization arguments, its rule types and its answer shape.
type Interaction struct {
	InteractionID string
	Terminal      bool
	CustArgSpecs  []domain.CustomizationArgSpec
	// Rules maps each rule type to its declared parameters.
	Rules map[string][]domain.RuleParam
	// AnswerType normalizes learner answers; nil accepts anything as-is.
	AnswerType schema.Type
}

func (i *Interaction) ID() string       { return i.InteractionID }
func (i *Interaction) IsTerminal() bool { return i.Terminal }

func (i *Interaction) CustomizationArgSpecs() []domain.CustomizationArgSpec {
	return i.CustArgSpecs
}

func (i *Interaction) HasRuleType(ruleType string) bool {
	_, ok := i.Rules[ruleType]
	return ok
}

func (i *Interaction) RuleParams(ruleType string) ([]domain.RuleParam, bool) {
	params, ok := i.Rules[ruleType]
	return params, ok
}

func (i *Interaction) NormalizeAnswer(answer any) (any, error) {
	if i.AnswerType == nil {
		return answer, nil
	}
	return i.AnswerType.Normalize(answer)
}

// Interactions is a thread-safe catalog of interaction types.
type Interactions struct {
	mu   sync.RWMutex
	byID map[string]*Interaction
}

// NewInteractions creates an empty catalog.
func NewInteractions() *Interactions {
	return &Interactions{byID: make(map[string]*Interaction)}
}

// Register adds an interaction type. An existing entry with the same id is
// overwritten.
func (r *Interactions) Register(spec *Interaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[spec.InteractionID] = spec
}

// InteractionByID looks up an interaction type.
func (r *Interactions) InteractionByID(id string) (domain.InteractionSpec, error) {
	r.mu.RLock()
	spec, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("interaction not found: %s", id)
	}
	return spec, nil
}

// IsTerminal reports whether the interaction type ends the exploration. It
// satisfies the migration pipeline's registry contract.
func (r *Interactions) IsTerminal(id string) (bool, error) {
	spec, err := r.InteractionByID(id)
	if err != nil {
		return false, err
	}
	return spec.IsTerminal(), nil
}

// Gadget is a registered gadget type with fixed pixel dimensions.
type Gadget struct {
	GadgetType   string
	CustArgSpecs []domain.CustomizationArgSpec
	WidthPx      int
	HeightPx     int
	// ValidateFn applies gadget-specific checks beyond the shared
	// customization-arg validation; nil means none.
	ValidateFn func(customizationArgs map[string]any) error
}

func (g *Gadget) Type() string { return g.GadgetType }

func (g *Gadget) CustomizationArgSpecs() []domain.CustomizationArgSpec {
	return g.CustArgSpecs
}

func (g *Gadget) Width(map[string]any) int  { return g.WidthPx }
func (g *Gadget) Height(map[string]any) int { return g.HeightPx }

func (g *Gadget) Validate(customizationArgs map[string]any) error {
	if g.ValidateFn == nil {
		return nil
	}
	return g.ValidateFn(customizationArgs)
}

// Gadgets is a thread-safe catalog of gadget types.
type Gadgets struct {
	mu     sync.RWMutex
	byType map[string]*Gadget
}

// NewGadgets creates an empty catalog.
func NewGadgets() *Gadgets {
	return &Gadgets{byType: make(map[string]*Gadget)}
}

// Register adds a gadget type, overwriting any existing entry.
func (r *Gadgets) Register(spec *Gadget) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[spec.GadgetType] = spec
}

// GadgetByType looks up a gadget type.
func (r *Gadgets) GadgetByType(gadgetType string) (domain.GadgetSpec, error) {
	r.mu.RLock()
	spec, ok := r.byType[gadgetType]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("gadget not found: %s", gadgetType)
	}
	return spec, nil
}

// Trigger is a registered trigger type.
type Trigger struct {
	TriggerTypeName string
	CustArgSpecs    []domain.CustomizationArgSpec
}

func (t *Trigger) Type() string { return t.TriggerTypeName }

func (t *Trigger) CustomizationArgSpecs() []domain.CustomizationArgSpec {
	return t.CustArgSpecs
}

// Triggers is a thread-safe catalog of trigger types.
type Triggers struct {
	mu     sync.RWMutex
	byType map[string]*Trigger
}

// NewTriggers creates an empty catalog.
func NewTriggers() *Triggers {
	return &Triggers{byType: make(map[string]*Trigger)}
}

// Register adds a trigger type, overwriting any existing entry.
func (r *Triggers) Register(spec *Trigger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType[spec.TriggerTypeName] = spec
}

// TriggerByType looks up a trigger type.
func (r *Triggers) TriggerByType(triggerType string) (domain.TriggerSpec, error) {
	r.mu.RLock()
	spec, ok := r.byType[triggerType]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("trigger not found: %s", triggerType)
	}
	return spec, nil
}

// Panels is a thread-safe catalog of skin panels.
type Panels struct {
	mu     sync.RWMutex
	byName map[string]domain.PanelSpec
}

// NewPanels creates an empty catalog.
func NewPanels() *Panels {
	return &Panels{byName: make(map[string]domain.PanelSpec)}
}

// Register adds a panel, overwriting any existing entry.
func (r *Panels) Register(spec domain.PanelSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[spec.Name] = spec
}

// PanelByName looks up a panel.
func (r *Panels) PanelByName(name string) (domain.PanelSpec, error) {
	r.mu.RLock()
	spec, ok := r.byName[name]
	r.mu.RUnlock()

	if !ok {
		return domain.PanelSpec{}, fmt.Errorf("panel not found: %s", name)
	}
	return spec, nil
}

// PanelNames returns the registered panel names.
func (r *Panels) PanelNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}

package domain

import (
	"io"
	"log/slog"

	"github.com/lessonforge/lessonforge/pkg/schema"
)

// CustomizationArgSpec describes one customization argument accepted by an
// interaction or gadget type: its name, its value schema, and the default
// used when an instance omits it.
type CustomizationArgSpec struct {
	Name         string
	Schema       schema.Type
	DefaultValue any
}

// RuleParam is one named parameter of a rule type.
type RuleParam struct {
	Name string
	Type schema.Type
}

// InteractionSpec describes a registered interaction type.
type InteractionSpec interface {
	// ID returns the interaction type identifier, e.g. "TextInput".
	ID() string
	// IsTerminal reports whether states using this interaction end the
	// exploration.
	IsTerminal() bool
	// CustomizationArgSpecs returns the declared customization arguments in
	// declaration order.
	CustomizationArgSpecs() []CustomizationArgSpec
	// HasRuleType reports whether the interaction declares the named rule
	// type.
	HasRuleType(ruleType string) bool
	// RuleParams returns the declared parameters of a rule type, in
	// declaration order. The second return is false for unknown rule types.
	RuleParams(ruleType string) ([]RuleParam, bool)
	// NormalizeAnswer canonicalizes a raw learner answer.
	NormalizeAnswer(answer any) (any, error)
}

// GadgetSpec describes a registered gadget type.
type GadgetSpec interface {
	// Type returns the gadget type identifier, e.g. "ScoreBar".
	Type() string
	CustomizationArgSpecs() []CustomizationArgSpec
	// Width and Height return the gadget's size in pixels given its full
	// customization arguments.
	Width(customizationArgs map[string]any) int
	Height(customizationArgs map[string]any) int
	// Validate applies gadget-specific checks to the full customization
	// arguments.
	Validate(customizationArgs map[string]any) error
}

// TriggerSpec describes a registered trigger type.
type TriggerSpec interface {
	Type() string
	CustomizationArgSpecs() []CustomizationArgSpec
}

// PanelSpec describes one skin panel: its geometry and how many gadgets it
// holds.
type PanelSpec struct {
	Name                 string
	Width                int
	Height               int
	StackableAxis        string
	PixelsBetweenGadgets int
	MaxGadgets           int
}

// InteractionRegistry resolves interaction type ids to their specs.
type InteractionRegistry interface {
	InteractionByID(id string) (InteractionSpec, error)
}

// GadgetRegistry resolves gadget type names to their specs.
type GadgetRegistry interface {
	GadgetByType(gadgetType string) (GadgetSpec, error)
}

// TriggerRegistry resolves trigger type names to their specs.
type TriggerRegistry interface {
	TriggerByType(triggerType string) (TriggerSpec, error)
}

// PanelRegistry resolves panel names for a skin.
type PanelRegistry interface {
	PanelByName(name string) (PanelSpec, error)
	PanelNames() []string
}

// Sanitizer cleans user-supplied HTML before it is stored.
type Sanitizer interface {
	Clean(html string) string
}

// Capabilities bundles the external collaborators the domain model needs.
// Zero-value fields are tolerated where possible; Logger falls back to a
// no-op logger.
type Capabilities struct {
	Interactions InteractionRegistry
	Gadgets      GadgetRegistry
	Triggers     TriggerRegistry
	Panels       PanelRegistry
	Sanitizer    Sanitizer
	Logger       *slog.Logger
}

func (c *Capabilities) log() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

func (c *Capabilities) clean(html string) string {
	if c == nil || c.Sanitizer == nil {
		return html
	}
	return c.Sanitizer.Clean(html)
}

package registry

import (
	"github.com/lessonforge/lessonforge/pkg/domain"
	"github.com/lessonforge/lessonforge/pkg/schema"
)

// DefaultInteractions returns the built-in interaction catalog.
func DefaultInteractions() *Interactions {
	r := NewInteractions()

	r.Register(&Interaction{
		InteractionID: "Continue",
		CustArgSpecs: []domain.CustomizationArgSpec{
			{Name: "buttonText", Schema: schema.String(), DefaultValue: "Continue"},
		},
		Rules: map[string][]domain.RuleParam{},
	})

	r.Register(&Interaction{
		InteractionID: "TextInput",
		CustArgSpecs: []domain.CustomizationArgSpec{
			{Name: "placeholder", Schema: schema.String(), DefaultValue: ""},
			{Name: "rows", Schema: schema.Int(), DefaultValue: 1},
		},
		Rules: map[string][]domain.RuleParam{
			"Equals":              {{Name: "x", Type: schema.String()}},
			"CaseSensitiveEquals": {{Name: "x", Type: schema.String()}},
			"StartsWith":          {{Name: "x", Type: schema.String()}},
			"Contains":            {{Name: "x", Type: schema.String()}},
			"FuzzyEquals":         {{Name: "x", Type: schema.String()}},
			domain.RuleTypeClassifier: {
				{Name: "training_data", Type: schema.List(schema.String())},
			},
		},
		AnswerType: schema.String(),
	})

	r.Register(&Interaction{
		InteractionID: "NumericInput",
		CustArgSpecs:  []domain.CustomizationArgSpec{},
		Rules: map[string][]domain.RuleParam{
			"Equals":                 {{Name: "x", Type: schema.Float()}},
			"IsLessThan":             {{Name: "x", Type: schema.Float()}},
			"IsGreaterThan":          {{Name: "x", Type: schema.Float()}},
			"IsLessThanOrEqualTo":    {{Name: "x", Type: schema.Float()}},
			"IsGreaterThanOrEqualTo": {{Name: "x", Type: schema.Float()}},
			"IsInclusivelyBetween": {
				{Name: "a", Type: schema.Float()},
				{Name: "b", Type: schema.Float()},
			},
			"IsWithinTolerance": {
				{Name: "x", Type: schema.Float()},
				{Name: "tol", Type: schema.Float()},
			},
		},
		AnswerType: schema.Float(),
	})

	r.Register(&Interaction{
		InteractionID: "MultipleChoiceInput",
		CustArgSpecs: []domain.CustomizationArgSpec{
			{Name: "choices", Schema: schema.List(schema.String()), DefaultValue: []any{"<p>Option 1</p>"}},
		},
		Rules: map[string][]domain.RuleParam{
			"Equals": {{Name: "x", Type: schema.Int()}},
		},
		AnswerType: schema.Int(),
	})

	r.Register(&Interaction{
		InteractionID: "CodeRepl",
		CustArgSpecs: []domain.CustomizationArgSpec{
			{Name: "language", Schema: schema.String(), DefaultValue: "python"},
			{Name: "placeholder", Schema: schema.String(), DefaultValue: ""},
			{Name: "preCode", Schema: schema.String(), DefaultValue: ""},
			{Name: "postCode", Schema: schema.String(), DefaultValue: ""},
		},
		Rules: map[string][]domain.RuleParam{
			"CodeEquals":     {{Name: "x", Type: schema.String()}},
			"CodeContains":   {{Name: "x", Type: schema.String()}},
			"OutputEquals":   {{Name: "x", Type: schema.String()}},
			"ResultsInError": {},
		},
	})

	r.Register(&Interaction{
		InteractionID: "EndExploration",
		Terminal:      true,
		CustArgSpecs: []domain.CustomizationArgSpec{
			{Name: "recommendedExplorationIds", Schema: schema.List(schema.String()), DefaultValue: []any{}},
		},
		Rules: map[string][]domain.RuleParam{},
	})

	return r
}

// DefaultGadgets returns the built-in gadget catalog.
func DefaultGadgets() *Gadgets {
	r := NewGadgets()
	r.Register(&Gadget{
		GadgetType: "ScoreBar",
		CustArgSpecs: []domain.CustomizationArgSpec{
			{Name: "title", Schema: schema.String(), DefaultValue: "Score"},
		},
		WidthPx:  250,
		HeightPx: 100,
	})
	return r
}

// DefaultTriggers returns the built-in trigger catalog.
func DefaultTriggers() *Triggers {
	r := NewTriggers()
	r.Register(&Trigger{
		TriggerTypeName: "NthResubmission",
		CustArgSpecs: []domain.CustomizationArgSpec{
			{Name: "num_submits", Schema: schema.Int(), DefaultValue: 3},
		},
	})
	return r
}

// DefaultPanels returns the panel layout of the conversation skin: a single
// bottom panel stacking gadgets horizontally.
func DefaultPanels() *Panels {
	r := NewPanels()
	r.Register(domain.PanelSpec{
		Name:                 "bottom",
		Width:                350,
		Height:               100,
		StackableAxis:        domain.GadgetPanelAxisHorizontal,
		PixelsBetweenGadgets: 80,
		MaxGadgets:           1,
	})
	return r
}

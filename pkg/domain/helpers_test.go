package domain

import (
	"fmt"

	"github.com/lessonforge/lessonforge/pkg/schema"
)

// Fakes standing in for the real registries so the model is exercised
// without the builtin catalogs.

type fakeInteraction struct {
	id       string
	terminal bool
	cargs    []CustomizationArgSpec
	rules    map[string][]RuleParam
	answer   schema.Type
}

func (f *fakeInteraction) ID() string                                   { return f.id }
func (f *fakeInteraction) IsTerminal() bool                             { return f.terminal }
func (f *fakeInteraction) CustomizationArgSpecs() []CustomizationArgSpec { return f.cargs }

func (f *fakeInteraction) HasRuleType(ruleType string) bool {
	_, ok := f.rules[ruleType]
	return ok
}

func (f *fakeInteraction) RuleParams(ruleType string) ([]RuleParam, bool) {
	params, ok := f.rules[ruleType]
	return params, ok
}

func (f *fakeInteraction) NormalizeAnswer(answer any) (any, error) {
	if f.answer == nil {
		return answer, nil
	}
	return f.answer.Normalize(answer)
}

type fakeInteractions map[string]*fakeInteraction

func (m fakeInteractions) InteractionByID(id string) (InteractionSpec, error) {
	spec, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("interaction not found: %s", id)
	}
	return spec, nil
}

type fakeGadget struct {
	gadgetType string
	cargs      []CustomizationArgSpec
	width      int
	height     int
}

func (f *fakeGadget) Type() string                                   { return f.gadgetType }
func (f *fakeGadget) CustomizationArgSpecs() []CustomizationArgSpec  { return f.cargs }
func (f *fakeGadget) Width(map[string]any) int                       { return f.width }
func (f *fakeGadget) Height(map[string]any) int                      { return f.height }
func (f *fakeGadget) Validate(map[string]any) error                  { return nil }

type fakeGadgets map[string]*fakeGadget

func (m fakeGadgets) GadgetByType(gadgetType string) (GadgetSpec, error) {
	spec, ok := m[gadgetType]
	if !ok {
		return nil, fmt.Errorf("gadget not found: %s", gadgetType)
	}
	return spec, nil
}

type fakeTrigger struct {
	triggerType string
	cargs       []CustomizationArgSpec
}

func (f *fakeTrigger) Type() string                                  { return f.triggerType }
func (f *fakeTrigger) CustomizationArgSpecs() []CustomizationArgSpec { return f.cargs }

type fakeTriggers map[string]*fakeTrigger

func (m fakeTriggers) TriggerByType(triggerType string) (TriggerSpec, error) {
	spec, ok := m[triggerType]
	if !ok {
		return nil, fmt.Errorf("trigger not found: %s", triggerType)
	}
	return spec, nil
}

type fakePanels map[string]PanelSpec

func (m fakePanels) PanelByName(name string) (PanelSpec, error) {
	spec, ok := m[name]
	if !ok {
		return PanelSpec{}, fmt.Errorf("panel not found: %s", name)
	}
	return spec, nil
}

func (m fakePanels) PanelNames() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

// testCaps builds a capability bundle with a small interaction catalog, one
// gadget type, one trigger type and the bottom panel. The sanitizer passes
// content through untouched so dict comparisons stay literal.
func testCaps() *Capabilities {
	return &Capabilities{
		Interactions: fakeInteractions{
			"TextInput": {
				id: "TextInput",
				cargs: []CustomizationArgSpec{
					{Name: "placeholder", Schema: schema.String(), DefaultValue: ""},
					{Name: "rows", Schema: schema.Int(), DefaultValue: 1},
				},
				rules: map[string][]RuleParam{
					"Equals":          {{Name: "x", Type: schema.String()}},
					"Contains":        {{Name: "x", Type: schema.String()}},
					RuleTypeClassifier: {{Name: "training_data", Type: schema.List(schema.String())}},
				},
				answer: schema.String(),
			},
			"EndExploration": {
				id:       "EndExploration",
				terminal: true,
				cargs: []CustomizationArgSpec{
					{Name: "recommendedExplorationIds", Schema: schema.List(schema.String()), DefaultValue: []any{}},
				},
				rules: map[string][]RuleParam{},
			},
		},
		Gadgets: fakeGadgets{
			"ScoreBar": {
				gadgetType: "ScoreBar",
				cargs: []CustomizationArgSpec{
					{Name: "title", Schema: schema.String(), DefaultValue: "Score"},
				},
				width:  250,
				height: 100,
			},
		},
		Triggers: fakeTriggers{
			"NthResubmission": {
				triggerType: "NthResubmission",
				cargs: []CustomizationArgSpec{
					{Name: "num_submits", Schema: schema.Int(), DefaultValue: 3},
				},
			},
		},
		Panels: fakePanels{
			"bottom": {
				Name:                 "bottom",
				Width:                350,
				Height:               100,
				StackableAxis:        GadgetPanelAxisHorizontal,
				PixelsBetweenGadgets: 80,
				MaxGadgets:           1,
			},
		},
	}
}

// linkState points a state's interaction at dest via TextInput.
func linkState(st *State, dest string) {
	st.Interaction.ID = "TextInput"
	st.Interaction.CustomizationArgs = map[string]any{
		"placeholder": map[string]any{"value": ""},
		"rows":        map[string]any{"value": 1},
	}
	st.Interaction.DefaultOutcome = &Outcome{Dest: dest, Feedback: []string{}}
}

// endState turns a state into a terminal EndExploration state.
func endState(st *State) {
	st.Interaction.ID = "EndExploration"
	st.Interaction.CustomizationArgs = map[string]any{
		"recommendedExplorationIds": map[string]any{"value": []any{}},
	}
	st.Interaction.DefaultOutcome = nil
	st.Interaction.AnswerGroups = nil
}

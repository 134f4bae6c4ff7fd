package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lessonforge/lessonforge/pkg/domain"
	"github.com/lessonforge/lessonforge/pkg/schema"
)

func TestDefaultInteractions(t *testing.T) {
	r := DefaultInteractions()

	for _, id := range []string{
		"Continue", "TextInput", "NumericInput",
		"MultipleChoiceInput", "CodeRepl", "EndExploration",
	} {
		spec, err := r.InteractionByID(id)
		require.NoError(t, err, id)
		assert.Equal(t, id, spec.ID())
	}

	_, err := r.InteractionByID("HoloDeck")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HoloDeck")
}

func TestInteractionsIsTerminal(t *testing.T) {
	r := DefaultInteractions()

	terminal, err := r.IsTerminal("EndExploration")
	require.NoError(t, err)
	assert.True(t, terminal)

	terminal, err = r.IsTerminal("TextInput")
	require.NoError(t, err)
	assert.False(t, terminal)

	_, err = r.IsTerminal("HoloDeck")
	assert.Error(t, err)
}

func TestTextInputRules(t *testing.T) {
	r := DefaultInteractions()
	spec, err := r.InteractionByID("TextInput")
	require.NoError(t, err)

	assert.True(t, spec.HasRuleType("Equals"))
	assert.True(t, spec.HasRuleType(domain.RuleTypeClassifier))
	assert.False(t, spec.HasRuleType("IsWithinTolerance"))

	params, ok := spec.RuleParams("Contains")
	require.True(t, ok)
	require.Len(t, params, 1)
	assert.Equal(t, "x", params[0].Name)

	answer, err := spec.NormalizeAnswer("hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", answer)

	_, err = spec.NormalizeAnswer(42)
	assert.Error(t, err)
}

func TestNumericInputAnswerNormalization(t *testing.T) {
	r := DefaultInteractions()
	spec, err := r.InteractionByID("NumericInput")
	require.NoError(t, err)

	answer, err := spec.NormalizeAnswer(3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, answer)

	_, err = spec.NormalizeAnswer("three")
	assert.Error(t, err)
}

func TestRegisterOverwrites(t *testing.T) {
	r := NewInteractions()
	r.Register(&Interaction{InteractionID: "Echo"})
	r.Register(&Interaction{InteractionID: "Echo", Terminal: true})

	spec, err := r.InteractionByID("Echo")
	require.NoError(t, err)
	assert.True(t, spec.IsTerminal())
}

func TestDefaultGadgets(t *testing.T) {
	r := DefaultGadgets()

	spec, err := r.GadgetByType("ScoreBar")
	require.NoError(t, err)
	assert.Equal(t, 250, spec.Width(nil))
	assert.Equal(t, 100, spec.Height(nil))
	assert.NoError(t, spec.Validate(map[string]any{"title": map[string]any{"value": "Score"}}))

	_, err = r.GadgetByType("AdviceBar")
	assert.Error(t, err)
}

func TestGadgetValidateFn(t *testing.T) {
	r := NewGadgets()
	r.Register(&Gadget{
		GadgetType: "Picky",
		ValidateFn: func(map[string]any) error {
			return domain.Validationf("never satisfied")
		},
	})

	spec, err := r.GadgetByType("Picky")
	require.NoError(t, err)
	assert.Error(t, spec.Validate(nil))
}

func TestDefaultTriggers(t *testing.T) {
	r := DefaultTriggers()

	spec, err := r.TriggerByType("NthResubmission")
	require.NoError(t, err)
	specs := spec.CustomizationArgSpecs()
	require.Len(t, specs, 1)
	assert.Equal(t, "num_submits", specs[0].Name)
	assert.Equal(t, 3, specs[0].DefaultValue)

	_, err = r.TriggerByType("OnIdle")
	assert.Error(t, err)
}

func TestDefaultPanels(t *testing.T) {
	r := DefaultPanels()

	panel, err := r.PanelByName("bottom")
	require.NoError(t, err)
	assert.Equal(t, 350, panel.Width)
	assert.Equal(t, domain.GadgetPanelAxisHorizontal, panel.StackableAxis)
	assert.Equal(t, 1, panel.MaxGadgets)

	assert.Equal(t, []string{"bottom"}, r.PanelNames())

	_, err = r.PanelByName("left")
	assert.Error(t, err)
}

func TestCustomizationArgSchemas(t *testing.T) {
	r := DefaultInteractions()
	spec, err := r.InteractionByID("MultipleChoiceInput")
	require.NoError(t, err)

	specs := spec.CustomizationArgSpecs()
	require.Len(t, specs, 1)
	assert.Equal(t, "choices", specs[0].Name)

	normalized, err := specs[0].Schema.Normalize([]any{"<p>A</p>", "<p>B</p>"})
	require.NoError(t, err)
	assert.Equal(t, []any{"<p>A</p>", "<p>B</p>"}, normalized)

	_, err = schema.List(schema.String()).Normalize("not a list")
	assert.Error(t, err)
}

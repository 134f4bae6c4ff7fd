package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textInputSpec(t *testing.T, caps *Capabilities) InteractionSpec {
	t.Helper()
	spec, err := caps.Interactions.InteractionByID("TextInput")
	require.NoError(t, err)
	return spec
}

func group(rules ...*RuleSpec) *AnswerGroup {
	return &AnswerGroup{
		RuleSpecs: rules,
		Outcome:   &Outcome{Dest: "A", Feedback: []string{}},
	}
}

func TestAnswerGroupSingleClassifierRule(t *testing.T) {
	caps := testCaps()
	spec := textInputSpec(t, caps)
	noParams := map[string]*ParamSpec{}

	classifier := &RuleSpec{
		RuleType: RuleTypeClassifier,
		Inputs:   map[string]any{"training_data": []any{"yes", "yep"}},
	}
	equals := &RuleSpec{RuleType: "Equals", Inputs: map[string]any{"x": "yes"}}

	assert.NoError(t, group(equals, classifier).Validate(caps, spec, noParams),
		"one classifier rule alongside an ordinary rule is fine")

	err := group(equals, classifier, &RuleSpec{
		RuleType: RuleTypeClassifier,
		Inputs:   map[string]any{"training_data": []any{"no"}},
	}).Validate(caps, spec, noParams)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one classification rule")
}

func TestAnswerGroupRejectsUnknownRuleType(t *testing.T) {
	caps := testCaps()
	spec := textInputSpec(t, caps)

	err := group(&RuleSpec{RuleType: "SoundsLike", Inputs: map[string]any{}}).
		Validate(caps, spec, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SoundsLike")
}

func TestAnswerGroupRequiresRules(t *testing.T) {
	caps := testCaps()
	spec := textInputSpec(t, caps)

	err := group().Validate(caps, spec, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one rule")
}

func TestRuleSpecInputValidation(t *testing.T) {
	caps := testCaps()
	spec := textInputSpec(t, caps)
	equalsParams, ok := spec.RuleParams("Equals")
	require.True(t, ok)

	// Missing declared input is fatal.
	err := (&RuleSpec{RuleType: "Equals", Inputs: map[string]any{}}).
		Validate(caps, equalsParams, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing an input")

	// Extra input is tolerated.
	assert.NoError(t, (&RuleSpec{
		RuleType: "Equals",
		Inputs:   map[string]any{"x": "yes", "legacy": 1},
	}).Validate(caps, equalsParams, nil))

	// Type mismatch is fatal.
	err = (&RuleSpec{RuleType: "Equals", Inputs: map[string]any{"x": 42}}).
		Validate(caps, equalsParams, nil)
	assert.Error(t, err)
}

func TestRuleSpecParamPlaceholder(t *testing.T) {
	caps := testCaps()
	spec := textInputSpec(t, caps)
	equalsParams, _ := spec.RuleParams("Equals")

	rule := &RuleSpec{RuleType: "Equals", Inputs: map[string]any{"x": "{{answerWord}}"}}

	err := rule.Validate(caps, equalsParams, map[string]*ParamSpec{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "answerWord")

	assert.NoError(t, rule.Validate(caps, equalsParams, map[string]*ParamSpec{
		"answerWord": {ObjType: "string"},
	}))
}

func TestOutcomeValidate(t *testing.T) {
	assert.Error(t, (&Outcome{Dest: ""}).Validate())
	assert.NoError(t, (&Outcome{Dest: "A"}).Validate())

	err := (&Outcome{Dest: "A", ParamChanges: []*ParamChange{
		{Name: "answer", GeneratorID: "Copier"},
	}}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestClassifierRuleIndex(t *testing.T) {
	ordinary := &RuleSpec{RuleType: "Equals", Inputs: map[string]any{"x": "hi"}}
	classifier := &RuleSpec{
		RuleType: RuleTypeClassifier,
		Inputs:   map[string]any{"training_data": []any{"a"}},
	}

	assert.Equal(t, -1, group(ordinary).ClassifierRuleIndex())
	assert.Equal(t, 1, group(ordinary, classifier).ClassifierRuleIndex())
	assert.Equal(t, 0, group(classifier, ordinary).ClassifierRuleIndex())
}

package domain

import (
	"regexp"
	"sort"
)

var paramPlaceholderRE = regexp.MustCompile(`\{\{([a-zA-Z0-9]+)\}\}`)

// RuleSpec is one rule of an answer group: a rule type plus its inputs.
type RuleSpec struct {
	// RuleType names a rule declared by the state's interaction, e.g.
	// "Equals".
	RuleType string
	// Inputs maps rule parameter names to values. A string value of the form
	// "{{name}}" refers to an exploration parameter.
	Inputs map[string]any
}

// NewRuleSpecFromDict builds a RuleSpec from its dict form.
func NewRuleSpecFromDict(d map[string]any) (*RuleSpec, error) {
	ruleType, err := stringAt(d, "rule_type")
	if err != nil {
		return nil, err
	}
	inputs, err := mapAt(d, "inputs")
	if err != nil {
		return nil, err
	}
	return &RuleSpec{RuleType: ruleType, Inputs: inputs}, nil
}

// ToDict returns the persistable form of the rule.
func (r *RuleSpec) ToDict() map[string]any {
	return map[string]any{
		"rule_type": r.RuleType,
		"inputs":    r.Inputs,
	}
}

// Validate checks the rule's inputs against the declared parameters of its
// rule type. Every declared parameter must have an input. Parameter
// placeholders in string inputs must name a declared exploration parameter;
// other inputs are normalized against the parameter's value schema. Inputs
// with no declared parameter are tolerated with a warning so that older
// documents keep loading.
func (r *RuleSpec) Validate(caps *Capabilities, params []RuleParam, paramSpecs map[string]*ParamSpec) error {
	declared := make(map[string]RuleParam, len(params))
	for _, p := range params {
		declared[p.Name] = p
		if _, ok := r.Inputs[p.Name]; !ok {
			return Validationf("RuleSpec %q is missing an input with name %q", r.RuleType, p.Name)
		}
	}

	// Deterministic iteration keeps error output stable.
	names := make([]string, 0, len(r.Inputs))
	for name := range r.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := r.Inputs[name]
		param, ok := declared[name]
		if !ok {
			caps.log().Warn("rule input has no declared parameter",
				"rule_type", r.RuleType, "input", name)
			continue
		}
		if s, ok := value.(string); ok {
			if m := paramPlaceholderRE.FindStringSubmatch(s); m != nil {
				if _, exists := paramSpecs[m[1]]; !exists {
					return Validationf(
						"RuleSpec %q has an input with name %q which refers to an unknown parameter within the exploration: %s",
						r.RuleType, name, m[1])
				}
				// Value will be supplied at run time; nothing further to
				// check now.
				continue
			}
		}
		normalized, err := param.Type.Normalize(value)
		if err != nil {
			return Validationf("rule %q input %q: %v", r.RuleType, name, err)
		}
		r.Inputs[name] = normalized
	}
	return nil
}

// AnswerGroup is a set of rules mapped to a single outcome, with optional
// training data used for classifier-based matching.
type AnswerGroup struct {
	RuleSpecs []*RuleSpec
	Outcome   *Outcome
	// Correct marks the group's outcome as the intended answer. It is
	// currently informational only.
	Correct bool
}

// NewAnswerGroupFromDict builds an AnswerGroup from its dict form.
func NewAnswerGroupFromDict(caps *Capabilities, d map[string]any) (*AnswerGroup, error) {
	ruleDicts, err := mapList(d["rule_specs"], "rule_specs")
	if err != nil {
		return nil, err
	}
	ruleSpecs := make([]*RuleSpec, 0, len(ruleDicts))
	for _, rd := range ruleDicts {
		rs, err := NewRuleSpecFromDict(rd)
		if err != nil {
			return nil, err
		}
		ruleSpecs = append(ruleSpecs, rs)
	}
	outcomeDict, err := mapAt(d, "outcome")
	if err != nil {
		return nil, err
	}
	outcome, err := NewOutcomeFromDict(caps, outcomeDict)
	if err != nil {
		return nil, err
	}
	correct, err := boolAt(d, "correct")
	if err != nil {
		return nil, err
	}
	return &AnswerGroup{RuleSpecs: ruleSpecs, Outcome: outcome, Correct: correct}, nil
}

// ToDict returns the persistable form of the group.
func (g *AnswerGroup) ToDict() map[string]any {
	rules := make([]any, 0, len(g.RuleSpecs))
	for _, r := range g.RuleSpecs {
		rules = append(rules, r.ToDict())
	}
	return map[string]any{
		"rule_specs": rules,
		"outcome":    g.Outcome.ToDict(),
		"correct":    g.Correct,
	}
}

// ClassifierRuleIndex returns the index of the group's classifier rule, or -1
// when the group has none.
func (g *AnswerGroup) ClassifierRuleIndex() int {
	for i, rs := range g.RuleSpecs {
		if rs.RuleType == RuleTypeClassifier {
			return i
		}
	}
	return -1
}

// Validate checks the group's outcome and each rule against the interaction's
// declared rule types. Groups must carry at least one rule, and at most one
// rule per group may use the classifier rule type.
func (g *AnswerGroup) Validate(caps *Capabilities, interaction InteractionSpec, paramSpecs map[string]*ParamSpec) error {
	if err := g.Outcome.Validate(); err != nil {
		return err
	}
	if len(g.RuleSpecs) == 0 {
		return Validationf("there must be at least one rule for each answer group")
	}
	classifierCount := 0
	for _, rs := range g.RuleSpecs {
		if !interaction.HasRuleType(rs.RuleType) {
			return Validationf("rule type %q is not valid for interaction %q", rs.RuleType, interaction.ID())
		}
		if rs.RuleType == RuleTypeClassifier {
			classifierCount++
			continue
		}
		params, _ := interaction.RuleParams(rs.RuleType)
		if err := rs.Validate(caps, params, paramSpecs); err != nil {
			return err
		}
	}
	if classifierCount > 1 {
		return Validationf(
			"answer groups can only have one classification rule, found %d", classifierCount)
	}
	return nil
}

package domain

// TriggerInstance is an event that fires during play, such as the learner
// resubmitting an answer a given number of times. Triggers are a legacy
// construct kept for round-tripping older documents.
type TriggerInstance struct {
	TriggerType       string
	CustomizationArgs map[string]any
}

// NewTriggerInstanceFromDict builds a TriggerInstance from its dict form.
func NewTriggerInstanceFromDict(d map[string]any) (*TriggerInstance, error) {
	triggerType, err := stringAt(d, "trigger_type")
	if err != nil {
		return nil, err
	}
	customizationArgs, err := mapAt(d, "customization_args")
	if err != nil {
		return nil, err
	}
	return &TriggerInstance{
		TriggerType:       triggerType,
		CustomizationArgs: customizationArgs,
	}, nil
}

// ToDict returns the persistable form of the trigger.
func (t *TriggerInstance) ToDict() map[string]any {
	return map[string]any{
		"trigger_type":       t.TriggerType,
		"customization_args": t.CustomizationArgs,
	}
}

// Validate resolves the trigger type against the registry and normalizes the
// customization arguments against the type's specs.
func (t *TriggerInstance) Validate(caps *Capabilities) error {
	if t.TriggerType == "" {
		return Validationf("expected a trigger type, received none")
	}
	if caps == nil || caps.Triggers == nil {
		return Validationf("unknown trigger type: %s", t.TriggerType)
	}
	spec, err := caps.Triggers.TriggerByType(t.TriggerType)
	if err != nil {
		return Validationf("unknown trigger type: %s", t.TriggerType)
	}
	t.CustomizationArgs = fullCustomizationArgs(caps, t.CustomizationArgs, spec.CustomizationArgSpecs())
	return nil
}

// Fallback pairs a trigger with the outcome to follow when it fires. Like
// triggers, fallbacks are legacy and superseded by hints.
type Fallback struct {
	Trigger *TriggerInstance
	Outcome *Outcome
}

// NewFallbackFromDict builds a Fallback from its dict form.
func NewFallbackFromDict(caps *Capabilities, d map[string]any) (*Fallback, error) {
	triggerDict, err := mapAt(d, "trigger")
	if err != nil {
		return nil, err
	}
	trigger, err := NewTriggerInstanceFromDict(triggerDict)
	if err != nil {
		return nil, err
	}
	outcomeDict, err := mapAt(d, "outcome")
	if err != nil {
		return nil, err
	}
	outcome, err := NewOutcomeFromDict(caps, outcomeDict)
	if err != nil {
		return nil, err
	}
	return &Fallback{Trigger: trigger, Outcome: outcome}, nil
}

// ToDict returns the persistable form of the fallback.
func (f *Fallback) ToDict() map[string]any {
	return map[string]any{
		"trigger": f.Trigger.ToDict(),
		"outcome": f.Outcome.ToDict(),
	}
}

// Validate checks the fallback's trigger and outcome.
func (f *Fallback) Validate(caps *Capabilities) error {
	if err := f.Trigger.Validate(caps); err != nil {
		return err
	}
	return f.Outcome.Validate()
}

// Hint is a single piece of HTML shown to a stuck learner.
type Hint struct {
	HintText string
}

// NewHint sanitizes text and wraps it as a Hint.
func NewHint(caps *Capabilities, text string) *Hint {
	return &Hint{HintText: caps.clean(text)}
}

// NewHintFromDict builds a Hint from its dict form.
func NewHintFromDict(caps *Capabilities, d map[string]any) (*Hint, error) {
	text, err := optStringAt(d, "hint_text")
	if err != nil {
		return nil, err
	}
	return &Hint{HintText: caps.clean(text)}, nil
}

// ToDict returns the persistable form of the hint.
func (h *Hint) ToDict() map[string]any {
	return map[string]any{"hint_text": h.HintText}
}

// Validate is a no-op; any sanitized HTML is an acceptable hint.
func (h *Hint) Validate() error {
	return nil
}

// Solution is the full answer to a state's interaction, shown after all
// hints are exhausted.
type Solution struct {
	// AnswerIsExclusive reports whether CorrectAnswer is the only correct
	// answer, as opposed to one example of many.
	AnswerIsExclusive bool
	CorrectAnswer     any
	Explanation       string
}

// NewSolutionFromDict builds a Solution from its dict form, normalizing the
// answer against the owning interaction's answer type.
func NewSolutionFromDict(caps *Capabilities, interactionID string, d map[string]any) (*Solution, error) {
	exclusive, err := boolAt(d, "answer_is_exclusive")
	if err != nil {
		return nil, err
	}
	explanation, err := optStringAt(d, "explanation")
	if err != nil {
		return nil, err
	}
	answer := d["correct_answer"]
	if caps != nil && caps.Interactions != nil && interactionID != "" {
		spec, err := caps.Interactions.InteractionByID(interactionID)
		if err == nil {
			normalized, err := spec.NormalizeAnswer(answer)
			if err != nil {
				return nil, Validationf("invalid solution answer: %v", err)
			}
			answer = normalized
		}
	}
	return &Solution{
		AnswerIsExclusive: exclusive,
		CorrectAnswer:     answer,
		Explanation:       caps.clean(explanation),
	}, nil
}

// ToDict returns the persistable form of the solution.
func (s *Solution) ToDict() map[string]any {
	return map[string]any{
		"answer_is_exclusive": s.AnswerIsExclusive,
		"correct_answer":      s.CorrectAnswer,
		"explanation":         s.Explanation,
	}
}

// Validate checks that the solution carries an explanation.
func (s *Solution) Validate() error {
	if s.Explanation == "" {
		return Validationf("explanation must not be an empty string")
	}
	return nil
}

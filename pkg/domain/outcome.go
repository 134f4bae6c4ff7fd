package domain

// Outcome is the result of an answer being classified: the destination state,
// feedback to show, and any parameter changes to apply.
type Outcome struct {
	// Dest names the destination state.
	Dest string
	// Feedback is a list of HTML snippets; clients typically show one at
	// random.
	Feedback []string
	// ParamChanges are applied when the learner follows this outcome.
	ParamChanges []*ParamChange
}

// NewOutcomeFromDict builds an Outcome from its dict form, sanitizing each
// feedback snippet.
func NewOutcomeFromDict(caps *Capabilities, d map[string]any) (*Outcome, error) {
	dest, err := stringAt(d, "dest")
	if err != nil {
		return nil, err
	}
	rawFeedback, err := listAt(d, "feedback")
	if err != nil {
		return nil, err
	}
	feedback := make([]string, 0, len(rawFeedback))
	for i, item := range rawFeedback {
		s, ok := item.(string)
		if !ok {
			return nil, Validationf("feedback element %d: expected string, got %T", i, item)
		}
		feedback = append(feedback, caps.clean(s))
	}
	paramChanges, err := paramChangesFromList(d["param_changes"], "param_changes")
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Dest:         dest,
		Feedback:     feedback,
		ParamChanges: paramChanges,
	}, nil
}

// ToDict returns the persistable form of the outcome.
func (o *Outcome) ToDict() map[string]any {
	feedback := make([]any, 0, len(o.Feedback))
	for _, f := range o.Feedback {
		feedback = append(feedback, f)
	}
	return map[string]any{
		"dest":          o.Dest,
		"feedback":      feedback,
		"param_changes": paramChangesToList(o.ParamChanges),
	}
}

// Validate checks the outcome's destination and parameter changes. It does
// not check that the destination exists; Exploration.Validate does that with
// the full state set in hand.
func (o *Outcome) Validate() error {
	if o.Dest == "" {
		return Validationf("every outcome should have a destination")
	}
	for _, c := range o.ParamChanges {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

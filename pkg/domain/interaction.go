package domain

// InteractionInstance is the interactive part of a state: the interaction
// type, its configuration, and how learner answers are routed onward.
type InteractionInstance struct {
	// ID is the interaction type id, or "" while the editor has not picked
	// one yet.
	ID                string
	CustomizationArgs map[string]any
	AnswerGroups      []*AnswerGroup
	// DefaultOutcome routes answers no group matched. Terminal interactions
	// carry none.
	DefaultOutcome               *Outcome
	ConfirmedUnclassifiedAnswers []any
	Fallbacks                    []*Fallback
	Hints                        []*Hint
	// Solution is nil when the creator has not supplied one.
	Solution *Solution
}

// NewDefaultInteraction returns the empty interaction every new state starts
// with: no type chosen, a default outcome that self-loops on the given state.
func NewDefaultInteraction(destStateName string) *InteractionInstance {
	return &InteractionInstance{
		CustomizationArgs: map[string]any{},
		DefaultOutcome: &Outcome{
			Dest:     destStateName,
			Feedback: []string{},
		},
	}
}

// NewInteractionFromDict builds an InteractionInstance from its dict form.
// Customization arguments are completed against the interaction type's specs
// when the type is known to the registry.
func NewInteractionFromDict(caps *Capabilities, d map[string]any) (*InteractionInstance, error) {
	id, err := optStringAt(d, "id")
	if err != nil {
		return nil, err
	}

	rawArgs, err := mapAt(d, "customization_args")
	if err != nil {
		return nil, err
	}
	args := rawArgs
	if spec := lookupInteraction(caps, id); spec != nil {
		args = fullCustomizationArgs(caps, rawArgs, spec.CustomizationArgSpecs())
	}

	groupDicts, err := mapList(d["answer_groups"], "answer_groups")
	if err != nil {
		return nil, err
	}
	groups := make([]*AnswerGroup, 0, len(groupDicts))
	for _, gd := range groupDicts {
		g, err := NewAnswerGroupFromDict(caps, gd)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	var defaultOutcome *Outcome
	if raw, ok := d["default_outcome"]; ok && raw != nil {
		od, err := asStringMap(raw)
		if err != nil {
			return nil, Validationf("field \"default_outcome\": %v", err)
		}
		defaultOutcome, err = NewOutcomeFromDict(caps, od)
		if err != nil {
			return nil, err
		}
	}

	unclassified, err := listAt(d, "confirmed_unclassified_answers")
	if err != nil {
		return nil, err
	}

	fallbackDicts, err := mapList(d["fallbacks"], "fallbacks")
	if err != nil {
		return nil, err
	}
	fallbacks := make([]*Fallback, 0, len(fallbackDicts))
	for _, fd := range fallbackDicts {
		f, err := NewFallbackFromDict(caps, fd)
		if err != nil {
			return nil, err
		}
		fallbacks = append(fallbacks, f)
	}

	hintDicts, err := mapList(d["hints"], "hints")
	if err != nil {
		return nil, err
	}
	hints := make([]*Hint, 0, len(hintDicts))
	for _, hd := range hintDicts {
		h, err := NewHintFromDict(caps, hd)
		if err != nil {
			return nil, err
		}
		hints = append(hints, h)
	}

	var solution *Solution
	if raw, ok := d["solution"]; ok && raw != nil {
		sd, err := asStringMap(raw)
		if err != nil {
			return nil, Validationf("field \"solution\": %v", err)
		}
		if len(sd) > 0 {
			solution, err = NewSolutionFromDict(caps, id, sd)
			if err != nil {
				return nil, err
			}
		}
	}

	return &InteractionInstance{
		ID:                           id,
		CustomizationArgs:            args,
		AnswerGroups:                 groups,
		DefaultOutcome:               defaultOutcome,
		ConfirmedUnclassifiedAnswers: unclassified,
		Fallbacks:                    fallbacks,
		Hints:                        hints,
		Solution:                     solution,
	}, nil
}

func lookupInteraction(caps *Capabilities, id string) InteractionSpec {
	if caps == nil || caps.Interactions == nil || id == "" {
		return nil
	}
	spec, err := caps.Interactions.InteractionByID(id)
	if err != nil {
		return nil
	}
	return spec
}

// ToDict returns the persistable form of the interaction. Customization
// arguments are completed against the type specs so defaults added since the
// instance was stored appear in the output.
func (i *InteractionInstance) ToDict(caps *Capabilities) map[string]any {
	args := i.CustomizationArgs
	if spec := lookupInteraction(caps, i.ID); spec != nil {
		args = fullCustomizationArgs(caps, i.CustomizationArgs, spec.CustomizationArgSpecs())
	}

	groups := make([]any, 0, len(i.AnswerGroups))
	for _, g := range i.AnswerGroups {
		groups = append(groups, g.ToDict())
	}
	fallbacks := make([]any, 0, len(i.Fallbacks))
	for _, f := range i.Fallbacks {
		fallbacks = append(fallbacks, f.ToDict())
	}
	hints := make([]any, 0, len(i.Hints))
	for _, h := range i.Hints {
		hints = append(hints, h.ToDict())
	}

	var id any
	if i.ID != "" {
		id = i.ID
	}
	var defaultOutcome any
	if i.DefaultOutcome != nil {
		defaultOutcome = i.DefaultOutcome.ToDict()
	}
	solution := map[string]any{}
	if i.Solution != nil {
		solution = i.Solution.ToDict()
	}
	unclassified := i.ConfirmedUnclassifiedAnswers
	if unclassified == nil {
		unclassified = []any{}
	}

	return map[string]any{
		"id":                             id,
		"customization_args":             args,
		"answer_groups":                  groups,
		"default_outcome":                defaultOutcome,
		"confirmed_unclassified_answers": unclassified,
		"fallbacks":                      fallbacks,
		"hints":                          hints,
		"solution":                       solution,
	}
}

// IsTerminal reports whether this interaction ends the exploration. An
// interaction with no type yet is not terminal.
func (i *InteractionInstance) IsTerminal(caps *Capabilities) bool {
	spec := lookupInteraction(caps, i.ID)
	return spec != nil && spec.IsTerminal()
}

// AllOutcomes returns every outcome the interaction can route to, including
// fallback outcomes.
func (i *InteractionInstance) AllOutcomes() []*Outcome {
	outcomes := i.NonFallbackOutcomes()
	for _, f := range i.Fallbacks {
		if f.Outcome != nil {
			outcomes = append(outcomes, f.Outcome)
		}
	}
	return outcomes
}

// NonFallbackOutcomes returns the answer-group outcomes plus the default
// outcome, skipping fallbacks.
func (i *InteractionInstance) NonFallbackOutcomes() []*Outcome {
	var outcomes []*Outcome
	for _, g := range i.AnswerGroups {
		if g.Outcome != nil {
			outcomes = append(outcomes, g.Outcome)
		}
	}
	if i.DefaultOutcome != nil {
		outcomes = append(outcomes, i.DefaultOutcome)
	}
	return outcomes
}

// Validate checks the interaction against its registered type spec and the
// exploration's parameter specs.
func (i *InteractionInstance) Validate(caps *Capabilities, paramSpecs map[string]*ParamSpec) error {
	if i.ID == "" {
		return Validationf("this state does not have any interaction specified")
	}
	if caps == nil || caps.Interactions == nil {
		return Validationf("invalid interaction id: %s", i.ID)
	}
	spec, err := caps.Interactions.InteractionByID(i.ID)
	if err != nil {
		return Validationf("invalid interaction id: %s", i.ID)
	}

	if err := validateCustomizationArgs(i.CustomizationArgs, spec.CustomizationArgSpecs()); err != nil {
		return err
	}

	if spec.IsTerminal() {
		if len(i.AnswerGroups) > 0 {
			return Validationf("terminal interactions must not have any answer groups")
		}
		if i.DefaultOutcome != nil {
			return Validationf("terminal interactions must not have a default outcome")
		}
	} else {
		if i.DefaultOutcome == nil {
			return Validationf("non-terminal interactions must have a default outcome")
		}
		if err := i.DefaultOutcome.Validate(); err != nil {
			return err
		}
	}

	for _, g := range i.AnswerGroups {
		if err := g.Validate(caps, spec, paramSpecs); err != nil {
			return err
		}
	}

	for _, f := range i.Fallbacks {
		if err := f.Validate(caps); err != nil {
			return err
		}
	}
	for _, h := range i.Hints {
		if err := h.Validate(); err != nil {
			return err
		}
	}
	if i.Solution != nil {
		if len(i.Hints) == 0 {
			return Validationf("hint(s) must be specified if solution is specified")
		}
		if err := i.Solution.Validate(); err != nil {
			return err
		}
	}
	return nil
}

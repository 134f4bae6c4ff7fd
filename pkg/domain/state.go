package domain

// State is one card of an exploration: content shown to the learner, the
// interaction that collects an answer, and parameter changes applied on
// entry.
type State struct {
	Content      *SubtitledHTML
	ParamChanges []*ParamChange
	Interaction  *InteractionInstance
	// ClassifierModelID references a trained classifier, or "" when none
	// exists.
	ClassifierModelID string
}

// NewDefaultState returns the state every add_state call starts from: default
// content and an interaction whose default outcome self-loops on
// destStateName.
func NewDefaultState(caps *Capabilities, destStateName string) *State {
	return &State{
		Content:     NewSubtitledHTML(caps, DefaultInitStateContent),
		Interaction: NewDefaultInteraction(destStateName),
	}
}

// NewStateFromDict builds a State from its dict form.
func NewStateFromDict(caps *Capabilities, d map[string]any) (*State, error) {
	contentDict, err := mapAt(d, "content")
	if err != nil {
		return nil, err
	}
	content, err := NewSubtitledHTMLFromDict(caps, contentDict)
	if err != nil {
		return nil, err
	}
	paramChanges, err := paramChangesFromList(d["param_changes"], "param_changes")
	if err != nil {
		return nil, err
	}
	interactionDict, err := mapAt(d, "interaction")
	if err != nil {
		return nil, err
	}
	interaction, err := NewInteractionFromDict(caps, interactionDict)
	if err != nil {
		return nil, err
	}
	classifierModelID, err := optStringAt(d, "classifier_model_id")
	if err != nil {
		return nil, err
	}
	return &State{
		Content:           content,
		ParamChanges:      paramChanges,
		Interaction:       interaction,
		ClassifierModelID: classifierModelID,
	}, nil
}

// ToDict returns the persistable form of the state.
func (s *State) ToDict(caps *Capabilities) map[string]any {
	var classifierModelID any
	if s.ClassifierModelID != "" {
		classifierModelID = s.ClassifierModelID
	}
	return map[string]any{
		"content":             s.Content.ToDict(),
		"param_changes":       paramChangesToList(s.ParamChanges),
		"interaction":         s.Interaction.ToDict(caps),
		"classifier_model_id": classifierModelID,
	}
}

// Validate checks the state's content, parameter changes and interaction.
// allowNilInteraction permits a state whose interaction type has not been
// chosen yet, which is normal mid-edit.
func (s *State) Validate(caps *Capabilities, paramSpecs map[string]*ParamSpec, allowNilInteraction bool) error {
	if err := s.Content.Validate(); err != nil {
		return err
	}
	for _, c := range s.ParamChanges {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	if allowNilInteraction && s.Interaction.ID == "" {
		return nil
	}
	return s.Interaction.Validate(caps, paramSpecs)
}

// UpdateContent replaces the state's content from its dict form.
func (s *State) UpdateContent(caps *Capabilities, d map[string]any) error {
	content, err := NewSubtitledHTMLFromDict(caps, d)
	if err != nil {
		return err
	}
	s.Content = content
	return nil
}

// UpdateParamChanges replaces the state's parameter changes.
func (s *State) UpdateParamChanges(dicts []map[string]any) error {
	changes := make([]*ParamChange, 0, len(dicts))
	for _, d := range dicts {
		c, err := NewParamChangeFromDict(d)
		if err != nil {
			return err
		}
		changes = append(changes, c)
	}
	s.ParamChanges = changes
	return nil
}

// UpdateInteractionID switches the state's interaction type and recomputes
// customization-arg defaults for the new type.
func (s *State) UpdateInteractionID(caps *Capabilities, id string) {
	s.Interaction.ID = id
	if spec := lookupInteraction(caps, id); spec != nil {
		s.Interaction.CustomizationArgs = fullCustomizationArgs(
			caps, s.Interaction.CustomizationArgs, spec.CustomizationArgSpecs())
	}
}

// UpdateInteractionCustomizationArgs replaces the interaction's customization
// arguments, completing defaults against the interaction type.
func (s *State) UpdateInteractionCustomizationArgs(caps *Capabilities, args map[string]any) {
	if spec := lookupInteraction(caps, s.Interaction.ID); spec != nil {
		args = fullCustomizationArgs(caps, args, spec.CustomizationArgSpecs())
	}
	s.Interaction.CustomizationArgs = args
}

// UpdateInteractionAnswerGroups replaces the interaction's answer groups from
// their dict forms.
func (s *State) UpdateInteractionAnswerGroups(caps *Capabilities, dicts []map[string]any) error {
	groups := make([]*AnswerGroup, 0, len(dicts))
	for _, d := range dicts {
		g, err := NewAnswerGroupFromDict(caps, d)
		if err != nil {
			return err
		}
		groups = append(groups, g)
	}
	s.Interaction.AnswerGroups = groups
	return nil
}

// UpdateInteractionDefaultOutcome replaces the default outcome; a nil dict
// clears it.
func (s *State) UpdateInteractionDefaultOutcome(caps *Capabilities, d map[string]any) error {
	if d == nil {
		s.Interaction.DefaultOutcome = nil
		return nil
	}
	outcome, err := NewOutcomeFromDict(caps, d)
	if err != nil {
		return err
	}
	s.Interaction.DefaultOutcome = outcome
	return nil
}

// UpdateConfirmedUnclassifiedAnswers replaces the list of answers confirmed
// as not needing their own answer group.
func (s *State) UpdateConfirmedUnclassifiedAnswers(answers []any) {
	s.Interaction.ConfirmedUnclassifiedAnswers = answers
}

// UpdateInteractionFallbacks replaces the interaction's fallbacks and, since
// fallbacks are deprecated in favor of hints, synthesizes a hint from each
// fallback's first feedback line when the state has no hints yet.
func (s *State) UpdateInteractionFallbacks(caps *Capabilities, dicts []map[string]any) error {
	fallbacks := make([]*Fallback, 0, len(dicts))
	for _, d := range dicts {
		f, err := NewFallbackFromDict(caps, d)
		if err != nil {
			return err
		}
		fallbacks = append(fallbacks, f)
	}
	s.Interaction.Fallbacks = fallbacks
	if len(s.Interaction.Hints) == 0 {
		for _, f := range fallbacks {
			if f.Outcome != nil && len(f.Outcome.Feedback) > 0 && f.Outcome.Feedback[0] != "" {
				s.Interaction.Hints = append(s.Interaction.Hints, NewHint(caps, f.Outcome.Feedback[0]))
			}
		}
	}
	return nil
}

// UpdateInteractionHints replaces the interaction's hints from their dict
// forms.
func (s *State) UpdateInteractionHints(caps *Capabilities, dicts []map[string]any) error {
	hints := make([]*Hint, 0, len(dicts))
	for _, d := range dicts {
		h, err := NewHintFromDict(caps, d)
		if err != nil {
			return err
		}
		hints = append(hints, h)
	}
	s.Interaction.Hints = hints
	return nil
}

// AddHint appends a hint built from the given HTML.
func (s *State) AddHint(caps *Capabilities, hintText string) {
	s.Interaction.Hints = append(s.Interaction.Hints, NewHint(caps, hintText))
}

// DeleteHint removes the hint at the given index.
func (s *State) DeleteHint(index int) error {
	if index < 0 || index >= len(s.Interaction.Hints) {
		return Validationf("hint index out of range: %d", index)
	}
	s.Interaction.Hints = append(s.Interaction.Hints[:index], s.Interaction.Hints[index+1:]...)
	return nil
}

// UpdateInteractionSolution replaces the interaction's solution; a nil or
// empty dict clears it.
func (s *State) UpdateInteractionSolution(caps *Capabilities, d map[string]any) error {
	if len(d) == 0 {
		s.Interaction.Solution = nil
		return nil
	}
	solution, err := NewSolutionFromDict(caps, s.Interaction.ID, d)
	if err != nil {
		return err
	}
	s.Interaction.Solution = solution
	return nil
}

// TrainingDataItem is the training data of one answer group: the answers its
// classifier rule was taught with.
type TrainingDataItem struct {
	AnswerGroupIndex int
	Answers          []any
}

// TrainingData collects the training data of every answer group that carries
// a classifier rule.
func (s *State) TrainingData() []TrainingDataItem {
	var items []TrainingDataItem
	for idx, g := range s.Interaction.AnswerGroups {
		for _, rs := range g.RuleSpecs {
			if rs.RuleType != RuleTypeClassifier {
				continue
			}
			answers, _ := rs.Inputs["training_data"].([]any)
			items = append(items, TrainingDataItem{AnswerGroupIndex: idx, Answers: answers})
			break
		}
	}
	return items
}

// CanUndergoClassification reports whether the state's training data is big
// enough to train a statistical classifier: enough total examples across
// enough distinct answer groups.
func (s *State) CanUndergoClassification() bool {
	totalExamples := 0
	labels := 0
	for _, item := range s.TrainingData() {
		if len(item.Answers) > 0 {
			totalExamples += len(item.Answers)
			labels++
		}
	}
	return totalExamples >= MinTotalTrainingExamples && labels >= MinAssignedLabels
}

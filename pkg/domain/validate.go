package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Validate checks the exploration's structural and referential integrity.
// With strict set, editorial completeness checks (reachability, dead ends,
// missing metadata) are additionally run and their findings accumulated into
// a single combined error instead of failing on the first.
func (e *Exploration) Validate(caps *Capabilities, strict bool) error {
	if err := e.validateTags(); err != nil {
		return err
	}
	if e.LanguageCode != "" && !isSupportedLanguageCode(e.LanguageCode) {
		return Validationf("invalid language code: %s", e.LanguageCode)
	}

	if len(e.States) == 0 {
		return Validationf("this exploration has no states")
	}
	for _, name := range e.StateNames() {
		if err := ValidateStateName(name); err != nil {
			return err
		}
		if err := e.States[name].Validate(caps, e.ParamSpecs, !strict); err != nil {
			return Validationf("state %q: %v", name, err)
		}
	}

	if e.InitStateName == "" {
		return Validationf("this exploration has no initial state name specified")
	}
	if !e.HasState(e.InitStateName) {
		return Validationf(
			"there is no state in %v corresponding to the exploration's initial state name %s",
			e.StateNames(), e.InitStateName)
	}

	for name, spec := range e.ParamSpecs {
		if !isAlphanumeric(name) {
			return Validationf("only parameter names with characters in [a-zA-Z0-9] are accepted, got %q", name)
		}
		if err := spec.Validate(); err != nil {
			return err
		}
	}
	if err := e.validateParamChangeNames(); err != nil {
		return err
	}

	for _, name := range e.StateNames() {
		for _, o := range e.States[name].Interaction.AllOutcomes() {
			if !e.HasState(o.Dest) {
				return Validationf(
					"the destination %s is not a valid state", o.Dest)
			}
		}
	}

	if err := e.Skin.Validate(caps); err != nil {
		return err
	}
	for _, stateName := range e.Skin.StateNamesRequiredByGadgets() {
		if !e.HasState(stateName) {
			return Validationf(
				"exploration missing required state: %s", stateName)
		}
	}

	if !strict {
		return nil
	}

	var warnings []string
	if err := e.verifyAllStatesReachable(caps); err != nil {
		warnings = append(warnings, err.Error())
	}
	if err := e.verifyNoDeadEnds(caps); err != nil {
		warnings = append(warnings, err.Error())
	}
	if e.Title == "" {
		warnings = append(warnings, "a title must be specified.")
	}
	if e.Category == "" {
		warnings = append(warnings, "a category must be specified.")
	}
	if e.Objective == "" {
		warnings = append(warnings, "an objective must be specified.")
	}
	if e.LanguageCode == "" {
		warnings = append(warnings, "a language must be specified.")
	}
	if len(warnings) > 0 {
		var b strings.Builder
		for i, w := range warnings {
			fmt.Fprintf(&b, "%d. %s ", i+1, w)
		}
		return Validationf(
			"please fix the following issues before saving this exploration: %s",
			strings.TrimSpace(b.String()))
	}
	return nil
}

func (e *Exploration) validateTags() error {
	seen := map[string]bool{}
	for _, tag := range e.Tags {
		if tag == "" {
			return Validationf("tags should be non-empty")
		}
		for _, r := range tag {
			if (r < 'a' || r > 'z') && r != ' ' {
				return Validationf("tags should only contain lowercase letters and spaces, got %q", tag)
			}
		}
		if strings.TrimSpace(tag) != tag {
			return Validationf("tags should not start or end with whitespace, got %q", tag)
		}
		if strings.Contains(tag, "  ") {
			return Validationf("adjacent whitespace in tags should be collapsed, got %q", tag)
		}
		if seen[tag] {
			return Validationf("some tags duplicate each other: %q", tag)
		}
		seen[tag] = true
	}
	return nil
}

// validateParamChangeNames checks that every parameter referenced by any
// param change anywhere in the document is declared in ParamSpecs.
func (e *Exploration) validateParamChangeNames() error {
	for _, name := range e.ParamChangeNames() {
		if _, ok := e.ParamSpecs[name]; !ok {
			return Validationf("no parameter named %q exists in this exploration", name)
		}
	}
	return nil
}

// verifyAllStatesReachable walks forward from the initial state over every
// outcome, fallbacks included, and reports the states that were never
// reached. All unreachable states surface in one error.
func (e *Exploration) verifyAllStatesReachable(caps *Capabilities) error {
	var processed []string
	queue := []string{e.InitStateName}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		processed = append(processed, current)

		state := e.States[current]
		if state.Interaction.IsTerminal(caps) {
			continue
		}
		for _, o := range state.Interaction.AllOutcomes() {
			if e.HasState(o.Dest) && !contains(processed, o.Dest) && !contains(queue, o.Dest) {
				queue = append(queue, o.Dest)
			}
		}
	}

	if len(e.States) != len(processed) {
		var unreachable []string
		for name := range e.States {
			if !contains(processed, name) {
				unreachable = append(unreachable, name)
			}
		}
		sort.Strings(unreachable)
		return Validationf(
			"the following states are not reachable from the initial state: %s",
			strings.Join(unreachable, ", "))
	}
	return nil
}

// verifyNoDeadEnds walks backwards from every terminal state over non-fallback
// outcomes only and reports the states that cannot guarantee an exit. The
// reverse edges are rescanned per iteration rather than precomputed; the
// graphs are small enough that it does not matter.
func (e *Exploration) verifyNoDeadEnds(caps *Capabilities) error {
	var processed []string
	var queue []string
	for name, state := range e.States {
		if state.Interaction.IsTerminal(caps) {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		processed = append(processed, current)

		for name, state := range e.States {
			if contains(processed, name) || contains(queue, name) {
				continue
			}
			for _, o := range state.Interaction.NonFallbackOutcomes() {
				if o.Dest == current {
					queue = append(queue, name)
					break
				}
			}
		}
	}

	if len(e.States) != len(processed) {
		var deadEnds []string
		for name := range e.States {
			if !contains(processed, name) {
				deadEnds = append(deadEnds, name)
			}
		}
		sort.Strings(deadEnds)
		return Validationf(
			"it is impossible to complete the exploration from the following states: %s",
			strings.Join(deadEnds, ", "))
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

package migrate

// The states schema ladder. Each step upgrades the per-state dicts of a
// states mapping by exactly one version.

// statesV0ToV1 renames the legacy "widget" block to "interaction", promoting
// widget_id to id and dropping the sticky flag.
func statesV0ToV1(states map[string]any, _ Registry) (map[string]any, error) {
	err := eachState(states, func(name string, state map[string]any) error {
		raw, ok := state["widget"]
		if !ok {
			return nil
		}
		widget, ok := raw.(map[string]any)
		if !ok {
			return Conversionf("state %q: expected map for widget, got %T", name, raw)
		}
		widget["id"] = widget["widget_id"]
		delete(widget, "widget_id")
		delete(widget, "sticky")
		state["interaction"] = widget
		delete(state, "widget")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// legacyEndDest is the destination name older documents used for the
// implicit ending state.
const legacyEndDest = "END"

// statesV1ToV2 materializes the implicit END state. Older documents could
// route answers to a state named END that never existed in the states dict;
// if any rule still points there, an explicit terminal END state is added.
func statesV1ToV2(states map[string]any, reg Registry) (map[string]any, error) {
	referencesEnd := false
	err := eachState(states, func(name string, state map[string]any) error {
		interaction, err := mapField(state, "interaction")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		id, err := optString(interaction, "id")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		if id != "" {
			terminal, err := reg.IsTerminal(id)
			if err == nil && terminal {
				return nil
			}
		}
		handlers, err := listField(interaction, "handlers")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		for _, rawHandler := range handlers {
			handler, ok := rawHandler.(map[string]any)
			if !ok {
				continue
			}
			ruleSpecs, _ := handler["rule_specs"].([]any)
			for _, rawRule := range ruleSpecs {
				rule, ok := rawRule.(map[string]any)
				if !ok {
					continue
				}
				if dest, _ := rule["dest"].(string); dest == legacyEndDest {
					referencesEnd = true
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, exists := states[legacyEndDest]; referencesEnd && !exists {
		states[legacyEndDest] = map[string]any{
			"content": []any{
				map[string]any{"type": "text", "value": "Congratulations, you have finished!"},
			},
			"interaction": map[string]any{
				"id": "EndExploration",
				"customization_args": map[string]any{
					"recommendedExplorationIds": map[string]any{"value": []any{}},
				},
				"handlers": []any{
					map[string]any{
						"name": "submit",
						"rule_specs": []any{
							map[string]any{
								"definition":    map[string]any{"rule_type": "default"},
								"dest":          legacyEndDest,
								"feedback":      []any{},
								"param_changes": []any{},
							},
						},
					},
				},
			},
			"param_changes": []any{},
		}
	}
	return states, nil
}

// statesV2ToV3 introduces the triggers list within interactions.
func statesV2ToV3(states map[string]any, _ Registry) (map[string]any, error) {
	err := eachState(states, func(name string, state map[string]any) error {
		interaction, err := mapField(state, "interaction")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		if _, ok := interaction["triggers"]; !ok {
			interaction["triggers"] = []any{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// statesV3ToV4 reorganizes rules from per-handler lists into answer groups,
// separating the single "default" rule into the default outcome. Only the
// submit handler and default/atomic rules with an answer subject can be
// converted; anything else aborts the migration.
func statesV3ToV4(states map[string]any, reg Registry) (map[string]any, error) {
	err := eachState(states, func(name string, state map[string]any) error {
		interaction, err := mapField(state, "interaction")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		handlers, err := listField(interaction, "handlers")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}

		answerGroups := []any{}
		var defaultOutcome map[string]any
		for _, rawHandler := range handlers {
			handler, ok := rawHandler.(map[string]any)
			if !ok {
				return Conversionf("state %q: expected map for handler, got %T", name, rawHandler)
			}
			handlerName, _ := handler["name"].(string)
			if handlerName != "submit" {
				return Conversionf(
					"can only convert rules with a name 'submit', encountered name: %s", handlerName)
			}
			ruleSpecs, _ := handler["rule_specs"].([]any)
			for _, rawRule := range ruleSpecs {
				rule, ok := rawRule.(map[string]any)
				if !ok {
					return Conversionf("state %q: expected map for rule spec, got %T", name, rawRule)
				}
				definition, err := mapField(rule, "definition")
				if err != nil {
					return Conversionf("state %q: %v", name, err)
				}

				isDefault := false
				if rawType, ok := definition["rule_type"]; ok {
					ruleType, _ := rawType.(string)
					isDefault = ruleType == "default"
					if !isDefault && ruleType != "atomic" {
						return Conversionf(
							"can only convert default and atomic rules, encountered rule of type: %s", ruleType)
					}
				}
				if rawSubject, ok := definition["subject"]; ok {
					if subject, _ := rawSubject.(string); subject != "answer" {
						return Conversionf(
							"can only convert rules with an 'answer' subject, encountered subject: %s", subject)
					}
				}

				paramChanges, ok := rule["param_changes"]
				if !ok {
					paramChanges = []any{}
				}
				outcome := map[string]any{
					"dest":          rule["dest"],
					"feedback":      rule["feedback"],
					"param_changes": paramChanges,
				}
				if isDefault {
					defaultOutcome = outcome
					continue
				}
				answerGroups = append(answerGroups, map[string]any{
					"rule_specs": []any{
						map[string]any{
							"rule_type": definition["name"],
							"inputs":    definition["inputs"],
						},
					},
					"outcome": outcome,
				})
			}
		}

		terminal := false
		id, err := optString(interaction, "id")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		if id != "" {
			terminal, err = reg.IsTerminal(id)
			if err != nil {
				return Conversionf("unknown interaction id: %s", id)
			}
		}
		if terminal {
			interaction["answer_groups"] = []any{}
			interaction["default_outcome"] = nil
		} else {
			interaction["answer_groups"] = answerGroups
			interaction["default_outcome"] = defaultOutcome
		}
		delete(interaction, "handlers")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// statesV4ToV5 removes the triggers list and replaces it with fallbacks.
func statesV4ToV5(states map[string]any, _ Registry) (map[string]any, error) {
	err := eachState(states, func(name string, state map[string]any) error {
		interaction, err := mapField(state, "interaction")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		delete(interaction, "triggers")
		if _, ok := interaction["fallbacks"]; !ok {
			interaction["fallbacks"] = []any{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// statesV5ToV6 introduces the confirmed_unclassified_answers list.
func statesV5ToV6(states map[string]any, _ Registry) (map[string]any, error) {
	err := eachState(states, func(name string, state map[string]any) error {
		interaction, err := mapField(state, "interaction")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		if _, ok := interaction["confirmed_unclassified_answers"]; !ok {
			interaction["confirmed_unclassified_answers"] = []any{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// statesV6ToV7 forces every CodeRepl interaction to use Python.
func statesV6ToV7(states map[string]any, _ Registry) (map[string]any, error) {
	err := eachState(states, func(name string, state map[string]any) error {
		interaction, err := mapField(state, "interaction")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		id, err := optString(interaction, "id")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		if id != "CodeRepl" {
			return nil
		}
		args, err := mapField(interaction, "customization_args")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		language, err := mapField(args, "language")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		language["value"] = "python"
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// statesV7ToV8 adds the classifier_model_id field.
func statesV7ToV8(states map[string]any, _ Registry) (map[string]any, error) {
	err := eachState(states, func(name string, state map[string]any) error {
		state["classifier_model_id"] = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// statesV8ToV9 adds the correct flag to every answer group, defaulting false.
func statesV8ToV9(states map[string]any, _ Registry) (map[string]any, error) {
	err := eachState(states, func(name string, state map[string]any) error {
		interaction, err := mapField(state, "interaction")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		groups, _ := interaction["answer_groups"].([]any)
		for _, rawGroup := range groups {
			group, ok := rawGroup.(map[string]any)
			if !ok {
				return Conversionf("state %q: expected map for answer group, got %T", name, rawGroup)
			}
			group["correct"] = false
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// statesV9ToV10 introduces hints and solution, synthesizing a hint from each
// fallback's first feedback line.
func statesV9ToV10(states map[string]any, _ Registry) (map[string]any, error) {
	err := eachState(states, func(name string, state map[string]any) error {
		interaction, err := mapField(state, "interaction")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		if _, ok := interaction["hints"]; !ok {
			hints := []any{}
			fallbacks, _ := interaction["fallbacks"].([]any)
			for _, rawFallback := range fallbacks {
				fallback, ok := rawFallback.(map[string]any)
				if !ok {
					continue
				}
				outcome, _ := fallback["outcome"].(map[string]any)
				if outcome == nil {
					continue
				}
				feedback, _ := outcome["feedback"].([]any)
				if len(feedback) == 0 {
					continue
				}
				if first, _ := feedback[0].(string); first != "" {
					hints = append(hints, map[string]any{"hint_text": first})
				}
			}
			interaction["hints"] = hints
		}
		if _, ok := interaction["solution"]; !ok {
			interaction["solution"] = map[string]any{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// statesV10ToV11 flattens content from a single-element typed list to a
// subtitled HTML dict with an empty audio translations list.
func statesV10ToV11(states map[string]any, _ Registry) (map[string]any, error) {
	err := eachState(states, func(name string, state map[string]any) error {
		content, err := listField(state, "content")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		if len(content) == 0 {
			return Conversionf("state %q: content list is empty", name)
		}
		first, ok := content[0].(map[string]any)
		if !ok {
			return Conversionf("state %q: expected map for content element, got %T", name, content[0])
		}
		state["content"] = map[string]any{
			"html":               first["value"],
			"audio_translations": []any{},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

// statesV11ToV12 rekeys audio translations from a list into a map keyed by
// language code.
func statesV11ToV12(states map[string]any, _ Registry) (map[string]any, error) {
	err := eachState(states, func(name string, state map[string]any) error {
		content, err := mapField(state, "content")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		translations, err := listField(content, "audio_translations")
		if err != nil {
			return Conversionf("state %q: %v", name, err)
		}
		byLanguage := map[string]any{}
		for _, rawTranslation := range translations {
			translation, ok := rawTranslation.(map[string]any)
			if !ok {
				return Conversionf("state %q: expected map for audio translation, got %T", name, rawTranslation)
			}
			languageCode, err := stringField(translation, "language_code")
			if err != nil {
				return Conversionf("state %q: %v", name, err)
			}
			byLanguage[languageCode] = map[string]any{
				"filename":        translation["filename"],
				"file_size_bytes": translation["file_size_bytes"],
				"needs_update":    translation["needs_update"],
			}
		}
		content["audio_translations"] = byLanguage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

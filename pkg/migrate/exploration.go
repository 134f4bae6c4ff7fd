package migrate

// The document schema ladder. Most steps delegate to the states ladder once
// states gained their own version counter at document v6; the earlier steps
// reshape the document itself.

// docV1ToV2 converts the states list into a mapping keyed by state name and
// records the first state as the initial one.
func docV1ToV2(doc map[string]any, _ Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 2
	statesList, err := listField(doc, "states")
	if err != nil {
		return nil, err
	}
	if len(statesList) == 0 {
		return nil, Conversionf("document has no states")
	}
	states := map[string]any{}
	for i, rawState := range statesList {
		state, ok := rawState.(map[string]any)
		if !ok {
			return nil, Conversionf("state %d: expected map, got %T", i, rawState)
		}
		name, err := stringField(state, "name")
		if err != nil {
			return nil, Conversionf("state %d: %v", i, err)
		}
		delete(state, "name")
		states[name] = state
		if i == 0 {
			doc["init_state_name"] = name
		}
	}
	doc["states"] = states
	return doc, nil
}

// docV2ToV3 adds the objective, language_code, skill_tags, blurb and
// author_notes fields.
func docV2ToV3(doc map[string]any, _ Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 3
	doc["objective"] = ""
	doc["language_code"] = "en"
	doc["skill_tags"] = []any{}
	doc["blurb"] = ""
	doc["author_notes"] = ""
	return doc, nil
}

// docV3ToV4 renames widgets to interactions inside every state. States were
// not yet versioned at document v3, so this mirrors the first states step.
func docV3ToV4(doc map[string]any, reg Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 4
	states, err := mapField(doc, "states")
	if err != nil {
		return nil, err
	}
	if _, err := statesV0ToV1(states, reg); err != nil {
		return nil, err
	}
	return doc, nil
}

// docV4ToV5 renames skill_tags to tags and seeds empty skin customizations.
func docV4ToV5(doc map[string]any, _ Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 5
	doc["tags"] = doc["skill_tags"]
	delete(doc, "skill_tags")
	doc["skin_customizations"] = map[string]any{"panels_contents": map[string]any{}}
	return doc, nil
}

// docV5ToV6 introduces the states schema version counter, bringing the
// states up to v3. The full run from v0 is harmless: the widget rename step
// skips states the document v3 step already converted.
func docV5ToV6(doc map[string]any, reg Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 6
	return advanceDocStates(doc, reg, 0, 3)
}

// docV6ToV7 runs the handlers-to-answer-groups states step.
func docV6ToV7(doc map[string]any, reg Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 7
	return advanceDocStates(doc, reg, 3, 4)
}

// docV7ToV8 runs the triggers-to-fallbacks states step.
func docV7ToV8(doc map[string]any, reg Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 8
	return advanceDocStates(doc, reg, 4, 5)
}

// docV8ToV9 runs the confirmed-unclassified-answers states step.
func docV8ToV9(doc map[string]any, reg Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 9
	return advanceDocStates(doc, reg, 5, 6)
}

// docV9ToV10 embeds the externally supplied title and category into the
// document, drops the obsolete default_skin field, resets the gadget layout
// to a single empty bottom panel, and runs the CodeRepl states step.
func docV9ToV10(doc map[string]any, reg Registry, title, category string) (map[string]any, error) {
	doc["schema_version"] = 10
	doc["title"] = title
	doc["category"] = category
	delete(doc, "default_skin")
	doc["skin_customizations"] = map[string]any{
		"panels_contents": map[string]any{"bottom": []any{}},
	}
	return advanceDocStates(doc, reg, 6, 7)
}

// docV10ToV11 runs the classifier-model-id states step.
func docV10ToV11(doc map[string]any, reg Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 11
	return advanceDocStates(doc, reg, 7, 8)
}

// docV11ToV12 runs the answer-group-correct-flag states step.
func docV11ToV12(doc map[string]any, reg Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 12
	return advanceDocStates(doc, reg, 8, 9)
}

// docV12ToV13 runs the hints-and-solution states step.
func docV12ToV13(doc map[string]any, reg Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 13
	return advanceDocStates(doc, reg, 9, 10)
}

// docV13ToV14 runs the subtitled-content states step.
func docV13ToV14(doc map[string]any, reg Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 14
	return advanceDocStates(doc, reg, 10, 11)
}

// docV14ToV15 runs the audio-translations-rekeying states step.
func docV14ToV15(doc map[string]any, reg Registry, _, _ string) (map[string]any, error) {
	doc["schema_version"] = 15
	return advanceDocStates(doc, reg, 11, 12)
}

func advanceDocStates(doc map[string]any, reg Registry, from, to int) (map[string]any, error) {
	states, err := mapField(doc, "states")
	if err != nil {
		return nil, err
	}
	migrated, err := AdvanceStates(states, from, to, reg)
	if err != nil {
		return nil, err
	}
	doc["states"] = migrated
	doc["states_schema_version"] = to
	return doc, nil
}

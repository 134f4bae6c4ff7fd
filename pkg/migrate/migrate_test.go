package migrate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry map[string]bool

func (m fakeRegistry) IsTerminal(id string) (bool, error) {
	terminal, ok := m[id]
	if !ok {
		return false, fmt.Errorf("interaction not found: %s", id)
	}
	return terminal, nil
}

func testRegistry() fakeRegistry {
	return fakeRegistry{
		"TextInput":      false,
		"CodeRepl":       false,
		"EndExploration": true,
	}
}

// v1Doc is a document in the oldest supported serialized form: states as a
// list, rules nested in per-handler definitions, and an implicit END state.
func v1Doc() map[string]any {
	return map[string]any{
		"schema_version": 1,
		"default_skin":   "conversation_v1",
		"param_changes":  []any{},
		"param_specs":    map[string]any{},
		"states": []any{
			map[string]any{
				"name": "(untitled state)",
				"content": []any{
					map[string]any{"type": "text", "value": "<p>Welcome</p>"},
				},
				"param_changes": []any{},
				"widget": map[string]any{
					"widget_id":          "TextInput",
					"customization_args": map[string]any{},
					"sticky":             false,
					"handlers": []any{
						map[string]any{
							"name": "submit",
							"rule_specs": []any{
								map[string]any{
									"definition": map[string]any{
										"rule_type": "atomic",
										"name":      "Equals",
										"subject":   "answer",
										"inputs":    map[string]any{"x": "hello"},
									},
									"dest":          "END",
									"feedback":      []any{"<p>nice</p>"},
									"param_changes": []any{},
								},
								map[string]any{
									"definition":    map[string]any{"rule_type": "default"},
									"dest":          "(untitled state)",
									"feedback":      []any{"<p>try again</p>"},
									"param_changes": []any{},
								},
							},
						},
					},
				},
			},
		},
	}
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

func TestToCurrentFromV1(t *testing.T) {
	doc, initial, err := ToCurrent(v1Doc(), testRegistry(), "My Title", "Math")
	require.NoError(t, err)
	assert.Equal(t, 1, initial)
	assert.Equal(t, CurrentSchemaVersion, doc["schema_version"])
	assert.Equal(t, CurrentStatesSchemaVersion, doc["states_schema_version"])

	assert.Equal(t, "My Title", doc["title"])
	assert.Equal(t, "Math", doc["category"])
	assert.NotContains(t, doc, "default_skin")
	assert.Equal(t, map[string]any{
		"panels_contents": map[string]any{"bottom": []any{}},
	}, doc["skin_customizations"])
	assert.Equal(t, "(untitled state)", doc["init_state_name"])

	states := doc["states"].(map[string]any)
	require.Contains(t, states, "END", "the referenced implicit END state must be materialized")

	first := states["(untitled state)"].(map[string]any)
	assert.Equal(t, map[string]any{
		"html":               "<p>Welcome</p>",
		"audio_translations": map[string]any{},
	}, first["content"])
	assert.Nil(t, first["classifier_model_id"])

	interaction := first["interaction"].(map[string]any)
	assert.Equal(t, "TextInput", interaction["id"])
	assert.Equal(t, []any{}, interaction["fallbacks"])
	assert.Equal(t, []any{}, interaction["hints"])
	assert.Equal(t, map[string]any{}, interaction["solution"])
	assert.Equal(t, []any{}, interaction["confirmed_unclassified_answers"])
	assert.NotContains(t, interaction, "handlers")
	assert.NotContains(t, interaction, "triggers")

	groups := interaction["answer_groups"].([]any)
	require.Len(t, groups, 1)
	group := groups[0].(map[string]any)
	assert.Equal(t, false, group["correct"])
	rule := group["rule_specs"].([]any)[0].(map[string]any)
	assert.Equal(t, "Equals", rule["rule_type"])
	assert.Equal(t, map[string]any{"x": "hello"}, rule["inputs"])
	outcome := group["outcome"].(map[string]any)
	assert.Equal(t, "END", outcome["dest"])

	defaultOutcome := interaction["default_outcome"].(map[string]any)
	assert.Equal(t, "(untitled state)", defaultOutcome["dest"])

	end := states["END"].(map[string]any)
	endInteraction := end["interaction"].(map[string]any)
	assert.Equal(t, "EndExploration", endInteraction["id"])
	assert.Equal(t, []any{}, endInteraction["answer_groups"],
		"terminal interactions end up with no answer groups")
	assert.Nil(t, endInteraction["default_outcome"])
}

func TestToCurrentIdempotentAtCeiling(t *testing.T) {
	doc, _, err := ToCurrent(v1Doc(), testRegistry(), "My Title", "Math")
	require.NoError(t, err)

	snapshot := deepCopy(doc).(map[string]any)
	again, initial, err := ToCurrent(doc, testRegistry(), "", "")
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, initial)
	assert.Equal(t, snapshot, again)
}

func TestToCurrentVersionGate(t *testing.T) {
	_, _, err := ToCurrent(map[string]any{}, testRegistry(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema version")

	_, _, err = ToCurrent(map[string]any{"schema_version": 0}, testRegistry(), "", "")
	assert.Error(t, err)

	_, _, err = ToCurrent(map[string]any{"schema_version": CurrentSchemaVersion + 1}, testRegistry(), "", "")
	assert.Error(t, err)
}

func TestStatesVersionPins(t *testing.T) {
	// Walking a v1 document step by step pins the nested states version at
	// each document version where state shape changed.
	doc := v1Doc()
	reg := testRegistry()

	var err error
	doc, err = docV1ToV2(doc, reg, "", "")
	require.NoError(t, err)
	doc, err = docV2ToV3(doc, reg, "", "")
	require.NoError(t, err)
	doc, err = docV3ToV4(doc, reg, "", "")
	require.NoError(t, err)
	doc, err = docV4ToV5(doc, reg, "", "")
	require.NoError(t, err)
	assert.NotContains(t, doc, "states_schema_version")

	pins := []struct {
		step func(map[string]any, Registry, string, string) (map[string]any, error)
		want int
	}{
		{docV5ToV6, 3},
		{docV6ToV7, 4},
		{docV7ToV8, 5},
		{docV8ToV9, 6},
		{docV9ToV10, 7},
		{docV10ToV11, 8},
		{docV11ToV12, 9},
		{docV12ToV13, 10},
		{docV13ToV14, 11},
		{docV14ToV15, 12},
	}
	for _, pin := range pins {
		doc, err = pin.step(doc, reg, "Title", "Category")
		require.NoError(t, err)
		assert.Equal(t, pin.want, doc["states_schema_version"])
	}
	assert.Equal(t, CurrentSchemaVersion, doc["schema_version"])
}

func TestEndStateOnlySynthesizedWhenReferenced(t *testing.T) {
	states := map[string]any{
		"A": map[string]any{
			"content":       []any{map[string]any{"type": "text", "value": ""}},
			"param_changes": []any{},
			"interaction": map[string]any{
				"id":                 "TextInput",
				"customization_args": map[string]any{},
				"handlers": []any{
					map[string]any{
						"name": "submit",
						"rule_specs": []any{
							map[string]any{
								"definition":    map[string]any{"rule_type": "default"},
								"dest":          "A",
								"feedback":      []any{},
								"param_changes": []any{},
							},
						},
					},
				},
			},
		},
	}

	migrated, err := AdvanceStates(states, 1, 2, testRegistry())
	require.NoError(t, err)
	assert.NotContains(t, migrated, "END")
}

func TestHandlersConversionRejectsUnconvertibleShapes(t *testing.T) {
	build := func(definition map[string]any, handlerName string) map[string]any {
		return map[string]any{
			"A": map[string]any{
				"content":       []any{map[string]any{"type": "text", "value": ""}},
				"param_changes": []any{},
				"interaction": map[string]any{
					"id":                 "TextInput",
					"customization_args": map[string]any{},
					"triggers":           []any{},
					"handlers": []any{
						map[string]any{
							"name": handlerName,
							"rule_specs": []any{
								map[string]any{
									"definition":    definition,
									"dest":          "A",
									"feedback":      []any{},
									"param_changes": []any{},
								},
							},
						},
					},
				},
			},
		}
	}

	_, err := AdvanceStates(build(map[string]any{"rule_type": "default"}, "tap"), 3, 4, testRegistry())
	require.Error(t, err)
	assert.True(t, IsConversionError(err))
	assert.Contains(t, err.Error(), "submit")

	_, err = AdvanceStates(build(map[string]any{"rule_type": "composite"}, "submit"), 3, 4, testRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "composite")

	_, err = AdvanceStates(build(map[string]any{
		"rule_type": "atomic", "name": "Equals", "subject": "noun",
		"inputs": map[string]any{"x": 1},
	}, "submit"), 3, 4, testRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "noun")

	unknown := build(map[string]any{"rule_type": "default"}, "submit")
	unknown["A"].(map[string]any)["interaction"].(map[string]any)["id"] = "HoloDeck"
	_, err = AdvanceStates(unknown, 3, 4, testRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HoloDeck")
}

func TestCodeReplForcedToPython(t *testing.T) {
	states := map[string]any{
		"A": map[string]any{
			"interaction": map[string]any{
				"id": "CodeRepl",
				"customization_args": map[string]any{
					"language": map[string]any{"value": "coffeescript"},
				},
			},
		},
	}

	migrated, err := AdvanceStates(states, 6, 7, testRegistry())
	require.NoError(t, err)
	args := migrated["A"].(map[string]any)["interaction"].(map[string]any)["customization_args"].(map[string]any)
	assert.Equal(t, "python", args["language"].(map[string]any)["value"])
}

func TestAudioTranslationsRekeyedByLanguage(t *testing.T) {
	states := map[string]any{
		"A": map[string]any{
			"content": map[string]any{
				"html": "<p>hi</p>",
				"audio_translations": []any{
					map[string]any{
						"language_code":   "en",
						"filename":        "a.mp3",
						"file_size_bytes": 100,
						"needs_update":    false,
					},
					map[string]any{
						"language_code":   "hi-en",
						"filename":        "b.mp3",
						"file_size_bytes": 200,
						"needs_update":    true,
					},
				},
			},
		},
	}

	migrated, err := AdvanceStates(states, 11, 12, testRegistry())
	require.NoError(t, err)
	content := migrated["A"].(map[string]any)["content"].(map[string]any)
	assert.Equal(t, map[string]any{
		"en": map[string]any{
			"filename":        "a.mp3",
			"file_size_bytes": 100,
			"needs_update":    false,
		},
		"hi-en": map[string]any{
			"filename":        "b.mp3",
			"file_size_bytes": 200,
			"needs_update":    true,
		},
	}, content["audio_translations"])
}

func TestFallbackHintsSynthesized(t *testing.T) {
	states := map[string]any{
		"A": map[string]any{
			"interaction": map[string]any{
				"id": "TextInput",
				"fallbacks": []any{
					map[string]any{
						"trigger": map[string]any{"trigger_type": "NthResubmission"},
						"outcome": map[string]any{
							"dest":     "A",
							"feedback": []any{"<p>psst</p>", "<p>ignored</p>"},
						},
					},
					map[string]any{
						"trigger": map[string]any{"trigger_type": "NthResubmission"},
						"outcome": map[string]any{"dest": "A", "feedback": []any{}},
					},
				},
			},
		},
	}

	migrated, err := AdvanceStates(states, 9, 10, testRegistry())
	require.NoError(t, err)
	interaction := migrated["A"].(map[string]any)["interaction"].(map[string]any)
	assert.Equal(t, []any{map[string]any{"hint_text": "<p>psst</p>"}}, interaction["hints"])
	assert.Equal(t, map[string]any{}, interaction["solution"])
}

func TestAdvanceStatesRange(t *testing.T) {
	_, err := AdvanceStates(map[string]any{}, 5, 3, testRegistry())
	assert.Error(t, err)
	_, err = AdvanceStates(map[string]any{}, -1, 3, testRegistry())
	assert.Error(t, err)
	_, err = AdvanceStates(map[string]any{}, 0, CurrentStatesSchemaVersion+1, testRegistry())
	assert.Error(t, err)

	same, err := AdvanceStates(map[string]any{}, 4, 4, testRegistry())
	require.NoError(t, err)
	assert.NotNil(t, same)
}

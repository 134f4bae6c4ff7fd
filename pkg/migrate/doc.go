// Package migrate upgrades serialized exploration documents from any
// historical schema version to the current one.
//
// The pipeline works on loosely typed document trees (nested map[string]any
// values, as produced by YAML or JSON decoding) rather than on domain
// objects, because its whole job is reshaping structures across versions
// that never coexist as a single Go type. Each step is a narrow function
// converting version N to version N+1, applied strictly in sequence with no
// skipping; steps mutate the tree they are given and return it.
//
// Two version counters move through the pipeline: the document schema
// version and the states schema version nested inside it. The states
// counter only advances inside the document steps that changed state shape.
package migrate

// Schema version ceilings. A document at CurrentSchemaVersion passes through
// the pipeline unchanged.
const (
	CurrentSchemaVersion       = 15
	CurrentStatesSchemaVersion = 12

	// LastUntitledSchemaVersion is the last document schema version whose
	// serialized form did not embed title and category; for those, both are
	// supplied by the caller and injected during migration.
	LastUntitledSchemaVersion = 9
)

// Registry answers the one question the pipeline needs from the interaction
// catalog: whether an interaction type ends the exploration.
type Registry interface {
	IsTerminal(id string) (bool, error)
}

// ToCurrent migrates doc from its declared schema_version up to
// CurrentSchemaVersion and returns the migrated tree together with the
// version the document started at. title and category are only consulted by
// the step that crosses LastUntitledSchemaVersion; for newer documents they
// are ignored.
func ToCurrent(doc map[string]any, reg Registry, title, category string) (map[string]any, int, error) {
	version, err := intField(doc, "schema_version")
	if err != nil {
		return nil, 0, Conversionf("invalid document: no schema version specified")
	}
	initial := version
	if version < 1 || version > CurrentSchemaVersion {
		return nil, 0, Conversionf(
			"sorry, we can only process v1 to v%d documents at present, received v%d",
			CurrentSchemaVersion, version)
	}

	type docStep func(map[string]any, Registry, string, string) (map[string]any, error)
	steps := map[int]docStep{
		1:  docV1ToV2,
		2:  docV2ToV3,
		3:  docV3ToV4,
		4:  docV4ToV5,
		5:  docV5ToV6,
		6:  docV6ToV7,
		7:  docV7ToV8,
		8:  docV8ToV9,
		9:  docV9ToV10,
		10: docV10ToV11,
		11: docV11ToV12,
		12: docV12ToV13,
		13: docV13ToV14,
		14: docV14ToV15,
	}
	for version < CurrentSchemaVersion {
		step := steps[version]
		doc, err = step(doc, reg, title, category)
		if err != nil {
			return nil, 0, err
		}
		version++
	}
	return doc, initial, nil
}

// AdvanceStates migrates a states dict from one states schema version to
// another, applying each step in sequence.
func AdvanceStates(states map[string]any, from, to int, reg Registry) (map[string]any, error) {
	if from < 0 || to > CurrentStatesSchemaVersion || from > to {
		return nil, Conversionf("cannot migrate states schema from v%d to v%d", from, to)
	}
	type statesStep func(map[string]any, Registry) (map[string]any, error)
	steps := map[int]statesStep{
		0:  statesV0ToV1,
		1:  statesV1ToV2,
		2:  statesV2ToV3,
		3:  statesV3ToV4,
		4:  statesV4ToV5,
		5:  statesV5ToV6,
		6:  statesV6ToV7,
		7:  statesV7ToV8,
		8:  statesV8ToV9,
		9:  statesV9ToV10,
		10: statesV10ToV11,
		11: statesV11ToV12,
	}
	var err error
	for version := from; version < to; version++ {
		states, err = steps[version](states, reg)
		if err != nil {
			return nil, err
		}
	}
	return states, nil
}

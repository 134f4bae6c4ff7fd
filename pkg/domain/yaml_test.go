package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lessonforge/lessonforge/pkg/migrate"
)

func currentVersionYAML(t *testing.T) []byte {
	t.Helper()
	caps := testCaps()
	exp := buildExploration(t, caps, "First", "Last")
	linkState(exp.States["First"], "Last")
	endState(exp.States["Last"])

	data, err := exp.ToYAML(caps)
	require.NoError(t, err)
	return data
}

func TestFromYAMLCurrentVersion(t *testing.T) {
	caps := testCaps()
	data := currentVersionYAML(t)

	exp, err := FromYAML(caps, "exp1", data)
	require.NoError(t, err)
	assert.Equal(t, "exp1", exp.ID)
	assert.Equal(t, "First", exp.InitStateName)
	assert.Equal(t, []string{"First", "Last"}, exp.StateNames())
	assert.Equal(t, migrate.CurrentStatesSchemaVersion, exp.StatesSchemaVersion)
	assert.NoError(t, exp.Validate(caps, true))
}

func TestToYAMLOmitsID(t *testing.T) {
	data := currentVersionYAML(t)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.NotContains(t, doc, "id")
	assert.Equal(t, migrate.CurrentSchemaVersion, doc["schema_version"])
}

func TestFromYAMLRejectsUntitledEra(t *testing.T) {
	caps := testCaps()
	data := currentVersionYAML(t)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	doc["schema_version"] = 9
	old, err := yaml.Marshal(doc)
	require.NoError(t, err)

	_, err = FromYAML(caps, "exp1", old)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "received: 9")
}

func TestFromUntitledYAMLRejectsTitledEra(t *testing.T) {
	caps := testCaps()
	data := currentVersionYAML(t)

	_, err := FromUntitledYAML(caps, "exp1", "Title", "Category", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "received: 15")
}

func TestFromYAMLRejectsGarbage(t *testing.T) {
	caps := testCaps()
	_, err := FromYAML(caps, "exp1", []byte("\tnot yaml"))
	assert.Error(t, err)

	_, err = FromYAML(caps, "exp1", []byte("title: no version\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema version")
}

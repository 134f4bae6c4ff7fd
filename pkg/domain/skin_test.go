package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreBar(name string, states ...string) *GadgetInstance {
	return &GadgetInstance{
		Type:            "ScoreBar",
		Name:            name,
		VisibleInStates: states,
		CustomizationArgs: map[string]any{
			"title": map[string]any{"value": "Score"},
		},
	}
}

func TestPanelFitWidthExceeded(t *testing.T) {
	caps := testCaps()
	// Two 250px gadgets plus 80px spacing is 580px, over the 350px panel.
	panels := caps.Panels.(fakePanels)
	wide := panels["bottom"]
	wide.MaxGadgets = 2
	panels["bottom"] = wide

	skin := NewSkinInstance(caps, DefaultSkinID)
	skin.Panels["bottom"] = []*GadgetInstance{
		scoreBar("Left", "A"),
		scoreBar("Right", "A"),
	}

	err := skin.Validate(caps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width")
	assert.Contains(t, err.Error(), "bottom")
}

func TestPanelFitMaxGadgetsExceeded(t *testing.T) {
	caps := testCaps()
	skin := NewSkinInstance(caps, DefaultSkinID)
	skin.Panels["bottom"] = []*GadgetInstance{
		scoreBar("Left", "A"),
		scoreBar("Right", "A"),
	}

	err := skin.Validate(caps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "visible at a time")
}

func TestPanelFitDisjointStatesPass(t *testing.T) {
	caps := testCaps()
	skin := NewSkinInstance(caps, DefaultSkinID)
	skin.Panels["bottom"] = []*GadgetInstance{
		scoreBar("Left", "A"),
		scoreBar("Right", "B"),
	}

	assert.NoError(t, skin.Validate(caps),
		"gadgets never visible together should not trip capacity checks")
}

func TestSkinRejectsDuplicateGadgetNames(t *testing.T) {
	caps := testCaps()
	skin := NewSkinInstance(caps, DefaultSkinID)
	skin.Panels["bottom"] = []*GadgetInstance{
		scoreBar("Bar", "A"),
		scoreBar("Bar", "B"),
	}

	err := skin.Validate(caps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate gadget name")
}

func TestSkinRejectsUnknownPanel(t *testing.T) {
	caps := testCaps()
	skin := NewSkinInstance(caps, DefaultSkinID)
	skin.Panels["sidebar"] = []*GadgetInstance{scoreBar("Bar", "A")}

	err := skin.Validate(caps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sidebar")
}

func TestGadgetValidate(t *testing.T) {
	caps := testCaps()

	assert.NoError(t, scoreBar("Bar", "A").Validate(caps))

	noStates := scoreBar("Bar")
	err := noStates.Validate(caps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one state")

	dup := scoreBar("Bar", "A", "A")
	err = dup.Validate(caps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate visibility")

	unknown := scoreBar("Bar", "A")
	unknown.Type = "Compass"
	assert.Error(t, unknown.Validate(caps))
}

func TestGadgetNameRules(t *testing.T) {
	assert.NoError(t, ValidateGadgetName("Score Bar 2"))
	assert.Error(t, ValidateGadgetName(""))
	assert.Error(t, ValidateGadgetName("has-dash"))
	assert.Error(t, ValidateGadgetName("123456789012345678901"), "21 chars is over the limit")
}

func TestStateNamesRequiredByGadgets(t *testing.T) {
	caps := testCaps()
	skin := NewSkinInstance(caps, DefaultSkinID)
	skin.Panels["bottom"] = []*GadgetInstance{
		scoreBar("Left", "B", "A"),
		scoreBar("Right", "A", "C"),
	}

	assert.Equal(t, []string{"A", "B", "C"}, skin.StateNamesRequiredByGadgets())
}

package domain

import "github.com/mitchellh/mapstructure"

// StateProperties are the state fields edit_state_property may touch.
var StateProperties = []string{
	StatePropertyParamChanges,
	StatePropertyContent,
	StatePropertyInteractionID,
	StatePropertyInteractionCustArgs,
	StatePropertyAnswerGroups,
	StatePropertyDefaultOutcome,
	StatePropertyUnclassifiedAnswers,
	StatePropertyInteractionFallbacks,
	StatePropertyInteractionHints,
	StatePropertyInteractionSolution,
	StatePropertyInteractionHandlers,
	StatePropertyInteractionSticky,
}

// GadgetProperties are the gadget fields edit_gadget_property may touch.
var GadgetProperties = []string{
	GadgetPropertyVisibility,
	GadgetPropertyCustArgs,
}

// ExplorationProperties are the document fields edit_exploration_property
// may touch.
var ExplorationProperties = []string{
	"title", "category", "objective", "language_code", "tags",
	"blurb", "author_notes", "param_specs", "param_changes",
	"init_state_name",
}

// ExplorationChange is one parsed editor command from a change list. Which
// fields are meaningful depends on Cmd; NewExplorationChange enforces the
// required ones per command.
type ExplorationChange struct {
	Cmd string `mapstructure:"cmd"`

	StateName    string `mapstructure:"state_name"`
	OldStateName string `mapstructure:"old_state_name"`
	NewStateName string `mapstructure:"new_state_name"`

	GadgetName    string         `mapstructure:"gadget_name"`
	OldGadgetName string         `mapstructure:"old_gadget_name"`
	NewGadgetName string         `mapstructure:"new_gadget_name"`
	GadgetDict    map[string]any `mapstructure:"gadget_dict"`
	Panel         string         `mapstructure:"panel"`

	PropertyName string `mapstructure:"property_name"`
	NewValue     any    `mapstructure:"new_value"`
	OldValue     any    `mapstructure:"old_value"`

	FromVersion int `mapstructure:"from_version"`
	ToVersion   int `mapstructure:"to_version"`
}

// NewExplorationChange decodes and checks a raw change dict.
func NewExplorationChange(d map[string]any) (*ExplorationChange, error) {
	var c ExplorationChange
	if err := mapstructure.Decode(d, &c); err != nil {
		return nil, Validationf("invalid change dict: %v", err)
	}
	switch c.Cmd {
	case "":
		return nil, Validationf("invalid change dict: missing cmd")
	case CmdAddState, CmdDeleteState:
		if c.StateName == "" {
			return nil, Validationf("%s requires a state_name", c.Cmd)
		}
	case CmdRenameState:
		if c.OldStateName == "" || c.NewStateName == "" {
			return nil, Validationf("%s requires old_state_name and new_state_name", c.Cmd)
		}
	case CmdEditStateProperty:
		if c.StateName == "" {
			return nil, Validationf("%s requires a state_name", c.Cmd)
		}
		if !containsString(StateProperties, c.PropertyName) {
			return nil, Validationf("invalid state property: %s", c.PropertyName)
		}
	case CmdAddGadget:
		if c.GadgetDict == nil || c.Panel == "" {
			return nil, Validationf("%s requires gadget_dict and panel", c.Cmd)
		}
		if name, _ := c.GadgetDict["gadget_name"].(string); name != "" {
			c.GadgetName = name
		}
	case CmdRenameGadget:
		if c.OldGadgetName == "" || c.NewGadgetName == "" {
			return nil, Validationf("%s requires old_gadget_name and new_gadget_name", c.Cmd)
		}
	case CmdDeleteGadget:
		if c.GadgetName == "" {
			return nil, Validationf("%s requires a gadget_name", c.Cmd)
		}
	case CmdEditGadgetProperty:
		if c.GadgetName == "" {
			return nil, Validationf("%s requires a gadget_name", c.Cmd)
		}
		if !containsString(GadgetProperties, c.PropertyName) {
			return nil, Validationf("invalid gadget property: %s", c.PropertyName)
		}
	case CmdEditExplorationProperty:
		if !containsString(ExplorationProperties, c.PropertyName) {
			return nil, Validationf("invalid exploration property: %s", c.PropertyName)
		}
	case CmdMigrateStatesSchemaToLatest:
		// from_version and to_version ride along untouched.
	default:
		return nil, Validationf("invalid change command: %s", c.Cmd)
	}
	return &c, nil
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

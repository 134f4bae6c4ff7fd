package domain

// Do not modify the values of these constants. This is to preserve backwards
// compatibility with previously persisted change dicts.
const (
	StatePropertyParamChanges         = "param_changes"
	StatePropertyContent              = "content"
	StatePropertyInteractionID        = "widget_id"
	StatePropertyInteractionCustArgs  = "widget_customization_args"
	StatePropertyAnswerGroups         = "answer_groups"
	StatePropertyDefaultOutcome       = "default_outcome"
	StatePropertyUnclassifiedAnswers  = "confirmed_unclassified_answers"
	StatePropertyInteractionFallbacks = "fallbacks"
	StatePropertyInteractionHints     = "hints"
	StatePropertyInteractionSolution  = "solution"
	// These two properties are kept for legacy purposes and are not used
	// anymore.
	StatePropertyInteractionHandlers = "widget_handlers"
	StatePropertyInteractionSticky   = "widget_sticky"

	GadgetPropertyVisibility = "gadget_visibility"
	GadgetPropertyCustArgs   = "gadget_customization_args"
)

// Change commands. Each takes the additional parameters documented on
// ExplorationChange.
const (
	CmdAddState                    = "add_state"
	CmdRenameState                 = "rename_state"
	CmdDeleteState                 = "delete_state"
	CmdEditStateProperty           = "edit_state_property"
	CmdAddGadget                   = "add_gadget"
	CmdRenameGadget                = "rename_gadget"
	CmdDeleteGadget                = "delete_gadget"
	CmdEditGadgetProperty          = "edit_gadget_property"
	CmdEditExplorationProperty     = "edit_exploration_property"
	CmdMigrateStatesSchemaToLatest = "migrate_states_schema_to_latest_version"
)

// Categories to which answers may be classified. These values are persisted
// in answer logs and must not change.
const (
	// ExplicitClassification covers answers matched by rules defined as part
	// of an interaction.
	ExplicitClassification = "explicit"
	// TrainingDataClassification covers answers contained within the training
	// data of an answer group.
	TrainingDataClassification = "training_data_match"
	// StatisticalClassification covers answers predicted by a statistical
	// model trained on answer-group training data.
	StatisticalClassification = "statistical_classifier"
	// DefaultOutcomeClassification covers answers that fell through to the
	// default outcome.
	DefaultOutcomeClassification = "default_outcome"
)

// RuleTypeClassifier is the stringified rule type that marks a rule as using
// statistical classification for evaluation.
const RuleTypeClassifier = "FuzzyMatches"

const (
	// DefaultInitStateName is the name given to the seeded initial state of a
	// newly created exploration.
	DefaultInitStateName = "Introduction"
	// DefaultInitStateContent is the content of the seeded initial state.
	DefaultInitStateContent = ""

	// DefaultTitle, DefaultCategory, DefaultObjective and DefaultLanguageCode
	// fill a default exploration shell.
	DefaultTitle        = ""
	DefaultCategory     = ""
	DefaultObjective    = ""
	DefaultLanguageCode = "en"

	// DefaultSkinID identifies the single supported skin.
	DefaultSkinID = "conversation_v1"
)

// GadgetPanelAxisHorizontal is the only stacking axis currently supported by
// the panel-fit validator.
const GadgetPanelAxisHorizontal = "horizontal"

// Thresholds for a state's answers to qualify for classifier training.
const (
	MinTotalTrainingExamples = 50
	MinAssignedLabels        = 2
)

const maxStateNameLength = 50

// invalidNameChars may not appear in state names or other human-assigned
// entity names.
const invalidNameChars = ":#/"

// reservedStateNames can never be used as state names; the placeholder is
// reserved for client-side "no destination selected" sentinels.
var reservedStateNames = []string{"[none]", "[all]"}

// InvalidParameterNames are reserved and may not be used as exploration
// parameter names.
var InvalidParameterNames = []string{"answer", "choices"}

// AcceptedAudioExtensions lists the file extensions allowed for audio
// translations.
var AcceptedAudioExtensions = []string{"mp3"}

// AllLanguageCodes lists the language codes an exploration may declare.
var AllLanguageCodes = []string{
	"ar", "bg", "bn", "ca", "cs", "da", "de", "el", "en", "es", "fi", "fr",
	"hi", "hi-en", "hu", "id", "it", "ja", "ko", "nl", "no", "pl", "pt",
	"pt-br", "ro", "ru", "sk", "sr", "sv", "th", "tr", "uk", "vi", "zh",
}

// SupportedAudioLanguageCodes lists the language codes audio translations may
// be keyed by. Hybrid languages use composite codes such as "hi-en".
var SupportedAudioLanguageCodes = AllLanguageCodes

// Package nlu classifies a normalized utterance into a structured ParsedInput:
// a primary intent, verb-class semantic intents, named entities, modifiers and
// salient phrases. Everything is deterministic pattern matching over the token
// stream produced by the lexer; there is no model inference anywhere.
package nlu

import "appwright/internal/lexer"

// =============================================================================
// INTENT TYPES
// =============================================================================

// IntentType is the primary intent label of an utterance.
type IntentType string

const (
	IntentCreateApp     IntentType = "create_app"
	IntentAddFeature    IntentType = "add_feature"
	IntentModifyApp     IntentType = "modify_app"
	IntentRemoveFeature IntentType = "remove_feature"
	IntentChangeDesign  IntentType = "change_design"
	IntentQuestion      IntentType = "question"
)

// Intent is the winning primary intent with its confidence.
type Intent struct {
	Type       IntentType `json:"type"`
	Confidence float64    `json:"confidence"`
}

// SemanticIntent is a verb-class category an utterance touches. Unlike the
// primary intent, several may co-occur.
type SemanticIntent string

const (
	SemanticTracking      SemanticIntent = "tracking"
	SemanticScheduling    SemanticIntent = "scheduling"
	SemanticManaging      SemanticIntent = "managing"
	SemanticOrganizing    SemanticIntent = "organizing"
	SemanticCommunicating SemanticIntent = "communicating"
	SemanticBilling       SemanticIntent = "billing"
	SemanticReporting     SemanticIntent = "reporting"
	SemanticCollaborating SemanticIntent = "collaborating"
	SemanticAutomating    SemanticIntent = "automating"
	SemanticMonitoring    SemanticIntent = "monitoring"
)

// =============================================================================
// ENTITIES AND MODIFIERS
// =============================================================================

// EntityType labels a named-entity span.
type EntityType string

const (
	EntityMoney    EntityType = "money"
	EntityDate     EntityType = "date"
	EntityTime     EntityType = "time"
	EntityQuantity EntityType = "quantity"
	EntityPerson   EntityType = "person"
)

// NamedEntity is a typed span extracted from the utterance.
type NamedEntity struct {
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
	Confidence float64    `json:"confidence"`
}

// ModifierKind labels a salient modifier word.
type ModifierKind string

const (
	ModQuantity ModifierKind = "quantity"
	ModPriority ModifierKind = "priority"
	ModTime     ModifierKind = "time"
	ModStatus   ModifierKind = "status"
	ModStyle    ModifierKind = "style"
)

// Modifier is a recognized modifier word, optionally bound to the token that
// follows it as its target ("urgent jobs" -> priority modifier targeting
// "jobs").
type Modifier struct {
	Kind   ModifierKind `json:"kind"`
	Value  string       `json:"value"`
	Target string       `json:"target,omitempty"`
}

// =============================================================================
// PARSED INPUT
// =============================================================================

// ParsedInput is the classifier's complete output for one utterance. Produced
// once, never mutated.
type ParsedInput struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`

	Intent Intent        `json:"intent"`
	Tokens []lexer.Token `json:"tokens"`

	ActionVerbs []string `json:"actionVerbs"`
	Nouns       []string `json:"nouns"`
	Adjectives  []string `json:"adjectives"`
	Phrases     []string `json:"phrases"`

	SemanticIntents []SemanticIntent `json:"semanticIntents"`
	Entities        []NamedEntity    `json:"entities"`
	Modifiers       []Modifier       `json:"modifiers"`
}

// HasSemantic reports whether the given verb-class intent was detected.
func (p ParsedInput) HasSemantic(s SemanticIntent) bool {
	for _, got := range p.SemanticIntents {
		if got == s {
			return true
		}
	}
	return false
}

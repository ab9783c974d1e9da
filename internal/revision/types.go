// Package revision matches voice/text revision requests against a library of
// revision intents and turns them into atomic, reversible change lists. The
// current application description is consumed read-only; applying changes
// produces a new context value.
package revision

// =============================================================================
// APP CONTEXT (consumed read-only)
// =============================================================================

// Page is one page of the live application.
type Page struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Nav     string `json:"nav,omitempty" yaml:"nav"` // sidebar, main
	Default bool   `json:"default,omitempty" yaml:"default"`
}

// Field is one field of an entity.
type Field struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Entity is one entity of the live application.
type Entity struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields,omitempty" yaml:"fields"`
}

// Workflow is one workflow of the live application.
type Workflow struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// AppContext is the descriptive state of the app being revised.
type AppContext struct {
	Pages     []Page            `json:"pages" yaml:"pages"`
	Entities  []Entity          `json:"entities" yaml:"entities"`
	Workflows []Workflow        `json:"workflows" yaml:"workflows"`
	Style     map[string]string `json:"style,omitempty" yaml:"style"`
}

// =============================================================================
// CHANGES
// =============================================================================

// ChangeType is the kind of edit a change performs.
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeRemove ChangeType = "remove"
	ChangeModify ChangeType = "modify"
)

// TargetType is what a change edits.
type TargetType string

const (
	TargetPage     TargetType = "page"
	TargetEntity   TargetType = "entity"
	TargetField    TargetType = "field"
	TargetWorkflow TargetType = "workflow"
	TargetStyle    TargetType = "style"
)

// Change is one atomic, independently reversible edit. Before holds enough to
// undo the change by replaying it.
type Change struct {
	Type        ChangeType `json:"type"`
	Target      TargetType `json:"target"`
	TargetID    string     `json:"targetId"`
	Before      any        `json:"before,omitempty"`
	After       any        `json:"after,omitempty"`
	Description string     `json:"description"`
}

// Result is the outcome of processing one revision utterance.
type Result struct {
	Intent               string   `json:"intent"`
	Confidence           float64  `json:"confidence"`
	Changes              []Change `json:"changes"`
	AffectedComponentIDs []string `json:"affectedComponentIds"`
	RequiresConfirmation bool     `json:"requiresConfirmation"`
	ConfirmationMessage  string   `json:"confirmationMessage,omitempty"`
	RollbackPossible     bool     `json:"rollbackPossible"`
}

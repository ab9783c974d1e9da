// Package workflow infers executable automation workflows from parsed
// utterances, known entities and detected features. Four independent
// generation passes feed a first-writer-wins merge; downstream materializers
// may drop anything whose confidence is too low for their taste.
package workflow

// =============================================================================
// TRIGGERS
// =============================================================================

// TriggerType names the event class that starts a workflow.
type TriggerType string

const (
	TriggerFormSubmit  TriggerType = "form_submit"
	TriggerButtonClick TriggerType = "button_click"
	TriggerRecordEvent TriggerType = "record_event"
	TriggerSchedule    TriggerType = "schedule"
	TriggerWebhook     TriggerType = "webhook"
)

// Trigger is an event class plus its optional binding. Only the fields
// relevant to the trigger type are set.
type Trigger struct {
	Type        TriggerType `json:"type"`
	ComponentID string      `json:"componentId,omitempty"`
	EntityID    string      `json:"entityId,omitempty"`
	Event       string      `json:"event,omitempty"` // created, updated, deleted, completed
	Schedule    string      `json:"schedule,omitempty"`
	Condition   string      `json:"condition,omitempty"`
}

// =============================================================================
// STEPS AND CONDITIONS
// =============================================================================

// StepAction names what a workflow step does.
type StepAction string

const (
	ActionCreateRecord     StepAction = "create_record"
	ActionUpdateRecord     StepAction = "update_record"
	ActionDeleteRecord     StepAction = "delete_record"
	ActionSendNotification StepAction = "send_notification"
	ActionSendEmail        StepAction = "send_email"
	ActionSendSMS          StepAction = "send_sms"
	ActionNavigate         StepAction = "navigate"
	ActionSetVariable      StepAction = "set_variable"
	ActionLoop             StepAction = "loop"
	ActionBranch           StepAction = "branch"
	ActionCallAPI          StepAction = "call_api"
)

// Step is one workflow action with its free-form configuration.
type Step struct {
	Action StepAction     `json:"action"`
	Config map[string]any `json:"config,omitempty"`
}

// Condition gates a named step on a field comparison.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
	ThenStep string `json:"thenStep"`
}

// =============================================================================
// WORKFLOWS AND INPUTS
// =============================================================================

// InferredWorkflow is a generated workflow. Never hand-edited; regenerate
// instead.
type InferredWorkflow struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Confidence  float64     `json:"confidence"`
	Trigger     Trigger     `json:"trigger"`
	Steps       []Step      `json:"steps"`
	Conditions  []Condition `json:"conditions,omitempty"`
}

// Entity is an already-known application entity, supplied by the blueprint
// layer.
type Entity struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	PluralName string   `json:"pluralName,omitempty" yaml:"pluralName"`
	Behaviors  []string `json:"behaviors,omitempty" yaml:"behaviors"`
}

// HasBehavior reports whether the entity carries the given behavior tag.
func (e Entity) HasBehavior(tag string) bool {
	for _, b := range e.Behaviors {
		if b == tag {
			return true
		}
	}
	return false
}

// Plural returns the plural display name, defaulting to name+"s".
func (e Entity) Plural() string {
	if e.PluralName != "" {
		return e.PluralName
	}
	return e.Name + "s"
}

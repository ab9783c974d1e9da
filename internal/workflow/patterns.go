package workflow

// pattern is one library workflow shape. Scoring is additive: trigger-keyword
// substring hits, action-verb overlap, and two semantic-intent affinities
// (automating for schedule-based patterns, communicating for patterns with an
// email or notify step).
type pattern struct {
	id              string
	triggerKeywords []string
	template        InferredWorkflow
}

// scheduleBased reports whether the pattern fires on a schedule trigger.
func (p pattern) scheduleBased() bool {
	return p.template.Trigger.Type == TriggerSchedule
}

// hasMessagingStep reports whether the pattern sends an email or notification.
func (p pattern) hasMessagingStep() bool {
	for _, s := range p.template.Steps {
		switch s.Action {
		case ActionSendEmail, ActionSendNotification, ActionSendSMS:
			return true
		}
	}
	return false
}

// patternLibrary is the fixed set of recognizable workflow shapes. Templates
// are instantiated against the first known entity via placeholder
// substitution.
var patternLibrary = []pattern{
	{
		id:              "appointment-reminder",
		triggerKeywords: []string{"remind", "reminder", "appointment", "upcoming"},
		template: InferredWorkflow{
			ID:          "appointment-reminder",
			Name:        "Appointment Reminder",
			Description: "Send a reminder before each upcoming {entity} appointment",
			Trigger:     Trigger{Type: TriggerSchedule, Schedule: "0 8 * * *"},
			Steps: []Step{
				{Action: ActionSendSMS, Config: map[string]any{"template": "reminder", "entity": "{entityId}"}},
			},
		},
	},
	{
		id:              "new-lead-follow-up",
		triggerKeywords: []string{"lead", "follow up", "new customer", "inquiry"},
		template: InferredWorkflow{
			ID:          "new-lead-follow-up",
			Name:        "New Lead Follow-Up",
			Description: "Email every new {entity} right after it is created",
			Trigger:     Trigger{Type: TriggerRecordEvent, EntityID: "{entityId}", Event: "created"},
			Steps: []Step{
				{Action: ActionSendEmail, Config: map[string]any{"template": "welcome", "to": "{entity}.email"}},
			},
		},
	},
	{
		id:              "completion-invoice",
		triggerKeywords: []string{"invoice", "when done", "completed", "finish", "bill"},
		template: InferredWorkflow{
			ID:          "completion-invoice",
			Name:        "Invoice On Completion",
			Description: "Create and send an invoice when a {entity} is completed",
			Trigger:     Trigger{Type: TriggerRecordEvent, EntityID: "{entityId}", Event: "completed"},
			Steps: []Step{
				{Action: ActionCreateRecord, Config: map[string]any{"entity": "invoice", "from": "{entityId}"}},
				{Action: ActionSendEmail, Config: map[string]any{"template": "invoice"}},
			},
		},
	},
	{
		id:              "daily-summary",
		triggerKeywords: []string{"summary", "daily", "digest", "report", "every morning"},
		template: InferredWorkflow{
			ID:          "daily-summary",
			Name:        "Daily Summary",
			Description: "Send a daily summary of open {entities}",
			Trigger:     Trigger{Type: TriggerSchedule, Schedule: "0 7 * * *"},
			Steps: []Step{
				{Action: ActionSendNotification, Config: map[string]any{"template": "daily-summary", "entity": "{entityId}"}},
			},
		},
	},
	{
		id:              "payment-receipt",
		triggerKeywords: []string{"payment", "paid", "receipt"},
		template: InferredWorkflow{
			ID:          "payment-receipt",
			Name:        "Payment Receipt",
			Description: "Email a receipt when a {entity} payment is recorded",
			Trigger:     Trigger{Type: TriggerRecordEvent, EntityID: "{entityId}", Event: "updated", Condition: "status == paid"},
			Steps: []Step{
				{Action: ActionSendEmail, Config: map[string]any{"template": "receipt"}},
			},
		},
	},
	{
		id:              "review-request",
		triggerKeywords: []string{"review", "feedback", "rating"},
		template: InferredWorkflow{
			ID:          "review-request",
			Name:        "Review Request",
			Description: "Ask for a review after a {entity} is completed",
			Trigger:     Trigger{Type: TriggerRecordEvent, EntityID: "{entityId}", Event: "completed"},
			Steps: []Step{
				{Action: ActionSendEmail, Config: map[string]any{"template": "review-request"}},
			},
		},
	},
}

// featureWorkflows are generated when the matching feature id is enabled.
var featureWorkflows = map[string][]InferredWorkflow{
	"appointments": {bookingWorkflow()},
	"calendar":     {bookingWorkflow()},
	"invoicing": {
		{
			ID:          "invoice-creation",
			Name:        "Invoice Creation",
			Description: "Create an invoice from the invoice form",
			Confidence:  0.85,
			Trigger:     Trigger{Type: TriggerFormSubmit, ComponentID: "invoice-form"},
			Steps: []Step{
				{Action: ActionCreateRecord, Config: map[string]any{"entity": "invoice"}},
				{Action: ActionNavigate, Config: map[string]any{"page": "invoice-list"}},
			},
		},
		{
			ID:          "invoice-send",
			Name:        "Send Invoice",
			Description: "Email an invoice to the customer",
			Confidence:  0.85,
			Trigger:     Trigger{Type: TriggerButtonClick, ComponentID: "send-invoice-button"},
			Steps: []Step{
				{Action: ActionSendEmail, Config: map[string]any{"template": "invoice"}},
				{Action: ActionUpdateRecord, Config: map[string]any{"entity": "invoice", "set": map[string]any{"status": "sent"}}},
			},
		},
	},
	"quotes": {
		{
			ID:          "quote-acceptance",
			Name:        "Quote Acceptance",
			Description: "Convert an accepted quote into a job",
			Confidence:  0.85,
			Trigger:     Trigger{Type: TriggerRecordEvent, EntityID: "quote", Event: "updated", Condition: "status == accepted"},
			Steps: []Step{
				{Action: ActionCreateRecord, Config: map[string]any{"entity": "job", "from": "quote"}},
				{Action: ActionSendNotification, Config: map[string]any{"template": "quote-accepted"}},
			},
		},
	},
	"reminders": {
		{
			ID:          "daily-reminders",
			Name:        "Daily Reminders",
			Description: "Send due reminders every morning",
			Confidence:  0.85,
			Trigger:     Trigger{Type: TriggerSchedule, Schedule: "0 9 * * *"},
			Steps: []Step{
				{Action: ActionSendNotification, Config: map[string]any{"template": "due-reminders"}},
			},
		},
	},
}

func bookingWorkflow() InferredWorkflow {
	return InferredWorkflow{
		ID:          "booking-workflow",
		Name:        "Booking",
		Description: "Create an appointment from the booking form and confirm it",
		Confidence:  0.85,
		Trigger:     Trigger{Type: TriggerFormSubmit, ComponentID: "booking-form"},
		Steps: []Step{
			{Action: ActionCreateRecord, Config: map[string]any{"entity": "appointment"}},
			{Action: ActionSendEmail, Config: map[string]any{"template": "booking-confirmation"}},
		},
	}
}

package workflow

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// causalConfidence is the fixed confidence of every when/then workflow: the
// shape is explicit in the text but the binding is guessed.
const causalConfidence = 0.75

// causalPattern splits "when X then Y" (also "when X, Y" and "when X do Y")
// into a condition clause and an action clause.
var causalPattern = regexp.MustCompile(`when\s+(.+?)(?:\s+then\s+|\s*,\s*|\s+do\s+)(.+?)(?:\.|$)`)

// parseCausal extracts free-form causal workflows from the text. Each match
// yields one workflow with a synthesized unique id.
func parseCausal(normalized string, entities []Entity) []InferredWorkflow {
	var out []InferredWorkflow
	for _, m := range causalPattern.FindAllStringSubmatch(normalized, -1) {
		conditionClause := strings.TrimSpace(m[1])
		actionClause := strings.TrimSpace(m[2])
		if conditionClause == "" || actionClause == "" {
			continue
		}

		trigger := causalTrigger(conditionClause, entities)
		steps := causalSteps(actionClause)
		if len(steps) == 0 {
			// a parsed condition with no recognizable action still deserves a
			// workflow; fall back to a bare notification
			steps = []Step{{Action: ActionSendNotification, Config: map[string]any{"message": actionClause}}}
		}

		out = append(out, InferredWorkflow{
			ID:          "custom-" + uuid.NewString(),
			Name:        "When " + conditionClause,
			Description: "When " + conditionClause + ", " + actionClause,
			Confidence:  causalConfidence,
			Trigger:     trigger,
			Steps:       steps,
		})
	}
	return out
}

// causalTrigger maps the condition clause onto a trigger. Verb class picks the
// record event; the entity binding comes from the first known entity named in
// the clause, with special cases for booking language and job language.
func causalTrigger(clause string, entities []Entity) Trigger {
	trigger := Trigger{Type: TriggerRecordEvent}

	switch {
	case containsAny(clause, "book", "booking", "booked"):
		trigger.Event = "created"
		trigger.EntityID = entityIDFor(entities, "appointment", "booking")
	case containsAny(clause, "job is done", "job is finished", "job is complete", "finish a job", "complete a job"):
		trigger.Event = "completed"
		trigger.EntityID = entityIDFor(entities, "job")
	case containsAny(clause, "complete", "completed", "done", "finished"):
		trigger.Event = "completed"
	case containsAny(clause, "new", "create", "created", "add", "added", "comes in", "sign up", "signs up"):
		trigger.Event = "created"
	case containsAny(clause, "update", "updated", "change", "changed", "edit", "edited"):
		trigger.Event = "updated"
	case containsAny(clause, "delete", "deleted", "remove", "removed", "cancel", "cancelled"):
		trigger.Event = "deleted"
	default:
		trigger.Event = "created"
	}

	if trigger.EntityID == "" {
		for _, e := range entities {
			if strings.Contains(clause, strings.ToLower(e.Name)) {
				trigger.EntityID = e.ID
				break
			}
		}
	}

	return trigger
}

// entityIDFor returns the id of the first entity whose name contains one of
// the hints, or the first hint itself when no known entity matches.
func entityIDFor(entities []Entity, hints ...string) string {
	for _, hint := range hints {
		for _, e := range entities {
			if strings.Contains(strings.ToLower(e.Name), hint) {
				return e.ID
			}
		}
	}
	return hints[0]
}

// causalStepClass maps an action-clause keyword class to a step.
type causalStepClass struct {
	keywords []string
	build    func(clause string) Step
}

var causalStepClasses = []causalStepClass{
	{[]string{"email", "send a message", "mail"}, func(string) Step {
		return Step{Action: ActionSendEmail, Config: map[string]any{"template": "custom"}}
	}},
	{[]string{"invoice", "bill"}, func(string) Step {
		return Step{Action: ActionCreateRecord, Config: map[string]any{"entity": "invoice"}}
	}},
	{[]string{"schedule", "calendar", "book a"}, func(string) Step {
		return Step{Action: ActionCreateRecord, Config: map[string]any{"entity": "appointment"}}
	}},
	{[]string{"update", "mark"}, func(clause string) Step {
		return Step{Action: ActionUpdateRecord, Config: map[string]any{"note": clause}}
	}},
	{[]string{"navigate", "go to", "open the"}, func(clause string) Step {
		return Step{Action: ActionNavigate, Config: map[string]any{"target": clause}}
	}},
	{[]string{"notify", "notification", "alert", "tell me", "let me know"}, func(string) Step {
		return Step{Action: ActionSendNotification, Config: map[string]any{"template": "custom"}}
	}},
	{[]string{"webhook", "api", "zapier"}, func(clause string) Step {
		return Step{Action: ActionCallAPI, Config: map[string]any{"note": clause}}
	}},
}

// causalSteps assembles one step per keyword class present in the action
// clause, in fixed class order.
func causalSteps(clause string) []Step {
	var steps []Step
	for _, class := range causalStepClasses {
		if containsAny(clause, class.keywords...) {
			steps = append(steps, class.build(clause))
		}
	}
	return steps
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

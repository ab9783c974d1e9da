package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appwright/internal/nlu"
)

func jobEntity() Entity {
	return Entity{ID: "job", Name: "Job"}
}

func workflowIDs(wfs []InferredWorkflow) []string {
	ids := make([]string, len(wfs))
	for i, wf := range wfs {
		ids[i] = wf.ID
	}
	return ids
}

func findWorkflow(t *testing.T, wfs []InferredWorkflow, id string) InferredWorkflow {
	t.Helper()
	for _, wf := range wfs {
		if wf.ID == id {
			return wf
		}
	}
	t.Fatalf("workflow %q not generated; got %v", id, workflowIDs(wfs))
	return InferredWorkflow{}
}

func TestInferStandardWorkflows(t *testing.T) {
	wfs := NewEngine().Infer(nlu.Parse("nothing relevant here"), []Entity{jobEntity()}, nil)

	ids := workflowIDs(wfs)
	for _, want := range []string{"create-job", "update-job", "delete-job", "navigate-job-list", "navigate-job-form"} {
		assert.Contains(t, ids, want)
	}
	assert.NotContains(t, ids, "complete-job", "complete workflow needs the trackable behavior")
}

func TestInferTrackableEntity(t *testing.T) {
	e := Entity{ID: "job", Name: "Job", Behaviors: []string{"trackable", "billable"}}
	wfs := NewEngine().Infer(nlu.Parse("track my work"), []Entity{e}, nil)

	wf := findWorkflow(t, wfs, "complete-job")
	assert.Equal(t, TriggerButtonClick, wf.Trigger.Type)
	require.Len(t, wf.Steps, 1)
	assert.Equal(t, ActionUpdateRecord, wf.Steps[0].Action)
}

func TestInferPatternLibrary(t *testing.T) {
	t.Run("reminder pattern instantiated against first entity", func(t *testing.T) {
		wfs := NewEngine().Infer(
			nlu.Parse("remind customers about upcoming appointments"),
			[]Entity{{ID: "appointment", Name: "Appointment"}}, nil)

		wf := findWorkflow(t, wfs, "appointment-reminder")
		assert.Equal(t, TriggerSchedule, wf.Trigger.Type)
		assert.NotContains(t, wf.Description, "{entity}", "placeholders must be substituted")
		assert.Contains(t, wf.Description, "appointment")
		assert.Greater(t, wf.Confidence, 0.15)
	})

	t.Run("no entities means no pattern instantiation", func(t *testing.T) {
		wfs := NewEngine().Infer(nlu.Parse("remind customers about appointments"), nil, nil)
		assert.NotContains(t, workflowIDs(wfs), "appointment-reminder")
	})

	t.Run("unrelated text scores below threshold", func(t *testing.T) {
		wfs := NewEngine().Infer(nlu.Parse("a quiet afternoon"), []Entity{jobEntity()}, nil)
		assert.NotContains(t, workflowIDs(wfs), "appointment-reminder")
	})
}

func TestInferFeatureConditioned(t *testing.T) {
	wfs := NewEngine().Infer(nlu.Parse("plain text"), []Entity{jobEntity()}, []string{"invoicing", "reminders"})

	ids := workflowIDs(wfs)
	assert.Contains(t, ids, "invoice-creation")
	assert.Contains(t, ids, "invoice-send")
	assert.Contains(t, ids, "daily-reminders")
	assert.NotContains(t, ids, "booking-workflow")
	assert.NotContains(t, ids, "quote-acceptance")
}

func TestInferCausal(t *testing.T) {
	t.Run("when then with email action", func(t *testing.T) {
		wfs := NewEngine().Infer(
			nlu.Parse("when a job is done then email the customer an invoice"),
			[]Entity{jobEntity()}, nil)

		var causal *InferredWorkflow
		for i := range wfs {
			if strings.HasPrefix(wfs[i].ID, "custom-") {
				causal = &wfs[i]
				break
			}
		}
		require.NotNil(t, causal, "expected a causal workflow")

		assert.Equal(t, 0.75, causal.Confidence)
		assert.Equal(t, TriggerRecordEvent, causal.Trigger.Type)
		assert.Equal(t, "completed", causal.Trigger.Event)
		assert.Equal(t, "job", causal.Trigger.EntityID)

		var actions []StepAction
		for _, s := range causal.Steps {
			actions = append(actions, s.Action)
		}
		assert.Contains(t, actions, ActionSendEmail)
		assert.Contains(t, actions, ActionCreateRecord) // invoice keyword
	})

	t.Run("unrecognized action falls back to notification", func(t *testing.T) {
		wfs := parseCausal("when a customer signs up, celebrate loudly", nil)
		require.Len(t, wfs, 1)
		assert.Equal(t, "created", wfs[0].Trigger.Event)
		require.Len(t, wfs[0].Steps, 1)
		assert.Equal(t, ActionSendNotification, wfs[0].Steps[0].Action)
	})

	t.Run("ids are unique per invocation", func(t *testing.T) {
		a := parseCausal("when a job is created, notify me", nil)
		b := parseCausal("when a job is created, notify me", nil)
		require.Len(t, a, 1)
		require.Len(t, b, 1)
		assert.NotEqual(t, a[0].ID, b[0].ID)
	})

	t.Run("booking language binds the appointment entity", func(t *testing.T) {
		entities := []Entity{{ID: "appt", Name: "Appointment"}}
		wfs := parseCausal("when someone books, send a confirmation email", entities)
		require.Len(t, wfs, 1)
		assert.Equal(t, "created", wfs[0].Trigger.Event)
		assert.Equal(t, "appt", wfs[0].Trigger.EntityID)
	})
}

func TestInferMergeFirstWriterWins(t *testing.T) {
	// the invoicing feature and pass B both exist; pattern pass runs first, so
	// a pattern workflow id colliding with a later pass keeps the pattern copy
	parsed := nlu.Parse("send an invoice when a job is completed")
	wfs := NewEngine().Infer(parsed, []Entity{jobEntity()}, []string{"invoicing"})

	seen := make(map[string]int)
	for _, wf := range wfs {
		seen[wf.ID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "workflow id %q emitted %d times", id, n)
	}
	assert.Contains(t, workflowIDs(wfs), "completion-invoice")
}

func TestInstantiateSubstitutesNestedConfig(t *testing.T) {
	tmpl := InferredWorkflow{
		ID:          "greet-{entity}",
		Name:        "Greet {Entity}",
		Description: "Welcome new {entities}",
		Trigger:     Trigger{Type: TriggerRecordEvent, EntityID: "{entityId}", Event: "created"},
		Steps: []Step{{
			Action: ActionSendEmail,
			Config: map[string]any{
				"to":     "{entity}.email",
				"nested": map[string]any{"subject": "Your {entity}"},
				"count":  3,
			},
		}},
	}

	wf := instantiate(tmpl, Entity{ID: "customer", Name: "Customer", PluralName: "Customers"})

	assert.Equal(t, "greet-customer", wf.ID)
	assert.Equal(t, "Greet Customer", wf.Name)
	assert.Equal(t, "Welcome new customers", wf.Description)
	assert.Equal(t, "customer", wf.Trigger.EntityID)
	assert.Equal(t, "customer.email", wf.Steps[0].Config["to"])
	assert.Equal(t, "Your customer", wf.Steps[0].Config["nested"].(map[string]any)["subject"])
	assert.Equal(t, 3, wf.Steps[0].Config["count"], "non-string config values must pass through untouched")
}

func TestEntityPlural(t *testing.T) {
	assert.Equal(t, "Jobs", Entity{ID: "job", Name: "Job"}.Plural())
	assert.Equal(t, "Crews", Entity{ID: "crew", Name: "Crew", PluralName: "Crews"}.Plural())
}

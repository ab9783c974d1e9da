package workflow

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"appwright/internal/logging"
	"appwright/internal/nlu"
)

// Pattern scoring increments.
const (
	scoreTriggerKeyword  = 0.3
	scoreActionVerb      = 0.2
	scoreScheduleIntent  = 0.15
	scoreMessagingIntent = 0.15

	// defaultMinPatternScore is the instantiation floor when the engine is
	// built without config.
	defaultMinPatternScore = 0.15
)

// Engine runs the four inference passes. Stateless beyond its threshold; safe
// for concurrent use.
type Engine struct {
	minPatternScore float64
}

// NewEngine returns an engine with the calibrated default threshold.
func NewEngine() *Engine {
	return &Engine{minPatternScore: defaultMinPatternScore}
}

// NewEngineWithThreshold overrides the pattern-instantiation floor (see
// config.WorkflowConfig).
func NewEngineWithThreshold(minPatternScore float64) *Engine {
	return &Engine{minPatternScore: minPatternScore}
}

// Infer produces the merged workflow set for one parsed utterance. The four
// passes run in a fixed order — pattern library, standard per-entity
// workflows, feature-conditioned workflows, causal when/then parsing — and
// the merge is first-writer-wins by workflow id.
func (eng *Engine) Infer(parsed nlu.ParsedInput, entities []Entity, features []string) []InferredWorkflow {
	merged := make([]InferredWorkflow, 0, 8)
	seen := make(map[string]bool)
	add := func(wfs ...InferredWorkflow) {
		for _, wf := range wfs {
			if wf.ID == "" || seen[wf.ID] {
				continue
			}
			seen[wf.ID] = true
			merged = append(merged, wf)
		}
	}

	add(eng.matchPatterns(parsed, entities)...)
	add(standardWorkflows(entities)...)
	add(featureConditioned(features)...)
	add(parseCausal(parsed.Normalized, entities)...)

	logging.Get(logging.CategoryWorkflow).Debug("workflow inference complete",
		zap.Int("workflows", len(merged)),
		zap.Int("entities", len(entities)),
		zap.Int("features", len(features)))

	return merged
}

// =============================================================================
// PASS A: PATTERN LIBRARY
// =============================================================================

func (eng *Engine) matchPatterns(parsed nlu.ParsedInput, entities []Entity) []InferredWorkflow {
	if len(entities) == 0 {
		return nil
	}

	var out []InferredWorkflow
	for _, p := range patternLibrary {
		score := eng.scorePattern(p, parsed)
		if score <= eng.minPatternScore {
			continue
		}

		wf := instantiate(p.template, entities[0])
		if score > 1 {
			score = 1
		}
		wf.Confidence = score
		out = append(out, wf)
	}
	return out
}

func (eng *Engine) scorePattern(p pattern, parsed nlu.ParsedInput) float64 {
	var score float64

	for _, kw := range p.triggerKeywords {
		if strings.Contains(parsed.Normalized, kw) {
			score += scoreTriggerKeyword
		}
	}
	for _, verb := range parsed.ActionVerbs {
		for _, kw := range p.triggerKeywords {
			if verb == kw {
				score += scoreActionVerb
				break
			}
		}
	}
	if parsed.HasSemantic(nlu.SemanticAutomating) && p.scheduleBased() {
		score += scoreScheduleIntent
	}
	if parsed.HasSemantic(nlu.SemanticCommunicating) && p.hasMessagingStep() {
		score += scoreMessagingIntent
	}

	return score
}

// =============================================================================
// PASS B: STANDARD PER-ENTITY WORKFLOWS
// =============================================================================

// Confidence of the standard workflows every entity receives.
const (
	standardConfidence  = 0.9
	trackableConfidence = 0.85
)

func standardWorkflows(entities []Entity) []InferredWorkflow {
	var out []InferredWorkflow
	for _, e := range entities {
		lower := strings.ToLower(e.Name)
		out = append(out,
			InferredWorkflow{
				ID:          "create-" + e.ID,
				Name:        "Create " + e.Name,
				Description: fmt.Sprintf("Create a new %s from its form", lower),
				Confidence:  standardConfidence,
				Trigger:     Trigger{Type: TriggerFormSubmit, ComponentID: e.ID + "-form"},
				Steps: []Step{
					{Action: ActionCreateRecord, Config: map[string]any{"entity": e.ID}},
					{Action: ActionNavigate, Config: map[string]any{"page": e.ID + "-list"}},
				},
			},
			InferredWorkflow{
				ID:          "update-" + e.ID,
				Name:        "Update " + e.Name,
				Description: fmt.Sprintf("Save changes to an existing %s", lower),
				Confidence:  standardConfidence,
				Trigger:     Trigger{Type: TriggerFormSubmit, ComponentID: e.ID + "-form"},
				Steps: []Step{
					{Action: ActionUpdateRecord, Config: map[string]any{"entity": e.ID}},
					{Action: ActionNavigate, Config: map[string]any{"page": e.ID + "-list"}},
				},
			},
			InferredWorkflow{
				ID:          "delete-" + e.ID,
				Name:        "Delete " + e.Name,
				Description: fmt.Sprintf("Delete a %s after confirmation", lower),
				Confidence:  standardConfidence,
				Trigger:     Trigger{Type: TriggerButtonClick, ComponentID: e.ID + "-delete-button"},
				Steps: []Step{
					{Action: ActionDeleteRecord, Config: map[string]any{"entity": e.ID, "confirm": true}},
				},
			},
			InferredWorkflow{
				ID:          "navigate-" + e.ID + "-list",
				Name:        e.Plural() + " List",
				Description: fmt.Sprintf("Open the %s list", lower),
				Confidence:  standardConfidence,
				Trigger:     Trigger{Type: TriggerButtonClick, ComponentID: e.ID + "-nav"},
				Steps: []Step{
					{Action: ActionNavigate, Config: map[string]any{"page": e.ID + "-list"}},
				},
			},
			InferredWorkflow{
				ID:          "navigate-" + e.ID + "-form",
				Name:        "New " + e.Name,
				Description: fmt.Sprintf("Open a blank %s form", lower),
				Confidence:  standardConfidence,
				Trigger:     Trigger{Type: TriggerButtonClick, ComponentID: e.ID + "-new"},
				Steps: []Step{
					{Action: ActionNavigate, Config: map[string]any{"page": e.ID + "-form"}},
				},
			},
		)

		if e.HasBehavior("trackable") {
			out = append(out, InferredWorkflow{
				ID:          "complete-" + e.ID,
				Name:        "Complete " + e.Name,
				Description: fmt.Sprintf("Mark a %s as completed", lower),
				Confidence:  trackableConfidence,
				Trigger:     Trigger{Type: TriggerButtonClick, ComponentID: e.ID + "-complete-button"},
				Steps: []Step{
					{Action: ActionUpdateRecord, Config: map[string]any{"entity": e.ID, "set": map[string]any{"status": "completed"}}},
				},
			})
		}
	}
	return out
}

// =============================================================================
// PASS C: FEATURE-CONDITIONED WORKFLOWS
// =============================================================================

// featureOrder fixes the emission order; map iteration would be random.
var featureOrder = []string{"appointments", "calendar", "invoicing", "quotes", "reminders"}

func featureConditioned(features []string) []InferredWorkflow {
	enabled := make(map[string]bool, len(features))
	for _, f := range features {
		enabled[f] = true
	}

	var out []InferredWorkflow
	for _, id := range featureOrder {
		if enabled[id] {
			out = append(out, featureWorkflows[id]...)
		}
	}
	return out
}

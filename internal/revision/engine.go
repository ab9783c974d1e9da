package revision

import (
	"strings"

	"go.uber.org/zap"

	"appwright/internal/logging"
	"appwright/internal/nlu"
)

// Confidence scoring increments for pattern matching.
const (
	baseConfidence       = 0.5
	regexBonus           = 0.3
	keywordBonus         = 0.1
	maxKeywordBonus      = 0.3
	intentAgreementBonus = 0.1

	// defaultMaxAutoChanges is the change count above which confirmation is
	// always required (see config.RevisionConfig).
	defaultMaxAutoChanges = 3
)

// Engine matches revision utterances against the pattern library. Stateless
// beyond its confirmation limit; safe for concurrent use.
type Engine struct {
	maxAutoChanges int
}

// NewEngine returns an engine with the default confirmation limit.
func NewEngine() *Engine {
	return &Engine{maxAutoChanges: defaultMaxAutoChanges}
}

// NewEngineWithLimit overrides the auto-apply change limit.
func NewEngineWithLimit(maxAutoChanges int) *Engine {
	return &Engine{maxAutoChanges: maxAutoChanges}
}

// ProcessRevision parses the utterance, picks the highest-confidence revision
// pattern (earlier patterns win ties) and generates its change list. When the
// winning pattern cannot extract a target the result carries zero changes and
// asks for clarification instead of guessing.
func (eng *Engine) ProcessRevision(utterance string, ctx AppContext) Result {
	parsed := nlu.Parse(utterance)

	best := &revisionPatterns[0]
	bestConf := 0.0
	for i := range revisionPatterns {
		if conf := calculateConfidence(&revisionPatterns[i], parsed); conf > bestConf {
			best = &revisionPatterns[i]
			bestConf = conf
		}
	}

	log := logging.Get(logging.CategoryRevision)

	target := best.extractTarget(parsed.Normalized, parsed)
	if target == "" {
		log.Debug("revision target unclear",
			zap.String("intent", best.intent),
			zap.Float64("confidence", bestConf))
		return Result{
			Intent:               best.intent,
			Confidence:           bestConf,
			RequiresConfirmation: true,
			ConfirmationMessage:  "I couldn't tell exactly what you'd like to change. Could you name the page, feature or style you mean?",
		}
	}

	changes := best.generate(eng, target, ctx, parsed)
	result := Result{
		Intent:               best.intent,
		Confidence:           bestConf,
		Changes:              changes,
		AffectedComponentIDs: affectedIDs(changes),
		RequiresConfirmation: eng.ShouldConfirm(best.intent, changes),
		RollbackPossible:     len(changes) > 0,
	}
	if result.RequiresConfirmation {
		result.ConfirmationMessage = confirmationMessage(changes)
	}

	log.Debug("revision processed",
		zap.String("intent", best.intent),
		zap.Float64("confidence", bestConf),
		zap.Int("changes", len(changes)))

	return result
}

// calculateConfidence scores one pattern against the parsed utterance: base
// 0.5, +0.3 for any regex match, +0.1 per keyword hit capped at +0.3, +0.1
// when the classifier's primary intent agrees.
func calculateConfidence(p *revisionPattern, parsed nlu.ParsedInput) float64 {
	conf := baseConfidence

	for _, re := range p.regexes {
		if re.MatchString(parsed.Normalized) {
			conf += regexBonus
			break
		}
	}

	kw := 0.0
	for _, k := range p.keywords {
		if strings.Contains(parsed.Normalized, k) {
			kw += keywordBonus
		}
	}
	if kw > maxKeywordBonus {
		kw = maxKeywordBonus
	}
	conf += kw

	for _, it := range p.agreeIntents {
		if parsed.Intent.Type == it {
			conf += intentAgreementBonus
			break
		}
	}

	if conf > 1 {
		conf = 1
	}
	return conf
}

// ShouldConfirm is a strict ordered rule list, not a score: removals always
// confirm, large change sets always confirm, a lone style change never does,
// everything else confirms.
func (eng *Engine) ShouldConfirm(intent string, changes []Change) bool {
	switch {
	case strings.HasPrefix(intent, "remove"):
		return true
	case len(changes) > eng.maxAutoChanges:
		return true
	case intent == IntentStyleChange && len(changes) == 1:
		return false
	default:
		return true
	}
}

func affectedIDs(changes []Change) []string {
	if len(changes) == 0 {
		return nil
	}
	ids := make([]string, 0, len(changes))
	seen := make(map[string]bool, len(changes))
	for _, ch := range changes {
		if !seen[ch.TargetID] {
			seen[ch.TargetID] = true
			ids = append(ids, ch.TargetID)
		}
	}
	return ids
}

func confirmationMessage(changes []Change) string {
	if len(changes) == 0 {
		return "Nothing in the app matches that. Could you rephrase?"
	}
	descs := make([]string, len(changes))
	for i, ch := range changes {
		descs[i] = strings.ToLower(ch.Description[:1]) + ch.Description[1:]
	}
	return "This will " + strings.Join(descs, ", ") + ". Apply it?"
}

// =============================================================================
// APPLYING CHANGES
// =============================================================================

// ApplyChanges replays the changes onto a copy of the context and returns the
// copy; the input context is never mutated. Unknown (target, type) pairs are
// no-ops.
func ApplyChanges(ctx AppContext, changes []Change) AppContext {
	out := cloneContext(ctx)
	for _, ch := range changes {
		switch {
		case ch.Target == TargetPage && ch.Type == ChangeAdd:
			if p, ok := ch.After.(Page); ok {
				out.Pages = append(out.Pages, p)
			}
		case ch.Target == TargetPage && ch.Type == ChangeRemove:
			out.Pages = removePage(out.Pages, ch.TargetID)
		case ch.Target == TargetPage && ch.Type == ChangeModify:
			patchPage(out.Pages, ch.TargetID, ch.After)

		case ch.Target == TargetEntity && ch.Type == ChangeAdd:
			if e, ok := ch.After.(Entity); ok {
				out.Entities = append(out.Entities, e)
			}
		case ch.Target == TargetEntity && ch.Type == ChangeRemove:
			out.Entities = removeEntity(out.Entities, ch.TargetID)

		case ch.Target == TargetField && ch.Type == ChangeAdd:
			addField(out.Entities, ch.TargetID, ch.After)
		case ch.Target == TargetField && ch.Type == ChangeRemove:
			removeField(out.Entities, ch.TargetID)

		case ch.Target == TargetWorkflow && ch.Type == ChangeAdd:
			if wf, ok := ch.After.(Workflow); ok {
				out.Workflows = append(out.Workflows, wf)
			}
		case ch.Target == TargetWorkflow && ch.Type == ChangeRemove:
			out.Workflows = removeWorkflow(out.Workflows, ch.TargetID)

		case ch.Target == TargetStyle && ch.Type == ChangeModify:
			patchStyle(out.Style, ch.After)
		}
	}
	return out
}

// UndoChanges reverses an applied change list by replaying the inverse of each
// change in reverse order.
func UndoChanges(ctx AppContext, changes []Change) AppContext {
	inverted := make([]Change, 0, len(changes))
	for i := len(changes) - 1; i >= 0; i-- {
		ch := changes[i]
		switch ch.Type {
		case ChangeAdd:
			inverted = append(inverted, Change{Type: ChangeRemove, Target: ch.Target, TargetID: ch.TargetID, Before: ch.After})
		case ChangeRemove:
			inverted = append(inverted, Change{Type: ChangeAdd, Target: ch.Target, TargetID: ch.TargetID, After: ch.Before})
		case ChangeModify:
			inverted = append(inverted, Change{Type: ChangeModify, Target: ch.Target, TargetID: ch.TargetID, Before: ch.After, After: ch.Before})
		}
	}
	return ApplyChanges(ctx, inverted)
}

func cloneContext(ctx AppContext) AppContext {
	out := AppContext{
		Pages:     append([]Page(nil), ctx.Pages...),
		Entities:  append([]Entity(nil), ctx.Entities...),
		Workflows: append([]Workflow(nil), ctx.Workflows...),
		Style:     make(map[string]string, len(ctx.Style)),
	}
	for i := range out.Entities {
		out.Entities[i].Fields = append([]Field(nil), out.Entities[i].Fields...)
	}
	for k, v := range ctx.Style {
		out.Style[k] = v
	}
	return out
}

func removePage(pages []Page, id string) []Page {
	out := pages[:0]
	for _, p := range pages {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// patchPage merge-modifies a page in place from a map patch; only the keys
// present in the patch are touched.
func patchPage(pages []Page, id string, after any) {
	patch, ok := after.(map[string]any)
	if !ok {
		return
	}
	for i := range pages {
		if pages[i].ID != id {
			continue
		}
		if v, ok := patch["name"].(string); ok {
			pages[i].Name = v
		}
		if v, ok := patch["nav"].(string); ok {
			pages[i].Nav = v
		}
		if v, ok := patch["default"].(bool); ok {
			pages[i].Default = v
		}
		return
	}
}

func removeEntity(entities []Entity, id string) []Entity {
	out := entities[:0]
	for _, e := range entities {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// Field changes address "entityId.fieldId".
func addField(entities []Entity, targetID string, after any) {
	entityID, _, ok := strings.Cut(targetID, ".")
	if !ok {
		return
	}
	f, ok := after.(Field)
	if !ok {
		return
	}
	for i := range entities {
		if entities[i].ID == entityID {
			entities[i].Fields = append(entities[i].Fields, f)
			return
		}
	}
}

func removeField(entities []Entity, targetID string) {
	entityID, fieldID, ok := strings.Cut(targetID, ".")
	if !ok {
		return
	}
	for i := range entities {
		if entities[i].ID != entityID {
			continue
		}
		fields := entities[i].Fields[:0]
		for _, f := range entities[i].Fields {
			if f.ID != fieldID {
				fields = append(fields, f)
			}
		}
		entities[i].Fields = fields
		return
	}
}

func removeWorkflow(workflows []Workflow, id string) []Workflow {
	out := workflows[:0]
	for _, wf := range workflows {
		if wf.ID != id {
			out = append(out, wf)
		}
	}
	return out
}

// patchStyle merges string values into the style map; an empty value deletes
// the key, which is how undoing a style change clears attributes it added.
func patchStyle(style map[string]string, after any) {
	patch, ok := after.(map[string]any)
	if !ok {
		return
	}
	for k, v := range patch {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if s == "" {
			delete(style, k)
			continue
		}
		style[k] = s
	}
}

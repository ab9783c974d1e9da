package revision

import (
	"fmt"
	"regexp"
	"strings"

	"appwright/internal/nlu"
)

// Revision intent labels.
const (
	IntentStyleChange   = "style_change"
	IntentAddFeature    = "add_feature"
	IntentRemoveFeature = "remove_feature"
	IntentModifyEntity  = "modify_entity"
	IntentAddPage       = "add_page"
	IntentRenamePage    = "rename_page"
	IntentReorganize    = "reorganize"
)

// revisionPattern is one entry of the ordered pattern library. extractTarget
// returning "" means the pattern cannot name what to change and the engine
// must ask instead of guessing.
type revisionPattern struct {
	intent        string
	regexes       []*regexp.Regexp
	keywords      []string
	agreeIntents  []nlu.IntentType
	extractTarget func(normalized string, parsed nlu.ParsedInput) string
	generate      func(eng *Engine, target string, ctx AppContext, parsed nlu.ParsedInput) []Change
}

// =============================================================================
// PATTERN REGEXES
// =============================================================================

var (
	styleRestylePattern = regexp.MustCompile(`make\s+(?:it|the\s+app|everything)\s+(?:look\s+|feel\s+)?(?:more\s+)?[a-z]`)
	styleThemePattern   = regexp.MustCompile(`(?:change|update)\s+the\s+(?:style|theme|look|colou?rs?|font)`)

	addFeaturePattern = regexp.MustCompile(`add\s+(?:an?\s+)?(?:\w+\s+)*(?:feature|functionality|section)`)
	integratePattern  = regexp.MustCompile(`(?:include|integrate)\s+\w+`)

	removePattern = regexp.MustCompile(`(?:remove|delete|get\s+rid\s+of)\s+(?:the\s+|my\s+)?([a-z][a-z ]*?)(?:\s+(?:feature|page|section|screen|tab))?(?:\s*[.!?])?\s*$`)

	fieldToEntityPattern = regexp.MustCompile(`add\s+(?:an?\s+)?([a-z]+)\s+field\s+to\s+(?:the\s+|my\s+)?([a-z]+)`)

	addPagePattern = regexp.MustCompile(`(?:add|create)\s+(?:an?\s+|the\s+)?([a-z][a-z ]*?)\s+(?:page|screen|tab)\b`)

	renamePattern     = regexp.MustCompile(`rename\s+(?:the\s+)?([a-z][a-z ]*?)(?:\s+page)?\s+to\s+([a-z][a-z ]*?)(?:\s*[.!?])?\s*$`)
	changeNamePattern = regexp.MustCompile(`change\s+(?:the\s+)?(?:name\s+of\s+)?([a-z][a-z ]*?)(?:\s+page)?\s+to\s+([a-z][a-z ]*?)(?:\s*[.!?])?\s*$`)

	moveNavPattern     = regexp.MustCompile(`move\s+(?:the\s+)?([a-z][a-z ]*?)(?:\s+page)?\s+(?:to|into)\s+(?:the\s+)?(sidebar|side\s?bar|main\s+menu|main\s+nav|top\s+nav)`)
	makeDefaultPattern = regexp.MustCompile(`make\s+(?:the\s+)?([a-z][a-z ]*?)(?:\s+page)?\s+(?:the\s+)?(?:default|home|landing)(?:\s+page)?`)
)

// revisionPatterns is evaluated in order; earlier patterns win confidence
// ties, so the order matters.
var revisionPatterns = []revisionPattern{
	{
		intent:        IntentStyleChange,
		regexes:       []*regexp.Regexp{styleRestylePattern, styleThemePattern},
		keywords:      []string{"style", "theme", "look", "color", "colour", "font", "design"},
		agreeIntents:  []nlu.IntentType{nlu.IntentChangeDesign, nlu.IntentModifyApp},
		extractTarget: extractStyleTarget,
		generate:      generateStyleChanges,
	},
	{
		intent:        IntentAddFeature,
		regexes:       []*regexp.Regexp{addFeaturePattern, integratePattern},
		keywords:      []string{"add", "include", "feature", "support for"},
		agreeIntents:  []nlu.IntentType{nlu.IntentAddFeature},
		extractTarget: extractFeatureTarget,
		generate:      generateAddFeatureChanges,
	},
	{
		intent:        IntentRemoveFeature,
		regexes:       []*regexp.Regexp{removePattern},
		keywords:      []string{"remove", "delete", "get rid of", "hide"},
		agreeIntents:  []nlu.IntentType{nlu.IntentModifyApp},
		extractTarget: extractRemoveTarget,
		generate:      generateRemoveChanges,
	},
	{
		intent:        IntentModifyEntity,
		regexes:       []*regexp.Regexp{fieldToEntityPattern},
		keywords:      []string{"field", "column", "property"},
		agreeIntents:  []nlu.IntentType{nlu.IntentAddFeature, nlu.IntentModifyApp},
		extractTarget: extractFieldTarget,
		generate:      generateFieldChanges,
	},
	{
		intent:        IntentAddPage,
		regexes:       []*regexp.Regexp{addPagePattern},
		keywords:      []string{"page", "screen", "tab"},
		agreeIntents:  []nlu.IntentType{nlu.IntentAddFeature, nlu.IntentModifyApp},
		extractTarget: extractAddPageTarget,
		generate:      generateAddPageChanges,
	},
	{
		intent:        IntentRenamePage,
		regexes:       []*regexp.Regexp{renamePattern, changeNamePattern},
		keywords:      []string{"rename", "call it"},
		agreeIntents:  []nlu.IntentType{nlu.IntentModifyApp},
		extractTarget: extractRenameTarget,
		generate:      generateRenameChanges,
	},
	{
		intent:        IntentReorganize,
		regexes:       []*regexp.Regexp{moveNavPattern, makeDefaultPattern},
		keywords:      []string{"move", "sidebar", "menu", "default", "navigation"},
		agreeIntents:  []nlu.IntentType{nlu.IntentModifyApp, nlu.IntentChangeDesign},
		extractTarget: extractReorganizeTarget,
		generate:      generateReorganizeChanges,
	},
}

// =============================================================================
// STYLE BUNDLES
// =============================================================================

// styleBundles maps a style adjective to the attribute set it implies. Keys
// mirror the style lexicon so every recognized style word resolves here.
var styleBundles = map[string]map[string]string{
	"modern":       {"theme": "modern", "corners": "rounded", "font": "Inter", "shadows": "soft"},
	"clean":        {"theme": "minimal", "density": "comfortable", "decoration": "none"},
	"simple":       {"theme": "minimal", "density": "comfortable"},
	"minimal":      {"theme": "minimal", "density": "compact", "decoration": "none"},
	"minimalist":   {"theme": "minimal", "density": "compact", "decoration": "none"},
	"professional": {"theme": "professional", "font": "Source Sans", "palette": "muted"},
	"colorful":     {"palette": "vibrant", "accent": "#f59e0b"},
	"bright":       {"palette": "vibrant", "background": "#ffffff"},
	"dark":         {"mode": "dark", "background": "#111827", "text": "#f9fafb"},
	"light":        {"mode": "light", "background": "#ffffff", "text": "#111827"},
	"elegant":      {"theme": "elegant", "font": "Playfair Display"},
	"bold":         {"weight": "bold", "contrast": "high"},
	"sleek":        {"theme": "modern", "decoration": "none"},
	"friendly":     {"theme": "playful", "corners": "rounded"},
	"playful":      {"theme": "playful", "corners": "rounded", "palette": "vibrant"},
	"warm":         {"palette": "warm", "accent": "#ea580c"},
	"cool":         {"palette": "cool", "accent": "#0ea5e9"},
	"fancy":        {"theme": "elegant", "decoration": "ornate"},
	"classic":      {"theme": "classic", "font": "Georgia"},
}

// =============================================================================
// FEATURE CATALOG
// =============================================================================

type featureBundle struct {
	entities  []Entity
	pages     []Page
	workflows []Workflow
}

// featureCatalog maps spoken feature vocabulary to the components enabling it
// adds. Scanned in order; the first keyword hit wins.
var featureCatalog = []struct {
	id       string
	keywords []string
	bundle   featureBundle
}{
	{
		id:       "invoicing",
		keywords: []string{"invoic", "billing"},
		bundle: featureBundle{
			entities: []Entity{{ID: "invoice", Name: "Invoice", Fields: []Field{
				{ID: "amount", Name: "Amount", Type: "currency"},
				{ID: "due-date", Name: "Due Date", Type: "date"},
				{ID: "status", Name: "Status", Type: "select"},
			}}},
			pages:     []Page{{ID: "invoice-list", Name: "Invoices", Nav: "main"}},
			workflows: []Workflow{{ID: "invoice-send", Name: "Send Invoice"}},
		},
	},
	{
		id:       "calendar",
		keywords: []string{"calendar", "schedule"},
		bundle: featureBundle{
			pages:     []Page{{ID: "calendar", Name: "Calendar", Nav: "main"}},
			workflows: []Workflow{{ID: "booking-workflow", Name: "Booking"}},
		},
	},
	{
		id:       "appointments",
		keywords: []string{"appointment", "booking"},
		bundle: featureBundle{
			entities: []Entity{{ID: "appointment", Name: "Appointment", Fields: []Field{
				{ID: "start", Name: "Start", Type: "date"},
				{ID: "customer", Name: "Customer", Type: "reference"},
			}}},
			pages:     []Page{{ID: "appointment-list", Name: "Appointments", Nav: "main"}},
			workflows: []Workflow{{ID: "booking-workflow", Name: "Booking"}},
		},
	},
	{
		id:       "reminders",
		keywords: []string{"remind"},
		bundle: featureBundle{
			workflows: []Workflow{{ID: "daily-reminders", Name: "Daily Reminders"}},
		},
	},
	{
		id:       "payments",
		keywords: []string{"payment", "pay online", "stripe"},
		bundle: featureBundle{
			entities:  []Entity{{ID: "payment", Name: "Payment", Fields: []Field{{ID: "amount", Name: "Amount", Type: "currency"}}}},
			workflows: []Workflow{{ID: "payment-receipt", Name: "Payment Receipt"}},
		},
	},
	{
		id:       "reviews",
		keywords: []string{"review", "rating", "feedback"},
		bundle: featureBundle{
			entities:  []Entity{{ID: "review", Name: "Review", Fields: []Field{{ID: "rating", Name: "Rating", Type: "number"}}}},
			workflows: []Workflow{{ID: "review-request", Name: "Review Request"}},
		},
	},
	{
		id:       "quotes",
		keywords: []string{"quote", "estimate"},
		bundle: featureBundle{
			entities:  []Entity{{ID: "quote", Name: "Quote", Fields: []Field{{ID: "total", Name: "Total", Type: "currency"}}}},
			pages:     []Page{{ID: "quote-list", Name: "Quotes", Nav: "main"}},
			workflows: []Workflow{{ID: "quote-acceptance", Name: "Quote Acceptance"}},
		},
	},
	{
		id:       "reports",
		keywords: []string{"report", "analytics", "dashboard"},
		bundle: featureBundle{
			pages: []Page{{ID: "dashboard", Name: "Dashboard", Nav: "main"}},
		},
	},
	{
		id:       "photos",
		keywords: []string{"photo", "picture", "image", "gallery"},
		bundle: featureBundle{
			pages: []Page{{ID: "gallery", Name: "Gallery", Nav: "main"}},
		},
	},
}

// =============================================================================
// TARGET EXTRACTION
// =============================================================================

func extractStyleTarget(_ string, parsed nlu.ParsedInput) string {
	for _, tok := range parsed.Tokens {
		if _, ok := styleBundles[tok.Lemma]; ok {
			return tok.Lemma
		}
		if _, ok := styleBundles[tok.Text]; ok {
			return tok.Text
		}
	}
	return ""
}

func extractFeatureTarget(normalized string, _ nlu.ParsedInput) string {
	for _, entry := range featureCatalog {
		for _, kw := range entry.keywords {
			if strings.Contains(normalized, kw) {
				return entry.id
			}
		}
	}
	return ""
}

func extractRemoveTarget(normalized string, _ nlu.ParsedInput) string {
	if m := removePattern.FindStringSubmatch(normalized); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractFieldTarget packs field and entity as "field:entity" so generation
// can split them back apart.
func extractFieldTarget(normalized string, _ nlu.ParsedInput) string {
	if m := fieldToEntityPattern.FindStringSubmatch(normalized); m != nil {
		return m[1] + ":" + m[2]
	}
	return ""
}

func extractAddPageTarget(normalized string, _ nlu.ParsedInput) string {
	if m := addPagePattern.FindStringSubmatch(normalized); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractRenameTarget packs old and new names as "old|new".
func extractRenameTarget(normalized string, _ nlu.ParsedInput) string {
	for _, re := range []*regexp.Regexp{renamePattern, changeNamePattern} {
		if m := re.FindStringSubmatch(normalized); m != nil {
			return strings.TrimSpace(m[1]) + "|" + strings.TrimSpace(m[2])
		}
	}
	return ""
}

func extractReorganizeTarget(normalized string, _ nlu.ParsedInput) string {
	if m := moveNavPattern.FindStringSubmatch(normalized); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := makeDefaultPattern.FindStringSubmatch(normalized); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// =============================================================================
// CHANGE GENERATION
// =============================================================================

func generateStyleChanges(_ *Engine, target string, ctx AppContext, _ nlu.ParsedInput) []Change {
	bundle, ok := styleBundles[target]
	if !ok {
		return nil
	}
	before := make(map[string]any, len(bundle))
	after := make(map[string]any, len(bundle))
	for k, v := range bundle {
		before[k] = ctx.Style[k]
		after[k] = v
	}
	return []Change{{
		Type:        ChangeModify,
		Target:      TargetStyle,
		TargetID:    "app-style",
		Before:      before,
		After:       after,
		Description: "Restyle the app to look " + target,
	}}
}

func generateAddFeatureChanges(_ *Engine, target string, ctx AppContext, _ nlu.ParsedInput) []Change {
	var bundle *featureBundle
	for i := range featureCatalog {
		if featureCatalog[i].id == target {
			bundle = &featureCatalog[i].bundle
			break
		}
	}
	if bundle == nil {
		return nil
	}

	var changes []Change
	for _, e := range bundle.entities {
		if findEntityByID(ctx, e.ID) == nil {
			changes = append(changes, Change{
				Type: ChangeAdd, Target: TargetEntity, TargetID: e.ID, After: e,
				Description: "Add the " + e.Name + " entity",
			})
		}
	}
	for _, p := range bundle.pages {
		if findPageByID(ctx, p.ID) == nil {
			changes = append(changes, Change{
				Type: ChangeAdd, Target: TargetPage, TargetID: p.ID, After: p,
				Description: "Add the " + p.Name + " page",
			})
		}
	}
	for _, wf := range bundle.workflows {
		if findWorkflowByID(ctx, wf.ID) == nil {
			changes = append(changes, Change{
				Type: ChangeAdd, Target: TargetWorkflow, TargetID: wf.ID, After: wf,
				Description: "Add the " + wf.Name + " workflow",
			})
		}
	}
	return changes
}

func generateRemoveChanges(_ *Engine, target string, ctx AppContext, _ nlu.ParsedInput) []Change {
	needle := strings.ToLower(target)
	var changes []Change
	for _, p := range ctx.Pages {
		if strings.Contains(strings.ToLower(p.ID), needle) || strings.Contains(strings.ToLower(p.Name), needle) {
			changes = append(changes, Change{
				Type: ChangeRemove, Target: TargetPage, TargetID: p.ID, Before: p,
				Description: "Remove the " + p.Name + " page",
			})
		}
	}
	return changes
}

func generateFieldChanges(_ *Engine, target string, ctx AppContext, _ nlu.ParsedInput) []Change {
	fieldName, entityName, ok := strings.Cut(target, ":")
	if !ok {
		return nil
	}
	e := findEntityByName(ctx, entityName)
	if e == nil {
		return nil
	}

	fieldID := slugify(fieldName)
	for _, f := range e.Fields {
		if f.ID == fieldID {
			return nil
		}
	}
	return []Change{{
		Type:        ChangeAdd,
		Target:      TargetField,
		TargetID:    e.ID + "." + fieldID,
		After:       Field{ID: fieldID, Name: titleCase(fieldName), Type: fieldTypeFor(fieldName)},
		Description: fmt.Sprintf("Add a %s field to %s", fieldName, e.Name),
	}}
}

func generateAddPageChanges(_ *Engine, target string, ctx AppContext, _ nlu.ParsedInput) []Change {
	id := slugify(target)
	if findPageByID(ctx, id) != nil {
		return nil
	}
	return []Change{{
		Type:        ChangeAdd,
		Target:      TargetPage,
		TargetID:    id,
		After:       Page{ID: id, Name: titleCase(target), Nav: "main"},
		Description: "Add a " + titleCase(target) + " page",
	}}
}

func generateRenameChanges(_ *Engine, target string, ctx AppContext, _ nlu.ParsedInput) []Change {
	oldName, newName, ok := strings.Cut(target, "|")
	if !ok {
		return nil
	}
	p := findPageByName(ctx, oldName)
	if p == nil {
		return nil
	}
	return []Change{{
		Type:        ChangeModify,
		Target:      TargetPage,
		TargetID:    p.ID,
		Before:      map[string]any{"name": p.Name},
		After:       map[string]any{"name": titleCase(newName)},
		Description: fmt.Sprintf("Rename the %s page to %s", p.Name, titleCase(newName)),
	}}
}

// generateReorganizeChanges evaluates the move-to-nav and make-default shapes
// independently; both may fire on the same utterance.
func generateReorganizeChanges(_ *Engine, _ string, ctx AppContext, parsed nlu.ParsedInput) []Change {
	var changes []Change

	if m := moveNavPattern.FindStringSubmatch(parsed.Normalized); m != nil {
		if p := findPageByName(ctx, strings.TrimSpace(m[1])); p != nil {
			nav := "main"
			if strings.Contains(m[2], "side") {
				nav = "sidebar"
			}
			changes = append(changes, Change{
				Type: ChangeModify, Target: TargetPage, TargetID: p.ID,
				Before:      map[string]any{"nav": p.Nav},
				After:       map[string]any{"nav": nav},
				Description: fmt.Sprintf("Move the %s page to the %s", p.Name, nav),
			})
		}
	}

	if m := makeDefaultPattern.FindStringSubmatch(parsed.Normalized); m != nil {
		if p := findPageByName(ctx, strings.TrimSpace(m[1])); p != nil {
			changes = append(changes, Change{
				Type: ChangeModify, Target: TargetPage, TargetID: p.ID,
				Before:      map[string]any{"default": p.Default},
				After:       map[string]any{"default": true},
				Description: "Make the " + p.Name + " page the default",
			})
		}
	}

	return changes
}

// =============================================================================
// LOOKUP HELPERS
// =============================================================================

func findPageByID(ctx AppContext, id string) *Page {
	for i := range ctx.Pages {
		if ctx.Pages[i].ID == id {
			return &ctx.Pages[i]
		}
	}
	return nil
}

func findPageByName(ctx AppContext, name string) *Page {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range ctx.Pages {
		if strings.ToLower(ctx.Pages[i].Name) == needle || ctx.Pages[i].ID == slugify(needle) {
			return &ctx.Pages[i]
		}
	}
	for i := range ctx.Pages {
		if strings.Contains(strings.ToLower(ctx.Pages[i].Name), needle) {
			return &ctx.Pages[i]
		}
	}
	return nil
}

func findEntityByID(ctx AppContext, id string) *Entity {
	for i := range ctx.Entities {
		if ctx.Entities[i].ID == id {
			return &ctx.Entities[i]
		}
	}
	return nil
}

// findEntityByName matches by id or name, tolerating a plural "s".
func findEntityByName(ctx AppContext, name string) *Entity {
	needle := strings.ToLower(strings.TrimSpace(name))
	singular := strings.TrimSuffix(needle, "s")
	for i := range ctx.Entities {
		id := ctx.Entities[i].ID
		lower := strings.ToLower(ctx.Entities[i].Name)
		if id == needle || id == singular || lower == needle || lower == singular {
			return &ctx.Entities[i]
		}
	}
	return nil
}

func findWorkflowByID(ctx AppContext, id string) *Workflow {
	for i := range ctx.Workflows {
		if ctx.Workflows[i].ID == id {
			return &ctx.Workflows[i]
		}
	}
	return nil
}

// =============================================================================
// STRING HELPERS
// =============================================================================

func slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), "-")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// fieldTypeFor guesses a field type from the spoken field name.
func fieldTypeFor(name string) string {
	switch {
	case strings.Contains(name, "date") || strings.Contains(name, "time") || name == "deadline" || name == "due":
		return "date"
	case strings.Contains(name, "price") || strings.Contains(name, "cost") || strings.Contains(name, "amount") || strings.Contains(name, "total"):
		return "currency"
	case strings.Contains(name, "count") || strings.Contains(name, "quantity") || strings.Contains(name, "number"):
		return "number"
	case strings.Contains(name, "email"):
		return "email"
	case strings.Contains(name, "phone"):
		return "phone"
	case name == "status" || name == "priority" || name == "stage":
		return "select"
	default:
		return "text"
	}
}

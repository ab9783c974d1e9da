package discovery

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"appwright/internal/lexer"
	"appwright/internal/logging"
)

// =============================================================================
// INDUSTRY DETECTION
// =============================================================================

// industryPattern scores one vertical. Occupation nouns carry weight 2,
// activity words weight 1; the weight sum decides both confidence and whether
// the detection counts as explicit.
type industryPattern struct {
	id       string
	keywords map[string]float64
}

var industryPatterns = []industryPattern{
	{"plumber", map[string]float64{"plumber": 2, "plumbing": 1, "pipe": 1, "drain": 1, "leak": 1, "water heater": 1}},
	{"electrician", map[string]float64{"electrician": 2, "electrical": 1, "wiring": 1, "breaker": 1, "outlet": 1}},
	{"hvac", map[string]float64{"hvac": 2, "heating": 1, "cooling": 1, "furnace": 1, "air conditioning": 1, "ac repair": 1}},
	{"landscaper", map[string]float64{"landscaper": 2, "landscaping": 1, "lawn": 1, "mowing": 1, "garden": 1, "yard": 1}},
	{"cleaner", map[string]float64{"cleaning business": 2, "cleaner": 2, "maid": 1, "housekeeping": 1, "janitorial": 1}},
	{"contractor", map[string]float64{"contractor": 2, "construction": 1, "remodel": 1, "renovation": 1, "roofing": 1}},
	{"restaurant", map[string]float64{"restaurant": 2, "cafe": 1, "menu": 1, "kitchen": 1, "food truck": 1, "catering": 1}},
	{"salon", map[string]float64{"salon": 2, "barber": 2, "haircut": 1, "stylist": 1, "nails": 1, "spa": 1}},
	{"gym", map[string]float64{"gym": 2, "fitness": 1, "personal trainer": 1, "workout": 1, "classes": 1}},
	{"retail", map[string]float64{"retail": 2, "store": 1, "shop": 1, "inventory": 1, "merchandise": 1}},
	{"realestate", map[string]float64{"real estate": 2, "realtor": 2, "listing": 1, "property": 1, "tenant": 1}},
	{"consultant", map[string]float64{"consultant": 2, "consulting": 1, "advisory": 1, "client engagement": 1}},
	{"freelancer", map[string]float64{"freelancer": 2, "freelance": 1, "gig": 1, "portfolio": 1}},
	{"tutor", map[string]float64{"tutor": 2, "tutoring": 1, "lesson": 1, "student": 1, "teaching": 1}},
	{"photographer", map[string]float64{"photographer": 2, "photography": 1, "photo shoot": 1, "wedding shoot": 1}},
	{"petcare", map[string]float64{"groomer": 2, "pet sitting": 2, "dog walking": 1, "grooming": 1, "kennel": 1}},
	{"autorepair", map[string]float64{"auto repair": 2, "mechanic": 2, "car repair": 1, "garage": 1, "oil change": 1}},
}

// subVerticalIndustries is the allow-list of industries with defined
// sub-verticals, with keyword detection per sub-vertical.
var subVerticalIndustries = map[string][]struct {
	id       string
	keywords []string
}{
	"contractor": {
		{"general", []string{"general contractor", "new builds"}},
		{"remodel", []string{"remodel", "renovation", "kitchen", "bathroom"}},
		{"roofing", []string{"roof", "roofing", "shingle"}},
	},
	"restaurant": {
		{"cafe", []string{"cafe", "coffee", "bakery"}},
		{"foodtruck", []string{"food truck", "street food"}},
		{"catering", []string{"catering", "events"}},
	},
	"salon": {
		{"hair", []string{"hair", "haircut", "stylist", "barber"}},
		{"nails", []string{"nails", "manicure", "pedicure"}},
		{"spa", []string{"spa", "massage", "facial"}},
	},
	"cleaner": {
		{"residential", []string{"house", "home", "apartment", "maid"}},
		{"commercial", []string{"office", "commercial", "janitorial"}},
	},
}

func hasSubVerticals(industry string) bool {
	_, ok := subVerticalIndustries[industry]
	return ok
}

// =============================================================================
// NUMERIC DETECTORS
// =============================================================================

var (
	teamSizePattern = regexp.MustCompile(`(\d+)\s*(?:employees|technicians|people|staff|workers|team\s+members|crew|guys)\b`)
	soloPattern     = regexp.MustCompile(`\b(?:just\s+me|solo|myself|on\s+my\s+own|one\s+man)\b`)

	// Unit-qualified scale patterns outrank the bare-number fallback. The unit
	// list here deliberately does not cover every context word the team-size
	// detector knows (e.g. "technicians"), so such inputs degrade to the
	// bare-number scale value.
	scaleUnitPattern = regexp.MustCompile(`(\d+)\s*(customers|clients|jobs\s+(?:a|per)\s+(?:week|month|day)|orders|locations|units|appointments|trucks|properties)\b`)
	bareNumber       = regexp.MustCompile(`\b(\d+)\b`)
)

var customerFacingPattern = regexp.MustCompile(`\b(?:customers?\s+(?:can|book|see|pay|order)|clients?\s+(?:can|book|see|pay)|customer\s+portal|client\s+portal|customer\s+facing|public\s+(?:site|page|booking)|online\s+booking)\b`)

// =============================================================================
// UPDATE FROM INPUT
// =============================================================================

// Confidence arithmetic for the detectors and kit merges.
const (
	industryBaseConfidence  = 0.6
	industryWeightStep      = 0.1
	industryMaxConfidence   = 0.95
	industryExplicitWeight  = 2.0
	kitIndustryConfidence   = 0.95
	kitEntityDiscount       = 0.9
	kitWorkflowDiscount     = 0.85
	integrationExplicitConf = 0.85
	integrationAssumedConf  = 0.5
	subVerticalConfidence   = 0.75
	teamSizeConfidence      = 0.9
	scaleUnitConfidence     = 0.9
	scaleBareConfidence     = 0.5
	customerFacingConf      = 0.7
)

// UpdateFromInput folds one utterance into the ledger. The detectors run in a
// fixed order (industry, sub-vertical, team size, scale, customer-facing, kit
// merges); each hit replaces its slot copy-on-write, and the derived fields
// are recomputed once more at the end, after suggestion generation.
func UpdateFromInput(ledger Ledger, utterance string, kit *IndustryKit) Ledger {
	text := lexer.Normalize(utterance)
	log := logging.Get(logging.CategoryDiscovery)

	// industry
	if kit != nil {
		ledger = ledger.WithIndustry(kit.ID, kitIndustryConfidence, SourceExplicit, "industry kit: "+kit.Name)
	} else if id, weight, evidence := detectIndustry(text); id != "" {
		confidence := industryBaseConfidence + weight*industryWeightStep
		if confidence > industryMaxConfidence {
			confidence = industryMaxConfidence
		}
		source := SourceInferred
		if weight >= industryExplicitWeight {
			source = SourceExplicit
		}
		ledger = ledger.WithIndustry(id, confidence, source, evidence...)
		log.Debug("industry detected",
			zap.String("industry", id),
			zap.Float64("confidence", confidence),
			zap.String("source", string(source)))
	}

	// sub-vertical, only once the industry is confidently known
	if ledger.Industry.Confidence >= gapThreshold {
		if sub, evidence := detectSubVertical(ledger.Industry.Value, text); sub != "" {
			ledger = ledger.WithSubVertical(sub, subVerticalConfidence, SourceInferred, evidence)
		}
	}

	// team size
	if m := teamSizePattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			ledger = ledger.WithTeamSize(n, teamSizeConfidence, SourceExplicit, m[0])
		}
	} else if soloPattern.MatchString(text) {
		ledger = ledger.WithTeamSize(1, teamSizeConfidence, SourceExplicit, "solo operation")
	}

	// scale: unit-qualified patterns outrank the bare-number fallback
	if m := scaleUnitPattern.FindStringSubmatch(text); m != nil {
		ledger = ledger.WithScale(m[1]+" "+m[2], scaleUnitConfidence, SourceExplicit, m[0])
	} else if m := bareNumber.FindStringSubmatch(text); m != nil && ledger.Scale.Value == "" {
		ledger = ledger.WithScale(m[1], scaleBareConfidence, SourceInferred, m[0])
	}

	// customer-facing flag
	if customerFacingPattern.MatchString(text) {
		ledger = ledger.WithCustomerFacing(true, customerFacingConf, SourceInferred, customerFacingPattern.FindString(text))
	}

	// kit merges: entities and workflows at a discount, integrations either
	// detected in the text or assumed wholesale
	if kit != nil {
		if len(kit.Entities) > 0 {
			ledger = ledger.WithPrimaryEntities(append([]string(nil), kit.Entities...),
				ledger.Industry.Confidence*kitEntityDiscount, SourceInferred, "industry kit: "+kit.Name)
		}
		if len(kit.Workflows) > 0 {
			ledger = ledger.WithWorkflows(append([]string(nil), kit.Workflows...),
				ledger.Industry.Confidence*kitWorkflowDiscount, SourceInferred, "industry kit: "+kit.Name)
		}
		if detected := detectIntegrations(text, kit.SuggestedIntegrations); len(detected) > 0 {
			ledger = ledger.WithIntegrations(detected, integrationExplicitConf, SourceExplicit, "mentioned in input")
		} else if len(kit.SuggestedIntegrations) > 0 {
			ledger = ledger.WithIntegrations(append([]string(nil), kit.SuggestedIntegrations...),
				integrationAssumedConf, SourceAssumed, "industry kit: "+kit.Name)
		}
	}

	ledger.Suggestions = buildSuggestions(text, kit)

	// Suggestions are written after the per-slot recomputes, so refresh the
	// derived fields one final time. Idempotent with the per-slot pass.
	return ledger.recompute()
}

// detectIndustry scores every vertical against the text and returns the best
// one with its matched weight and evidence keywords.
func detectIndustry(text string) (id string, weight float64, evidence []string) {
	var best float64
	for _, p := range industryPatterns {
		var score float64
		var hits []string
		for kw, w := range p.keywords {
			if strings.Contains(text, kw) {
				score += w
				hits = append(hits, kw)
			}
		}
		if score > best {
			best = score
			id = p.id
			weight = score
			evidence = hits
		}
	}
	return id, weight, evidence
}

func detectSubVertical(industry, text string) (string, string) {
	for _, sub := range subVerticalIndustries[industry] {
		for _, kw := range sub.keywords {
			if strings.Contains(text, kw) {
				return sub.id, kw
			}
		}
	}
	return "", ""
}

// detectIntegrations returns the kit-suggested integrations explicitly named
// in the text.
func detectIntegrations(text string, suggested []string) []string {
	var out []string
	for _, name := range suggested {
		if strings.Contains(text, strings.ToLower(name)) {
			out = append(out, name)
		}
	}
	return out
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// suggestionHints are non-blocking feature hints keyed by a text cue.
var suggestionHints = []struct {
	cue     string
	feature string
}{
	{"invoice", "invoicing"},
	{"bill", "invoicing"},
	{"appointment", "appointments"},
	{"book", "appointments"},
	{"schedule", "appointments"},
	{"remind", "reminders"},
	{"quote", "quotes"},
	{"estimate", "quotes"},
	{"review", "reviews"},
	{"photo", "gallery"},
	{"report", "reporting"},
}

// buildSuggestions merges text-detected feature hints with the kit's
// recommended bundle, deduplicated in first-seen order.
func buildSuggestions(text string, kit *IndustryKit) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(feature string) {
		if !seen[feature] {
			seen[feature] = true
			out = append(out, feature)
		}
	}

	for _, hint := range suggestionHints {
		if strings.Contains(text, hint.cue) {
			add(hint.feature)
		}
	}
	if kit != nil {
		for _, feature := range kit.FeatureBundle.Recommended {
			add(feature)
		}
	}
	return out
}

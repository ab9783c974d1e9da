package nlu

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"appwright/internal/lexer"
	"appwright/internal/lexicon"
	"appwright/internal/logging"
)

// =============================================================================
// INTENT RULE TABLE
// =============================================================================

// intentRule pairs a pattern with its label and weight. Rules are evaluated
// top to bottom and the highest weight wins; on equal weight the earlier rule
// wins, so ordering here is behaviorally significant.
type intentRule struct {
	pattern *regexp.Regexp
	intent  IntentType
	weight  float64
}

var intentRules = []intentRule{
	{regexp.MustCompile(`(?:create|build|make|design|develop)\s+(?:me\s+)?(?:an?\s+)?(?:new\s+)?(?:\w+\s+)?(?:app|application|website|site|system|platform|tool)`), IntentCreateApp, 1.0},
	{regexp.MustCompile(`(?:i\s+)?(?:need|want)\s+(?:an?\s+)?(?:\w+\s+)?(?:app|application|website|system)`), IntentCreateApp, 0.9},
	{regexp.MustCompile(`add\s+(?:an?\s+)?(?:\w+\s+)*(?:feature|page|button|form|field|section|calendar|chat|gallery)`), IntentAddFeature, 1.0},
	{regexp.MustCompile(`(?:include|integrate)\s+`), IntentAddFeature, 0.8},
	{regexp.MustCompile(`(?:make\s+it|change\s+the)\s+(?:look|color|colors|style|theme|design|font)`), IntentChangeDesign, 0.9},
	{regexp.MustCompile(`(?:change|modify|update|edit|rename)\s+`), IntentModifyApp, 0.9},
	{regexp.MustCompile(`(?:remove|delete|hide|get\s+rid\s+of)\s+`), IntentRemoveFeature, 0.9},
	{regexp.MustCompile(`^(?:what|how|why|when|where|which|who|can|does|is|are)\b`), IntentQuestion, 0.8},
}

// verbFallback maps verb lemmas to an intent when the rule table is not
// confident enough.
type verbFallback struct {
	lemmas     lexicon.Set
	intent     IntentType
	confidence float64
}

var verbFallbacks = []verbFallback{
	{lexiconSet("create", "build", "make", "design", "develop"), IntentCreateApp, 0.7},
	{lexiconSet("add", "include", "integrate"), IntentAddFeature, 0.6},
	{lexiconSet("change", "modify", "update", "edit"), IntentModifyApp, 0.6},
	{lexiconSet("remove", "delete", "hide"), IntentRemoveFeature, 0.6},
}

func lexiconSet(words ...string) lexicon.Set {
	s := make(lexicon.Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// fallbackThreshold is the rule-table confidence below which the verb-lemma
// fallback takes over. Shared with callers that threshold on intent
// confidence, so the two tiers stay comparable.
const fallbackThreshold = 0.6

// =============================================================================
// PARSE
// =============================================================================

// Parse runs the full classification chain for one utterance.
func Parse(text string) ParsedInput {
	normalized := lexer.Normalize(text)
	tokens := lexer.Tokenize(normalized)

	p := ParsedInput{
		Raw:        text,
		Normalized: normalized,
		Tokens:     tokens,
	}

	for _, tok := range tokens {
		switch tok.POS {
		case lexer.POSVerb:
			p.ActionVerbs = append(p.ActionVerbs, tok.Lemma)
		case lexer.POSNoun:
			p.Nouns = append(p.Nouns, tok.Lemma)
		case lexer.POSAdjective:
			p.Adjectives = append(p.Adjectives, tok.Lemma)
		}
	}

	p.Intent = DetectIntent(normalized, tokens)
	p.SemanticIntents = DetectSemanticIntents(normalized)
	p.Entities = ExtractEntities(text)
	p.Modifiers = ExtractModifiers(tokens)
	p.Phrases = ExtractPhrases(tokens)

	logging.Get(logging.CategoryNLU).Debug("parsed utterance",
		zap.String("intent", string(p.Intent.Type)),
		zap.Float64("confidence", p.Intent.Confidence),
		zap.Int("tokens", len(tokens)),
		zap.Int("entities", len(p.Entities)))

	return p
}

// DetectIntent resolves the primary intent in two tiers: the ordered rule
// table first, then verb-lemma heuristics when the best rule match is below
// the confidence threshold. An utterance that matches nothing defaults to
// create_app at 0.5.
func DetectIntent(normalized string, tokens []lexer.Token) Intent {
	best := Intent{Type: IntentCreateApp, Confidence: 0}
	for _, rule := range intentRules {
		if rule.weight > best.Confidence && rule.pattern.MatchString(normalized) {
			best = Intent{Type: rule.intent, Confidence: rule.weight}
		}
	}
	if best.Confidence >= fallbackThreshold {
		return best
	}

	for _, fb := range verbFallbacks {
		for _, tok := range tokens {
			if tok.POS == lexer.POSVerb && fb.lemmas.Has(tok.Lemma) {
				return Intent{Type: fb.intent, Confidence: fb.confidence}
			}
		}
	}

	if best.Confidence > 0 {
		return best
	}
	return Intent{Type: IntentCreateApp, Confidence: 0.5}
}

// =============================================================================
// SEMANTIC INTENTS
// =============================================================================

type semanticRule struct {
	intent  SemanticIntent
	pattern *regexp.Regexp
}

var semanticRules = []semanticRule{
	{SemanticTracking, regexp.MustCompile(`\btrack|\bkeep\s+(?:track|tabs)\b|\blogging\b|\bfollow\s+up\b|\bstatus\s+of\b`)},
	{SemanticScheduling, regexp.MustCompile(`\bschedul|\bappointment|\bbooking|\bbook\b|\bcalendar\b|\bavailability\b`)},
	{SemanticManaging, regexp.MustCompile(`\bmanag|\bhandle\b|\brun\s+my\b|\boversee\b|\bkeep\s+on\s+top\b`)},
	{SemanticOrganizing, regexp.MustCompile(`\borganiz|\bsort\b|\bcategor|\barrang|\bgroup\b`)},
	{SemanticCommunicating, regexp.MustCompile(`\bemail\b|\bnotify\b|\bnotification|\bmessage\b|\bsms\b|\btext\s+(?:me|them|customers|clients)\b|\bremind`)},
	{SemanticBilling, regexp.MustCompile(`\binvoic|\bbill|\bpayment|\bcharge\b|\bquote|\bestimate`)},
	{SemanticReporting, regexp.MustCompile(`\breport|\banalytic|\bdashboard\b|\bsummar|\bchart\b|\binsight`)},
	{SemanticCollaborating, regexp.MustCompile(`\bcollaborat|\bshare\b|\bteam\s+member|\bassign\b|\bdelegate\b`)},
	{SemanticAutomating, regexp.MustCompile(`\bautomat|\bwhen\s+.+\s+then\b|\btrigger\b|\bwithout\s+me\b`)},
	{SemanticMonitoring, regexp.MustCompile(`\bmonitor|\balert\b|\bwatch\b|\bkeep\s+an\s+eye\b`)},
}

// DetectSemanticIntents returns every verb-class category whose pattern
// matches anywhere in the text. Duplicates are removed; output follows the
// fixed rule-table order so results are deterministic.
func DetectSemanticIntents(normalized string) []SemanticIntent {
	var out []SemanticIntent
	seen := make(map[SemanticIntent]bool, len(semanticRules))
	for _, rule := range semanticRules {
		if seen[rule.intent] {
			continue
		}
		if rule.pattern.MatchString(normalized) {
			seen[rule.intent] = true
			out = append(out, rule.intent)
		}
	}
	return out
}

// =============================================================================
// NAMED ENTITIES
// =============================================================================

const entityConfidence = 0.8

type entityRule struct {
	typ     EntityType
	pattern *regexp.Regexp
}

// Entity scans run over the raw text: person-name detection needs the original
// capitalization, and spans must index the text the caller supplied.
var entityRules = []entityRule{
	{EntityMoney, regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{1,2})?`)},
	{EntityDate, regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)},
	{EntityTime, regexp.MustCompile(`\b\d{1,2}:\d{2}\s*(?:am|pm|AM|PM)?\b`)},
	{EntityQuantity, regexp.MustCompile(`(?i)\b\d+\s+(?:hours?|days?|weeks?|months?|years?|people|employees|customers|clients|users|items|jobs|units)\b`)},
	{EntityPerson, regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)},
}

// ExtractEntities regex-scans the raw text for typed spans. Every match
// carries the fixed entity confidence.
func ExtractEntities(raw string) []NamedEntity {
	var out []NamedEntity
	for _, rule := range entityRules {
		for _, span := range rule.pattern.FindAllStringIndex(raw, -1) {
			out = append(out, NamedEntity{
				Type:       rule.typ,
				Value:      raw[span[0]:span[1]],
				Start:      span[0],
				End:        span[1],
				Confidence: entityConfidence,
			})
		}
	}
	return out
}

// =============================================================================
// MODIFIERS
// =============================================================================

// ExtractModifiers emits a modifier record for every token whose lemma sits in
// one of the modifier lexicons. Quantity, priority and status modifiers bind
// the next token's surface text as their target when one exists.
func ExtractModifiers(tokens []lexer.Token) []Modifier {
	var out []Modifier
	for i, tok := range tokens {
		value := tok.Lemma
		kind, ok := modifierKind(tok.Lemma)
		if !ok {
			// inflected lexicon entries ("completed") match on surface form
			kind, ok = modifierKind(tok.Text)
			value = tok.Text
		}
		if !ok {
			continue
		}
		m := Modifier{Kind: kind, Value: value}
		if bindsTarget(kind) && i+1 < len(tokens) {
			m.Target = tokens[i+1].Text
		}
		out = append(out, m)
	}
	return out
}

func modifierKind(lemma string) (ModifierKind, bool) {
	switch {
	case lexicon.QuantityWords.Has(lemma):
		return ModQuantity, true
	case lexicon.PriorityWords.Has(lemma):
		return ModPriority, true
	case lexicon.TimeWords.Has(lemma):
		return ModTime, true
	case lexicon.StatusWords.Has(lemma):
		return ModStatus, true
	case lexicon.StyleWords.Has(lemma):
		return ModStyle, true
	}
	return "", false
}

func bindsTarget(kind ModifierKind) bool {
	return kind == ModQuantity || kind == ModPriority || kind == ModStatus
}

// =============================================================================
// PHRASES
// =============================================================================

// phraseThreshold is the importance floor for a token to join a phrase run.
const phraseThreshold = 0.5

// ExtractPhrases greedily accumulates consecutive high-importance non-stop
// tokens and flushes runs of two or more as a phrase, both when a low token
// breaks the run and at end of input.
func ExtractPhrases(tokens []lexer.Token) []string {
	var phrases []string
	var run []string

	flush := func() {
		if len(run) >= 2 {
			phrases = append(phrases, strings.Join(run, " "))
		}
		run = run[:0]
	}

	for _, tok := range tokens {
		if tok.Importance > phraseThreshold && tok.POS != lexer.POSStopWord {
			run = append(run, tok.Text)
			continue
		}
		flush()
	}
	flush()

	return phrases
}

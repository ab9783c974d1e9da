// Package lexicon holds the closed-class word tables shared by the lexer and
// the intent classifier. All tables are constructed once at init and never
// mutated, so they are safe to read from concurrent pipeline invocations.
package lexicon

// =============================================================================
// SET TYPE
// =============================================================================

// Set is a membership-only string set.
type Set map[string]struct{}

// Has reports whether w is in the set.
func (s Set) Has(w string) bool {
	_, ok := s[w]
	return ok
}

func newSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// =============================================================================
// VERBS
// =============================================================================

// ActionVerbs are verbs that typically carry the operative intent of an
// utterance ("build me an app", "track my jobs"). Checked against lemmas.
var ActionVerbs = newSet(
	"create", "build", "make", "design", "develop", "generate", "set",
	"add", "include", "integrate", "attach", "insert",
	"change", "modify", "update", "edit", "adjust", "rename", "move",
	"remove", "delete", "hide", "drop", "clear",
	"track", "monitor", "log", "record", "watch",
	"manage", "organize", "sort", "assign", "schedule", "book",
	"send", "notify", "remind", "email", "text", "message", "call",
	"invoice", "bill", "charge", "quote", "pay",
	"show", "list", "view", "navigate", "open", "go",
	"complete", "finish", "close", "cancel", "approve", "accept",
	"share", "export", "report", "review",
)

// IrregularLemmas maps irregular inflected forms to their lemma. Consulted
// before any suffix-stripping rule.
var IrregularLemmas = map[string]string{
	"made": "make", "built": "build", "sent": "send", "ran": "run",
	"got": "get", "gotten": "get", "went": "go", "gone": "go",
	"did": "do", "done": "do", "had": "have", "has": "have",
	"was": "be", "were": "be", "been": "be", "is": "be", "are": "be",
	"said": "say", "found": "find", "kept": "keep", "paid": "pay",
	"sold": "sell", "told": "tell", "thought": "think", "bought": "buy",
	"brought": "bring", "held": "hold", "left": "leave", "met": "meet",
	"took": "take", "taken": "take", "gave": "give", "given": "give",
	"saw": "see", "seen": "see", "came": "come", "wrote": "write",
	"written": "write", "chose": "choose", "chosen": "choose",
}

// =============================================================================
// STOP WORDS
// =============================================================================

// StopWords are grammatical glue words that carry no salience.
var StopWords = newSet(
	"a", "an", "the", "this", "that", "these", "those",
	"i", "me", "my", "mine", "we", "us", "our", "you", "your", "it", "its",
	"he", "she", "they", "them", "their",
	"is", "am", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did",
	"to", "of", "in", "on", "at", "by", "for", "with", "from", "as",
	"and", "or", "but", "so", "if", "then", "than", "because",
	"can", "could", "will", "would", "should", "shall", "may", "might", "must",
	"not", "no", "yes", "there", "here", "what", "which", "who", "how",
	"also", "just", "really", "very", "please", "some", "any",
	"want", "need", "like", "get", "let", "lets",
)

// =============================================================================
// MODIFIER LEXICONS
// =============================================================================

// QuantityWords mark a quantity modifier. The following token is bound as the
// modifier target.
var QuantityWords = newSet(
	"many", "few", "several", "multiple", "single", "all", "every",
	"each", "both", "more", "less", "extra",
)

// PriorityWords mark a priority modifier. The following token is bound as the
// modifier target.
var PriorityWords = newSet(
	"urgent", "important", "critical", "priority", "essential",
	"key", "main", "primary", "top",
)

// TimeWords mark a time modifier.
var TimeWords = newSet(
	"daily", "weekly", "monthly", "yearly", "hourly", "quarterly",
	"immediately", "instantly", "soon", "later", "now",
	"today", "tomorrow", "tonight", "overnight",
)

// StatusWords mark a status modifier. The following token is bound as the
// modifier target.
var StatusWords = newSet(
	"active", "inactive", "pending", "completed", "done", "finished",
	"open", "closed", "new", "overdue", "paid", "unpaid", "cancelled",
)

// StyleWords mark a style modifier, and are also the vocabulary the revision
// engine maps to style-attribute bundles.
var StyleWords = newSet(
	"modern", "clean", "simple", "minimal", "minimalist", "professional",
	"colorful", "bright", "dark", "light", "elegant", "bold", "sleek",
	"friendly", "playful", "warm", "cool", "fancy", "classic",
)

// =============================================================================
// CONTEXT-HEURISTIC HELPERS
// =============================================================================

// Intensifiers precede adjectives ("more modern", "very clean").
var Intensifiers = newSet("more", "very", "really", "super", "extremely")

// Modals precede bare verbs ("should track", "can send"). The infinitive
// marker "to" behaves the same way for tagging purposes.
var Modals = newSet(
	"can", "could", "will", "would", "should", "shall", "may", "might",
	"must", "to",
)

// Determiners precede nouns ("the invoice", "every customer").
var Determiners = newSet(
	"a", "an", "the", "this", "that", "these", "those",
	"my", "our", "your", "every", "each", "some", "any",
)

// AdjectiveOf reports whether the lemma belongs to any modifier lexicon, which
// tags it as an adjective during lexing.
func AdjectiveOf(lemma string) bool {
	return QuantityWords.Has(lemma) ||
		PriorityWords.Has(lemma) ||
		TimeWords.Has(lemma) ||
		StatusWords.Has(lemma) ||
		StyleWords.Has(lemma)
}

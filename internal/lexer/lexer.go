// Package lexer normalizes raw utterances and turns them into tagged tokens.
// It is the leaf of the inference pipeline: pure functions, no state, no I/O.
//
// Tagging is a layered heuristic cascade and the layer order is behaviorally
// significant: closed-class lexicon membership is checked before local context,
// and local context before suffix shape. Reordering the layers changes tags.
package lexer

import (
	"regexp"
	"strings"

	"appwright/internal/lexicon"
)

// =============================================================================
// TOKEN
// =============================================================================

// PartOfSpeech is the coarse tag assigned to each token.
type PartOfSpeech string

const (
	POSNoun      PartOfSpeech = "noun"
	POSVerb      PartOfSpeech = "verb"
	POSAdjective PartOfSpeech = "adjective"
	POSNumber    PartOfSpeech = "number"
	POSStopWord  PartOfSpeech = "stopword"
	POSUnknown   PartOfSpeech = "unknown"
)

// Token is one tagged word of an utterance. Immutable once produced.
type Token struct {
	Text       string       `json:"text"`
	Lemma      string       `json:"lemma"`
	POS        PartOfSpeech `json:"pos"`
	Position   int          `json:"position"`
	Importance float64      `json:"importance"`
}

// =============================================================================
// NORMALIZATION
// =============================================================================

var (
	// Characters allowed to survive normalization. Keeps the punctuation the
	// downstream extractors rely on: $ for money, / and - for dates, : for
	// times, ' for contractions.
	unsafeChars = regexp.MustCompile(`[^a-z0-9\s.,!?'"$/:\-@&%+]`)
	multiSpace  = regexp.MustCompile(`\s+`)
	curlyQuotes = strings.NewReplacer(
		"‘", "'", "’", "'",
		"“", `"`, "”", `"`,
	)
)

// Normalize lowercases, unifies quote characters, strips unsafe characters and
// collapses whitespace. Idempotent and total: it never fails.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = curlyQuotes.Replace(s)
	s = unsafeChars.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// =============================================================================
// TOKENIZATION
// =============================================================================

var numericLiteral = regexp.MustCompile(`^\$?\d+(?:[.:/\-]\d+)*%?$`)

// Tokenize splits normalized text into tagged tokens. The input is normalized
// first, so callers may pass raw text.
func Tokenize(text string) []Token {
	words := strings.Fields(Normalize(text))
	tokens := make([]Token, 0, len(words))

	for i, raw := range words {
		word := strings.Trim(raw, `.,!?;:'"`)
		if word == "" {
			continue
		}

		var prev string
		if i > 0 {
			prev = strings.Trim(words[i-1], `.,!?;:'"`)
		}

		lemma := Lemma(word)
		pos := tagPOS(word, lemma, prev)

		tokens = append(tokens, Token{
			Text:       word,
			Lemma:      lemma,
			POS:        pos,
			Position:   len(tokens),
			Importance: importance(word, lemma, pos),
		})
	}

	return tokens
}

// Lemma reduces an inflected word to its base form. Irregular forms are looked
// up first; regular forms fall through suffix-stripping rules.
func Lemma(word string) string {
	if base, ok := lexicon.IrregularLemmas[word]; ok {
		return base
	}

	switch {
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		stem := word[:len(word)-3]
		// doubled final consonant: running -> run
		if len(stem) > 2 && stem[len(stem)-1] == stem[len(stem)-2] && !isVowel(stem[len(stem)-1]) {
			stem = stem[:len(stem)-1]
		}
		return stem
	case strings.HasSuffix(word, "ied") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ed") && len(word) > 4:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "sses") && len(word) > 5:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "xes") || strings.HasSuffix(word, "ches") || strings.HasSuffix(word, "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && len(word) > 3 && !strings.HasSuffix(word, "ss") && !strings.HasSuffix(word, "us"):
		return word[:len(word)-1]
	}
	return word
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// tagPOS assigns the coarse part of speech. Layer order is load-bearing:
//
//	1. closed-class lexicons (verbs, adjectives, stop words)
//	2. numeric literal shape
//	3. local context (intensifier/modal/determiner before this token)
//	4. suffix shape
//	5. default noun, else unknown
func tagPOS(word, lemma, prev string) PartOfSpeech {
	// 1. closed-class lexicons. Surface form is consulted alongside the lemma
	// because the adjective lexicons hold inflected entries ("completed").
	if lexicon.ActionVerbs.Has(lemma) {
		return POSVerb
	}
	if lexicon.AdjectiveOf(lemma) || lexicon.AdjectiveOf(word) {
		return POSAdjective
	}
	if lexicon.StopWords.Has(word) {
		return POSStopWord
	}

	// 2. numeric literal
	if numericLiteral.MatchString(word) {
		return POSNumber
	}

	// 3. local context
	if prev != "" {
		switch {
		case lexicon.Intensifiers.Has(prev):
			return POSAdjective
		case lexicon.Modals.Has(prev):
			return POSVerb
		case lexicon.Determiners.Has(prev):
			return POSNoun
		}
	}

	// 4. suffix shape
	switch {
	case strings.HasSuffix(word, "tion"), strings.HasSuffix(word, "ment"), strings.HasSuffix(word, "ness"):
		return POSNoun
	case strings.HasSuffix(word, "ful"), strings.HasSuffix(word, "ous"),
		strings.HasSuffix(word, "ive"), strings.HasSuffix(word, "able"):
		return POSAdjective
	}

	// 5. default
	if len(word) > 2 && !lexicon.StopWords.Has(word) {
		return POSNoun
	}
	return POSUnknown
}

// importance scores token salience in [0,1]. The arithmetic mirrors the tag:
// content words rise, glue words sink, long rare words get a nudge.
func importance(word, lemma string, pos PartOfSpeech) float64 {
	score := 0.5

	switch pos {
	case POSNoun:
		score += 0.3
	case POSVerb:
		score += 0.2
	case POSAdjective:
		score += 0.1
	}

	if lexicon.ActionVerbs.Has(lemma) {
		score += 0.2
	}
	if lexicon.StopWords.Has(word) {
		score -= 0.4
	}
	if len(word) > 6 {
		score += 0.1
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

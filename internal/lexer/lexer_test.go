package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("lowercases and collapses whitespace", func(t *testing.T) {
		assert.Equal(t, "build me an app", Normalize("  Build   Me an APP  "))
	})

	t.Run("unifies curly quotes", func(t *testing.T) {
		assert.Equal(t, `don't say "hi"`, Normalize("Don’t say “hi”"))
	})

	t.Run("strips unsafe characters", func(t *testing.T) {
		assert.Equal(t, "track jobs weekly", Normalize("track jobs ~ weekly*"))
	})

	t.Run("keeps money date and time punctuation", func(t *testing.T) {
		assert.Equal(t, "$50 on 3/14/2024 at 9:30am", Normalize("$50 on 3/14/2024 at 9:30am"))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := []string{
			"I need an App for my PLUMBING business!!",
			"  “weird”   spacing\tand\ttabs ",
			"",
		}
		for _, in := range inputs {
			once := Normalize(in)
			assert.Equal(t, once, Normalize(once), "input %q", in)
		}
	})
}

func TestLemma(t *testing.T) {
	cases := map[string]string{
		"running":   "run",
		"tracking":  "track",
		"invoices":  "invoice",
		"companies": "company",
		"tried":     "try",
		"booked":    "book",
		"built":     "build",
		"sent":      "send",
		"was":       "be",
		"boxes":     "box",
		"job":       "job",
	}
	for word, want := range cases {
		assert.Equal(t, want, Lemma(word), "lemma of %q", word)
	}
}

func TestTokenizePOSOrdering(t *testing.T) {
	t.Run("lexicon beats suffix", func(t *testing.T) {
		// "notification" ends in -tion but "creative" ends in -ive; a known
		// action verb must win over any suffix rule.
		toks := Tokenize("create a notification")
		require.Len(t, toks, 3)
		assert.Equal(t, POSVerb, toks[0].POS)
		assert.Equal(t, POSStopWord, toks[1].POS)
		assert.Equal(t, POSNoun, toks[2].POS)
	})

	t.Run("context after intensifier tags adjective", func(t *testing.T) {
		toks := Tokenize("very shiny")
		require.Len(t, toks, 2)
		assert.Equal(t, POSAdjective, toks[1].POS)
	})

	t.Run("context after modal tags verb", func(t *testing.T) {
		toks := Tokenize("should ping")
		require.Len(t, toks, 2)
		assert.Equal(t, POSVerb, toks[1].POS)
	})

	t.Run("context after determiner tags noun", func(t *testing.T) {
		toks := Tokenize("the widget")
		require.Len(t, toks, 2)
		assert.Equal(t, POSNoun, toks[1].POS)
	})

	t.Run("numeric literal", func(t *testing.T) {
		toks := Tokenize("5 technicians")
		require.Len(t, toks, 2)
		assert.Equal(t, POSNumber, toks[0].POS)
	})

	t.Run("short unknown token", func(t *testing.T) {
		toks := Tokenize("xy")
		require.Len(t, toks, 1)
		assert.Equal(t, POSUnknown, toks[0].POS)
	})
}

func TestTokenizeImportance(t *testing.T) {
	t.Run("stop words sink", func(t *testing.T) {
		toks := Tokenize("the")
		require.Len(t, toks, 1)
		assert.InDelta(t, 0.1, toks[0].Importance, 1e-9)
	})

	t.Run("long nouns rise", func(t *testing.T) {
		toks := Tokenize("appointments")
		require.Len(t, toks, 1)
		assert.InDelta(t, 0.9, toks[0].Importance, 1e-9)
	})

	t.Run("action verbs get the verb and lexicon bonus", func(t *testing.T) {
		toks := Tokenize("track")
		require.Len(t, toks, 1)
		assert.InDelta(t, 0.9, toks[0].Importance, 1e-9)
	})

	t.Run("clamped to one", func(t *testing.T) {
		// noun +0.3, length +0.1 cannot exceed 1 regardless of bonuses
		for _, tok := range Tokenize("schedule appointments automatically") {
			assert.LessOrEqual(t, tok.Importance, 1.0)
			assert.GreaterOrEqual(t, tok.Importance, 0.0)
		}
	})
}

func TestTokenizeDeterminism(t *testing.T) {
	in := "I need an app to track 12 jobs for my plumbing business"
	first := Tokenize(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Tokenize(in))
	}
}

func TestTokenizePositions(t *testing.T) {
	toks := Tokenize("send invoices weekly")
	require.Len(t, toks, 3)
	for i, tok := range toks {
		assert.Equal(t, i, tok.Position)
	}
}

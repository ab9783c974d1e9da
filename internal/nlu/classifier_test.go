package nlu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appwright/internal/lexer"
)

func detect(text string) Intent {
	normalized := lexer.Normalize(text)
	return DetectIntent(normalized, lexer.Tokenize(normalized))
}

func TestDetectIntent(t *testing.T) {
	t.Run("add a calendar feature", func(t *testing.T) {
		got := detect("Add a calendar feature")
		assert.Equal(t, IntentAddFeature, got.Type)
		assert.Equal(t, 1.0, got.Confidence)
	})

	t.Run("build me an app", func(t *testing.T) {
		got := detect("Build me an app for my bakery")
		assert.Equal(t, IntentCreateApp, got.Type)
		assert.Equal(t, 1.0, got.Confidence)
	})

	t.Run("i need an app", func(t *testing.T) {
		got := detect("I need an app for my plumbing business")
		assert.Equal(t, IntentCreateApp, got.Type)
		assert.Equal(t, 0.9, got.Confidence)
	})

	t.Run("remove", func(t *testing.T) {
		got := detect("remove the calendar")
		assert.Equal(t, IntentRemoveFeature, got.Type)
		assert.Equal(t, 0.9, got.Confidence)
	})

	t.Run("design change", func(t *testing.T) {
		got := detect("make it look more modern")
		assert.Equal(t, IntentChangeDesign, got.Type)
	})

	t.Run("verb fallback when no rule matches", func(t *testing.T) {
		// No rule pattern fires here, but the bare verb lemma does.
		got := detect("build something amazing")
		assert.Equal(t, IntentCreateApp, got.Type)
		assert.Equal(t, 0.7, got.Confidence)
	})

	t.Run("default when nothing matches", func(t *testing.T) {
		got := detect("birds and sunshine")
		assert.Equal(t, IntentCreateApp, got.Type)
		assert.Equal(t, 0.5, got.Confidence)
	})
}

func TestDetectSemanticIntents(t *testing.T) {
	t.Run("multiple categories co-occur", func(t *testing.T) {
		got := DetectSemanticIntents("track my jobs and send invoices to customers")
		assert.Contains(t, got, SemanticTracking)
		assert.Contains(t, got, SemanticBilling)
	})

	t.Run("no duplicates", func(t *testing.T) {
		got := DetectSemanticIntents("track tracking tracked")
		count := 0
		for _, s := range got {
			if s == SemanticTracking {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("empty for empty text", func(t *testing.T) {
		assert.Empty(t, DetectSemanticIntents(""))
	})
}

func TestExtractEntities(t *testing.T) {
	t.Run("money date time quantity", func(t *testing.T) {
		ents := ExtractEntities("charge $150 on 3/14/2024 at 9:30am after 2 hours")
		byType := map[EntityType]string{}
		for _, e := range ents {
			byType[e.Type] = e.Value
			assert.Equal(t, 0.8, e.Confidence)
			assert.Equal(t, e.Value, "charge $150 on 3/14/2024 at 9:30am after 2 hours"[e.Start:e.End])
		}
		assert.Equal(t, "$150", byType[EntityMoney])
		assert.Equal(t, "3/14/2024", byType[EntityDate])
		assert.Equal(t, "9:30am", byType[EntityTime])
		assert.Equal(t, "2 hours", byType[EntityQuantity])
	})

	t.Run("person names need original capitalization", func(t *testing.T) {
		ents := ExtractEntities("assign the job to Maria Lopez")
		require.NotEmpty(t, ents)
		assert.Equal(t, EntityPerson, ents[0].Type)
		assert.Equal(t, "Maria Lopez", ents[0].Value)
	})

	t.Run("nothing in plain text", func(t *testing.T) {
		assert.Empty(t, ExtractEntities("track my jobs"))
	})
}

func TestExtractModifiers(t *testing.T) {
	t.Run("priority binds following token", func(t *testing.T) {
		mods := ExtractModifiers(lexer.Tokenize("urgent jobs first"))
		require.NotEmpty(t, mods)
		assert.Equal(t, ModPriority, mods[0].Kind)
		assert.Equal(t, "urgent", mods[0].Value)
		assert.Equal(t, "jobs", mods[0].Target)
	})

	t.Run("trailing modifier has no target", func(t *testing.T) {
		mods := ExtractModifiers(lexer.Tokenize("mark it completed"))
		require.NotEmpty(t, mods)
		last := mods[len(mods)-1]
		assert.Equal(t, ModStatus, last.Kind)
		assert.Empty(t, last.Target)
	})

	t.Run("time modifiers do not bind", func(t *testing.T) {
		mods := ExtractModifiers(lexer.Tokenize("weekly reports"))
		require.NotEmpty(t, mods)
		assert.Equal(t, ModTime, mods[0].Kind)
		assert.Empty(t, mods[0].Target)
	})
}

func TestExtractPhrases(t *testing.T) {
	t.Run("flushes run on stop word", func(t *testing.T) {
		got := ExtractPhrases(lexer.Tokenize("customer appointments for service technicians"))
		want := []string{"customer appointments", "service technicians"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("phrases mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("single salient token is not a phrase", func(t *testing.T) {
		assert.Empty(t, ExtractPhrases(lexer.Tokenize("the invoice")))
	})
}

func TestParseComposition(t *testing.T) {
	p := Parse("I need an app to track urgent jobs and send invoices weekly")

	assert.Equal(t, "i need an app to track urgent jobs and send invoices weekly", p.Normalized)
	assert.Equal(t, IntentCreateApp, p.Intent.Type)
	assert.Contains(t, p.ActionVerbs, "track")
	assert.Contains(t, p.ActionVerbs, "send")
	assert.Contains(t, p.Nouns, "job")
	assert.True(t, p.HasSemantic(SemanticTracking))
	assert.True(t, p.HasSemantic(SemanticBilling))

	var kinds []ModifierKind
	for _, m := range p.Modifiers {
		kinds = append(kinds, m.Kind)
	}
	assert.Contains(t, kinds, ModPriority)
	assert.Contains(t, kinds, ModTime)
}

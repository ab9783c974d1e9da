package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateFromInputPlumbingScenario(t *testing.T) {
	l := UpdateFromInput(NewLedger(), "I need an app for my plumbing business with 5 technicians", nil)

	t.Run("industry inferred from activity word", func(t *testing.T) {
		assert.Equal(t, "plumber", l.Industry.Value)
		assert.GreaterOrEqual(t, l.Industry.Confidence, 0.6)
		assert.Equal(t, SourceInferred, l.Industry.Source)
	})

	t.Run("team size caught by unit word", func(t *testing.T) {
		assert.Equal(t, 5, l.TeamSize.Value)
		assert.Equal(t, 0.9, l.TeamSize.Confidence)
	})

	t.Run("scale degrades to bare number", func(t *testing.T) {
		// "technicians" is not a scale unit, so the detector falls back to the
		// unlabelled number at reduced confidence.
		assert.Equal(t, "5", l.Scale.Value)
		assert.Equal(t, 0.5, l.Scale.Confidence)
		assert.Equal(t, SourceInferred, l.Scale.Source)
	})

	t.Run("entities still a gap", func(t *testing.T) {
		assert.Contains(t, l.Gaps, SlotPrimaryEntities)
		assert.NotContains(t, l.Gaps, SlotIndustry)
	})
}

func TestUpdateFromInputExplicitIndustry(t *testing.T) {
	l := UpdateFromInput(NewLedger(), "I'm a plumber and I fix leaks", nil)
	assert.Equal(t, "plumber", l.Industry.Value)
	assert.Equal(t, SourceExplicit, l.Industry.Source, "occupation noun plus activity word crosses the explicit weight")
	assert.InDelta(t, 0.9, l.Industry.Confidence, 1e-9)
}

func TestUpdateFromInputIndustryConfidenceCap(t *testing.T) {
	l := UpdateFromInput(NewLedger(), "plumber plumbing pipe drain leak water heater", nil)
	assert.Equal(t, 0.95, l.Industry.Confidence)
}

func TestUpdateFromInputScaleUnits(t *testing.T) {
	l := UpdateFromInput(NewLedger(), "we serve about 40 customers a month", nil)
	assert.Equal(t, "40 customers", l.Scale.Value)
	assert.Equal(t, 0.9, l.Scale.Confidence)
	assert.Equal(t, SourceExplicit, l.Scale.Source)
}

func TestUpdateFromInputSoloTeam(t *testing.T) {
	l := UpdateFromInput(NewLedger(), "it's just me running a tutoring business", nil)
	assert.Equal(t, 1, l.TeamSize.Value)
	assert.Equal(t, "tutor", l.Industry.Value)
}

func TestUpdateFromInputCustomerFacing(t *testing.T) {
	l := UpdateFromInput(NewLedger(), "customers can book appointments online", nil)
	assert.True(t, l.CustomerFacing.Value)
	assert.Equal(t, SourceInferred, l.CustomerFacing.Source)
}

func TestUpdateFromInputSubVertical(t *testing.T) {
	l := UpdateFromInput(NewLedger(), "I run a salon doing nails and manicures", nil)
	require.Equal(t, "salon", l.Industry.Value)
	assert.Equal(t, "nails", l.SubVertical.Value)
	assert.NotContains(t, l.Gaps, SlotSubVertical)
}

func testKit() *IndustryKit {
	return &IndustryKit{
		ID:                    "plumber",
		Name:                  "Plumbing",
		Entities:              []string{"job", "customer", "invoice"},
		Workflows:             []string{"job-intake", "invoice-on-completion"},
		SuggestedIntegrations: []string{"Stripe", "QuickBooks"},
		FeatureBundle:         FeatureBundle{Recommended: []string{"appointments", "invoicing"}},
	}
}

func TestUpdateFromInputWithKit(t *testing.T) {
	l := UpdateFromInput(NewLedger(), "help me run my shop", testKit())

	t.Run("industry taken from kit", func(t *testing.T) {
		assert.Equal(t, "plumber", l.Industry.Value)
		assert.Equal(t, 0.95, l.Industry.Confidence)
		assert.Equal(t, SourceExplicit, l.Industry.Source)
	})

	t.Run("entities and workflows discounted", func(t *testing.T) {
		assert.Equal(t, []string{"job", "customer", "invoice"}, l.PrimaryEntities.Value)
		assert.InDelta(t, 0.95*0.9, l.PrimaryEntities.Confidence, 1e-9)
		assert.InDelta(t, 0.95*0.85, l.Workflows.Confidence, 1e-9)
		assert.Equal(t, SourceInferred, l.PrimaryEntities.Source)
	})

	t.Run("integrations assumed when not mentioned", func(t *testing.T) {
		assert.Equal(t, []string{"Stripe", "QuickBooks"}, l.Integrations.Value)
		assert.Equal(t, 0.5, l.Integrations.Confidence)
		assert.Equal(t, SourceAssumed, l.Integrations.Source)
	})

	t.Run("suggestions carry the kit bundle", func(t *testing.T) {
		assert.Contains(t, l.Suggestions, "appointments")
		assert.Contains(t, l.Suggestions, "invoicing")
	})

	t.Run("kit closes the critical gaps", func(t *testing.T) {
		assert.Empty(t, l.Gaps)
		assert.True(t, l.ReadyToBuild())
	})
}

func TestUpdateFromInputKitIntegrationMentioned(t *testing.T) {
	l := UpdateFromInput(NewLedger(), "I want to take payments with stripe", testKit())
	assert.Equal(t, []string{"Stripe"}, l.Integrations.Value)
	assert.Equal(t, 0.85, l.Integrations.Confidence)
	assert.Equal(t, SourceExplicit, l.Integrations.Source)
}

func TestUpdateFromInputEmptyKitListsMergeNothing(t *testing.T) {
	kit := &IndustryKit{ID: "plumber", Name: "Plumbing"}
	l := UpdateFromInput(NewLedger(), "whatever", kit)
	assert.Empty(t, l.PrimaryEntities.Value)
	assert.Empty(t, l.Workflows.Value)
	assert.Empty(t, l.Integrations.Value)
	assert.Contains(t, l.Gaps, SlotPrimaryEntities)
}

func TestUpdateFromInputEmptyUtterance(t *testing.T) {
	before := NewLedger()
	after := UpdateFromInput(before, "", nil)
	assert.Equal(t, before.Gaps, after.Gaps)
	assert.Zero(t, after.OverallReadiness)
}

func TestMultiTurnAccumulation(t *testing.T) {
	l := NewLedger()
	l = UpdateFromInput(l, "I have a plumbing business", nil)
	l = UpdateFromInput(l, "we handle 25 jobs a week with 4 technicians", nil)

	assert.Equal(t, "plumber", l.Industry.Value)
	assert.Equal(t, "25 jobs a week", l.Scale.Value)
	assert.Equal(t, 4, l.TeamSize.Value)
}

func TestLoadKit(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kit.yaml")
		data := []byte(`id: salon
name: Hair Salon
entities: [appointment, client]
workflows: [booking]
suggestedIntegrations: [Square]
featureBundle:
  recommended: [appointments]
`)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		kit, err := LoadKit(path)
		require.NoError(t, err)
		assert.Equal(t, "salon", kit.ID)
		assert.Equal(t, []string{"appointment", "client"}, kit.Entities)
		assert.Equal(t, []string{"appointments"}, kit.FeatureBundle.Recommended)
	})

	t.Run("missing id rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kit.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: nameless"), 0o644))
		_, err := LoadKit(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadKit(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

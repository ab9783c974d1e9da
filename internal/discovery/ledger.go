// Package discovery maintains the certainty ledger: a confidence-scored
// knowledge base of what the system believes about the business being
// described, built up one utterance at a time.
//
// The ledger is an immutable value. Every update constructs a new ledger and
// recomputes the derived gap list and readiness score; callers keep old values
// for undo and audit. No locking is needed as long as callers do not alias a
// single ledger across concurrent update calls.
package discovery

// Source records how a slot value was established.
type Source string

const (
	SourceExplicit Source = "explicit"
	SourceInferred Source = "inferred"
	SourceAssumed  Source = "assumed"
	SourceDefault  Source = "default"
)

// SlotID names a ledger slot.
type SlotID string

const (
	SlotIndustry        SlotID = "industry"
	SlotSubVertical     SlotID = "subVertical"
	SlotPrimaryEntities SlotID = "primaryEntities"
	SlotWorkflows       SlotID = "workflows"
	SlotIntegrations    SlotID = "integrations"
	SlotScale           SlotID = "scale"
	SlotTeamSize        SlotID = "teamSize"
	SlotCustomerFacing  SlotID = "customerFacing"
	SlotComplexity      SlotID = "complexity"
)

// criticalSlots must be resolved before generation can proceed.
var criticalSlots = []SlotID{SlotIndustry, SlotPrimaryEntities}

// refinementSlots sharpen the result but never block it.
var refinementSlots = []SlotID{SlotScale, SlotTeamSize, SlotIntegrations, SlotComplexity, SlotSubVertical}

// Slot is one confidence-tracked fact.
type Slot[T any] struct {
	Value      T        `json:"value"`
	Confidence float64  `json:"confidence"`
	Source     Source   `json:"source"`
	Evidence   []string `json:"evidence,omitempty"`
}

// newSlot builds a slot with the confidence clamped to [0,1].
func newSlot[T any](value T, confidence float64, source Source, evidence []string) Slot[T] {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Slot[T]{Value: value, Confidence: confidence, Source: source, Evidence: evidence}
}

// Ledger is the full slot set plus derived fields. Derived fields (Gaps,
// Suggestions, OverallReadiness) are pure functions of the slots and are
// recomputed on every mutation; they are never written independently.
type Ledger struct {
	Industry        Slot[string]   `json:"industry"`
	SubVertical     Slot[string]   `json:"subVertical"`
	PrimaryEntities Slot[[]string] `json:"primaryEntities"`
	Workflows       Slot[[]string] `json:"workflows"`
	Integrations    Slot[[]string] `json:"integrations"`
	Scale           Slot[string]   `json:"scale"`
	TeamSize        Slot[int]      `json:"teamSize"`
	CustomerFacing  Slot[bool]     `json:"customerFacing"`
	Complexity      Slot[string]   `json:"complexity"`

	Gaps             []SlotID `json:"gaps"`
	Suggestions      []string `json:"suggestions,omitempty"`
	OverallReadiness float64  `json:"overallReadiness"`
}

// NewLedger returns the empty ledger: every slot at zero confidence and both
// critical slots listed as gaps.
func NewLedger() Ledger {
	l := Ledger{
		Industry:        Slot[string]{Source: SourceDefault},
		SubVertical:     Slot[string]{Source: SourceDefault},
		PrimaryEntities: Slot[[]string]{Source: SourceDefault},
		Workflows:       Slot[[]string]{Source: SourceDefault},
		Integrations:    Slot[[]string]{Source: SourceDefault},
		Scale:           Slot[string]{Source: SourceDefault},
		TeamSize:        Slot[int]{Source: SourceDefault},
		CustomerFacing:  Slot[bool]{Source: SourceDefault},
		Complexity:      Slot[string]{Source: SourceDefault},
	}
	return l.recompute()
}

// =============================================================================
// SLOT UPDATES (copy-on-write)
// =============================================================================

// WithIndustry returns a new ledger with the industry slot replaced.
func (l Ledger) WithIndustry(value string, confidence float64, source Source, evidence ...string) Ledger {
	l.Industry = newSlot(value, confidence, source, evidence)
	return l.recompute()
}

// WithSubVertical returns a new ledger with the sub-vertical slot replaced.
func (l Ledger) WithSubVertical(value string, confidence float64, source Source, evidence ...string) Ledger {
	l.SubVertical = newSlot(value, confidence, source, evidence)
	return l.recompute()
}

// WithPrimaryEntities returns a new ledger with the primary-entities slot replaced.
func (l Ledger) WithPrimaryEntities(value []string, confidence float64, source Source, evidence ...string) Ledger {
	l.PrimaryEntities = newSlot(value, confidence, source, evidence)
	return l.recompute()
}

// WithWorkflows returns a new ledger with the workflows slot replaced.
func (l Ledger) WithWorkflows(value []string, confidence float64, source Source, evidence ...string) Ledger {
	l.Workflows = newSlot(value, confidence, source, evidence)
	return l.recompute()
}

// WithIntegrations returns a new ledger with the integrations slot replaced.
func (l Ledger) WithIntegrations(value []string, confidence float64, source Source, evidence ...string) Ledger {
	l.Integrations = newSlot(value, confidence, source, evidence)
	return l.recompute()
}

// WithScale returns a new ledger with the scale slot replaced.
func (l Ledger) WithScale(value string, confidence float64, source Source, evidence ...string) Ledger {
	l.Scale = newSlot(value, confidence, source, evidence)
	return l.recompute()
}

// WithTeamSize returns a new ledger with the team-size slot replaced.
func (l Ledger) WithTeamSize(value int, confidence float64, source Source, evidence ...string) Ledger {
	l.TeamSize = newSlot(value, confidence, source, evidence)
	return l.recompute()
}

// WithCustomerFacing returns a new ledger with the customer-facing slot replaced.
func (l Ledger) WithCustomerFacing(value bool, confidence float64, source Source, evidence ...string) Ledger {
	l.CustomerFacing = newSlot(value, confidence, source, evidence)
	return l.recompute()
}

// WithComplexity returns a new ledger with the complexity slot replaced.
func (l Ledger) WithComplexity(value string, confidence float64, source Source, evidence ...string) Ledger {
	l.Complexity = newSlot(value, confidence, source, evidence)
	return l.recompute()
}

// =============================================================================
// DERIVED FIELDS
// =============================================================================

// slotWeights for readiness: the critical slots jointly contribute 70%, the
// refinement slots the remaining 30%, each group split evenly.
const (
	criticalShare   = 0.7
	refinementShare = 0.3
)

// recompute refreshes Gaps and OverallReadiness. Idempotent.
func (l Ledger) recompute() Ledger {
	l.Gaps = l.computeGaps()
	l.OverallReadiness = l.computeReadiness()
	return l
}

// gapThreshold is the confidence below which a slot still counts as missing.
const gapThreshold = 0.5

// computeGaps lists the slots still blocking generation. A critical slot is a
// gap while its value is empty or its confidence is below the threshold. The
// sub-vertical becomes a gap once the industry is confidently known and is one
// of the industries that define sub-verticals.
func (l Ledger) computeGaps() []SlotID {
	var gaps []SlotID

	if l.Industry.Value == "" || l.Industry.Confidence < gapThreshold {
		gaps = append(gaps, SlotIndustry)
	}
	if len(l.PrimaryEntities.Value) == 0 || l.PrimaryEntities.Confidence < gapThreshold {
		gaps = append(gaps, SlotPrimaryEntities)
	}

	if l.Industry.Confidence >= gapThreshold &&
		hasSubVerticals(l.Industry.Value) &&
		l.SubVertical.Confidence < gapThreshold {
		gaps = append(gaps, SlotSubVertical)
	}

	return gaps
}

// computeReadiness blends slot confidences into one [0,1] score. A slot only
// contributes when it holds a value.
func (l Ledger) computeReadiness() float64 {
	criticalWeight := criticalShare / float64(len(criticalSlots))
	refinementWeight := refinementShare / float64(len(refinementSlots))

	var score float64
	if l.Industry.Value != "" {
		score += l.Industry.Confidence * criticalWeight
	}
	if len(l.PrimaryEntities.Value) > 0 {
		score += l.PrimaryEntities.Confidence * criticalWeight
	}

	if l.Scale.Value != "" {
		score += l.Scale.Confidence * refinementWeight
	}
	if l.TeamSize.Value > 0 {
		score += l.TeamSize.Confidence * refinementWeight
	}
	if len(l.Integrations.Value) > 0 {
		score += l.Integrations.Confidence * refinementWeight
	}
	if l.Complexity.Value != "" {
		score += l.Complexity.Confidence * refinementWeight
	}
	if l.SubVertical.Value != "" {
		score += l.SubVertical.Confidence * refinementWeight
	}

	maxScore := criticalShare + refinementShare
	readiness := score / maxScore
	if readiness > 1 {
		return 1
	}
	return readiness
}

// =============================================================================
// READY TO BUILD
// =============================================================================

// Ready-to-build gates. Three independent thresholds; all must pass.
const (
	readyIndustryConfidence = 0.7
	readyMinReadiness       = 0.6
)

// ReadyToBuild reports whether discovery has gathered enough to hand off to
// generation, using the calibrated default gates.
func (l Ledger) ReadyToBuild() bool {
	return l.ReadyToBuildAt(readyIndustryConfidence, readyMinReadiness)
}

// ReadyToBuildAt applies caller-supplied gates (see config.DiscoveryConfig).
// The primary-entities gate is structural and not tunable: with no entities
// there is nothing to generate.
func (l Ledger) ReadyToBuildAt(minIndustryConfidence, minReadiness float64) bool {
	if l.Industry.Confidence < minIndustryConfidence {
		return false
	}
	if len(l.PrimaryEntities.Value) == 0 {
		return false
	}
	return l.OverallReadiness >= minReadiness
}

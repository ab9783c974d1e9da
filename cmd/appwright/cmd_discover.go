package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"appwright/internal/discovery"
)

var kitPath string

// discoverCmd folds utterances into a certainty ledger
var discoverCmd = &cobra.Command{
	Use:   "discover [utterance]...",
	Short: "Run discovery turns against the certainty ledger",
	Long: `Folds each utterance, in order, into a fresh certainty ledger and prints
the resulting slots, gaps and readiness.

With --kit, an industry kit YAML file short-circuits industry detection and
seeds entities, workflows and integration suggestions.

Example:
  appwright discover "I run a plumbing business" "we have 5 technicians"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVarP(&kitPath, "kit", "k", "", "Industry kit YAML file")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	var kit *discovery.IndustryKit
	if kitPath != "" {
		var err error
		if kit, err = discovery.LoadKit(kitPath); err != nil {
			return fmt.Errorf("failed to load industry kit: %w", err)
		}
	}

	ledger := discovery.NewLedger()
	for _, utterance := range args {
		ledger = discovery.UpdateFromInput(ledger, utterance, kit)
	}

	if jsonOut {
		return printJSON(ledger)
	}
	renderLedger(ledger)
	return nil
}

func renderLedger(l discovery.Ledger) {
	heading("Certainty Ledger")

	renderSlot("Industry", l.Industry.Value, l.Industry.Confidence, string(l.Industry.Source))
	renderSlot("Sub-vertical", l.SubVertical.Value, l.SubVertical.Confidence, string(l.SubVertical.Source))
	renderSlot("Entities", strings.Join(l.PrimaryEntities.Value, ", "), l.PrimaryEntities.Confidence, string(l.PrimaryEntities.Source))
	renderSlot("Workflows", strings.Join(l.Workflows.Value, ", "), l.Workflows.Confidence, string(l.Workflows.Source))
	renderSlot("Integrations", strings.Join(l.Integrations.Value, ", "), l.Integrations.Confidence, string(l.Integrations.Source))
	renderSlot("Scale", l.Scale.Value, l.Scale.Confidence, string(l.Scale.Source))
	if l.TeamSize.Value > 0 {
		renderSlot("Team size", fmt.Sprintf("%d", l.TeamSize.Value), l.TeamSize.Confidence, string(l.TeamSize.Source))
	}
	if l.CustomerFacing.Value {
		renderSlot("Customer-facing", "yes", l.CustomerFacing.Confidence, string(l.CustomerFacing.Source))
	}

	fmt.Println()
	if len(l.Gaps) > 0 {
		labels := make([]string, len(l.Gaps))
		for i, g := range l.Gaps {
			labels[i] = string(g)
		}
		row("Gaps", warnStyle.Render(strings.Join(labels, ", ")))
	}
	for _, s := range l.Suggestions {
		row("Suggestion", s)
	}
	row("Readiness", confidenceBar(l.OverallReadiness))

	ready := l.ReadyToBuildAt(cfg.Discovery.MinIndustryConfidence, cfg.Discovery.MinReadiness)
	if ready {
		row("Ready to build", okStyle.Render("yes"))
	} else {
		row("Ready to build", warnStyle.Render("not yet"))
	}
}

func renderSlot(label, value string, conf float64, source string) {
	if value == "" {
		row(label, dimStyle.Render("—"))
		return
	}
	row(label, fmt.Sprintf("%s  %s %s", value, confidenceBar(conf), dimStyle.Render("("+source+")")))
}

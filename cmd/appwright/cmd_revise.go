package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"appwright/internal/revision"
)

var (
	appPath     string
	applyChange bool
)

// reviseCmd turns a revision request into a change list
var reviseCmd = &cobra.Command{
	Use:   "revise [utterance]",
	Short: "Translate a revision request into atomic changes",
	Long: `Matches an utterance like "remove the calendar" or "make it more modern"
against the revision pattern library and prints the resulting change list and
confirmation policy.

The --app file is a YAML description of the current application
(pages, entities, workflows, style). With --apply, the changes are applied and
the updated application is printed; changes that require confirmation are
never auto-applied.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRevise,
}

func init() {
	reviseCmd.Flags().StringVarP(&appPath, "app", "a", "", "YAML file describing the current application")
	reviseCmd.Flags().BoolVar(&applyChange, "apply", false, "Apply the changes and print the updated application")
}

func runRevise(cmd *cobra.Command, args []string) error {
	var ctx revision.AppContext
	if appPath != "" {
		data, err := os.ReadFile(appPath)
		if err != nil {
			return fmt.Errorf("failed to read app context: %w", err)
		}
		if err := yaml.Unmarshal(data, &ctx); err != nil {
			return fmt.Errorf("failed to parse app context: %w", err)
		}
	}

	eng := revision.NewEngineWithLimit(cfg.Revision.MaxAutoChanges)
	result := eng.ProcessRevision(strings.Join(args, " "), ctx)

	if applyChange && !result.RequiresConfirmation {
		next := revision.ApplyChanges(ctx, result.Changes)
		if jsonOut {
			return printJSON(next)
		}
		renderResult(result)
		fmt.Println()
		heading("Applied")
		for _, p := range next.Pages {
			row("Page", p.Name)
		}
		return nil
	}

	if jsonOut {
		return printJSON(result)
	}
	renderResult(result)
	if applyChange && result.RequiresConfirmation {
		fmt.Println()
		fmt.Println(warnStyle.Render("Not applied: this revision requires confirmation."))
	}
	return nil
}

func renderResult(r revision.Result) {
	heading("Revision: " + r.Intent)
	row("Confidence", confidenceBar(r.Confidence))
	for _, ch := range r.Changes {
		row("Change", fmt.Sprintf("%s %s %s: %s", ch.Type, ch.Target, ch.TargetID, ch.Description))
	}
	if r.RequiresConfirmation {
		row("Confirm", warnStyle.Render(r.ConfirmationMessage))
	} else {
		row("Confirm", okStyle.Render("not required"))
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"appwright/internal/nlu"
	"appwright/internal/workflow"
)

var (
	entitiesPath string
	featuresCSV  string
)

// inferCmd generates workflows from an utterance plus known entities
var inferCmd = &cobra.Command{
	Use:   "infer [utterance]",
	Short: "Infer automation workflows",
	Long: `Runs workflow inference for an utterance against the entities and enabled
features of an application under construction.

The --entities file is a YAML list of {id, name, pluralName, behaviors};
--features is a comma-separated list of enabled feature ids
(appointments, calendar, invoicing, quotes, reminders).

Example:
  appwright infer "when a job is done email the customer" --entities entities.yaml --features invoicing`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfer,
}

func init() {
	inferCmd.Flags().StringVarP(&entitiesPath, "entities", "e", "", "YAML file listing known entities")
	inferCmd.Flags().StringVar(&featuresCSV, "features", "", "Comma-separated enabled feature ids")
}

func runInfer(cmd *cobra.Command, args []string) error {
	var entities []workflow.Entity
	if entitiesPath != "" {
		data, err := os.ReadFile(entitiesPath)
		if err != nil {
			return fmt.Errorf("failed to read entities: %w", err)
		}
		if err := yaml.Unmarshal(data, &entities); err != nil {
			return fmt.Errorf("failed to parse entities: %w", err)
		}
	}

	var features []string
	for _, f := range strings.Split(featuresCSV, ",") {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}

	parsed := nlu.Parse(strings.Join(args, " "))
	eng := workflow.NewEngineWithThreshold(cfg.Workflow.MinPatternScore)
	workflows := eng.Infer(parsed, entities, features)

	if jsonOut {
		return printJSON(workflows)
	}

	heading(fmt.Sprintf("Inferred %d workflows", len(workflows)))
	for _, wf := range workflows {
		fmt.Println()
		row("Workflow", fmt.Sprintf("%s  %s", wf.Name, confidenceBar(wf.Confidence)))
		row("", dimStyle.Render(wf.ID))
		row("Trigger", describeTrigger(wf.Trigger))
		for _, step := range wf.Steps {
			row("Step", string(step.Action))
		}
	}
	return nil
}

func describeTrigger(t workflow.Trigger) string {
	switch t.Type {
	case workflow.TriggerSchedule:
		return fmt.Sprintf("schedule %s", t.Schedule)
	case workflow.TriggerRecordEvent:
		s := fmt.Sprintf("%s %s", t.EntityID, t.Event)
		if t.Condition != "" {
			s += " when " + t.Condition
		}
		return s
	default:
		return fmt.Sprintf("%s %s", t.Type, t.ComponentID)
	}
}

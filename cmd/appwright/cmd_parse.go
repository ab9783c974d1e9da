package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"appwright/internal/nlu"
)

var (
	parseFile string
	parseJobs int
)

// parseCmd classifies one or more utterances
var parseCmd = &cobra.Command{
	Use:   "parse [utterance]",
	Short: "Tokenize and classify an utterance",
	Long: `Runs the full classification chain on an utterance and prints the result:
primary intent, tokens with part-of-speech tags, semantic intents, named
entities, modifiers and salient phrases.

With --file, parses one utterance per line. Lines are parsed in parallel
(--jobs) but printed in input order; parsing is pure, so parallelism never
changes the output.`,
	Args: cobra.ArbitraryArgs,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseFile, "file", "f", "", "Read utterances from a file, one per line")
	parseCmd.Flags().IntVarP(&parseJobs, "jobs", "j", 4, "Parallel parse workers for --file")
}

func runParse(cmd *cobra.Command, args []string) error {
	if parseFile == "" {
		if len(args) == 0 {
			return fmt.Errorf("provide an utterance or --file")
		}
		parsed := nlu.Parse(strings.Join(args, " "))
		if jsonOut {
			return printJSON(parsed)
		}
		renderParsed(parsed)
		return nil
	}

	f, err := os.Open(parseFile)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", parseFile, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", parseFile, err)
	}

	results := make([]nlu.ParsedInput, len(lines))
	var g errgroup.Group
	g.SetLimit(parseJobs)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			results[i] = nlu.Parse(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(results)
	}
	for _, parsed := range results {
		renderParsed(parsed)
		fmt.Println()
	}
	return nil
}

func renderParsed(p nlu.ParsedInput) {
	heading("Parsed: " + p.Raw)
	row("Intent", fmt.Sprintf("%s  %s", p.Intent.Type, confidenceBar(p.Intent.Confidence)))

	if len(p.ActionVerbs) > 0 {
		row("Action verbs", strings.Join(p.ActionVerbs, ", "))
	}
	if len(p.Nouns) > 0 {
		row("Nouns", strings.Join(p.Nouns, ", "))
	}
	if len(p.Adjectives) > 0 {
		row("Adjectives", strings.Join(p.Adjectives, ", "))
	}
	if len(p.Phrases) > 0 {
		row("Phrases", strings.Join(p.Phrases, " | "))
	}

	if len(p.SemanticIntents) > 0 {
		labels := make([]string, len(p.SemanticIntents))
		for i, s := range p.SemanticIntents {
			labels[i] = string(s)
		}
		row("Semantics", strings.Join(labels, ", "))
	}
	for _, e := range p.Entities {
		row("Entity", fmt.Sprintf("%s %q [%d:%d]", e.Type, e.Value, e.Start, e.End))
	}
	for _, m := range p.Modifiers {
		v := string(m.Kind) + ":" + m.Value
		if m.Target != "" {
			v += " -> " + m.Target
		}
		row("Modifier", v)
	}
}

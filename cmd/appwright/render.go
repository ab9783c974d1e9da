package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Shared output styles.
var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(18)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func heading(s string) {
	fmt.Println(headingStyle.Render(s))
}

func row(label, value string) {
	fmt.Println(labelStyle.Render(label) + valueStyle.Render(value))
}

// confidenceBar renders a ten-cell bar for a [0,1] score.
func confidenceBar(conf float64) string {
	filled := int(conf*10 + 0.5)
	if filled > 10 {
		filled = 10
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	style := warnStyle
	if conf >= 0.7 {
		style = okStyle
	}
	return style.Render(bar) + dimStyle.Render(fmt.Sprintf(" %.2f", conf))
}

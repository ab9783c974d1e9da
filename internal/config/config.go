// Package config loads pipeline tuning knobs from YAML. Every knob defaults
// to the value the pipeline was calibrated with; a config file only overlays
// what it sets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all tunable thresholds of the inference pipeline.
type Config struct {
	Discovery DiscoveryConfig `yaml:"discovery"`
	Workflow  WorkflowConfig  `yaml:"workflow"`
	Revision  RevisionConfig  `yaml:"revision"`
}

// DiscoveryConfig gates the ready-to-build decision.
type DiscoveryConfig struct {
	// MinIndustryConfidence is the industry-slot confidence required before
	// generation may proceed.
	MinIndustryConfidence float64 `yaml:"min_industry_confidence"`

	// MinReadiness is the overall readiness floor for ready-to-build.
	MinReadiness float64 `yaml:"min_readiness"`
}

// WorkflowConfig tunes workflow inference.
type WorkflowConfig struct {
	// MinPatternScore is the score above which a library pattern is
	// instantiated.
	MinPatternScore float64 `yaml:"min_pattern_score"`
}

// RevisionConfig tunes the voice revision engine.
type RevisionConfig struct {
	// MaxAutoChanges is the change count above which a revision always
	// requires confirmation.
	MaxAutoChanges int `yaml:"max_auto_changes"`
}

// Default returns the calibrated defaults.
func Default() Config {
	return Config{
		Discovery: DiscoveryConfig{
			MinIndustryConfidence: 0.7,
			MinReadiness:          0.6,
		},
		Workflow: WorkflowConfig{
			MinPatternScore: 0.15,
		},
		Revision: RevisionConfig{
			MaxAutoChanges: 3,
		},
	}
}

// Load reads a YAML config file on top of the defaults. A missing path is not
// an error: the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

package discovery

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// IndustryKit is an external catalog entry describing the defaults for a
// business vertical. Consumed read-only; a kit with empty lists simply has
// nothing to merge.
type IndustryKit struct {
	ID                    string        `yaml:"id" json:"id"`
	Name                  string        `yaml:"name" json:"name"`
	Entities              []string      `yaml:"entities" json:"entities"`
	Workflows             []string      `yaml:"workflows" json:"workflows"`
	SuggestedIntegrations []string      `yaml:"suggestedIntegrations" json:"suggestedIntegrations"`
	FeatureBundle         FeatureBundle `yaml:"featureBundle" json:"featureBundle"`
}

// FeatureBundle carries the kit's recommended feature ids.
type FeatureBundle struct {
	Recommended []string `yaml:"recommended" json:"recommended"`
}

// LoadKit reads an industry kit from a YAML file.
func LoadKit(path string) (*IndustryKit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read industry kit: %w", err)
	}
	var kit IndustryKit
	if err := yaml.Unmarshal(data, &kit); err != nil {
		return nil, fmt.Errorf("failed to parse industry kit: %w", err)
	}
	if kit.ID == "" {
		return nil, fmt.Errorf("industry kit %s has no id", path)
	}
	return &kit, nil
}

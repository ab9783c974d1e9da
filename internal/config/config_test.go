package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.7, cfg.Discovery.MinIndustryConfidence)
	assert.Equal(t, 0.6, cfg.Discovery.MinReadiness)
	assert.Equal(t, 0.15, cfg.Workflow.MinPatternScore)
	assert.Equal(t, 3, cfg.Revision.MaxAutoChanges)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appwright.yaml")
	require.NoError(t, os.WriteFile(path, []byte("discovery:\n  min_readiness: 0.8\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.8, cfg.Discovery.MinReadiness)
	// untouched knobs keep defaults
	assert.Equal(t, 0.7, cfg.Discovery.MinIndustryConfidence)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

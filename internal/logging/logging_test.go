package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() {
		Get(CategoryNLU).Debug("should go nowhere")
	})
}

func TestSetLoggerRoutesByCategory(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Get(CategoryDiscovery).Debug("slot updated")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "discovery", entries[0].LoggerName)
	assert.Equal(t, "slot updated", entries[0].Message)
}

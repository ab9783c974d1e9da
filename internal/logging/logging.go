// Package logging hands out per-subsystem zap loggers. The pipeline packages
// log classification decisions at debug level through these; the default
// backing logger is a nop so the library stays silent unless a front end
// installs a real logger.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

// Category names a pipeline subsystem.
type Category string

const (
	CategoryLexer     Category = "lexer"
	CategoryNLU       Category = "nlu"
	CategoryDiscovery Category = "discovery"
	CategoryWorkflow  Category = "workflow"
	CategoryRevision  Category = "revision"
	CategoryCLI       Category = "cli"
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// SetLogger installs the backing logger. Passing nil restores the nop logger.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		base = zap.NewNop()
		return
	}
	base = l
}

// Get returns the logger for a category, named after it.
func Get(c Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.Named(string(c))
}

// Package logging provides the process-wide zap logger, with named
// sub-loggers per subsystem. Until Init is called every logger is a no-op,
// so library code can log unconditionally and stay silent inside tests and
// embedding programs that never opt in.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Subsystem names used across the module.
const (
	SubsystemRegistry = "registry"
	SubsystemGrammar  = "grammar"
	SubsystemConfig   = "config"
	SubsystemWatch    = "watch"
	SubsystemCLI      = "cli"
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init builds the process logger. Verbose lowers the level to debug.
func Init(verbose bool) error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	base = logger
	mu.Unlock()
	return nil
}

// L returns the named logger for a subsystem.
func L(subsystem string) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.Named(subsystem)
}

// Sync flushes buffered log entries. Call at shutdown.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}

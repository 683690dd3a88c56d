// Package logger provides zap-based structured logging for the application.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.Logger so callers can initialize it once at startup.
type Logger struct {
	// Log is the underlying zap logger. Safe for concurrent use.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap logger. Call Init before use.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("debug", "info",
// "warn", "error") and replaces the no-op logger.
func (l *Logger) Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	log, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = log
	return nil
}

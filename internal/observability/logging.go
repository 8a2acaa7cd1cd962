// Package observability provides logging and metrics for the MUD server.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/circlemud/internal/config"
)

// Logging bundles the root logger with its adjustable level.
type Logging struct {
	Logger *zap.Logger
	// Level can be changed at runtime, e.g. by the admin API.
	Level zap.AtomicLevel
}

// NewLogging creates a structured logger from the given logging
// configuration, tagged with the MUD name.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured Logging or a non-nil error.
func NewLogging(cfg config.LoggingConfig, mudName string) (*Logging, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	atom := zap.NewAtomicLevelAt(level)
	zapCfg.Level = atom
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.InitialFields = map[string]any{"mud": mudName}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return &Logging{Logger: logger, Level: atom}, nil
}

// NewLogger is NewLogging for callers that only need the logger.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	l, err := NewLogging(cfg, "circlemud")
	if err != nil {
		return nil, err
	}
	return l.Logger, nil
}

// SetLevel parses and applies a new minimum level.
func (l *Logging) SetLevel(name string) error {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", name, err)
	}
	l.Level.SetLevel(level)
	return nil
}

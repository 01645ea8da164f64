// Package logging builds the zap loggers used across chatshell.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger for the given verbosity.
// When verbose is false a no-op logger is returned. When path is empty,
// logs go to stderr; otherwise they are appended to path, which keeps the
// TUI screen clean.
func New(verbose bool, path string) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	if path == "" {
		cfg.OutputPaths = []string{"stderr"}
	} else {
		cfg.Encoding = "json"
		cfg.EncoderConfig = zap.NewProductionEncoderConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{path}
	}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// MustNew is like New but falls back to a stderr production logger when
// the configured sink cannot be opened.
func MustNew(verbose bool, path string) *zap.Logger {
	logger, err := New(verbose, path)
	if err == nil {
		return logger
	}
	fmt.Fprintf(os.Stderr, "Warning: %v, logging to stderr\n", err)
	fallback, ferr := zap.NewProduction()
	if ferr != nil {
		return zap.NewNop()
	}
	return fallback
}

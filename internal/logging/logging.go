package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FormatJSON emits one JSON object per line.
	FormatJSON = "json"
	// FormatConsole emits human-readable lines.
	FormatConsole = "console"
)

// Options controls logger construction.
type Options struct {
	Format string
	Debug  bool
}

// New creates a structured logger. JSON output at info level is the default.
func New(opts Options) (*zap.Logger, error) {
	format := opts.Format
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatConsole {
		return nil, fmt.Errorf("unsupported log format %q", opts.Format)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = format
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.StacktraceKey = "stacktrace"
	cfg.DisableStacktrace = !opts.Debug
	if format == FormatConsole {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	if opts.Debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

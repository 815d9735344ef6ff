// Package logging builds the zap logger used by the command line tool.
// Library packages never build loggers themselves; they accept one through
// their options and default to zap.NewNop.
package logging

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrUnknownLevel indicates a level name zap does not know.
var ErrUnknownLevel = errors.New("logging: unknown level")

// New returns a logger at the given level ("debug", "info", "warn",
// "error"). jsonOutput selects production JSON on stderr; otherwise a compact
// console encoder is used. Logs go to stderr so feature output on stdout
// stays clean.
func New(level string, jsonOutput bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.WithHint(errors.Wrapf(ErrUnknownLevel, "%q", level),
			"use one of: debug, info, warn, error")
	}

	if jsonOutput {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.OutputPaths = []string{"stderr"}
		logger, err := cfg.Build()
		if err != nil {
			return nil, errors.Wrap(err, "logging: build")
		}

		return logger, nil
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.CallerKey = ""

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(os.Stderr),
		lvl,
	)), nil
}

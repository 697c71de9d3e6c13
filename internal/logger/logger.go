// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger configures the process-wide zap logger.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup installs a console or JSON logger at the given level as the global
// zap logger, writing to stderr so command output on stdout stays clean.
func Setup(level, format string) *zap.Logger {
	return SetupWriter(os.Stderr, level, format)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level, format string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch format {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	l := zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), ParseLevel(level)))
	zap.ReplaceGlobals(l)
	return l
}

// WithComponent returns the global logger tagged with a component name.
func WithComponent(component string) *zap.Logger {
	return zap.L().With(zap.String("component", component))
}

// ParseLevel maps debug, warn and error to their zap levels; anything
// else is info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

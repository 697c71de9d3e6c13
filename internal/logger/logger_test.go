// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSetupWriter(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	var buf bytes.Buffer
	SetupWriter(&buf, "warn", "json")

	WithComponent("matcher").Info("dropped")
	WithComponent("matcher").Warn("kept", zap.String("segment", "5-x"))

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"component":"matcher"`)
	assert.Contains(t, out, `"segment":"5-x"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestSetupWriterConsole(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	var buf bytes.Buffer
	l := SetupWriter(&buf, "debug", "text")

	l.Debug("building index", zap.Int("records", 8))
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "building index")
	assert.Same(t, l, zap.L())
}

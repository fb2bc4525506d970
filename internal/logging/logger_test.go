package logging

import (
	"bytes"
	"testing"

	"github.com/rgehrsitz/herdemi/internal/calculation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseLevel(tc.level))
		})
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "info"}, &buf)

	logger.Info().Str("scenario", "baseline").Msg("test message")

	out := buf.String()
	assert.Contains(t, out, `"message":"test message"`)
	assert.Contains(t, out, `"scenario":"baseline"`)
	assert.Contains(t, out, `"time":`)
}

func TestNewWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "info", Pretty: true}, &buf)

	logger.Info().Msg("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: "warn"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestEngineLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := NewWithWriter(Config{Level: "debug"}, &buf)

	var l calculation.Logger = NewEngineLogger(zl, "engine")
	l.Infof("running scenario %s", "baseline")
	l.Errorf("failed: %d", 3)

	out := buf.String()
	assert.Contains(t, out, "running scenario baseline")
	assert.Contains(t, out, `"component":"engine"`)
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, "failed: 3")
}

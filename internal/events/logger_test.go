package events_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entropyseed/seedseal/internal/events"
)

func TestNewLogger(t *testing.T) {
	logger, err := events.NewLogger("debug", "json", "")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestLoggerWithField(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.InfoLevel, "json", &buf)

	logger.WithField("label", "notes").Info("package stored")

	output := buf.String()
	assert.Contains(t, output, `"label":"notes"`)
	assert.Contains(t, output, `"msg":"package stored"`)
	assert.Contains(t, output, `"level":"info"`)
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.WarnLevel, "text", &buf)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("visible")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "visible")
}

func TestLoggerRedactsSecretFields(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.DebugLevel, "json", &buf)

	logger.WithFields(map[string]interface{}{
		"key":       "deadbeef",
		"plaintext": "hello",
		"label":     "ok-to-log",
	}).Debug("sealing")

	output := buf.String()
	assert.NotContains(t, output, "deadbeef")
	assert.NotContains(t, output, "hello")
	assert.Contains(t, output, "[redacted]")
	assert.Contains(t, output, "ok-to-log")
}

func TestLoggerWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.InfoLevel, "text", &buf)

	logger.WithError(assert.AnError).Error("operation failed")

	assert.Contains(t, buf.String(), assert.AnError.Error())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, events.DebugLevel, events.ParseLevel("debug"))
	assert.Equal(t, events.WarnLevel, events.ParseLevel("WARN"))
	assert.Equal(t, events.ErrorLevel, events.ParseLevel("error"))
	assert.Equal(t, events.InfoLevel, events.ParseLevel("anything"))
}

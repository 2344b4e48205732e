package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		" warn ":  WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"":        InfoLevel,
		"verbose": InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestJSONLoggerWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(InfoLevel, true, &buf)

	log.Info("RecordParser", "records loaded", map[string]interface{}{"rows": 3})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "RecordParser", entry["component"])
	assert.Equal(t, "records loaded", entry["message"])
	assert.EqualValues(t, 3, entry["rows"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(WarnLevel, true, &buf)

	log.Debug("x", "hidden", nil)
	log.Info("x", "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Error("x", errors.New("boom"), nil)
	assert.Contains(t, buf.String(), "boom")
}

func TestErrorUsesActionAsMessage(t *testing.T) {
	var buf bytes.Buffer
	log := New(InfoLevel, true, &buf)

	log.Error("MainController", errors.New("disk full"), map[string]interface{}{"action": "Save failed"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "Save failed", entry["message"])
	assert.Equal(t, "disk full", entry["error"])
}

func TestNoOpLoggerDiscards(t *testing.T) {
	var log Logger = NoOpLogger{}
	assert.NotPanics(t, func() {
		log.Info("x", "ignored", map[string]interface{}{"k": 1})
		log.Error("x", errors.New("ignored"), nil)
	})
}

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesComponentJSON(t *testing.T) {
	t.Setenv("APP_ENV", "")
	var buf bytes.Buffer
	l := NewWithOptions("matching", Options{Level: "info", Format: "json", Output: &buf})

	l.Debugf("hidden %d", 1)
	l.Infof("validated %d orders", 3)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "matching", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "validated 3 orders", entry["message"])
}

func TestLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	var buf bytes.Buffer
	l := NewWithOptions("test", Options{Level: "debug", Output: &buf})

	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")

	assert.Contains(t, buf.String(), "info test")
	assert.Contains(t, buf.String(), "k=1")
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Infof("nothing %s", "here")
	l.Debugw("nothing", nil)
}

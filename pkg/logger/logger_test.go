package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithConfig_JSON(t *testing.T) {
	require.NoError(t, InitWithConfig("debug", "json", "stdout", ""))
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())

	var buf bytes.Buffer
	SetOutput(&buf)

	WithField("employee_id", 7).Info("created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "created", line["msg"])
	assert.EqualValues(t, 7, line["employee_id"])
}

func TestInitWithConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	require.NoError(t, InitWithConfig("info", "text", "file", path))
	Info("hello %s", "file")

	assert.FileExists(t, path)
}

func TestInitWithConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
		output string
		path   string
	}{
		{name: "bad level", level: "loud", format: "json", output: "stdout"},
		{name: "bad format", level: "info", format: "xml", output: "stdout"},
		{name: "bad output", level: "info", format: "json", output: "syslog"},
		{name: "file without path", level: "info", format: "json", output: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, InitWithConfig(tt.level, tt.format, tt.output, tt.path))
		})
	}
}

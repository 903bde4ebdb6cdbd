package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONStandardizesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Debug("hidden")
	logger.Warn("search stopped", slog.Any("error", errors.New("boom")))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "search stopped", record["msg"])
	assert.Equal(t, "boom", record["err"])
	assert.NotContains(t, record, "error")
}

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{FormatText, FormatPretty, ""} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Options{Level: slog.LevelDebug, Format: format, Output: &buf})
			logger.Debug("expanded state", slog.Int("depth", 3))
			assert.Contains(t, buf.String(), "expanded state")
			assert.Contains(t, buf.String(), "depth")
		})
	}
}

func TestNew_PrettyWithoutTerminalHasNoColour(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Level: slog.LevelInfo, Format: FormatPretty, Output: &buf}).Info("ready")
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.False(t, isTerminal(&buf))
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat(FormatJSON))
	assert.True(t, ValidFormat(FormatPretty))
	assert.False(t, ValidFormat("xml"))
	assert.False(t, ValidFormat(""))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graphsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
strategy: ucs
max_expansions: 5000
log:
  format: json
problem:
  kind: graph
  path: romania.yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ucs", cfg.Strategy)
	assert.Equal(t, 5000, cfg.MaxExpansions)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level, "unset keys keep defaults")
	assert.Equal(t, KindGraph, cfg.Problem.Kind)
	assert.Equal(t, "romania.yaml", cfg.Problem.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"strategy":       "strategy: hill-climbing",
		"max expansions": "max_expansions: -1",
		"log level":      "log: {level: loud}",
		"log format":     "log: {format: xml}",
		"empty format":   "log: {format: \"\"}",
		"problem kind":   "problem: {kind: sudoku}",
		"grid cost":      "problem: {cost: uphill}",
		"server addr":    "server: {addr: \"\"}",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "strategy: [unterminated"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

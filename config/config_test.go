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
	path := filepath.Join(t.TempDir(), "stylecheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "APA", cfg.Style)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
report_format: markdown
checks:
  tables: true
  page_numbers: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "markdown", cfg.ReportFormat)
	assert.Equal(t, "text", cfg.LogFormat, "unset fields keep their defaults")
	assert.Equal(t, "APA", cfg.Style)
	assert.Equal(t, Checks{Tables: true, PageNumbers: true}, cfg.Checks)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "log_level: [debug"))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"level":  "log_level: loud",
		"format": "log_format: xml",
		"report": "report_format: pdf",
		"style":  `style: ""`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

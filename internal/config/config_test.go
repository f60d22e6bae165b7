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
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
	return dir
}

func TestLoad_NoFile(t *testing.T) {
	settings, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoad_FullFile(t *testing.T) {
	dir := writeConfig(t, `
context: 5
threshold: 10
filter: data_race
format: markdown
baseline: .ci/baseline
`)

	settings, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, settings.Context)
	assert.Equal(t, 10, settings.Threshold)
	assert.Equal(t, "data_race", settings.Filter)
	assert.Equal(t, "markdown", settings.Format)
	assert.Equal(t, ".ci/baseline", settings.Baseline)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := writeConfig(t, "threshold: 3\n")

	settings, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, settings.Threshold)
	assert.Equal(t, DefaultContext, settings.Context)
	assert.Equal(t, DefaultFormat, settings.Format)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, "context: [broken\n")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative context", "context: -1\n"},
		{"unknown format", "format: xml\n"},
		{"unknown filter", "filter: unused_variable\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

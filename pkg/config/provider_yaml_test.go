package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "streamprofile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestYAMLProviderLoadConfig(t *testing.T) {
	path := writeConfig(t, `
debug: true
survey:
  metric: true
  sheet: Profile
  columns:
    Elevation: Thalweg
    WS: Water Surface
storage:
  sqlite:
    path: /tmp/surveys.db
output:
  format: json
`)

	provider := NewYAMLProvider(path)
	cfg, err := provider.LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.True(t, cfg.Survey.Metric)
	assert.Equal(t, "Profile", cfg.Survey.Sheet)
	assert.Equal(t, "Thalweg", cfg.Survey.Columns["Elevation"])
	assert.Equal(t, "Water Surface", cfg.Survey.Columns["WS"])
	assert.Equal(t, "exes", cfg.Survey.Columns["Easting"], "defaults are kept")
	assert.Equal(t, "/tmp/surveys.db", cfg.Storage.SQLite.Path)
	assert.Equal(t, "json", cfg.Output.Format)

	storage, err := provider.GetStorageConfig()
	require.NoError(t, err)
	assert.Same(t, cfg.Storage.SQLite, storage.SQLite)
	assert.True(t, provider.IsReadOnly())
	assert.NoError(t, provider.Close())
}

func TestYAMLProviderDefaults(t *testing.T) {
	cfg, err := NewYAMLProvider(writeConfig(t, "survey:\n  metric: false\n")).LoadConfig()
	require.NoError(t, err)

	assert.False(t, cfg.Survey.Metric)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, "streamprofile.db", cfg.Storage.SQLite.Path)
}

func TestYAMLProviderRejectsBadFormat(t *testing.T) {
	_, err := NewYAMLProvider(writeConfig(t, "output:\n  format: pdf\n")).LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oneof")
}

func TestYAMLProviderRejectsUnknownKeys(t *testing.T) {
	_, err := NewYAMLProvider(writeConfig(t, "surveys:\n  metric: true\n")).LoadConfig()
	assert.Error(t, err)
}

func TestYAMLProviderMissingFile(t *testing.T) {
	_, err := NewYAMLProvider(filepath.Join(t.TempDir(), "absent.yaml")).LoadConfig()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateStoragePath(t *testing.T) {
	cfg := Default()
	cfg.Storage.SQLite.Path = ""
	assert.Error(t, Validate(cfg))

	assert.NoError(t, Validate(Default()))
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openbooks.yaml")

	cfg := Default("Acme Widgets")
	cfg.Preferences.Currency = "INR"
	cfg.Git.AutoCommit = false

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme Widgets", loaded.Business.Name)
	assert.Equal(t, "INR", loaded.Preferences.Currency)
	assert.False(t, loaded.Git.AutoCommit)
	assert.Equal(t, "01-01", loaded.Fiscal.YearStart)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default("Test Co")
	assert.Equal(t, "Test Co", cfg.Business.Name)
	assert.Equal(t, "USD", cfg.Preferences.Currency)
	assert.True(t, cfg.Git.AutoCommit)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentcore.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.LocationSlots)
	assert.Equal(t, int64(3), cfg.StockLowAbs)

	// The file must now exist with private permissions.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentcore.yaml")

	cfg := DefaultConfig()
	cfg.APIBaseURL = "http://example.test/api"
	cfg.LocationSlots = 12
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/api", loaded.APIBaseURL)
	assert.Equal(t, 12, loaded.LocationSlots)
}

func TestNormalize_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.Normalize()

	assert.NotEmpty(t, cfg.APIBaseURL)
	assert.Equal(t, 10, cfg.TimeoutSeconds)
	assert.Equal(t, 8, cfg.LocationSlots)
	assert.Equal(t, 0.20, cfg.StockLowRatio)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not yaml"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

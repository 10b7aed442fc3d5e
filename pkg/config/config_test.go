package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirFromEnv(t *testing.T) {
	resetConfigDir()
	dir := t.TempDir()
	t.Setenv("REGISTRY_CLEANER_CONFIG", dir)
	defer resetConfigDir()

	assert.Equal(t, dir, Dir())
	assert.Equal(t, filepath.Join(dir, DefaultConfigFileName), DefaultConfigFilePath())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.NoError(t, err)
	assert.Empty(t, cfg.DataDir)
	assert.Zero(t, cfg.Keep)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `{"dataDir": "/srv/registry/docker/registry/v2", "keep": 10, "exclude": ["latest", "release-*"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFileName), []byte(content), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/registry/docker/registry/v2", cfg.DataDir)
	assert.Equal(t, 10, cfg.Keep)
	assert.Equal(t, "latest,release-*", cfg.GetExclude())
}

func TestLoadFromReader(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(`{"keep": 5}`))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Keep)

	// empty file is fine
	cfg, err = LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, cfg.Keep)
}

func TestLoadBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFileName), []byte("{"), 0600))

	_, err := Load(dir)
	assert.Error(t, err)
}

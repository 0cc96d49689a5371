package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-viewer/internal/config"
)

func TestLoadConfigMissingDefault(t *testing.T) {
	cfg, fromFile, err := loadConfig(filepath.Join(t.TempDir(), "config.yaml"), false)
	require.NoError(t, err)
	assert.False(t, fromFile)
	assert.Equal(t, "scene-viewer", cfg.Window.Title)
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	_, _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  title: harbour\n"), 0o644))

	cfg, fromFile, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.True(t, fromFile)
	assert.Equal(t, "harbour", cfg.Window.Title)
}

func TestRootFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", "x.yaml", "--log-level", "debug", "--watch=false"}))
	assert.True(t, cmd.Flags().Changed("config"))
	v, err := cmd.Flags().GetString("log-level")
	require.NoError(t, err)
	assert.Equal(t, "debug", v)
	w, err := cmd.Flags().GetBool("watch")
	require.NoError(t, err)
	assert.False(t, w)
}

func TestOptionsOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "warn"

	(&options{}).override(cfg)
	assert.Equal(t, "warn", cfg.Logging.Level, "no flag keeps the file value")

	(&options{logLevel: "debug"}).override(cfg)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, 255, cfg.MaxCallDepth)
	require.Equal(t, "> ", cfg.PromptPrefix)
	require.False(t, cfg.Debug)
}

func TestLoadNoPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loxi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_call_depth: 64\nprompt_prefix: \"lox> \"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.MaxCallDepth)
	require.Equal(t, "lox> ", cfg.PromptPrefix)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loxi.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_call_depth: 64\n"), 0o644))

	t.Setenv("LOXI_MAX_CALL_DEPTH", "10")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.MaxCallDepth)
}

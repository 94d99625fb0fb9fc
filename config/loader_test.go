package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoader_Layers(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	nested := filepath.Join(project, "vocab", "core")
	require.NoError(t, os.MkdirAll(nested, 0755))

	writeConfig(t, filepath.Join(home, UserConfigDir, UserConfigFile), "log:\n  level: debug\noutput:\n  dir: /user/out\n")
	writeConfig(t, filepath.Join(project, ProjectConfigFile), "output:\n  dir: site\n")

	cfg, err := NewLoader(nil, WithHomeDir(home), WithWorkDir(nested)).Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level, "user layer applies")
	assert.Equal(t, "site", cfg.Output.Dir, "project layer wins over user layer")
	assert.Len(t, cfg.Output.Formats, 4, "defaults fill the rest")
}

func TestLoader_NoFiles(t *testing.T) {
	cfg, err := NewLoader(nil, WithHomeDir(t.TempDir()), WithWorkDir(t.TempDir())).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoader_InvalidProjectConfig(t *testing.T) {
	project := t.TempDir()
	writeConfig(t, filepath.Join(project, ProjectConfigFile), "log:\n  level: loud\n")

	_, err := NewLoader(nil, WithHomeDir(t.TempDir()), WithWorkDir(project)).Load()
	assert.Error(t, err)
}

func TestLoader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "output:\n  formats: [html]\n")

	cfg, err := NewLoader(nil).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"html"}, cfg.Output.Formats)

	writeConfig(t, path, "output:\n  formats: [pdf]\n")
	_, err = NewLoader(nil).LoadFile(path)
	assert.Error(t, err)
}

func TestLoader_EnsureUserConfig(t *testing.T) {
	home := t.TempDir()
	l := NewLoader(nil, WithHomeDir(home))

	require.NoError(t, l.EnsureUserConfig())
	path := filepath.Join(home, UserConfigDir, UserConfigFile)
	_, err := os.Stat(path)
	require.NoError(t, err)

	// A second call leaves the file alone.
	writeConfig(t, path, "log:\n  level: error\n")
	require.NoError(t, l.EnsureUserConfig())
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

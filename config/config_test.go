package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semvocab/export"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"turtle", "jsonld", "html", "context"}, cfg.Output.Formats)
	assert.Empty(t, cfg.Output.Dir)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Output.Formats = []string{"turtle", "rdfxml"} },
			wantErr: true,
		},
		{
			name:    "valid build date",
			modify:  func(c *Config) { c.Build.Date = "2024-03-01" },
			wantErr: false,
		},
		{
			name:    "malformed build date",
			modify:  func(c *Config) { c.Build.Date = "01/03/2024" },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOutputFormats(t *testing.T) {
	cfg := DefaultConfig()
	formats, err := cfg.OutputFormats()
	require.NoError(t, err)
	assert.Equal(t, export.AllFormats, formats)

	cfg.Output.Formats = []string{"html"}
	formats, err = cfg.OutputFormats()
	require.NoError(t, err)
	assert.Equal(t, []export.Format{export.FormatHTML}, formats)

	cfg.Output.Formats = nil
	formats, err = cfg.OutputFormats()
	require.NoError(t, err)
	assert.Equal(t, export.AllFormats, formats)
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
output:
  dir: build
  formats: [turtle, context]
build:
  date: "2024-03-01"
watch:
  debounce: 2s
log:
  level: debug
nats:
  url: nats://test:4222
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "build", cfg.Output.Dir)
	assert.Equal(t, []string{"turtle", "context"}, cfg.Output.Formats)
	assert.Equal(t, "2024-03-01", cfg.Build.Date)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "nats://test:4222", cfg.NATS.URL)

	date, err := cfg.BuildDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), date)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("output: [unterminated"), 0644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	base.Merge(&Config{
		Output: OutputConfig{Dir: "/override"},
		Log:    LogConfig{Level: "warn"},
	})

	assert.Equal(t, "/override", base.Output.Dir)
	assert.Equal(t, "warn", base.Log.Level)
	// Unset fields keep their defaults.
	assert.Len(t, base.Output.Formats, 4)
	assert.Equal(t, 500*time.Millisecond, base.Watch.Debounce)

	base.Merge(nil)
	assert.Equal(t, "/override", base.Output.Dir)
}

func TestConfigSaveToFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Build.Date = "2025-01-02"
	cfg.Watch.Debounce = time.Second
	require.NoError(t, cfg.SaveToFile(configPath))

	loaded, err := LoadFromFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

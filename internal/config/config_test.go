package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	rootDir := t.TempDir()

	cfg, err := LoadFromDir(rootDir)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Scan.Concurrency)
	assert.Contains(t, cfg.Paths.Ignore, "node_modules/**")
	assert.Contains(t, cfg.Paths.Ignore, ".git/**")
	assert.Equal(t, []string{rootDir}, cfg.Paths.Roots)
}

func TestLoad_ConfigFileOverridesDefaults(t *testing.T) {
	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".classdex")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configContent := `paths:
  roots:
    - src
    - themes
  ignore:
    - "tmp/**"
scan:
  concurrency: 8
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644))

	cfg, err := LoadFromDir(rootDir)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Scan.Concurrency)
	assert.Equal(t, []string{"tmp/**"}, cfg.Paths.Ignore)

	// Relative roots resolve against the config root.
	assert.Equal(t, []string{
		filepath.Join(rootDir, "src"),
		filepath.Join(rootDir, "themes"),
	}, cfg.Paths.Roots)
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".classdex")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"),
		[]byte("scan:\n  concurrency: 8\n"), 0644))

	t.Setenv("CLASSDEX_SCAN_CONCURRENCY", "4")

	cfg, err := LoadFromDir(rootDir)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Scan.Concurrency)
}

func TestLoad_MalformedConfigFileFails(t *testing.T) {
	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".classdex")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"),
		[]byte("scan: [not a mapping"), 0644))

	_, err := LoadFromDir(rootDir)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"negative concurrency", func(c *Config) { c.Scan.Concurrency = -1 }, true},
		{"excessive concurrency", func(c *Config) { c.Scan.Concurrency = 1000 }, true},
		{"zero concurrency falls back later", func(c *Config) { c.Scan.Concurrency = 0 }, false},
		{"empty ignore pattern", func(c *Config) { c.Paths.Ignore = []string{""} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	t.Parallel()
	require.Error(t, Validate(nil))
}

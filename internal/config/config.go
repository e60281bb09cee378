// Package config loads classdex configuration from .classdex/config.yml
// with CLASSDEX_* environment variable overrides. Configuration is read
// once at scan start; a running scan never re-reads it.
package config

// Config represents the complete classdex configuration.
type Config struct {
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`
	Scan  ScanConfig  `yaml:"scan" mapstructure:"scan"`
}

// PathsConfig defines where to look for class definitions and what to
// skip.
type PathsConfig struct {
	Roots  []string `yaml:"roots" mapstructure:"roots"`   // workspace roots; empty means the config directory
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// ScanConfig tunes the scan pipeline.
type ScanConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"` // max in-flight extractions
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Roots: nil,
			Ignore: []string{
				"node_modules/**",
				"bower_components/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"coverage/**",
				"**/*.min.css",
				"**/*.min.js",
			},
		},
		Scan: ScanConfig{
			Concurrency: 30,
		},
	}
}

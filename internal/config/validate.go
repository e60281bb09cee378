package config

import "fmt"

// Validate checks a loaded configuration for values the scan pipeline
// cannot work with.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Scan.Concurrency < 0 {
		return fmt.Errorf("scan.concurrency must not be negative, got %d", cfg.Scan.Concurrency)
	}
	if cfg.Scan.Concurrency > 512 {
		return fmt.Errorf("scan.concurrency %d is too high (max 512)", cfg.Scan.Concurrency)
	}

	for _, pattern := range cfg.Paths.Ignore {
		if pattern == "" {
			return fmt.Errorf("paths.ignore contains an empty pattern")
		}
	}

	return nil
}

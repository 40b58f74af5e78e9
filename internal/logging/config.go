package logging

import (
	"fmt"

	"banglawriter/internal/config"
)

// FromConfig builds a logger configuration from the logging section.
func FromConfig(c config.LoggingConfig, component string) (*Config, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	format, err := ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return nil, fmt.Errorf("negative rotation limits")
	}

	cfg := DefaultConfig()
	cfg.Level = level
	cfg.Format = format
	cfg.Output = c.Output
	if c.FilePath != "" {
		cfg.FilePath = c.FilePath
	}
	cfg.MaxSize = int64(c.MaxSizeMB)
	cfg.MaxBackups = c.MaxBackups
	cfg.MaxAge = c.MaxAgeDays
	cfg.Compress = c.Compress
	cfg.LogText = c.LogText
	if component != "" {
		cfg.Component = component
	}
	return cfg, nil
}

// Setup builds a logger from the logging section and installs it as
// the default.
func Setup(c config.LoggingConfig, component string) (*Logger, error) {
	cfg, err := FromConfig(c, component)
	if err != nil {
		return nil, err
	}
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	SetDefault(l)
	return l, nil
}

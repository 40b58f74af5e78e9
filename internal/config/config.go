// Package config handles configuration loading, validation, and hot
// reloading for banglawriter.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version" json:"version" yaml:"version"`

	// Engine controls keystroke handling and the candidate window.
	Engine EngineConfig `toml:"engine" json:"engine" yaml:"engine"`

	// Dictionary selects the word list used for suggestions.
	Dictionary DictionaryConfig `toml:"dictionary" json:"dictionary" yaml:"dictionary"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`

	// Metrics configuration for the Prometheus endpoint.
	Metrics MetricsConfig `toml:"metrics" json:"metrics" yaml:"metrics"`

	// IBus registration settings.
	IBus IBusConfig `toml:"ibus" json:"ibus" yaml:"ibus"`
}

// EngineConfig holds input engine settings.
type EngineConfig struct {
	// DefaultMode is the mode of a new session: "bangla" or "ascii".
	DefaultMode string `toml:"default_mode" json:"default_mode" yaml:"default_mode"`

	// ToggleKey switches modes. One of F1 through F12.
	ToggleKey string `toml:"toggle_key" json:"toggle_key" yaml:"toggle_key"`

	// ShowSuggestions enables the candidate window.
	ShowSuggestions bool `toml:"show_suggestions" json:"show_suggestions" yaml:"show_suggestions"`

	// PhoneticSuggestions also matches dictionary words against the
	// rendered buffer. Off by default: candidates then only ever extend
	// the typed prefix.
	PhoneticSuggestions bool `toml:"phonetic_suggestions" json:"phonetic_suggestions" yaml:"phonetic_suggestions"`

	// PageSize is the number of candidates per page (1-10).
	PageSize int `toml:"page_size" json:"page_size" yaml:"page_size"`

	// Orientation of the candidate window: "vertical" or "horizontal".
	Orientation string `toml:"orientation" json:"orientation" yaml:"orientation"`

	// CommitOnFocusOut commits pending text when the input context
	// loses focus. When false the composition is discarded.
	CommitOnFocusOut bool `toml:"commit_on_focus_out" json:"commit_on_focus_out" yaml:"commit_on_focus_out"`
}

// DictionaryConfig holds word list settings.
type DictionaryConfig struct {
	// Path is a JSON word list or a SQLite store (.db, .sqlite).
	// Empty selects the built-in list.
	Path string `toml:"path" json:"path" yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is the output format: text or json.
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is stdout, stderr, file or both.
	Output string `toml:"output" json:"output" yaml:"output"`

	// FilePath is the log file path when Output includes a file.
	FilePath string `toml:"file_path" json:"file_path" yaml:"file_path"`

	// MaxSizeMB is the size that triggers rotation.
	MaxSizeMB int `toml:"max_size_mb" json:"max_size_mb" yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files kept.
	MaxBackups int `toml:"max_backups" json:"max_backups" yaml:"max_backups"`

	// MaxAgeDays is the number of days rotated files are kept.
	MaxAgeDays int `toml:"max_age_days" json:"max_age_days" yaml:"max_age_days"`

	// Compress gzips rotated files.
	Compress bool `toml:"compress" json:"compress" yaml:"compress"`

	// LogText lets typed text reach debug logs.
	LogText bool `toml:"log_text" json:"log_text" yaml:"log_text"`
}

// MetricsConfig holds Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled" yaml:"enabled"`
	Listen  string `toml:"listen" json:"listen" yaml:"listen"`
}

// IBusConfig holds IBus registration settings.
type IBusConfig struct {
	// BusName is the well-known D-Bus name requested by the daemon.
	BusName string `toml:"bus_name" json:"bus_name" yaml:"bus_name"`

	// EngineName is the engine name advertised in the component XML.
	EngineName string `toml:"engine_name" json:"engine_name" yaml:"engine_name"`

	// ComponentDir receives the component XML on install.
	ComponentDir string `toml:"component_dir" json:"component_dir" yaml:"component_dir"`

	// Exec is the command line IBus runs to start the engine.
	Exec string `toml:"exec" json:"exec" yaml:"exec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: Version,
		Engine: EngineConfig{
			DefaultMode:         "bangla",
			ToggleKey:           "F12",
			ShowSuggestions:     true,
			PhoneticSuggestions: false,
			PageSize:            10,
			Orientation:         "vertical",
			CommitOnFocusOut:    true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     "stderr",
			FilePath:   filepath.Join(PlatformStateDir(), "banglawriter.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
			Compress:   true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  "127.0.0.1:9464",
		},
		IBus: IBusConfig{
			BusName:      "org.freedesktop.IBus.BanglaWriter",
			EngineName:   "banglawriter",
			ComponentDir: filepath.Join(PlatformDataHome(), "ibus", "component"),
			Exec:         "/usr/lib/ibus/banglawriter-ibus --ibus",
		},
	}
}

// ConfigPath returns the default configuration file path.
func ConfigPath() string {
	return filepath.Join(PlatformConfigDir(), "config.toml")
}

// Load reads configuration from path. A missing file yields the
// defaults. The format follows the extension: .toml, .json, .yaml or
// .yml; anything else is parsed as TOML. Environment overrides are
// applied afterwards.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg, err := loadConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	return cfg, nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	return ValidateConfig(c)
}

// ApplyEnvOverrides applies BANGLAWRITER_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("BANGLAWRITER_MODE"); v != "" {
		c.Engine.DefaultMode = v
	}
	if v := os.Getenv("BANGLAWRITER_DICTIONARY"); v != "" {
		c.Dictionary.Path = v
	}
	if v := os.Getenv("BANGLAWRITER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("BANGLAWRITER_LOG_PATH"); v != "" {
		c.Logging.FilePath = v
	}
	if v := os.Getenv("BANGLAWRITER_METRICS_LISTEN"); v != "" {
		c.Metrics.Listen = v
	}
	if v := os.Getenv("BANGLAWRITER_METRICS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Metrics.Enabled = b
		}
	}
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// DictionaryPath returns the dictionary path with ~ expanded.
func (c *Config) DictionaryPath() string {
	return expandPath(c.Dictionary.Path)
}

// LogPath returns the log file path with ~ expanded.
func (c *Config) LogPath() string {
	return expandPath(c.Logging.FilePath)
}

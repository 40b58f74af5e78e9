package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e ValidationErrors) Unwrap() error {
	return ErrInvalidConfig
}

// Fields returns the offending field names in order.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, err := range e {
		fields = append(fields, err.Field)
	}
	return fields
}

// ErrInvalidConfig is matched by every ValidationErrors value.
var ErrInvalidConfig = errors.New("invalid configuration")

// MaxPageSize bounds the candidate page size.
const MaxPageSize = 10

// ValidateConfig checks every section and returns ValidationErrors, or
// nil when the configuration is usable.
func ValidateConfig(c *Config) error {
	var errs ValidationErrors

	if c.Version < 1 || c.Version > Version {
		errs = append(errs, ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (current: %d)", c.Version, Version),
		})
	}

	errs = append(errs, validateEngine(&c.Engine)...)
	errs = append(errs, validateLogging(&c.Logging)...)
	errs = append(errs, validateMetrics(&c.Metrics)...)
	errs = append(errs, validateIBus(&c.IBus)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateEngine(e *EngineConfig) ValidationErrors {
	var errs ValidationErrors

	switch strings.ToLower(e.DefaultMode) {
	case "bangla", "ascii":
	default:
		errs = append(errs, ValidationError{
			Field:   "engine.default_mode",
			Message: fmt.Sprintf("invalid mode: %s (valid: bangla, ascii)", e.DefaultMode),
		})
	}

	if _, ok := FunctionKey(e.ToggleKey); !ok {
		errs = append(errs, ValidationError{
			Field:   "engine.toggle_key",
			Message: fmt.Sprintf("invalid toggle key: %s (valid: F1-F12)", e.ToggleKey),
		})
	}

	if e.PageSize < 1 || e.PageSize > MaxPageSize {
		errs = append(errs, *RangeError("engine.page_size", 1, MaxPageSize))
	}

	switch strings.ToLower(e.Orientation) {
	case "vertical", "horizontal":
	default:
		errs = append(errs, ValidationError{
			Field:   "engine.orientation",
			Message: fmt.Sprintf("invalid orientation: %s (valid: vertical, horizontal)", e.Orientation),
		})
	}

	return errs
}

func validateLogging(l *LoggingConfig) ValidationErrors {
	var errs ValidationErrors

	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid log level: %s (valid: debug, info, warn, error)", l.Level),
		})
	}

	switch strings.ToLower(l.Format) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid log format: %s (valid: text, json)", l.Format),
		})
	}

	switch strings.ToLower(l.Output) {
	case "stdout", "stderr":
	case "file", "both":
		if l.FilePath == "" {
			errs = append(errs, *RequiredFieldError("logging.file_path"))
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.output",
			Message: fmt.Sprintf("invalid log output: %s (valid: stdout, stderr, file, both)", l.Output),
		})
	}

	if l.MaxSizeMB < 1 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_size_mb",
			Message: "max size must be at least 1 MB",
		})
	}
	if l.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_backups",
			Message: "max backups cannot be negative",
		})
	}
	if l.MaxAgeDays < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_age_days",
			Message: "max age cannot be negative",
		})
	}

	return errs
}

func validateMetrics(m *MetricsConfig) ValidationErrors {
	if !m.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(m.Listen); err != nil {
		return ValidationErrors{{
			Field:   "metrics.listen",
			Message: fmt.Sprintf("invalid listen address %q: %v", m.Listen, err),
		}}
	}
	return nil
}

func validateIBus(i *IBusConfig) ValidationErrors {
	var errs ValidationErrors
	if i.BusName == "" || !strings.Contains(i.BusName, ".") {
		errs = append(errs, ValidationError{
			Field:   "ibus.bus_name",
			Message: fmt.Sprintf("invalid D-Bus name: %q", i.BusName),
		})
	}
	if i.EngineName == "" {
		errs = append(errs, *RequiredFieldError("ibus.engine_name"))
	}
	return errs
}

// FunctionKey returns the X keysym for F1 through F12.
func FunctionKey(name string) (uint32, bool) {
	const keyF1 = 0xffbe
	upper := strings.ToUpper(strings.TrimSpace(name))
	if !strings.HasPrefix(upper, "F") {
		return 0, false
	}
	n, err := strconv.Atoi(upper[1:])
	if err != nil || strconv.Itoa(n) != upper[1:] {
		return 0, false
	}
	if n < 1 || n > 12 {
		return 0, false
	}
	return uint32(keyF1 + n - 1), true
}

// RequiredFieldError creates a validation error for a required field.
func RequiredFieldError(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: "required field is missing",
	}
}

// RangeError creates a validation error for an out-of-range value.
func RangeError(field string, min, max any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("value must be between %v and %v", min, max),
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
)

// PlatformConfigDir returns $XDG_CONFIG_HOME/banglawriter.
func PlatformConfigDir() string {
	return filepath.Join(PlatformConfigHome(), "banglawriter")
}

// PlatformConfigHome returns $XDG_CONFIG_HOME, defaulting to ~/.config.
func PlatformConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	return filepath.Join(homeDir(), ".config")
}

// PlatformDataHome returns $XDG_DATA_HOME, the parent of per-application
// data directories such as ibus/component.
func PlatformDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	return filepath.Join(homeDir(), ".local", "share")
}

// PlatformDataDir returns $XDG_DATA_HOME/banglawriter.
func PlatformDataDir() string {
	return filepath.Join(PlatformDataHome(), "banglawriter")
}

// PlatformStateDir returns $XDG_STATE_HOME/banglawriter, used for logs.
func PlatformStateDir() string {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, "banglawriter")
	}
	return filepath.Join(homeDir(), ".local", "state", "banglawriter")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return os.TempDir()
	}
	return home
}

// SupportedConfigFormats returns the accepted config file extensions.
func SupportedConfigFormats() []string {
	return []string{"toml", "json", "yaml", "yml"}
}

// FindConfigFile returns the first config.<ext> found in the current
// directory or the config directory, or "" if there is none.
func FindConfigFile() string {
	for _, dir := range []string{".", PlatformConfigDir()} {
		for _, ext := range SupportedConfigFormats() {
			path := filepath.Join(dir, "config."+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// expandPath expands a leading ~ to the home directory.
func expandPath(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

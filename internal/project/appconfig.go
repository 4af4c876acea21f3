package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// DefaultConfigDir returns ~/.campusgrove, the home of the app config,
// decor presets and templates. It falls back to the working directory
// when no home directory is known.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".campusgrove")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists the viewer's defaults and preferences.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, "app config", config)
}

// LoadAppConfig decodes over DefaultAppConfig, so a missing file or missing
// keys keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if _, err := readJSON(path, "app config", &config); err != nil {
		return model.AppConfig{}, err
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

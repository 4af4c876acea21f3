package project

import (
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string               `json:"version"`
	CreatedAt string               `json:"created_at"`
	Config    model.AppConfig      `json:"config"`
	Decor     model.DecorInventory `json:"decor"`
	Templates model.TemplateStore  `json:"templates"`
}

// ExportAllData exports config, decor presets and site templates
// to a single JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, decor model.DecorInventory, templates model.TemplateStore) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Decor:     decor,
		Templates: templates,
	}
	return writeJSON(exportPath, "backup file", backup)
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported data.
func ImportAllData(importPath string) (BackupData, error) {
	var backup BackupData
	found, err := readJSON(importPath, "backup file", &backup)
	if err != nil {
		return BackupData{}, err
	}
	if !found {
		return BackupData{}, fmt.Errorf("failed to read backup file %s: %w", importPath, os.ErrNotExist)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	if backup.Decor.Presets == nil {
		backup.Decor.Presets = []model.DecorPreset{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.SiteTemplate{}
	}
	return backup, nil
}

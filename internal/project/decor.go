package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// DefaultDecorPath returns the default file path for the decor preset file.
// This is located at ~/.campusgrove/decor.json.
func DefaultDecorPath() string {
	return filepath.Join(DefaultConfigDir(), "decor.json")
}

// SaveDecorInventory writes the decor presets to path.
func SaveDecorInventory(path string, inv model.DecorInventory) error {
	return writeJSON(path, "decor presets", inv)
}

// LoadDecorInventory reads the decor presets from path. On first run the
// file is missing, so the built-in presets are returned and written there.
func LoadDecorInventory(path string) (model.DecorInventory, error) {
	var inv model.DecorInventory
	found, err := readJSON(path, "decor presets", &inv)
	if err != nil {
		return model.DecorInventory{}, err
	}
	if !found {
		inv = model.DefaultDecorInventory()
		return inv, SaveDecorInventory(path, inv)
	}
	if inv.Presets == nil {
		inv.Presets = []model.DecorPreset{}
	}
	return inv, nil
}

// LoadOrCreateDecorInventory loads the presets from the default path.
func LoadOrCreateDecorInventory() (model.DecorInventory, string, error) {
	path := DefaultDecorPath()
	inv, err := LoadDecorInventory(path)
	return inv, path, err
}

// ImportDecorInventory merges the presets of a user-specified JSON file into
// existing. Presets whose ID or name is already present are skipped.
func ImportDecorInventory(path string, existing model.DecorInventory) (model.DecorInventory, error) {
	var imported model.DecorInventory
	found, err := readJSON(path, "decor presets", &imported)
	if err != nil {
		return existing, err
	}
	if !found {
		return existing, fmt.Errorf("failed to read decor presets %s: %w", path, os.ErrNotExist)
	}

	ids := make(map[string]bool, len(existing.Presets))
	names := make(map[string]bool, len(existing.Presets))
	for _, p := range existing.Presets {
		ids[p.ID] = true
		names[p.Name] = true
	}
	for _, p := range imported.Presets {
		if ids[p.ID] || names[p.Name] {
			continue
		}
		existing.Presets = append(existing.Presets, p)
		ids[p.ID] = true
		names[p.Name] = true
	}
	return existing, nil
}

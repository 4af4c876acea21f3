package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CampusGrove/internal/model"
)

func TestLoadDecorInventory_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "decor.json")

	inv, err := LoadDecorInventory(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tree", "Shrub", "Lamp Post"}, inv.Names())

	_, err = os.Stat(path)
	assert.NoError(t, err, "defaults should be written on first load")
}

func TestSaveAndLoadDecorInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decor.json")

	inv := model.DecorInventory{Presets: []model.DecorPreset{
		model.NewDecorPreset("Bench", 0.5, 8, "#795548"),
	}}
	require.NoError(t, SaveDecorInventory(path, inv))

	loaded, err := LoadDecorInventory(path)
	require.NoError(t, err)
	require.Len(t, loaded.Presets, 1)
	assert.Equal(t, inv.Presets[0], loaded.Presets[0])
}

func TestLoadDecorInventory_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decor.json")
	require.NoError(t, os.WriteFile(path, []byte("{bad"), 0644))

	_, err := LoadDecorInventory(path)
	assert.Error(t, err)
}

func TestImportDecorInventory_SkipsDuplicates(t *testing.T) {
	existing := model.DefaultDecorInventory()

	incoming := model.DecorInventory{Presets: []model.DecorPreset{
		existing.Presets[0],
		model.NewDecorPreset("Shrub", 2, 10, "#000000"),
		model.NewDecorPreset("Bench", 0.5, 8, "#795548"),
	}}
	path := filepath.Join(t.TempDir(), "import.json")
	require.NoError(t, SaveDecorInventory(path, incoming))

	merged, err := ImportDecorInventory(path, existing)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tree", "Shrub", "Lamp Post", "Bench"}, merged.Names())
	assert.Equal(t, 1.5, merged.FindByName("Shrub").Margin, "existing preset wins")
}

func TestImportDecorInventory_MissingFile(t *testing.T) {
	existing := model.DefaultDecorInventory()

	merged, err := ImportDecorInventory(filepath.Join(t.TempDir(), "none.json"), existing)
	assert.Error(t, err)
	assert.Len(t, merged.Presets, 3)
}

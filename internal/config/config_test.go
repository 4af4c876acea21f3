package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CampusGrove/internal/model"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, model.DefaultSettings(), cfg.PlacementSettings())
	require.Len(t, cfg.Layers, 1)
	assert.Equal(t, "Tree", cfg.Layers[0].Name)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campusgen.yaml")
	data := `
buildings_csv: extra.csv
settings:
  count: 120
  margin: 2.5
  seed: 99
layers:
  - name: Tree
    margin: 3
    count: 40
  - name: Lamp Post
    margin: 1
    count: 12
    color: "#FFC107"
outputs:
  dir: build
  xlsx: points.xlsx
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "extra.csv", cfg.BuildingsCSV)
	assert.Equal(t, 120, cfg.Settings.Count)
	assert.Equal(t, 2.5, cfg.Settings.Margin)
	assert.Equal(t, uint64(99), cfg.Settings.Seed)
	assert.Equal(t, 50.0, cfg.Settings.HalfExtent, "unset keys keep defaults")
	assert.Len(t, cfg.Layers, 2)
	assert.Equal(t, "#FFC107", cfg.DecorLayers()[1].Color)
	assert.Equal(t, filepath.Join("build", "points.xlsx"), cfg.Outputs.Path(cfg.Outputs.XLSX))
	assert.Equal(t, filepath.Join("build", "site-plan.pdf"), cfg.Outputs.Path(cfg.Outputs.PDF))

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Settings.Count = -1
	cfg.Settings.Margin = -2
	cfg.Layers = append(cfg.Layers, Layer{Name: "Shrub", Margin: -1, Count: 3})
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "settings.count")
	assert.ErrorContains(t, err, "settings.margin")
	assert.ErrorContains(t, err, "layers[1] (Shrub)")
	assert.ErrorContains(t, err, "log_level")
}

func TestValidate_NonFiniteValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	data := `
settings:
  half_extent: .nan
  margin: .inf
layers:
  - name: Tree
    margin: -.inf
    count: 10
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "settings.half_extent")
	assert.ErrorContains(t, err, "settings.margin")
	assert.ErrorContains(t, err, "layers[0] (Tree)")
}

func TestValidate_DuplicateLayerNames(t *testing.T) {
	cfg := Default()
	cfg.Layers = []Layer{
		{Name: "Tree", Margin: 3, Count: 10},
		{Name: "Shrub", Margin: 1, Count: 5},
		{Name: "Tree", Margin: 0.5, Count: 200},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "layers[2] (Tree): duplicate layer name, first used by layers[0]")

	cfg.Layers[2].Name = "Small Tree"
	assert.NoError(t, cfg.Validate())
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultPath, PathFromEnv(DefaultPath))

	t.Setenv(EnvPath, "/etc/campusgen.yaml")
	assert.Equal(t, "/etc/campusgen.yaml", PathFromEnv(DefaultPath))
}

func TestOutputsPath(t *testing.T) {
	o := Outputs{Dir: "out"}
	assert.Equal(t, "", o.Path(""))
	assert.Equal(t, filepath.Join("out", "a.pdf"), o.Path("a.pdf"))
	assert.Equal(t, "/abs/a.pdf", o.Path("/abs/a.pdf"))
	assert.Equal(t, "a.pdf", Outputs{}.Path("a.pdf"))
}

func TestDecorLayers_EmptyMeansNil(t *testing.T) {
	cfg := Default()
	cfg.Layers = nil
	assert.Nil(t, cfg.DecorLayers())
}

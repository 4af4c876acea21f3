package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/CampusGrove/internal/config"
	"github.com/piwi3910/CampusGrove/internal/engine"
	"github.com/piwi3910/CampusGrove/internal/model"
	"github.com/piwi3910/CampusGrove/internal/project"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "campusgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRun_WritesConfiguredOutputs(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, `
settings:
  seed: 7
layers:
  - name: Tree
    margin: 3
    count: 20
  - name: Shrub
    margin: 1.5
    count: 10
outputs:
  json: site.campus
  pdf: site.pdf
  png: site.png
  xlsx: site.xlsx
  labels: labels.pdf
log_level: debug
`)
	out := filepath.Join(dir, "build")

	var logs bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-config", cfgPath, "-out", out}, &logs))

	for _, name := range []string{"site.campus", "site.pdf", "site.png", "site.xlsx", "labels.pdf"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
	assert.Contains(t, logs.String(), "placement finished")

	p, err := project.Load(filepath.Join(out, "site.campus"))
	require.NoError(t, err)
	require.NotNil(t, p.Result)
	assert.Equal(t, uint64(7), p.Result.Seed)
	assert.LessOrEqual(t, len(p.Result.Points), 30)
	assert.Equal(t, 30, p.Result.Requested)

	catalog := p.Catalog()
	margins := map[string]float64{"Tree": 3, "Shrub": 1.5}
	for _, pt := range p.Result.Points {
		assert.True(t, engine.Classify(pt.Point(), catalog, margins[pt.Kind]).Accepted(), "%+v", pt)
	}
}

func TestRun_SameSeedSamePoints(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "outputs:\n  dir: \"\"\n  pdf: \"\"\n  png: \"\"\n  json: a.campus\n")

	first := filepath.Join(dir, "a")
	second := filepath.Join(dir, "b")
	require.NoError(t, run(context.Background(), []string{"-config", cfgPath, "-seed", "99", "-out", first}, &bytes.Buffer{}))
	require.NoError(t, run(context.Background(), []string{"-config", cfgPath, "-seed", "99", "-out", second}, &bytes.Buffer{}))

	a, err := project.Load(filepath.Join(first, "a.campus"))
	require.NoError(t, err)
	b, err := project.Load(filepath.Join(second, "a.campus"))
	require.NoError(t, err)
	assert.Equal(t, a.Result.Points, b.Result.Points)
}

func TestRun_ZeroCountStillWritesPlan(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "outputs:\n  png: preview.png\n  pdf: plan.pdf\n  json: \"\"\n")

	var logs bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-config", cfgPath, "-count", "0", "-out", dir}, &logs))

	_, err := os.Stat(filepath.Join(dir, "plan.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "preview.png"))
	assert.True(t, os.IsNotExist(err), "empty preview is skipped")
	assert.Contains(t, logs.String(), "preview skipped")
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "settings:\n  margin: -1\n")

	err := run(context.Background(), []string{"-config", cfgPath}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid config")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfgPath := writeConfig(t, t.TempDir(), "outputs:\n  dir: \"\"\n")
	err := run(ctx, []string{"-config", cfgPath}, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildProject_ImportsBuildings(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "extra.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Name,X,Z,Width,Depth\nKiosk,40,40,4,4\n"), 0644))

	cfg := config.Default()
	cfg.BuildingsCSV = csvPath

	p, err := buildProject(cfg, discardLogger())
	require.NoError(t, err)
	assert.Len(t, p.Buildings, len(model.CampusBuildings())+1)
	assert.NotNil(t, model.FindBuildingBySlug(p.Buildings, "kiosk"))
}

func TestBuildProject_ImportFailure(t *testing.T) {
	cfg := config.Default()
	cfg.BuildingsCSV = filepath.Join(t.TempDir(), "missing.csv")

	_, err := buildProject(cfg, discardLogger())
	assert.ErrorContains(t, err, "importing buildings")
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	applyOverrides(&cfg, options{seed: 5, count: 8, outDir: "x"})

	assert.Equal(t, uint64(5), cfg.Settings.Seed)
	assert.Equal(t, 8, cfg.Settings.Count)
	assert.Equal(t, 8, cfg.Layers[0].Count)
	assert.Equal(t, "x", cfg.Outputs.Dir)

	cfg = config.Default()
	applyOverrides(&cfg, options{count: -1})
	assert.Equal(t, config.Default(), cfg)
}

func TestLayerBudgets(t *testing.T) {
	p := model.NewProject()
	p.Settings.AttemptMultiple = 10
	p.Layers = []model.DecorLayer{{Name: "Tree", Count: 4}, {Name: "Shrub", Count: 0}}

	budgets := layerBudgets(p)
	require.Len(t, budgets, 2)
	assert.Equal(t, 40, budgets[0].budget)
	assert.Equal(t, 0, budgets[1].budget)

	p.Layers = nil
	budgets = layerBudgets(p)
	require.Len(t, budgets, 1)
	assert.Equal(t, p.Settings.Count*10, budgets[0].budget)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

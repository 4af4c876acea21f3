package export

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// buildTestProject creates a small campus with a placement result.
func buildTestProject() model.Project {
	lib := model.NewBuilding("Central Library", model.KindAcademic, -15, -10, 10, 10, 10)
	lib.Color = "#6499E9"
	parking := model.NewBuilding("Parking Area", model.KindFacility, 25, 25, 30, 1, 20)
	parking.Rotation = math.Pi / 6

	return model.Project{
		Name:      "Test Campus",
		Buildings: []model.Building{lib, parking},
		Corridors: model.CampusCorridors(),
		Settings:  model.DefaultSettings(),
		Layers: []model.DecorLayer{
			{Name: "Tree", Margin: 3, Count: 3, Color: "#2E7D32"},
			{Name: "Shrub", Margin: 1.5, Count: 2},
		},
		Result: &model.PlacementResult{
			Points: []model.PlacementPoint{
				{X: 10, Z: 10, Kind: "Tree"},
				{X: -30, Z: 10, Kind: "Tree"},
				{X: 40, Z: -40, Kind: "Tree"},
				{X: -40, Z: 40, Kind: "Shrub"},
			},
			Requested: 5,
			Attempts:  40,
			Seed:      7,
		},
	}
}

func assertFileWritten(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Errorf("file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.pdf")

	if err := ExportPDF(path, buildTestProject()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path, 1000)
}

func TestExportPDF_WithoutResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.pdf")
	project := buildTestProject()
	project.Result = nil

	if err := ExportPDF(path, project); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path, 1000)
}

func TestExportPDF_FullCampusPaginates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campus.pdf")
	project := model.NewProject()
	project.Result = &model.PlacementResult{Points: []model.PlacementPoint{{X: 40, Z: 40, Kind: "Tree"}}, Requested: 1}

	if err := ExportPDF(path, project); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertFileWritten(t, path, 1000)
}

func TestExportPDF_EmptyProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.Project{Name: "Empty"})
	if !errors.Is(err, ErrNoBuildings) {
		t.Fatalf("expected ErrNoBuildings, got %v", err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("no file should be written for an empty project")
	}
}

func TestExportPDF_InvalidPath(t *testing.T) {
	err := ExportPDF("/nonexistent/dir/site.pdf", buildTestProject())
	if err == nil {
		t.Fatal("expected error for invalid path")
	}
}

func TestSitePlanHalfExtent(t *testing.T) {
	p := buildTestProject()
	p.Settings.HalfExtent = 10
	// Corridors reach 50 and the parking lot reaches 40
	if got := sitePlanHalfExtent(p); got != 50 {
		t.Errorf("expected 50, got %f", got)
	}

	if got := sitePlanHalfExtent(model.Project{}); got != model.DefaultSettings().HalfExtent {
		t.Errorf("expected default extent, got %f", got)
	}
}

func TestFootprintCorners(t *testing.T) {
	f := model.Footprint{CX: 1, CZ: 2, HalfWidth: 3, HalfDepth: 1}
	corners := footprintCorners(f)
	if corners[0] != (model.Point2D{X: -2, Z: 1}) || corners[2] != (model.Point2D{X: 4, Z: 3}) {
		t.Errorf("unexpected axis-aligned corners %v", corners)
	}

	f.Rotation = math.Pi / 2
	corners = footprintCorners(f)
	if math.Abs(corners[0].X-2) > 1e-9 || math.Abs(corners[0].Z-(-1)) > 1e-9 {
		t.Errorf("unexpected rotated corner %v", corners[0])
	}
}

func TestLabelFontSize(t *testing.T) {
	if labelFontSize(50, 45) != 8 || labelFontSize(50, 25) != 7 || labelFontSize(10, 10) != 6 {
		t.Error("unexpected font size ladder")
	}
}

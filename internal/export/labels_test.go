package export

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/CampusGrove/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, model.CampusBuildings()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertFileWritten(t, path, 500)
}

func TestExportLabels_MultiplePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	var buildings []model.Building
	for i := 0; i < labelsPerPage+5; i++ {
		buildings = append(buildings, model.NewBuilding("Block", model.KindAcademic, float64(i), 0, 4, 4, 4))
	}
	if err := ExportLabels(path, buildings); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertFileWritten(t, path, 500)
}

func TestExportLabels_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportLabels(path, nil)
	if !errors.Is(err, ErrNoBuildings) {
		t.Fatalf("expected ErrNoBuildings, got %v", err)
	}
}

func TestCollectLabelInfos(t *testing.T) {
	buildings := model.CampusBuildings()
	labels := CollectLabelInfos(buildings)

	if len(labels) != len(buildings) {
		t.Fatalf("expected %d labels, got %d", len(buildings), len(labels))
	}
	lib := labels[7]
	if lib.Slug != "library" || lib.Name != "Central Library" || lib.Kind != "Academic" {
		t.Errorf("unexpected label %+v", lib)
	}
	if lib.X != -15 || lib.Z != -10 || lib.Width != 10 {
		t.Errorf("unexpected geometry %+v", lib)
	}
}

func TestLabelInfo_QRPayloadRoundTrip(t *testing.T) {
	info := CollectLabelInfos(model.CampusBuildings()[:1])[0]

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if _, err := qrcode.Encode(string(data), qrcode.Medium, 256); err != nil {
		t.Fatalf("QR payload too large or invalid: %v", err)
	}

	var decoded LabelInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded != info {
		t.Errorf("round trip mismatch: %+v vs %+v", decoded, info)
	}
}

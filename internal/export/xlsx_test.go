package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CampusGrove/internal/model"
)

func TestExportExcel_WritesSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placements.xlsx")
	result := *buildTestProject().Result

	require.NoError(t, ExportExcel(path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{placementsSheet, statisticsSheet}, f.GetSheetList())

	rows, err := f.GetRows(placementsSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(result.Points)+1)
	assert.Equal(t, []string{"#", "Kind", "X", "Z"}, rows[0])
	assert.Equal(t, []string{"1", "Tree", "10", "10"}, rows[1])
	assert.Equal(t, "Shrub", rows[4][1])

	stats, err := f.GetRows(statisticsSheet)
	require.NoError(t, err)
	found := map[string]string{}
	for _, r := range stats {
		if len(r) == 2 {
			found[r[0]] = r[1]
		}
	}
	assert.Equal(t, "5", found["Requested"])
	assert.Equal(t, "4", found["Placed"])
	assert.Equal(t, "7", found["Seed"])
	assert.Equal(t, "3", found["Placed Tree"])
}

func TestExportExcel_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	assert.ErrorIs(t, ExportExcel(path, model.PlacementResult{}), ErrNoPlacements)
}

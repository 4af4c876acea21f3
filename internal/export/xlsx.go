package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CampusGrove/internal/model"
)

const (
	placementsSheet = "Placements"
	statisticsSheet = "Statistics"
)

// ExportExcel writes the placement table and a statistics sheet to an
// .xlsx workbook. Points are listed in acceptance order.
func ExportExcel(path string, result model.PlacementResult) error {
	if len(result.Points) == 0 {
		return ErrNoPlacements
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), placementsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(statisticsSheet); err != nil {
		return fmt.Errorf("failed to add statistics sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := [][]interface{}{{"#", "Kind", "X", "Z"}}
	for i, p := range result.Points {
		rows = append(rows, []interface{}{i + 1, kindLabel(p.Kind), p.X, p.Z})
	}
	if err := writeRows(f, placementsSheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(placementsSheet, "A1", "D1", header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(placementsSheet, "B", "B", 16); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := writeRows(f, statisticsSheet, statisticsRows(result)); err != nil {
		return err
	}
	if err := f.SetCellStyle(statisticsSheet, "A1", "B1", header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(statisticsSheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}
	return nil
}

func statisticsRows(result model.PlacementResult) [][]interface{} {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Requested", result.Requested},
		{"Placed", len(result.Points)},
		{"Attempts", result.Attempts},
		{"Rejected by buildings", result.RejectedByFootprint},
		{"Rejected by roads", result.RejectedByCorridor},
		{"Fill ratio", result.FillRatio()},
		{"Acceptance rate", result.AcceptanceRate()},
	}
	if result.Seed != 0 {
		rows = append(rows, []interface{}{"Seed", fmt.Sprintf("%d", result.Seed)})
	}

	counts := result.CountByKind()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		rows = append(rows, []interface{}{"Placed " + kindLabel(k), counts[k]})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

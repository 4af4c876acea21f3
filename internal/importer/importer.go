// Package importer provides CSV and Excel import functionality for building
// catalogs. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CampusGrove/internal/model"
)

// DefaultBuildingHeight is used when a row or drawing carries no height.
const DefaultBuildingHeight = 5.0

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Buildings []model.Building
	Errors    []string
	Warnings  []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name     int
	X        int
	Z        int
	Width    int
	Height   int
	Depth    int
	Kind     int
	Rotation int
	Color    int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":     {"name", "label", "building", "building name", "title"},
	"x":        {"x", "pos x", "position x", "east", "easting"},
	"z":        {"z", "pos z", "position z", "north", "northing"},
	"width":    {"width", "w", "size x", "span x"},
	"height":   {"height", "h", "elevation", "tall"},
	"depth":    {"depth", "d", "size z", "span z"},
	"kind":     {"kind", "type", "category", "use"},
	"rotation": {"rotation", "rot", "angle", "heading"},
	"color":    {"color", "colour", "hex", "fill"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (Name, X, Z, Width, Height, Depth, Kind, Rotation, Color) and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name: -1, X: -1, Z: -1,
		Width: -1, Height: -1, Depth: -1,
		Kind: -1, Rotation: -1, Color: -1,
	}
	slots := map[string]*int{
		"name":     &mapping.Name,
		"x":        &mapping.X,
		"z":        &mapping.Z,
		"width":    &mapping.Width,
		"height":   &mapping.Height,
		"depth":    &mapping.Depth,
		"kind":     &mapping.Kind,
		"rotation": &mapping.Rotation,
		"color":    &mapping.Color,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Name: 0, X: 1, Z: 2,
			Width: 3, Height: 4, Depth: 5,
			Kind: 6, Rotation: 7, Color: 8,
		}, false
	}

	return mapping, true
}

// parseKind converts a kind string to a model.Kind, ignoring case.
// It returns the kind and a boolean indicating whether the string was recognized.
func parseKind(s string) (model.Kind, bool) {
	s = strings.TrimSpace(s)
	for _, k := range model.Kinds {
		if strings.EqualFold(string(k), s) {
			return k, true
		}
	}
	return model.KindFacility, false
}

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	return b.String()
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseNumber(row []string, idx int, rowLabel, column string) (float64, string) {
	raw := getCell(row, idx)
	if raw == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, column)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !finite(v) {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, column, raw)
	}
	return v, ""
}

// finite reports whether v is neither NaN nor infinite. ParseFloat accepts
// "NaN" and "Inf", which would yield footprints no comparison can reject.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// parseRow extracts a Building from a row using the given column mapping.
// Returns the building, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (model.Building, string, []string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Building %d", count+1)
	}

	x, errMsg := parseNumber(row, mapping.X, rowLabel, "x")
	if errMsg != "" {
		return model.Building{}, errMsg, nil
	}
	z, errMsg := parseNumber(row, mapping.Z, rowLabel, "z")
	if errMsg != "" {
		return model.Building{}, errMsg, nil
	}
	width, errMsg := parseNumber(row, mapping.Width, rowLabel, "width")
	if errMsg != "" {
		return model.Building{}, errMsg, nil
	}
	depth, errMsg := parseNumber(row, mapping.Depth, rowLabel, "depth")
	if errMsg != "" {
		return model.Building{}, errMsg, nil
	}
	if width <= 0 || depth <= 0 {
		return model.Building{}, fmt.Sprintf("%s: Width and depth must be positive", rowLabel), nil
	}

	var warnings []string

	height := DefaultBuildingHeight
	if raw := getCell(row, mapping.Height); raw != "" {
		h, err := strconv.ParseFloat(raw, 64)
		if err != nil || h < 0 || !finite(h) {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid height '%s', using %.0f", rowLabel, raw, DefaultBuildingHeight))
		} else {
			height = h
		}
	}

	kind := model.KindFacility
	if raw := getCell(row, mapping.Kind); raw != "" {
		k, ok := parseKind(raw)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown kind '%s', defaulting to %s", rowLabel, raw, model.KindFacility))
		}
		kind = k
	}

	b := model.NewBuilding(name, kind, x, z, width, height, depth)
	b.Slug = Slugify(name)

	// Rotation is entered in degrees and stored in radians.
	if raw := getCell(row, mapping.Rotation); raw != "" {
		deg, err := strconv.ParseFloat(raw, 64)
		if err != nil || !finite(deg) {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid rotation '%s', ignoring", rowLabel, raw))
		} else {
			b.Rotation = deg * math.Pi / 180
		}
	}

	if raw := getCell(row, mapping.Color); raw != "" {
		if isHexColor(raw) {
			b.Color = raw
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid color '%s', using default", rowLabel, raw))
		}
	}

	return b, "", warnings
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports buildings from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports buildings from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports buildings from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into buildings.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Z == -1 {
			missing = append(missing, "Z")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Depth == -1 {
			missing = append(missing, "Depth")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		// An unrecognized header still has a non-numeric X column
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		b, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Buildings))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Buildings = append(result.Buildings, b)
	}

	return result
}

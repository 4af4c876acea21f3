package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ImportFile picks the importer matching the file extension: .csv/.txt/.tsv,
// .xlsx/.xlsm or .dxf.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	case ".dxf":
		return ImportDXF(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type %q", filepath.Ext(path))}}
	}
}

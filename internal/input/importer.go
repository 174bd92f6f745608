// Package input reads device identifiers from pasted text, CSV and Excel
// files. CSV import detects the delimiter automatically and both file
// formats recognise an identifier column by its header.
package input

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Identifiers []string
	Errors      []string
	Warnings    []string
}

// Err returns nil when at least one identifier was imported. Otherwise it
// wraps ErrNoIdentifiers with the collected error messages.
func (r ImportResult) Err() error {
	if len(r.Identifiers) > 0 {
		return nil
	}
	if len(r.Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrNoIdentifiers, strings.Join(r.Errors, "; "))
	}
	return ErrNoIdentifiers
}

// ColumnMapping is the column index holding identifiers.
type ColumnMapping struct {
	Identifier int
}

// headerAliases are the accepted identifier column names (all lowercase).
var headerAliases = []string{
	"imei", "imei number", "imei1", "serial", "serial number", "identifier", "id", "sn", "device",
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
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

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

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns the identifier column.
// Returns the mapping and true if a header was detected, or column 0 and
// false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range headerAliases {
			if normalized == alias {
				return ColumnMapping{Identifier: i}, true
			}
		}
	}
	return ColumnMapping{Identifier: 0}, false
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportFile picks an importer by file extension: .csv, .xlsx/.xlsm, and
// plain text for anything else.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportText(path)
	}
}

// ImportText imports identifiers from a plain text file of comma or
// newline separated values.
func ImportText(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	result.Identifiers = ParseIdentifiers(string(data))
	if len(result.Identifiers) == 0 {
		result.Errors = append(result.Errors, "File contains no identifiers")
		return result
	}
	result.Warnings = lengthWarnings(result.Identifiers)
	return result
}

// ImportCSV imports identifiers from a CSV file.
// It automatically detects the delimiter and finds the identifier column by header name.
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
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
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

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports identifiers from a CSV reader with a specific delimiter.
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

// ImportExcel imports identifiers from the first sheet of an Excel workbook.
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
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	} else if Sanitize(getCell(rows[0], 0)) == "" {
		// Unrecognised header: no digits in the first cell
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		cell := getCell(row, mapping.Identifier)
		if cell == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing identifier", rowLabel))
			continue
		}

		ids := ParseIdentifiers(cell)
		if len(ids) == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: No digits in '%s'", rowLabel, cell))
			continue
		}
		for _, id := range ids {
			if len(id) != IMEILength {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: '%s' has %d digits, expected %d", rowLabel, id, len(id), IMEILength))
			}
		}
		result.Identifiers = append(result.Identifiers, ids...)
	}

	if len(result.Identifiers) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}

func lengthWarnings(ids []string) []string {
	var warnings []string
	for i, id := range ids {
		if len(id) != IMEILength {
			warnings = append(warnings, fmt.Sprintf("Identifier %d: '%s' has %d digits, expected %d", i+1, id, len(id), IMEILength))
		}
	}
	return warnings
}

package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// WorkbookReader handles reading Excel and CSV files
type WorkbookReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
}

// NewWorkbookReader creates a reader that handles both Excel and CSV files
func NewWorkbookReader(filePath string, config ReaderConfig) *WorkbookReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &WorkbookReader{filePath: filePath, fileType: fileType, config: config}
}

// SheetNames lists the sheets available in the workbook. CSV files expose a
// single pseudo-sheet named after the file.
func (r *WorkbookReader) SheetNames() ([]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	if r.fileType == "csv" {
		base := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
		return []string{base}, nil
	}

	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	return f.GetSheetList(), nil
}

// ReadSheet reads the named sheet using the given 0-based header row. The
// header index is clamped to min(MaxHeaderScan, rowCount-1); rows above the
// header are discarded and rows below become data rows padded to the header
// width.
func (r *WorkbookReader) ReadSheet(sheet string, headerRow int) (*RawSheet, error) {
	log.Printf("[WorkbookReader] Reading %s file: %s sheet=%q header=%d", r.fileType, r.filePath, sheet, headerRow)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows(sheet)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no rows", sheet)
	}

	effective := ClampHeaderRow(headerRow, len(rows), r.config.MaxHeaderScan)
	return r.processRows(sheet, effective, rows), nil
}

// Preview returns up to n raw rows of a sheet, header included, for display
// before the user has picked a header row
func (r *WorkbookReader) Preview(sheet string, n int) ([][]string, error) {
	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows(sheet)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

// readExcelRows reads all rows of one sheet
func (r *WorkbookReader) readExcelRows(sheet string) ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	log.Printf("[WorkbookReader] Sheet %q read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readCSVRows reads all CSV records
func (r *WorkbookReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	return rows, nil
}

// processRows splits raw rows into header cells and padded data rows
func (r *WorkbookReader) processRows(sheet string, headerRow int, rows [][]string) *RawSheet {
	headers := rows[headerRow]

	// Data rows may be ragged; pad them so every row matches the header width.
	width := len(headers)
	for _, row := range rows[headerRow+1:] {
		if len(row) > width {
			width = len(row)
		}
	}
	if width > len(headers) {
		padded := make([]string, width)
		copy(padded, headers)
		headers = padded
	}

	dataRows := make([][]string, 0, len(rows)-headerRow-1)
	for _, row := range rows[headerRow+1:] {
		cells := make([]string, width)
		copy(cells, row)
		dataRows = append(dataRows, cells)
	}

	log.Printf("[WorkbookReader] %s sheet %q processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), sheet, len(headers), len(dataRows))

	return &RawSheet{
		SheetName: sheet,
		HeaderRow: headerRow,
		Headers:   headers,
		Rows:      dataRows,
	}
}

// ClampHeaderRow bounds a requested 0-based header index to the selectable
// range: never negative, never past maxScan, never past the last row.
func ClampHeaderRow(requested, rowCount, maxScan int) int {
	limit := maxScan
	if rowCount-1 < limit {
		limit = rowCount - 1
	}
	if limit < 0 {
		limit = 0
	}
	if requested < 0 {
		return 0
	}
	if requested > limit {
		return limit
	}
	return requested
}

package app

import (
	"fmt"
	"log"
	"time"

	"sheetlens/adapters/excel"
	"sheetlens/domain/table"
	"sheetlens/internal/profiling"
)

// AnalysisService runs the full spreadsheet pipeline: header normalization,
// cleaning, aggregation, inconsistency audit and chart payloads. It holds no
// state between calls; callers re-run it whenever an input changes.
type AnalysisService struct{}

// NewAnalysisService creates an analysis service
func NewAnalysisService() *AnalysisService {
	return &AnalysisService{}
}

// AnalysisRequest defines the inputs for one pipeline run. Empty column
// selections fall back to the leftmost columns, mirroring fresh-session
// defaults in the UI.
type AnalysisRequest struct {
	Sheet *excel.RawSheet

	UnitColumn      string // First grouping column
	PortfolioColumn string // Second grouping column
	PersonColumn    string // Target column for counts

	ValueColumn     string // Value column for the portfolio charts
	UnitValueColumn string // Value column for the per-unit totals chart
}

// Analysis contains the complete output of one pipeline run
type Analysis struct {
	Cleaned  table.Table
	Findings table.Findings
	Profiles []profiling.ColumnProfile

	UnitColumn      string
	PortfolioColumn string
	PersonColumn    string
	ValueColumn     string
	UnitValueColumn string

	PairCounts []table.PairCount
	UnitCounts []table.GroupCount

	GroupedBar *BarChart
	Pie        *PieChart
	PieWarning string
	UnitTotals *BarChart

	RuntimeMs int64
}

// BuildTable turns a raw sheet into a cleaned Table: headers uniquified,
// cells trimmed, duplicate and empty rows and empty columns removed
func (s *AnalysisService) BuildTable(sheet *excel.RawSheet) table.Table {
	t := table.Table{
		Columns: table.UniqueColumns(sheet.Headers),
		Rows:    make([]table.Row, 0, len(sheet.Rows)),
	}
	for _, raw := range sheet.Rows {
		row := make(table.Row, len(t.Columns))
		for i := range t.Columns {
			if i < len(raw) {
				row[i] = table.String(raw[i])
			} else {
				row[i] = table.Missing()
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return table.Clean(t)
}

// Run executes the pipeline for one request
func (s *AnalysisService) Run(req AnalysisRequest) (*Analysis, error) {
	if req.Sheet == nil {
		return nil, fmt.Errorf("no sheet to analyze")
	}
	startTime := time.Now()

	cleaned := s.BuildTable(req.Sheet)
	if len(cleaned.Columns) == 0 {
		return nil, fmt.Errorf("sheet %q has no usable columns after cleaning", req.Sheet.SheetName)
	}

	result := &Analysis{
		Cleaned:         cleaned,
		Findings:        table.Audit(cleaned),
		Profiles:        profiling.ProfileColumns(cleaned),
		UnitColumn:      defaultColumn(cleaned, req.UnitColumn, 0),
		PortfolioColumn: defaultColumn(cleaned, req.PortfolioColumn, 1),
		PersonColumn:    defaultColumn(cleaned, req.PersonColumn, 2),
	}
	result.ValueColumn = defaultColumn(cleaned, req.ValueColumn, len(cleaned.Columns)-1)
	result.UnitValueColumn = defaultColumn(cleaned, req.UnitValueColumn, len(cleaned.Columns)-1)

	pairs, units, err := table.CountBy(cleaned, result.UnitColumn, result.PortfolioColumn, result.PersonColumn)
	if err != nil {
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}
	result.PairCounts = pairs
	result.UnitCounts = units

	result.GroupedBar = BuildGroupedBar(cleaned, result.PortfolioColumn, result.UnitColumn, result.ValueColumn)
	result.Pie, result.PieWarning = BuildPie(cleaned, result.PortfolioColumn, result.ValueColumn)
	result.UnitTotals = BuildTotalsBar(cleaned, result.UnitColumn, result.UnitValueColumn)

	result.RuntimeMs = time.Since(startTime).Milliseconds()
	log.Printf("[AnalysisService] Pipeline run complete for sheet %q (%d rows, %d columns, %dms)",
		req.Sheet.SheetName, len(cleaned.Rows), len(cleaned.Columns), result.RuntimeMs)
	return result, nil
}

// defaultColumn resolves a selection to an existing column, falling back to
// the column at the given index when the selection is absent or stale
func defaultColumn(t table.Table, selected string, fallbackIdx int) string {
	if selected != "" {
		if _, ok := t.ColumnIndex(selected); ok {
			return selected
		}
	}
	if len(t.Columns) == 0 {
		return ""
	}
	if fallbackIdx < 0 {
		fallbackIdx = 0
	}
	if fallbackIdx >= len(t.Columns) {
		fallbackIdx = len(t.Columns) - 1
	}
	return t.Columns[fallbackIdx]
}

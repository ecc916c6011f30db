package api

import (
	"sheetlens/adapters/excel"
	"sheetlens/app"
	"sheetlens/internal/profiling"
)

// AnalysisResponse is the JSON shape of one pipeline run
type AnalysisResponse struct {
	Sheet     string `json:"sheet"`
	HeaderRow int    `json:"header_row"`

	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`

	Selections map[string]string `json:"selections"`

	PairCounts []PairCountResponse  `json:"pair_counts"`
	UnitCounts []GroupCountResponse `json:"unit_counts"`

	Inconsistencies []string `json:"inconsistencies"`

	GroupedBar *app.BarChart `json:"grouped_bar,omitempty"`
	Pie        *app.PieChart `json:"pie,omitempty"`
	PieWarning string        `json:"pie_warning,omitempty"`
	UnitTotals *app.BarChart `json:"unit_totals,omitempty"`

	Profiles []profiling.ColumnProfile `json:"profiles,omitempty"`

	RuntimeMs int64 `json:"runtime_ms"`
}

// PairCountResponse is one (unit, portfolio) count
type PairCountResponse struct {
	Unit      string `json:"unit"`
	Portfolio string `json:"portfolio"`
	Count     int    `json:"count"`
}

// GroupCountResponse is one per-unit count
type GroupCountResponse struct {
	Unit  string `json:"unit"`
	Count int    `json:"count"`
}

func buildAnalysisResponse(sheet *excel.RawSheet, analysis *app.Analysis) AnalysisResponse {
	resp := AnalysisResponse{
		Sheet:     sheet.SheetName,
		HeaderRow: sheet.HeaderRow,
		Columns:   analysis.Cleaned.Columns,
		Selections: map[string]string{
			"unit":       analysis.UnitColumn,
			"portfolio":  analysis.PortfolioColumn,
			"person":     analysis.PersonColumn,
			"value":      analysis.ValueColumn,
			"unit_value": analysis.UnitValueColumn,
		},
		Inconsistencies: analysis.Findings.Messages(),
		GroupedBar:      analysis.GroupedBar,
		Pie:             analysis.Pie,
		PieWarning:      analysis.PieWarning,
		UnitTotals:      analysis.UnitTotals,
		Profiles:        analysis.Profiles,
		RuntimeMs:       analysis.RuntimeMs,
	}

	resp.Rows = make([][]string, len(analysis.Cleaned.Rows))
	for i, row := range analysis.Cleaned.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = v.Display()
		}
		resp.Rows[i] = cells
	}

	for _, p := range analysis.PairCounts {
		resp.PairCounts = append(resp.PairCounts, PairCountResponse{
			Unit:      p.First.Display(),
			Portfolio: p.Second.Display(),
			Count:     p.Count,
		})
	}
	for _, g := range analysis.UnitCounts {
		resp.UnitCounts = append(resp.UnitCounts, GroupCountResponse{
			Unit:  g.Key.Display(),
			Count: g.Count,
		})
	}

	return resp
}

package app

import (
	"sheetlens/domain/table"
	"sheetlens/internal/coerce"
)

// ChartSeries is one named series of values aligned with the chart labels
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// BarChart is the payload for a bar chart; Series holds one entry per color
// group for grouped bars, or a single entry for plain totals
type BarChart struct {
	Title  string        `json:"title"`
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

// PieChart is the payload for a pie chart
type PieChart struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// BuildGroupedBar sums the coerced value column per (label, group) pair and
// lays the sums out as one series per group value. Labels and series keep
// first-seen row order.
func BuildGroupedBar(t table.Table, labelCol, groupCol, valueCol string) *BarChart {
	coerced, valid := coerce.Column(t, valueCol)
	if valid == 0 {
		return nil
	}

	li, ok := coerced.ColumnIndex(labelCol)
	if !ok {
		return nil
	}
	gi, ok := coerced.ColumnIndex(groupCol)
	if !ok {
		return nil
	}
	vi, _ := coerced.ColumnIndex(valueCol)

	chart := &BarChart{Title: "Portfolio performance by unit"}
	labelIdx := make(map[string]int)
	seriesIdx := make(map[string]int)
	sums := make(map[[2]int]float64)

	for _, row := range coerced.Rows {
		if vi >= len(row) || row[vi].Kind != table.KindNumber {
			continue
		}
		label := cellDisplay(row, li)
		group := cellDisplay(row, gi)

		l, ok := labelIdx[label]
		if !ok {
			l = len(chart.Labels)
			labelIdx[label] = l
			chart.Labels = append(chart.Labels, label)
		}
		g, ok := seriesIdx[group]
		if !ok {
			g = len(chart.Series)
			seriesIdx[group] = g
			chart.Series = append(chart.Series, ChartSeries{Name: group})
		}
		sums[[2]int{g, l}] += row[vi].Num
	}

	for g := range chart.Series {
		values := make([]float64, len(chart.Labels))
		for l := range chart.Labels {
			values[l] = sums[[2]int{g, l}]
		}
		chart.Series[g].Values = values
	}
	return chart
}

// BuildPie sums the coerced value column per label. When no numeric data
// survives coercion it returns no chart and a user-visible warning instead
// of failing.
func BuildPie(t table.Table, labelCol, valueCol string) (*PieChart, string) {
	coerced, valid := coerce.Column(t, valueCol)
	if valid == 0 {
		return nil, "Not enough numeric data to build the pie chart."
	}

	sums, err := table.SumBy(coerced, labelCol, valueCol)
	if err != nil || len(sums) == 0 {
		return nil, "Not enough numeric data to build the pie chart."
	}

	chart := &PieChart{Title: "Portfolio share"}
	for _, s := range sums {
		chart.Labels = append(chart.Labels, s.Key.Display())
		chart.Values = append(chart.Values, s.Sum)
	}
	return chart, ""
}

// BuildTotalsBar sums the coerced value column per label as a single series
func BuildTotalsBar(t table.Table, labelCol, valueCol string) *BarChart {
	coerced, valid := coerce.Column(t, valueCol)
	if valid == 0 {
		return nil
	}

	sums, err := table.SumBy(coerced, labelCol, valueCol)
	if err != nil || len(sums) == 0 {
		return nil
	}

	chart := &BarChart{Title: "Total value by unit"}
	series := ChartSeries{Name: valueCol}
	for _, s := range sums {
		chart.Labels = append(chart.Labels, s.Key.Display())
		series.Values = append(series.Values, s.Sum)
	}
	chart.Series = []ChartSeries{series}
	return chart
}

func cellDisplay(row table.Row, i int) string {
	if i >= len(row) || row[i].IsMissing() {
		return "(blank)"
	}
	return row[i].Display()
}

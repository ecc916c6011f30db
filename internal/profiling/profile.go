package profiling

import (
	"log"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"sheetlens/domain/table"
	"sheetlens/internal/coerce"
)

// minSampleSize is the smallest numeric sample worth summarizing;
// quartiles are meaningless below it.
const minSampleSize = 4

// ColumnProfile summarizes the numeric content of one column
type ColumnProfile struct {
	Column     string
	Count      int
	Mean       float64
	Median     float64
	StdDev     float64
	Min        float64
	Max        float64
	Q1         float64
	Q3         float64
	Outliers   int  // Values beyond the 1.5*IQR fences
	HeavyTails bool // More fence-crossers than a normal fit predicts
}

// ProfileColumns builds a profile for every column holding enough numeric
// data after coercion. Columns without enough numeric cells are skipped;
// profiling never fails the pipeline.
func ProfileColumns(t table.Table) []ColumnProfile {
	var profiles []ColumnProfile
	for _, column := range t.Columns {
		p, ok := profileColumn(t, column)
		if !ok {
			continue
		}
		profiles = append(profiles, p)
	}
	log.Printf("[Profiling] %d of %d columns profiled as numeric", len(profiles), len(t.Columns))
	return profiles
}

func profileColumn(t table.Table, column string) (ColumnProfile, bool) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return ColumnProfile{}, false
	}

	var data []float64
	for _, row := range t.Rows {
		if idx >= len(row) {
			continue
		}
		cell := coerce.Cell(row[idx])
		if cell.Kind == table.KindNumber {
			data = append(data, cell.Num)
		}
	}
	if len(data) < minSampleSize {
		return ColumnProfile{}, false
	}

	p := ColumnProfile{Column: column, Count: len(data)}
	var err error
	if p.Mean, err = stats.Mean(data); err != nil {
		return ColumnProfile{}, false
	}
	if p.Median, err = stats.Median(data); err != nil {
		return ColumnProfile{}, false
	}
	if p.StdDev, err = stats.StandardDeviation(data); err != nil {
		return ColumnProfile{}, false
	}
	if p.Min, err = stats.Min(data); err != nil {
		return ColumnProfile{}, false
	}
	if p.Max, err = stats.Max(data); err != nil {
		return ColumnProfile{}, false
	}
	if p.Q1, err = stats.Percentile(data, 25); err != nil {
		return ColumnProfile{}, false
	}
	if p.Q3, err = stats.Percentile(data, 75); err != nil {
		return ColumnProfile{}, false
	}

	iqr := p.Q3 - p.Q1
	lower := p.Q1 - 1.5*iqr
	upper := p.Q3 + 1.5*iqr
	for _, v := range data {
		if v < lower || v > upper {
			p.Outliers++
		}
	}

	// Compare the observed fence-crossers against what a normal fit to the
	// same mean and spread would predict.
	if p.StdDev > 0 {
		normal := distuv.Normal{Mu: p.Mean, Sigma: p.StdDev}
		expectedShare := normal.CDF(lower) + (1 - normal.CDF(upper))
		expected := expectedShare * float64(len(data))
		p.HeavyTails = float64(p.Outliers) > expected+1
	}

	return p, true
}

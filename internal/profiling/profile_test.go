package profiling

import (
	"testing"

	"sheetlens/domain/table"
)

func numericColumn(name string, values ...float64) table.Table {
	t := table.Table{Columns: []string{name}}
	for _, v := range values {
		t.Rows = append(t.Rows, table.Row{table.Number(v)})
	}
	return t
}

func TestProfileColumnsBasics(t *testing.T) {
	tbl := numericColumn("Sales", 10, 20, 30, 40, 50)

	profiles := ProfileColumns(tbl)
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}

	p := profiles[0]
	if p.Column != "Sales" || p.Count != 5 {
		t.Errorf("unexpected profile identity: %+v", p)
	}
	if p.Mean != 30 {
		t.Errorf("mean = %v, want 30", p.Mean)
	}
	if p.Median != 30 {
		t.Errorf("median = %v, want 30", p.Median)
	}
	if p.Min != 10 || p.Max != 50 {
		t.Errorf("min/max = %v/%v, want 10/50", p.Min, p.Max)
	}
}

func TestProfileColumnsSkipsNonNumeric(t *testing.T) {
	tbl := table.Table{
		Columns: []string{"Name"},
		Rows: []table.Row{
			{table.String("a")},
			{table.String("b")},
			{table.String("c")},
			{table.String("d")},
		},
	}

	if profiles := ProfileColumns(tbl); len(profiles) != 0 {
		t.Errorf("expected no profiles for text column, got %+v", profiles)
	}
}

func TestProfileColumnsSkipsTinySamples(t *testing.T) {
	tbl := numericColumn("Sales", 1, 2)
	if profiles := ProfileColumns(tbl); len(profiles) != 0 {
		t.Errorf("expected no profiles for tiny sample, got %+v", profiles)
	}
}

func TestProfileColumnsCoercesStrings(t *testing.T) {
	tbl := table.Table{
		Columns: []string{"Revenue"},
		Rows: []table.Row{
			{table.String("$100")},
			{table.String("200")},
			{table.String("300")},
			{table.String("1.400,50")},
			{table.String("not a number")},
		},
	}

	profiles := ProfileColumns(tbl)
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].Count != 4 {
		t.Errorf("expected 4 coerced values, got %d", profiles[0].Count)
	}
}

func TestProfileColumnsFlagsOutliers(t *testing.T) {
	tbl := numericColumn("Sales", 10, 11, 12, 13, 14, 15, 16, 17, 18, 1000)

	profiles := ProfileColumns(tbl)
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].Outliers == 0 {
		t.Error("expected the extreme value to be counted as an outlier")
	}
}

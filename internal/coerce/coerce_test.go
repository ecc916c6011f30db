package coerce

import (
	"testing"

	"sheetlens/domain/table"
)

func TestNumeric(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"plain integer", "42", 42, true},
		{"plain float", "3.14", 3.14, true},
		{"thousands separator", "1,234,567", 1234567, true},
		{"currency dollar", "$45000", 45000, true},
		{"currency real", "R$ 1.234,56", 1234.56, true},
		{"european decimal", "1.234,56", 1234.56, true},
		{"french thousands", "1 234,56", 1234.56, true},
		{"comma decimal only", "12,5", 12.5, true},
		{"percent", "85%", 85, true},
		{"parentheses negative", "(123)", -123, true},
		{"scientific notation", "1e3", 1000, true},
		{"padded", "  7  ", 7, true},
		{"empty", "", 0, false},
		{"text", "north", 0, false},
		{"mixed garbage", "12abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Numeric(tt.input)
			if ok != tt.ok {
				t.Fatalf("Numeric(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("Numeric(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestColumn(t *testing.T) {
	tbl := table.Table{
		Columns: []string{"Portfolio", "Sales"},
		Rows: []table.Row{
			{table.String("X"), table.String("$100")},
			{table.String("Y"), table.String("oops")},
			{table.String("Z"), table.Number(7)},
		},
	}

	got, valid := Column(tbl, "Sales")

	if valid != 2 {
		t.Errorf("expected 2 valid numeric cells, got %d", valid)
	}
	if got.Rows[0][1] != table.Number(100) {
		t.Errorf("expected coerced 100, got %+v", got.Rows[0][1])
	}
	if !got.Rows[1][1].IsMissing() {
		t.Errorf("expected failed coercion to become missing, got %+v", got.Rows[1][1])
	}
	if got.Rows[2][1] != table.Number(7) {
		t.Errorf("expected number to pass through, got %+v", got.Rows[2][1])
	}

	// Source table must not be mutated.
	if tbl.Rows[0][1].Kind != table.KindString {
		t.Error("source table was mutated")
	}
}

func TestColumnAllInvalid(t *testing.T) {
	tbl := table.Table{
		Columns: []string{"Name"},
		Rows: []table.Row{
			{table.String("alpha")},
			{table.String("beta")},
		},
	}

	_, valid := Column(tbl, "Name")
	if valid != 0 {
		t.Errorf("expected no valid numeric cells, got %d", valid)
	}
}

package coerce

import (
	"math"
	"strconv"
	"strings"

	"sheetlens/domain/table"
)

// Numeric attempts to parse a raw cell as a number. It tolerates the formats
// real spreadsheets carry: currency symbols, percent signs, parentheses for
// negatives, and European/French separators (1.234,56 / 1 234,56). A value
// that cannot be parsed is rejected rather than guessed.
func Numeric(strVal string) (float64, bool) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return 0, false
	}

	// Parentheses for negative numbers: (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimPrefix(cleanVal, "(")
		cleanVal = strings.TrimSuffix(cleanVal, ")")
		isNegative = true
	}

	// R$ before $ so the Brazilian symbol is stripped whole.
	currencySymbols := []string{"R$", "$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY", "BRL"}
	for _, symbol := range currencySymbols {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.TrimSpace(cleanVal)
	cleanVal = strings.ReplaceAll(cleanVal, "%", "")

	hasComma := strings.Contains(cleanVal, ",")
	hasPeriod := strings.Contains(cleanVal, ".")
	hasSpace := strings.Contains(cleanVal, " ")

	// European format uses period/space as thousands separator and comma as
	// the decimal separator.
	if hasComma && (hasPeriod || hasSpace) {
		commaIdx := strings.LastIndex(cleanVal, ",")
		afterComma := cleanVal[commaIdx+1:]
		if len(afterComma) <= 3 && isDigits(afterComma) {
			cleanVal = strings.ReplaceAll(cleanVal, ".", "")
			cleanVal = strings.ReplaceAll(cleanVal, " ", "")
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		} else {
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		}
	} else if hasComma && !hasPeriod {
		// A single comma reads as a decimal separator; several commas can
		// only be thousands separators.
		if strings.Count(cleanVal, ",") > 1 {
			cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		} else {
			cleanVal = strings.ReplaceAll(cleanVal, ",", ".")
		}
	} else {
		cleanVal = strings.ReplaceAll(cleanVal, ",", "")
		cleanVal = strings.ReplaceAll(cleanVal, " ", "")
	}

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	if val, err := strconv.ParseFloat(cleanVal, 64); err == nil {
		if !math.IsInf(val, 0) && !math.IsNaN(val) {
			if isNegative {
				// Guard against inputs like (-5) producing a double negative.
				val = -math.Abs(val)
			}
			return val, true
		}
	}

	return 0, false
}

// Cell coerces a single cell to numeric. Numbers pass through, strings go
// through Numeric, and anything that fails becomes missing.
func Cell(v table.Value) table.Value {
	switch v.Kind {
	case table.KindNumber:
		return v
	case table.KindString:
		if n, ok := Numeric(v.Str); ok {
			return table.Number(n)
		}
	}
	return table.Missing()
}

// Column returns a copy of the table with the named column coerced to
// numeric cells. Cells that fail coercion become missing, matching the
// behavior the charts rely on: failed values are simply excluded from sums.
// The second return value reports how many cells parsed as numbers.
func Column(t table.Table, column string) (table.Table, int) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		return t, 0
	}

	out := t.Clone()
	valid := 0
	for _, row := range out.Rows {
		if idx >= len(row) {
			continue
		}
		row[idx] = Cell(row[idx])
		if row[idx].Kind == table.KindNumber {
			valid++
		}
	}
	return out, valid
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

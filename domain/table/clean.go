package table

import "strings"

// Clean equalizes a table: string cells are trimmed (a cell that trims down
// to nothing becomes missing), exact-duplicate rows are dropped keeping the
// first occurrence, then fully-empty rows and fully-empty columns are
// removed. The relative order of surviving rows and columns is preserved.
// Cleaning an already-clean table returns an equal table.
func Clean(t Table) Table {
	trimmed := trimCells(t)
	deduped := dropDuplicateRows(trimmed)
	deduped.Rows = dropEmptyRows(deduped.Rows)
	return dropEmptyColumns(deduped)
}

func trimCells(t Table) Table {
	out := t.Clone()
	for _, row := range out.Rows {
		for i, v := range row {
			if v.Kind == KindString {
				row[i] = String(strings.TrimSpace(v.Str))
			}
		}
	}
	return out
}

func dropDuplicateRows(t Table) Table {
	seen := make(map[string]bool, len(t.Rows))
	rows := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		key := row.key()
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, row)
	}
	t.Rows = rows
	return t
}

func dropEmptyRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if !row.allMissing() {
			out = append(out, row)
		}
	}
	return out
}

func dropEmptyColumns(t Table) Table {
	keep := make([]int, 0, len(t.Columns))
	for i := range t.Columns {
		empty := true
		for _, row := range t.Rows {
			if i < len(row) && !row[i].IsMissing() {
				empty = false
				break
			}
		}
		if !empty {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(t.Columns) {
		return t
	}

	out := Table{Columns: make([]string, len(keep)), Rows: make([]Row, len(t.Rows))}
	for j, i := range keep {
		out.Columns[j] = t.Columns[i]
	}
	for r, row := range t.Rows {
		next := make(Row, len(keep))
		for j, i := range keep {
			if i < len(row) {
				next[j] = row[i]
			} else {
				next[j] = Missing()
			}
		}
		out.Rows[r] = next
	}
	return out
}

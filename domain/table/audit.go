package table

// Findings reports data-quality issues found in a table. The two checks are
// independent; both may fire, or neither.
type Findings struct {
	MissingValues bool
	DuplicateRows bool
}

// Messages returns the user-facing warning for each finding that fired
func (f Findings) Messages() []string {
	var msgs []string
	if f.MissingValues {
		msgs = append(msgs, "Missing values present in the dataset.")
	}
	if f.DuplicateRows {
		msgs = append(msgs, "Duplicate rows present in the dataset.")
	}
	return msgs
}

// Clean reports whether no inconsistency was found
func (f Findings) Clean() bool {
	return !f.MissingValues && !f.DuplicateRows
}

// Audit checks a table for missing cells and exact-duplicate rows
func Audit(t Table) Findings {
	var f Findings

	for _, row := range t.Rows {
		for _, v := range row {
			if v.IsMissing() {
				f.MissingValues = true
				break
			}
		}
		if f.MissingValues {
			break
		}
	}

	seen := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		key := row.key()
		if seen[key] {
			f.DuplicateRows = true
			break
		}
		seen[key] = true
	}

	return f
}

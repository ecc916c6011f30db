package table

import "fmt"

// PairCount is the count of non-empty target values for one combination of
// the two grouping columns
type PairCount struct {
	First  Value
	Second Value
	Count  int
}

// GroupCount is the count of non-empty target values for one value of a
// single grouping column
type GroupCount struct {
	Key   Value
	Count int
}

// GroupSum is the sum of numeric target values for one value of a single
// grouping column
type GroupSum struct {
	Key Value
	Sum float64
}

type pairKey struct {
	first  Value
	second Value
}

// CountBy counts non-empty values of the target column per distinct
// combination of the two grouping columns, and separately per distinct value
// of the first grouping column alone. Keys compare by exact value equality
// and results keep first-seen row order.
func CountBy(t Table, first, second, target string) ([]PairCount, []GroupCount, error) {
	fi, ok := t.ColumnIndex(first)
	if !ok {
		return nil, nil, fmt.Errorf("grouping column %q not found", first)
	}
	si, ok := t.ColumnIndex(second)
	if !ok {
		return nil, nil, fmt.Errorf("grouping column %q not found", second)
	}
	ti, ok := t.ColumnIndex(target)
	if !ok {
		return nil, nil, fmt.Errorf("target column %q not found", target)
	}

	pairIdx := make(map[pairKey]int)
	groupIdx := make(map[Value]int)
	var pairs []PairCount
	var groups []GroupCount

	for _, row := range t.Rows {
		if ti >= len(row) || row[ti].IsMissing() {
			continue
		}
		fv, sv := cellAt(row, fi), cellAt(row, si)

		pk := pairKey{first: fv, second: sv}
		if i, ok := pairIdx[pk]; ok {
			pairs[i].Count++
		} else {
			pairIdx[pk] = len(pairs)
			pairs = append(pairs, PairCount{First: fv, Second: sv, Count: 1})
		}

		if i, ok := groupIdx[fv]; ok {
			groups[i].Count++
		} else {
			groupIdx[fv] = len(groups)
			groups = append(groups, GroupCount{Key: fv, Count: 1})
		}
	}

	return pairs, groups, nil
}

// SumBy sums numeric target values per distinct value of the grouping column.
// Cells that are not numbers (including missing cells) are excluded, and a
// group with no numeric target cell at all does not appear in the result.
// Results keep first-seen row order.
func SumBy(t Table, group, target string) ([]GroupSum, error) {
	gi, ok := t.ColumnIndex(group)
	if !ok {
		return nil, fmt.Errorf("grouping column %q not found", group)
	}
	ti, ok := t.ColumnIndex(target)
	if !ok {
		return nil, fmt.Errorf("target column %q not found", target)
	}

	idx := make(map[Value]int)
	var sums []GroupSum
	for _, row := range t.Rows {
		if ti >= len(row) || row[ti].Kind != KindNumber {
			continue
		}
		gv := cellAt(row, gi)
		if i, ok := idx[gv]; ok {
			sums[i].Sum += row[ti].Num
		} else {
			idx[gv] = len(sums)
			sums = append(sums, GroupSum{Key: gv, Sum: row[ti].Num})
		}
	}
	return sums, nil
}

func cellAt(row Row, i int) Value {
	if i >= len(row) {
		return Missing()
	}
	return row[i]
}

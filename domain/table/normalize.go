package table

import (
	"fmt"
	"strings"
)

// UniqueColumns normalizes raw column names into unique display names.
// Each name is trimmed and title-cased. The first occurrence of a name keeps
// the bare name; later occurrences get an underscore and a 1-based counter
// ("Name", "Name_1", "Name_2", ...). Output has the same length and order as
// the input and never fails. Applying it to its own output is a no-op.
func UniqueColumns(raw []string) []string {
	seen := make(map[string]int, len(raw))
	taken := make(map[string]bool, len(raw))
	result := make([]string, 0, len(raw))

	for _, col := range raw {
		name := strings.Title(strings.ToLower(strings.TrimSpace(col)))
		if !taken[name] {
			taken[name] = true
			result = append(result, name)
			continue
		}
		// Bump the per-name counter until the suffixed candidate is free,
		// so a raw "Name_1" cannot collide with a generated one.
		candidate := name
		for taken[candidate] {
			seen[name]++
			candidate = fmt.Sprintf("%s_%d", name, seen[name])
		}
		taken[candidate] = true
		result = append(result, candidate)
	}

	return result
}

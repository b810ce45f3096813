package table

import (
	"sort"
	"strings"
)

type SortSpec struct {
	Columns   []string `json:"values"`
	Ascending []bool   `json:"ascending"`
}

type sortKey struct {
	col int
	asc bool
}

// resolve checks the spec against t without touching any rows.
func (s *SortSpec) resolve(t *Table) ([]sortKey, error) {
	if len(s.Columns) == 0 {
		return nil, queryErrorf(KindInvalidSort, "no columns to sort by")
	}
	if n := len(s.Ascending); n > 1 && n != len(s.Columns) {
		return nil, queryErrorf(KindInvalidSort, "Length of ascending (%d) != length of by (%d)", n, len(s.Columns))
	}
	keys := make([]sortKey, len(s.Columns))
	for i, name := range s.Columns {
		col, ok := t.ColumnIndex(name)
		if !ok {
			return nil, queryErrorf(KindUnknownColumn, "column '%s' not found", name)
		}
		asc := true
		switch len(s.Ascending) {
		case 0:
		case 1:
			asc = s.Ascending[0]
		default:
			asc = s.Ascending[i]
		}
		keys[i] = sortKey{col: col, asc: asc}
	}
	return keys, nil
}

// sortRows orders rows and their original positions together. Nulls sort
// last regardless of direction.
func sortRows(rows [][]Value, index []int, keys []sortKey) {
	perm := make([]int, len(rows))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		ra, rb := rows[perm[a]], rows[perm[b]]
		for _, k := range keys {
			c := compareValues(ra[k.col], rb[k.col], k.asc)
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	sortedRows := make([][]Value, len(rows))
	sortedIndex := make([]int, len(rows))
	for i, p := range perm {
		sortedRows[i] = rows[p]
		sortedIndex[i] = index[p]
	}
	copy(rows, sortedRows)
	copy(index, sortedIndex)
}

func compareValues(a, b Value, asc bool) int {
	switch {
	case a.IsNull() && b.IsNull():
		return 0
	case a.IsNull():
		return 1
	case b.IsNull():
		return -1
	}
	var c int
	if a.Kind == Number {
		c = compareNumbers(a, b)
	} else {
		c = strings.Compare(a.Str, b.Str)
	}
	if !asc {
		c = -c
	}
	return c
}

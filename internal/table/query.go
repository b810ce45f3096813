package table

import (
	"io"
	"strings"
)

// Spec is a view request. A nil Sort and an empty Filter pass every row
// through in file order.
type Spec struct {
	Sort   *SortSpec
	Filter string
}

// Result is a table in split orientation: Index holds the 0-based row
// positions in the original file.
type Result struct {
	Columns []string `json:"columns"`
	Index   []int    `json:"index"`
	Data    [][]any  `json:"data"`
}

// Query loads a delimited file and applies spec to it.
func Query(r io.Reader, delimiter rune, spec Spec) (*Result, error) {
	t, err := Load(r, delimiter)
	if err != nil {
		return nil, err
	}
	return t.Query(spec)
}

// Query validates both parts of spec before doing any work, then filters and
// sorts. t is not modified.
func (t *Table) Query(spec Spec) (*Result, error) {
	var pred Predicate
	if strings.TrimSpace(spec.Filter) != "" {
		p, err := CompileFilter(t, spec.Filter)
		if err != nil {
			return nil, err
		}
		pred = p
	}
	var keys []sortKey
	if spec.Sort != nil {
		k, err := spec.Sort.resolve(t)
		if err != nil {
			return nil, err
		}
		keys = k
	}

	rows := make([][]Value, 0, len(t.Rows))
	index := make([]int, 0, len(t.Rows))
	for i, row := range t.Rows {
		if pred != nil && !pred(row) {
			continue
		}
		rows = append(rows, row)
		index = append(index, i)
	}
	if keys != nil {
		sortRows(rows, index, keys)
	}
	return t.result(rows, index), nil
}

func (t *Table) result(rows [][]Value, index []int) *Result {
	res := &Result{
		Columns: t.ColumnNames(),
		Index:   index,
		Data:    make([][]any, len(rows)),
	}
	for i, row := range rows {
		out := make([]any, len(row))
		for j, v := range row {
			out[j] = cell(v, t.Columns[j].Type)
		}
		res.Data[i] = out
	}
	return res
}

// Package table loads delimited files into typed in-memory tables and
// evaluates sort and filter requests against them.
package table

import (
	"cmp"
	"strconv"
)

// Type is the inferred type of a column.
type Type int

const (
	// TypeEmpty is a column with no non-null cells.
	TypeEmpty Type = iota
	TypeInteger
	TypeFloat
	TypeString
)

var typeNames = [...]string{"empty", "integer", "float", "string"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

func (t Type) numeric() bool {
	return t == TypeInteger || t == TypeFloat
}

type Kind uint8

const (
	Null Kind = iota
	Number
	String
)

// Value is one cell. Num always carries a number; when Exact is set Int holds
// the same value without the float64 rounding above 2^53.
type Value struct {
	Kind  Kind
	Num   float64
	Int   int64
	Exact bool
	Str   string
}

func NumberValue(f float64) Value {
	return Value{Kind: Number, Num: f}
}

func IntegerValue(i int64) Value {
	return Value{Kind: Number, Num: float64(i), Int: i, Exact: true}
}

func StringValue(s string) Value {
	return Value{Kind: String, Str: s}
}

func (v Value) IsNull() bool {
	return v.Kind == Null
}

// compareNumbers orders two Number values, on Int when both are exact.
func compareNumbers(a, b Value) int {
	if a.Exact && b.Exact {
		return cmp.Compare(a.Int, b.Int)
	}
	return cmp.Compare(a.Num, b.Num)
}

type Column struct {
	Name string `json:"name"`
	Type Type   `json:"-"`
}

// Table is an ordered list of columns and row-major cells. Every row has
// exactly len(Columns) cells.
type Table struct {
	Columns []Column
	Rows    [][]Value

	index map[string]int
}

func newTable(columns []Column, rows [][]Value) *Table {
	t := &Table{Columns: columns, Rows: rows, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		t.index[c.Name] = i
	}
	return t
}

func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// cell renders v for JSON output using the column type.
func cell(v Value, typ Type) any {
	switch v.Kind {
	case Number:
		if typ == TypeInteger {
			return v.Int
		}
		return v.Num
	case String:
		return v.Str
	default:
		return nil
	}
}

package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Cells with these exact contents are read as null, like the usual CSV
// readers do.
var naValues = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ValidDelimiter reports whether r can separate fields.
func ValidDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}

func newReader(r io.Reader, delimiter rune) (*csv.Reader, error) {
	if !ValidDelimiter(delimiter) {
		return nil, queryErrorf(KindSchema, "invalid delimiter %q", delimiter)
	}

	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		// Peek already buffered these bytes, so Discard cannot come up short.
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr, nil
}

func readRecord(cr *csv.Reader) ([]string, error) {
	rec, err := cr.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, queryErrorf(KindSchema, "Error tokenizing data: %v", pe)
		}
		return nil, err
	}
	return rec, nil
}

func headerColumns(rec []string) ([]Column, error) {
	seen := make(map[string]bool, len(rec))
	cols := make([]Column, len(rec))
	for i, name := range rec {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if seen[name] {
			return nil, queryErrorf(KindSchema, "duplicate column name '%s'", name)
		}
		seen[name] = true
		cols[i] = Column{Name: name}
	}
	return cols, nil
}

// ReadHeader returns the column names of a delimited file without reading
// the body. An empty file has no columns.
func ReadHeader(r io.Reader, delimiter rune) ([]string, error) {
	cr, err := newReader(r, delimiter)
	if err != nil {
		return nil, err
	}
	rec, err := readRecord(cr)
	if err == io.EOF {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	cols, err := headerColumns(rec)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names, nil
}

// Load parses a delimited file whose first record is the header. Rows
// shorter than the header are padded with nulls; longer rows are an error.
func Load(r io.Reader, delimiter rune) (*Table, error) {
	cr, err := newReader(r, delimiter)
	if err != nil {
		return nil, err
	}

	rec, err := readRecord(cr)
	if err == io.EOF {
		return newTable([]Column{}, [][]Value{}), nil
	}
	if err != nil {
		return nil, err
	}
	cols, err := headerColumns(rec)
	if err != nil {
		return nil, err
	}

	var raw [][]string
	for {
		rec, err := readRecord(cr)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) > len(cols) {
			line, _ := cr.FieldPos(0)
			return nil, queryErrorf(KindSchema, "Expected %d fields in line %d, saw %d", len(cols), line, len(rec))
		}
		raw = append(raw, rec)
	}

	for i := range cols {
		cols[i].Type = inferType(raw, i)
	}

	rows := make([][]Value, len(raw))
	for r, rec := range raw {
		row := make([]Value, len(cols))
		for i := range cols {
			if i < len(rec) {
				row[i] = convert(rec[i], cols[i].Type)
			}
		}
		rows[r] = row
	}

	return newTable(cols, rows), nil
}

func inferType(raw [][]string, col int) Type {
	nonNull, allInt, allFloat := false, true, true
	for _, rec := range raw {
		if col >= len(rec) || naValues[rec[col]] {
			continue
		}
		nonNull = true
		s := strings.TrimSpace(rec[col])
		if allInt {
			if _, ok := parseInt(s); !ok {
				allInt = false
			}
		}
		if !allInt {
			if _, ok := parseFloat(s); !ok {
				allFloat = false
				break
			}
		}
	}
	switch {
	case !nonNull:
		return TypeEmpty
	case allInt:
		return TypeInteger
	case allFloat:
		return TypeFloat
	default:
		return TypeString
	}
}

func convert(s string, typ Type) Value {
	if naValues[s] {
		return Value{}
	}
	switch typ {
	case TypeInteger:
		i, _ := parseInt(strings.TrimSpace(s))
		return IntegerValue(i)
	case TypeFloat:
		f, _ := parseFloat(strings.TrimSpace(s))
		return NumberValue(f)
	default:
		return StringValue(s)
	}
}

func parseInt(s string) (int64, bool) {
	i, err := strconv.ParseInt(s, 10, 64)
	return i, err == nil
}

// parseFloat accepts decimal notation only: no hex floats, no infinities.
func parseFloat(s string) (float64, bool) {
	if s == "" || strings.ContainsAny(s, "xXpP_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

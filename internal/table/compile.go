package table

import (
	"math"
	"strconv"
	"strings"
)

// Predicate reports whether a row is kept by a filter.
type Predicate func(row []Value) bool

// valueType is the static type of a compiled sub-expression.
type valueType int

const (
	vNumber valueType = iota
	vString
	vNull // column with no values; compatible with anything
	vBool
)

var valueTypeNames = [...]string{"number", "string", "null", "boolean"}

func (t valueType) String() string {
	return valueTypeNames[t]
}

type compiled struct {
	typ  valueType
	val  func(row []Value) Value
	pred Predicate
}

// CompileFilter parses input and binds it to the columns of t. Unknown
// columns are reported before any type errors.
func CompileFilter(t *Table, input string) (Predicate, error) {
	expr, err := ParseFilter(input)
	if err != nil {
		return nil, err
	}
	if err := checkNames(t, expr); err != nil {
		return nil, err
	}
	c, err := compileExpr(t, expr)
	if err != nil {
		return nil, err
	}
	if c.typ != vBool {
		return nil, queryErrorf(KindSyntax, "filter must be a condition, got %s %s", c.typ, expr)
	}
	return c.pred, nil
}

func checkNames(t *Table, e Expr) error {
	switch e := e.(type) {
	case *identExpr:
		if _, ok := t.ColumnIndex(e.name); !ok {
			return queryErrorf(KindUnknownColumn, "name '%s' is not defined", e.name)
		}
	case *negExpr:
		return checkNames(t, e.opd)
	case *notExpr:
		return checkNames(t, e.opd)
	case *logicalExpr:
		if err := checkNames(t, e.lhs); err != nil {
			return err
		}
		return checkNames(t, e.rhs)
	case *compareExpr:
		for _, o := range e.operands {
			if err := checkNames(t, o); err != nil {
				return err
			}
		}
	}
	return nil
}

func compileExpr(t *Table, e Expr) (compiled, error) {
	switch e := e.(type) {
	case *identExpr:
		col, _ := t.ColumnIndex(e.name)
		var typ valueType
		switch t.Columns[col].Type {
		case TypeInteger, TypeFloat:
			typ = vNumber
		case TypeString:
			typ = vString
		default:
			typ = vNull
		}
		return compiled{typ: typ, val: func(row []Value) Value { return row[col] }}, nil

	case *numberExpr:
		v := NumberValue(e.value)
		if i, err := strconv.ParseInt(e.text, 10, 64); err == nil {
			v = IntegerValue(i)
		}
		return compiled{typ: vNumber, val: func([]Value) Value { return v }}, nil

	case *stringExpr:
		v := StringValue(e.value)
		return compiled{typ: vString, val: func([]Value) Value { return v }}, nil

	case *negExpr:
		opd, err := compileExpr(t, e.opd)
		if err != nil {
			return compiled{}, err
		}
		if opd.typ != vNumber && opd.typ != vNull {
			return compiled{}, queryErrorf(KindType, "bad operand type for unary -: %s at position %d", opd.typ, e.pos)
		}
		f := opd.val
		return compiled{typ: opd.typ, val: func(row []Value) Value {
			v := f(row)
			if v.Kind != Number {
				return v
			}
			if v.Exact && v.Int != math.MinInt64 {
				return IntegerValue(-v.Int)
			}
			return NumberValue(-v.Num)
		}}, nil

	case *notExpr:
		opd, err := compileExpr(t, e.opd)
		if err != nil {
			return compiled{}, err
		}
		if opd.typ != vBool {
			return compiled{}, queryErrorf(KindSyntax, "operand of 'not' must be a condition, got %s %s", opd.typ, e.opd)
		}
		p := opd.pred
		return compiled{typ: vBool, pred: func(row []Value) bool { return !p(row) }}, nil

	case *logicalExpr:
		lhs, err := compileExpr(t, e.lhs)
		if err != nil {
			return compiled{}, err
		}
		rhs, err := compileExpr(t, e.rhs)
		if err != nil {
			return compiled{}, err
		}
		for _, side := range []struct {
			c compiled
			e Expr
		}{{lhs, e.lhs}, {rhs, e.rhs}} {
			if side.c.typ != vBool {
				return compiled{}, queryErrorf(KindSyntax, "operands of logical operators must be conditions, got %s %s", side.c.typ, side.e)
			}
		}
		l, r := lhs.pred, rhs.pred
		if e.and {
			return compiled{typ: vBool, pred: func(row []Value) bool { return l(row) && r(row) }}, nil
		}
		return compiled{typ: vBool, pred: func(row []Value) bool { return l(row) || r(row) }}, nil

	case *compareExpr:
		return compileCompare(t, e)
	}
	return compiled{}, queryErrorf(KindSyntax, "unsupported expression %s", e)
}

// compileCompare expands a < b < c into (a < b) and (b < c).
func compileCompare(t *Table, e *compareExpr) (compiled, error) {
	operands := make([]compiled, len(e.operands))
	for i, o := range e.operands {
		c, err := compileExpr(t, o)
		if err != nil {
			return compiled{}, err
		}
		if c.typ == vBool {
			return compiled{}, queryErrorf(KindSyntax, "cannot compare a condition: %s", o)
		}
		operands[i] = c
	}
	preds := make([]Predicate, len(e.ops))
	for i, op := range e.ops {
		l, r := operands[i], operands[i+1]
		if op != opEq && op != opNe && l.typ != r.typ && l.typ != vNull && r.typ != vNull {
			return compiled{}, queryErrorf(KindType, "'%s' not supported between %s and %s", op, l.typ, r.typ)
		}
		preds[i] = comparison(op, l.val, r.val)
	}
	if len(preds) == 1 {
		return compiled{typ: vBool, pred: preds[0]}, nil
	}
	return compiled{typ: vBool, pred: func(row []Value) bool {
		for _, p := range preds {
			if !p(row) {
				return false
			}
		}
		return true
	}}, nil
}

// comparison builds a predicate with missing-value semantics: any comparison
// against null is false except '!=', which is true. Values of different kinds
// are never equal.
func comparison(op cmpOp, lf, rf func([]Value) Value) Predicate {
	return func(row []Value) bool {
		l, r := lf(row), rf(row)
		if l.IsNull() || r.IsNull() || l.Kind != r.Kind {
			return op == opNe
		}
		var c int
		if l.Kind == Number {
			c = compareNumbers(l, r)
		} else {
			c = strings.Compare(l.Str, r.Str)
		}
		switch op {
		case opEq:
			return c == 0
		case opNe:
			return c != 0
		case opLt:
			return c < 0
		case opLe:
			return c <= 0
		case opGt:
			return c > 0
		default:
			return c >= 0
		}
	}
}

package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a parsed filter expression. String renders it in prefix form,
// e.g. (and (> age 25) (== name 'a')).
type Expr interface {
	fmt.Stringer
	position() int
}

type cmpOp int

const (
	opEq cmpOp = iota
	opNe
	opLt
	opLe
	opGt
	opGe
)

var cmpOpNames = [...]string{"==", "!=", "<", "<=", ">", ">="}

func (op cmpOp) String() string {
	return cmpOpNames[op]
}

var tokenToCmp = map[tokenKind]cmpOp{
	tEq: opEq, tNe: opNe, tLt: opLt, tLe: opLe, tGt: opGt, tGe: opGe,
}

type identExpr struct {
	name string
	pos  int
}

func (e *identExpr) String() string { return e.name }
func (e *identExpr) position() int  { return e.pos }

type numberExpr struct {
	value float64
	text  string
	pos   int
}

func (e *numberExpr) String() string { return e.text }
func (e *numberExpr) position() int  { return e.pos }

type stringExpr struct {
	value string
	pos   int
}

func (e *stringExpr) String() string { return strconv.Quote(e.value) }
func (e *stringExpr) position() int  { return e.pos }

type negExpr struct {
	opd Expr
	pos int
}

func (e *negExpr) String() string { return fmt.Sprintf("(- %s)", e.opd) }
func (e *negExpr) position() int  { return e.pos }

// compareExpr holds a possibly chained comparison: a < b <= c has two ops
// and three operands.
type compareExpr struct {
	ops      []cmpOp
	operands []Expr
}

func (e *compareExpr) String() string {
	parts := make([]string, len(e.ops))
	for i, op := range e.ops {
		parts[i] = fmt.Sprintf("(%s %s %s)", op, e.operands[i], e.operands[i+1])
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(and " + strings.Join(parts, " ") + ")"
}
func (e *compareExpr) position() int { return e.operands[0].position() }

type logicalExpr struct {
	and      bool
	lhs, rhs Expr
}

func (e *logicalExpr) String() string {
	op := "or"
	if e.and {
		op = "and"
	}
	return fmt.Sprintf("(%s %s %s)", op, e.lhs, e.rhs)
}
func (e *logicalExpr) position() int { return e.lhs.position() }

type notExpr struct {
	opd Expr
	pos int
}

func (e *notExpr) String() string { return fmt.Sprintf("(not %s)", e.opd) }
func (e *notExpr) position() int  { return e.pos }

// ParseFilter parses a filter expression:
//
//	expr    := or
//	or      := and { "or" and }
//	and     := not { "and" not }
//	not     := "not" not | compare
//	compare := unary { cmpop unary }
//	unary   := "-" unary | primary
//	primary := NUMBER | STRING | IDENT | "(" expr ")"
//
// and binds tighter than or; not binds tighter than and.
func ParseFilter(input string) (Expr, error) {
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tEOF {
		return nil, queryErrorf(KindSyntax, "empty expression")
	}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tEOF {
		return nil, p.unexpected(tok)
	}
	return e, nil
}

// maxDepth bounds nesting of parentheses, 'not' and unary minus so that a
// hostile filter cannot exhaust the goroutine stack.
const maxDepth = 256

type parser struct {
	toks  []token
	i     int
	depth int
}

// enter counts one nesting level opened at tok. The caller defers p.leave().
func (p *parser) enter(tok token) error {
	p.depth++
	if p.depth > maxDepth {
		return queryErrorf(KindSyntax, "expression nested too deeply at position %d", tok.pos)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) advance() token {
	tok := p.toks[p.i]
	if tok.kind != tEOF {
		p.i++
	}
	return tok
}

func (p *parser) unexpected(tok token) error {
	if tok.kind == tEOF {
		return queryErrorf(KindSyntax, "unexpected end of expression at position %d", tok.pos)
	}
	return queryErrorf(KindSyntax, "unexpected %s at position %d", tok.kind, tok.pos)
}

func (p *parser) parseOr() (Expr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tOr {
		p.advance()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &logicalExpr{and: false, lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseAnd() (Expr, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tAnd {
		p.advance()
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = &logicalExpr{and: true, lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseNot() (Expr, error) {
	if tok := p.peek(); tok.kind == tNot {
		p.advance()
		defer p.leave()
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		opd, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &notExpr{opd: opd, pos: tok.pos}, nil
	}
	return p.parseCompare()
}

func (p *parser) parseCompare() (Expr, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	cmp := &compareExpr{operands: []Expr{first}}
	for {
		op, ok := tokenToCmp[p.peek().kind]
		if !ok {
			break
		}
		p.advance()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		cmp.ops = append(cmp.ops, op)
		cmp.operands = append(cmp.operands, rhs)
	}
	if len(cmp.ops) == 0 {
		return first, nil
	}
	return cmp, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if tok := p.peek(); tok.kind == tMinus {
		p.advance()
		defer p.leave()
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		opd, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		// Fold literal negation so -3 prints and evaluates as a number.
		if n, ok := opd.(*numberExpr); ok {
			return &numberExpr{value: -n.value, text: "-" + n.text, pos: tok.pos}, nil
		}
		return &negExpr{opd: opd, pos: tok.pos}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.advance()
	switch tok.kind {
	case tIdent:
		return &identExpr{name: tok.text, pos: tok.pos}, nil
	case tString:
		return &stringExpr{value: tok.text, pos: tok.pos}, nil
	case tNumber:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, queryErrorf(KindSyntax, "invalid number %s at position %d", tok.text, tok.pos)
		}
		return &numberExpr{value: f, text: tok.text, pos: tok.pos}, nil
	case tLparen:
		defer p.leave()
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.kind != tRparen {
			return nil, p.unexpected(closing)
		}
		return e, nil
	default:
		return nil, p.unexpected(tok)
	}
}

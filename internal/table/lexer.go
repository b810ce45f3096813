package table

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tEOF tokenKind = iota
	tIdent
	tNumber
	tString
	tLparen
	tRparen
	tMinus
	tEq
	tNe
	tLt
	tLe
	tGt
	tGe
	tAnd
	tOr
	tNot
)

var tokenNames = [...]string{
	"end of input", "identifier", "number", "string", "'('", "')'", "'-'",
	"'=='", "'!='", "'<'", "'<='", "'>'", "'>='", "'and'", "'or'", "'not'",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer works on runes so that positions in error messages count
// characters, not bytes.
type lexer struct {
	input []rune
	i     int
}

func tokenize(input string) ([]token, error) {
	lx := &lexer{input: []rune(input)}
	var toks []token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tEOF {
			return toks, nil
		}
	}
}

func (lx *lexer) peekIs(c rune) bool {
	return lx.i < len(lx.input) && lx.input[lx.i] == c
}

func (lx *lexer) next() (token, error) {
	for lx.i < len(lx.input) && unicode.IsSpace(lx.input[lx.i]) {
		lx.i++
	}
	if lx.i == len(lx.input) {
		return token{kind: tEOF, pos: lx.i}, nil
	}

	start := lx.i
	c := lx.input[start]
	lx.i++
	simple := func(k tokenKind) (token, error) {
		return token{kind: k, text: string(lx.input[start:lx.i]), pos: start}, nil
	}

	switch c {
	case '(':
		return simple(tLparen)
	case ')':
		return simple(tRparen)
	case '-':
		return simple(tMinus)
	case '<':
		if lx.peekIs('=') {
			lx.i++
			return simple(tLe)
		}
		return simple(tLt)
	case '>':
		if lx.peekIs('=') {
			lx.i++
			return simple(tGe)
		}
		return simple(tGt)
	case '=':
		if lx.peekIs('=') {
			lx.i++
			return simple(tEq)
		}
		return token{}, queryErrorf(KindSyntax, "unexpected '=' at position %d, use '==' for comparison", start)
	case '!':
		if lx.peekIs('=') {
			lx.i++
			return simple(tNe)
		}
		return token{}, queryErrorf(KindSyntax, "unexpected '!' at position %d, use 'not' for negation", start)
	case '\'', '"':
		return lx.scanString(c, start)
	case '`':
		for lx.i < len(lx.input) && lx.input[lx.i] != '`' {
			lx.i++
		}
		if lx.i == len(lx.input) {
			return token{}, queryErrorf(KindSyntax, "unterminated quoted name starting at position %d", start)
		}
		name := string(lx.input[start+1 : lx.i])
		lx.i++
		if name == "" {
			return token{}, queryErrorf(KindSyntax, "empty quoted name at position %d", start)
		}
		return token{kind: tIdent, text: name, pos: start}, nil
	}

	if isDigit(c) || c == '.' && lx.i < len(lx.input) && isDigit(lx.input[lx.i]) {
		lx.i = start
		return lx.scanNumber()
	}

	if isInitial(c) {
		for lx.i < len(lx.input) && isSubsequent(lx.input[lx.i]) {
			lx.i++
		}
		text := string(lx.input[start:lx.i])
		switch text {
		case "and":
			return token{kind: tAnd, text: text, pos: start}, nil
		case "or":
			return token{kind: tOr, text: text, pos: start}, nil
		case "not":
			return token{kind: tNot, text: text, pos: start}, nil
		}
		return token{kind: tIdent, text: text, pos: start}, nil
	}

	return token{}, queryErrorf(KindSyntax, "unexpected character '%c' at position %d", c, start)
}

func (lx *lexer) scanString(quote rune, start int) (token, error) {
	var b strings.Builder
	for lx.i < len(lx.input) {
		c := lx.input[lx.i]
		lx.i++
		switch c {
		case quote:
			return token{kind: tString, text: b.String(), pos: start}, nil
		case '\\':
			if lx.i == len(lx.input) {
				break
			}
			e := lx.input[lx.i]
			lx.i++
			switch e {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				b.WriteRune(e)
			}
		default:
			b.WriteRune(c)
		}
	}
	return token{}, queryErrorf(KindSyntax, "unterminated string starting at position %d", start)
}

// scanNumber reads digits [. digits] [e [+-] digits]. A number must not run
// straight into a name.
func (lx *lexer) scanNumber() (token, error) {
	start := lx.i
	lx.scanDigits()
	if lx.peekIs('.') {
		lx.i++
		lx.scanDigits()
	}
	if lx.peekIs('e') || lx.peekIs('E') {
		lx.i++
		if lx.peekIs('+') || lx.peekIs('-') {
			lx.i++
		}
		if !lx.scanDigits() {
			return token{}, queryErrorf(KindSyntax, "invalid number at position %d", start)
		}
	}
	if lx.i < len(lx.input) && (isSubsequent(lx.input[lx.i]) || lx.input[lx.i] == '.') {
		return token{}, queryErrorf(KindSyntax, "invalid number at position %d", start)
	}
	return token{kind: tNumber, text: string(lx.input[start:lx.i]), pos: start}, nil
}

func (lx *lexer) scanDigits() bool {
	here := lx.i
	for lx.i < len(lx.input) && isDigit(lx.input[lx.i]) {
		lx.i++
	}
	return lx.i > here
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isInitial(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isSubsequent(c rune) bool {
	return isInitial(c) || unicode.IsDigit(c)
}

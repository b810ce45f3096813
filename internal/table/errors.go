package table

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUnknownColumn ErrorKind = "unknown_column"
	KindSyntax        ErrorKind = "syntax"
	KindType          ErrorKind = "type"
	KindInvalidSort   ErrorKind = "invalid_sort"
	KindSchema        ErrorKind = "schema"
)

// QueryError is returned for any problem with the table itself or with the
// caller's sort/filter specification. I/O failures are returned unwrapped.
type QueryError struct {
	Kind   ErrorKind
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func queryErrorf(kind ErrorKind, format string, args ...any) *QueryError {
	return &QueryError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the QueryError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return ""
}

package expr

import (
	"fmt"
	"strings"
)

// ParseError reports a rejected expression: a syntax error, an identifier
// outside the allow-list, or a malformed construct. Pos is a byte offset
// into the source string.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

// EvalError reports a domain failure while evaluating a compiled
// expression at a concrete point.
type EvalError struct {
	Expr string
	Args []float64
	Msg  string
}

func (e *EvalError) Error() string {
	if len(e.Args) == 0 {
		return fmt.Sprintf("evaluating %q: %s", e.Expr, e.Msg)
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = fmt.Sprintf("%g", a)
	}
	return fmt.Sprintf("evaluating %q at (%s): %s", e.Expr, strings.Join(parts, ", "), e.Msg)
}

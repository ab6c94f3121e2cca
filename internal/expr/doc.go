// Package expr compiles textual mathematical expressions into callable
// functions of one or two real variables.
//
// Expressions are parsed by a small recursive-descent parser over a closed
// grammar: arithmetic operators (+ - * / ^, with ** accepted as an alias
// for ^), parentheses, numeric literals, the bound variables, the constants
// pi and e, and a fixed allow-list of mathematical functions (sin, cos,
// tan, asin, acos, atan, sinh, cosh, tanh, exp, log, log10, sqrt, abs,
// pow). Anything else is rejected at parse time, so a compiled [Func] can
// be evaluated safely regardless of where its source string came from:
//
//	f, err := expr.Parse("sin(x)^2 + cos(x)^2", "x")
//	if err != nil { ... }
//	v, err := f.Eval(0.3)
//
// Call-time domain failures (log of a non-positive number, division by
// zero, a non-finite intermediate) are reported as [*EvalError] carrying
// the offending arguments; engines treat them as "undefined at this
// point".
package expr

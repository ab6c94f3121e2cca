package expr

import (
	"fmt"
	"math"
)

// evalErr is the internal, source-free form of a domain failure. Func.Eval
// wraps it with the expression text and call arguments.
type evalErr struct{ msg string }

func (e *evalErr) Error() string { return e.msg }

func domainErrf(format string, args ...any) error {
	return &evalErr{msg: fmt.Sprintf(format, args...)}
}

type node interface {
	eval(args []float64) (float64, error)
}

type numNode float64

func (n numNode) eval([]float64) (float64, error) { return float64(n), nil }

// varNode indexes into the call arguments, bound positionally at parse
// time from the declared variable list.
type varNode int

func (n varNode) eval(args []float64) (float64, error) { return args[n], nil }

type negNode struct{ x node }

func (n *negNode) eval(args []float64) (float64, error) {
	v, err := n.x.eval(args)
	return -v, err
}

type binNode struct {
	op   byte
	l, r node
}

func (n *binNode) eval(args []float64) (float64, error) {
	l, err := n.l.eval(args)
	if err != nil {
		return 0, err
	}
	r, err := n.r.eval(args)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, domainErrf("division by zero")
		}
		return l / r, nil
	case '^':
		v := math.Pow(l, r)
		if math.IsNaN(v) {
			return 0, domainErrf("%g^%g is undefined", l, r)
		}
		return v, nil
	}
	return 0, domainErrf("unknown operator %q", string(n.op))
}

type callNode struct {
	name string
	fn   builtin
	args []node
}

func (n *callNode) eval(args []float64) (float64, error) {
	vals := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(args)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}
	return n.fn(vals)
}

type builtin func(args []float64) (float64, error)

func wrap1(name string, f func(float64) float64) builtin {
	return func(args []float64) (float64, error) {
		v := f(args[0])
		if math.IsNaN(v) {
			return 0, domainErrf("%s(%g) is undefined", name, args[0])
		}
		return v, nil
	}
}

// builtins is the full allow-list of callable names. Identifiers outside
// this table (and the bound variables and constants) fail at parse time.
var builtins = map[string]struct {
	arity int
	fn    builtin
}{
	"sin":  {1, wrap1("sin", math.Sin)},
	"cos":  {1, wrap1("cos", math.Cos)},
	"tan":  {1, wrap1("tan", math.Tan)},
	"asin": {1, wrap1("asin", math.Asin)},
	"acos": {1, wrap1("acos", math.Acos)},
	"atan": {1, wrap1("atan", math.Atan)},
	"sinh": {1, wrap1("sinh", math.Sinh)},
	"cosh": {1, wrap1("cosh", math.Cosh)},
	"tanh": {1, wrap1("tanh", math.Tanh)},
	"exp":  {1, wrap1("exp", math.Exp)},
	"abs":  {1, wrap1("abs", math.Abs)},
	"log": {1, func(args []float64) (float64, error) {
		if args[0] <= 0 {
			return 0, domainErrf("log of non-positive number %g", args[0])
		}
		return math.Log(args[0]), nil
	}},
	"log10": {1, func(args []float64) (float64, error) {
		if args[0] <= 0 {
			return 0, domainErrf("log10 of non-positive number %g", args[0])
		}
		return math.Log10(args[0]), nil
	}},
	"sqrt": {1, func(args []float64) (float64, error) {
		if args[0] < 0 {
			return 0, domainErrf("sqrt of negative number %g", args[0])
		}
		return math.Sqrt(args[0]), nil
	}},
	"pow": {2, func(args []float64) (float64, error) {
		v := math.Pow(args[0], args[1])
		if math.IsNaN(v) {
			return 0, domainErrf("pow(%g, %g) is undefined", args[0], args[1])
		}
		return v, nil
	}},
}

// aliases maps the spellings the original tool accepts onto canonical
// builtin names (Spanish "sen", text-book "ln", "arcsin" family).
var aliases = map[string]string{
	"sen":    "sin",
	"ln":     "log",
	"arcsin": "asin",
	"arccos": "acos",
	"arctan": "atan",
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

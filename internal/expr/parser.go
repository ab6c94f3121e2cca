package expr

import (
	"fmt"
	"math"
)

// Func is a compiled expression: an immutable AST plus the positional
// variable binding. Safe for shared read-only use by every engine.
type Func struct {
	src  string
	vars []string
	root node
}

// Parse compiles src into a function of the named variables. Variables
// bind positionally: Parse("x*y", "x", "y") yields a two-argument
// function with x first.
func Parse(src string, vars ...string) (*Func, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, vars: vars}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, &ParseError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %q", tok.text)}
	}
	return &Func{src: src, vars: vars, root: root}, nil
}

// Validate performs a parse-only check and reports the first error
// encountered. It never evaluates the expression.
func Validate(src string, vars ...string) (bool, string) {
	if _, err := Parse(src, vars...); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// Source returns the expression text the function was compiled from.
func (f *Func) Source() string { return f.src }

// Arity returns the number of bound variables.
func (f *Func) Arity() int { return len(f.vars) }

// Eval evaluates the compiled expression with the variables bound to
// args in declaration order.
func (f *Func) Eval(args ...float64) (float64, error) {
	if len(args) != len(f.vars) {
		return 0, &EvalError{Expr: f.src, Args: args,
			Msg: fmt.Sprintf("want %d argument(s), got %d", len(f.vars), len(args))}
	}
	v, err := f.root.eval(args)
	if err != nil {
		return 0, &EvalError{Expr: f.src, Args: args, Msg: err.Error()}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &EvalError{Expr: f.src, Args: args, Msg: "non-finite result"}
	}
	return v, nil
}

// Func1 adapts a one-variable function for the engines.
func (f *Func) Func1() func(float64) (float64, error) {
	return func(x float64) (float64, error) { return f.Eval(x) }
}

// Func2 adapts a two-variable function, e.g. f(t, y) for the ODE solver
// or f(x, y) for 2D Monte Carlo.
func (f *Func) Func2() func(float64, float64) (float64, error) {
	return func(a, b float64) (float64, error) { return f.Eval(a, b) }
}

type parser struct {
	toks []token
	i    int
	vars []string
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) match(k tokenKind) bool {
	if p.peek().kind == k {
		p.i++
		return true
	}
	return false
}

func (p *parser) expect(k tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != k {
		got := t.text
		if t.kind == tokEOF {
			got = "end of expression"
		} else {
			got = fmt.Sprintf("%q", got)
		}
		return t, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("expected %s, found %s", what, got)}
	}
	p.i++
	return t, nil
}

// parseExpr → term (('+'|'-') term)*
func (p *parser) parseExpr() (node, error) {
	l, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			r, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			l = &binNode{op: '+', l: l, r: r}
		case tokMinus:
			p.next()
			r, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			l = &binNode{op: '-', l: l, r: r}
		default:
			return l, nil
		}
	}
}

// parseTerm → unary (('*'|'/') unary)*
func (p *parser) parseTerm() (node, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			r, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			l = &binNode{op: '*', l: l, r: r}
		case tokSlash:
			p.next()
			r, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			l = &binNode{op: '/', l: l, r: r}
		default:
			return l, nil
		}
	}
}

// parseUnary → '-' unary | '+' unary | power
func (p *parser) parseUnary() (node, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &negNode{x: x}, nil
	case tokPlus:
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower → primary ('^' unary)?   (right-associative, so 2^3^2 = 512)
func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.match(tokCaret) {
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &binNode{op: '^', l: base, r: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return numNode(t.val), nil
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		return inner, nil
	case tokIdent:
		return p.resolveIdent(t)
	case tokEOF:
		return nil, &ParseError{Pos: t.pos, Msg: "unexpected end of expression"}
	}
	return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %q", t.text)}
}

func (p *parser) resolveIdent(t token) (node, error) {
	name := t.text
	if canon, ok := aliases[name]; ok {
		name = canon
	}

	if p.peek().kind == tokLParen {
		b, ok := builtins[name]
		if !ok {
			return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("unknown function %q", t.text)}
		}
		p.next() // consume "("
		args := make([]node, 0, b.arity)
		if p.peek().kind != tokRParen {
			for {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if !p.match(tokComma) {
					break
				}
			}
		}
		if _, err := p.expect(tokRParen, `")"`); err != nil {
			return nil, err
		}
		if len(args) != b.arity {
			return nil, &ParseError{Pos: t.pos,
				Msg: fmt.Sprintf("%s takes %d argument(s), got %d", name, b.arity, len(args))}
		}
		return &callNode{name: name, fn: b.fn, args: args}, nil
	}

	for i, v := range p.vars {
		if v == t.text {
			return varNode(i), nil
		}
	}
	if c, ok := constants[name]; ok {
		return numNode(c), nil
	}
	return nil, &ParseError{Pos: t.pos, Msg: fmt.Sprintf("unknown identifier %q", t.text)}
}

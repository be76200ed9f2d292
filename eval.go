package arithtree

import (
	"errors"
	"math/big"
)

// Eval evaluates the expression tree. Division by zero follows IEEE 754,
// giving an infinity or NaN. Eval panics if the tree has an operator node
// missing an operand or holding an operator other than + - * /, which cannot
// happen for trees returned by Build.
func (n *Node) Eval() float64 {
	if n.IsLeaf() {
		return n.tok.Value
	}
	n.mustBeComplete()
	l := n.left.tok.Value
	if !n.left.IsLeaf() {
		l = n.left.Eval()
	}
	r := n.right.tok.Value
	if !n.right.IsLeaf() {
		r = n.right.Eval()
	}
	return apply(n.tok.Op, l, r)
}

func apply(op Operator, l, r float64) float64 {
	switch op {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpMul:
		return l * r
	case OpDiv:
		return l / r
	default:
		panic("arithtree: invalid operator " + op.String() + " in expression tree")
	}
}

func (n *Node) mustBeComplete() {
	if n.left == nil || n.right == nil {
		panic("arithtree: incomplete operator node " + n.String())
	}
}

// ErrDivisionByZero is the error that strict evaluation reports for a zero
// divisor.
var ErrDivisionByZero = errors.New("division by zero")

// DivisionError indicates a division by zero during strict evaluation. It
// unwraps to ErrDivisionByZero.
type DivisionError struct {
	// Pos is the position of the division operator.
	Pos int
}

func (err *DivisionError) Error() string {
	return errpos(err.Pos, ErrDivisionByZero.Error())
}

func (err *DivisionError) Position() int { return err.Pos }
func (err *DivisionError) Unwrap() error { return ErrDivisionByZero }

// Context holds options for evaluating expressions. A Context is never
// modified after creation, so it is safe to use concurrently.
type Context struct {
	prec   uint
	strict bool
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	precopt   uint
	strictopt struct{}
)

func (precopt) ctxOption()   {}
func (strictopt) ctxOption() {}

// Prec sets the precision in bits of EvalBig. A precision of 0 selects the
// default of 64.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// Strict makes division by zero an error instead of producing an infinity or
// NaN.
func Strict() ContextOption {
	return strictopt{}
}

// NewContext creates a new evaluation context. Later options override earlier
// ones.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case precopt:
			if opt != 0 {
				ctx.prec = uint(opt)
			}
		case strictopt:
			ctx.strict = true
		default:
			panic("arithtree: unknown option type")
		}
	}
	return &ctx
}

// Prec returns the precision of EvalBig in bits.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Strict returns whether division by zero is an error.
func (ctx *Context) Strict() bool {
	return ctx.strict
}

// Eval evaluates an expression tree with float64 arithmetic. In a strict
// context, division by zero returns a *DivisionError. Otherwise the error is
// always nil.
func (ctx *Context) Eval(n *Node) (float64, error) {
	if !ctx.strict {
		return n.Eval(), nil
	}
	return n.evalStrict()
}

func (n *Node) evalStrict() (float64, error) {
	if n.IsLeaf() {
		return n.tok.Value, nil
	}
	n.mustBeComplete()
	l, err := n.left.evalStrict()
	if err != nil {
		return 0, err
	}
	r, err := n.right.evalStrict()
	if err != nil {
		return 0, err
	}
	if n.tok.Op == OpDiv && r == 0 {
		return 0, &DivisionError{Pos: n.tok.Pos}
	}
	return apply(n.tok.Op, l, r), nil
}

// EvalBig evaluates an expression tree with arbitrary-precision arithmetic at
// the context's precision. Literals enter at their float64 values. Dividing a
// nonzero value by zero gives an infinity unless the context is strict.
// Operations with no defined result, such as 0/0 or Inf-Inf, return a
// big.ErrNaN.
func (ctx *Context) EvalBig(n *Node) (r *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		nan, ok := p.(big.ErrNaN)
		if !ok {
			panic(p)
		}
		r, err = nil, nan
	}()
	return n.evalBig(ctx)
}

func (n *Node) evalBig(ctx *Context) (*big.Float, error) {
	if n.IsLeaf() {
		return new(big.Float).SetPrec(ctx.prec).SetFloat64(n.tok.Value), nil
	}
	n.mustBeComplete()
	l, err := n.left.evalBig(ctx)
	if err != nil {
		return nil, err
	}
	r, err := n.right.evalBig(ctx)
	if err != nil {
		return nil, err
	}
	switch n.tok.Op {
	case OpAdd:
		l.Add(l, r)
	case OpSub:
		l.Sub(l, r)
	case OpMul:
		l.Mul(l, r)
	case OpDiv:
		if ctx.strict && r.Sign() == 0 {
			return nil, &DivisionError{Pos: n.tok.Pos}
		}
		l.Quo(l, r)
	default:
		panic("arithtree: invalid operator " + n.tok.Op.String() + " in expression tree")
	}
	return l, nil
}

// Eval is a shortcut to parse an expression and evaluate it with float64
// arithmetic.
func Eval(src string, opts ...ContextOption) (float64, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return NewContext(opts...).Eval(n)
}

// EvalBig is a shortcut to parse an expression and evaluate it with
// arbitrary-precision arithmetic.
func EvalBig(src string, opts ...ContextOption) (*big.Float, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return NewContext(opts...).EvalBig(n)
}

package calc

import (
	"io"
	"math"
	"strings"
)

// Eval evaluates the expression. The result is never NaN or infinite; any
// operation that would produce such a value instead returns an error that
// matches ErrEval.
func (e *Expr) Eval() (float64, error) {
	return e.n.eval()
}

// eval computes the node's value, reducing children left to right.
func (n *node) eval() (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeCall:
		args := make([]float64, len(n.args))
		for i, a := range n.args {
			v, err := a.eval()
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		return n.fn.call(n.pos, args)
	case nodeNeg:
		v, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeNop:
		return n.left.eval()
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		l, err := n.left.eval()
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval()
		if err != nil {
			return 0, err
		}
		return arith(n.kind, n.pos, l, r)
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
}

// arith applies a binary operator to finite operands.
func arith(op nodeKind, pos int, l, r float64) (float64, error) {
	var v float64
	switch op {
	case nodeAdd:
		v = l + r
	case nodeSub:
		v = l - r
	case nodeMul:
		v = l * r
	case nodeDiv:
		if r == 0 {
			return 0, &DivisionByZeroError{Col: pos, Op: op.symbol(), X: l, Y: r}
		}
		v = l / r
	case nodeMod:
		// math.Mod keeps the sign of the dividend.
		if r == 0 {
			return 0, &DivisionByZeroError{Col: pos, Op: op.symbol(), X: l, Y: r}
		}
		v = math.Mod(l, r)
	case nodePow:
		if l == 0 && r < 0 {
			return 0, &DivisionByZeroError{Col: pos, Op: op.symbol(), X: l, Y: r}
		}
		v = math.Pow(l, r)
		if math.IsNaN(v) {
			// Negative base with a non-integer exponent.
			return 0, &DomainError{Col: pos, X: l, Arg: 1, Func: op.symbol()}
		}
	default:
		panic("calc: invalid binary operator " + op.String())
	}
	if math.IsInf(v, 0) {
		return 0, &OverflowError{Col: pos, Op: op.symbol()}
	}
	return v, nil
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner, opts ...ParseOption) (float64, error) {
	a, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return a.Eval()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string) (float64, error) {
	return Eval(strings.NewReader(src))
}

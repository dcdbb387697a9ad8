package formula

import (
	"math"
)

// Eval evaluates a formula at the given values of x and y. Evaluation never
// fails: division or remainder by zero, arguments outside a function's
// domain, unknown functions, and invalid nodes all give NaN. Eval does not
// allocate, and the same inputs always give the same result.
func Eval(n Node, x, y float64) float64 {
	if !n.Valid() {
		return math.NaN()
	}
	return n.eval(x, y)
}

// Eval1 evaluates a formula of one variable at x, with y = 0.
func Eval1(n Node, x float64) float64 {
	return Eval(n, x, 0)
}

// Eval is a shortcut for Eval(n, x, y).
func (n Node) Eval(x, y float64) float64 {
	return Eval(n, x, y)
}

func (n Node) eval(x, y float64) float64 {
	switch n.Kind() {
	case KindNum:
		return n.Value()
	case KindVar:
		if n.Var() == 'y' {
			return y
		}
		return x
	case KindNeg:
		return -n.Operand().eval(x, y)
	case KindBinary:
		l := n.Left().eval(x, y)
		r := n.Right().eval(x, y)
		switch n.Op() {
		case '+':
			return l + r
		case '-':
			return l - r
		case '*':
			return l * r
		case '/':
			if r == 0 {
				return math.NaN()
			}
			return l / r
		case '%':
			if r == 0 {
				return math.NaN()
			}
			return math.Mod(l, r)
		case '^':
			return math.Pow(l, r)
		}
	case KindCall:
		// The argument is evaluated even if the name is unknown.
		a := n.Arg().eval(x, y)
		if f := lookup(n.name()); f != nil {
			return f(a)
		}
	}
	return math.NaN()
}

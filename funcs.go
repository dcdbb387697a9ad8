package formula

import (
	"math"
	"sort"
)

// Func is a function of one real variable available to formulas.
type Func func(float64) float64

var funcs = map[string]Func{
	// trig
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"cot": func(a float64) float64 {
		s := math.Sin(a)
		if s == 0 {
			return math.NaN()
		}
		return math.Cos(a) / s
	},
	"sec": func(a float64) float64 {
		c := math.Cos(a)
		if c == 0 {
			return math.NaN()
		}
		return 1 / c
	},
	"csc": func(a float64) float64 {
		s := math.Sin(a)
		if s == 0 {
			return math.NaN()
		}
		return 1 / s
	},

	// hyperbolic
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"asinh": math.Asinh,
	"acosh": math.Acosh,
	"atanh": math.Atanh,

	// roots
	"sqrt": math.Sqrt,
	"cbrt": math.Cbrt,

	// logs
	"log":  math.Log10,
	"ln":   math.Log,
	"log2": math.Log2,
	"exp":  math.Exp,

	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
	"sign":  sign,
	"sgn":   sign,
}

// sign is -1, 0, or 1 by the sign of a. NaN compares neither way, so it is 0.
func sign(a float64) float64 {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}

// lookup finds a function by name without allocating.
func lookup(name []byte) Func {
	return funcs[string(name)]
}

// Funcs returns the sorted names of the functions formulas can call.
func Funcs() []string {
	r := make([]string, 0, len(funcs))
	for k := range funcs {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Known returns whether name is a function formulas can call. Calls to
// unknown functions parse but evaluate to NaN.
func Known(name string) bool {
	return funcs[name] != nil
}

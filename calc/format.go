package calc

import (
	"math"
	"strconv"
)

// Result texts that are not numbers.
const (
	ResultError  = "Error"
	ResultSyntax = "Syntax error"
)

// Format renders an evaluation result the way the calculator displays it.
// NaN is "Error". Integers smaller in magnitude than 1e15 are written without
// a fraction or exponent. Everything else has ten significant digits.
func Format(v float64) string {
	switch {
	case math.IsNaN(v):
		return ResultError
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatInt(int64(v), 10)
	}
	// Go's %g trims trailing zeros and pads exponents to two digits, as C does.
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// truncate shortens s to at most n bytes.
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

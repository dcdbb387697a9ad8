// Package formula parses and evaluates real-valued formulas of up to two
// variables, x and y.
//
// The syntax is intended to be the way you'd type math into a calculator.
// "2x^2 + sin(pi x)" is a valid formula: a factor directly after another
// factor is a multiplication, "^" is right-associative exponentiation, and
// "-2^2" is "-(2^2)". Absolute values can be written "|x|" or "abs(x)". The
// names pi and e are constants.
//
// Parsing allocates every node from an arena, so a formula is parsed once and
// then evaluated for many inputs, and all formulas sharing an arena are
// discarded together when the arena is reset. Evaluation never fails; any
// undefined result, such as division by zero or a call to an unknown
// function, is NaN.
//
package formula

// Package calc implements a floating-point calculator for arithmetic
// expressions.
//
// Expressions use the operators + - * / % and **, unary + and -, parentheses,
// and the functions sqrt(x), max(a, b), and min(a, b). "-2**2" is the same as
// "-(2**2)", and "2**3**2" is "2**(3**2)". % is the floating-point remainder
// with the sign of the dividend.
//
// Evaluation is a pure function of the input. Every failure is reported as an
// error with a position that matches one of ErrLex, ErrParse, or ErrEval, so
// results are never NaN or infinite.
package calc

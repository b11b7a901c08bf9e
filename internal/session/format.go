package session

import (
	"strconv"
	"strings"
)

// Format renders a result the way an interactive calculator user expects a
// float to look: the shortest representation that reads back to x, always
// with a decimal point or an exponent. Magnitudes from 1e-4 up to but not
// including 1e16 use positional notation, e.g. 7.0, 0.1 or 1234.5; others
// use an exponent with at least two digits, e.g. 1e+16 or 1.5e-05.
func Format(x float64) string {
	e := strconv.FormatFloat(x, 'e', -1, 64)
	k := strings.IndexByte(e, 'e')
	if k < 0 {
		// NaN or Inf.
		return e
	}
	exp, _ := strconv.Atoi(e[k+1:])
	if exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Formatter returns a function to render results. An empty verb selects
// Format; otherwise the verb is passed to a fmt-style sprintf.
func Formatter(verb string, sprintf func(string, ...interface{}) string) func(float64) string {
	if verb == "" {
		return Format
	}
	return func(x float64) string {
		return sprintf(verb, x)
	}
}

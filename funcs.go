package calc

import (
	"math"
)

// builtin is a function callable from expressions. The set of builtins is
// fixed.
type builtin struct {
	name  string
	arity int
	// f computes the result. It may assume len(args) == arity.
	f func(args []float64) float64
}

var builtins = map[string]*builtin{
	"sqrt": monadic("sqrt", math.Sqrt),
	"max":  dyadic("max", math.Max),
	"min":  dyadic("min", math.Min),
}

// Funcs returns the names of the functions that expressions may call, in
// sorted order.
func Funcs() []string {
	r := make([]string, 0, len(builtins))
	for k := range builtins {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// Arity returns the number of arguments the named function takes, or -1 if
// there is no such function.
func Arity(name string) int {
	fn := builtins[name]
	if fn == nil {
		return -1
	}
	return fn.arity
}

func monadic(name string, f func(float64) float64) *builtin {
	return &builtin{
		name:  name,
		arity: 1,
		f:     func(args []float64) float64 { return f(args[0]) },
	}
}

func dyadic(name string, f func(float64, float64) float64) *builtin {
	return &builtin{
		name:  name,
		arity: 2,
		f:     func(args []float64) float64 { return f(args[0], args[1]) },
	}
}

// call applies the function. A NaN result from finite arguments means an
// argument was outside the function's domain.
func (fn *builtin) call(pos int, args []float64) (float64, error) {
	r := fn.f(args)
	switch {
	case math.IsNaN(r):
		k := 0
		for i, x := range args {
			if x < 0 {
				k = i
				break
			}
		}
		return 0, &DomainError{Col: pos, X: args[k], Arg: k + 1, Func: fn.name}
	case math.IsInf(r, 0):
		return 0, &OverflowError{Col: pos, Op: fn.name}
	}
	return r, nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

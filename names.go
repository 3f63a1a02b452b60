// names.go: the static name table.
//
// This is the whole identifier surface of the evaluator: two constants and a
// fixed set of numeric functions. The table is populated once, below, and is
// never written again — there is no registration API, so no path exists for
// a new name to appear (or an existing one to be rebound) at runtime. That
// immutability is also what makes concurrent Evaluate calls safe without
// locks.
package calc

import (
	"math"
	"sort"
)

// variadic marks a function that accepts any argument count >= minArity.
const variadic = -1

type entryKind int

const (
	entryConst entryKind = iota
	entryFunc
)

// nameEntry is either a constant value or a numeric function with a fixed or
// variadic arity.
type nameEntry struct {
	kind     entryKind
	value    float64 // entryConst only
	minArity int     // entryFunc only
	maxArity int     // entryFunc only; variadic for unbounded
	fn       func(args []float64) (float64, error)
}

// nameTable maps every allowed identifier to its entry. Unexported and only
// assigned here.
var nameTable = buildNameTable()

func lookupName(name string) (nameEntry, bool) {
	e, ok := nameTable[name]
	return e, ok
}

// Names returns the allowed identifiers in sorted order. Useful for hosts
// that want to show the whitelist (the REPL's :names command does).
func Names() []string {
	out := make([]string, 0, len(nameTable))
	for n := range nameTable {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func constant(v float64) nameEntry {
	return nameEntry{kind: entryConst, value: v}
}

func unary(fn func(float64) (float64, error)) nameEntry {
	return nameEntry{
		kind: entryFunc, minArity: 1, maxArity: 1,
		fn: func(args []float64) (float64, error) { return fn(args[0]) },
	}
}

// checked wraps a math.* function with a domain guard: a NaN or infinite
// result from a finite input is reported as a DomainError instead of leaking
// non-finite values into the tree walk.
func checked(name string, fn func(float64) float64) nameEntry {
	return unary(func(x float64) (float64, error) {
		v := fn(x)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, evalErr(KindDomain, "%s(%v): argument out of domain", name, x)
		}
		return v, nil
	})
}

func buildNameTable() map[string]nameEntry {
	t := map[string]nameEntry{
		// constants
		"pi": constant(math.Pi),
		"e":  constant(math.E),

		// unary transcendentals
		"sqrt":  checked("sqrt", math.Sqrt),
		"log":   checked("log", math.Log),
		"log10": checked("log10", math.Log10),
		"log2":  checked("log2", math.Log2),
		"sin":   unaryTotal(math.Sin),
		"cos":   unaryTotal(math.Cos),
		"tan":   unaryTotal(math.Tan),
		"exp":   checked("exp", math.Exp),

		"abs": unaryTotal(math.Abs),

		"factorial": unary(factorialFn),

		"round": {kind: entryFunc, minArity: 1, maxArity: 2, fn: roundFn},
		"pow":   {kind: entryFunc, minArity: 2, maxArity: 2, fn: powFn},

		"min": {kind: entryFunc, minArity: 1, maxArity: variadic, fn: minFn},
		"max": {kind: entryFunc, minArity: 1, maxArity: variadic, fn: maxFn},
	}
	return t
}

// unaryTotal wraps a function that is defined for every finite input.
func unaryTotal(fn func(float64) float64) nameEntry {
	return unary(func(x float64) (float64, error) { return fn(x), nil })
}

// ---- function bodies ----------------------------------------------------

// factorialMax is the largest n whose factorial is finite in float64.
const factorialMax = 170

func factorialFn(x float64) (float64, error) {
	if x != math.Trunc(x) || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, evalErr(KindDomain, "factorial of non-integer %v", x)
	}
	if x < 0 {
		return 0, evalErr(KindDomain, "factorial of negative number %v", x)
	}
	if x > factorialMax {
		return 0, evalErr(KindDomain, "factorial(%v) overflows", x)
	}
	out := 1.0
	for i := 2.0; i <= x; i++ {
		out *= i
	}
	return out, nil
}

// roundFn rounds to the nearest integer, or with a second argument to that
// many decimal places. Ties round away from zero.
func roundFn(args []float64) (float64, error) {
	if len(args) == 1 {
		return math.Round(args[0]), nil
	}
	places := args[1]
	if places != math.Trunc(places) {
		return 0, evalErr(KindDomain, "round: decimal places must be an integer, got %v", places)
	}
	if places < -15 || places > 15 {
		return 0, evalErr(KindDomain, "round: decimal places out of range: %v", places)
	}
	scale := math.Pow(10, places)
	return math.Round(args[0]*scale) / scale, nil
}

func powFn(args []float64) (float64, error) {
	return powNumeric(args[0], args[1])
}

func minFn(args []float64) (float64, error) {
	out := args[0]
	for _, v := range args[1:] {
		if v < out {
			out = v
		}
	}
	return out, nil
}

func maxFn(args []float64) (float64, error) {
	out := args[0]
	for _, v := range args[1:] {
		if v > out {
			out = v
		}
	}
	return out, nil
}

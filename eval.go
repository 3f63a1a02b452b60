// eval.go: the numeric tree walk and the Evaluate pipeline.
//
// Evaluate is the sole entry point hosts should call. It runs the fixed
// pipeline — alias normalization, lexing, parsing, validation, evaluation —
// short-circuiting at the first failure. The walk itself is a pure function
// of the tree and the immutable name table: no I/O, no shared mutable state,
// so concurrent Evaluate calls need no synchronization.
//
// Host numeric type is float64. Bitwise and shift operators demand exactly
// integral operands and compute in int64. The walk and the returned Result
// value are lossless; display normalization happens only when a Result is
// rendered (see Result.String).
package calc

import (
	"math"
	"strconv"
	"strings"
)

// Result is a finished evaluation. Value holds the raw, lossless number;
// String applies the display normalization: an integral result renders with
// no fractional part, anything else is rounded to ten decimal places to
// suppress float representation noise. The rounding is lossy and purely
// cosmetic, which is why it lives in the rendering and never touches Value
// or the tree walk.
type Result struct {
	Value float64
}

// IsInt reports whether the result is mathematically an integer, so hosts
// can render it without a fractional part.
func (r Result) IsInt() bool {
	return !math.IsInf(r.Value, 0) && r.Value == math.Trunc(r.Value)
}

func (r Result) String() string {
	return strconv.FormatFloat(normalizeResult(r.Value), 'f', -1, 64)
}

// displayPlaces is the decimal precision kept for non-integral results.
const displayPlaces = 10

// normalizeResult applies the lossy display rounding used by Result.String.
// Values too large for a meaningful fractional part pass through untouched.
func normalizeResult(v float64) float64 {
	if math.IsInf(v, 0) || v == math.Trunc(v) {
		return v
	}
	if math.Abs(v) >= 1e15 {
		return v
	}
	const scale = 1e10 // 10^displayPlaces
	return math.Round(v*scale) / scale
}

/* ===========================
   PUBLIC API
   =========================== */

// Evaluate normalizes, lexes, parses, validates, and evaluates expr, in that
// order, returning the first failure as an *EvalError. A failed evaluation
// never yields a number.
func Evaluate(expr string) (Result, error) {
	if strings.TrimSpace(expr) == "" {
		return Result{}, evalErr(KindEmptyExpression, "expression is empty")
	}
	src := NormalizeAliases(strings.TrimSpace(expr))

	toks, err := Tokenize(src)
	if err != nil {
		return Result{}, err
	}
	root, err := Parse(toks)
	if err != nil {
		return Result{}, err
	}
	if err := Validate(root); err != nil {
		return Result{}, err
	}
	v, err := evalNode(root)
	if err != nil {
		return Result{}, err
	}
	if math.IsNaN(v) {
		return Result{}, evalErr(KindComplexResult, "result is not a real number")
	}
	if math.IsInf(v, 0) {
		return Result{}, evalErr(KindDomain, "result out of range")
	}
	return Result{Value: v}, nil
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: tree walk
   =========================== */

func evalNode(n Node) (float64, error) {
	switch node := n.(type) {
	case *Constant:
		return node.Value, nil

	case *NameRef:
		// Reachable without validation only if a host calls evalNode paths
		// directly; re-check anyway.
		e, ok := lookupName(node.Name)
		if !ok {
			return 0, evalErr(KindUnknownName, "unknown function or constant: %s", node.Name)
		}
		if e.kind != entryConst {
			return 0, evalErr(KindUnsupportedResultType, "%s is a function, not a value", node.Name)
		}
		return e.value, nil

	case *UnaryOp:
		v, err := evalNode(node.Operand)
		if err != nil {
			return 0, err
		}
		if node.Op == OpNeg {
			return -v, nil
		}
		return v, nil

	case *BinaryOp:
		return evalBinary(node)

	case *Call:
		return evalCall(node)

	case *Sequence:
		return 0, evalErr(KindUnsupportedResultType, "sequence has no numeric value")
	}
	return 0, evalErr(KindDisallowedConstruct, "unsupported construct: %s", n.Kind())
}

func evalBinary(node *BinaryOp) (float64, error) {
	a, err := evalNode(node.Left)
	if err != nil {
		return 0, err
	}
	b, err := evalNode(node.Right)
	if err != nil {
		return 0, err
	}

	switch node.Op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil

	case OpDiv:
		if b == 0 {
			return 0, evalErr(KindDivisionByZero, "division by zero")
		}
		return a / b, nil

	case OpFloorDiv:
		if b == 0 {
			return 0, evalErr(KindDivisionByZero, "integer division by zero")
		}
		return math.Floor(a / b), nil

	case OpMod:
		if b == 0 {
			return 0, evalErr(KindDivisionByZero, "modulo by zero")
		}
		return flooredMod(a, b), nil

	case OpPow:
		return powNumeric(a, b)

	case OpShl, OpShr, OpBitAnd, OpBitXor, OpBitOr:
		return evalBitwise(node.Op, a, b)
	}
	return 0, evalErr(KindDisallowedConstruct, "unsupported operator: %s", node.Op)
}

// flooredMod is the remainder whose sign follows the divisor.
func flooredMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// powNumeric implements "**" and pow(). A negative base with a fractional
// exponent has no real result, and a zero base cannot take a negative
// exponent.
func powNumeric(a, b float64) (float64, error) {
	if a < 0 && b != math.Trunc(b) {
		return 0, evalErr(KindComplexResult, "%v**%v has a complex result", a, b)
	}
	if a == 0 && b < 0 {
		return 0, evalErr(KindDivisionByZero, "zero cannot be raised to a negative power")
	}
	v := math.Pow(a, b)
	if math.IsNaN(v) {
		return 0, evalErr(KindComplexResult, "%v**%v has a complex result", a, b)
	}
	return v, nil
}

// asInt demands an exactly integral operand for bitwise/shift operators.
func asInt(v float64, op BinOp) (int64, error) {
	if v != math.Trunc(v) || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, evalErr(KindIntegerOperandRequired, "operator %s requires integer operands, got %v", op, v)
	}
	// MaxInt64 rounds up to exactly 2^63 as a float64, so the upper bound
	// must exclude the boundary itself; MinInt64 (-2^63) is exact.
	if v >= 1<<63 || v < math.MinInt64 {
		return 0, evalErr(KindDomain, "integer operand out of range: %v", v)
	}
	return int64(v), nil
}

func evalBitwise(op BinOp, a, b float64) (float64, error) {
	x, err := asInt(a, op)
	if err != nil {
		return 0, err
	}
	y, err := asInt(b, op)
	if err != nil {
		return 0, err
	}

	switch op {
	case OpBitAnd:
		return float64(x & y), nil
	case OpBitXor:
		return float64(x ^ y), nil
	case OpBitOr:
		return float64(x | y), nil
	case OpShl:
		if y < 0 {
			return 0, evalErr(KindDomain, "negative shift count")
		}
		if y > 62 {
			return 0, evalErr(KindDomain, "shift count too large: %d", y)
		}
		return float64(x << uint(y)), nil
	case OpShr:
		if y < 0 {
			return 0, evalErr(KindDomain, "negative shift count")
		}
		if y > 62 {
			return float64(x >> 62 >> 1), nil // sign only
		}
		return float64(x >> uint(y)), nil
	}
	return 0, evalErr(KindDisallowedConstruct, "unsupported operator: %s", op)
}

// evalCall resolves the callee, checks arity against the effective argument
// list, and only then evaluates arguments, eagerly and left-to-right. A
// single Sequence argument to a variadic function is spliced into its
// elements, so min((1, 2, 3)) behaves like min(1, 2, 3).
func evalCall(node *Call) (float64, error) {
	e, ok := lookupName(node.Name)
	if !ok {
		return 0, evalErr(KindUnknownName, "unknown function or constant: %s", node.Name)
	}
	if e.kind != entryFunc {
		return 0, evalErr(KindDomain, "%s is a constant, not a function", node.Name)
	}

	args := node.Args
	if e.maxArity == variadic && len(args) == 1 {
		if seq, isSeq := args[0].(*Sequence); isSeq {
			args = seq.Elems
		}
	}

	if len(args) < e.minArity || (e.maxArity != variadic && len(args) > e.maxArity) {
		return 0, evalErr(KindArityMismatch, "%s expects %s, got %d",
			node.Name, arityText(e), len(args))
	}

	vals := make([]float64, len(args))
	for i, a := range args {
		v, err := evalNode(a)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}
	return e.fn(vals)
}

func arityText(e nameEntry) string {
	switch {
	case e.maxArity == variadic:
		return "at least " + strconv.Itoa(e.minArity) + " argument(s)"
	case e.minArity == e.maxArity && e.minArity == 1:
		return "1 argument"
	case e.minArity == e.maxArity:
		return strconv.Itoa(e.minArity) + " arguments"
	default:
		return strconv.Itoa(e.minArity) + " to " + strconv.Itoa(e.maxArity) + " arguments"
	}
}

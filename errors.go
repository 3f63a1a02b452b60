// errors.go: typed evaluation failures and caret-snippet rendering.
//
// Every failure the evaluator can produce is an *EvalError carrying a closed
// Kind, an optional 1-based line / 0-based column, and a message. The kinds
// are the complete failure surface of Evaluate; callers can switch on Kind
// without string matching.
//
// WrapErrorWithSource upgrades a positional *EvalError into a multi-line,
// plain-text snippet with a caret under the offending column:
//
//	SYNTAX ERROR at 1:8: unexpected token ')'
//
//	   1 | (2 + 3 ))
//	     |        ^
//
// Errors without a position (numeric failures discovered mid-walk) render as
// a single line. Non-EvalError values pass through unchanged.
package calc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrKind identifies the failure class of an EvalError.
type ErrKind int

const (
	KindEmptyExpression ErrKind = iota
	KindLex
	KindSyntax
	KindDisallowedConstruct
	KindUnknownName
	KindArityMismatch
	KindDivisionByZero
	KindIntegerOperandRequired
	KindDomain
	KindComplexResult
	KindUnsupportedResultType
)

var kindHeaders = map[ErrKind]string{
	KindEmptyExpression:        "EMPTY EXPRESSION",
	KindLex:                    "LEXICAL ERROR",
	KindSyntax:                 "SYNTAX ERROR",
	KindDisallowedConstruct:    "DISALLOWED CONSTRUCT",
	KindUnknownName:            "UNKNOWN NAME",
	KindArityMismatch:          "ARITY MISMATCH",
	KindDivisionByZero:         "DIVISION BY ZERO",
	KindIntegerOperandRequired: "INTEGER OPERAND REQUIRED",
	KindDomain:                 "DOMAIN ERROR",
	KindComplexResult:          "COMPLEX RESULT",
	KindUnsupportedResultType:  "UNSUPPORTED RESULT TYPE",
}

func (k ErrKind) String() string {
	if h, ok := kindHeaders[k]; ok {
		return h
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// EvalError is the single error type produced by the evaluation pipeline.
// Line is 1-based; Col is 0-based (rendered 1-based). Line==0 means the
// failure has no source position.
type EvalError struct {
	Kind ErrKind
	Line int
	Col  int
	Msg  string
}

func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Col+1, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// evalErr builds a position-less EvalError.
func evalErr(kind ErrKind, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrKind from err, or ok=false if err is not an
// *EvalError.
func KindOf(err error) (ErrKind, bool) {
	var e *EvalError
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

/* ===========================
   PUBLIC API
   =========================== */

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes positional *EvalError values
// and leaves other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	var e *EvalError
	if !errors.As(err, &e) || e.Line <= 0 {
		return err
	}
	return fmt.Errorf("%s", prettyErrorString(src, e.Kind.String(), e.Line, e.Col+1, e.Msg))
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: snippet rendering
   =========================== */

// prettyErrorString builds a snippet with a header and a caret. It shows at
// most one previous and one next line when available. Coordinates are treated
// as 1-based and clamped to the source bounds.
func prettyErrorString(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad < 0 {
		caretPad = 0
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}

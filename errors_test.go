package calc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Errors_KindHeaders(t *testing.T) {
	e := &EvalError{Kind: KindDivisionByZero, Msg: "division by zero"}
	assert.Equal(t, "DIVISION BY ZERO: division by zero", e.Error())

	pos := &EvalError{Kind: KindSyntax, Line: 1, Col: 4, Msg: "unexpected token \")\""}
	assert.Equal(t, `SYNTAX ERROR at 1:5: unexpected token ")"`, pos.Error())
}

func Test_Errors_WrapWithSource(t *testing.T) {
	src := "2 + ) * 3"
	_, err := Evaluate(src)
	require.Error(t, err)

	wrapped := WrapErrorWithSource(err, src)
	msg := wrapped.Error()
	assert.Contains(t, msg, "SYNTAX ERROR at 1:5")
	assert.Contains(t, msg, "   1 | 2 + ) * 3")

	// Caret sits under the offending column.
	var caretLine string
	for _, ln := range strings.Split(msg, "\n") {
		if strings.Contains(ln, "^") {
			caretLine = ln
		}
	}
	require.NotEmpty(t, caretLine)
	assert.Equal(t, len("     | 2 + "), strings.Index(caretLine, "^"))
}

func Test_Errors_WrapLeavesOthersAlone(t *testing.T) {
	plain := errors.New("unrelated")
	assert.Equal(t, plain, WrapErrorWithSource(plain, "src"))

	// Position-less EvalErrors pass through too.
	e := evalErr(KindDomain, "factorial of negative number")
	assert.Equal(t, error(e), WrapErrorWithSource(e, "src"))
}

func Test_Errors_KindOf(t *testing.T) {
	_, err := Evaluate("5/0")
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindDivisionByZero, kind)

	_, ok = KindOf(errors.New("other"))
	assert.False(t, ok)
}

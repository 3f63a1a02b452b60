// validate_test.go
package calc

import "testing"

// badNode satisfies Node but is not part of the closed set.
type badNode struct{}

func (badNode) Kind() NodeKind { return NodeKind(99) }

func validateSrc(t *testing.T, src string) error {
	t.Helper()
	node, err := Parse(toks(t, src))
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return Validate(node)
}

func Test_Validate_AcceptsKnownNames(t *testing.T) {
	for _, src := range []string{
		"1+2",
		"pi*e",
		"sqrt(min(1, 2))",
		"(1, 2, 3)", // sequences are valid trees; only evaluation rejects them
		"-factorial(3)",
	} {
		if err := validateSrc(t, src); err != nil {
			t.Fatalf("Validate(%q) = %v, want ok", src, err)
		}
	}
}

func Test_Validate_RejectsUnknownNames(t *testing.T) {
	cases := []string{
		"bogus",
		"bogus(1)",
		"1 + bogus",
		"min(1, bogus)",
		"sqrt(nested(1))",
		"(1, bogus)",
	}
	for _, src := range cases {
		err := validateSrc(t, src)
		if err == nil {
			t.Fatalf("Validate(%q): expected error", src)
		}
		if kind, _ := KindOf(err); kind != KindUnknownName {
			t.Fatalf("Validate(%q): kind = %v, want KindUnknownName", src, err)
		}
	}
}

func Test_Validate_WholeTreeBeforeEvaluation(t *testing.T) {
	// The unknown name sits in a late branch; it must still be caught by
	// validation (Evaluate never starts the walk).
	_, err := Evaluate("1 + 2 + bogus")
	if kind, _ := KindOf(err); kind != KindUnknownName {
		t.Fatalf("kind = %v, want KindUnknownName", err)
	}
}

func Test_Validate_DisallowedConstruct(t *testing.T) {
	err := Validate(&BinaryOp{Op: OpAdd, Left: &Constant{Value: 1}, Right: badNode{}})
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, _ := KindOf(err); kind != KindDisallowedConstruct {
		t.Fatalf("kind = %v, want KindDisallowedConstruct", err)
	}

	if err := Validate(nil); err == nil {
		t.Fatal("nil tree must not validate")
	}
}

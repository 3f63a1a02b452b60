// validate.go: the pre-evaluation whitelist pass.
//
// Validate walks the whole tree before any evaluation happens. Two checks:
//
//  1. Every node's kind must be in the closed allowed set. The parser cannot
//     build anything else today, so this is defense-in-depth for future
//     grammar work, not the primary safety mechanism.
//  2. Every free identifier — bare NameRef or Call target — must exist in
//     the name table.
//
// Validation always completes (or fails) before evaluation starts; the
// evaluator never runs over an unvetted subtree.
package calc

type allowedKinds struct{}

// allowed is the closed kind whitelist. Extending the grammar means
// extending this switch deliberately.
func (allowedKinds) allows(k NodeKind) bool {
	switch k {
	case KindConstant, KindNameRef, KindUnaryOp, KindBinaryOp, KindCall, KindSequence:
		return true
	}
	return false
}

// Validate rejects the tree unless every node kind is allowed and every
// referenced name exists in the name table.
func Validate(root Node) error {
	return validateNode(root, allowedKinds{})
}

func validateNode(n Node, wl allowedKinds) error {
	if n == nil {
		return evalErr(KindDisallowedConstruct, "nil node")
	}
	if !wl.allows(n.Kind()) {
		return evalErr(KindDisallowedConstruct, "unsupported construct: %s", n.Kind())
	}

	switch node := n.(type) {
	case *Constant:
		return nil
	case *NameRef:
		if _, ok := lookupName(node.Name); !ok {
			return evalErr(KindUnknownName, "unknown function or constant: %s", node.Name)
		}
		return nil
	case *UnaryOp:
		return validateNode(node.Operand, wl)
	case *BinaryOp:
		if err := validateNode(node.Left, wl); err != nil {
			return err
		}
		return validateNode(node.Right, wl)
	case *Call:
		if _, ok := lookupName(node.Name); !ok {
			return evalErr(KindUnknownName, "unknown function or constant: %s", node.Name)
		}
		for _, a := range node.Args {
			if err := validateNode(a, wl); err != nil {
				return err
			}
		}
		return nil
	case *Sequence:
		for _, e := range node.Elems {
			if err := validateNode(e, wl); err != nil {
				return err
			}
		}
		return nil
	}
	// A type that satisfies Node but is not one of ours.
	return evalErr(KindDisallowedConstruct, "unsupported construct: %s", n.Kind())
}

// ast.go: the closed node set the parser is allowed to build.
//
// The tree is strictly shaped: every node owns its children exclusively and
// is constructed once, by the parser. There is no mutation API. The node set
// is closed on purpose: the validator whitelists these kinds and nothing
// else, so a future grammar extension cannot reach evaluation without being
// admitted here and in validate.go.
package calc

// NodeKind tags the concrete type of a Node.
type NodeKind int

const (
	KindConstant NodeKind = iota
	KindNameRef
	KindUnaryOp
	KindBinaryOp
	KindCall
	KindSequence
)

func (k NodeKind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindNameRef:
		return "NameRef"
	case KindUnaryOp:
		return "UnaryOp"
	case KindBinaryOp:
		return "BinaryOp"
	case KindCall:
		return "Call"
	case KindSequence:
		return "Sequence"
	}
	return "Unknown"
}

// Node is an expression tree node.
type Node interface {
	Kind() NodeKind
}

// UnOp is a unary operator.
type UnOp int

const (
	OpNeg UnOp = iota // "-"
	OpPos             // "+"
)

// BinOp is a binary operator.
type BinOp int

const (
	OpAdd BinOp = iota // "+"
	OpSub              // "-"
	OpMul              // "*"
	OpDiv              // "/"
	OpFloorDiv         // "//"
	OpMod              // "%"
	OpPow              // "**"
	OpShl              // "<<"
	OpShr              // ">>"
	OpBitAnd           // "&"
	OpBitXor           // "^"
	OpBitOr            // "|"
)

var binOpNames = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpFloorDiv: "//",
	OpMod: "%", OpPow: "**", OpShl: "<<", OpShr: ">>",
	OpBitAnd: "&", OpBitXor: "^", OpBitOr: "|",
}

func (op BinOp) String() string { return binOpNames[op] }

// SeqKind distinguishes the two sequence flavors the grammar can denote.
type SeqKind int

const (
	SeqTuple SeqKind = iota
	SeqList
)

// Constant is a numeric literal.
type Constant struct {
	Value float64
}

// NameRef is a free identifier, resolved against the name table.
type NameRef struct {
	Name string
}

// UnaryOp applies a prefix operator to one operand.
type UnaryOp struct {
	Op      UnOp
	Operand Node
}

// BinaryOp applies an infix operator to two operands.
type BinaryOp struct {
	Op    BinOp
	Left  Node
	Right Node
}

// Call invokes a named function with ordered arguments.
type Call struct {
	Name string
	Args []Node
}

// Sequence is a parenthesized comma list. It is legal syntax (it is how
// multi-value arguments reach min/max) but has no numeric value of its own.
type Sequence struct {
	SeqKind SeqKind
	Elems   []Node
}

func (*Constant) Kind() NodeKind { return KindConstant }
func (*NameRef) Kind() NodeKind  { return KindNameRef }
func (*UnaryOp) Kind() NodeKind  { return KindUnaryOp }
func (*BinaryOp) Kind() NodeKind { return KindBinaryOp }
func (*Call) Kind() NodeKind     { return KindCall }
func (*Sequence) Kind() NodeKind { return KindSequence }

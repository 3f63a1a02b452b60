// parser.go — recursive-descent parser for arithmetic expressions.
//
// OVERVIEW
// --------
// Consumes the token stream produced by lexer.go and builds the closed AST
// defined in ast.go. Precedence, tightest first:
//
//	primary:        NUMBER, IDENT, IDENT "(" args ")", "(" expr,... ")"
//	power:          "**"            (right-associative)
//	unary:          prefix "-" "+"  (binds looser than "**" on the left:
//	                                 -2**2 == -(2**2); 2**-2 is legal)
//	multiplicative: "*" "/" "//" "%"
//	additive:       "+" "-"
//	shift:          "<<" ">>"
//	bitwise:        "&", then "^", then "|"
//
// A parenthesized comma list becomes a Sequence node; a call's argument list
// recurses into the full grammar per argument. The parser never constructs a
// node kind outside ast.go's set, which is what makes the validator's kind
// check defense-in-depth rather than the primary safety mechanism.
//
// Nesting deeper than maxDepth is rejected up front instead of riding the
// call stack down.
package calc

import (
	"fmt"
)

// maxDepth bounds expression nesting so pathological inputs fail with a
// SyntaxError instead of exhausting the call stack.
const maxDepth = 200

// Parse parses a complete token sequence (as produced by Tokenize) and
// returns its AST. Trailing tokens after a complete expression are an error.
func Parse(toks []Token) (Node, error) {
	p := &parser{toks: toks}
	node, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		g := p.peek()
		return nil, p.errAt(g, fmt.Sprintf("unexpected token %q after expression", g.Lexeme))
	}
	return node, nil
}

//// END_OF_PUBLIC

type parser struct {
	toks  []Token
	i     int
	depth int
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		if len(p.toks) == 0 {
			return Token{Type: EOF, Line: 1}
		}
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

func (p *parser) errAt(tok Token, msg string) error {
	return &EvalError{Kind: KindSyntax, Line: tok.Line, Col: tok.Col, Msg: msg}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return p.errAt(p.peek(), "expression nesting too deep")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

// ───────────────────────────── grammar, loosest first ───────────────────────

// expression is the entry point: the loosest binary level.
func (p *parser) expression() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.bitOr()
}

// leftAssoc parses a left-associative run of the given operators over the
// next-tighter level.
func (p *parser) leftAssoc(next func() (Node, error), ops map[TokenType]BinOp) (Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() {
		op, ok := ops[p.peek().Type]
		if !ok {
			break
		}
		p.i++
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) bitOr() (Node, error) {
	return p.leftAssoc(p.bitXor, map[TokenType]BinOp{PIPE: OpBitOr})
}

func (p *parser) bitXor() (Node, error) {
	return p.leftAssoc(p.bitAnd, map[TokenType]BinOp{CARET: OpBitXor})
}

func (p *parser) bitAnd() (Node, error) {
	return p.leftAssoc(p.shift, map[TokenType]BinOp{AMP: OpBitAnd})
}

func (p *parser) shift() (Node, error) {
	return p.leftAssoc(p.additive, map[TokenType]BinOp{SHL: OpShl, SHR: OpShr})
}

func (p *parser) additive() (Node, error) {
	return p.leftAssoc(p.multiplicative, map[TokenType]BinOp{PLUS: OpAdd, MINUS: OpSub})
}

func (p *parser) multiplicative() (Node, error) {
	return p.leftAssoc(p.unary, map[TokenType]BinOp{
		STAR: OpMul, SLASH: OpDiv, DBLSLASH: OpFloorDiv, PERCENT: OpMod,
	})
}

// unary parses prefix "-"/"+" chains. The operand of a prefix sign is
// another unary, so "--2" nests; the power level below keeps "-2**2"
// parsing as "-(2**2)".
func (p *parser) unary() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.peek().Type {
	case MINUS:
		p.i++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: OpNeg, Operand: operand}, nil
	case PLUS:
		p.i++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: OpPos, Operand: operand}, nil
	}
	return p.power()
}

// power parses primary ["**" unary]. The right operand re-enters unary, so
// "2**-2" is legal; right-recursion makes "**" right-associative.
func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.match(POW) {
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Op: OpPow, Left: base, Right: exp}, nil
	}
	return base, nil
}

func (p *parser) primary() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	t := p.peek()
	switch t.Type {
	case NUMBER:
		p.i++
		return &Constant{Value: t.Value}, nil

	case IDENT:
		p.i++
		if p.peek().Type == LPAREN {
			p.i++
			args, err := p.callArgs()
			if err != nil {
				return nil, err
			}
			return &Call{Name: t.Lexeme, Args: args}, nil
		}
		return &NameRef{Name: t.Lexeme}, nil

	case LPAREN:
		p.i++
		if p.peek().Type == RPAREN {
			return nil, p.errAt(p.peek(), "empty parentheses")
		}
		first, err := p.expression()
		if err != nil {
			return nil, err
		}
		if p.peek().Type != COMMA {
			if _, err := p.need(RPAREN, "expected ')'"); err != nil {
				return nil, err
			}
			return first, nil
		}
		elems := []Node{first}
		for p.match(COMMA) {
			// trailing comma closes the tuple, as in (1, 2,)
			if p.peek().Type == RPAREN {
				break
			}
			e, err := p.expression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.need(RPAREN, "expected ')'"); err != nil {
			return nil, err
		}
		return &Sequence{SeqKind: SeqTuple, Elems: elems}, nil

	case EOF:
		return nil, p.errAt(t, "unexpected end of expression")
	}
	return nil, p.errAt(t, fmt.Sprintf("unexpected token %q", t.Lexeme))
}

// callArgs parses a possibly-empty comma-separated argument list up to the
// closing ')'. The '(' has already been consumed.
func (p *parser) callArgs() ([]Node, error) {
	var args []Node
	if p.match(RPAREN) {
		return args, nil
	}
	for {
		a, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.match(COMMA) {
			if p.peek().Type == RPAREN {
				break
			}
			continue
		}
		break
	}
	if _, err := p.need(RPAREN, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

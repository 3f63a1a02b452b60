// lexer.go
package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Structural
	LPAREN // "("
	RPAREN // ")"
	COMMA  // ","

	// Operators
	PLUS     // "+"
	MINUS    // "-"
	STAR     // "*"
	SLASH    // "/"
	DBLSLASH // "//"
	PERCENT  // "%"
	POW      // "**"
	SHL      // "<<"
	SHR      // ">>"
	AMP      // "&"
	CARET    // "^" (bitwise xor; the "^"-as-power alias is rewritten before lexing)
	PIPE     // "|"

	// Literals & identifiers
	NUMBER
	IDENT
)

// Token is a lexical token with optional numeric literal value.
type Token struct {
	Type   TokenType
	Lexeme string  // raw text slice
	Value  float64 // parsed value for NUMBER tokens
	Line   int     // 1-based
	Col    int     // 0-based column within line
}

// aliasReplacer rewrites the glyphs button-driven hosts emit into the
// canonical ASCII operators the grammar understands. Idempotent: a second
// pass over already-normalized text changes nothing.
var aliasReplacer = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"^", "**",
	"π", "pi",
)

// NormalizeAliases canonicalizes display glyphs: "×"→"*", "÷"→"/",
// "^"→"**", "π"→"pi".
func NormalizeAliases(src string) string {
	return aliasReplacer.Replace(src)
}

// Lexer scans an expression string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source. The source is expected
// to be alias-normalized already; NormalizeAliases is the caller's job.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

// Tokenize scans src into a token sequence (EOF included).
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) rewindToStart() {
	l.cur = l.start
	l.line = l.tokStartLine
	l.col = l.tokStartCol
}

func (l *Lexer) addToken(tt TokenType, val float64) Token {
	tok := Token{
		Type:   tt,
		Lexeme: l.src[l.start:l.cur],
		Value:  val,
		Line:   l.tokStartLine,
		Col:    l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

func (l *Lexer) err(msg string) error {
	return &EvalError{Kind: KindLex, Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

// ----- scanners -----

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]*
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanNumber parses a maximal digit run with at most one decimal point.
// Leading-dot forms (".5") are accepted.
func (l *Lexer) scanNumber() (float64, error) {
	sawDigits := false
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
		sawDigits = true
	}

	if b, ok := l.peek(); ok && b == '.' {
		l.advance()
		for {
			b, ok := l.peek()
			if !ok || !isDigit(b) {
				break
			}
			l.advance()
			sawDigits = true
		}
	}

	lex := l.src[l.start:l.cur]
	if !sawDigits {
		return 0, l.err("malformed number")
	}
	v, convErr := strconv.ParseFloat(lex, 64)
	if convErr != nil {
		return 0, l.err(fmt.Sprintf("invalid number literal %q", lex))
	}
	return v, nil
}

// ----- main scanner -----

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespace()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.addToken(EOF, 0), nil
	}

	ch, _ := l.advance()

	// Single-char structural tokens
	switch ch {
	case '(':
		return l.addToken(LPAREN, 0), nil
	case ')':
		return l.addToken(RPAREN, 0), nil
	case ',':
		return l.addToken(COMMA, 0), nil
	case '+':
		return l.addToken(PLUS, 0), nil
	case '-':
		return l.addToken(MINUS, 0), nil
	case '%':
		return l.addToken(PERCENT, 0), nil
	case '&':
		return l.addToken(AMP, 0), nil
	case '^':
		return l.addToken(CARET, 0), nil
	case '|':
		return l.addToken(PIPE, 0), nil
	}

	// Two-char operators, matched greedily before their one-char prefixes
	switch ch {
	case '*':
		if b, ok := l.peek(); ok && b == '*' {
			l.advance()
			return l.addToken(POW, 0), nil
		}
		return l.addToken(STAR, 0), nil
	case '/':
		if b, ok := l.peek(); ok && b == '/' {
			l.advance()
			return l.addToken(DBLSLASH, 0), nil
		}
		return l.addToken(SLASH, 0), nil
	case '<':
		if b, ok := l.peek(); ok && b == '<' {
			l.advance()
			return l.addToken(SHL, 0), nil
		}
		return Token{}, l.err("unexpected character: '<'")
	case '>':
		if b, ok := l.peek(); ok && b == '>' {
			l.advance()
			return l.addToken(SHR, 0), nil
		}
		return Token{}, l.err("unexpected character: '>'")
	}

	// Numbers (starting with a digit, or '.' followed by a digit)
	if isDigit(ch) {
		l.rewindToStart()
		v, err := l.scanNumber()
		if err != nil {
			return Token{}, err
		}
		return l.addToken(NUMBER, v), nil
	}
	if ch == '.' {
		if b, ok := l.peek(); ok && isDigit(b) {
			l.rewindToStart()
			v, err := l.scanNumber()
			if err != nil {
				return Token{}, err
			}
			return l.addToken(NUMBER, v), nil
		}
		// There is no attribute syntax; a stray dot is its own diagnosis.
		return Token{}, l.err("unexpected character: '.'")
	}

	// Identifiers
	if isAlpha(ch) {
		l.rewindToStart()
		l.scanIdentifier()
		return l.addToken(IDENT, 0), nil
	}

	return Token{}, l.err(fmt.Sprintf("unexpected character: %q", ch))
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}

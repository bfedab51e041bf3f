package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer produces tokens on demand from a whitespace-stripped expression.
type Lexer struct {
	input string
	pos   int
}

// NewLexer strips all whitespace from input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: StripSpace(input)}
}

// StripSpace removes every whitespace rune, yielding the text the lexer scans.
// "1 0" becomes the single number "10".
func StripSpace(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
}

// Next returns the next token. At end of input it returns EOF on every call.
func (l *Lexer) Next() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: EOF, Pos: l.pos}, nil
	}

	start := l.pos
	c, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if isNumberRune(c) {
		for l.pos < len(l.input) && isNumberRune(rune(l.input[l.pos])) {
			l.pos++
		}
		return Token{Kind: NUMBER, Text: l.input[start:l.pos], Pos: start}, nil
	}

	var kind TokenKind
	switch c {
	case '+':
		kind = PLUS
	case '-':
		kind = MINUS
	case '*', '×':
		kind = MULTIPLY
	case '/', '÷':
		kind = DIVIDE
	case '(':
		kind = LPAREN
	case ')':
		kind = RPAREN
	default:
		return Token{}, &Error{Kind: KindInvalidCharacter, Char: c, Pos: start}
	}
	l.pos += size
	return Token{Kind: kind, Text: string(c), Pos: start}, nil
}

func isNumberRune(c rune) bool {
	return (c >= '0' && c <= '9') || c == '.'
}

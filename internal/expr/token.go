package expr

// TokenKind classifies a lexical token.
type TokenKind int

const (
	EOF TokenKind = iota
	NUMBER
	PLUS
	MINUS
	MULTIPLY
	DIVIDE
	LPAREN
	RPAREN
)

var kindNames = map[TokenKind]string{
	EOF:      "EOF",
	NUMBER:   "NUMBER",
	PLUS:     "PLUS",
	MINUS:    "MINUS",
	MULTIPLY: "MULTIPLY",
	DIVIDE:   "DIVIDE",
	LPAREN:   "LPAREN",
	RPAREN:   "RPAREN",
}

func (k TokenKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexeme. Pos is the byte offset in the whitespace-stripped input.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

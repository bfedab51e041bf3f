package expr

import (
	"errors"

	"github.com/gokatarajesh/make-ten/internal/rational"
)

// Parser evaluates while it parses:
//
//	expr   := term ((PLUS | MINUS) term)*
//	term   := factor ((MULTIPLY | DIVIDE) factor)*
//	factor := (PLUS | MINUS) factor | NUMBER | LPAREN expr RPAREN
type Parser struct {
	lexer   *Lexer
	current Token
}

// NewParser primes the parser with the first token.
func NewParser(lexer *Lexer) (*Parser, error) {
	p := &Parser{lexer: lexer}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

// eat consumes the current token if it has the expected kind.
func (p *Parser) eat(kind TokenKind) error {
	if p.current.Kind != kind {
		if kind == RPAREN {
			return &Error{Kind: KindUnbalancedParentheses, Pos: p.current.Pos, Text: p.current.Text}
		}
		return &Error{Kind: KindUnexpectedToken, Expected: kind, Actual: p.current.Kind, Pos: p.current.Pos, Text: p.current.Text}
	}
	return p.advance()
}

// Parse evaluates a full expression and requires EOF afterwards.
func (p *Parser) Parse() (rational.Rational, error) {
	result, err := p.expr()
	if err != nil {
		return rational.Rational{}, err
	}
	switch p.current.Kind {
	case EOF:
		return result, nil
	case RPAREN:
		return rational.Rational{}, &Error{Kind: KindUnbalancedParentheses, Pos: p.current.Pos, Text: p.current.Text}
	default:
		return rational.Rational{}, &Error{Kind: KindTrailingInput, Pos: p.current.Pos, Text: p.current.Text}
	}
}

func (p *Parser) expr() (rational.Rational, error) {
	result, err := p.term()
	if err != nil {
		return result, err
	}
	for p.current.Kind == PLUS || p.current.Kind == MINUS {
		op := p.current.Kind
		if err := p.eat(op); err != nil {
			return result, err
		}
		rhs, err := p.term()
		if err != nil {
			return result, err
		}
		if op == PLUS {
			result = result.Add(rhs)
		} else {
			result = result.Subtract(rhs)
		}
	}
	return result, nil
}

func (p *Parser) term() (rational.Rational, error) {
	result, err := p.factor()
	if err != nil {
		return result, err
	}
	for p.current.Kind == MULTIPLY || p.current.Kind == DIVIDE {
		op := p.current.Kind
		if err := p.eat(op); err != nil {
			return result, err
		}
		rhs, err := p.factor()
		if err != nil {
			return result, err
		}
		if op == MULTIPLY {
			result = result.Multiply(rhs)
			continue
		}
		result, err = result.Divide(rhs)
		if errors.Is(err, rational.ErrDivisionByZero) {
			return result, &Error{Kind: KindDivisionByZero, Pos: p.current.Pos}
		}
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (p *Parser) factor() (rational.Rational, error) {
	tok := p.current
	switch tok.Kind {
	case PLUS:
		if err := p.eat(PLUS); err != nil {
			return rational.Rational{}, err
		}
		return p.factor()
	case MINUS:
		if err := p.eat(MINUS); err != nil {
			return rational.Rational{}, err
		}
		v, err := p.factor()
		if err != nil {
			return v, err
		}
		return v.Negate(), nil
	case NUMBER:
		if err := p.eat(NUMBER); err != nil {
			return rational.Rational{}, err
		}
		v, err := rational.FromDecimalLiteral(tok.Text)
		if err != nil {
			return rational.Rational{}, &Error{Kind: KindMalformedNumber, Pos: tok.Pos, Text: tok.Text}
		}
		return v, nil
	case LPAREN:
		if err := p.eat(LPAREN); err != nil {
			return rational.Rational{}, err
		}
		v, err := p.expr()
		if err != nil {
			return v, err
		}
		if err := p.eat(RPAREN); err != nil {
			return rational.Rational{}, err
		}
		return v, nil
	default:
		return rational.Rational{}, &Error{Kind: KindUnexpectedToken, Expected: NUMBER, Actual: tok.Kind, Pos: tok.Pos, Text: tok.Text}
	}
}

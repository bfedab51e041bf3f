// Package expr tokenizes, parses and exactly evaluates arithmetic expressions
// over + - * / and parentheses. × and ÷ are accepted as synonyms of * and /.
package expr

import (
	"errors"
	"unicode/utf8"

	"github.com/gokatarajesh/make-ten/internal/rational"
)

// MaxLength bounds accepted input, which also bounds parser recursion depth.
const MaxLength = 200

// Target is the value every puzzle must reach.
var Target = rational.FromInteger(10)

// Evaluate parses and computes expression exactly. Every failure is an *Error.
func Evaluate(expression string) (rational.Rational, error) {
	if utf8.RuneCountInString(expression) > MaxLength {
		return rational.Rational{}, &Error{Kind: KindTooLong}
	}
	p, err := NewParser(NewLexer(expression))
	if err != nil {
		return rational.Rational{}, asError(err)
	}
	v, err := p.Parse()
	if err != nil {
		return rational.Rational{}, asError(err)
	}
	return v, nil
}

// EvaluateFloat is Evaluate converted to float64 for display.
func EvaluateFloat(expression string) (float64, error) {
	v, err := Evaluate(expression)
	if err != nil {
		return 0, err
	}
	return v.Float64(), nil
}

// IsValid reports whether expression evaluates without error.
func IsValid(expression string) bool {
	_, err := Evaluate(expression)
	return err == nil
}

// IsTen reports exact equality with Target.
func IsTen(v rational.Rational) bool {
	return v.Equals(Target)
}

func asError(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, rational.ErrDivisionByZero) {
		return &Error{Kind: KindDivisionByZero}
	}
	return &Error{Kind: KindMalformedNumber, Text: err.Error()}
}

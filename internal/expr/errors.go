package expr

import (
	"fmt"
)

// ErrorKind tags an evaluation failure.
type ErrorKind string

const (
	KindInvalidCharacter      ErrorKind = "invalid_character"
	KindUnexpectedToken       ErrorKind = "unexpected_token"
	KindTrailingInput         ErrorKind = "trailing_input"
	KindDivisionByZero        ErrorKind = "division_by_zero"
	KindUnbalancedParentheses ErrorKind = "unbalanced_parentheses"
	KindMalformedNumber       ErrorKind = "malformed_number"
	KindTooLong               ErrorKind = "too_long"
)

// Error is the single failure type surfaced by Evaluate.
type Error struct {
	Kind     ErrorKind
	Pos      int
	Char     rune      // KindInvalidCharacter
	Text     string    // offending literal or token text
	Expected TokenKind // KindUnexpectedToken
	Actual   TokenKind // KindUnexpectedToken
}

// Sentinels for errors.Is comparisons; only Kind is compared.
var (
	ErrInvalidCharacter      = &Error{Kind: KindInvalidCharacter}
	ErrUnexpectedToken       = &Error{Kind: KindUnexpectedToken}
	ErrTrailingInput         = &Error{Kind: KindTrailingInput}
	ErrDivisionByZero        = &Error{Kind: KindDivisionByZero}
	ErrUnbalancedParentheses = &Error{Kind: KindUnbalancedParentheses}
	ErrMalformedNumber       = &Error{Kind: KindMalformedNumber}
	ErrTooLong               = &Error{Kind: KindTooLong}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidCharacter:
		return fmt.Sprintf("invalid character %q at %d", e.Char, e.Pos)
	case KindUnexpectedToken:
		return fmt.Sprintf("expected %s, got %s at %d", e.Expected, e.Actual, e.Pos)
	case KindTrailingInput:
		return fmt.Sprintf("unexpected %q after expression at %d", e.Text, e.Pos)
	case KindDivisionByZero:
		return "division by zero"
	case KindUnbalancedParentheses:
		return fmt.Sprintf("unbalanced parentheses at %d", e.Pos)
	case KindMalformedNumber:
		return fmt.Sprintf("malformed number %q at %d", e.Text, e.Pos)
	case KindTooLong:
		return fmt.Sprintf("expression exceeds %d characters", MaxLength)
	default:
		return string(e.Kind)
	}
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

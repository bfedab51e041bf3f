// Package rational implements an immutable exact fraction type.
package rational

import (
	"errors"
	"math/big"
	"strings"
)

// ErrDivisionByZero is returned when a zero denominator would be produced.
var ErrDivisionByZero = errors.New("division by zero")

// ErrMalformedLiteral is returned by FromDecimalLiteral for text that is not a decimal number.
var ErrMalformedLiteral = errors.New("malformed decimal literal")

// Rational is a fraction kept in lowest terms with a positive denominator.
// The zero value is 0/1. Values are never mutated after construction.
type Rational struct {
	num *big.Int
	den *big.Int
}

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)
)

// New builds numerator/denominator reduced to lowest terms.
func New(numerator, denominator int64) (Rational, error) {
	return fromBig(big.NewInt(numerator), big.NewInt(denominator))
}

// FromInteger returns n/1.
func FromInteger(n int64) Rational {
	return Rational{num: big.NewInt(n), den: big.NewInt(1)}
}

// FromDecimalLiteral parses text such as "7", "3.25" or ".5" into an exact fraction by
// scaling by 10^(digits after the point).
func FromDecimalLiteral(text string) (Rational, error) {
	if text == "" || strings.Count(text, ".") > 1 {
		return Rational{}, ErrMalformedLiteral
	}
	intPart, fracPart, _ := strings.Cut(text, ".")
	digits := intPart + fracPart
	if digits == "" {
		return Rational{}, ErrMalformedLiteral
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return Rational{}, ErrMalformedLiteral
		}
	}

	num, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Rational{}, ErrMalformedLiteral
	}
	den := new(big.Int).Exp(bigTen, big.NewInt(int64(len(fracPart))), nil)
	return fromBig(num, den)
}

// fromBig takes ownership of num and den.
func fromBig(num, den *big.Int) (Rational, error) {
	if den.Sign() == 0 {
		return Rational{}, ErrDivisionByZero
	}
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	g := gcd(new(big.Int).Abs(num), den)
	if g.Sign() != 0 && g.Cmp(bigOne) != 0 {
		num.Quo(num, g)
		den.Quo(den, g)
	}
	return Rational{num: num, den: den}, nil
}

// gcd is Euclid's algorithm over non-negative operands.
func gcd(a, b *big.Int) *big.Int {
	a = new(big.Int).Set(a)
	b = new(big.Int).Set(b)
	for b.Sign() != 0 {
		a, b = b, a.Rem(a, b)
	}
	return a
}

func (r Rational) n() *big.Int {
	if r.num == nil {
		return new(big.Int)
	}
	return r.num
}

func (r Rational) d() *big.Int {
	if r.den == nil {
		return big.NewInt(1)
	}
	return r.den
}

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	num := new(big.Int).Mul(r.n(), o.d())
	num.Add(num, new(big.Int).Mul(o.n(), r.d()))
	out, _ := fromBig(num, new(big.Int).Mul(r.d(), o.d()))
	return out
}

// Subtract returns r - o.
func (r Rational) Subtract(o Rational) Rational {
	num := new(big.Int).Mul(r.n(), o.d())
	num.Sub(num, new(big.Int).Mul(o.n(), r.d()))
	out, _ := fromBig(num, new(big.Int).Mul(r.d(), o.d()))
	return out
}

// Multiply returns r * o.
func (r Rational) Multiply(o Rational) Rational {
	out, _ := fromBig(new(big.Int).Mul(r.n(), o.n()), new(big.Int).Mul(r.d(), o.d()))
	return out
}

// Divide returns r / o, or ErrDivisionByZero when o is zero.
func (r Rational) Divide(o Rational) (Rational, error) {
	if o.n().Sign() == 0 {
		return Rational{}, ErrDivisionByZero
	}
	return fromBig(new(big.Int).Mul(r.n(), o.d()), new(big.Int).Mul(r.d(), o.n()))
}

// Negate returns -r.
func (r Rational) Negate() Rational {
	return Rational{num: new(big.Int).Neg(r.n()), den: new(big.Int).Set(r.d())}
}

// Equals reports exact equality.
func (r Rational) Equals(o Rational) bool {
	return r.n().Cmp(o.n()) == 0 && r.d().Cmp(o.d()) == 0
}

// Sign returns -1, 0 or +1.
func (r Rational) Sign() int {
	return r.n().Sign()
}

// IsInteger reports whether the denominator is 1.
func (r Rational) IsInteger() bool {
	return r.d().Cmp(bigOne) == 0
}

// Int64 returns the value when it is an integer representable as int64.
func (r Rational) Int64() (int64, bool) {
	if !r.IsInteger() || !r.n().IsInt64() {
		return 0, false
	}
	return r.n().Int64(), true
}

// Float64 converts to the nearest float64. Intended for display only.
func (r Rational) Float64() float64 {
	f, _ := new(big.Rat).SetFrac(r.n(), r.d()).Float64()
	return f
}

// String renders "n" for integers and "n/d" otherwise.
func (r Rational) String() string {
	if r.IsInteger() {
		return r.n().String()
	}
	return r.n().String() + "/" + r.d().String()
}

// Package puzzle holds the make-ten puzzle pools, the per-room problem sequence
// generator and the digit-usage rules applied to submitted formulas.
package puzzle

import (
	"fmt"
)

// Difficulty of a pool.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyNormal    Difficulty = "normal"
	DifficultyDifficult Difficulty = "difficult"
)

// DigitCount is the number of digits in every puzzle.
const DigitCount = 4

// Puzzle is one immutable problem drawn from a pool.
type Puzzle struct {
	Digits     [DigitCount]int `json:"digits"`
	Difficulty Difficulty      `json:"difficulty"`
	Key        string          `json:"key"`
}

// DigitSlice returns a copy of the digits.
func (p Puzzle) DigitSlice() []int {
	out := make([]int, DigitCount)
	copy(out, p.Digits[:])
	return out
}

// ParseKey converts a pool entry such as "0379" to its digits.
func ParseKey(key string) ([DigitCount]int, error) {
	var digits [DigitCount]int
	if len(key) != DigitCount {
		return digits, fmt.Errorf("puzzle key %q: want %d digits", key, DigitCount)
	}
	for i := 0; i < DigitCount; i++ {
		c := key[i]
		if c < '0' || c > '9' {
			return digits, fmt.Errorf("puzzle key %q: %q is not a digit", key, c)
		}
		digits[i] = int(c - '0')
	}
	return digits, nil
}

// Pool is a fixed set of puzzle keys sharing a difficulty.
type Pool struct {
	Difficulty Difficulty
	Keys       []string
}

// DefaultPools returns the built-in pools in rotation order easy, normal, difficult.
func DefaultPools() []Pool {
	return []Pool{
		{Difficulty: DifficultyEasy, Keys: easyPool},
		{Difficulty: DifficultyNormal, Keys: normalPool},
		{Difficulty: DifficultyDifficult, Keys: difficultPool},
	}
}

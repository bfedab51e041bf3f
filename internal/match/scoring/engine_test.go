package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectAddsPoints(t *testing.T) {
	e := NewEngine(DefaultScoringConfig())
	var tally Tally

	earned := e.Correct(&tally)
	assert.Equal(t, 10, earned)
	assert.Equal(t, Tally{Score: 10, Correct: 1}, tally)
}

func TestWrongKeepsScore(t *testing.T) {
	e := NewEngine(DefaultScoringConfig())
	tally := Tally{Score: 20, Correct: 2}

	e.Wrong(&tally)
	assert.Equal(t, Tally{Score: 20, Correct: 2, Wrong: 1}, tally)
}

func TestSkipFloorsAtZero(t *testing.T) {
	e := NewEngine(DefaultScoringConfig())
	var tally Tally

	for i := 0; i < 3; i++ {
		assert.Equal(t, 0, e.Skip(&tally))
	}
	assert.Equal(t, 0, tally.Score)
	assert.Equal(t, 3, tally.Skip)

	tally.Score = 5
	assert.Equal(t, 3, e.Skip(&tally))
	assert.Equal(t, 2, tally.Score)
	assert.Equal(t, 2, e.Skip(&tally))
	assert.Equal(t, 0, tally.Score)
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(ScoringConfig{})
	assert.Equal(t, 10, e.Config().CorrectPoints)
	assert.Equal(t, 0, e.Config().SkipPenalty)

	e = NewEngine(ScoringConfig{CorrectPoints: 5, SkipPenalty: -1})
	assert.Equal(t, ScoringConfig{CorrectPoints: 5, SkipPenalty: 3}, e.Config())
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, Tally{}.Accuracy())
	assert.Equal(t, 0.75, Tally{Correct: 3, Wrong: 1, Skip: 4}.Accuracy())
}

package solo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/make-ten/internal/match/scoring"
	"github.com/gokatarajesh/make-ten/internal/puzzle"
)

type firstSource struct{}

func (firstSource) Intn(int) int { return 0 }

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestSession(t *testing.T, opts Options) (*Session, *clock) {
	t.Helper()
	seq, err := puzzle.NewSequencer(firstSource{},
		puzzle.Pool{Difficulty: puzzle.DifficultyEasy, Keys: []string{"1234"}},
		puzzle.Pool{Difficulty: puzzle.DifficultyNormal, Keys: []string{"1135"}},
	)
	require.NoError(t, err)
	c := &clock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	if opts.SequenceLength == 0 {
		opts.SequenceLength = 4
	}
	return newSession(seq, opts, c.now), c
}

func TestSubmitCorrectAdvances(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	assert.Equal(t, []int{1, 2, 3, 4}, s.Digits())

	res, err := s.Submit(" 1+2+3+4 ")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 10, res.Earned)
	assert.Equal(t, "10", res.Value)
	assert.Equal(t, []int{1, 1, 3, 5}, res.NewDigits)
	assert.Equal(t, []int{1, 1, 3, 5}, s.Digits())

	res, err = s.Submit("5*(3-1)*1")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 20, s.Score())
}

func TestSubmitWrongValueCountsMiss(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	res, err := s.Submit("1*2*3*4")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "24", res.Value)
	assert.Equal(t, []int{1, 2, 3, 4}, s.Digits())

	sum := s.Summary()
	assert.Equal(t, 1, sum.Wrong)
	assert.Equal(t, 0, sum.Score)
}

func TestSubmitInvalidLeavesTallyAlone(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	cases := []struct {
		formula string
		want    error
	}{
		{"1+2+3", ErrInvalidDigits},
		{"12+3+4", ErrInvalidDigits},
		{"1+2+3+5", ErrInvalidDigits},
		{"1+2+(3+4", ErrInvalidFormula},
		{"4/(3-2-1)", ErrInvalidFormula},
	}
	for _, tc := range cases {
		t.Run(tc.formula, func(t *testing.T) {
			_, err := s.Submit(tc.formula)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, Summary{}, s.Summary())
}

func TestSubmitTooLong(t *testing.T) {
	s, _ := newTestSession(t, Options{MaxFormulaLength: 8})
	_, err := s.Submit("1 + 2 + 3 + 4")
	assert.ErrorIs(t, err, ErrInvalidFormula)
}

func TestSkipFloorsAtZero(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	deducted, err := s.Skip()
	require.NoError(t, err)
	assert.Equal(t, 0, deducted)
	assert.Equal(t, []int{1, 1, 3, 5}, s.Digits())

	_, err = s.Submit("5*(3-1)*1")
	require.NoError(t, err)
	deducted, err = s.Skip()
	require.NoError(t, err)
	assert.Equal(t, 3, deducted)
	assert.Equal(t, 7, s.Score())
	assert.Equal(t, 2, s.Summary().Skip)
}

func TestCustomScoring(t *testing.T) {
	s, _ := newTestSession(t, Options{Scoring: scoring.ScoringConfig{CorrectPoints: 5, SkipPenalty: 1}})
	res, err := s.Submit("1+2+3+4")
	require.NoError(t, err)
	assert.Equal(t, 5, res.Earned)
}

func TestExpiry(t *testing.T) {
	s, c := newTestSession(t, Options{Duration: time.Minute})
	assert.Equal(t, time.Minute, s.Remaining())

	c.t = c.t.Add(59 * time.Second)
	assert.False(t, s.Expired(c.t))
	assert.Equal(t, time.Second, s.Remaining())

	c.t = c.t.Add(2 * time.Second)
	assert.True(t, s.Expired(c.t))
	assert.Equal(t, time.Duration(0), s.Remaining())

	_, err := s.Submit("1+2+3+4")
	assert.ErrorIs(t, err, ErrExpired)
	_, err = s.Skip()
	assert.ErrorIs(t, err, ErrExpired)
	assert.Equal(t, time.Minute, s.Summary().Elapsed)
}

func TestSequenceWraps(t *testing.T) {
	s, _ := newTestSession(t, Options{SequenceLength: 2})
	_, _ = s.Skip()
	_, _ = s.Skip()
	assert.Equal(t, []int{1, 2, 3, 4}, s.Digits())
}

func TestSubmitRejectsSpacedMultiDigitNumber(t *testing.T) {
	seq, err := puzzle.NewSequencer(firstSource{}, puzzle.Pool{Difficulty: puzzle.DifficultyEasy, Keys: []string{"1055"}})
	require.NoError(t, err)
	s := NewSession(seq, Options{SequenceLength: 1})

	_, err = s.Submit("1 0*5/5")
	assert.ErrorIs(t, err, ErrInvalidDigits)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Summary().Correct)

	res, err := s.Submit("5+5*(1+0)")
	require.NoError(t, err)
	assert.True(t, res.Correct)
}

// Package solo runs a single-player timed round over the same puzzle and
// scoring rules as multiplayer rooms.
package solo

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gokatarajesh/make-ten/internal/expr"
	"github.com/gokatarajesh/make-ten/internal/match/scoring"
	"github.com/gokatarajesh/make-ten/internal/puzzle"
)

var (
	// ErrExpired is returned once the round time has run out.
	ErrExpired = errors.New("round is over")
	// ErrInvalidDigits means the formula does not use exactly the current four digits.
	ErrInvalidDigits = errors.New("formula must use each digit exactly once")
	// ErrInvalidFormula wraps parse and evaluation failures.
	ErrInvalidFormula = errors.New("formula could not be evaluated")
)

// Options configures a solo session.
type Options struct {
	Duration         time.Duration // default: 180s
	SequenceLength   int           // default: 90
	MaxFormulaLength int           // default: 200
	Scoring          scoring.ScoringConfig
}

func (o Options) withDefaults() Options {
	if o.Duration <= 0 {
		o.Duration = 180 * time.Second
	}
	if o.SequenceLength <= 0 {
		o.SequenceLength = puzzle.DefaultSequenceLength
	}
	if o.MaxFormulaLength <= 0 {
		o.MaxFormulaLength = 200
	}
	if o.Scoring == (scoring.ScoringConfig{}) {
		o.Scoring = scoring.DefaultScoringConfig()
	}
	return o
}

// Result describes one submission.
type Result struct {
	Correct   bool
	Value     string
	Earned    int
	NewDigits []int
}

// Summary is the end-of-round report.
type Summary struct {
	Score    int
	Correct  int
	Wrong    int
	Skip     int
	Accuracy float64
	Elapsed  time.Duration
}

// Session is not safe for concurrent use.
type Session struct {
	sequence puzzle.Sequence
	engine   *scoring.Engine
	opts     Options

	index     int
	tally     scoring.Tally
	startedAt time.Time
	now       func() time.Time
}

// NewSession draws a fresh sequence from sequencer and starts the clock.
func NewSession(sequencer *puzzle.Sequencer, opts Options) *Session {
	return newSession(sequencer, opts, time.Now)
}

func newSession(sequencer *puzzle.Sequencer, opts Options, now func() time.Time) *Session {
	opts = opts.withDefaults()
	if sequencer == nil {
		sequencer = puzzle.NewDefaultSequencer(nil)
	}
	return &Session{
		sequence:  sequencer.Generate(opts.SequenceLength),
		engine:    scoring.NewEngine(opts.Scoring),
		opts:      opts,
		startedAt: now(),
		now:       now,
	}
}

// Digits returns the current puzzle.
func (s *Session) Digits() []int {
	return s.sequence.At(s.index).DigitSlice()
}

// Remaining is the time left, never negative.
func (s *Session) Remaining() time.Duration {
	left := s.opts.Duration - s.now().Sub(s.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the round has ended at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.startedAt.Add(s.opts.Duration))
}

// Submit checks formula against the current digits. Invalid formulas leave the
// score untouched; a wrong value counts as a miss.
func (s *Session) Submit(formula string) (Result, error) {
	if s.Expired(s.now()) {
		return Result{}, ErrExpired
	}

	formula = strings.TrimSpace(formula)
	if utf8.RuneCountInString(formula) > s.opts.MaxFormulaLength {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidFormula, expr.ErrTooLong)
	}
	if !puzzle.UsesAllDigits(formula, s.Digits()) {
		return Result{}, ErrInvalidDigits
	}
	value, err := expr.Evaluate(formula)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidFormula, err)
	}

	res := Result{Value: value.String()}
	if expr.IsTen(value) {
		res.Correct = true
		res.Earned = s.engine.Correct(&s.tally)
		s.index = s.sequence.Next(s.index)
		res.NewDigits = s.Digits()
		return res, nil
	}
	s.engine.Wrong(&s.tally)
	return res, nil
}

// Skip advances to the next puzzle and returns the points deducted.
func (s *Session) Skip() (int, error) {
	if s.Expired(s.now()) {
		return 0, ErrExpired
	}
	deducted := s.engine.Skip(&s.tally)
	s.index = s.sequence.Next(s.index)
	return deducted, nil
}

// Score is the running total.
func (s *Session) Score() int { return s.tally.Score }

// Summary reports the round so far.
func (s *Session) Summary() Summary {
	elapsed := s.now().Sub(s.startedAt)
	if elapsed > s.opts.Duration {
		elapsed = s.opts.Duration
	}
	return Summary{
		Score:    s.tally.Score,
		Correct:  s.tally.Correct,
		Wrong:    s.tally.Wrong,
		Skip:     s.tally.Skip,
		Accuracy: s.tally.Accuracy(),
		Elapsed:  elapsed,
	}
}

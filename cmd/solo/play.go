package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/make-ten/internal/logging"
	"github.com/gokatarajesh/make-ten/internal/puzzle"
	"github.com/gokatarajesh/make-ten/internal/solo"
)

func play(ctx context.Context, cfg *Config, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	level := "warn"
	if cfg.verbose {
		level = "debug"
	}
	logger := logging.New("make-ten-solo", "cli", level).Output(zerolog.ConsoleWriter{Out: os.Stderr})

	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug().Int64("seed", seed).Int("count", cfg.count).Dur("duration", cfg.duration).Msg("starting solo round")

	session := solo.NewSession(
		puzzle.NewDefaultSequencer(rand.New(rand.NewSource(seed))),
		solo.Options{Duration: cfg.duration, SequenceLength: cfg.count},
	)

	lines := make(chan string)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
	}()

	timer := time.NewTimer(session.Remaining())
	defer timer.Stop()

	fmt.Fprintln(out, "Make 10 using each digit once with + - * / and parentheses. Type 'skip' or 'quit'.")
	prompt(out, session)

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-timer.C:
			fmt.Fprintln(out, "\nTime's up!")
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			if done := handleLine(out, logger, session, strings.TrimSpace(line)); done {
				break loop
			}
			prompt(out, session)
		}
	}

	printSummary(out, session.Summary())
	return nil
}

// handleLine reports whether the round should stop.
func handleLine(out io.Writer, logger zerolog.Logger, session *solo.Session, line string) bool {
	switch strings.ToLower(line) {
	case "":
		return false
	case "quit", "exit":
		return true
	case "skip":
		deducted, err := session.Skip()
		if errors.Is(err, solo.ErrExpired) {
			fmt.Fprintln(out, "Time's up!")
			return true
		}
		logger.Debug().Int("deducted", deducted).Msg("skipped")
		fmt.Fprintf(out, "Skipped (-%d)\n", deducted)
		return false
	}

	res, err := session.Submit(line)
	switch {
	case errors.Is(err, solo.ErrExpired):
		fmt.Fprintln(out, "Time's up!")
		return true
	case errors.Is(err, solo.ErrInvalidDigits):
		fmt.Fprintln(out, "Use each of the four digits exactly once.")
	case err != nil:
		logger.Debug().Err(err).Str("formula", line).Msg("invalid formula")
		fmt.Fprintln(out, "That formula is not valid.")
	case res.Correct:
		logger.Debug().Str("formula", line).Int("earned", res.Earned).Msg("correct")
		fmt.Fprintf(out, "Correct! +%d\n", res.Earned)
	default:
		logger.Debug().Str("formula", line).Str("value", res.Value).Msg("wrong")
		fmt.Fprintf(out, "%s = %s, not 10\n", line, res.Value)
	}
	return false
}

func prompt(out io.Writer, session *solo.Session) {
	digits := session.Digits()
	parts := make([]string, len(digits))
	for i, d := range digits {
		parts[i] = fmt.Sprint(d)
	}
	fmt.Fprintf(out, "[%s] score %d, %ds left > ", strings.Join(parts, " "), session.Score(), int(session.Remaining().Seconds()))
}

func printSummary(out io.Writer, s solo.Summary) {
	fmt.Fprintf(out, "\nScore: %d\nCorrect: %d  Wrong: %d  Skipped: %d\nAccuracy: %.0f%%\nTime: %s\n",
		s.Score, s.Correct, s.Wrong, s.Skip, s.Accuracy*100, s.Elapsed.Round(time.Second))
}

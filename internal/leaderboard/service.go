package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned when no stored result exists for a room.
var ErrNotFound = errors.New("result not found")

// PlayerResult is one row of a finished round.
type PlayerResult struct {
	Name     string  `json:"name"`
	Rank     int     `json:"rank"`
	Score    int     `json:"score"`
	Correct  int     `json:"correct"`
	Wrong    int     `json:"wrong"`
	Skip     int     `json:"skip"`
	Accuracy float64 `json:"accuracy"`
}

// GameResult captures the standings of a finished round.
type GameResult struct {
	RoomID          string         `json:"roomId"`
	DurationSeconds int            `json:"durationSeconds"`
	EndedAt         time.Time      `json:"endedAt"`
	Players         []PlayerResult `json:"players"`
}

// Entry represents a leaderboard record sent to clients.
type Entry struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Games   int    `json:"games"`
	Correct int    `json:"correct"`
}

// Store persists round results and best-score aggregates.
type Store interface {
	SaveResult(ctx context.Context, result GameResult) error
	RoomResult(ctx context.Context, roomID string) (*GameResult, error)
	Top(ctx context.Context, limit int) ([]Entry, error)
}

// ServiceOptions configures leaderboard service behavior.
type ServiceOptions struct {
	TopN int
}

// Service records finished rounds and answers leaderboard queries.
type Service struct {
	store  Store
	logger zerolog.Logger
	topN   int
}

// NewService constructs a leaderboard service instance.
func NewService(store Store, logger zerolog.Logger, opts ServiceOptions) *Service {
	topN := opts.TopN
	if topN <= 0 {
		topN = 50
	}
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "leaderboard").Logger(),
		topN:   topN,
	}
}

// RecordGame stores a finished round. Players without a name are dropped.
func (s *Service) RecordGame(ctx context.Context, result GameResult) error {
	if strings.TrimSpace(result.RoomID) == "" {
		return fmt.Errorf("record game: room id is required")
	}
	players := make([]PlayerResult, 0, len(result.Players))
	for _, p := range result.Players {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		players = append(players, p)
	}
	result.Players = players
	if result.EndedAt.IsZero() {
		result.EndedAt = time.Now().UTC()
	}

	if err := s.store.SaveResult(ctx, result); err != nil {
		return fmt.Errorf("record game %s: %w", result.RoomID, err)
	}

	s.logger.Info().
		Str("room_id", result.RoomID).
		Int("players", len(players)).
		Msg("game result recorded")
	return nil
}

// RoomResult returns the last finished round for a room.
func (s *Service) RoomResult(ctx context.Context, roomID string) (*GameResult, error) {
	return s.store.RoomResult(ctx, roomID)
}

// Top retrieves the best scores, capped at the configured size.
func (s *Service) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.topN {
		limit = s.topN
	}
	entries, err := s.store.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

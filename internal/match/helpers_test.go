package match

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/make-ten/internal/leaderboard"
	"github.com/gokatarajesh/make-ten/internal/match/scoring"
	"github.com/gokatarajesh/make-ten/internal/puzzle"
	"github.com/gokatarajesh/make-ten/pkg/http/ws"
)

type sentMessage struct {
	to  string
	msg ws.Message
}

// recordingSender captures every outbound message.
type recordingSender struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (r *recordingSender) Send(to string, msg ws.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMessage{to: to, msg: msg})
	return nil
}

// of returns messages of msgType delivered to a connection, in order.
func (r *recordingSender) of(to, msgType string) []ws.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ws.Message
	for _, s := range r.sent {
		if s.to == to && s.msg.Type == msgType {
			out = append(out, s.msg)
		}
	}
	return out
}

func (r *recordingSender) last(t *testing.T, to, msgType string) ws.Message {
	t.Helper()
	msgs := r.of(to, msgType)
	require.NotEmpty(t, msgs, "no %s sent to %s", msgType, to)
	return msgs[len(msgs)-1]
}

// recipients lists who received msgType, in order.
func (r *recordingSender) recipients(msgType string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, s := range r.sent {
		if s.msg.Type == msgType {
			out = append(out, s.to)
		}
	}
	return out
}

func (r *recordingSender) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

type recordingResults struct {
	mu      sync.Mutex
	results []leaderboard.GameResult
}

func (r *recordingResults) RecordGame(_ context.Context, result leaderboard.GameResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	return nil
}

func (r *recordingResults) all() []leaderboard.GameResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]leaderboard.GameResult(nil), r.results...)
}

// firstSource always picks the first candidate.
type firstSource struct{}

func (firstSource) Intn(int) int { return 0 }

// scriptedSource replays fixed values.
type scriptedSource struct {
	values []int
	i      int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.values[s.i%len(s.values)] % n
	s.i++
	return v
}

var (
	firstDigits  = []int{1, 2, 3, 4}
	secondDigits = []int{1, 1, 3, 5}
)

type fixture struct {
	svc     *Service
	sender  *recordingSender
	clock   *ManualScheduler
	results *recordingResults
}

// newFixture builds a service whose puzzles alternate 1234, 1135.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	seq, err := puzzle.NewSequencer(firstSource{}, puzzle.Pool{Difficulty: puzzle.DifficultyEasy, Keys: []string{"1234", "1135"}})
	require.NoError(t, err)

	f := &fixture{
		sender:  &recordingSender{},
		clock:   NewManualScheduler(),
		results: &recordingResults{},
	}
	f.svc = NewService(Dependencies{
		Registry:  NewRegistry(),
		Sender:    f.sender,
		Scheduler: f.clock,
		Sequencer: seq,
		Scoring:   scoring.NewEngine(scoring.DefaultScoringConfig()),
		Results:   f.results,
		Codes:     &scriptedSource{values: []int{0}},
	}, ServiceOptions{SequenceLength: 4}, zerolog.New(io.Discard))
	return f
}

func (f *fixture) room(t *testing.T, id string) *Room {
	t.Helper()
	room, ok := f.svc.Registry().Get(id)
	require.True(t, ok, "room %s missing", id)
	return room
}

func (f *fixture) player(t *testing.T, roomID, connID string) *Player {
	t.Helper()
	p, ok := f.room(t, roomID).Player(connID)
	require.True(t, ok, "player %s missing", connID)
	return p
}

// activeRoom seats conns and runs the manual start countdown to completion.
func (f *fixture) activeRoom(t *testing.T, roomID string, conns ...string) *Room {
	t.Helper()
	for _, c := range conns {
		require.NoError(t, f.svc.JoinRoom(c, roomID, "name-"+c))
	}
	require.NoError(t, f.svc.StartGame(conns[0], roomID))
	f.clock.Advance(f.svc.opts.StartCountdown)
	room := f.room(t, roomID)
	require.Equal(t, PhaseActive, room.Phase)
	return room
}

func decode[T any](t *testing.T, msg ws.Message) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(msg.Payload, &out))
	return out
}

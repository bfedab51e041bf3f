package match

import (
	"time"

	"github.com/gokatarajesh/make-ten/internal/match/scoring"
	"github.com/gokatarajesh/make-ten/internal/puzzle"
	"github.com/gokatarajesh/make-ten/pkg/http/ws"
)

// Phase is a room's position in its lifecycle.
type Phase string

const (
	PhaseWaiting          Phase = "waiting"
	PhaseCountdownWaiting Phase = "countdown_waiting"
	PhaseCountdownStart   Phase = "countdown_start"
	PhaseActive           Phase = "active"
	PhaseEnded            Phase = "ended"
)

// Player is a seat in a room, keyed by the connection that holds it.
type Player struct {
	ConnID       string
	Name         string
	ProblemIndex int
	JoinedAt     time.Time
	scoring.Tally
}

// Room is one shared game session.
type Room struct {
	ID        string
	Phase     Phase
	TimeLeft  int // round seconds remaining
	Countdown int // seconds remaining in the current countdown
	CreatedAt time.Time

	players  []*Player
	sequence puzzle.Sequence

	waitingTimer Cancel
	startTimer   Cancel
	roundTimer   Cancel
}

// Players returns seats in join order.
func (r *Room) Players() []*Player { return r.players }

// Player finds the seat held by connID.
func (r *Room) Player(connID string) (*Player, bool) {
	for _, p := range r.players {
		if p.ConnID == connID {
			return p, true
		}
	}
	return nil, false
}

// CurrentDigits returns the puzzle a player is working on.
func (r *Room) CurrentDigits(p *Player) []int {
	return r.sequence.At(p.ProblemIndex).DigitSlice()
}

func (r *Room) addPlayer(p *Player) {
	r.players = append(r.players, p)
}

func (r *Room) removePlayer(connID string) (*Player, bool) {
	for i, p := range r.players {
		if p.ConnID == connID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return p, true
		}
	}
	return nil, false
}

func (r *Room) advance(p *Player) {
	p.ProblemIndex = r.sequence.Next(p.ProblemIndex)
}

func (r *Room) stopTimers() {
	cancelTimer(&r.waitingTimer)
	cancelTimer(&r.startTimer)
	cancelTimer(&r.roundTimer)
}

// State is the wire view of the room clock.
func (r *Room) State() ws.RoomState {
	state := ws.RoomState{
		Phase:    string(r.Phase),
		IsActive: r.Phase == PhaseActive,
		TimeLeft: r.TimeLeft,
	}
	if r.Phase == PhaseCountdownWaiting || r.Phase == PhaseCountdownStart {
		state.Countdown = r.Countdown
	}
	return state
}

// wirePlayers renders every seat with its current puzzle.
func (r *Room) wirePlayers() []ws.Player {
	out := make([]ws.Player, len(r.players))
	for i, p := range r.players {
		out[i] = ws.Player{
			ID:            p.ConnID,
			Name:          p.Name,
			Score:         p.Score,
			Correct:       p.Correct,
			Wrong:         p.Wrong,
			Skip:          p.Skip,
			ProblemIndex:  p.ProblemIndex,
			CurrentDigits: r.CurrentDigits(p),
		}
	}
	return out
}

// Snapshot is a read-only copy of a room for HTTP callers.
type Snapshot struct {
	RoomID    string       `json:"roomId"`
	RoomState ws.RoomState `json:"roomState"`
	Players   []ws.Player  `json:"players"`
	Slots     int          `json:"slotsRemaining"`
	CreatedAt time.Time    `json:"createdAt"`
}

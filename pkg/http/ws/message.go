package ws

import "encoding/json"

// MessageType constants for WebSocket protocol.
const (
	// Client -> Server
	TypeJoinRoom     = "join-room"
	TypeSubmitAnswer = "submit-answer"
	TypeSkipProblem  = "skip-problem"
	TypeStartGame    = "start-game"

	// Server -> Client
	TypeConnected                = "connected"
	TypeRoomJoined               = "room-joined"
	TypePlayerJoined             = "player-joined"
	TypeAnswerResult             = "answer-result"
	TypeSkipResult               = "skip-result"
	TypePlayersUpdated           = "players-updated"
	TypeGameStarted              = "game-started"
	TypeWaitingCountdownStart    = "waiting-countdown-start"
	TypeWaitingCountdownUpdate   = "waiting-countdown-update"
	TypeWaitingCountdownCanceled = "waiting-countdown-cancelled"
	TypeStartCountdownBegin      = "start-countdown-begin"
	TypeStartCountdownUpdate     = "start-countdown-update"
	TypeTimeUpdate               = "time-update"
	TypeGameEnded                = "game-ended"
	TypePlayerLeft               = "player-left"
	TypeLeaderboardUpdated       = "leaderboard-updated"
	TypeError                    = "error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage marshals payload into a typed envelope. A nil payload encodes as {}.
func NewMessage(msgType string, payload interface{}) Message {
	msg := Message{Type: msgType}
	if payload == nil {
		msg.Payload = json.RawMessage(`{}`)
		return msg
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = json.RawMessage(`{}`)
	}
	msg.Payload = raw
	return msg
}

// Decode unmarshals the payload into dst.
func (m Message) Decode(dst interface{}) error {
	if len(m.Payload) == 0 {
		return ErrEmptyPayload
	}
	if err := json.Unmarshal(m.Payload, dst); err != nil {
		return &Error{Code: "invalid_payload", Message: err.Error()}
	}
	return nil
}

var ErrEmptyPayload = &Error{Code: "invalid_payload", Message: "Payload is required"}

// Client Messages (incoming)

type JoinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type SubmitAnswerPayload struct {
	RoomID  string `json:"roomId"`
	Formula string `json:"formula"`
}

type SkipProblemPayload struct {
	RoomID string `json:"roomId"`
}

type StartGamePayload struct {
	RoomID string `json:"roomId"`
}

// Server Messages (outgoing)

type ConnectedPayload struct {
	ClientID string `json:"clientId"`
}

type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Score         int    `json:"score"`
	Correct       int    `json:"correct"`
	Wrong         int    `json:"wrong"`
	Skip          int    `json:"skip"`
	ProblemIndex  int    `json:"problemIndex"`
	CurrentDigits []int  `json:"currentDigits"`
}

type RoomState struct {
	Phase     string `json:"phase"`
	IsActive  bool   `json:"isActive"`
	TimeLeft  int    `json:"timeLeft"`
	Countdown int    `json:"countdown,omitempty"`
}

type RoomJoinedPayload struct {
	RoomID    string    `json:"roomId"`
	Players   []Player  `json:"players"`
	RoomState RoomState `json:"roomState"`
}

type PlayersPayload struct {
	Players []Player `json:"players"`
}

type AnswerResultPayload struct {
	Success   bool   `json:"success"`
	IsCorrect bool   `json:"isCorrect"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	Formula   string `json:"formula,omitempty"`
	Result    string `json:"result,omitempty"`
	NewDigits []int  `json:"newDigits,omitempty"`
}

type SkipResultPayload struct {
	NewDigits []int  `json:"newDigits"`
	Message   string `json:"message"`
	Score     int    `json:"score"`
}

type GameStartedPayload struct {
	RoomState RoomState `json:"roomState"`
}

type CountdownPayload struct {
	Seconds int `json:"seconds"`
}

type TimeUpdatePayload struct {
	SecondsLeft int `json:"secondsLeft"`
}

type GameEndedPayload struct {
	RoomID          string        `json:"roomId"`
	Players         []FinalResult `json:"players"`
	DurationSeconds int           `json:"durationSeconds"`
}

type FinalResult struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Rank     int     `json:"rank"`
	Score    int     `json:"score"`
	Correct  int     `json:"correct"`
	Wrong    int     `json:"wrong"`
	Skip     int     `json:"skip"`
	Accuracy float64 `json:"accuracy"`
}

type PlayerLeftPayload struct {
	PlayerName string   `json:"playerName"`
	Players    []Player `json:"players"`
}

type LeaderboardUpdatePayload struct {
	RoomID string             `json:"roomId"`
	Top    []LeaderboardEntry `json:"top"`
}

type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Games   int    `json:"games"`
	Correct int    `json:"correct"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

package match

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/make-ten/internal/expr"
	"github.com/gokatarajesh/make-ten/internal/leaderboard"
	"github.com/gokatarajesh/make-ten/internal/match/scoring"
	"github.com/gokatarajesh/make-ten/internal/metrics"
	"github.com/gokatarajesh/make-ten/internal/puzzle"
	"github.com/gokatarajesh/make-ten/pkg/http/ws"
)

const (
	maxRoomIDLength = 32
	maxNameLength   = 24
	defaultName     = "Guest"
	recordTimeout   = 5 * time.Second
)

// Sender delivers a message to one connection.
type Sender interface {
	Send(connID string, msg ws.Message) error
}

// ResultRecorder receives the standings of every finished round.
type ResultRecorder interface {
	RecordGame(ctx context.Context, result leaderboard.GameResult) error
}

// ServiceOptions configures room timing and limits.
type ServiceOptions struct {
	WaitingCountdown time.Duration // default: 30s
	StartCountdown   time.Duration // default: 3s
	RoundDuration    time.Duration // default: 180s
	Tick             time.Duration // default: 1s
	MaxPlayers       int           // default: 4
	AutoStartPlayers int           // default: 2
	SequenceLength   int           // default: 90
	MaxFormulaLength int           // default: 200
}

// DefaultServiceOptions returns production defaults.
func DefaultServiceOptions() ServiceOptions {
	return ServiceOptions{
		WaitingCountdown: 30 * time.Second,
		StartCountdown:   3 * time.Second,
		RoundDuration:    180 * time.Second,
		Tick:             time.Second,
		MaxPlayers:       4,
		AutoStartPlayers: 2,
		SequenceLength:   puzzle.DefaultSequenceLength,
		MaxFormulaLength: expr.MaxLength,
	}
}

func (o ServiceOptions) withDefaults() ServiceOptions {
	def := DefaultServiceOptions()
	if o.WaitingCountdown <= 0 {
		o.WaitingCountdown = def.WaitingCountdown
	}
	if o.StartCountdown <= 0 {
		o.StartCountdown = def.StartCountdown
	}
	if o.RoundDuration <= 0 {
		o.RoundDuration = def.RoundDuration
	}
	if o.Tick <= 0 {
		o.Tick = def.Tick
	}
	if o.MaxPlayers <= 0 {
		o.MaxPlayers = def.MaxPlayers
	}
	if o.AutoStartPlayers <= 0 {
		o.AutoStartPlayers = def.AutoStartPlayers
	}
	if o.SequenceLength <= 0 {
		o.SequenceLength = def.SequenceLength
	}
	if o.MaxFormulaLength <= 0 || o.MaxFormulaLength > expr.MaxLength {
		o.MaxFormulaLength = def.MaxFormulaLength
	}
	return o
}

// ticks converts a duration into whole ticks, never less than one.
func (o ServiceOptions) ticks(d time.Duration) int {
	n := int(d / o.Tick)
	if n < 1 {
		return 1
	}
	return n
}

// Dependencies are the collaborators a Service needs. Results and Metrics may be nil.
type Dependencies struct {
	Registry  *Registry
	Sender    Sender
	Scheduler Scheduler
	Sequencer *puzzle.Sequencer
	Scoring   *scoring.Engine
	Results   ResultRecorder
	Metrics   *metrics.Recorder
	Codes     puzzle.Source
}

// Service is the room session manager. Every exported method must run on the
// event loop; it owns the registry and is not safe for concurrent use.
type Service struct {
	registry  *Registry
	sender    Sender
	scheduler Scheduler
	sequencer *puzzle.Sequencer
	scoring   *scoring.Engine
	results   ResultRecorder
	metrics   *metrics.Recorder
	codes     puzzle.Source
	opts      ServiceOptions
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService creates a room session manager.
func NewService(deps Dependencies, opts ServiceOptions, logger zerolog.Logger) *Service {
	registry := deps.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	engine := deps.Scoring
	if engine == nil {
		engine = scoring.NewEngine(scoring.DefaultScoringConfig())
	}
	sequencer := deps.Sequencer
	if sequencer == nil {
		sequencer = puzzle.NewDefaultSequencer(nil)
	}
	codes := deps.Codes
	if codes == nil {
		codes = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Service{
		registry:  registry,
		sender:    deps.Sender,
		scheduler: deps.Scheduler,
		sequencer: sequencer,
		scoring:   engine,
		results:   deps.Results,
		metrics:   deps.Metrics,
		codes:     codes,
		opts:      opts.withDefaults(),
		logger:    logger.With().Str("component", "match").Logger(),
		now:       time.Now,
	}
}

// Registry exposes the live rooms.
func (s *Service) Registry() *Registry { return s.registry }

// Connect greets a new connection with its id.
func (s *Service) Connect(connID string) {
	s.send(connID, ws.NewMessage(ws.TypeConnected, ws.ConnectedPayload{ClientID: connID}))
}

// JoinRoom seats connID in roomID, creating the room on first use.
func (s *Service) JoinRoom(connID, roomID, name string) error {
	roomID = strings.TrimSpace(roomID)
	if roomID == "" || utf8.RuneCountInString(roomID) > maxRoomIDLength {
		return s.reject(connID, ErrInvalidRoomCode)
	}
	name = cleanName(name)

	room, ok := s.registry.Get(roomID)
	if !ok {
		room = s.openRoom(roomID)
	}

	if p, ok := room.Player(connID); ok {
		p.Name = name
		s.sendRoomJoined(connID, room)
		return nil
	}

	if len(room.players) >= s.opts.MaxPlayers {
		return s.reject(connID, ErrRoomFull)
	}

	player := &Player{
		ConnID:   connID,
		Name:     name,
		JoinedAt: s.now(),
	}
	room.addPlayer(player)
	s.registry.attach(connID, roomID)
	s.metrics.PlayerJoined()

	s.logger.Info().
		Str("room_id", roomID).
		Str("client_id", connID).
		Int("player_count", len(room.players)).
		Msg("player joined room")

	s.sendRoomJoined(connID, room)
	s.broadcastExcept(room, connID, ws.NewMessage(ws.TypePlayerJoined, ws.PlayersPayload{Players: room.wirePlayers()}))
	s.checkAutoStart(room)
	return nil
}

// SubmitAnswer scores a formula against the player's current puzzle.
func (s *Service) SubmitAnswer(connID, roomID, formula string) error {
	room, player, err := s.seat(connID, roomID)
	if err != nil {
		return s.reject(connID, err)
	}
	if err := playable(room); err != nil {
		return s.reject(connID, err)
	}

	formula = strings.TrimSpace(formula)
	if utf8.RuneCountInString(formula) > s.opts.MaxFormulaLength {
		return s.answerFailure(connID, ErrInvalidFormula, expr.ErrTooLong, metrics.OutcomeInvalidFormula)
	}
	if !puzzle.UsesAllDigits(formula, room.CurrentDigits(player)) {
		return s.answerFailure(connID, ErrInvalidDigits, nil, metrics.OutcomeInvalidDigits)
	}
	value, err := expr.Evaluate(formula)
	if err != nil {
		return s.answerFailure(connID, ErrInvalidFormula, err, metrics.OutcomeInvalidFormula)
	}

	result := ws.AnswerResultPayload{
		Success: true,
		Formula: formula,
		Result:  value.String(),
	}
	if expr.IsTen(value) {
		earned := s.scoring.Correct(&player.Tally)
		room.advance(player)
		result.IsCorrect = true
		result.Message = fmt.Sprintf("Correct! +%d", earned)
		result.NewDigits = room.CurrentDigits(player)
		s.metrics.Answer(metrics.OutcomeCorrect)
	} else {
		s.scoring.Wrong(&player.Tally)
		result.Message = fmt.Sprintf("%s = %s, not 10", formula, value)
		s.metrics.Answer(metrics.OutcomeWrong)
	}

	s.send(connID, ws.NewMessage(ws.TypeAnswerResult, result))
	s.broadcastPlayers(room)
	return nil
}

// SkipProblem moves the player on, applying the skip penalty.
func (s *Service) SkipProblem(connID, roomID string) error {
	room, player, err := s.seat(connID, roomID)
	if err != nil {
		return s.reject(connID, err)
	}
	if err := playable(room); err != nil {
		return s.reject(connID, err)
	}

	deducted := s.scoring.Skip(&player.Tally)
	room.advance(player)
	s.metrics.Skip()

	s.send(connID, ws.NewMessage(ws.TypeSkipResult, ws.SkipResultPayload{
		NewDigits: room.CurrentDigits(player),
		Message:   fmt.Sprintf("Skipped (-%d)", deducted),
		Score:     player.Score,
	}))
	s.broadcastPlayers(room)
	return nil
}

// StartGame collapses any pending countdown into the start countdown.
// In an ended room it starts a rematch.
func (s *Service) StartGame(connID, roomID string) error {
	room, _, err := s.seat(connID, roomID)
	if err != nil {
		return s.reject(connID, err)
	}

	switch room.Phase {
	case PhaseActive:
		return s.reject(connID, ErrGameAlreadyStarted)
	case PhaseCountdownStart:
		return nil
	}

	s.logger.Info().Str("room_id", room.ID).Str("client_id", connID).Msg("manual start")
	s.beginStartCountdown(room)
	return nil
}

// Disconnect removes connID from every room it sits in.
func (s *Service) Disconnect(connID string) {
	for _, roomID := range s.registry.RoomsOf(connID) {
		s.registry.detach(connID, roomID)
		room, ok := s.registry.Get(roomID)
		if !ok {
			continue
		}
		player, ok := room.removePlayer(connID)
		if !ok {
			continue
		}
		s.metrics.PlayerLeft()

		s.logger.Info().
			Str("room_id", roomID).
			Str("client_id", connID).
			Int("player_count", len(room.players)).
			Msg("player left room")

		if len(room.players) == 0 {
			s.closeRoom(room)
			continue
		}

		s.broadcast(room, ws.NewMessage(ws.TypePlayerLeft, ws.PlayerLeftPayload{
			PlayerName: player.Name,
			Players:    room.wirePlayers(),
		}))

		if room.Phase == PhaseCountdownWaiting && len(room.players) < s.opts.AutoStartPlayers {
			cancelTimer(&room.waitingTimer)
			room.Phase = PhaseWaiting
			room.Countdown = 0
			s.broadcast(room, ws.NewMessage(ws.TypeWaitingCountdownCanceled, nil))
		}
	}
}

// Snapshot returns a copy of a room's public state.
func (s *Service) Snapshot(roomID string) (Snapshot, error) {
	room, ok := s.registry.Get(roomID)
	if !ok {
		return Snapshot{}, ErrRoomNotFound
	}
	return Snapshot{
		RoomID:    room.ID,
		RoomState: room.State(),
		Players:   room.wirePlayers(),
		Slots:     s.opts.MaxPlayers - len(room.players),
		CreatedAt: room.CreatedAt,
	}, nil
}

// NewRoomCode returns a 6-digit code not used by any live room.
func (s *Service) NewRoomCode() string {
	for {
		code := fmt.Sprintf("%06d", 100000+s.codes.Intn(900000))
		if _, exists := s.registry.Get(code); !exists {
			return code
		}
	}
}

func (s *Service) openRoom(roomID string) *Room {
	room := &Room{
		ID:        roomID,
		Phase:     PhaseWaiting,
		TimeLeft:  s.opts.ticks(s.opts.RoundDuration),
		CreatedAt: s.now(),
		sequence:  s.sequencer.Generate(s.opts.SequenceLength),
	}
	s.registry.put(room)
	s.metrics.RoomOpened()
	s.logger.Info().Str("room_id", roomID).Int("sequence_length", room.sequence.Len()).Msg("room created")
	return room
}

func (s *Service) closeRoom(room *Room) {
	room.stopTimers()
	s.registry.delete(room.ID)
	s.metrics.RoomClosed()
	s.logger.Info().Str("room_id", room.ID).Msg("room destroyed")
}

func (s *Service) checkAutoStart(room *Room) {
	switch room.Phase {
	case PhaseActive, PhaseEnded, PhaseCountdownStart:
		return
	}
	n := len(room.players)
	if n >= s.opts.MaxPlayers {
		s.beginStartCountdown(room)
		return
	}
	if n >= s.opts.AutoStartPlayers && room.Phase == PhaseWaiting {
		s.beginWaitingCountdown(room)
	}
}

func (s *Service) beginWaitingCountdown(room *Room) {
	room.Phase = PhaseCountdownWaiting
	room.Countdown = s.opts.ticks(s.opts.WaitingCountdown)
	s.broadcast(room, ws.NewMessage(ws.TypeWaitingCountdownStart, ws.CountdownPayload{Seconds: room.Countdown}))
	room.waitingTimer = s.scheduler.Every(s.opts.Tick, func() { s.waitingTick(room) })
}

func (s *Service) waitingTick(room *Room) {
	if !s.live(room) || room.Phase != PhaseCountdownWaiting {
		return
	}
	room.Countdown--
	s.broadcast(room, ws.NewMessage(ws.TypeWaitingCountdownUpdate, ws.CountdownPayload{Seconds: room.Countdown}))
	if room.Countdown <= 0 {
		s.beginStartCountdown(room)
	}
}

func (s *Service) beginStartCountdown(room *Room) {
	cancelTimer(&room.waitingTimer)
	cancelTimer(&room.startTimer)
	room.Phase = PhaseCountdownStart
	room.Countdown = s.opts.ticks(s.opts.StartCountdown)
	s.broadcast(room, ws.NewMessage(ws.TypeStartCountdownBegin, ws.CountdownPayload{Seconds: room.Countdown}))
	room.startTimer = s.scheduler.Every(s.opts.Tick, func() { s.startTick(room) })
}

func (s *Service) startTick(room *Room) {
	if !s.live(room) || room.Phase != PhaseCountdownStart {
		return
	}
	room.Countdown--
	s.broadcast(room, ws.NewMessage(ws.TypeStartCountdownUpdate, ws.CountdownPayload{Seconds: room.Countdown}))
	if room.Countdown <= 0 {
		s.startRound(room)
	}
}

func (s *Service) startRound(room *Room) {
	cancelTimer(&room.startTimer)
	room.Phase = PhaseActive
	room.Countdown = 0
	room.TimeLeft = s.opts.ticks(s.opts.RoundDuration)
	for _, p := range room.players {
		p.ProblemIndex = 0
		p.Tally = scoring.Tally{}
	}
	s.metrics.GameStarted()
	s.logger.Info().Str("room_id", room.ID).Int("players", len(room.players)).Msg("round started")

	s.broadcast(room, ws.NewMessage(ws.TypeGameStarted, ws.GameStartedPayload{RoomState: room.State()}))
	s.broadcastPlayers(room)
	room.roundTimer = s.scheduler.Every(s.opts.Tick, func() { s.roundTick(room) })
}

func (s *Service) roundTick(room *Room) {
	if !s.live(room) || room.Phase != PhaseActive {
		return
	}
	room.TimeLeft--
	s.broadcast(room, ws.NewMessage(ws.TypeTimeUpdate, ws.TimeUpdatePayload{SecondsLeft: room.TimeLeft}))
	if room.TimeLeft <= 0 {
		s.endRound(room)
	}
}

func (s *Service) endRound(room *Room) {
	cancelTimer(&room.roundTimer)
	room.Phase = PhaseEnded
	room.TimeLeft = 0

	standings := s.standings(room)
	scores := make([]int, len(standings))
	for i, r := range standings {
		scores[i] = r.Score
	}
	s.metrics.GameEnded(scores)

	duration := s.opts.ticks(s.opts.RoundDuration)
	s.broadcast(room, ws.NewMessage(ws.TypeGameEnded, ws.GameEndedPayload{
		RoomID:          room.ID,
		Players:         standings,
		DurationSeconds: duration,
	}))
	s.logger.Info().Str("room_id", room.ID).Int("players", len(standings)).Msg("round ended")

	s.record(room.ID, duration, standings)
}

// standings ranks players by score, highest first; ties keep join order.
func (s *Service) standings(room *Room) []ws.FinalResult {
	out := make([]ws.FinalResult, len(room.players))
	for i, p := range room.players {
		out[i] = ws.FinalResult{
			ID:       p.ConnID,
			Name:     p.Name,
			Score:    p.Score,
			Correct:  p.Correct,
			Wrong:    p.Wrong,
			Skip:     p.Skip,
			Accuracy: p.Accuracy(),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func (s *Service) record(roomID string, duration int, standings []ws.FinalResult) {
	if s.results == nil {
		return
	}
	result := leaderboard.GameResult{
		RoomID:          roomID,
		DurationSeconds: duration,
		EndedAt:         s.now().UTC(),
		Players:         make([]leaderboard.PlayerResult, len(standings)),
	}
	for i, r := range standings {
		result.Players[i] = leaderboard.PlayerResult{
			Name:     r.Name,
			Rank:     r.Rank,
			Score:    r.Score,
			Correct:  r.Correct,
			Wrong:    r.Wrong,
			Skip:     r.Skip,
			Accuracy: r.Accuracy,
		}
	}

	// off the loop
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := s.results.RecordGame(ctx, result); err != nil {
			s.logger.Warn().Err(err).Str("room_id", roomID).Msg("failed to record game result")
		}
	}()
}

// seat resolves a room and the caller's seat in it.
func (s *Service) seat(connID, roomID string) (*Room, *Player, error) {
	room, ok := s.registry.Get(strings.TrimSpace(roomID))
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	player, ok := room.Player(connID)
	if !ok {
		return nil, nil, ErrPlayerNotFound
	}
	return room, player, nil
}

// live reports whether room is still the registered room for its id.
func (s *Service) live(room *Room) bool {
	current, ok := s.registry.Get(room.ID)
	return ok && current == room
}

func playable(room *Room) error {
	switch room.Phase {
	case PhaseActive:
		return nil
	case PhaseEnded:
		return ErrGameEnded
	default:
		return ErrGameNotActive
	}
}

func (s *Service) answerFailure(connID string, kind, cause error, outcome string) error {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %w", kind, cause)
	}
	s.metrics.Answer(outcome)
	s.send(connID, ws.NewMessage(ws.TypeAnswerResult, ws.AnswerResultPayload{
		Success: false,
		Code:    ErrorCode(kind),
		Message: err.Error(),
	}))
	return err
}

// reject reports err to the originating connection only.
func (s *Service) reject(connID string, err error) error {
	s.send(connID, ws.NewMessage(ws.TypeError, ws.ErrorPayload{
		Code:    ErrorCode(err),
		Message: err.Error(),
	}))
	return err
}

func (s *Service) sendRoomJoined(connID string, room *Room) {
	s.send(connID, ws.NewMessage(ws.TypeRoomJoined, ws.RoomJoinedPayload{
		RoomID:    room.ID,
		Players:   room.wirePlayers(),
		RoomState: room.State(),
	}))
}

func (s *Service) broadcastPlayers(room *Room) {
	s.broadcast(room, ws.NewMessage(ws.TypePlayersUpdated, ws.PlayersPayload{Players: room.wirePlayers()}))
}

func (s *Service) broadcast(room *Room, msg ws.Message) {
	s.broadcastExcept(room, "", msg)
}

func (s *Service) broadcastExcept(room *Room, skip string, msg ws.Message) {
	for _, p := range room.players {
		if p.ConnID == skip {
			continue
		}
		s.send(p.ConnID, msg)
	}
}

func (s *Service) send(connID string, msg ws.Message) {
	if s.sender == nil {
		return
	}
	if err := s.sender.Send(connID, msg); err != nil {
		var wsErr *ws.Error
		if errors.As(err, &wsErr) {
			s.logger.Debug().Err(err).Str("client_id", connID).Str("type", msg.Type).Msg("send skipped")
			return
		}
		s.logger.Warn().Err(err).Str("client_id", connID).Str("type", msg.Type).Msg("send failed")
	}
}

func cancelTimer(c *Cancel) {
	if *c != nil {
		(*c)()
		*c = nil
	}
}

func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	return name
}

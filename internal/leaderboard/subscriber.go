package leaderboard

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	ws "github.com/gokatarajesh/make-ten/pkg/http/ws"
)

const broadcastTop = 10

// Broadcaster listens for Redis Pub/Sub result announcements and pushes the
// refreshed leaderboard to every connected client.
type Broadcaster struct {
	redis   *redis.Client
	svc     *Service
	hub     *ws.Hub
	channel string
	logger  zerolog.Logger
}

// NewBroadcaster creates a Pub/Sub powered leaderboard broadcaster.
func NewBroadcaster(redis *redis.Client, svc *Service, hub *ws.Hub, channel string, logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		redis:   redis,
		svc:     svc,
		hub:     hub,
		channel: channel,
		logger:  logger.With().Str("component", "leaderboard_broadcaster").Logger(),
	}
}

// Run subscribes to the results channel and blocks until the context is cancelled.
func (b *Broadcaster) Run(ctx context.Context) error {
	if b.redis == nil || b.hub == nil {
		return nil
	}

	sub := b.redis.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.forward(ctx, msg.Payload)
		}
	}
}

func (b *Broadcaster) forward(ctx context.Context, payload string) {
	var result GameResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		b.logger.Warn().Err(err).Msg("failed to decode result announcement")
		return
	}

	entries, err := b.svc.Top(ctx, broadcastTop)
	if err != nil {
		b.logger.Warn().Err(err).Msg("failed to collect leaderboard update")
		return
	}

	msg := ws.NewMessage(ws.TypeLeaderboardUpdated, ws.LeaderboardUpdatePayload{
		RoomID: result.RoomID,
		Top:    toWSEntries(entries),
	})
	if err := b.hub.BroadcastAll(msg); err != nil {
		b.logger.Warn().Err(err).Msg("failed to broadcast leaderboard update")
	}
}

func toWSEntries(entries []Entry) []ws.LeaderboardEntry {
	result := make([]ws.LeaderboardEntry, len(entries))
	for i, e := range entries {
		result[i] = ws.LeaderboardEntry{
			Rank:    e.Rank,
			Name:    e.Name,
			Score:   e.Score,
			Games:   e.Games,
			Correct: e.Correct,
		}
	}
	return result
}

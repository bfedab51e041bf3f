package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps results in Redis so several API instances share one leaderboard.
type RedisStore struct {
	redis   *redis.Client
	prefix  string
	ttl     time.Duration
	channel string
}

// RedisOptions configures key layout and expiry.
type RedisOptions struct {
	KeyPrefix string
	TTL       time.Duration
}

// NewRedisStore constructs a Redis-backed store.
func NewRedisStore(client *redis.Client, opts RedisOptions) *RedisStore {
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = "maketen"
	}
	return &RedisStore{
		redis:   client,
		prefix:  prefix,
		ttl:     opts.TTL,
		channel: prefix + ":results",
	}
}

// Channel is the Pub/Sub channel results are announced on.
func (s *RedisStore) Channel() string { return s.channel }

func (s *RedisStore) SaveResult(ctx context.Context, result GameResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, s.roomKey(result.RoomID), data, s.ttl)
	for _, p := range result.Players {
		pipe.ZAddArgs(ctx, s.bestKey(), redis.ZAddArgs{
			GT:      true,
			Members: []redis.Z{{Score: float64(p.Score), Member: p.Name}},
		})
		pipe.HIncrBy(ctx, s.gamesKey(), p.Name, 1)
		pipe.HIncrBy(ctx, s.correctKey(), p.Name, int64(p.Correct))
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, s.bestKey(), s.ttl)
		pipe.Expire(ctx, s.gamesKey(), s.ttl)
		pipe.Expire(ctx, s.correctKey(), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save result %s: %w", result.RoomID, err)
	}

	if err := s.redis.Publish(ctx, s.channel, data).Err(); err != nil {
		return fmt.Errorf("publish result %s: %w", result.RoomID, err)
	}
	return nil
}

func (s *RedisStore) RoomResult(ctx context.Context, roomID string) (*GameResult, error) {
	data, err := s.redis.Get(ctx, s.roomKey(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch result %s: %w", roomID, err)
	}
	var result GameResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", roomID, err)
	}
	return &result, nil
}

func (s *RedisStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	results, err := s.redis.ZRevRangeWithScores(ctx, s.bestKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []Entry{}, nil
	}

	names := make([]string, len(results))
	for i, z := range results {
		names[i] = z.Member.(string)
	}

	pipe := s.redis.Pipeline()
	games := pipe.HMGet(ctx, s.gamesKey(), names...)
	correct := pipe.HMGet(ctx, s.correctKey(), names...)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("read leaderboard metadata: %w", err)
	}

	entries := make([]Entry, len(results))
	for i, z := range results {
		entries[i] = Entry{
			Name:    names[i],
			Score:   int(z.Score),
			Games:   parseInt(games.Val()[i]),
			Correct: parseInt(correct.Val()[i]),
		}
	}
	return entries, nil
}

func (s *RedisStore) roomKey(roomID string) string {
	return fmt.Sprintf("%s:room:%s", s.prefix, roomID)
}

func (s *RedisStore) bestKey() string    { return s.prefix + ":best" }
func (s *RedisStore) gamesKey() string   { return s.prefix + ":games" }
func (s *RedisStore) correctKey() string { return s.prefix + ":correct" }

func parseInt(val interface{}) int {
	str, ok := val.(string)
	if !ok || str == "" {
		return 0
	}
	i, err := strconv.Atoi(str)
	if err != nil {
		return 0
	}
	return i
}

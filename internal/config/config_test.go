package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "make-ten", cfg.Name)
	assert.Equal(t, 30*time.Second, cfg.Game.WaitingCountdown)
	assert.Equal(t, 3*time.Second, cfg.Game.StartCountdown)
	assert.Equal(t, 180*time.Second, cfg.Game.RoundDuration)
	assert.Equal(t, 4, cfg.Game.MaxPlayers)
	assert.Equal(t, 2, cfg.Game.AutoStartPlayers)
	assert.Equal(t, 90, cfg.Game.SequenceLength)
	assert.Equal(t, 10, cfg.Game.CorrectPoints)
	assert.Equal(t, 3, cfg.Game.SkipPenalty)
	assert.Equal(t, 30*time.Minute, cfg.Results.TTL)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GAME_ROUND_DURATION", "60s")
	t.Setenv("GAME_MAX_PLAYERS", "6")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("PUBLIC_BASE_URL", "https://ten.example.com")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.Game.RoundDuration)
	assert.Equal(t, 6, cfg.Game.MaxPlayers)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "https://ten.example.com", cfg.PublicBaseURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"GAME_TICK":               "0s",
		"GAME_AUTO_START_PLAYERS": "9",
		"GAME_MAX_PLAYERS":        "not-a-number",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load(context.Background())
			assert.Error(t, err)
		})
	}
}

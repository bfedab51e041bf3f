package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"make-ten"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	PublicBaseURL           string        `env:"PUBLIC_BASE_URL" envDefault:""`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Game    Game
	Redis   Redis
	Results Results
}

// Game groups room timing and scoring.
type Game struct {
	WaitingCountdown time.Duration `env:"GAME_WAITING_COUNTDOWN" envDefault:"30s"`
	StartCountdown   time.Duration `env:"GAME_START_COUNTDOWN" envDefault:"3s"`
	RoundDuration    time.Duration `env:"GAME_ROUND_DURATION" envDefault:"180s"`
	Tick             time.Duration `env:"GAME_TICK" envDefault:"1s"`
	MaxPlayers       int           `env:"GAME_MAX_PLAYERS" envDefault:"4"`
	AutoStartPlayers int           `env:"GAME_AUTO_START_PLAYERS" envDefault:"2"`
	SequenceLength   int           `env:"GAME_SEQUENCE_LENGTH" envDefault:"90"`
	MaxFormulaLength int           `env:"GAME_MAX_FORMULA_LENGTH" envDefault:"200"`
	CorrectPoints    int           `env:"GAME_CORRECT_POINTS" envDefault:"10"`
	SkipPenalty      int           `env:"GAME_SKIP_PENALTY" envDefault:"3"`
}

// Redis is optional; an empty address keeps results in memory.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Results governs how long finished rounds are kept.
type Results struct {
	TTL       time.Duration `env:"RESULTS_TTL" envDefault:"30m"`
	KeyPrefix string        `env:"RESULTS_KEY_PREFIX" envDefault:"maketen"`
	TopN      int           `env:"LEADERBOARD_TOP_N" envDefault:"50"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *App) validate() error {
	g := c.Game
	if g.Tick <= 0 {
		return fmt.Errorf("GAME_TICK must be positive")
	}
	if g.MaxPlayers < 1 {
		return fmt.Errorf("GAME_MAX_PLAYERS must be at least 1")
	}
	if g.AutoStartPlayers < 1 || g.AutoStartPlayers > g.MaxPlayers {
		return fmt.Errorf("GAME_AUTO_START_PLAYERS must be between 1 and GAME_MAX_PLAYERS")
	}
	if g.RoundDuration < g.Tick {
		return fmt.Errorf("GAME_ROUND_DURATION must be at least one tick")
	}
	return nil
}

// RedisEnabled reports whether a Redis address was configured.
func (c *App) RedisEnabled() bool { return c.Redis.Addr != "" }

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/make-ten/internal/config"
	"github.com/gokatarajesh/make-ten/internal/leaderboard"
	"github.com/gokatarajesh/make-ten/internal/logging"
	"github.com/gokatarajesh/make-ten/internal/match"
	"github.com/gokatarajesh/make-ten/internal/match/scoring"
	"github.com/gokatarajesh/make-ten/internal/metrics"
	"github.com/gokatarajesh/make-ten/internal/puzzle"
	"github.com/gokatarajesh/make-ten/internal/server"
	ws "github.com/gokatarajesh/make-ten/pkg/http/ws"
)

// Application aggregates shared infrastructure (event loop, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	redis *redis.Client
	http  *http.Server
	loop  *match.Loop

	lbBroadcaster *leaderboard.Broadcaster
	bgCancels     []context.CancelFunc
}

// New bootstraps logger, optional Redis, the room event loop and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	var (
		redisClient *redis.Client
		store       leaderboard.Store
		channel     string
	)
	if cfg.RedisEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = redisClient.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		redisStore := leaderboard.NewRedisStore(redisClient, leaderboard.RedisOptions{
			KeyPrefix: cfg.Results.KeyPrefix,
			TTL:       cfg.Results.TTL,
		})
		store = redisStore
		channel = redisStore.Channel()
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("results stored in redis")
	} else {
		store = leaderboard.NewMemoryStore(cfg.Results.TTL)
		logger.Warn().Msg("REDIS_ADDR not set; results kept in memory")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(registry)

	leaderboardSvc := leaderboard.NewService(store, logger, leaderboard.ServiceOptions{TopN: cfg.Results.TopN})
	wsHub := ws.NewHub(logger)
	loop := match.NewLoop(0)

	matchSvc := match.NewService(match.Dependencies{
		Sender:    wsHub,
		Scheduler: match.NewLoopScheduler(loop),
		Sequencer: puzzle.NewDefaultSequencer(nil),
		Scoring: scoring.NewEngine(scoring.ScoringConfig{
			CorrectPoints: cfg.Game.CorrectPoints,
			SkipPenalty:   cfg.Game.SkipPenalty,
		}),
		Results: leaderboardSvc,
		Metrics: recorder,
	}, match.ServiceOptions{
		WaitingCountdown: cfg.Game.WaitingCountdown,
		StartCountdown:   cfg.Game.StartCountdown,
		RoundDuration:    cfg.Game.RoundDuration,
		Tick:             cfg.Game.Tick,
		MaxPlayers:       cfg.Game.MaxPlayers,
		AutoStartPlayers: cfg.Game.AutoStartPlayers,
		SequenceLength:   cfg.Game.SequenceLength,
		MaxFormulaLength: cfg.Game.MaxFormulaLength,
	}, logger)

	matchWSHandler := match.NewHandler(matchSvc, loop, wsHub, logger)
	roomHTTP := match.NewHTTPHandlers(matchSvc, loop, cfg.PublicBaseURL, logger)
	lbHTTPHandler := leaderboard.NewHTTPHandler(leaderboardSvc, logger)

	var lbBroadcaster *leaderboard.Broadcaster
	if redisClient != nil {
		lbBroadcaster = leaderboard.NewBroadcaster(redisClient, leaderboardSvc, wsHub, channel, logger)
	}

	apiServer := server.NewHTTPServer(cfg, logger, redisClient, server.Handlers{
		WebSocket:   matchWSHandler.HandleWebSocket,
		CreateRoom:  roomHTTP.CreateRoom,
		GetRoom:     roomHTTP.GetRoom,
		RoomQR:      roomHTTP.RoomQR,
		RoomResults: lbHTTPHandler.HandleRoomResults,
		Leaderboard: lbHTTPHandler.HandleTop,
		Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	return &Application{
		cfg:           cfg,
		logger:        logger,
		redis:         redisClient,
		http:          apiServer,
		loop:          loop,
		lbBroadcaster: lbBroadcaster,
		bgCancels:     make([]context.CancelFunc, 0, 2),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.stopBackgroundWorkers()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.stopBackgroundWorkers()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	a.bgCancels = append(a.bgCancels, cancel)
	go a.loop.Run(loopCtx)

	if a.lbBroadcaster != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.lbBroadcaster.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("leaderboard broadcaster stopped")
			}
		}()
	}
}

func (a *Application) stopBackgroundWorkers() {
	for _, cancel := range a.bgCancels {
		cancel()
	}
	a.bgCancels = a.bgCancels[:0]
}

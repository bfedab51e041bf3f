package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/make-ten/internal/config"
	"github.com/gokatarajesh/make-ten/internal/logging"
)

// WSUpgrader handles WebSocket upgrades (configure CORS/security as needed).
var WSUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to PUBLIC_BASE_URL once clients are served from a fixed origin
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handlers groups the feature endpoints mounted on the API mux. Nil entries are skipped.
type Handlers struct {
	WebSocket   http.HandlerFunc
	CreateRoom  http.HandlerFunc
	GetRoom     http.HandlerFunc
	RoomQR      http.HandlerFunc
	RoomResults http.HandlerFunc
	Leaderboard http.HandlerFunc
	Metrics     http.Handler
}

// NewHTTPServer wires base routes (health, metrics) plus the game endpoints.
// redis may be nil when results are kept in memory.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, redis *redis.Client, h Handlers) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewMux(logger, redis, h),
	}
}

// NewMux builds the route table.
func NewMux(logger zerolog.Logger, redis *redis.Client, h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	metricsHandler := h.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	mux.Handle("GET /metrics", metricsHandler)

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.IntoContext(r.Context(), logger)
		if err := pingDependencies(ctx, redis); err != nil {
			l := logging.FromContext(ctx)
			l.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if h.WebSocket != nil {
		mux.HandleFunc("GET /ws", h.WebSocket)
	} else {
		mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "WebSocket handler not configured", http.StatusNotImplemented)
		})
	}

	mount(mux, "POST /v1/rooms", h.CreateRoom)
	mount(mux, "GET /v1/rooms/{id}", h.GetRoom)
	mount(mux, "GET /v1/rooms/{id}/qr", h.RoomQR)
	mount(mux, "GET /v1/rooms/{id}/results", h.RoomResults)
	mount(mux, "GET /v1/leaderboard", h.Leaderboard)

	return mux
}

func mount(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	if fn != nil {
		mux.HandleFunc(pattern, fn)
	}
}

func pingDependencies(ctx context.Context, redis *redis.Client) error {
	if redis == nil {
		return nil
	}
	return redis.Ping(ctx).Err()
}

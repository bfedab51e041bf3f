package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestHealthAndPingWithoutRedis(t *testing.T) {
	mux := NewMux(zerolog.New(io.Discard), nil, Handlers{})

	rec := get(t, mux, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(t, mux, http.MethodGet, "/v1/ping")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, mux, http.MethodGet, "/ws")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestPingReportsRedisFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	mux := NewMux(zerolog.New(io.Discard), client, Handlers{})
	require.Equal(t, http.StatusOK, get(t, mux, http.MethodGet, "/v1/ping").Code)

	mr.Close()
	assert.Equal(t, http.StatusBadGateway, get(t, mux, http.MethodGet, "/v1/ping").Code)
}

func TestFeatureRoutesMounted(t *testing.T) {
	var hits []string
	record := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			hits = append(hits, name+":"+r.PathValue("id"))
			w.WriteHeader(http.StatusTeapot)
		}
	}
	mux := NewMux(zerolog.New(io.Discard), nil, Handlers{
		CreateRoom:  record("create"),
		GetRoom:     record("get"),
		RoomQR:      record("qr"),
		RoomResults: record("results"),
		Leaderboard: record("top"),
	})

	assert.Equal(t, http.StatusTeapot, get(t, mux, http.MethodPost, "/v1/rooms").Code)
	assert.Equal(t, http.StatusTeapot, get(t, mux, http.MethodGet, "/v1/rooms/123456").Code)
	assert.Equal(t, http.StatusTeapot, get(t, mux, http.MethodGet, "/v1/rooms/123456/qr").Code)
	assert.Equal(t, http.StatusTeapot, get(t, mux, http.MethodGet, "/v1/rooms/123456/results").Code)
	assert.Equal(t, http.StatusTeapot, get(t, mux, http.MethodGet, "/v1/leaderboard").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, get(t, mux, http.MethodDelete, "/v1/rooms/123456").Code)

	assert.Equal(t, []string{"create:", "get:123456", "qr:123456", "results:123456", "top:"}, hits)
}

package match

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoomMux(t *testing.T, baseURL string) (*http.ServeMux, *fixture, *Loop) {
	t.Helper()
	f := newFixture(t)
	loop := runningLoop(t)
	h := NewHTTPHandlers(f.svc, loop, baseURL, zerolog.New(io.Discard))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/rooms", h.CreateRoom)
	mux.HandleFunc("GET /v1/rooms/{id}", h.GetRoom)
	mux.HandleFunc("GET /v1/rooms/{id}/qr", h.RoomQR)
	return mux, f, loop
}

func TestCreateRoom(t *testing.T) {
	mux, _, _ := newRoomMux(t, "https://play.example.com/")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/rooms", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body CreateRoomResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "100000", body.RoomID)
	assert.Equal(t, "https://play.example.com/room/100000", body.JoinURL)
	assert.Equal(t, "/v1/rooms/100000/qr", body.QRURL)
}

func TestGetRoom(t *testing.T) {
	mux, f, loop := newRoomMux(t, "")
	require.NoError(t, loop.Do(t.Context(), func() { _ = f.svc.JoinRoom("a", "777777", "Ana") }))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/777777", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "777777", snap.RoomID)
	assert.Equal(t, "waiting", snap.RoomState.Phase)
	assert.Len(t, snap.Players, 1)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/000001", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "room_not_found")
}

func TestRoomQR(t *testing.T) {
	mux, _, _ := newRoomMux(t, "")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/123456/qr?size=200", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/123456/qr?size=5", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJoinURLFromRequest(t *testing.T) {
	h := NewHTTPHandlers(nil, nil, "", zerolog.New(io.Discard))
	r := httptest.NewRequest(http.MethodGet, "/v1/rooms/1/qr", nil)
	r.Host = "game.local:8080"
	assert.Equal(t, "http://game.local:8080/room/42", h.joinURL(r, "42"))

	r.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://game.local:8080/room/42", h.joinURL(r, "42"))
}

package match

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"

	httperrors "github.com/gokatarajesh/make-ten/pkg/http/errors"
)

const (
	defaultQRSize = 320
	minQRSize     = 128
	maxQRSize     = 1024
)

// HTTPHandlers provides REST endpoints for rooms.
type HTTPHandlers struct {
	service *Service
	loop    *Loop
	baseURL string
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for room endpoints. baseURL is the
// public origin used in join links; when empty it is derived from each request.
func NewHTTPHandlers(service *Service, loop *Loop, baseURL string, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		loop:    loop,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger.With().Str("component", "match_http").Logger(),
	}
}

// CreateRoomResponse is returned by POST /v1/rooms.
type CreateRoomResponse struct {
	RoomID  string `json:"roomId"`
	JoinURL string `json:"joinUrl"`
	QRURL   string `json:"qrUrl"`
}

// CreateRoom handles POST /v1/rooms. The room itself opens on first join.
func (h *HTTPHandlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var code string
	if err := h.loop.Do(r.Context(), func() { code = h.service.NewRoomCode() }); err != nil {
		h.logger.Error().Err(err).Msg("failed to allocate room code")
		httperrors.Respond(w, httperrors.ErrCodeRoomCreationFailed, "Room service unavailable")
		return
	}

	h.logger.Info().Str("room_id", code).Msg("room code issued")
	httperrors.RespondJSON(w, http.StatusCreated, CreateRoomResponse{
		RoomID:  code,
		JoinURL: h.joinURL(r, code),
		QRURL:   "/v1/rooms/" + code + "/qr",
	})
}

// GetRoom handles GET /v1/rooms/{id}
func (h *HTTPHandlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")

	var (
		snap Snapshot
		err  error
	)
	if doErr := h.loop.Do(r.Context(), func() { snap, err = h.service.Snapshot(roomID) }); doErr != nil {
		httperrors.Respond(w, httperrors.ErrCodeServiceUnavailable, "Room service unavailable")
		return
	}
	if errors.Is(err, ErrRoomNotFound) {
		httperrors.Respond(w, httperrors.ErrCodeRoomNotFound, "Room not found")
		return
	}
	if err != nil {
		httperrors.RespondInternalError(w, err.Error())
		return
	}

	httperrors.RespondJSON(w, http.StatusOK, snap)
}

// RoomQR handles GET /v1/rooms/{id}/qr and renders the join link as a PNG.
func (h *HTTPHandlers) RoomQR(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if roomID == "" || utf8.RuneCountInString(roomID) > maxRoomIDLength {
		httperrors.Respond(w, httperrors.ErrCodeInvalidRoomCode, "Invalid room code")
		return
	}

	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < minQRSize || parsed > maxQRSize {
			httperrors.RespondValidationError(w, "size must be between 128 and 1024", "size")
			return
		}
		size = parsed
	}

	png, err := qrcode.Encode(h.joinURL(r, roomID), qrcode.Medium, size)
	if err != nil {
		h.logger.Error().Err(err).Str("room_id", roomID).Msg("qr generation failed")
		httperrors.RespondInternalError(w, "QR generation failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// joinURL builds the link players open to enter a room.
func (h *HTTPHandlers) joinURL(r *http.Request, roomID string) string {
	base := h.baseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
		base = scheme + "://" + r.Host
	}
	return base + "/room/" + roomID
}


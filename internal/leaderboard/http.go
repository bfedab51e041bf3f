package leaderboard

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/make-ten/pkg/http/errors"
	ws "github.com/gokatarajesh/make-ten/pkg/http/ws"
)

const defaultLimit = 10

// HTTPHandler exposes REST endpoints for leaderboard queries.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a leaderboard HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "leaderboard_http").Logger(),
	}
}

// HandleTop responds with the best scores.
// Route: GET /v1/leaderboard?limit=10
func (h *HTTPHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			httperrors.RespondValidationError(w, "limit must be between 1 and 100", "limit")
			return
		}
		limit = parsed
	}

	entries, err := h.svc.Top(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("leaderboard fetch failed")
		httperrors.Respond(w, httperrors.ErrCodeLeaderboardFetchFailed, "Leaderboard unavailable")
		return
	}

	httperrors.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"top": toWSEntries(entries),
	})
}

// HandleRoomResults responds with the last finished round of a room.
// Route: GET /v1/rooms/{id}/results
func (h *HTTPHandler) HandleRoomResults(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")

	result, err := h.svc.RoomResult(r.Context(), roomID)
	if errors.Is(err, ErrNotFound) {
		httperrors.Respond(w, httperrors.ErrCodeResultsNotFound, "No results for this room")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("room_id", roomID).Msg("room result fetch failed")
		httperrors.Respond(w, httperrors.ErrCodeLeaderboardFetchFailed, "Results unavailable")
		return
	}

	players := make([]ws.FinalResult, len(result.Players))
	for i, p := range result.Players {
		players[i] = ws.FinalResult{
			Name:     p.Name,
			Rank:     p.Rank,
			Score:    p.Score,
			Correct:  p.Correct,
			Wrong:    p.Wrong,
			Skip:     p.Skip,
			Accuracy: p.Accuracy,
		}
	}
	httperrors.RespondJSON(w, http.StatusOK, ws.GameEndedPayload{
		RoomID:          result.RoomID,
		Players:         players,
		DurationSeconds: result.DurationSeconds,
	})
}


package match

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/make-ten/pkg/http/errors"
	ws "github.com/gokatarajesh/make-ten/pkg/http/ws"
)

// Handler manages WebSocket connections and routes room messages onto the loop.
type Handler struct {
	service *Service
	loop    *Loop
	hub     *ws.Hub
	sender  Sender
	logger  zerolog.Logger
}

// NewHandler creates a match WebSocket handler.
func NewHandler(service *Service, loop *Loop, hub *ws.Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		loop:    loop,
		hub:     hub,
		sender:  hub,
		logger:  logger.With().Str("component", "match_ws").Logger(),
	}
}

// HandleConnection serves one upgraded connection until it closes.
func (h *Handler) HandleConnection(conn *websocket.Conn) {
	clientID := uuid.NewString()
	wsConn := ws.NewConnection(conn, h.logger.With().Str("client_id", clientID).Logger())
	h.hub.RegisterConnection(clientID, wsConn)

	// Start write pump
	go wsConn.WritePump()

	h.loop.Post(func() { h.service.Connect(clientID) })

	// Handle incoming messages
	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(clientID, msg)
	})

	// Cleanup on disconnect
	h.loop.Post(func() { h.service.Disconnect(clientID) })
	h.hub.UnregisterConnection(clientID)
}

// handleMessage decodes on the reader goroutine and applies on the loop.
func (h *Handler) handleMessage(clientID string, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeJoinRoom:
		var req ws.JoinRoomPayload
		if err := msg.Decode(&req); err != nil {
			return h.sendError(clientID, httperrors.ErrCodeInvalidPayload, "Invalid join-room payload")
		}
		return h.dispatch(clientID, msg.Type, func() error {
			return h.service.JoinRoom(clientID, req.RoomID, req.PlayerName)
		})
	case ws.TypeSubmitAnswer:
		var req ws.SubmitAnswerPayload
		if err := msg.Decode(&req); err != nil {
			return h.sendError(clientID, httperrors.ErrCodeInvalidPayload, "Invalid submit-answer payload")
		}
		return h.dispatch(clientID, msg.Type, func() error {
			return h.service.SubmitAnswer(clientID, req.RoomID, req.Formula)
		})
	case ws.TypeSkipProblem:
		var req ws.SkipProblemPayload
		if err := msg.Decode(&req); err != nil {
			return h.sendError(clientID, httperrors.ErrCodeInvalidPayload, "Invalid skip-problem payload")
		}
		return h.dispatch(clientID, msg.Type, func() error {
			return h.service.SkipProblem(clientID, req.RoomID)
		})
	case ws.TypeStartGame:
		var req ws.StartGamePayload
		if err := msg.Decode(&req); err != nil {
			return h.sendError(clientID, httperrors.ErrCodeInvalidPayload, "Invalid start-game payload")
		}
		return h.dispatch(clientID, msg.Type, func() error {
			return h.service.StartGame(clientID, req.RoomID)
		})
	default:
		return h.sendError(clientID, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
}

// dispatch queues fn on the loop. Failures were already reported to the client by the service.
func (h *Handler) dispatch(clientID, msgType string, fn func() error) error {
	posted := h.loop.Post(func() {
		if err := fn(); err != nil {
			h.logger.Debug().Err(err).Str("client_id", clientID).Str("type", msgType).Msg("request rejected")
		}
	})
	if !posted {
		return ErrLoopStopped
	}
	return nil
}

func (h *Handler) sendError(clientID, code, message string) error {
	return h.sender.Send(clientID, ws.NewMessage(ws.TypeError, ws.ErrorPayload{
		Code:    code,
		Message: message,
	}))
}

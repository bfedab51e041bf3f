package match

import (
	"errors"

	httperrors "github.com/gokatarajesh/make-ten/pkg/http/errors"
)

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrPlayerNotFound     = errors.New("player not in room")
	ErrRoomFull           = errors.New("room is full")
	ErrInvalidDigits      = errors.New("formula must use each of the four digits exactly once")
	ErrInvalidFormula     = errors.New("formula is not valid")
	ErrGameNotActive      = errors.New("game is not active")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrGameEnded          = errors.New("game has ended")
	ErrInvalidRoomCode    = errors.New("invalid room code")
)

// ErrorCode maps a service error to its wire code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrRoomNotFound):
		return httperrors.ErrCodeRoomNotFound
	case errors.Is(err, ErrPlayerNotFound):
		return httperrors.ErrCodePlayerNotFound
	case errors.Is(err, ErrRoomFull):
		return httperrors.ErrCodeRoomFull
	case errors.Is(err, ErrInvalidDigits):
		return httperrors.ErrCodeInvalidDigits
	case errors.Is(err, ErrInvalidFormula):
		return httperrors.ErrCodeInvalidFormula
	case errors.Is(err, ErrGameNotActive):
		return httperrors.ErrCodeGameNotActive
	case errors.Is(err, ErrGameAlreadyStarted):
		return httperrors.ErrCodeGameAlreadyStarted
	case errors.Is(err, ErrGameEnded):
		return httperrors.ErrCodeGameEnded
	case errors.Is(err, ErrInvalidRoomCode):
		return httperrors.ErrCodeInvalidRoomCode
	default:
		return httperrors.ErrCodeInternalError
	}
}

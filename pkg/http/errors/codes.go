package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Room errors
	ErrCodeRoomCreationFailed = "room_creation_failed"
	ErrCodeRoomNotFound       = "room_not_found"
	ErrCodeInvalidRoomCode    = "invalid_room_code"
	ErrCodeRoomFull           = "room_full"
	ErrCodePlayerNotFound     = "player_not_found"
	ErrCodeJoinFailed         = "join_failed"

	// Game errors
	ErrCodeGameNotActive      = "game_not_active"
	ErrCodeGameAlreadyStarted = "game_already_started"
	ErrCodeGameEnded          = "game_ended"
	ErrCodeInvalidDigits      = "invalid_digits"
	ErrCodeInvalidFormula     = "invalid_formula"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"
	ErrCodeConnectionError    = "connection_error"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"

	// Leaderboard errors
	ErrCodeLeaderboardFetchFailed = "leaderboard_fetch_failed"
	ErrCodeResultsNotFound        = "results_not_found"
)

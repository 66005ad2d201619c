package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgMissingUser        = "Missing user identity"

	ErrMsgInvalidSessionError  = "Invalid session"
	ErrMsgInvalidInputError    = "Invalid input"
	ErrMsgUnknownAbilityError  = "Unknown ability"
	ErrMsgAbilityNotOwnedError = "Your current character does not have that ability"
	ErrMsgStateNotFoundError   = "Progression not found"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgServiceError     = "Service error"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgSessionCreated   = "Create session: success"
	LogMsgSessionReplayed  = "Create session: replayed"
	LogMsgProgressionReset = "Reset progression: success"
	LogMsgXPReduced        = "Reduce XP: success"
)

package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Progression State
const (
	ErrMsgFailedToGetState    = "failed to get progression state"
	ErrMsgFailedToDecodeState = "failed to decode progression state"
	ErrMsgFailedToEncodeState = "failed to encode progression state"
	ErrMsgFailedToSaveState   = "failed to save progression state"
)

// Error Messages - Processed Operations
const (
	ErrMsgFailedToGetOperation    = "failed to get processed operation"
	ErrMsgFailedToDecodeResult    = "failed to decode session result"
	ErrMsgFailedToEncodeResult    = "failed to encode session result"
	ErrMsgFailedToRecordOperation = "failed to record processed operation"
	ErrMsgDuplicateOperation      = "operation already recorded"
)

// Error Messages - Leaderboard
const (
	ErrMsgFailedToQueryLeaderboard = "failed to query leaderboard"
	ErrMsgFailedToScanLeaderboard  = "failed to scan leaderboard row"
)

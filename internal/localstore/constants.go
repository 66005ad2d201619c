package localstore

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgCreateDirFailed    = "create db dir: %w"
	ErrMsgOpenFailed         = "open sqlite: %w"
	ErrMsgPragmaFailed       = "apply %q: %w"
	ErrMsgCreateSchemaFailed = "create kv table: %w"
	ErrMsgGetFailed          = "get %q: %w"
	ErrMsgSetFailed          = "set %q: %w"
	ErrMsgRemoveFailed       = "remove %q: %w"
	ErrMsgEncodeFailed       = "encode %q: %w"
	ErrMsgDecodeFailed       = "decode %q: %w"
	ErrMsgBeginTxFailed      = "begin tx: %w"
	ErrMsgCommitFailed       = "commit tx: %w"
)

const timestampLayout = "2006-01-02T15:04:05Z07:00"

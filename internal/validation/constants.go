package validation

import "errors"

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgLoadSchema    = "failed to load schema %s: %w"
	ErrMsgParseSchema   = "failed to parse schema JSON: %w"
	ErrMsgAddResource   = "failed to add schema resource: %w"
	ErrMsgCompileSchema = "failed to compile schema: %w"
	ErrMsgParseData     = "failed to parse data: %w"
	ErrMsgValidation    = "validation error: %w"
)

// ErrSchemaViolation is wrapped by every error describing data that does not
// match its schema
var ErrSchemaViolation = errors.New("schema validation failed")

package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Session errors
	ErrMsgInvalidSession = "invalid session"

	// Sync errors
	ErrMsgRejected = "operation rejected"

	// Ability errors
	ErrMsgAbilityNotOwned = "ability not owned by current character"
	ErrMsgUnknownAbility  = "unknown ability"

	// Identity errors
	ErrMsgUserIDRequired = "user id is required"

	// Storage errors
	ErrMsgStateNotFound = "progression state not found"

	// Settings errors
	ErrMsgInvalidSettings = "invalid settings"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidSession = errors.New(ErrMsgInvalidSession)

	// ErrRejected marks a permanent server refusal; the operation is dropped, not retried.
	ErrRejected = errors.New(ErrMsgRejected)

	ErrAbilityNotOwned = errors.New(ErrMsgAbilityNotOwned)
	ErrUnknownAbility  = errors.New(ErrMsgUnknownAbility)

	ErrUserIDRequired = errors.New(ErrMsgUserIDRequired)

	ErrStateNotFound = errors.New(ErrMsgStateNotFound)

	ErrInvalidSettings = errors.New(ErrMsgInvalidSettings)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/osse101/pomoquest/internal/domain"
)

// ExitError carries the process exit code for a failed command
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError without an underlying cause
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from err, defaulting to ExitFailure
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// output renders command results as text or JSON. It also receives the
// queue's local notifications.
type output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

func (o *output) json() bool {
	return o.format == FormatJSON
}

// emit writes data as indented JSON, or calls text in text mode
func (o *output) emit(data any, text func(w io.Writer)) error {
	if o.json() {
		enc := json.NewEncoder(o.w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	text(o.w)
	return nil
}

func (o *output) warn(msg string, err error) {
	fmt.Fprintf(o.errW, MsgWarning, msg, err)
}

// Notify prints notifications in text mode; JSON results carry them instead
func (o *output) Notify(_ context.Context, notifications []domain.Notification) {
	if o.json() {
		return
	}
	for _, n := range notifications {
		printNotification(o.w, n)
	}
}

func printNotification(w io.Writer, n domain.Notification) {
	switch {
	case n.LevelUp != nil:
		fmt.Fprintf(w, MsgLevelUp, n.LevelUp.OldLevel, n.LevelUp.NewLevel)
	case n.Achievement != nil:
		fmt.Fprintf(w, MsgAchievement, n.Achievement.Name, n.Achievement.XPReward)
	case n.Evolution != nil:
		fmt.Fprintf(w, MsgEvolved, n.Evolution.CharacterName, n.Evolution.Title)
	}
}

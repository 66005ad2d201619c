package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/pomoquest/internal/domain"
)

// StatusError is a non-2xx response the caller may retry
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(ErrMsgStatus, e.StatusCode, e.Message)
}

// CreateSessionRequest is the body of POST /api/v1/sessions
type CreateSessionRequest struct {
	OperationID     string             `json:"operation_id"`
	SessionType     domain.SessionType `json:"session_type"`
	DurationMinutes int                `json:"duration_minutes"`
	IsTeamSession   bool               `json:"is_team_session"`
	TeamSize        int                `json:"team_size"`
	TeamSessionID   string             `json:"team_session_id,omitempty"`
	OccurredAt      time.Time          `json:"occurred_at"`
}

// GamePlayedRequest is the wire body of a game play report
type GamePlayedRequest struct {
	GameID string `json:"game_id"`
	Score  int    `json:"score"`
}

// Client talks to the pomoquest API. It never retries; the sync queue owns retry policy.
type Client struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewClient creates a new API client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		APIKey:  apiKey,
	}
}

// CreateSession replays a queued operation. The operation ID is the idempotency key.
func (c *Client) CreateSession(ctx context.Context, userID string, op domain.QueuedOperation) (*domain.SessionResult, error) {
	body := CreateSessionRequest{
		OperationID:     op.ID,
		SessionType:     op.Payload.SessionType,
		DurationMinutes: op.Payload.DurationMinutes,
		IsTeamSession:   op.Payload.IsTeamSession,
		TeamSize:        op.Payload.TeamSize,
		TeamSessionID:   op.Payload.TeamSessionID,
		OccurredAt:      op.Payload.OccurredAt,
	}
	var result domain.SessionResult
	if err := c.do(ctx, http.MethodPost, PathSessions, userID, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProgression fetches the server's view of the user's state
func (c *Client) GetProgression(ctx context.Context, userID string) (*domain.ProgressionState, error) {
	var state domain.ProgressionState
	if err := c.do(ctx, http.MethodGet, PathProgression, userID, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ResetProgression resets the user's server-side state
func (c *Client) ResetProgression(ctx context.Context, userID string) (*domain.ProgressionState, error) {
	var state domain.ProgressionState
	if err := c.do(ctx, http.MethodPost, PathProgressionReset, userID, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SetAbility toggles an ability on the server
func (c *Client) SetAbility(ctx context.Context, userID, abilityID string, active bool) (*domain.ProgressionState, error) {
	var state domain.ProgressionState
	body := map[string]bool{"active": active}
	if err := c.do(ctx, http.MethodPut, PathAbilities+url.PathEscape(abilityID), userID, body, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// RecordGamePlayed reports a mini-game play
func (c *Client) RecordGamePlayed(ctx context.Context, userID, gameID string, score int) (*domain.GamePlayResult, error) {
	body := GamePlayedRequest{GameID: gameID, Score: score}
	var result domain.GamePlayResult
	if err := c.do(ctx, http.MethodPost, PathGamesPlayed, userID, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLeaderboard returns the top users by total XP earned
func (c *Client) GetLeaderboard(ctx context.Context, userID string, limit int) ([]domain.LeaderboardEntry, error) {
	path := PathLeaderboard + "?limit=" + strconv.Itoa(limit)
	var entries []domain.LeaderboardEntry
	if err := c.do(ctx, http.MethodGet, path, userID, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path, userID string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf(ErrMsgMarshalFailed, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf(ErrMsgRequestFailed, err)
	}
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	if c.APIKey != "" {
		req.Header.Set(HeaderAPIKey, c.APIKey)
	}
	req.Header.Set(HeaderUserID, userID)

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf(ErrMsgDecodeFailed, err)
	}
	return nil
}

// statusError maps a failed response onto the retry taxonomy: client errors
// that retrying cannot fix wrap domain.ErrRejected, everything else is a
// retryable *StatusError.
func statusError(resp *http.Response) error {
	msg := readErrorMessage(resp.Body)
	if isPermanentStatus(resp.StatusCode) {
		return fmt.Errorf(ErrMsgRejected, domain.ErrRejected, resp.StatusCode, msg)
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}

func isPermanentStatus(code int) bool {
	if code < 400 || code >= 500 {
		return false
	}
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return true
}

func readErrorMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, 4096))
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	return strings.TrimSpace(string(data))
}

// IsRetryable reports whether err is worth retrying later
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, domain.ErrRejected) && !errors.Is(err, domain.ErrInvalidSession)
}

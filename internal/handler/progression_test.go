package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/logger"
)

// MockSessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) CreateSession(ctx context.Context, userID, operationID string, ev domain.SessionEvent) (*domain.SessionResult, error) {
	args := m.Called(ctx, userID, operationID, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionResult), args.Error(1)
}

func (m *MockSessionService) GetState(ctx context.Context, userID string) (*domain.ProgressionState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressionState), args.Error(1)
}

func (m *MockSessionService) Reset(ctx context.Context, userID string) (*domain.ProgressionState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressionState), args.Error(1)
}

func (m *MockSessionService) ReduceXP(ctx context.Context, userID string, amount int) (*domain.ProgressionState, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressionState), args.Error(1)
}

func (m *MockSessionService) ToggleAbility(ctx context.Context, userID, abilityID string, active bool) (*domain.ProgressionState, error) {
	args := m.Called(ctx, userID, abilityID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressionState), args.Error(1)
}

func (m *MockSessionService) RecordGamePlayed(ctx context.Context, userID, gameID string, score int) (*domain.GamePlayResult, error) {
	args := m.Called(ctx, userID, gameID, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GamePlayResult), args.Error(1)
}

func (m *MockSessionService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaderboardEntry), args.Error(1)
}

func newRequest(method, path, userID, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(logger.WithUserID(req.Context(), userID))
	}
	return req
}

const sessionBody = `{"operation_id":"op-1","session_type":"focus","duration_minutes":25,"occurred_at":"2026-03-02T10:00:00Z"}`

func TestHandleCreateSession(t *testing.T) {
	occurred := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	wantEvent := domain.SessionEvent{SessionType: domain.SessionFocus, DurationMinutes: 25, TeamSize: 1, OccurredAt: occurred}

	t.Run("Success", func(t *testing.T) {
		svc := &MockSessionService{}
		svc.On("CreateSession", mock.Anything, "alice", "op-1", wantEvent).
			Return(&domain.SessionResult{OperationID: "op-1", XPEarned: 64, NewLevel: 1, CurrentXP: 64, UnlockedAchievements: []string{"first_focus"}}, nil)

		w := httptest.NewRecorder()
		NewProgressionHandlers(svc).HandleCreateSession().ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/sessions", "alice", sessionBody))

		assert.Equal(t, http.StatusOK, w.Code)
		var got domain.SessionResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, 64, got.XPEarned)
		assert.Equal(t, []string{"first_focus"}, got.UnlockedAchievements)
		svc.AssertExpectations(t)
	})

	t.Run("Missing user", func(t *testing.T) {
		svc := &MockSessionService{}
		w := httptest.NewRecorder()
		NewProgressionHandlers(svc).HandleCreateSession().ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/sessions", "", sessionBody))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Validation failure", func(t *testing.T) {
		tests := []struct {
			name  string
			body  string
			field string
		}{
			{"missing operation id", `{"session_type":"focus","duration_minutes":25,"occurred_at":"2026-03-02T10:00:00Z"}`, "operationid"},
			{"unknown type", `{"operation_id":"x","session_type":"nap","duration_minutes":25,"occurred_at":"2026-03-02T10:00:00Z"}`, "sessiontype"},
			{"zero duration", `{"operation_id":"x","session_type":"focus","duration_minutes":0,"occurred_at":"2026-03-02T10:00:00Z"}`, "durationminutes"},
			{"missing timestamp", `{"operation_id":"x","session_type":"focus","duration_minutes":25}`, "occurredat"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := &MockSessionService{}
				w := httptest.NewRecorder()
				NewProgressionHandlers(svc).HandleCreateSession().ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/sessions", "alice", tt.body))

				assert.Equal(t, http.StatusBadRequest, w.Code)
				var resp ValidationErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Contains(t, resp.Fields, tt.field)
				svc.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewProgressionHandlers(&MockSessionService{}).HandleCreateSession().ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/sessions", "alice", `{`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
	})

	t.Run("Service errors map to status", func(t *testing.T) {
		tests := []struct {
			err  error
			code int
		}{
			{fmt.Errorf("%w: bad", domain.ErrInvalidSession), http.StatusBadRequest},
			{errors.New("connection refused"), http.StatusInternalServerError},
		}
		for _, tt := range tests {
			svc := &MockSessionService{}
			svc.On("CreateSession", mock.Anything, "alice", "op-1", mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewProgressionHandlers(svc).HandleCreateSession().ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/sessions", "alice", sessionBody))

			assert.Equal(t, tt.code, w.Code)
			assert.NotContains(t, w.Body.String(), "connection refused", "internal details stay internal")
		}
	})
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{domain.ErrUserIDRequired, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: x", domain.ErrUnknownAbility), http.StatusNotFound},
		{fmt.Errorf("%w: x", domain.ErrAbilityNotOwned), http.StatusConflict},
		{domain.ErrStateNotFound, http.StatusNotFound},
		{nil, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		code, msg := mapServiceError(tt.err)
		assert.Equal(t, tt.code, code, "error %v", tt.err)
		assert.NotEmpty(t, msg)
	}
}

func TestHandleGetProgression(t *testing.T) {
	svc := &MockSessionService{}
	state := domain.DemoProgressionState()
	svc.On("GetState", mock.Anything, domain.DemoUserID).Return(state, nil)

	w := httptest.NewRecorder()
	NewProgressionHandlers(svc).HandleGetProgression().ServeHTTP(w, newRequest(http.MethodGet, "/api/v1/progression", domain.DemoUserID, ""))

	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.ProgressionState
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, domain.DemoUserID, got.UserID)
	assert.Equal(t, 1, got.Level)
}

func TestHandleReset(t *testing.T) {
	svc := &MockSessionService{}
	svc.On("Reset", mock.Anything, "alice").Return(domain.DemoProgressionState(), nil)

	w := httptest.NewRecorder()
	NewProgressionHandlers(svc).HandleReset().ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/progression/reset", "alice", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleSetAbility(t *testing.T) {
	svc := &MockSessionService{}
	svc.On("ToggleAbility", mock.Anything, "alice", "xp_boost_10", true).Return(domain.DemoProgressionState(), nil)
	svc.On("ToggleAbility", mock.Anything, "alice", "xp_boost_20", true).Return(nil, fmt.Errorf("%w: xp_boost_20", domain.ErrAbilityNotOwned))

	r := chi.NewRouter()
	r.Put("/api/v1/abilities/{abilityID}", NewProgressionHandlers(svc).HandleSetAbility())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newRequest(http.MethodPut, "/api/v1/abilities/xp_boost_10", "alice", `{"active":true}`))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, newRequest(http.MethodPut, "/api/v1/abilities/xp_boost_20", "alice", `{"active":true}`))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgAbilityNotOwnedError)
}

func TestHandleGamePlayed(t *testing.T) {
	svc := &MockSessionService{}
	svc.On("RecordGamePlayed", mock.Anything, "alice", "memory", 120).
		Return(&domain.GamePlayResult{XPEarned: 25, UnlockedAchievements: []string{"first_game"}, State: domain.DemoProgressionState()}, nil)

	w := httptest.NewRecorder()
	NewProgressionHandlers(svc).HandleGamePlayed().ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/games/played", "alice", `{"game_id":"memory","score":120}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"xp_earned":25`)

	w = httptest.NewRecorder()
	NewProgressionHandlers(svc).HandleGamePlayed().ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/games/played", "alice", `{"score":1}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleLeaderboard(t *testing.T) {
	svc := &MockSessionService{}
	entries := []domain.LeaderboardEntry{{Rank: 1, UserID: "bob", TotalXPEarned: 900}}
	svc.On("Leaderboard", mock.Anything, 10).Return(entries, nil)
	svc.On("Leaderboard", mock.Anything, 3).Return(entries, nil)
	h := NewProgressionHandlers(svc).HandleLeaderboard()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, newRequest(http.MethodGet, "/api/v1/leaderboard", "alice", ""))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, newRequest(http.MethodGet, "/api/v1/leaderboard?limit=3", "alice", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	var got []domain.LeaderboardEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, entries, got)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, newRequest(http.MethodGet, "/api/v1/leaderboard?limit=abc", "alice", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleReduceXP(t *testing.T) {
	svc := &MockSessionService{}
	svc.On("ReduceXP", mock.Anything, "bob", 50).Return(domain.DemoProgressionState(), nil)
	h := NewProgressionHandlers(svc).HandleReduceXP()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/admin/reduce-xp", "", `{"user_id":"bob","amount":50}`))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/admin/reduce-xp", "", `{"user_id":"bob","amount":0}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "ReduceXP", 1)
}

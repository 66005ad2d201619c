package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/logger"
	"github.com/osse101/pomoquest/internal/session"
)

// CreateSessionRequest is the body of POST /api/v1/sessions.
// OperationID is the client's idempotency key.
type CreateSessionRequest struct {
	OperationID string `json:"operation_id" validate:"required,max=128"`
	domain.SessionEvent
}

// SetAbilityRequest toggles one ability
type SetAbilityRequest struct {
	Active bool `json:"active"`
}

// GamePlayedRequest records one mini-game play
type GamePlayedRequest struct {
	GameID string `json:"game_id" validate:"required,max=64"`
	Score  int    `json:"score" validate:"gte=0"`
}

// ReduceXPRequest is the admin request to remove XP from a user
type ReduceXPRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
	Amount int    `json:"amount" validate:"gt=0"`
}

// ProgressionHandlers contains HTTP handlers for the progression API
type ProgressionHandlers struct {
	service session.Service
}

// NewProgressionHandlers creates new progression handlers
func NewProgressionHandlers(service session.Service) *ProgressionHandlers {
	return &ProgressionHandlers{service: service}
}

// HandleCreateSession applies a completed session, idempotent per operation_id
// @Summary Record a completed session
// @Description Applies a completed timer session. Replaying a known operation_id returns the stored result.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Session"
// @Success 200 {object} domain.SessionResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions [post]
func (h *ProgressionHandlers) HandleCreateSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		req := CreateSessionRequest{SessionEvent: domain.SessionEvent{TeamSize: 1}}
		if err := DecodeAndValidateRequest(r, w, &req, "Create session"); err != nil {
			return
		}

		result, err := h.service.CreateSession(r.Context(), userID, req.OperationID, req.SessionEvent)
		if err != nil {
			respondServiceError(w, r, "create session", err)
			return
		}

		log := logger.FromContext(r.Context())
		if result.Replayed {
			log.Info(LogMsgSessionReplayed, "operation_id", req.OperationID)
		} else {
			log.Info(LogMsgSessionCreated, "operation_id", req.OperationID, "xp_earned", result.XPEarned)
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetProgression returns the caller's progression state
// @Summary Get progression
// @Tags progression
// @Produce json
// @Success 200 {object} domain.ProgressionState
// @Failure 401 {object} ErrorResponse
// @Router /progression [get]
func (h *ProgressionHandlers) HandleGetProgression() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		state, err := h.service.GetState(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "get progression", err)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

// HandleReset resets the caller's progression to a fresh state
// @Summary Reset progression
// @Tags progression
// @Produce json
// @Success 200 {object} domain.ProgressionState
// @Failure 401 {object} ErrorResponse
// @Router /progression/reset [post]
func (h *ProgressionHandlers) HandleReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		state, err := h.service.Reset(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "reset progression", err)
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgProgressionReset)
		respondJSON(w, http.StatusOK, state)
	}
}

// HandleSetAbility activates or deactivates an ability
// @Summary Toggle ability
// @Tags progression
// @Accept json
// @Produce json
// @Param abilityID path string true "Ability ID"
// @Param request body SetAbilityRequest true "Toggle"
// @Success 200 {object} domain.ProgressionState
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /abilities/{abilityID} [put]
func (h *ProgressionHandlers) HandleSetAbility() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req SetAbilityRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set ability"); err != nil {
			return
		}

		state, err := h.service.ToggleAbility(r.Context(), userID, chi.URLParam(r, "abilityID"), req.Active)
		if err != nil {
			respondServiceError(w, r, "set ability", err)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

// HandleGamePlayed records a mini-game play
// @Summary Record game play
// @Tags games
// @Accept json
// @Produce json
// @Param request body GamePlayedRequest true "Play"
// @Success 200 {object} domain.GamePlayResult
// @Failure 400 {object} ValidationErrorResponse
// @Router /games/played [post]
func (h *ProgressionHandlers) HandleGamePlayed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req GamePlayedRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Game played"); err != nil {
			return
		}

		result, err := h.service.RecordGamePlayed(r.Context(), userID, req.GameID, req.Score)
		if err != nil {
			respondServiceError(w, r, "record game played", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleLeaderboard returns the top users by total XP earned
// @Summary XP leaderboard
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Max entries (default 10, max 100)"
// @Success 200 {array} domain.LeaderboardEntry
// @Router /leaderboard [get]
func (h *ProgressionHandlers) HandleLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetIntQueryParam(r, w, "limit", session.DefaultLeaderboardLimit)
		if !ok {
			return
		}

		entries, err := h.service.Leaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "leaderboard", err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// HandleReduceXP removes XP from a user for admin tooling
// @Summary Reduce XP (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ReduceXPRequest true "Reduction"
// @Success 200 {object} domain.ProgressionState
// @Failure 400 {object} ValidationErrorResponse
// @Router /admin/reduce-xp [post]
func (h *ProgressionHandlers) HandleReduceXP() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReduceXPRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Reduce XP"); err != nil {
			return
		}

		state, err := h.service.ReduceXP(r.Context(), req.UserID, req.Amount)
		if err != nil {
			respondServiceError(w, r, "reduce xp", err)
			return
		}
		logger.FromContext(r.Context()).Info(LogMsgXPReduced, "target_user_id", req.UserID, "amount", req.Amount)
		respondJSON(w, http.StatusOK, state)
	}
}

package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/pomoquest/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string                 `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// UserID returns the user the event belongs to, if recorded
func (e Event) UserID() string {
	id, _ := e.GetMetadataValue(MetadataKeyUserID).(string)
	return id
}

// Event types
const (
	SessionCompleted    Type = "session.completed"
	LevelUp             Type = "progression.level_up"
	AchievementUnlocked Type = "progression.achievement_unlocked"
	CharacterEvolved    Type = "progression.character_evolved"
	ProgressionReset    Type = "progression.reset"
)

// NotificationTypes are the event types that carry a domain.Notification payload
var NotificationTypes = []Type{LevelUp, AchievementUnlocked, CharacterEvolved}

// SessionCompletedPayloadV1 is the typed payload for session completed events
type SessionCompletedPayloadV1 struct {
	UserID          string             `json:"user_id"`
	OperationID     string             `json:"operation_id"`
	SessionType     domain.SessionType `json:"session_type"`
	DurationMinutes int                `json:"duration_minutes"`
	IsTeamSession   bool               `json:"is_team_session"`
	XPEarned        int                `json:"xp_earned"`
	Level           int                `json:"level"`
	TotalXPEarned   int64              `json:"total_xp_earned"`
	Timestamp       int64              `json:"timestamp"`
}

// ProgressionResetPayloadV1 is the typed payload for reset events
type ProgressionResetPayloadV1 struct {
	UserID    string `json:"user_id"`
	Timestamp int64  `json:"timestamp"`
}

// NotificationEventType maps a notification onto its event type
func NotificationEventType(t domain.NotificationType) Type {
	switch t {
	case domain.NotificationLevelUp:
		return LevelUp
	case domain.NotificationAchievementUnlocked:
		return AchievementUnlocked
	case domain.NotificationCharacterEvolved:
		return CharacterEvolved
	}
	return Type("progression." + string(t))
}

// NewNotificationEvent wraps a progression notification
func NewNotificationEvent(n domain.Notification) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     NotificationEventType(n.Type),
		Payload:  n,
		Metadata: map[string]interface{}{MetadataKeyUserID: n.UserID},
	}
}

// NewSessionCompletedEvent creates a session completed event
func NewSessionCompletedEvent(operationID string, ev domain.SessionEvent, state *domain.ProgressionState, xpEarned int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SessionCompleted,
		Payload: SessionCompletedPayloadV1{
			UserID:          state.UserID,
			OperationID:     operationID,
			SessionType:     ev.SessionType,
			DurationMinutes: ev.DurationMinutes,
			IsTeamSession:   ev.IsTeamSession,
			XPEarned:        xpEarned,
			Level:           state.Level,
			TotalXPEarned:   state.TotalXPEarned,
			Timestamp:       time.Now().Unix(),
		},
		Metadata: map[string]interface{}{MetadataKeyUserID: state.UserID},
	}
}

// NewProgressionResetEvent creates a reset event
func NewProgressionResetEvent(userID string) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     ProgressionReset,
		Payload:  ProgressionResetPayloadV1{UserID: userID, Timestamp: time.Now().Unix()},
		Metadata: map[string]interface{}{MetadataKeyUserID: userID},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

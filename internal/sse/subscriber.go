package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for notification, session and reset events
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(event.NotificationTypes)+2)
	for _, t := range event.NotificationTypes {
		s.bus.Subscribe(t, s.handleNotification)
		types = append(types, string(t))
	}
	s.bus.Subscribe(event.SessionCompleted, s.handleSessionCompleted)
	s.bus.Subscribe(event.ProgressionReset, s.handleReset)
	types = append(types, string(event.SessionCompleted), string(event.ProgressionReset))

	slog.Info(LogMsgSubscriberRegistered, "types", types)
}

func (s *Subscriber) handleNotification(_ context.Context, evt event.Event) error {
	n, err := event.DecodePayload[domain.Notification](evt.Payload)
	if err != nil || n.UserID == "" {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Publish(n.UserID, string(n.Type), n)
	slog.Debug(LogMsgEventBroadcast, "event_type", n.Type, "user_id", n.UserID)
	return nil
}

func (s *Subscriber) handleSessionCompleted(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.SessionCompletedPayloadV1](evt.Payload)
	if err != nil || payload.UserID == "" {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Publish(payload.UserID, EventTypeSessionCompleted, payload)
	return nil
}

func (s *Subscriber) handleReset(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ProgressionResetPayloadV1](evt.Payload)
	if err != nil || payload.UserID == "" {
		slog.Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Publish(payload.UserID, EventTypeProgressionReset, payload)
	return nil
}

package metrics

import (
	"context"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/event"
	"github.com/osse101/pomoquest/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all progression events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, t := range event.NotificationTypes {
		bus.Subscribe(t, e.HandleEvent)
	}
	bus.Subscribe(event.SessionCompleted, e.HandleEvent)
	bus.Subscribe(event.ProgressionReset, e.HandleEvent)
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.SessionCompleted:
		payload, err := event.DecodePayload[event.SessionCompletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
			return nil
		}
		SessionsCompleted.WithLabelValues(string(payload.SessionType)).Inc()
		SessionMinutes.WithLabelValues(string(payload.SessionType)).Add(float64(payload.DurationMinutes))

	case event.LevelUp, event.AchievementUnlocked, event.CharacterEvolved:
		n, err := event.DecodePayload[domain.Notification](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
			return nil
		}
		switch {
		case n.LevelUp != nil:
			LevelUps.Add(float64(n.LevelUp.LevelsGained))
		case n.Achievement != nil:
			AchievementsUnlocked.WithLabelValues(n.Achievement.ID).Inc()
		case n.Evolution != nil:
			Evolutions.WithLabelValues(string(n.Evolution.NewType)).Inc()
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cluesbot/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const sourceService = "cluesbot"

// EventEnvelope wraps every forwarded event
type EventEnvelope struct {
	EventID       string          `json:"eventId"`
	EventType     string          `json:"eventType"`
	Timestamp     time.Time       `json:"timestamp"`
	SourceService string          `json:"sourceService"`
	Payload       json.RawMessage `json:"payload"`
}

// SubjectPublisher sends raw bytes to a subject. NATSClient implements it.
type SubjectPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// NATSEventPublisher forwards bus events to NATS in an envelope
type NATSEventPublisher struct {
	publisher     SubjectPublisher
	subjectMapper *EventSubjectMapper
	now           func() time.Time
}

// NewNATSEventPublisher creates a new NATS event publisher
func NewNATSEventPublisher(publisher SubjectPublisher, subjectMapper *EventSubjectMapper) *NATSEventPublisher {
	return &NATSEventPublisher{
		publisher:     publisher,
		subjectMapper: subjectMapper,
		now:           time.Now,
	}
}

// Publish forwards one event
func (p *NATSEventPublisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	envelope := EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     string(event.Type()),
		Timestamp:     p.now().UTC(),
		SourceService: sourceService,
		Payload:       payload,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	subject := p.subjectMapper.MapEventToSubject(event)
	if err := p.publisher.Publish(ctx, subject, data); err != nil {
		// No stream bound to the subject; nobody is listening
		if strings.Contains(err.Error(), "no response from stream") {
			return nil
		}
		return fmt.Errorf("failed to publish event to NATS: %w", err)
	}

	log.WithFields(log.Fields{
		"eventType": envelope.EventType,
		"eventId":   envelope.EventID,
		"subject":   subject,
	}).Debug("Forwarded event to NATS")
	return nil
}

// Attach subscribes the publisher to every event on bus
func (p *NATSEventPublisher) Attach(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		if err := p.Publish(ctx, event); err != nil {
			log.WithError(err).WithField("eventType", event.Type()).Warn("Failed to forward event")
		}
	})
}

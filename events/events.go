package events

import (
	"context"
	"sync"

	"cluesbot/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeSubmissionAccepted EventType = "submission_accepted"
	EventTypeSubmissionRejected EventType = "submission_rejected"
	EventTypeLeaderboardPosted  EventType = "leaderboard_posted"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// SubmissionAcceptedEvent is emitted once a record has been appended to the store
type SubmissionAcceptedEvent struct {
	PuzzleDate models.PuzzleDate `json:"puzzleDate"`
	PlayerID   string            `json:"playerId"`
	Name       string            `json:"name"`
	Difficulty string            `json:"difficulty"`
	TotalScore int               `json:"totalScore"`
}

func (e SubmissionAcceptedEvent) Type() EventType {
	return EventTypeSubmissionAccepted
}

// SubmissionRejectedEvent is emitted when a submission duplicates an existing record
type SubmissionRejectedEvent struct {
	PuzzleDate models.PuzzleDate `json:"puzzleDate"`
	PlayerID   string            `json:"playerId"`
	Reason     string            `json:"reason"`
}

func (e SubmissionRejectedEvent) Type() EventType {
	return EventTypeSubmissionRejected
}

// LeaderboardPostedEvent is emitted after a scheduled leaderboard is announced
type LeaderboardPostedEvent struct {
	Period   string            `json:"period"`
	Start    models.PuzzleDate `json:"start"`
	End      models.PuzzleDate `json:"end"`
	WinnerID string            `json:"winnerId,omitempty"`
	Players  int               `json:"players"`
}

func (e LeaderboardPostedEvent) Type() EventType {
	return EventTypeLeaderboardPosted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds a handler for every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range []EventType{
		EventTypeSubmissionAccepted,
		EventTypeSubmissionRejected,
		EventTypeLeaderboardPosted,
	} {
		b.Subscribe(eventType, handler)
	}
}

// Emit publishes an event to all registered handlers.
// Handlers run asynchronously and a panicking handler never reaches the caller.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Detach from the request so handlers outlive it
	eventCtx := context.WithoutCancel(ctx)

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(eventCtx, event)
		}(handler, i)
	}
}

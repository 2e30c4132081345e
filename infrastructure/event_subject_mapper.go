package infrastructure

import (
	"fmt"

	"cluesbot/events"
)

// EventSubjectMapper maps bus events to NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts an event to its NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeSubmissionAccepted:
		return "clues.submissions.accepted"
	case events.EventTypeSubmissionRejected:
		return "clues.submissions.rejected"
	case events.EventTypeLeaderboardPosted:
		return "clues.leaderboards.posted"
	default:
		return fmt.Sprintf("clues.unknown.%s", event.Type())
	}
}

// GetAllSubjects returns all subjects this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{"clues.>"}
}

package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cluesbot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSubjectPublisher struct {
	mock.Mock
}

func (m *mockSubjectPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func TestNATSEventPublisher_Envelope(t *testing.T) {
	ctx := context.Background()
	publisher := new(mockSubjectPublisher)

	var captured []byte
	publisher.On("Publish", ctx, "clues.submissions.accepted", mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(2).([]byte) }).
		Return(nil)

	p := NewNATSEventPublisher(publisher, NewEventSubjectMapper())
	p.now = func() time.Time { return time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC) }

	err := p.Publish(ctx, events.SubmissionAcceptedEvent{
		PuzzleDate: "2025-11-03",
		PlayerID:   "42",
		Name:       "Sam",
		Difficulty: "Hard",
		TotalScore: 221,
	})
	require.NoError(t, err)
	publisher.AssertExpectations(t)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(captured, &envelope))
	assert.NotEmpty(t, envelope.EventID)
	assert.Equal(t, "submission_accepted", envelope.EventType)
	assert.Equal(t, "cluesbot", envelope.SourceService)
	assert.True(t, envelope.Timestamp.Equal(time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)))

	var payload events.SubmissionAcceptedEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, 221, payload.TotalScore)
	assert.Equal(t, "42", payload.PlayerID)
}

func TestNATSEventPublisher_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no stream is ignored", func(t *testing.T) {
		publisher := new(mockSubjectPublisher)
		publisher.On("Publish", ctx, mock.Anything, mock.Anything).
			Return(errors.New("nats: no response from stream"))

		p := NewNATSEventPublisher(publisher, NewEventSubjectMapper())
		assert.NoError(t, p.Publish(ctx, events.LeaderboardPostedEvent{Period: "daily"}))
	})

	t.Run("other failures are returned", func(t *testing.T) {
		publisher := new(mockSubjectPublisher)
		publisher.On("Publish", ctx, mock.Anything, mock.Anything).
			Return(errors.New("nats: connection closed"))

		p := NewNATSEventPublisher(publisher, NewEventSubjectMapper())
		assert.Error(t, p.Publish(ctx, events.SubmissionRejectedEvent{Reason: "duplicate_in_store"}))
	})
}

func TestEventSubjectMapper(t *testing.T) {
	m := NewEventSubjectMapper()
	assert.Equal(t, "clues.submissions.accepted", m.MapEventToSubject(events.SubmissionAcceptedEvent{}))
	assert.Equal(t, "clues.submissions.rejected", m.MapEventToSubject(events.SubmissionRejectedEvent{}))
	assert.Equal(t, "clues.leaderboards.posted", m.MapEventToSubject(events.LeaderboardPostedEvent{}))
}

func TestNATSEventPublisher_Attach(t *testing.T) {
	publisher := new(mockSubjectPublisher)
	done := make(chan struct{})
	publisher.On("Publish", mock.Anything, "clues.leaderboards.posted", mock.Anything).
		Run(func(args mock.Arguments) { close(done) }).
		Return(nil).Once()

	bus := events.NewBus()
	NewNATSEventPublisher(publisher, NewEventSubjectMapper()).Attach(bus)
	bus.Emit(context.Background(), events.LeaderboardPostedEvent{Period: "monthly"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not forwarded")
	}
}

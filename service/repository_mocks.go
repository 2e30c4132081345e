package service

import (
	"context"

	"cluesbot/events"
	"cluesbot/models"

	"github.com/stretchr/testify/mock"
)

// MockRecordStore is a mock implementation of RecordStore
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) All(ctx context.Context) ([]*models.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Record), args.Error(1)
}

func (m *MockRecordStore) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRecordStore) Exists(ctx context.Context, date models.PuzzleDate, playerID string) (bool, error) {
	args := m.Called(ctx, date, playerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordStore) Append(ctx context.Context, record *models.Record) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

// MockEventEmitter is a mock implementation of EventEmitter
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) Emit(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}

// MockChatCompleter is a mock implementation of ChatCompleter
type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) Complete(ctx context.Context, instructions, input string) (string, error) {
	args := m.Called(ctx, instructions, input)
	return args.String(0), args.Error(1)
}

// memoryRecordStore is an in-memory RecordStore for service tests
type memoryRecordStore struct {
	records []*models.Record
}

func (s *memoryRecordStore) All(ctx context.Context) ([]*models.Record, error) {
	return s.records, nil
}

func (s *memoryRecordStore) EnsureSchema(ctx context.Context) error {
	return nil
}

func (s *memoryRecordStore) Exists(ctx context.Context, date models.PuzzleDate, playerID string) (bool, error) {
	for _, r := range s.records {
		if r.PuzzleDate == date && r.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryRecordStore) Append(ctx context.Context, record *models.Record) (bool, error) {
	exists, _ := s.Exists(ctx, record.PuzzleDate, record.PlayerID)
	if exists {
		return false, nil
	}
	s.records = append(s.records, record)
	return true, nil
}

// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"sync"

	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockLoggingService struct {
	mock.Mock

	mu      sync.Mutex
	entries []model.LogEntry
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	m.mu.Lock()
	m.entries = append(m.entries, *entry)
	m.mu.Unlock()
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	m.mu.Lock()
	for _, e := range entries {
		m.entries = append(m.entries, *e)
	}
	m.mu.Unlock()
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

// Entries returns copies of every entry passed to CreateLog or CreateLogs.
func (m *MockLoggingService) Entries() []model.LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.LogEntry(nil), m.entries...)
}

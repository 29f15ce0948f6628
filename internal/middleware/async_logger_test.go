//go:build !integration

package middleware

import (
	"errors"
	"testing"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWithDefaults(t *testing.T) {
	got := withDefaults(AsyncLoggerConfig{BatchSize: 10})

	assert.Equal(t, 1000, got.BufferSize)
	assert.Equal(t, 4, got.NumWorkers)
	assert.Equal(t, 10, got.BatchSize)
	assert.Equal(t, 500*time.Millisecond, got.FlushInterval)
	assert.Equal(t, 5*time.Second, got.WriteTimeout)
}

func TestNewAsyncLogger_NilService(t *testing.T) {
	assert.Nil(t, NewAsyncLogger(nil, DefaultAsyncLoggerConfig()))
}

func TestAsyncLogger_BatchesOnStop(t *testing.T) {
	svc := &mocks.MockLoggingService{}
	svc.On("CreateLogs", mock.Anything, mock.MatchedBy(func(batch []*model.LogEntry) bool {
		return len(batch) == 5
	})).Return(nil).Once()

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 10, FlushInterval: time.Hour})
	for range 5 {
		require.True(t, al.Log(&model.LogEntry{Message: "Tool call", Tool: "add-to-cart"}))
	}
	al.Stop()

	enqueued, dropped, written, failed := al.Stats()
	assert.Equal(t, int64(5), enqueued)
	assert.Zero(t, dropped)
	assert.Equal(t, int64(5), written)
	assert.Zero(t, failed)
	assert.Len(t, svc.Entries(), 5)
	svc.AssertExpectations(t)
}

func TestAsyncLogger_FlushesFullBatches(t *testing.T) {
	svc := &mocks.MockLoggingService{}
	svc.On("CreateLogs", mock.Anything, mock.Anything).Return(nil)

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 2, FlushInterval: time.Hour})
	t.Cleanup(al.Stop)
	al.Log(&model.LogEntry{Message: "one"})
	al.Log(&model.LogEntry{Message: "two"})

	require.Eventually(t, func() bool { return len(svc.Entries()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestAsyncLogger_FlushesOnInterval(t *testing.T) {
	svc := &mocks.MockLoggingService{}
	svc.On("CreateLog", mock.Anything, mock.Anything).Return(nil)

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 50, FlushInterval: 10 * time.Millisecond})
	t.Cleanup(al.Stop)
	al.Log(&model.LogEntry{Message: "HTTP request"})

	require.Eventually(t, func() bool { return len(svc.Entries()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestAsyncLogger_CountsFailures(t *testing.T) {
	svc := &mocks.MockLoggingService{}
	svc.On("CreateLogs", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 10, FlushInterval: time.Hour})
	al.Log(&model.LogEntry{Message: "one"})
	al.Log(&model.LogEntry{Message: "two"})
	al.Stop()

	_, _, written, failed := al.Stats()
	assert.Zero(t, written)
	assert.Equal(t, int64(2), failed)
}

func TestAsyncLogger_DropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	svc := &mocks.MockLoggingService{}
	svc.On("CreateLog", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(nil)

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 1, NumWorkers: 1, BatchSize: 1, WriteTimeout: time.Second})
	require.True(t, al.Log(&model.LogEntry{Message: "first"}))
	require.Eventually(t, func() bool { return len(svc.Entries()) == 1 }, time.Second, 5*time.Millisecond)

	assert.True(t, al.Log(&model.LogEntry{Message: "queued"}))
	assert.False(t, al.Log(&model.LogEntry{Message: "dropped"}))

	close(release)
	al.Stop()

	_, dropped, written, _ := al.Stats()
	assert.Equal(t, int64(1), dropped)
	assert.Equal(t, int64(2), written)
}

func TestAsyncLogger_LogAfterStop(t *testing.T) {
	svc := &mocks.MockLoggingService{}
	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 1, NumWorkers: 1})
	al.Stop()
	al.Stop()

	assert.False(t, al.Log(&model.LogEntry{Message: "late"}))
	svc.AssertNotCalled(t, "CreateLog", mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "CreateLogs", mock.Anything, mock.Anything)
}

func TestGlobalAsyncLogger(t *testing.T) {
	svc := &mocks.MockLoggingService{}

	InitAsyncLogger(svc, DefaultAsyncLoggerConfig())
	first := GetAsyncLogger()
	require.NotNil(t, first)

	InitAsyncLogger(svc, DefaultAsyncLoggerConfig())
	assert.NotSame(t, first, GetAsyncLogger())
	assert.False(t, first.Log(&model.LogEntry{}), "replaced logger is stopped")

	StopAsyncLogger()
	assert.Nil(t, GetAsyncLogger())
	StopAsyncLogger()
}

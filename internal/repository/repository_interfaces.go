package repository

import (
	"context"
)

// LogsRepositoryInterface is implemented by LogsRepository and its circuit breaker wrapper.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

var (
	_ LogsRepositoryInterface = (*LogsRepository)(nil)
	_ LogsRepositoryInterface = (*LogsRepositoryWithCircuitBreaker)(nil)
)

package repository

import (
	"context"
	"errors"

	"github.com/milestonetrucks/voice-agent/internal/circuitbreaker"
)

// LogsRepositoryWithCircuitBreaker guards a logs repository with a circuit breaker.
// While the circuit is open writes are dropped without error and reads fail with
// circuitbreaker.ErrCircuitOpen.
type LogsRepositoryWithCircuitBreaker struct {
	repo LogsRepositoryInterface
	cb   *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, cb: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) write(ctx context.Context, fn func() error) error {
	if err := r.cb.Execute(ctx, fn); err != nil && !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return err
	}
	return nil
}

func guardedRead[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var out T
	err := cb.Execute(ctx, func() error {
		var err error
		out, err = fn()
		return err
	})
	return out, err
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return r.write(ctx, func() error { return r.repo.Create(ctx, entry) })
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return r.write(ctx, func() error { return r.repo.CreateMany(ctx, entries) })
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return guardedRead(ctx, r.cb, func() ([]*LogEntryDocument, error) { return r.repo.Query(ctx, opts) })
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return guardedRead(ctx, r.cb, func() (int64, error) { return r.repo.Count(ctx, opts) })
}

// GetCircuitBreaker returns the breaker, for health reporting.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.cb
}

// Package circuitbreaker guards calls to the store API and the log database.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned instead of calling a dependency that keeps failing.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the state of the circuit breaker.
type State int

const (
	// StateClosed means calls pass through normally.
	StateClosed State = iota
	// StateOpen means calls are rejected without being attempted.
	StateOpen
	// StateHalfOpen means trial calls are let through to probe recovery.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config holds circuit breaker configuration.
type Config struct {
	// FailureThreshold is the number of consecutive failures before opening the circuit.
	FailureThreshold int
	// SuccessThreshold is the number of consecutive half-open successes needed to close it.
	SuccessThreshold int
	// Timeout is how long the circuit stays open before a trial call is allowed.
	Timeout time.Duration
	// Name labels log lines and the state gauge.
	Name string
	// Ignore reports errors that should pass through without counting as a failure.
	// Defaults to context cancellation, which means the caller hung up.
	Ignore func(error) bool
}

// DefaultConfig returns a default circuit breaker configuration.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

func ignoreCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

// CircuitBreaker stops calling a dependency after FailureThreshold consecutive
// failures and lets a trial call through once Timeout has passed.
type CircuitBreaker struct {
	config Config
	now    func() time.Time

	mu        sync.RWMutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
}

// New returns a closed breaker. Thresholds below one are raised to one.
func New(config Config) *CircuitBreaker {
	config.FailureThreshold = max(config.FailureThreshold, 1)
	config.SuccessThreshold = max(config.SuccessThreshold, 1)
	if config.Ignore == nil {
		config.Ignore = ignoreCancellation
	}

	metrics.SetCircuitState(config.Name, int(StateClosed))
	return &CircuitBreaker{config: config, now: time.Now}
}

// Execute runs fn unless the circuit is open, in which case ErrCircuitOpen is returned.
// A context that is already done short-circuits without touching the counters.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cb.before(); err != nil {
		return err
	}

	err := fn()
	cb.after(err)
	return err
}

// before rejects the call while open and moves to half-open once the timeout is up.
func (cb *CircuitBreaker) before() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return nil
	}
	if cb.now().Sub(cb.openedAt) < cb.config.Timeout {
		return ErrCircuitOpen
	}
	cb.successes = 0
	cb.transition(StateHalfOpen)
	return nil
}

func (cb *CircuitBreaker) after(err error) {
	if err != nil && cb.config.Ignore(err) {
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		cb.failures = 0
		if cb.state != StateHalfOpen {
			return
		}
		if cb.successes++; cb.successes >= cb.config.SuccessThreshold {
			cb.successes = 0
			cb.transition(StateClosed)
		}
		return
	}

	cb.failures++
	cb.openedAt = cb.now()
	if cb.state == StateHalfOpen || cb.failures >= cb.config.FailureThreshold {
		cb.transition(StateOpen)
	}
}

// transition must be called with mu held.
func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	if from == to {
		return
	}
	cb.state = to
	metrics.SetCircuitState(cb.config.Name, int(to))

	ev := log.Info()
	if to == StateOpen {
		ev = log.Warn().Int("failure_count", cb.failures)
	}
	ev.Str("circuit_breaker", cb.config.Name).
		Stringer("from", from).
		Stringer("to", to).
		Msg("Circuit breaker state changed")
}

// Name returns the configured name.
func (cb *CircuitBreaker) Name() string {
	return cb.config.Name
}

func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a snapshot for the readiness probe.
type Stats struct {
	Name         string    `json:"name"`
	State        string    `json:"state"`
	FailureCount int       `json:"failure_count"`
	SuccessCount int       `json:"success_count"`
	LastFailure  time.Time `json:"last_failure,omitempty"`
	IsHealthy    bool      `json:"healthy"`
}

// GetStats reports half-open as healthy so readiness does not flap while probing.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		Name:         cb.config.Name,
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.successes,
		LastFailure:  cb.openedAt,
		IsHealthy:    cb.state != StateOpen,
	}
}

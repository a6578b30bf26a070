package source

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/vijay-prabhu/unimatch/internal/logging"
	"github.com/vijay-prabhu/unimatch/internal/match"
	"github.com/vijay-prabhu/unimatch/internal/metrics"
	"github.com/vijay-prabhu/unimatch/internal/university"
)

// ErrUnavailable is returned while the breaker is open
var ErrUnavailable = errors.New("source unavailable")

// BreakerSettings configures a Breaker
type BreakerSettings struct {
	Name        string
	Failures    uint32        // consecutive failures that open the circuit
	Timeout     time.Duration // per-fetch deadline, 0 for none
	OpenTimeout time.Duration // how long the circuit stays open before probing
}

// Breaker wraps a gateway with a fetch timeout and a circuit breaker.
// It never retries; an open circuit fails fast.
type Breaker struct {
	next    match.Gateway
	cb      *gobreaker.CircuitBreaker[[]university.University]
	name    string
	timeout time.Duration
}

// NewBreaker wraps next
func NewBreaker(next match.Gateway, s BreakerSettings) *Breaker {
	if s.Name == "" {
		s.Name = "source"
	}
	if s.Failures == 0 {
		s.Failures = 5
	}
	if s.OpenTimeout == 0 {
		s.OpenTimeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]university.University](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.Failures
		},
		// A caller giving up is not a backend failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Breaker{next: next, cb: cb, name: s.Name, timeout: s.Timeout}
}

// FetchAllUniversities fetches through the breaker
func (b *Breaker) FetchAllUniversities(ctx context.Context) ([]university.University, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	start := time.Now()
	universities, err := b.cb.Execute(func() ([]university.University, error) {
		return b.next.FetchAllUniversities(ctx)
	})
	metrics.RecordFetch(b.name, time.Since(start), err)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, errors.Join(ErrUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return universities, nil
}

// State reports the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

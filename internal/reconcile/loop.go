// Package reconcile drives the buyer-facing polling workflow that runs
// after the gateway redirects back to the storefront: ask for the
// order, tolerate "not yet available", give up after a bounded number
// of automatic attempts and leave a manual retry affordance.
package reconcile

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Kanikabudhiraja/GreenBasket-CarbonEmission-sub000/internal/domain"
)

type State string

const (
	StateIdle         State = "IDLE"
	StateFetching     State = "FETCHING"
	StateRetryWaiting State = "RETRY_WAITING"
	StateSucceeded    State = "SUCCEEDED"
	StateFailed       State = "FAILED_PERMANENTLY"
)

var (
	ErrMissingHandle = errors.New("no session handle in return URL")
	ErrCanceled      = errors.New("reconciliation canceled")
)

// OrderFetcher is the slice of the order service the loop needs.
type OrderFetcher interface {
	GetBySession(ctx context.Context, sessionHandle string) (*domain.Order, error)
}

type Loop struct {
	fetcher     OrderFetcher
	maxAttempts int
	interval    time.Duration
	onSuccess   func(*domain.Order)

	mu       sync.Mutex
	state    State
	attempts int
	inFlight bool
	retry    chan struct{}
}

type Option func(*Loop)

// WithOnSuccess registers the hook that clears the local cart and
// shows the confirmation once the order is available.
func WithOnSuccess(fn func(*domain.Order)) Option {
	return func(l *Loop) { l.onSuccess = fn }
}

func WithRetryInterval(d time.Duration) Option {
	return func(l *Loop) { l.interval = d }
}

func WithMaxAttempts(n int) Option {
	return func(l *Loop) { l.maxAttempts = n }
}

func NewLoop(fetcher OrderFetcher, opts ...Option) *Loop {
	l := &Loop{
		fetcher:     fetcher,
		maxAttempts: 3,
		interval:    3 * time.Second,
		state:       StateIdle,
		retry:       make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loop) Attempts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attempts
}

// Retry resets the attempt budget and resumes a permanently failed
// loop. No-op in any other state.
func (l *Loop) Retry() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateFailed {
		return
	}
	l.attempts = 0
	select {
	case l.retry <- struct{}{}:
	default:
	}
}

// Run polls until the order materializes or ctx is canceled. It blocks
// the calling goroutine; cancellation is how the hosting view tears the
// loop down.
func (l *Loop) Run(ctx context.Context, sessionHandle string) (*domain.Order, error) {
	if sessionHandle == "" {
		l.setState(StateFailed)
		return nil, ErrMissingHandle
	}

	for {
		order, err := l.attempt(ctx, sessionHandle)
		if err == nil {
			l.setState(StateSucceeded)
			if l.onSuccess != nil {
				l.onSuccess(order)
			}
			return order, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrCanceled
		}
		log.Printf("order fetch for session %s failed (attempt %d/%d): %v", sessionHandle, l.Attempts(), l.maxAttempts, err)

		if l.Attempts() < l.maxAttempts {
			l.setState(StateRetryWaiting)
			if !l.sleep(ctx) {
				return nil, ErrCanceled
			}
			continue
		}

		// Out of automatic attempts; park until the buyer asks again.
		l.setState(StateFailed)
		select {
		case <-l.retry:
			continue
		case <-ctx.Done():
			return nil, ErrCanceled
		}
	}
}

// attempt performs a single guarded fetch. The guard flag keeps one
// call in flight per loop even when Run overlaps with a manual retry.
func (l *Loop) attempt(ctx context.Context, sessionHandle string) (*domain.Order, error) {
	l.mu.Lock()
	if l.inFlight {
		l.mu.Unlock()
		return nil, errors.New("fetch already in flight")
	}
	l.inFlight = true
	l.attempts++
	l.state = StateFetching
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.inFlight = false
		l.mu.Unlock()
	}()

	return l.fetcher.GetBySession(ctx, sessionHandle)
}

func (l *Loop) sleep(ctx context.Context) bool {
	timer := time.NewTimer(l.interval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (l *Loop) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

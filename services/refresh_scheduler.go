package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-pos/utils"
)

// RefreshScheduler polls fetch on a fixed interval and hands each result to
// apply. Trigger asks for an immediate refresh, for example after a local
// mutation. Once Stop returns, no further result is applied, even one whose
// fetch was already in flight.
type RefreshScheduler[T any] struct {
	Name     string
	Interval time.Duration

	fetch func(ctx context.Context) (T, error)
	apply func(T)

	trigger chan struct{}

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

func NewRefreshScheduler[T any](name string, interval time.Duration, fetch func(ctx context.Context) (T, error), apply func(T)) *RefreshScheduler[T] {
	return &RefreshScheduler[T]{
		Name:     name,
		Interval: interval,
		fetch:    fetch,
		apply:    apply,
		trigger:  make(chan struct{}, 1),
	}
}

// Start runs the loop until ctx is done or Stop is called. The first
// refresh happens immediately. Starting a running scheduler is a no-op.
func (rs *RefreshScheduler[T]) Start(ctx context.Context) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	rs.cancel = cancel
	rs.done = make(chan struct{})
	rs.stopped = false

	go rs.loop(ctx, rs.done)
	utils.InfoLogger.Printf("%s refresh started (every %s)", rs.Name, rs.Interval)
}

func (rs *RefreshScheduler[T]) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(rs.Interval)
	defer ticker.Stop()

	rs.runOnce(ctx)
	for {
		select {
		case <-ticker.C:
			rs.runOnce(ctx)
		case <-rs.trigger:
			rs.runOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (rs *RefreshScheduler[T]) runOnce(ctx context.Context) {
	result, err := rs.fetch(ctx)
	if err != nil {
		if ctx.Err() == nil && !errors.Is(err, ErrRefreshSkipped) {
			utils.ErrorLogger.Warnf("%s refresh failed: %v", rs.Name, err)
		}
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.stopped || ctx.Err() != nil {
		return
	}
	rs.apply(result)
}

// Trigger requests an immediate refresh. Requests made while one is
// already pending collapse into it.
func (rs *RefreshScheduler[T]) Trigger() {
	select {
	case rs.trigger <- struct{}{}:
	default:
	}
}

// Stop cancels the in-flight fetch and waits for the loop to exit.
func (rs *RefreshScheduler[T]) Stop() {
	rs.mu.Lock()
	if rs.cancel == nil {
		rs.mu.Unlock()
		return
	}
	rs.stopped = true
	rs.cancel()
	done := rs.done
	rs.cancel = nil
	rs.mu.Unlock()

	<-done
	utils.InfoLogger.Printf("%s refresh stopped", rs.Name)
}

func (rs *RefreshScheduler[T]) Running() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.cancel != nil
}

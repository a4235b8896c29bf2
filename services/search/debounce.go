// Package search implements debounced, cancellable query dispatch for live search.
package search

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay is the quiet period after the last keystroke before a fetch.
const DefaultDelay = 500 * time.Millisecond

// FetchFunc performs the search for a settled query.
type FetchFunc[T any] func(ctx context.Context, query string) (T, error)

// DeliverFunc receives the result of a fetch that is still current.
type DeliverFunc[T any] func(query string, result T, err error)

// Debouncer coalesces rapid triggers into one fetch using the last query.
// Results of a fetch are delivered only when no newer trigger arrived while it
// ran and the debouncer has not been stopped. Once Stop returns no further
// delivery happens; deliver must not call Stop itself.
type Debouncer[T any] struct {
	delay   time.Duration
	fetch   FetchFunc[T]
	deliver DeliverFunc[T]

	// deliverMu is held across the liveness check and deliver, and by Stop.
	deliverMu sync.Mutex

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	cancel     context.CancelFunc
	stopped    bool
	ctx        context.Context
}

// NewDebouncer creates a debouncer bound to ctx; cancelling ctx has the same
// effect as Stop.
func NewDebouncer[T any](ctx context.Context, delay time.Duration, fetch FetchFunc[T], deliver DeliverFunc[T]) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	d := &Debouncer[T]{
		delay:   delay,
		fetch:   fetch,
		deliver: deliver,
		ctx:     ctx,
	}
	context.AfterFunc(ctx, d.Stop)
	return d
}

// Trigger records a new query and restarts the quiet period. Any pending
// timer is cancelled and any in-flight fetch becomes stale.
func (d *Debouncer[T]) Trigger(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.generation++
	gen := d.generation
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, query) })
}

func (d *Debouncer[T]) fire(gen uint64, query string) {
	d.mu.Lock()
	if d.stopped || gen != d.generation {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(d.ctx)
	d.cancel = cancel
	d.mu.Unlock()

	result, err := d.fetch(ctx, query)
	cancel()

	d.deliverMu.Lock()
	defer d.deliverMu.Unlock()

	d.mu.Lock()
	live := !d.stopped && gen == d.generation
	d.mu.Unlock()

	if live && d.deliver != nil {
		d.deliver(query, result, err)
	}
}

// Stop cancels the pending timer and any in-flight fetch, waiting for a
// delivery already in progress. Later triggers are ignored. Safe to call more
// than once.
func (d *Debouncer[T]) Stop() {
	d.deliverMu.Lock()
	defer d.deliverMu.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

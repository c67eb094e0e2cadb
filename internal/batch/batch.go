// Package batch collects bursts of change notifications into single
// processing passes. Items added in quick succession flush together after
// a short interval, so a storm of changes costs one pass instead of many.
package batch

import (
	"sync"
	"time"

	"github.com/starford/laguz/internal/hover"
)

// DefaultInterval approximates one frame at 60Hz.
const DefaultInterval = 16 * time.Millisecond

// Batcher queues items of one kind and flushes them in batches. Safe for
// concurrent use.
type Batcher[T any] struct {
	interval time.Duration
	flush    func([]T)
	clock    hover.Clock
	keyFn    func(T) string

	mu        sync.Mutex
	pending   []T
	timer     hover.Timer
	processed map[string]struct{}
	closed    bool
}

// Option configures a Batcher.
type Option[T any] func(*Batcher[T])

// WithClock replaces the timer source, for tests.
func WithClock[T any](clock hover.Clock) Option[T] {
	return func(b *Batcher[T]) {
		b.clock = clock
	}
}

// WithDedupe installs a key function; an item whose key was already
// flushed once is skipped until Reset. This is the processed-flag that
// keeps re-scans from reprocessing decorated items.
func WithDedupe[T any](keyFn func(T) string) Option[T] {
	return func(b *Batcher[T]) {
		b.keyFn = keyFn
	}
}

// New creates a Batcher that calls flush with each batch.
func New[T any](interval time.Duration, flush func([]T), opts ...Option[T]) *Batcher[T] {
	b := &Batcher[T]{
		interval:  interval,
		flush:     flush,
		clock:     hover.NewClock(),
		processed: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add queues an item and arms the flush timer if one is not already
// pending. Duplicate items (per the dedupe key) are dropped.
func (b *Batcher[T]) Add(item T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	if b.keyFn != nil {
		key := b.keyFn(item)
		if _, done := b.processed[key]; done {
			return
		}
		b.processed[key] = struct{}{}
	}

	b.pending = append(b.pending, item)
	if b.timer == nil {
		b.timer = b.clock.AfterFunc(b.interval, b.Flush)
	}
}

// Flush processes everything pending right now.
func (b *Batcher[T]) Flush() {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	items := b.pending
	b.pending = nil
	b.mu.Unlock()

	if len(items) > 0 {
		b.flush(items)
	}
}

// Reset forgets all processed keys, so previously flushed items may be
// queued again. Used when decorations are torn down.
func (b *Batcher[T]) Reset() {
	b.mu.Lock()
	b.processed = make(map[string]struct{})
	b.mu.Unlock()
}

// Close stops the pending timer and drops queued items. Further Adds are
// ignored.
func (b *Batcher[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.pending = nil
	b.closed = true
}

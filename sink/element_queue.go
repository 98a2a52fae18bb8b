package sink

import (
	"board-lab/contract"
	"board-lab/domain"
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"
)

// pending is a buffered write for one element.
// A nil fields map is a tombstone: the element is being deleted.
type pending struct {
	fields    domain.Element
	updatedAt time.Time
	inFlight  bool
}

func (p *pending) tombstone() bool { return p.fields == nil }

type QueueOption func(*ElementQueue)

// WithJitter replaces the random factor added to the save delay.
func WithJitter(jitter func() float64) QueueOption {
	return func(q *ElementQueue) { q.jitter = jitter }
}

func WithClock(now func() time.Time) QueueOption {
	return func(q *ElementQueue) { q.now = now }
}

// WithLanes shares the per-element executor with other storage writers.
func WithLanes(lanes *Lanes) QueueOption {
	return func(q *ElementQueue) { q.lanes = lanes }
}

// ElementQueue coalesces bursts of updates per element into one write.
// A flush fires after saveDelay*(1+jitter) and only if no update arrived
// during the last saveDelay; the newer update has its own flush scheduled.
//
// A submit landing while a flush is in flight is merged in memory and then
// dropped with the entry on cleanup. Clients already received it, only the
// durable copy lags until the next update of that element.
//
// Flushes run on the element's lane, so they never overlap other storage
// work submitted for the same element through Serialize.
type ElementQueue struct {
	mu           sync.Mutex
	entries      map[string]*pending
	repository   contract.IElementRepository
	log          *slog.Logger
	saveDelay    time.Duration
	flushTimeout time.Duration
	jitter       func() float64
	now          func() time.Time
	lanes        *Lanes
	timers       map[*time.Timer]struct{}
	flushes      sync.WaitGroup
	closed       bool
}

func NewElementQueue(
	repository contract.IElementRepository,
	log *slog.Logger,
	saveDelay time.Duration,
	flushTimeout time.Duration,
	opts ...QueueOption,
) *ElementQueue {
	q := &ElementQueue{
		entries:      make(map[string]*pending),
		timers:       make(map[*time.Timer]struct{}),
		repository:   repository,
		log:          log,
		saveDelay:    saveDelay,
		flushTimeout: flushTimeout,
		jitter:       defaultJitter,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.lanes == nil {
		q.lanes = NewLanes(log)
	}
	return q
}

// defaultJitter is uniform over [0.2, 4.0]
func defaultJitter() float64 {
	return 0.2 + rand.Float64()*3.8
}

// Submit buffers the fields of an element update and schedules a flush.
// It is ignored while the element carries a tombstone.
func (q *ElementQueue) Submit(ctx context.Context, fields domain.Element) {
	id := fields.ID()
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.log.Warn("Element queue closed, update dropped", "element_id", id)
		return
	}
	entry, ok := q.entries[id]
	switch {
	case ok && entry.tombstone():
		q.mu.Unlock()
		q.log.Debug("Update ignored, element is being deleted", "element_id", id)
		return
	case ok:
		entry.fields = domain.Merge(entry.fields, fields)
		entry.updatedAt = q.now()
	default:
		q.entries[id] = &pending{fields: fields.Clone(), updatedAt: q.now()}
	}
	q.mu.Unlock()

	q.scheduleFlush(ctx, id)
}

// Delete drops any buffered write and leaves a tombstone until DropTombstone.
func (q *ElementQueue) Delete(elementID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries[elementID] = &pending{updatedAt: q.now()}
}

// DropTombstone clears a tombstone left by Delete; buffered writes are kept.
func (q *ElementQueue) DropTombstone(elementID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if entry, ok := q.entries[elementID]; ok && entry.tombstone() {
		delete(q.entries, elementID)
	}
}

func (q *ElementQueue) Exists(elementID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.entries[elementID]
	return ok
}

// Get returns a copy of the buffered fields.
// deleted is true when the element carries a tombstone.
func (q *ElementQueue) Get(elementID string) (fields domain.Element, deleted bool, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	entry, ok := q.entries[elementID]
	if !ok {
		return nil, false, false
	}
	return entry.fields.Clone(), entry.tombstone(), true
}

func (q *ElementQueue) scheduleFlush(ctx context.Context, elementID string) {
	delay := time.Duration(float64(q.saveDelay) * (1 + q.jitter()))

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.flushes.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		q.mu.Lock()
		delete(q.timers, timer)
		q.mu.Unlock()
		q.lanes.Go(elementID, func() {
			defer q.flushes.Done()
			q.flush(context.WithoutCancel(ctx), elementID, false)
		})
	})
	q.timers[timer] = struct{}{}
}

// flush writes the buffered fields on top of the stored record.
// When force is false the attempt is abandoned if a newer update arrived.
func (q *ElementQueue) flush(ctx context.Context, elementID string, force bool) {
	q.mu.Lock()
	entry, ok := q.entries[elementID]
	if !ok || entry.inFlight || entry.tombstone() {
		q.mu.Unlock()
		return
	}
	if !force && entry.updatedAt.After(q.now().Add(-q.saveDelay)) {
		q.mu.Unlock()
		return
	}
	entry.inFlight = true
	buffered := entry.fields.Clone()
	q.mu.Unlock()

	defer q.forget(elementID, entry)

	ctx, cancel := context.WithTimeout(ctx, q.flushTimeout)
	defer cancel()

	stored, _, err := q.repository.Get(ctx, elementID, buffered.Room())
	if err != nil {
		q.log.Error("Element not flushed, read failed", "element_id", elementID, "error", err)
		return
	}
	merged := domain.Merge(stored, buffered)
	if _, ok := merged.Player(); !ok {
		q.log.Warn("Element without player, pending write discarded", "element_id", elementID, "room", merged.Room())
		return
	}
	if err := q.repository.Put(ctx, merged); err != nil {
		q.log.Error("Element not flushed, write failed", "element_id", elementID, "error", err)
		return
	}
	q.log.Debug("Element flushed", "element_id", elementID, "room", merged.Room())
}

// forget removes the flushed entry whatever happened during the flush.
// A tombstone installed meanwhile replaced it and stays.
func (q *ElementQueue) forget(elementID string, flushed *pending) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.entries[elementID] == flushed {
		delete(q.entries, elementID)
	}
}

// Serialize runs task after the storage work already queued for the element.
func (q *ElementQueue) Serialize(elementID string, task func()) {
	q.lanes.Go(elementID, task)
}

// Close cancels the scheduled flushes and writes every buffered entry
// right away. Flushes and serialized tasks already queued are awaited
// until ctx is done. Submits after Close are dropped.
func (q *ElementQueue) Close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	for timer := range q.timers {
		if timer.Stop() {
			q.flushes.Done()
		}
	}
	clear(q.timers)
	ids := make([]string, 0, len(q.entries))
	for id, entry := range q.entries {
		if !entry.tombstone() && !entry.inFlight {
			ids = append(ids, id)
		}
	}
	q.mu.Unlock()

	for _, id := range ids {
		q.flushes.Add(1)
		q.lanes.Go(id, func() {
			defer q.flushes.Done()
			q.flush(ctx, id, true)
		})
	}

	done := make(chan struct{})
	go func() {
		q.flushes.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return q.lanes.Wait(ctx)
}

// Len is the number of buffered entries, tombstones included.
func (q *ElementQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

package sink

import (
	"board-lab/errors"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Lanes runs tasks one at a time per key, in submission order.
// Different keys run concurrently. A lane goroutine exists only while
// its key has queued work.
type Lanes struct {
	mu    sync.Mutex
	lanes map[string][]func()
	log   *slog.Logger
	// closed when the last lane of a busy period finishes
	idle chan struct{}
}

func NewLanes(log *slog.Logger) *Lanes {
	return &Lanes{lanes: make(map[string][]func()), log: log}
}

// Go queues task behind the earlier tasks of key. It never blocks.
func (l *Lanes) Go(key string, task func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if tasks, running := l.lanes[key]; running {
		l.lanes[key] = append(tasks, task)
		return
	}
	if len(l.lanes) == 0 {
		l.idle = make(chan struct{})
	}
	l.lanes[key] = []func(){task}
	go l.drain(key)
}

func (l *Lanes) drain(key string) {
	for {
		l.mu.Lock()
		tasks := l.lanes[key]
		if len(tasks) == 0 {
			delete(l.lanes, key)
			if len(l.lanes) == 0 {
				close(l.idle)
			}
			l.mu.Unlock()
			return
		}
		task := tasks[0]
		l.lanes[key] = tasks[1:]
		l.mu.Unlock()

		l.run(key, task)
	}
}

func (l *Lanes) run(key string, task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("Lane task panicked", "key", key, "error", fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r))
		}
	}()
	task()
}

// Wait blocks until every lane is idle or ctx is done.
func (l *Lanes) Wait(ctx context.Context) error {
	l.mu.Lock()
	if len(l.lanes) == 0 {
		l.mu.Unlock()
		return nil
	}
	idle := l.idle
	l.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

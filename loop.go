package numbercard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Workiva/go-datastructures/queue"
)

var ErrLoopClosed = errors.New("render loop closed")

const (
	loopQueueHint    = 64
	loopBatchSize    = 64
	loopPollInterval = 100 * time.Millisecond
)

// Loop stands in for the host UI thread. Tasks posted from any goroutine run
// in order on the goroutine driving the loop, and render requests made while
// they run are coalesced so each dirty card renders once per flush.
type Loop struct {
	tasks *queue.Queue

	mu      sync.Mutex
	pending []Updater
	queued  map[Updater]struct{}
}

func NewLoop() *Loop {
	return &Loop{
		tasks:  queue.New(loopQueueHint),
		queued: map[Updater]struct{}{},
	}
}

// Schedule records a render request. Repeated requests before the next
// Flush are dropped.
func (l *Loop) Schedule(u Updater) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.queued[u]; ok {
		return
	}
	l.queued[u] = struct{}{}
	l.pending = append(l.pending, u)
}

// Post queues fn to run on the loop goroutine. Safe for concurrent use.
func (l *Loop) Post(fn func()) error {
	if err := l.tasks.Put(fn); err != nil {
		if errors.Is(err, queue.ErrDisposed) {
			return ErrLoopClosed
		}
		return fmt.Errorf("failed to post task: %w", err)
	}
	return nil
}

// Pending returns the number of renders waiting for the next Flush.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Flush renders every card scheduled since the last flush, in request order.
// Renders requested during the flush wait for the next one.
func (l *Loop) Flush() int {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.queued = map[Updater]struct{}{}
	l.mu.Unlock()

	for _, u := range batch {
		u.Update()
	}
	return len(batch)
}

// RunPending runs the tasks already queued without blocking.
func (l *Loop) RunPending() int {
	n := l.tasks.Len()
	if n == 0 {
		return 0
	}
	items, err := l.tasks.Get(n)
	if err != nil {
		return 0
	}
	runTasks(items)
	return len(items)
}

// Tick runs queued tasks and then flushes renders.
func (l *Loop) Tick() {
	l.RunPending()
	l.Flush()
}

// Run drives the loop until ctx is done or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		l.Close()
	}()

	for {
		items, err := l.tasks.Poll(loopBatchSize, loopPollInterval)
		switch {
		case errors.Is(err, queue.ErrTimeout):
			// Renders scheduled outside a task, or during the last flush.
			if l.Pending() > 0 {
				l.Flush()
			}
			continue
		case errors.Is(err, queue.ErrDisposed):
			if ctxErr := ctx.Err(); ctxErr != nil {
				slog.Info("Render loop stopped", "reason", ctxErr)
				return ctxErr
			}
			return ErrLoopClosed
		case err != nil:
			return fmt.Errorf("render loop: %w", err)
		}

		runTasks(items)
		if n := l.Flush(); n > 0 {
			slog.Debug("Flushed renders", "cards", n)
		}
	}
}

// Close stops the loop. Posting afterwards fails with ErrLoopClosed.
func (l *Loop) Close() {
	if !l.tasks.Disposed() {
		l.tasks.Dispose()
	}
}

func runTasks(items []interface{}) {
	for _, item := range items {
		fn, ok := item.(func())
		if !ok {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Loop task panicked", "panic", r)
				}
			}()
			fn()
		}()
	}
}

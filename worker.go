package storefront

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrQueueClosed is returned by Submit after Shutdown.
var ErrQueueClosed = errors.New("mutation queue closed")

// MutationQueue runs submitted mutations one at a time, in submission order, on a single worker.
type MutationQueue struct {
	mu     sync.RWMutex
	closed bool
	tasks  chan func()
	done   chan struct{}
	logger *zap.Logger
}

func NewMutationQueue(size int, logger *zap.Logger) *MutationQueue {
	if size < 0 {
		size = 0
	}
	q := &MutationQueue{
		tasks:  make(chan func(), size),
		done:   make(chan struct{}),
		logger: logger,
	}

	go q.worker()

	return q
}

func (q *MutationQueue) worker() {
	defer close(q.done)
	for task := range q.tasks {
		task()
	}
}

// Submit enqueues fn and blocks until it has run. A mutation whose ctx is done before it
// reaches the worker is skipped and Submit returns the context error.
func (q *MutationQueue) Submit(ctx context.Context, fn func(ctx context.Context)) error {
	var runErr error
	finished := make(chan struct{})

	task := func() {
		defer close(finished)
		defer func() {
			if p := recover(); p != nil {
				q.logger.Error("panic in cart mutation", zap.Any("panic", p))
				runErr = errors.New("cart mutation panicked")
			}
		}()

		if err := ctx.Err(); err != nil {
			runErr = err
			return
		}
		fn(ctx)
	}

	if err := q.enqueue(ctx, task); err != nil {
		return err
	}

	<-finished
	return runErr
}

func (q *MutationQueue) enqueue(ctx context.Context, task func()) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting mutations and waits for queued ones to finish.
func (q *MutationQueue) Shutdown() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()

	<-q.done
}

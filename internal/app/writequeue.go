package app

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// writeQueue serializes background persistence writes per key, so that two
// rapid mutations of the same record always commit in issuance order.
// Callers fire and forget: a failed write is logged and the in-memory state
// is left as the source of truth until the next successful write of the key.
type writeQueue struct {
	logger *zap.Logger

	mu     sync.Mutex
	queues map[string][]func(context.Context) error
	active map[string]bool
	wg     sync.WaitGroup
}

func newWriteQueue(logger *zap.Logger) *writeQueue {
	return &writeQueue{
		logger: logger,
		queues: make(map[string][]func(context.Context) error),
		active: make(map[string]bool),
	}
}

// Enqueue schedules op to run after every previously enqueued op for the
// same key. Ops for different keys run independently.
func (q *writeQueue) Enqueue(key string, op func(context.Context) error) {
	q.mu.Lock()
	q.queues[key] = append(q.queues[key], op)
	if !q.active[key] {
		q.active[key] = true
		q.wg.Add(1)
		go q.drain(key)
	}
	q.mu.Unlock()
}

func (q *writeQueue) drain(key string) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		ops := q.queues[key]
		if len(ops) == 0 {
			q.active[key] = false
			q.mu.Unlock()
			return
		}
		op := ops[0]
		q.queues[key] = ops[1:]
		q.mu.Unlock()

		if err := op(context.Background()); err != nil {
			q.logger.Warn("background write failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// Wait blocks until every queued write has completed. Intended for shutdown
// and tests; callers must not enqueue concurrently with Wait.
func (q *writeQueue) Wait() {
	q.wg.Wait()
}

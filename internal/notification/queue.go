package notification

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrQueueFull is returned by MemoryQueue.Enqueue when the buffer is at capacity.
	ErrQueueFull = errors.New("notification queue full")
	// ErrQueueClosed is returned once Close has been called.
	ErrQueueClosed = errors.New("notification queue closed")
)

// Queue hands jobs from request handlers to the delivery workers.
type Queue interface {
	// Enqueue never blocks on delivery.
	Enqueue(ctx context.Context, job Job) error
	// Dequeue blocks until a job is available or ctx is done.
	Dequeue(ctx context.Context) (Job, error)
}

// MemoryQueue is a bounded in-process queue.
type MemoryQueue struct {
	jobs      chan Job
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryQueue creates a queue holding up to size pending jobs.
func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 100
	}
	return &MemoryQueue{jobs: make(chan Job, size), done: make(chan struct{})}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, job Job) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (Job, error) {
	select {
	case job := <-q.jobs:
		return job, nil
	case <-q.done:
		return Job{}, ErrQueueClosed
	case <-ctx.Done():
		return Job{}, ctx.Err()
	}
}

// Len reports the number of pending jobs.
func (q *MemoryQueue) Len() int {
	return len(q.jobs)
}

// Close stops accepting jobs and releases blocked consumers.
func (q *MemoryQueue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
}

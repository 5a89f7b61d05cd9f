package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/listing-admin/internal/notification"
)

// JobDeliverer sends a single notification job.
type JobDeliverer interface {
	Deliver(ctx context.Context, job notification.Job) (string, error)
}

// NotificationWorker drains the notification queue with a fixed pool of goroutines.
// Delivery failures are logged and dropped; they never reach the request that queued the job.
type NotificationWorker struct {
	queue       notification.Queue
	deliverer   JobDeliverer
	logger      *zap.Logger
	workers     int
	sendTimeout time.Duration
	wg          sync.WaitGroup
}

// NewNotificationWorker builds a pool of workers goroutines.
func NewNotificationWorker(queue notification.Queue, deliverer JobDeliverer, logger *zap.Logger, workers int, sendTimeout time.Duration) *NotificationWorker {
	if workers <= 0 {
		workers = 1
	}
	if sendTimeout <= 0 {
		sendTimeout = 30 * time.Second
	}
	return &NotificationWorker{
		queue:       queue,
		deliverer:   deliverer,
		logger:      logger,
		workers:     workers,
		sendTimeout: sendTimeout,
	}
}

// Start launches the pool; workers exit when ctx is cancelled or the queue is closed.
func (w *NotificationWorker) Start(ctx context.Context) {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.run(ctx, i)
	}
	w.logger.Info("notification workers started", zap.Int("workers", w.workers))
}

// Wait blocks until every worker has returned.
func (w *NotificationWorker) Wait() {
	w.wg.Wait()
}

func (w *NotificationWorker) run(ctx context.Context, id int) {
	defer w.wg.Done()
	logger := w.logger.With(zap.Int("worker", id))

	for {
		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, notification.ErrQueueClosed) {
				return
			}
			logger.Warn("dequeue notification failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		w.process(ctx, logger, job)
	}
}

func (w *NotificationWorker) process(ctx context.Context, logger *zap.Logger, job notification.Job) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.sendTimeout)
	defer cancel()

	fields := []zap.Field{
		zap.String("job_id", job.ID),
		zap.String("kind", string(job.Kind)),
		zap.String("to", job.To),
	}
	messageID, err := w.deliverer.Deliver(sendCtx, job)
	switch {
	case errors.Is(err, notification.ErrNotConfigured):
		logger.Warn("email service not configured; skipping send", fields...)
	case err != nil:
		logger.Error("failed to send notification", append(fields, zap.Error(err))...)
	default:
		logger.Info("notification sent", append(fields, zap.String("message_id", messageID))...)
	}
}

package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/listing-admin/internal/notification"
)

type fakeDeliverer struct {
	mu   sync.Mutex
	sent []string
	fail map[string]error
}

func (f *fakeDeliverer) Deliver(_ context.Context, job notification.Job) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[job.To]; err != nil {
		return "", err
	}
	f.sent = append(f.sent, job.To)
	return "<" + job.ID + ">", nil
}

func (f *fakeDeliverer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestNotificationWorker_DrainsQueue(t *testing.T) {
	queue := notification.NewMemoryQueue(10)
	deliverer := &fakeDeliverer{fail: map[string]error{
		"broken@example.com": errors.New("connection reset"),
	}}
	core, logs := observer.New(zapcore.InfoLevel)

	ctx, cancel := context.WithCancel(context.Background())
	w := NewNotificationWorker(queue, deliverer, zap.New(core), 3, time.Second)
	w.Start(ctx)

	for _, to := range []string{"a@example.com", "broken@example.com", "b@example.com"} {
		require.NoError(t, queue.Enqueue(ctx, notification.NewWelcomeJob(to, "F", "L", "pw")))
	}

	assert.Eventually(t, func() bool { return deliverer.count() == 2 }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("failed to send notification").Len() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	w.Wait()
}

func TestNotificationWorker_StopsWhenQueueCloses(t *testing.T) {
	queue := notification.NewMemoryQueue(1)
	w := NewNotificationWorker(queue, &fakeDeliverer{}, zap.NewNop(), 2, time.Second)
	w.Start(context.Background())

	queue.Close()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("workers did not stop after queue close")
	}
}

func TestNotificationWorker_NotConfiguredIsWarning(t *testing.T) {
	queue := notification.NewMemoryQueue(1)
	deliverer := &fakeDeliverer{fail: map[string]error{"a@example.com": notification.ErrNotConfigured}}
	core, logs := observer.New(zapcore.WarnLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w := NewNotificationWorker(queue, deliverer, zap.New(core), 1, time.Second)
	w.Start(ctx)

	require.NoError(t, queue.Enqueue(ctx, notification.NewWelcomeJob("a@example.com", "A", "B", "pw")))
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("email service not configured; skipping send").Len() == 1
	}, time.Second, 10*time.Millisecond)
}

package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/listing-admin/internal/events"
	"github.com/spec-kit/listing-admin/internal/notification"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

type recordingDeliverer struct {
	jobs []notification.Job
	err  error
}

func (r *recordingDeliverer) Deliver(_ context.Context, job notification.Job) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.jobs = append(r.jobs, job)
	return "<" + job.ID + "@listing-admin>", nil
}

func TestSendTestEmail(t *testing.T) {
	deliverer := &recordingDeliverer{}
	svc := NewNotificationService(nil, notification.NewMemoryQueue(1), deliverer, nil)
	ctx := context.Background()

	_, err := svc.SendTestEmail(ctx, " ", "", "")
	requireCode(t, err, apperrors.CodeValidation, http.StatusBadRequest, MsgTestEmailRequired)

	id, err := svc.SendTestEmail(ctx, "qa@example.com", "", "")
	require.NoError(t, err)
	require.Len(t, deliverer.jobs, 1)
	assert.Equal(t, "<"+deliverer.jobs[0].ID+"@listing-admin>", id)
	assert.Equal(t, "Test", deliverer.jobs[0].FirstName)
	assert.Equal(t, "User", deliverer.jobs[0].LastName)
	assert.Equal(t, "TestPassword123!", deliverer.jobs[0].TempPassword)

	deliverer.err = notification.ErrNotConfigured
	_, err = svc.SendTestEmail(ctx, "qa@example.com", "Q", "A")
	requireCode(t, err, apperrors.CodeInternal, http.StatusInternalServerError, MsgTestEmailFailed)
	assert.ErrorIs(t, err, notification.ErrNotConfigured)
}

func TestNotificationService_FullQueueDoesNotFailPublisher(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher(zap.New(core))
	queue := notification.NewMemoryQueue(1)
	NewNotificationService(dispatcher, queue, &recordingDeliverer{}, zap.New(core)).RegisterHandlers()

	payload := events.AccountCreatedPayload{Email: "a@example.com", FirstName: "A", LastName: "B", TempPassword: "pw"}
	ctx := context.Background()
	dispatcher.Publish(ctx, events.New(events.EventUserCreated, "USER1", events.Actor{}, payload))
	dispatcher.Publish(ctx, events.New(events.EventStaffCreated, "STF00001", events.Actor{}, payload))

	assert.Equal(t, 1, queue.Len())
	entries := logs.FilterMessage("failed to queue welcome email").All()
	require.Len(t, entries, 1)
	assert.Equal(t, notification.ErrQueueFull.Error(), entries[0].ContextMap()["error"])
}

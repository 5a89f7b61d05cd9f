package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/listing-admin/internal/events"
	"github.com/spec-kit/listing-admin/internal/notification"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

const (
	MsgTestEmailRequired = "Email address is required"
	MsgTestEmailFailed   = "Failed to send test email"

	testEmailFirstName = "Test"
	testEmailLastName  = "User"
	testEmailPassword  = "TestPassword123!"
)

// JobDeliverer renders and sends one notification job.
type JobDeliverer interface {
	Deliver(ctx context.Context, job notification.Job) (string, error)
}

// NotificationService turns account events into queued welcome emails.
type NotificationService struct {
	dispatcher events.Dispatcher
	queue      notification.Queue
	deliverer  JobDeliverer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, queue notification.Queue, deliverer JobDeliverer, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		queue:      queue,
		deliverer:  deliverer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserCreated, n.handleAccountCreated)
	n.dispatcher.Subscribe(events.EventStaffCreated, n.handleAccountCreated)
}

// handleAccountCreated never fails the publishing request: a full or closed queue is only logged.
func (n *NotificationService) handleAccountCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AccountCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected account payload", zap.String("event_type", string(event.Type)))
		return nil
	}

	job := notification.NewWelcomeJob(payload.Email, payload.FirstName, payload.LastName, payload.TempPassword)
	if err := n.queue.Enqueue(ctx, job); err != nil {
		n.logger.Error("failed to queue welcome email",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
			zap.Error(err))
		return nil
	}
	n.logger.Debug("welcome email queued", zap.String("job_id", job.ID), zap.String("entity_id", event.EntityID))
	return nil
}

// SendTestEmail delivers a sample welcome email synchronously and returns its Message-ID.
func (n *NotificationService) SendTestEmail(ctx context.Context, email, firstName, lastName string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperrors.NewValidationError(MsgTestEmailRequired, nil)
	}
	if strings.TrimSpace(firstName) == "" {
		firstName = testEmailFirstName
	}
	if strings.TrimSpace(lastName) == "" {
		lastName = testEmailLastName
	}

	messageID, err := n.deliverer.Deliver(ctx, notification.NewWelcomeJob(email, firstName, lastName, testEmailPassword))
	if err != nil {
		return "", apperrors.NewInternalError(MsgTestEmailFailed, err)
	}
	n.logger.Info("test email sent", zap.String("to", email), zap.String("message_id", messageID))
	return messageID, nil
}

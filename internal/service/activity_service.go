package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/events"
	"github.com/spec-kit/listing-admin/internal/repository"
)

const (
	entityUser  = "user"
	entityStaff = "staff"
)

// ActivityRecorder writes admin events into the activity log.
type ActivityRecorder struct {
	repo   repository.ActivityRepository
	logger *zap.Logger
}

// NewActivityRecorder creates the recorder.
func NewActivityRecorder(repo repository.ActivityRepository, logger *zap.Logger) *ActivityRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityRecorder{repo: repo, logger: logger}
}

// RegisterHandlers subscribes to every admin event.
func (r *ActivityRecorder) RegisterHandlers(dispatcher events.Dispatcher) {
	for _, t := range []events.EventType{
		events.EventUserCreated,
		events.EventUserUpdated,
		events.EventUserDeleted,
		events.EventUserStatusChanged,
		events.EventStaffCreated,
		events.EventStaffStatusChanged,
	} {
		dispatcher.Subscribe(t, r.record)
	}
}

func (r *ActivityRecorder) record(ctx context.Context, event events.Event) error {
	entry := describe(event)
	if event.Actor.StaffCode != "" {
		code := event.Actor.StaffCode
		entry.StaffCode = &code
	}
	if err := r.repo.Create(ctx, &entry); err != nil {
		return fmt.Errorf("record activity %s: %w", event.Type, err)
	}
	return nil
}

func describe(event events.Event) domain.ActivityEntry {
	entry := domain.ActivityEntry{EntityID: event.EntityID}

	switch p := event.Payload.(type) {
	case events.AccountCreatedPayload:
		entry.Details = p.Email
		if p.StaffRole != "" {
			entry.Details = fmt.Sprintf("%s (%s)", p.Email, p.StaffRole)
		}
	case events.AccountPayload:
		entry.Details = p.Email
	case events.StatusChangedPayload:
		entry.Details = fmt.Sprintf("%s -> %s", p.OldStatus, p.NewStatus)
	}

	switch event.Type {
	case events.EventUserCreated:
		entry.Action, entry.EntityType = "Created user", entityUser
	case events.EventUserUpdated:
		entry.Action, entry.EntityType = "Updated user", entityUser
	case events.EventUserDeleted:
		entry.Action, entry.EntityType = "Deleted user", entityUser
	case events.EventUserStatusChanged:
		entry.Action, entry.EntityType = "Changed user status", entityUser
		if p, ok := event.Payload.(events.StatusChangedPayload); ok {
			if p.NewStatus == string(domain.AccountStatusSuspended) {
				entry.Action = "Suspended user"
			} else {
				entry.Action = "Activated user"
			}
		}
	case events.EventStaffCreated:
		entry.Action, entry.EntityType = "Created staff member", entityStaff
	case events.EventStaffStatusChanged:
		entry.Action, entry.EntityType = "Changed staff status", entityStaff
		if p, ok := event.Payload.(events.StatusChangedPayload); ok {
			if p.NewStatus == "Active" {
				entry.Action = "Activated staff member"
			} else {
				entry.Action = "Inactivated staff member"
			}
		}
	default:
		entry.Action = string(event.Type)
	}
	return entry
}

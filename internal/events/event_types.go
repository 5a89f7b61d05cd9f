package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated        EventType = "user_created"
	EventUserUpdated        EventType = "user_updated"
	EventUserDeleted        EventType = "user_deleted"
	EventUserStatusChanged  EventType = "user_status_changed"
	EventStaffCreated       EventType = "staff_created"
	EventStaffStatusChanged EventType = "staff_status_changed"
)

// Actor identifies who triggered an event. StaffCode is empty for unauthenticated callers.
type Actor struct {
	StaffCode string `json:"staff_code,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	EntityID  string    `json:"entity_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, entityID string, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AccountCreatedPayload carries what the welcome email needs. TempPassword never leaves the process.
type AccountCreatedPayload struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	TempPassword string `json:"-"`
	StaffRole    string `json:"staff_role,omitempty"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// AccountPayload names the account an update or delete touched.
type AccountPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

package dto

import (
	"time"

	"github.com/spec-kit/listing-admin/internal/domain"
)

// Activity is one entry of the recent activity feed.
type Activity struct {
	ID         int64     `json:"id"`
	StaffName  string    `json:"staffName"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
	Details    string    `json:"details"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
}

// NewActivities renders activity log entries.
func NewActivities(entries []domain.ActivityEntry) []Activity {
	out := make([]Activity, 0, len(entries))
	for _, e := range entries {
		action := e.Action
		if action == "" {
			action = "Unknown action"
		}
		out = append(out, Activity{
			ID:         e.ID,
			StaffName:  e.StaffName(),
			Action:     action,
			Timestamp:  e.Timestamp,
			Details:    e.Details,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
		})
	}
	return out
}

// TestEmailRequest payload for POST /api/admin/test-email.
type TestEmailRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

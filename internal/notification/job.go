// Package notification queues and delivers account emails outside the request path.
package notification

import (
	"time"

	"github.com/segmentio/ksuid"
)

// Kind selects the template a job renders.
type Kind string

const (
	KindWelcome Kind = "welcome"
)

// Job is one queued email delivery. IDs are KSUIDs so they sort by creation time.
type Job struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"kind"`
	To           string    `json:"to"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	TempPassword string    `json:"temp_password"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewWelcomeJob builds a welcome email job for a freshly created account.
func NewWelcomeJob(to, firstName, lastName, tempPassword string) Job {
	return Job{
		ID:           ksuid.New().String(),
		Kind:         KindWelcome,
		To:           to,
		FirstName:    firstName,
		LastName:     lastName,
		TempPassword: tempPassword,
		CreatedAt:    time.Now().UTC(),
	}
}

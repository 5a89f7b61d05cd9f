package domain

import "time"

// ActivityEntry is one row of the admin activity log.
type ActivityEntry struct {
	ID         int64
	StaffID    *int64
	StaffCode  *string
	FirstName  *string
	LastName   *string
	Email      *string
	Action     string
	Details    string
	EntityType string
	EntityID   string
	Timestamp  time.Time
}

// StaffName returns a display name for the acting staff member.
func (a ActivityEntry) StaffName() string {
	if a.FirstName != nil && a.LastName != nil && *a.FirstName != "" && *a.LastName != "" {
		return *a.FirstName + " " + *a.LastName
	}
	if a.StaffCode != nil && *a.StaffCode != "" {
		return *a.StaffCode
	}
	return "System"
}

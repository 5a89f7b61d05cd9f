package domain

import (
	"strings"
	"time"
)

// Role classifies an Identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleStaff Role = "staff"
)

// IsEndUser reports whether the role may use the user/agent login and self-service.
func (r Role) IsEndUser() bool {
	return r == RoleUser || r == RoleAgent
}

// AccountStatus is the free-text lifecycle state stored on an Identity.
type AccountStatus string

const (
	AccountStatusActive           AccountStatus = "active"
	AccountStatusInactive         AccountStatus = "inactive"
	AccountStatusSuspended        AccountStatus = "suspended"
	AccountStatusKYCPending       AccountStatus = "kyc_pending"
	AccountStatusSuspendedPending AccountStatus = "suspended_pending"
)

// Identity is any platform account: end user, agent or staff.
type Identity struct {
	ID             int64
	UserID         string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	PhoneNo        *string
	Region         *string
	Area           *string
	Gender         Gender
	BirthdayMonth  *int
	BirthdayYear   *int
	AccountStatus  AccountStatus
	Role           Role
	ProfilePicture *string
	LastLogin      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins first and last name.
func (i *Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// IsActive reports whether account_status opens the user/agent activation gate.
func (i *Identity) IsActive() bool {
	return i.AccountStatus == AccountStatusActive
}

// Phone returns the stored phone number or an empty string.
func (i *Identity) Phone() string {
	if i.PhoneNo == nil {
		return ""
	}
	return *i.PhoneNo
}

// ReviewStatusLabel maps a non-active status to the label shown in the review queue.
// Unknown values fall back to "KYC Pending".
func ReviewStatusLabel(status AccountStatus) string {
	lower := strings.ToLower(string(status))
	switch {
	case lower == "":
		return "KYC Pending"
	case lower == "suspended":
		return "Suspended Pending"
	case strings.Contains(lower, "kyc") || lower == "pending":
		return "KYC Pending"
	case strings.Contains(lower, "suspended"):
		return "Suspended Pending"
	case lower == "active":
		return string(status)
	default:
		return "KYC Pending"
	}
}

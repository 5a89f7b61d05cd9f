package dto

import (
	"time"

	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/service"
)

// StaffCreateRequest payload for POST /api/admin/staff.
type StaffCreateRequest struct {
	UserRequest
	StaffRole       string                 `json:"staffRole"`
	IsAdmin         bool                   `json:"isAdmin"`
	AdminPrivileges domain.AdminPrivileges `json:"adminPrivileges"`
}

// Input converts the payload to the service input.
func (r StaffCreateRequest) Input() service.StaffInput {
	return service.StaffInput{
		UserInput:       r.UserRequest.Input(),
		StaffRole:       r.StaffRole,
		IsAdmin:         r.IsAdmin,
		AdminPrivileges: r.AdminPrivileges,
	}
}

// StaffCreated is returned after a staff member is created.
type StaffCreated struct {
	StaffID    string    `json:"staff_id"`
	StaffRole  string    `json:"staff_role"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Region     string    `json:"region"`
	Status     string    `json:"status"`
	DateJoined time.Time `json:"date_joined"`
}

// NewStaffCreated renders a new staff account.
func NewStaffCreated(a *domain.StaffAccount) StaffCreated {
	return StaffCreated{
		StaffID:    a.Membership.StaffCode,
		StaffRole:  a.Membership.StaffRole,
		Name:       a.Identity.FullName(),
		Email:      a.Identity.Email,
		Region:     stringOrBlank(a.Identity.Region),
		Status:     a.Membership.StatusLabel(),
		DateJoined: a.Membership.CreatedAt,
	}
}

// StaffListItem is one row of GET /api/admin/staff.
type StaffListItem struct {
	ID         int64     `json:"id"`
	StaffID    string    `json:"staff_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Region     string    `json:"region"`
	Status     string    `json:"status"`
	Role       string    `json:"role"`
	DateJoined time.Time `json:"date_joined"`
}

// NewStaffList renders a page of staff accounts.
func NewStaffList(accounts []domain.StaffAccount) []StaffListItem {
	out := make([]StaffListItem, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, StaffListItem{
			ID:         a.Membership.ID,
			StaffID:    a.Membership.StaffCode,
			Name:       a.Identity.FullName(),
			Email:      a.Identity.Email,
			Region:     stringOrBlank(a.Identity.Region),
			Status:     a.Membership.StatusLabel(),
			Role:       a.Membership.StaffRole,
			DateJoined: a.Membership.CreatedAt,
		})
	}
	return out
}

// StaffStatusView is returned after a staff status change.
type StaffStatusView struct {
	StaffID string `json:"staff_id"`
	Status  string `json:"status"`
}

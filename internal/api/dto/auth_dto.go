package dto

import (
	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/service"
)

// StaffLoginRequest payload.
type StaffLoginRequest struct {
	StaffID  string `json:"staffId"`
	Password string `json:"password"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest payload for PUT /api/auth/user/profile.
type ProfileUpdateRequest struct {
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	MobilePhone   string      `json:"mobilePhone"`
	Region        string      `json:"region"`
	Area          string      `json:"area"`
	Gender        string      `json:"gender"`
	BirthdayMonth OptionalInt `json:"birthdayMonth"`
	BirthdayYear  OptionalInt `json:"birthdayYear"`
}

// Input converts the payload to the service input.
func (r ProfileUpdateRequest) Input() service.ProfileInput {
	return service.ProfileInput{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		MobilePhone:   r.MobilePhone,
		Region:        r.Region,
		Area:          r.Area,
		Gender:        r.Gender,
		BirthdayMonth: r.BirthdayMonth.Ptr(),
		BirthdayYear:  r.BirthdayYear.Ptr(),
	}
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// LoginResponse is the data block of both login endpoints.
type LoginResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// StaffSession is the public staff view returned on login.
type StaffSession struct {
	ID              int64                  `json:"id"`
	UserID          string                 `json:"userId"`
	Email           string                 `json:"email"`
	FirstName       string                 `json:"firstName"`
	LastName        string                 `json:"lastName"`
	StaffID         string                 `json:"staffId"`
	Role            string                 `json:"role"`
	IsAdmin         bool                   `json:"isAdmin"`
	AdminPrivileges domain.AdminPrivileges `json:"adminPrivileges"`
}

// UserSession is the public user/agent view returned on login.
type UserSession struct {
	ID        int64       `json:"id"`
	UserID    string      `json:"userId"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      domain.Role `json:"role"`
}

// NewLoginResponse renders a login result. Staff logins expose the staff role label as role.
func NewLoginResponse(res *service.LoginResult) LoginResponse {
	id := res.Identity
	if res.Staff != nil {
		var privileges domain.AdminPrivileges
		if res.Staff.IsAdmin() {
			privileges = res.Staff.Privileges
		}
		return LoginResponse{Token: res.Token, User: StaffSession{
			ID:              id.ID,
			UserID:          id.UserID,
			Email:           id.Email,
			FirstName:       id.FirstName,
			LastName:        id.LastName,
			StaffID:         res.Staff.Membership.StaffCode,
			Role:            res.Staff.Membership.StaffRole,
			IsAdmin:         res.Staff.IsAdmin(),
			AdminPrivileges: privileges,
		}}
	}
	return LoginResponse{Token: res.Token, User: UserSession{
		ID:        id.ID,
		UserID:    id.UserID,
		Email:     id.Email,
		FirstName: id.FirstName,
		LastName:  id.LastName,
		Role:      id.Role,
	}}
}

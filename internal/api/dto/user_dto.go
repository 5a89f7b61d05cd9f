package dto

import (
	"time"

	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/identity"
	"github.com/spec-kit/listing-admin/internal/service"
)

// UserRequest is the admin create/update payload.
type UserRequest struct {
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Email         string      `json:"email"`
	MobilePhone   string      `json:"mobilePhone"`
	Region        string      `json:"region"`
	Area          string      `json:"area"`
	Gender        string      `json:"gender"`
	BirthdayMonth OptionalInt `json:"birthdayMonth"`
	BirthdayYear  OptionalInt `json:"birthdayYear"`
}

// Input converts the payload to the service input.
func (r UserRequest) Input() service.UserInput {
	return service.UserInput{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		MobilePhone:   r.MobilePhone,
		Region:        r.Region,
		Area:          r.Area,
		Gender:        r.Gender,
		BirthdayMonth: r.BirthdayMonth.Ptr(),
		BirthdayYear:  r.BirthdayYear.Ptr(),
	}
}

// StatusRequest carries the target status for user and staff status endpoints.
type StatusRequest struct {
	Status string `json:"status"`
}

// UserListItem is one row of GET /api/admin/users.
type UserListItem struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PhoneNo       *string   `json:"phone_no"`
	Region        string    `json:"region"`
	Area          string    `json:"area"`
	AccountStatus string    `json:"account_status"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewUserListItem renders an identity for listings.
func NewUserListItem(u domain.Identity) UserListItem {
	return UserListItem{
		ID:            u.ID,
		UserID:        u.UserID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		PhoneNo:       u.PhoneNo,
		Region:        stringOrBlank(u.Region),
		Area:          stringOrBlank(u.Area),
		AccountStatus: accountStatus(u.AccountStatus),
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt,
	}
}

// NewUserList renders a page of identities.
func NewUserList(users []domain.Identity) []UserListItem {
	out := make([]UserListItem, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserListItem(u))
	}
	return out
}

// UserRecord is returned after admin create and update. Region and area stay null when unset.
type UserRecord struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PhoneNo       *string   `json:"phone_no"`
	Region        *string   `json:"region"`
	Area          *string   `json:"area"`
	AccountStatus string    `json:"account_status"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewUserRecord renders a freshly written identity.
func NewUserRecord(u *domain.Identity) UserRecord {
	return UserRecord{
		ID:            u.ID,
		UserID:        u.UserID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		PhoneNo:       u.PhoneNo,
		Region:        u.Region,
		Area:          u.Area,
		AccountStatus: string(u.AccountStatus),
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt,
	}
}

// ReviewItem is one row of the review queue.
type ReviewItem struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	AccountStatus string    `json:"account_status"`
	DateSubmitted time.Time `json:"date_submitted"`
}

// NewReviewList renders the review queue with status labels.
func NewReviewList(users []domain.Identity) []ReviewItem {
	out := make([]ReviewItem, 0, len(users))
	for _, u := range users {
		out = append(out, ReviewItem{
			ID:            u.ID,
			UserID:        u.UserID,
			Email:         u.Email,
			FirstName:     u.FirstName,
			LastName:      u.LastName,
			AccountStatus: domain.ReviewStatusLabel(u.AccountStatus),
			DateSubmitted: u.CreatedAt,
		})
	}
	return out
}

// UserDetail is the full single-user view with the phone split into calling code and local number.
type UserDetail struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"user_id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PhoneNo       *string   `json:"phone_no"`
	CountryCode   string    `json:"country_code"`
	PhoneNumber   string    `json:"phone_number"`
	Region        string    `json:"region"`
	Area          string    `json:"area"`
	Gender        *string   `json:"gender"`
	BirthdayMonth any       `json:"birthday_month"`
	BirthdayYear  any       `json:"birthday_year"`
	AccountStatus string    `json:"account_status"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewUserDetail renders an identity for the admin detail view.
func NewUserDetail(u *domain.Identity) UserDetail {
	prefix, local := identity.SplitPhone(u.Phone())
	return UserDetail{
		ID:            u.ID,
		UserID:        u.UserID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		PhoneNo:       u.PhoneNo,
		CountryCode:   prefix,
		PhoneNumber:   local,
		Region:        stringOrBlank(u.Region),
		Area:          stringOrBlank(u.Area),
		Gender:        u.Gender.Pointer(),
		BirthdayMonth: intOrBlank(u.BirthdayMonth),
		BirthdayYear:  intOrBlank(u.BirthdayYear),
		AccountStatus: accountStatus(u.AccountStatus),
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt,
	}
}

// Profile is the self-service view; it adds the profile picture to the detail view.
type Profile struct {
	UserDetail
	ProfilePicture *string `json:"profile_picture"`
}

// NewProfile renders the caller's own identity.
func NewProfile(u *domain.Identity) Profile {
	return Profile{UserDetail: NewUserDetail(u), ProfilePicture: u.ProfilePicture}
}

// UserStatusView is returned after a status change.
type UserStatusView struct {
	ID            int64  `json:"id"`
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	AccountStatus string `json:"account_status"`
	Role          string `json:"role"`
}

// NewUserStatusView renders an identity after a status change.
func NewUserStatusView(u *domain.Identity) UserStatusView {
	return UserStatusView{
		ID:            u.ID,
		UserID:        u.UserID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		AccountStatus: string(u.AccountStatus),
		Role:          string(u.Role),
	}
}

func accountStatus(s domain.AccountStatus) string {
	if s == "" {
		return string(domain.AccountStatusActive)
	}
	return string(s)
}

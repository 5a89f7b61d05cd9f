package domain

import "time"

// AdminPrivileges is the opaque privilege document attached to administrators.
type AdminPrivileges map[string]any

// StaffMembership extends a staff Identity with its staff code and activation flag.
type StaffMembership struct {
	ID         int64
	StaffCode  string
	StaffRole  string
	IdentityID int64
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StaffAccount is a staff Identity loaded together with its membership and admin set.
type StaffAccount struct {
	Identity   Identity
	Membership StaffMembership
	// AdminID is nil when no admin privilege set is linked.
	AdminID    *int64
	Privileges AdminPrivileges
}

// IsAdmin reports whether an admin privilege set is attached.
func (s *StaffAccount) IsAdmin() bool {
	return s.AdminID != nil
}

// StatusLabel renders the membership flag for admin listings.
func (m StaffMembership) StatusLabel() string {
	if m.Active {
		return "Active"
	}
	return "Inactive"
}

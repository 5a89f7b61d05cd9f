package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-admin/internal/auth"
	"github.com/spec-kit/listing-admin/internal/config"
	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/events"
	"github.com/spec-kit/listing-admin/internal/identity"
	"github.com/spec-kit/listing-admin/internal/repository"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

const (
	MsgStaffFieldsRequired = "Please provide staffRole, firstName, lastName, email, and mobilePhone"
	MsgStaffStatusInvalid  = `Status must be either "active" or "inactive"`
	MsgStaffNotFound       = "Staff member not found"
)

// BootstrapStaffRole labels the seeded administrator.
const BootstrapStaffRole = "Super Admin"

// FullAdminPrivileges is granted to the bootstrap administrator.
func FullAdminPrivileges() domain.AdminPrivileges {
	return domain.AdminPrivileges{
		"users":      true,
		"staff":      true,
		"dashboard":  true,
		"activities": true,
		"email":      true,
	}
}

// StaffInput is the admin create payload for staff members.
type StaffInput struct {
	UserInput
	StaffRole       string
	IsAdmin         bool
	AdminPrivileges domain.AdminPrivileges
}

// StaffService manages staff members and their admin privilege sets.
type StaffService struct {
	staff      repository.StaffRepository
	users      repository.UserRepository
	hasher     *auth.Hasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// StaffDependencies encapsulates repositories required for staff management.
type StaffDependencies struct {
	StaffRepo  repository.StaffRepository
	UserRepo   repository.UserRepository
	Hasher     *auth.Hasher
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewStaffService constructs the service.
func NewStaffService(_ config.Config, deps StaffDependencies) *StaffService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{
		staff:      deps.StaffRepo,
		users:      deps.UserRepo,
		hasher:     deps.Hasher,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Create registers a staff member with a temporary password that is emailed to them.
func (s *StaffService) Create(ctx context.Context, actor events.Actor, in StaffInput) (*domain.StaffAccount, error) {
	if strings.TrimSpace(in.StaffRole) == "" || blank(in.FirstName, in.LastName, in.Email, in.MobilePhone) {
		return nil, apperrors.NewValidationError(MsgStaffFieldsRequired, nil)
	}
	if err := in.UserInput.validate(); err != nil {
		return nil, err
	}

	tempPassword, err := identity.GeneratePassword(identity.TempPasswordLength)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create staff member", err)
	}
	account, err := s.create(ctx, in, tempPassword)
	if err != nil {
		return nil, err
	}

	s.dispatcher.Publish(ctx, events.New(events.EventStaffCreated, account.Membership.StaffCode, actor, events.AccountCreatedPayload{
		Email:        account.Identity.Email,
		FirstName:    account.Identity.FirstName,
		LastName:     account.Identity.LastName,
		TempPassword: tempPassword,
		StaffRole:    account.Membership.StaffRole,
	}))
	s.logger.Info("staff created",
		zap.String("staff_id", account.Membership.StaffCode),
		zap.Bool("is_admin", account.IsAdmin()),
		zap.String("actor", actor.StaffCode))
	return account, nil
}

func (s *StaffService) create(ctx context.Context, in StaffInput, password string) (*domain.StaffAccount, error) {
	account := &domain.StaffAccount{
		Membership: domain.StaffMembership{StaffRole: strings.TrimSpace(in.StaffRole)},
	}
	in.apply(&account.Identity)
	if err := checkUnique(ctx, s.users, &account.Identity, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create staff member", err)
	}
	account.Identity.PasswordHash = hash
	account.Identity.AccountStatus = domain.AccountStatusActive

	if in.IsAdmin {
		account.Privileges = in.AdminPrivileges
		if account.Privileges == nil {
			account.Privileges = domain.AdminPrivileges{}
		}
	}

	if err := conflictOrInternal(s.staff.Create(ctx, account), "Failed to create staff member"); err != nil {
		return nil, err
	}
	return account, nil
}

// List returns staff members with their membership and admin flag.
func (s *StaffService) List(ctx context.Context, params PageParams) ([]domain.StaffAccount, PageInfo, error) {
	params = params.normalize()
	accounts, total, err := s.staff.List(ctx, repository.StaffFilter{
		Search: params.Search,
		Limit:  params.Limit,
		Offset: params.offset(),
	})
	if err != nil {
		return nil, PageInfo{}, apperrors.NewInternalError("Failed to fetch staff members", err)
	}
	return accounts, newPageInfo(params, total), nil
}

// UpdateStatus activates or inactivates a staff member. The identity status follows the membership flag.
func (s *StaffService) UpdateStatus(ctx context.Context, actor events.Actor, staffCode, status string) (*domain.StaffAccount, error) {
	var active bool
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active":
		active = true
	case "inactive":
	default:
		return nil, apperrors.NewValidationError(MsgStaffStatusInvalid, nil)
	}

	account, err := s.staff.SetActive(ctx, strings.TrimSpace(staffCode), active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound(MsgStaffNotFound, nil)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update staff status", err)
	}

	s.dispatcher.Publish(ctx, events.New(events.EventStaffStatusChanged, account.Membership.StaffCode, actor, events.StatusChangedPayload{
		OldStatus: statusLabel(!active),
		NewStatus: account.Membership.StatusLabel(),
	}))
	return account, nil
}

func statusLabel(active bool) string {
	return domain.StaffMembership{Active: active}.StatusLabel()
}

// EnsureBootstrapAdmin seeds the first administrator when configured and no staff exists yet.
func (s *StaffService) EnsureBootstrapAdmin(ctx context.Context, cfg config.BootstrapConfig) (*domain.StaffAccount, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	count, err := s.staff.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	account, err := s.create(ctx, StaffInput{
		UserInput: UserInput{
			FirstName:   cfg.AdminFirstName,
			LastName:    cfg.AdminLastName,
			Email:       cfg.AdminEmail,
			MobilePhone: cfg.AdminPhone,
		},
		StaffRole:       BootstrapStaffRole,
		IsAdmin:         true,
		AdminPrivileges: FullAdminPrivileges(),
	}, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	s.logger.Info("bootstrap admin created",
		zap.String("staff_id", account.Membership.StaffCode),
		zap.String("email", account.Identity.Email))
	return account, nil
}

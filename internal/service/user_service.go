package service

import (
	"context"
	"errors"
	"net/mail"
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
	MsgUserFieldsRequired = "Please provide all required fields: firstName, lastName, email, mobilePhone"
	MsgInvalidEmail       = "Please provide a valid email address"
	MsgUserStatusInvalid  = `Status must be either "active" or "suspended"`
	MsgUserStatusStaff    = "Staff status is managed through the staff endpoints"
)

// maxUserCodeAttempts bounds regeneration after a user id collision.
const maxUserCodeAttempts = 3

// UserInput is the admin create/update payload for end users.
type UserInput struct {
	FirstName     string
	LastName      string
	Email         string
	MobilePhone   string
	Region        string
	Area          string
	Gender        string
	BirthdayMonth *int
	BirthdayYear  *int
}

func (in UserInput) validate() error {
	if blank(in.FirstName, in.LastName, in.Email, in.MobilePhone) {
		return apperrors.NewValidationError(MsgUserFieldsRequired, nil)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return apperrors.NewValidationError(MsgInvalidEmail, nil)
	}
	return nil
}

// apply copies the editable fields onto identity.
func (in UserInput) apply(identity *domain.Identity) {
	identity.FirstName = strings.TrimSpace(in.FirstName)
	identity.LastName = strings.TrimSpace(in.LastName)
	identity.Email = strings.TrimSpace(in.Email)
	identity.PhoneNo = optional(in.MobilePhone)
	identity.Region = optional(in.Region)
	identity.Area = optional(in.Area)
	identity.Gender = domain.ParseGender(in.Gender)
	identity.BirthdayMonth = in.BirthdayMonth
	identity.BirthdayYear = in.BirthdayYear
}

// UserService implements the admin user management operations.
type UserService struct {
	users      repository.UserRepository
	hasher     *auth.Hasher
	codes      *identity.UserCodeGenerator
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies encapsulates collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     *auth.Hasher
	Codes      *identity.UserCodeGenerator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(_ config.Config, deps UserDependencies) *UserService {
	codes := deps.Codes
	if codes == nil {
		codes = identity.NewUserCodeGenerator()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		hasher:     deps.Hasher,
		codes:      codes,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// List returns end users, newest first.
func (s *UserService) List(ctx context.Context, params PageParams) ([]domain.Identity, PageInfo, error) {
	return s.list(ctx, params, false, "Failed to fetch users")
}

// ListReview returns end users whose account is not active.
func (s *UserService) ListReview(ctx context.Context, params PageParams) ([]domain.Identity, PageInfo, error) {
	return s.list(ctx, params, true, "Failed to fetch review users")
}

func (s *UserService) list(ctx context.Context, params PageParams, review bool, failMsg string) ([]domain.Identity, PageInfo, error) {
	params = params.normalize()
	role := domain.RoleUser
	users, total, err := s.users.List(ctx, repository.UserFilter{
		Role:   &role,
		Search: params.Search,
		Review: review,
		Limit:  params.Limit,
		Offset: params.offset(),
	})
	if err != nil {
		return nil, PageInfo{}, apperrors.NewInternalError(failMsg, err)
	}
	return users, newPageInfo(params, total), nil
}

// Create registers an active end user with a random temporary password and queues the welcome email.
func (s *UserService) Create(ctx context.Context, actor events.Actor, in UserInput) (*domain.Identity, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var created domain.Identity
	in.apply(&created)
	if err := s.ensureUnique(ctx, &created, 0); err != nil {
		return nil, err
	}

	tempPassword, err := identity.GeneratePassword(identity.TempPasswordLength)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create user", err)
	}
	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create user", err)
	}
	created.PasswordHash = hash
	created.Role = domain.RoleUser
	created.AccountStatus = domain.AccountStatusActive

	for attempt := 1; ; attempt++ {
		created.UserID = s.codes.Next()
		err = s.users.Create(ctx, &created)
		if !errors.Is(err, repository.ErrUserCodeTaken) || attempt == maxUserCodeAttempts {
			break
		}
		s.logger.Debug("user id collision, regenerating", zap.String("user_id", created.UserID))
	}
	if err := conflictOrInternal(err, "Failed to create user"); err != nil {
		return nil, err
	}

	s.dispatcher.Publish(ctx, events.New(events.EventUserCreated, created.UserID, actor, events.AccountCreatedPayload{
		Email:        created.Email,
		FirstName:    created.FirstName,
		LastName:     created.LastName,
		TempPassword: tempPassword,
	}))
	s.logger.Info("user created", zap.String("user_id", created.UserID), zap.String("actor", actor.StaffCode))
	return &created, nil
}

// Get loads any identity by its human-facing user id.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.Identity, error) {
	found, err := s.users.GetByUserID(ctx, strings.TrimSpace(userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound(MsgUserNotFound, nil)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch user", err)
	}
	return found, nil
}

// Update rewrites names, email, phone and demographics. Uniqueness excludes the target itself.
func (s *UserService) Update(ctx context.Context, actor events.Actor, userID string, in UserInput) (*domain.Identity, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	target, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	in.apply(target)
	if err := s.ensureUnique(ctx, target, target.ID); err != nil {
		return nil, err
	}

	err = s.users.Update(ctx, target)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound(MsgUserNotFound, nil)
	}
	if err := conflictOrInternal(err, "Failed to update user"); err != nil {
		return nil, err
	}

	s.dispatcher.Publish(ctx, events.New(events.EventUserUpdated, target.UserID, actor, events.AccountPayload{
		Email: target.Email,
		Name:  target.FullName(),
	}))
	return target, nil
}

// Delete removes the identity; staff membership and admin rows cascade.
func (s *UserService) Delete(ctx context.Context, actor events.Actor, userID string) error {
	target, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	err = s.users.Delete(ctx, target.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(MsgUserNotFound, nil)
	}
	if err != nil {
		return apperrors.NewInternalError("Failed to delete user", err)
	}

	s.dispatcher.Publish(ctx, events.New(events.EventUserDeleted, target.UserID, actor, events.AccountPayload{
		Email: target.Email,
		Name:  target.FullName(),
	}))
	s.logger.Info("user deleted", zap.String("user_id", target.UserID), zap.String("actor", actor.StaffCode))
	return nil
}

// UpdateStatus sets account_status to active or suspended.
func (s *UserService) UpdateStatus(ctx context.Context, actor events.Actor, userID, status string) (*domain.Identity, error) {
	next := domain.AccountStatus(status)
	if next != domain.AccountStatusActive && next != domain.AccountStatusSuspended {
		return nil, apperrors.NewValidationError(MsgUserStatusInvalid, nil)
	}
	target, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Staff status mirrors platform_staff.is_active and only StaffService keeps the two in step.
	if !target.Role.IsEndUser() {
		return nil, apperrors.NewValidationError(MsgUserStatusStaff, nil)
	}

	previous := target.AccountStatus
	err = s.users.UpdateStatus(ctx, target.ID, next)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound(MsgUserNotFound, nil)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update user status", err)
	}
	target.AccountStatus = next

	s.dispatcher.Publish(ctx, events.New(events.EventUserStatusChanged, target.UserID, actor, events.StatusChangedPayload{
		OldStatus: string(previous),
		NewStatus: string(next),
	}))
	return target, nil
}

func (s *UserService) ensureUnique(ctx context.Context, candidate *domain.Identity, excludeID int64) error {
	return checkUnique(ctx, s.users, candidate, excludeID)
}

// checkUnique reports email and phone conflicts before a write. The unique indexes still decide races.
func checkUnique(ctx context.Context, users repository.UserRepository, candidate *domain.Identity, excludeID int64) error {
	taken, err := users.EmailTaken(ctx, candidate.Email, excludeID)
	if err != nil {
		return apperrors.NewInternalError("", err)
	}
	if taken {
		return apperrors.NewConflict(MsgEmailExists, nil)
	}
	if phone := candidate.Phone(); phone != "" {
		taken, err = users.PhoneTaken(ctx, phone, excludeID)
		if err != nil {
			return apperrors.NewInternalError("", err)
		}
		if taken {
			return apperrors.NewConflict(MsgPhoneExists, nil)
		}
	}
	return nil
}

func conflictOrInternal(err error, failMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrEmailTaken):
		return apperrors.NewConflict(MsgEmailExists, nil)
	case errors.Is(err, repository.ErrPhoneTaken):
		return apperrors.NewConflict(MsgPhoneExists, nil)
	default:
		return apperrors.NewInternalError(failMsg, err)
	}
}

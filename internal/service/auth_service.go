package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-admin/internal/auth"
	"github.com/spec-kit/listing-admin/internal/config"
	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/repository"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

// Client-facing messages for the login and self-service flows.
const (
	MsgStaffLoginRequired   = "Please provide staff ID and password"
	MsgUserLoginRequired    = "Please provide email and password"
	MsgInvalidStaffLogin    = "Invalid staff ID or password"
	MsgInvalidUserLogin     = "Invalid email or password"
	MsgStaffInactive        = "Staff account is inactive. Please contact administrator."
	MsgAccountInactive      = "Account is inactive. Please contact support."
	MsgLoginFailed          = "Server error. Please try again later."
	MsgUserNotFound         = "User not found"
	MsgProfileRequired      = "Please provide all required fields: firstName, lastName, mobilePhone"
	MsgPhoneExists          = "Mobile phone already exists"
	MsgEmailExists          = "Email already exists"
	MsgPasswordRequired     = "Please provide current password and new password"
	MsgCurrentPasswordWrong = "Current password is incorrect"
	MsgPasswordTooLong      = "New password must be at most 72 bytes long"
)

const lastLoginTimeout = 5 * time.Second

// LoginResult is returned by both login flows.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Claims    *auth.Claims
	Identity  domain.Identity
	// Staff is nil for user/agent logins.
	Staff *domain.StaffAccount
}

// ProfileInput is the self-service profile update.
type ProfileInput struct {
	FirstName     string
	LastName      string
	MobilePhone   string
	Region        string
	Area          string
	Gender        string
	BirthdayMonth *int
	BirthdayYear  *int
}

// AuthService implements staff and user/agent login, token verification and profile self-service.
type AuthService struct {
	users             repository.UserRepository
	staff             repository.StaffRepository
	hasher            *auth.Hasher
	tokens            *auth.TokenManager
	logger            *zap.Logger
	minPasswordLength int
	now               func() time.Time
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	StaffRepo repository.StaffRepository
	Hasher    *auth.Hasher
	Tokens    *auth.TokenManager
	Logger    *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	minLen := cfg.Auth.MinPasswordLength
	if minLen <= 0 {
		minLen = 6
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:             deps.UserRepo,
		staff:             deps.StaffRepo,
		hasher:            deps.Hasher,
		tokens:            deps.Tokens,
		logger:            logger,
		minPasswordLength: minLen,
		now:               time.Now,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// LoginStaff authenticates by staff code. The activation gate is checked before the password.
func (s *AuthService) LoginStaff(ctx context.Context, staffCode, password string) (*LoginResult, error) {
	staffCode = strings.TrimSpace(staffCode)
	if staffCode == "" || password == "" {
		return nil, apperrors.NewValidationError(MsgStaffLoginRequired, nil)
	}

	account, err := s.staff.GetByCode(ctx, staffCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInvalidCredentials(MsgInvalidStaffLogin)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(MsgLoginFailed, err)
	}

	if !account.Membership.Active {
		return nil, apperrors.NewAccountInactive(MsgStaffInactive)
	}
	if !s.hasher.Verify(password, account.Identity.PasswordHash) {
		return nil, apperrors.NewInvalidCredentials(MsgInvalidStaffLogin)
	}

	claims := &auth.Claims{
		UserID:    account.Identity.ID,
		UserCode:  account.Identity.UserID,
		Email:     account.Identity.Email,
		Role:      domain.RoleStaff,
		StaffID:   account.Membership.StaffCode,
		StaffRole: account.Membership.StaffRole,
		IsAdmin:   account.IsAdmin(),
	}
	if account.IsAdmin() {
		claims.AdminPrivileges = account.Privileges
	}

	result, err := s.issue(claims, account.Identity)
	if err != nil {
		return nil, err
	}
	result.Staff = account
	s.recordLastLogin(ctx, account.Identity.ID)

	s.logger.Info("staff login", zap.String("staff_id", account.Membership.StaffCode), zap.Bool("is_admin", claims.IsAdmin))
	return result, nil
}

// LoginUser authenticates a user or agent by email. Unknown email and wrong password share one message;
// a non-active account is reported distinctly before the password is checked.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError(MsgUserLoginRequired, nil)
	}

	identity, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInvalidCredentials(MsgInvalidUserLogin)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(MsgLoginFailed, err)
	}
	if !identity.Role.IsEndUser() {
		return nil, apperrors.NewInvalidCredentials(MsgInvalidUserLogin)
	}

	if !identity.IsActive() {
		return nil, apperrors.NewAccountInactive(MsgAccountInactive)
	}
	if !s.hasher.Verify(password, identity.PasswordHash) {
		return nil, apperrors.NewInvalidCredentials(MsgInvalidUserLogin)
	}

	claims := &auth.Claims{
		UserID:   identity.ID,
		UserCode: identity.UserID,
		Email:    identity.Email,
		Role:     identity.Role,
	}
	result, err := s.issue(claims, *identity)
	if err != nil {
		return nil, err
	}
	s.recordLastLogin(ctx, identity.ID)
	return result, nil
}

func (s *AuthService) issue(claims *auth.Claims, identity domain.Identity) (*LoginResult, error) {
	token, exp, err := s.tokens.Issue(*claims)
	if err != nil {
		return nil, apperrors.NewInternalError(MsgLoginFailed, err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, Claims: claims, Identity: identity}, nil
}

// recordLastLogin runs detached from the request; failures are only logged.
func (s *AuthService) recordLastLogin(ctx context.Context, id int64) {
	at := s.now().UTC()
	bg := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(bg, lastLoginTimeout)
		defer cancel()
		if err := s.users.TouchLastLogin(ctx, id, at); err != nil {
			s.logger.Warn("failed to record last login", zap.Int64("identity_id", id), zap.Error(err))
		}
	}()
}

// VerifyToken returns the decoded claims. Every failure maps to the same 401 message.
func (s *AuthService) VerifyToken(token string) (*auth.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized(auth.MsgInvalidToken)
	}
	return claims, nil
}

// GetProfile loads the caller's own user/agent identity.
func (s *AuthService) GetProfile(ctx context.Context, claims *auth.Claims) (*domain.Identity, error) {
	if claims == nil {
		return nil, apperrors.NewUnauthorized(auth.MsgNoToken)
	}
	identity, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound(MsgUserNotFound, nil)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch user profile", err)
	}
	if !identity.Role.IsEndUser() {
		return nil, apperrors.NewNotFound(MsgUserNotFound, nil)
	}
	return identity, nil
}

// UpdateProfile changes the caller's names, phone and demographics. Email cannot change here.
func (s *AuthService) UpdateProfile(ctx context.Context, claims *auth.Claims, in ProfileInput) (*domain.Identity, error) {
	if blank(in.FirstName, in.LastName, in.MobilePhone) {
		return nil, apperrors.NewValidationError(MsgProfileRequired, nil)
	}

	identity, err := s.GetProfile(ctx, claims)
	if err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(in.MobilePhone)
	taken, err := s.users.PhoneTaken(ctx, phone, identity.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to update profile", err)
	}
	if taken {
		return nil, apperrors.NewConflict(MsgPhoneExists, nil)
	}

	identity.FirstName = strings.TrimSpace(in.FirstName)
	identity.LastName = strings.TrimSpace(in.LastName)
	identity.PhoneNo = &phone
	identity.Region = optional(in.Region)
	identity.Area = optional(in.Area)
	identity.Gender = domain.ParseGender(in.Gender)
	identity.BirthdayMonth = in.BirthdayMonth
	identity.BirthdayYear = in.BirthdayYear

	switch err := s.users.UpdateProfile(ctx, identity); {
	case errors.Is(err, repository.ErrPhoneTaken):
		return nil, apperrors.NewConflict(MsgPhoneExists, nil)
	case errors.Is(err, pgx.ErrNoRows):
		return nil, apperrors.NewNotFound(MsgUserNotFound, nil)
	case err != nil:
		return nil, apperrors.NewInternalError("Failed to update profile", err)
	}
	return identity, nil
}

// ChangePassword re-verifies the current password before storing a hash of the new one.
func (s *AuthService) ChangePassword(ctx context.Context, claims *auth.Claims, current, next string) error {
	if current == "" || next == "" {
		return apperrors.NewValidationError(MsgPasswordRequired, nil)
	}
	if utf8.RuneCountInString(next) < s.minPasswordLength {
		return apperrors.NewValidationError(minLengthMessage(s.minPasswordLength), nil)
	}
	if len(next) > auth.MaxPasswordBytes {
		return apperrors.NewValidationError(MsgPasswordTooLong, nil)
	}

	identity, err := s.GetProfile(ctx, claims)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(current, identity.PasswordHash) {
		return apperrors.NewInvalidCredentials(MsgCurrentPasswordWrong)
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return apperrors.NewInternalError("Failed to change password", err)
	}
	if err := s.users.UpdatePassword(ctx, identity.ID, hash); err != nil {
		return apperrors.NewInternalError("Failed to change password", err)
	}
	s.logger.Info("password changed", zap.String("user_id", identity.UserID))
	return nil
}

func minLengthMessage(n int) string {
	return fmt.Sprintf("New password must be at least %d characters long", n)
}

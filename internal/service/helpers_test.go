package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/listing-admin/internal/auth"
	"github.com/spec-kit/listing-admin/internal/config"
	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/events"
	"github.com/spec-kit/listing-admin/internal/notification"
	"github.com/spec-kit/listing-admin/internal/repository/mocks"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

type fixture struct {
	store    *mocks.Store
	hasher   *auth.Hasher
	tokens   *auth.TokenManager
	queue    *notification.MemoryQueue
	events   events.Dispatcher
	auth     *AuthService
	users    *UserService
	staff    *StaffService
	activity *ActivityRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Config{Auth: config.AuthConfig{MinPasswordLength: 6}}

	f := &fixture{
		store:  mocks.NewStore(),
		hasher: auth.NewHasher(bcrypt.MinCost),
		tokens: auth.NewTokenManager("test-secret", time.Hour),
		queue:  notification.NewMemoryQueue(10),
		events: events.NewInMemoryDispatcher(nil),
	}
	f.auth = NewAuthService(cfg, AuthDependencies{
		UserRepo:  f.store.Users,
		StaffRepo: f.store.Staff,
		Hasher:    f.hasher,
		Tokens:    f.tokens,
	})
	f.users = NewUserService(cfg, UserDependencies{
		UserRepo:   f.store.Users,
		Hasher:     f.hasher,
		Dispatcher: f.events,
	})
	f.staff = NewStaffService(cfg, StaffDependencies{
		StaffRepo:  f.store.Staff,
		UserRepo:   f.store.Users,
		Hasher:     f.hasher,
		Dispatcher: f.events,
	})
	f.activity = NewActivityRecorder(f.store.Activity, nil)
	f.activity.RegisterHandlers(f.events)
	NewNotificationService(f.events, f.queue, nil, nil).RegisterHandlers()
	return f
}

// seedUser stores an identity directly with a known password.
func (f *fixture) seedUser(t *testing.T, email, password string, role domain.Role, status domain.AccountStatus) *domain.Identity {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	phone := "+6012" + email[:3]
	identity := &domain.Identity{
		UserID:        "USER" + email,
		Email:         email,
		PasswordHash:  hash,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		PhoneNo:       &phone,
		Role:          role,
		AccountStatus: status,
	}
	require.NoError(t, f.store.Users.Create(context.Background(), identity))
	return identity
}

// nextWelcome pops the next queued welcome job.
func (f *fixture) nextWelcome(t *testing.T) notification.Job {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	job, err := f.queue.Dequeue(ctx)
	require.NoError(t, err)
	return job
}

func requireCode(t *testing.T, err error, code string, status int, message string) {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, code, de.Code, "unexpected error: %v", err)
	require.Equal(t, status, de.HTTPStatus)
	if message != "" {
		require.Equal(t, message, de.Message)
	}
}

func intPtr(v int) *int {
	return &v
}

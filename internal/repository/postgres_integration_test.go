package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/persistence"
	"github.com/spec-kit/listing-admin/internal/repository"
	"github.com/spec-kit/listing-admin/migrations"
)

// openTestPool connects to TEST_POSTGRES_DSN, applies migrations and empties the account tables.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pool, migrations.FS, zap.NewNop()))
	_, err = pool.Exec(ctx, `TRUNCATE activity_log, admin, platform_staff, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func newIdentity(userID, email, phone string, role domain.Role, status domain.AccountStatus) *domain.Identity {
	return &domain.Identity{
		UserID:        userID,
		Email:         email,
		PasswordHash:  "$2a$10$placeholder",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		PhoneNo:       &phone,
		Role:          role,
		AccountStatus: status,
	}
}

func TestPostgresUserRepository(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	users := repository.NewUserRepository(pool)

	ada := newIdentity("USER1", "Ada@Example.com", "+60111", domain.RoleUser, domain.AccountStatusActive)
	require.NoError(t, users.Create(ctx, ada))

	found, err := users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, found.ID)

	taken, err := users.EmailTaken(ctx, "ADA@example.com", 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = users.EmailTaken(ctx, "ada@example.com", ada.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	err = users.Create(ctx, newIdentity("USER2", "ada@example.com", "+60222", domain.RoleUser, domain.AccountStatusActive))
	assert.ErrorIs(t, err, repository.ErrEmailTaken)
	err = users.Create(ctx, newIdentity("USER3", "bob@example.com", "+60111", domain.RoleUser, domain.AccountStatusActive))
	assert.ErrorIs(t, err, repository.ErrPhoneTaken)

	require.NoError(t, users.Create(ctx, newIdentity("USER4", "bob@example.com", "+60444", domain.RoleUser, domain.AccountStatusSuspended)))
	require.NoError(t, users.Create(ctx, newIdentity("USER5", "agent@example.com", "+60555", domain.RoleAgent, domain.AccountStatusActive)))

	role := domain.RoleUser
	list, total, err := users.List(ctx, repository.UserFilter{Role: &role, Limit: 100_000_000})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, list, 2)

	list, total, err = users.List(ctx, repository.UserFilter{Review: true, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "USER4", list[0].UserID)

	list, total, err = users.List(ctx, repository.UserFilter{Search: "AGENT@", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, domain.RoleAgent, list[0].Role)
}

func TestPostgresStaffRepository(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	staff := repository.NewStaffRepository(pool)

	const creators = 5
	var wg sync.WaitGroup
	errs := make(chan error, creators)
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			account := &domain.StaffAccount{
				Identity: *newIdentity("", fmt.Sprintf("staff%d@example.com", i), fmt.Sprintf("+6090%d", i),
					domain.RoleStaff, domain.AccountStatusActive),
				Membership: domain.StaffMembership{StaffRole: "Listing Reviewer"},
			}
			if i == 0 {
				account.Privileges = domain.AdminPrivileges{"users": true}
			}
			errs <- staff.Create(ctx, account)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	accounts, total, err := staff.List(ctx, repository.StaffFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, creators, total)
	codes := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		codes[a.Membership.StaffCode] = true
		assert.Equal(t, a.Membership.StaffCode, a.Identity.UserID)
	}
	for i := 1; i <= creators; i++ {
		assert.True(t, codes[fmt.Sprintf("STF%05d", i)], "missing STF%05d", i)
	}

	account, err := staff.SetActive(ctx, "STF00003", false)
	require.NoError(t, err)
	assert.False(t, account.Membership.Active)
	assert.Equal(t, domain.AccountStatusInactive, account.Identity.AccountStatus)

	account, err = staff.SetActive(ctx, "STF00003", true)
	require.NoError(t, err)
	assert.True(t, account.Membership.Active)
	assert.Equal(t, domain.AccountStatusActive, account.Identity.AccountStatus)

	stored, err := staff.GetByCode(ctx, "STF00003")
	require.NoError(t, err)
	assert.True(t, stored.Membership.Active)
	assert.Equal(t, domain.AccountStatusActive, stored.Identity.AccountStatus)

	_, err = staff.SetActive(ctx, "STF00042", true)
	assert.Error(t, err)
}

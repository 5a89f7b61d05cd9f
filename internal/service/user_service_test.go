package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/events"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

var admin = events.Actor{StaffCode: "STF00001", Email: "root@example.com"}

func validUser(email, phone string) UserInput {
	return UserInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       email,
		MobilePhone: phone,
		Region:      "Selangor",
		Gender:      "Female",
	}
}

func TestUserService_CreateQueuesWelcomeEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.users.Create(ctx, admin, validUser("ada@example.com", "+60123456789"))
	require.NoError(t, err)
	assert.Regexp(t, `^USER\d+$`, created.UserID)
	assert.Equal(t, domain.RoleUser, created.Role)
	assert.Equal(t, domain.AccountStatusActive, created.AccountStatus)
	assert.Equal(t, "Selangor", *created.Region)

	job := f.nextWelcome(t)
	assert.Equal(t, "ada@example.com", job.To)
	assert.Len(t, job.TempPassword, 12)
	assert.True(t, f.hasher.Verify(job.TempPassword, created.PasswordHash))

	res, err := f.auth.LoginUser(ctx, "ada@example.com", job.TempPassword)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, res.Identity.UserID)

	entries := f.store.ActivityEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Created user", entries[0].Action)
	assert.Equal(t, created.UserID, entries[0].EntityID)
}

func TestUserService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.users.Create(ctx, admin, validUser("ada@example.com", "+60111"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      UserInput
		code    string
		message string
	}{
		{"missing phone", validUser("x@example.com", " "), apperrors.CodeValidation, MsgUserFieldsRequired},
		{"malformed email", validUser("not-an-email", "+60222"), apperrors.CodeValidation, MsgInvalidEmail},
		{"duplicate email", validUser("ada@example.com", "+60333"), apperrors.CodeConflict, MsgEmailExists},
		{"duplicate phone", validUser("new@example.com", "+60111"), apperrors.CodeConflict, MsgPhoneExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.Create(ctx, admin, tt.in)
			requireCode(t, err, tt.code, http.StatusBadRequest, tt.message)
		})
	}
	assert.Equal(t, 1, f.queue.Len())
}

func TestUserService_ListAndReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "ada@example.com", "pw1234", domain.RoleUser, domain.AccountStatusActive)
	f.seedUser(t, "bob@example.com", "pw1234", domain.RoleUser, domain.AccountStatusKYCPending)
	f.seedUser(t, "cat@example.com", "pw1234", domain.RoleUser, domain.AccountStatusSuspended)
	f.seedUser(t, "dan@example.com", "pw1234", domain.RoleAgent, domain.AccountStatusActive)

	users, page, err := f.users.List(ctx, PageParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, PageInfo{Page: 1, Limit: 2, Total: 3, TotalPages: 2}, page)

	users, page, err = f.users.List(ctx, PageParams{Search: "BOB"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob@example.com", users[0].Email)
	assert.Equal(t, 10, page.Limit)

	review, page, err := f.users.ListReview(ctx, PageParams{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	for _, u := range review {
		assert.NotEqual(t, domain.AccountStatusActive, u.AccountStatus)
	}

	f.store.SetFailNext(errors.New("connection refused"))
	_, _, err = f.users.List(ctx, PageParams{})
	requireCode(t, err, apperrors.CodeInternal, http.StatusInternalServerError, "Failed to fetch users")
}

func TestUserService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada, err := f.users.Create(ctx, admin, validUser("ada@example.com", "+60111"))
	require.NoError(t, err)
	_, err = f.users.Create(ctx, admin, validUser("bob@example.com", "+60222"))
	require.NoError(t, err)

	_, err = f.users.Update(ctx, admin, ada.UserID, validUser("bob@example.com", "+60111"))
	requireCode(t, err, apperrors.CodeConflict, http.StatusBadRequest, MsgEmailExists)

	in := validUser("ada@example.com", "+60111")
	in.LastName = "King"
	in.Region = ""
	updated, err := f.users.Update(ctx, admin, ada.UserID, in)
	require.NoError(t, err)
	assert.Equal(t, "King", updated.LastName)
	assert.Nil(t, updated.Region)

	_, err = f.users.Update(ctx, admin, "USER0", in)
	requireCode(t, err, apperrors.CodeNotFound, http.StatusNotFound, MsgUserNotFound)

	require.NoError(t, f.users.Delete(ctx, admin, ada.UserID))
	_, err = f.users.Get(ctx, ada.UserID)
	requireCode(t, err, apperrors.CodeNotFound, http.StatusNotFound, MsgUserNotFound)

	err = f.users.Delete(ctx, admin, ada.UserID)
	requireCode(t, err, apperrors.CodeNotFound, http.StatusNotFound, MsgUserNotFound)

	var actions []string
	for _, e := range f.store.ActivityEntries() {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []string{"Created user", "Created user", "Updated user", "Deleted user"}, actions)
}

func TestUserService_SuspendBlocksLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.seedUser(t, "ada@example.com", "s3cret!", domain.RoleUser, domain.AccountStatusActive)

	_, err := f.users.UpdateStatus(ctx, admin, ada.UserID, "banned")
	requireCode(t, err, apperrors.CodeValidation, http.StatusBadRequest, MsgUserStatusInvalid)

	updated, err := f.users.UpdateStatus(ctx, admin, ada.UserID, "suspended")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatusSuspended, updated.AccountStatus)

	_, err = f.auth.LoginUser(ctx, "ada@example.com", "s3cret!")
	requireCode(t, err, apperrors.CodeAccountInactive, http.StatusForbidden, MsgAccountInactive)

	_, err = f.users.UpdateStatus(ctx, admin, ada.UserID, "active")
	require.NoError(t, err)
	_, err = f.auth.LoginUser(ctx, "ada@example.com", "s3cret!")
	require.NoError(t, err)

	entries := f.store.ActivityEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Suspended user", entries[0].Action)
	assert.Equal(t, "active -> suspended", entries[0].Details)
	assert.Equal(t, "Activated user", entries[1].Action)
}

func TestUserService_UpdateStatusRejectsStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.staff.create(ctx, validStaff("one@example.com", "+60111"), "staffpw")
	require.NoError(t, err)

	_, err = f.users.UpdateStatus(ctx, admin, "STF00001", "suspended")
	requireCode(t, err, apperrors.CodeValidation, http.StatusBadRequest, MsgUserStatusStaff)

	stored, _ := f.store.Identity(created.Identity.ID)
	assert.Equal(t, domain.AccountStatusActive, stored.AccountStatus)
	membership, err := f.store.Staff.GetByCode(ctx, "STF00001")
	require.NoError(t, err)
	assert.True(t, membership.Membership.Active)

	_, err = f.auth.LoginStaff(ctx, "STF00001", "staffpw")
	require.NoError(t, err)
	assert.Empty(t, f.store.ActivityEntries())
}

func TestUserService_EmailIgnoresCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.users.Create(ctx, admin, validUser("Ada@Example.com", "+60111"))
	require.NoError(t, err)
	job := f.nextWelcome(t)

	_, err = f.users.Create(ctx, admin, validUser("ada@example.com", "+60222"))
	requireCode(t, err, apperrors.CodeConflict, http.StatusBadRequest, MsgEmailExists)

	res, err := f.auth.LoginUser(ctx, "ADA@example.COM", job.TempPassword)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, res.Identity.UserID)
	assert.Equal(t, "Ada@Example.com", res.Identity.Email)
}

func TestPageParams_Normalize(t *testing.T) {
	p := PageParams{Page: -3, Limit: 0, Search: "  ada "}.normalize()
	assert.Equal(t, PageParams{Page: 1, Limit: 10, Search: "ada"}, p)

	p = PageParams{Page: 2, Limit: 100_000_000}.normalize()
	assert.Equal(t, MaxPageLimit, p.Limit)
	assert.Equal(t, MaxPageLimit, p.offset())

	f := newFixture(t)
	f.seedUser(t, "ada@example.com", "pw1234", domain.RoleUser, domain.AccountStatusActive)
	users, page, err := f.users.List(context.Background(), PageParams{Limit: 100_000_000})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, MaxPageLimit, page.Limit)
	assert.Equal(t, 1, page.TotalPages)
}

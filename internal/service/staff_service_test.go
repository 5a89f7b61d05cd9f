package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/listing-admin/internal/config"
	"github.com/spec-kit/listing-admin/internal/domain"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

func validStaff(email, phone string) StaffInput {
	return StaffInput{UserInput: validUser(email, phone), StaffRole: "Listing Reviewer"}
}

func TestStaffService_CreateAssignsSequentialCodes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.staff.Create(ctx, admin, validStaff("one@example.com", "+60111"))
	require.NoError(t, err)
	in := validStaff("two@example.com", "+60222")
	in.IsAdmin = true
	second, err := f.staff.Create(ctx, admin, in)
	require.NoError(t, err)

	assert.Equal(t, "STF00001", first.Membership.StaffCode)
	assert.Equal(t, "STF00001", first.Identity.UserID)
	assert.Equal(t, domain.RoleStaff, first.Identity.Role)
	assert.True(t, first.Membership.Active)
	assert.False(t, first.IsAdmin())

	assert.Equal(t, "STF00002", second.Membership.StaffCode)
	assert.True(t, second.IsAdmin())
	assert.NotNil(t, second.Privileges)

	job := f.nextWelcome(t)
	assert.Equal(t, "one@example.com", job.To)
	res, err := f.auth.LoginStaff(ctx, "STF00001", job.TempPassword)
	require.NoError(t, err)
	assert.Equal(t, "Listing Reviewer", res.Claims.StaffRole)

	entries := f.store.ActivityEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Created staff member", entries[0].Action)
	assert.Equal(t, "one@example.com (Listing Reviewer)", entries[0].Details)
	assert.Equal(t, "staff", entries[0].EntityType)
}

func TestStaffService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, "ada@example.com", "pw1234", domain.RoleUser, domain.AccountStatusActive)

	in := validStaff("x@example.com", "+60999")
	in.StaffRole = ""
	_, err := f.staff.Create(ctx, admin, in)
	requireCode(t, err, apperrors.CodeValidation, http.StatusBadRequest, MsgStaffFieldsRequired)

	_, err = f.staff.Create(ctx, admin, validStaff("ada@example.com", "+60999"))
	requireCode(t, err, apperrors.CodeConflict, http.StatusBadRequest, MsgEmailExists)

	count, err := f.store.Staff.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStaffService_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.staff.create(ctx, validStaff("one@example.com", "+60111"), "staffpw")
	require.NoError(t, err)

	_, err = f.staff.UpdateStatus(ctx, admin, "STF00001", "paused")
	requireCode(t, err, apperrors.CodeValidation, http.StatusBadRequest, MsgStaffStatusInvalid)

	_, err = f.staff.UpdateStatus(ctx, admin, "STF00042", "active")
	requireCode(t, err, apperrors.CodeNotFound, http.StatusNotFound, MsgStaffNotFound)

	account, err := f.staff.UpdateStatus(ctx, admin, "STF00001", "INACTIVE")
	require.NoError(t, err)
	assert.False(t, account.Membership.Active)
	stored, _ := f.store.Identity(created.Identity.ID)
	assert.Equal(t, domain.AccountStatusInactive, stored.AccountStatus)

	_, err = f.auth.LoginStaff(ctx, "STF00001", "staffpw")
	requireCode(t, err, apperrors.CodeAccountInactive, http.StatusForbidden, MsgStaffInactive)

	account, err = f.staff.UpdateStatus(ctx, admin, "STF00001", "Active")
	require.NoError(t, err)
	assert.True(t, account.Membership.Active)
	_, err = f.auth.LoginStaff(ctx, "STF00001", "staffpw")
	require.NoError(t, err)

	entries := f.store.ActivityEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Inactivated staff member", entries[0].Action)
	assert.Equal(t, "Activated staff member", entries[1].Action)
}

func TestStaffService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, in := range []StaffInput{
		validStaff("one@example.com", "+60111"),
		validStaff("two@example.com", "+60222"),
		validStaff("three@example.com", "+60333"),
	} {
		_, err := f.staff.create(ctx, in, "staffpw")
		require.NoError(t, err)
	}

	accounts, page, err := f.staff.List(ctx, PageParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, PageInfo{Page: 2, Limit: 2, Total: 3, TotalPages: 2}, page)

	accounts, _, err = f.staff.List(ctx, PageParams{Search: "stf00002"})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "two@example.com", accounts[0].Identity.Email)
}

func TestStaffService_EnsureBootstrapAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	account, err := f.staff.EnsureBootstrapAdmin(ctx, config.BootstrapConfig{})
	require.NoError(t, err)
	assert.Nil(t, account)

	cfg := config.BootstrapConfig{
		AdminEmail:     "root@example.com",
		AdminPassword:  "rootpass",
		AdminFirstName: "Platform",
		AdminLastName:  "Admin",
	}
	account, err = f.staff.EnsureBootstrapAdmin(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.True(t, account.IsAdmin())
	assert.Nil(t, account.Identity.PhoneNo)
	assert.Zero(t, f.queue.Len())

	res, err := f.auth.LoginStaff(ctx, account.Membership.StaffCode, "rootpass")
	require.NoError(t, err)
	assert.True(t, res.Claims.IsAdmin)
	assert.Equal(t, true, res.Claims.AdminPrivileges["staff"])

	again, err := f.staff.EnsureBootstrapAdmin(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, again)
}

package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/listing-admin/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func staffClaims() Claims {
	return Claims{
		UserID:          12,
		UserCode:        "STF00012",
		Email:           "ops@example.com",
		Role:            domain.RoleStaff,
		StaffID:         "STF00012",
		StaffRole:       "Admin",
		IsAdmin:         true,
		AdminPrivileges: domain.AdminPrivileges{"users": true, "level": "full"},
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	issuedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tm := NewTokenManager("test-secret", time.Hour).WithClock(fixedClock(issuedAt))

	in := staffClaims()
	token, exp, err := tm.Issue(in)
	require.NoError(t, err)
	assert.True(t, exp.Equal(issuedAt.Add(time.Hour)))

	out, err := tm.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.UserCode, out.UserCode)
	assert.Equal(t, in.Email, out.Email)
	assert.Equal(t, in.Role, out.Role)
	assert.Equal(t, in.StaffID, out.StaffID)
	assert.Equal(t, in.StaffRole, out.StaffRole)
	assert.Equal(t, in.IsAdmin, out.IsAdmin)
	assert.Equal(t, in.AdminPrivileges, out.AdminPrivileges)
	assert.Equal(t, "12", out.Subject)
	assert.True(t, out.IssuedAt.Time.Equal(issuedAt))
	assert.True(t, out.ExpiresAt.Time.Equal(exp))
}

func TestTokenManager_UserClaimsOmitStaffFields(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, _, err := tm.Issue(Claims{UserID: 5, UserCode: "USER1", Email: "a@b.com", Role: domain.RoleAgent})
	require.NoError(t, err)

	out, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Empty(t, out.StaffID)
	assert.False(t, out.IsAdmin)
	assert.Nil(t, out.AdminPrivileges)
}

func TestTokenManager_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 2 * time.Hour
	epsilon := time.Minute

	now := issuedAt
	tm := NewTokenManager("test-secret", ttl).WithClock(func() time.Time { return now })

	token, _, err := tm.Issue(staffClaims())
	require.NoError(t, err)

	now = issuedAt.Add(ttl - epsilon)
	_, err = tm.Verify(token)
	assert.NoError(t, err)

	now = issuedAt.Add(ttl + epsilon)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_IssueWithTTL(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm := NewTokenManager("test-secret", time.Hour).WithClock(fixedClock(issuedAt))

	_, exp, err := tm.IssueWithTTL(staffClaims(), 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, exp.Equal(issuedAt.Add(10*time.Minute)))

	_, _, err = tm.IssueWithTTL(staffClaims(), 0)
	assert.Error(t, err)

	_, _, err = tm.IssueWithTTL(staffClaims(), 200*time.Millisecond)
	assert.Error(t, err)
}

func TestTokenManager_SubSecondIssueClock(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 700*int(time.Millisecond), time.UTC)
	ttl := time.Hour

	now := issuedAt
	tm := NewTokenManager("test-secret", ttl).WithClock(func() time.Time { return now })

	in := staffClaims()
	token, exp, err := tm.Issue(in)
	require.NoError(t, err)
	assert.False(t, exp.Before(issuedAt.Add(ttl)))

	out, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, in.UserID, out.UserID)
	assert.True(t, out.ExpiresAt.Time.Equal(exp))

	now = issuedAt.Add(ttl - 100*time.Millisecond)
	_, err = tm.Verify(token)
	assert.NoError(t, err)

	now = issuedAt.Add(ttl + time.Second)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Hour).Issue(staffClaims())
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	claims := staffClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	noneToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tm := NewTokenManager("test-secret", time.Hour)
	_, err = tm.Verify(noneToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = tm.Verify(hs512)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	for _, token := range []string{"", "garbage", "header.payload", "only.two.parts.missing"} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", token)
	}
}

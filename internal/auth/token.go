package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/listing-admin/internal/domain"
)

var (
	// ErrTokenInvalid covers bad signatures, unexpected algorithms and malformed tokens.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned once the clock passes the exp claim.
	ErrTokenExpired = errors.New("token expired")
)

// DefaultTokenTTL is the session lifetime when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims is the session claim carried by bearer tokens.
type Claims struct {
	UserID          int64                  `json:"userId"`
	UserCode        string                 `json:"userUserId"`
	Email           string                 `json:"email"`
	Role            domain.Role            `json:"role"`
	StaffID         string                 `json:"staffId,omitempty"`
	StaffRole       string                 `json:"staffRole,omitempty"`
	IsAdmin         bool                   `json:"isAdmin"`
	AdminPrivileges domain.AdminPrivileges `json:"adminPrivileges,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for issuing and validating.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// TTL returns the default token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue signs claims with the default lifetime.
func (tm *TokenManager) Issue(claims Claims) (string, time.Time, error) {
	return tm.IssueWithTTL(claims, tm.ttl)
}

// IssueWithTTL signs claims that expire ttl from now.
func (tm *TokenManager) IssueWithTTL(claims Claims, ttl time.Duration) (string, time.Time, error) {
	if ttl < time.Second {
		return "", time.Time{}, errors.New("token ttl must be at least one second")
	}
	issuedAt := tm.now()
	// exp is encoded in whole seconds; round up so the token never expires before issuedAt+ttl.
	expiresAt := ceilSecond(issuedAt.Add(ttl))
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(claims.UserID, 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, claims.ExpiresAt.Time, nil
}

func ceilSecond(t time.Time) time.Time {
	truncated := t.Truncate(time.Second)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(time.Second)
}

// Verify validates signature and expiry and returns the embedded claims.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

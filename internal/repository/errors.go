package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrEmailTaken is returned when users_email_key rejects an insert or update.
	ErrEmailTaken = errors.New("email already exists")
	// ErrPhoneTaken is returned when users_phone_no_key rejects an insert or update.
	ErrPhoneTaken = errors.New("mobile phone already exists")
	// ErrUserCodeTaken signals a user_id collision; callers regenerate and retry.
	ErrUserCodeTaken = errors.New("user id already exists")
)

const uniqueViolation = "23505"

// mapConstraintError translates unique violations on the users table into sentinels.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return ErrEmailTaken
	case "users_phone_no_key":
		return ErrPhoneTaken
	case "users_user_id_key":
		return ErrUserCodeTaken
	}
	return err
}

// likePattern wraps term for a substring ILIKE match, escaping wildcards.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

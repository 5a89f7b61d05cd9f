package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/listing-admin/internal/domain"
)

// UserRepository persists Identities in the users table.
type UserRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByID(ctx context.Context, id int64) (*domain.Identity, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	// EmailTaken and PhoneTaken ignore the row with id excludeID; pass 0 to check all rows.
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	PhoneTaken(ctx context.Context, phone string, excludeID int64) (bool, error)
	Update(ctx context.Context, identity *domain.Identity) error
	UpdateProfile(ctx context.Context, identity *domain.Identity) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter UserFilter) ([]domain.Identity, int, error)
}

// UserFilter drives the admin user listings.
type UserFilter struct {
	Role   *domain.Role
	Search string
	// Review limits results to non-active accounts and narrows search to id, email and names.
	Review bool
	Limit  int
	Offset int
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const identityColumns = `id, user_id, email, password, first_name, last_name, phone_no, region, area,
        gender, birthday_month, birthday_year, account_status, role, profile_picture, last_login,
        created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, identity *domain.Identity) error {
	const query = `
        INSERT INTO users (user_id, email, password, first_name, last_name, phone_no, region, area,
            gender, birthday_month, birthday_year, account_status, role)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, identityArgs(identity)...).
		Scan(&identity.ID, &identity.CreatedAt, &identity.UpdatedAt)
	return mapConstraintError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	return r.getOne(ctx, "id=$1", id)
}

func (r *userRepository) GetByUserID(ctx context.Context, userID string) (*domain.Identity, error) {
	return r.getOne(ctx, "user_id=$1", userID)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return r.getOne(ctx, "lower(email)=lower($1)", email)
}

func (r *userRepository) getOne(ctx context.Context, where string, arg any) (*domain.Identity, error) {
	query := "SELECT " + identityColumns + " FROM users WHERE " + where
	identity, err := scanIdentity(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, err
	}
	return identity, nil
}

func (r *userRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, "lower(email)=lower($1)", email, excludeID)
}

func (r *userRepository) PhoneTaken(ctx context.Context, phone string, excludeID int64) (bool, error) {
	return r.exists(ctx, "phone_no=$1", phone, excludeID)
}

func (r *userRepository) exists(ctx context.Context, where string, arg any, excludeID int64) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM users WHERE " + where + " AND id <> $2)"
	var found bool
	err := r.pool.QueryRow(ctx, query, arg, excludeID).Scan(&found)
	return found, err
}

func (r *userRepository) Update(ctx context.Context, identity *domain.Identity) error {
	const query = `
        UPDATE users SET email=$1, first_name=$2, last_name=$3, phone_no=$4, region=$5, area=$6,
            gender=$7, birthday_month=$8, birthday_year=$9, updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		identity.Email,
		identity.FirstName,
		identity.LastName,
		identity.PhoneNo,
		identity.Region,
		identity.Area,
		identity.Gender.Nullable(),
		identity.BirthdayMonth,
		identity.BirthdayYear,
		identity.ID,
	).Scan(&identity.UpdatedAt)
	return mapConstraintError(err)
}

// UpdateProfile is the self-service variant: email is never written and only end-user rows match.
func (r *userRepository) UpdateProfile(ctx context.Context, identity *domain.Identity) error {
	const query = `
        UPDATE users SET first_name=$1, last_name=$2, phone_no=$3, region=$4, area=$5,
            gender=$6, birthday_month=$7, birthday_year=$8, updated_at=NOW()
        WHERE id=$9 AND role IN ('user', 'agent')
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		identity.FirstName,
		identity.LastName,
		identity.PhoneNo,
		identity.Region,
		identity.Area,
		identity.Gender.Nullable(),
		identity.BirthdayMonth,
		identity.BirthdayYear,
		identity.ID,
	).Scan(&identity.UpdatedAt)
	return mapConstraintError(err)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return r.execOne(ctx, `UPDATE users SET password=$1, updated_at=NOW() WHERE id=$2`, hash, id)
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus) error {
	return r.execOne(ctx, `UPDATE users SET account_status=$1, updated_at=NOW() WHERE id=$2`, status, id)
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.execOne(ctx, `UPDATE users SET last_login=$1 WHERE id=$2`, at, id)
}

// Delete removes the row; platform_staff and admin rows cascade.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.execOne(ctx, `DELETE FROM users WHERE id=$1`, id)
}

func (r *userRepository) execOne(ctx context.Context, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]domain.Identity, int, error) {
	args := []any{}
	clauses := []string{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	searchColumns := []string{"user_id", "email", "first_name", "last_name", "phone_no", "region"}
	if filter.Review {
		clauses = append(clauses, "account_status <> 'active'")
		searchColumns = searchColumns[:4]
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, likePattern(term))
		placeholder := fmt.Sprintf("$%d", len(args))
		ors := make([]string, len(searchColumns))
		for i, col := range searchColumns {
			ors[i] = col + " ILIKE " + placeholder
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query := "SELECT " + identityColumns + " FROM users" + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]domain.Identity, 0, limit)
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *identity)
	}
	return result, total, rows.Err()
}

func identityArgs(identity *domain.Identity) []any {
	return []any{
		identity.UserID,
		identity.Email,
		identity.PasswordHash,
		identity.FirstName,
		identity.LastName,
		identity.PhoneNo,
		identity.Region,
		identity.Area,
		identity.Gender.Nullable(),
		identity.BirthdayMonth,
		identity.BirthdayYear,
		identity.AccountStatus,
		identity.Role,
	}
}

func scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var (
		identity domain.Identity
		gender   *bool
	)
	if err := row.Scan(
		&identity.ID,
		&identity.UserID,
		&identity.Email,
		&identity.PasswordHash,
		&identity.FirstName,
		&identity.LastName,
		&identity.PhoneNo,
		&identity.Region,
		&identity.Area,
		&gender,
		&identity.BirthdayMonth,
		&identity.BirthdayYear,
		&identity.AccountStatus,
		&identity.Role,
		&identity.ProfilePicture,
		&identity.LastLogin,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	); err != nil {
		return nil, err
	}
	identity.Gender = domain.GenderFromNullable(gender)
	return &identity, nil
}

// maxRows caps any single list query.
const maxRows = 100

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if limit > maxRows {
		limit = maxRows
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

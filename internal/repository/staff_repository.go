package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/identity"
)

// staffCodeLock serializes staff code assignment across concurrent creators.
const staffCodeLock int64 = 0x53544600

// StaffRepository handles staff identities, memberships and admin privilege sets.
type StaffRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.StaffAccount, error)
	// Create inserts the identity, membership and, when account.Privileges is non-nil,
	// the admin set in one transaction. The staff code is assigned inside it.
	Create(ctx context.Context, account *domain.StaffAccount) error
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffAccount, int, error)
	// SetActive flips the membership flag and the identity account_status together.
	SetActive(ctx context.Context, code string, active bool) (*domain.StaffAccount, error)
	Count(ctx context.Context) (int, error)
}

// StaffFilter defines query params for staff listing.
type StaffFilter struct {
	Search string
	Limit  int
	Offset int
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffSelect = `
        SELECT u.id, u.user_id, u.email, u.password, u.first_name, u.last_name, u.phone_no, u.region,
            u.area, u.gender, u.birthday_month, u.birthday_year, u.account_status, u.role,
            u.profile_picture, u.last_login, u.created_at, u.updated_at,
            ps.id, ps.staff_id, ps.staff_role, ps.is_active, ps.created_at, ps.updated_at,
            a.id, a.admin_privileges
        FROM platform_staff ps
        JOIN users u ON u.id = ps.user_id
        LEFT JOIN admin a ON a.platform_staff_id = ps.id`

func (r *staffRepository) GetByCode(ctx context.Context, code string) (*domain.StaffAccount, error) {
	return scanStaff(r.pool.QueryRow(ctx, staffSelect+" WHERE ps.staff_id=$1", code))
}

func (r *staffRepository) Create(ctx context.Context, account *domain.StaffAccount) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, staffCodeLock); err != nil {
		return err
	}

	var last string
	err = tx.QueryRow(ctx, `
        SELECT staff_id FROM platform_staff
        WHERE staff_id ~ '^STF[0-9]+$'
        ORDER BY CAST(SUBSTRING(staff_id FROM 4) AS BIGINT) DESC
        LIMIT 1`).Scan(&last)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	code := identity.NextStaffCode(last)

	id := &account.Identity
	id.UserID = code
	id.Role = domain.RoleStaff
	if id.AccountStatus == "" {
		id.AccountStatus = domain.AccountStatusActive
	}

	const insertUser = `
        INSERT INTO users (user_id, email, password, first_name, last_name, phone_no, region, area,
            gender, birthday_month, birthday_year, account_status, role)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertUser, identityArgs(id)...).Scan(&id.ID, &id.CreatedAt, &id.UpdatedAt); err != nil {
		return mapConstraintError(err)
	}

	m := &account.Membership
	m.StaffCode = code
	m.IdentityID = id.ID
	m.Active = id.AccountStatus == domain.AccountStatusActive
	if err := tx.QueryRow(ctx, `
        INSERT INTO platform_staff (staff_id, staff_role, user_id, is_active)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`,
		m.StaffCode, m.StaffRole, m.IdentityID, m.Active,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return err
	}

	if account.Privileges != nil {
		doc, err := json.Marshal(account.Privileges)
		if err != nil {
			return fmt.Errorf("encode admin privileges: %w", err)
		}
		var adminID int64
		if err := tx.QueryRow(ctx,
			`INSERT INTO admin (platform_staff_id, admin_privileges) VALUES ($1, $2) RETURNING id`,
			m.ID, doc,
		).Scan(&adminID); err != nil {
			return err
		}
		account.AdminID = &adminID
	}

	return tx.Commit(ctx)
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffAccount, int, error) {
	args := []any{}
	where := " WHERE u.role = 'staff'"
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, likePattern(term))
		where += ` AND (ps.staff_id ILIKE $1 OR u.email ILIKE $1 OR u.first_name ILIKE $1
            OR u.last_name ILIKE $1 OR u.region ILIKE $1)`
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM platform_staff ps JOIN users u ON u.id = ps.user_id" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query := staffSelect + where + fmt.Sprintf(" ORDER BY ps.created_at DESC, ps.id DESC LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]domain.StaffAccount, 0, limit)
	for rows.Next() {
		account, err := scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *account)
	}
	return result, total, rows.Err()
}

func (r *staffRepository) SetActive(ctx context.Context, code string, active bool) (*domain.StaffAccount, error) {
	status := domain.AccountStatusInactive
	if active {
		status = domain.AccountStatusActive
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var identityID int64
	if err := tx.QueryRow(ctx, `
        UPDATE platform_staff SET is_active=$1, updated_at=NOW()
        WHERE staff_id=$2
        RETURNING user_id`, active, code,
	).Scan(&identityID); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET account_status=$1, updated_at=NOW() WHERE id=$2`, status, identityID,
	); err != nil {
		return nil, err
	}

	account, err := scanStaff(tx.QueryRow(ctx, staffSelect+" WHERE ps.staff_id=$1", code))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *staffRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM platform_staff`).Scan(&n)
	return n, err
}

func scanStaff(row pgx.Row) (*domain.StaffAccount, error) {
	var (
		account    domain.StaffAccount
		gender     *bool
		privileges []byte
	)
	id := &account.Identity
	m := &account.Membership
	if err := row.Scan(
		&id.ID, &id.UserID, &id.Email, &id.PasswordHash, &id.FirstName, &id.LastName,
		&id.PhoneNo, &id.Region, &id.Area, &gender, &id.BirthdayMonth, &id.BirthdayYear,
		&id.AccountStatus, &id.Role, &id.ProfilePicture, &id.LastLogin, &id.CreatedAt, &id.UpdatedAt,
		&m.ID, &m.StaffCode, &m.StaffRole, &m.Active, &m.CreatedAt, &m.UpdatedAt,
		&account.AdminID, &privileges,
	); err != nil {
		return nil, err
	}
	id.Gender = domain.GenderFromNullable(gender)
	m.IdentityID = id.ID

	if account.AdminID != nil {
		account.Privileges = domain.AdminPrivileges{}
		if len(privileges) > 0 {
			if err := json.Unmarshal(privileges, &account.Privileges); err != nil {
				return nil, fmt.Errorf("decode admin privileges: %w", err)
			}
		}
	}
	return &account, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/listing-admin/internal/domain"
)

// ActivityRepository reads and writes the admin activity log.
type ActivityRepository interface {
	// Create resolves entry.StaffCode to the acting membership; unknown codes are stored as system entries.
	Create(ctx context.Context, entry *domain.ActivityEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository instantiates the repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	const query = `
        INSERT INTO activity_log (staff_id, action, details, entity_type, entity_id)
        VALUES ((SELECT id FROM platform_staff WHERE staff_id = $1), $2, $3, $4, $5)
        RETURNING log_id, staff_id, timestamp`

	return r.pool.QueryRow(ctx, query,
		entry.StaffCode,
		entry.Action,
		entry.Details,
		entry.EntityType,
		entry.EntityID,
	).Scan(&entry.ID, &entry.StaffID, &entry.Timestamp)
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	limit, _ = pageBounds(limit, 0)
	const query = `
        SELECT al.log_id, al.staff_id, ps.staff_id, u.first_name, u.last_name, u.email,
            al.action, COALESCE(al.details, ''), COALESCE(al.entity_type, ''), COALESCE(al.entity_id, ''),
            al.timestamp
        FROM activity_log al
        LEFT JOIN platform_staff ps ON al.staff_id = ps.id
        LEFT JOIN users u ON ps.user_id = u.id
        ORDER BY al.timestamp DESC, al.log_id DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.ActivityEntry, 0, limit)
	for rows.Next() {
		var e domain.ActivityEntry
		if err := rows.Scan(
			&e.ID, &e.StaffID, &e.StaffCode, &e.FirstName, &e.LastName, &e.Email,
			&e.Action, &e.Details, &e.EntityType, &e.EntityID, &e.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

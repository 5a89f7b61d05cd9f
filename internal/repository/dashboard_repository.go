package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/listing-admin/internal/domain"
)

// DashboardRepository computes headline counts.
type DashboardRepository interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
}

type dashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository instantiates the repository.
func NewDashboardRepository(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{pool: pool}
}

func (r *dashboardRepository) Stats(ctx context.Context) (domain.DashboardStats, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM users WHERE role = 'user' AND account_status = 'active'),
            (SELECT COUNT(*) FROM users WHERE role = 'agent' AND account_status = 'active'),
            (SELECT COUNT(*) FROM property_listings WHERE status = 'active'),
            (SELECT COUNT(*) FROM properties),
            (SELECT COUNT(*) FROM property_listings WHERE listing_type = 'rent' AND status = 'active'),
            (SELECT COUNT(*) FROM property_listings WHERE listing_type = 'sale' AND status = 'active')`

	var s domain.DashboardStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalUsers, &s.TotalAgents, &s.TotalListings, &s.TotalProperties, &s.TotalRent, &s.TotalSale,
	)
	return s, err
}

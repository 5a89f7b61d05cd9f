package mocks

import (
	"context"

	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/repository"
)

// MockDashboardRepository counts over the in-memory identities and seeded listing totals.
type MockDashboardRepository struct {
	s     *Store
	calls int
}

var _ repository.DashboardRepository = (*MockDashboardRepository)(nil)

func (m *MockDashboardRepository) Stats(ctx context.Context) (domain.DashboardStats, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.calls++
	if err := m.s.consumeFailure(); err != nil {
		return domain.DashboardStats{}, err
	}

	stats := domain.DashboardStats{
		TotalListings:   m.s.listings.active,
		TotalProperties: m.s.listings.properties,
		TotalRent:       m.s.listings.rent,
		TotalSale:       m.s.listings.sale,
	}
	for _, identity := range m.s.identities {
		if identity.AccountStatus != domain.AccountStatusActive {
			continue
		}
		switch identity.Role {
		case domain.RoleUser:
			stats.TotalUsers++
		case domain.RoleAgent:
			stats.TotalAgents++
		}
	}
	return stats, nil
}

// Calls reports how many times Stats reached the store.
func (m *MockDashboardRepository) Calls() int {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return m.calls
}

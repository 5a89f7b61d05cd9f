package mocks

import (
	"context"
	"sort"

	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/repository"
)

// MockActivityRepository is an in-memory repository.ActivityRepository.
type MockActivityRepository struct {
	s *Store
}

var _ repository.ActivityRepository = (*MockActivityRepository)(nil)

func (m *MockActivityRepository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return err
	}

	entry.ID = int64(len(m.s.activity) + 1)
	entry.Timestamp = m.s.now()
	entry.StaffID = nil
	if entry.StaffCode != nil {
		if row, ok := m.s.staff[*entry.StaffCode]; ok {
			id := row.membership.ID
			entry.StaffID = &id
			if identity, ok := m.s.identities[row.membership.IdentityID]; ok {
				first, last, email := identity.FirstName, identity.LastName, identity.Email
				entry.FirstName, entry.LastName, entry.Email = &first, &last, &email
			}
		} else {
			entry.StaffCode = nil
		}
	}
	m.s.activity = append(m.s.activity, *entry)
	return nil
}

func (m *MockActivityRepository) ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return nil, err
	}

	entries := append([]domain.ActivityEntry(nil), m.s.activity...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	return page(entries, limit, 0), nil
}

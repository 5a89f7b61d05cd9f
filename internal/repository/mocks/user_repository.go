package mocks

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/repository"
)

var (
	errEmailTaken    = repository.ErrEmailTaken
	errPhoneTaken    = repository.ErrPhoneTaken
	errUserCodeTaken = repository.ErrUserCodeTaken
)

// MockUserRepository is an in-memory repository.UserRepository.
type MockUserRepository struct {
	s *Store
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, identity *domain.Identity) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return err
	}
	return m.s.insertIdentity(identity)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.Identity, error) {
	return m.find(func(i *domain.Identity) bool { return i.ID == id })
}

func (m *MockUserRepository) GetByUserID(ctx context.Context, userID string) (*domain.Identity, error) {
	return m.find(func(i *domain.Identity) bool { return i.UserID == userID })
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return m.find(func(i *domain.Identity) bool { return strings.EqualFold(i.Email, email) })
}

func (m *MockUserRepository) find(match func(*domain.Identity) bool) (*domain.Identity, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return nil, err
	}
	for _, identity := range m.s.identities {
		if match(identity) {
			cp := *identity
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *MockUserRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	_, err := m.find(func(i *domain.Identity) bool { return strings.EqualFold(i.Email, email) && i.ID != excludeID })
	return taken(err)
}

func (m *MockUserRepository) PhoneTaken(ctx context.Context, phone string, excludeID int64) (bool, error) {
	_, err := m.find(func(i *domain.Identity) bool {
		return i.PhoneNo != nil && *i.PhoneNo == phone && i.ID != excludeID
	})
	return taken(err)
}

func taken(err error) (bool, error) {
	switch err {
	case nil:
		return true, nil
	case pgx.ErrNoRows:
		return false, nil
	default:
		return false, err
	}
}

func (m *MockUserRepository) Update(ctx context.Context, identity *domain.Identity) error {
	return m.mutate(identity.ID, func(stored *domain.Identity) error {
		candidate := *stored
		candidate.Email = identity.Email
		candidate.PhoneNo = identity.PhoneNo
		if err := m.s.conflict(&candidate); err != nil {
			return err
		}
		stored.Email = identity.Email
		copyProfile(stored, identity)
		identity.UpdatedAt = stored.UpdatedAt
		return nil
	})
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, identity *domain.Identity) error {
	return m.mutate(identity.ID, func(stored *domain.Identity) error {
		if !stored.Role.IsEndUser() {
			return pgx.ErrNoRows
		}
		candidate := *stored
		candidate.PhoneNo = identity.PhoneNo
		if err := m.s.conflict(&candidate); err != nil {
			return err
		}
		copyProfile(stored, identity)
		identity.UpdatedAt = stored.UpdatedAt
		return nil
	})
}

func copyProfile(dst, src *domain.Identity) {
	dst.FirstName = src.FirstName
	dst.LastName = src.LastName
	dst.PhoneNo = src.PhoneNo
	dst.Region = src.Region
	dst.Area = src.Area
	dst.Gender = src.Gender
	dst.BirthdayMonth = src.BirthdayMonth
	dst.BirthdayYear = src.BirthdayYear
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.mutate(id, func(stored *domain.Identity) error {
		stored.PasswordHash = hash
		return nil
	})
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id int64, status domain.AccountStatus) error {
	return m.mutate(id, func(stored *domain.Identity) error {
		stored.AccountStatus = status
		return nil
	})
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return err
	}
	stored, ok := m.s.identities[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.LastLogin = &at
	return nil
}

func (m *MockUserRepository) mutate(id int64, fn func(*domain.Identity) error) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return err
	}
	stored, ok := m.s.identities[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if err := fn(stored); err != nil {
		return err
	}
	stored.UpdatedAt = m.s.now()
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return err
	}
	stored, ok := m.s.identities[id]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(m.s.staff, stored.UserID)
	delete(m.s.identities, id)
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]domain.Identity, int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return nil, 0, err
	}

	term := strings.TrimSpace(filter.Search)
	var matched []domain.Identity
	for _, identity := range m.s.identities {
		if filter.Role != nil && identity.Role != *filter.Role {
			continue
		}
		if filter.Review && identity.AccountStatus == domain.AccountStatusActive {
			continue
		}
		if term != "" && !matchesSearch(identity, term, filter.Review) {
			continue
		}
		matched = append(matched, *identity)
	}
	newestFirst(matched)
	return page(matched, filter.Limit, filter.Offset), len(matched), nil
}

func matchesSearch(identity *domain.Identity, term string, review bool) bool {
	fields := []string{identity.UserID, identity.Email, identity.FirstName, identity.LastName}
	if !review {
		fields = append(fields, deref(identity.PhoneNo), deref(identity.Region))
	}
	for _, f := range fields {
		if containsFold(f, term) {
			return true
		}
	}
	return false
}

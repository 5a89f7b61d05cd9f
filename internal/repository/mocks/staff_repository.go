package mocks

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/identity"
	"github.com/spec-kit/listing-admin/internal/repository"
)

// MockStaffRepository is an in-memory repository.StaffRepository.
type MockStaffRepository struct {
	s *Store
}

var _ repository.StaffRepository = (*MockStaffRepository)(nil)

func (m *MockStaffRepository) GetByCode(ctx context.Context, code string) (*domain.StaffAccount, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return nil, err
	}
	return m.account(code)
}

// account must be called with mu held.
func (m *MockStaffRepository) account(code string) (*domain.StaffAccount, error) {
	row, ok := m.s.staff[code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	stored, ok := m.s.identities[row.membership.IdentityID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	account := &domain.StaffAccount{
		Identity:   *stored,
		Membership: row.membership,
		AdminID:    row.adminID,
	}
	if row.privileges != nil {
		account.Privileges = domain.AdminPrivileges{}
		for k, v := range row.privileges {
			account.Privileges[k] = v
		}
	}
	return account, nil
}

func (m *MockStaffRepository) Create(ctx context.Context, account *domain.StaffAccount) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return err
	}

	last := ""
	for code := range m.s.staff {
		if identity.ParseStaffCode(code) > identity.ParseStaffCode(last) {
			last = code
		}
	}
	code := identity.NextStaffCode(last)

	id := &account.Identity
	id.UserID = code
	id.Role = domain.RoleStaff
	if id.AccountStatus == "" {
		id.AccountStatus = domain.AccountStatusActive
	}
	if err := m.s.insertIdentity(id); err != nil {
		return err
	}

	mem := &account.Membership
	mem.ID = int64(len(m.s.staff) + 1)
	mem.StaffCode = code
	mem.IdentityID = id.ID
	mem.Active = id.AccountStatus == domain.AccountStatusActive
	mem.CreatedAt = id.CreatedAt
	mem.UpdatedAt = id.CreatedAt

	row := &staffRow{membership: *mem}
	if account.Privileges != nil {
		adminID := mem.ID
		account.AdminID = &adminID
		row.adminID = &adminID
		row.privileges = account.Privileges
	}
	m.s.staff[code] = row
	return nil
}

func (m *MockStaffRepository) List(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffAccount, int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return nil, 0, err
	}

	term := strings.TrimSpace(filter.Search)
	var matched []domain.StaffAccount
	for code := range m.s.staff {
		account, err := m.account(code)
		if err != nil {
			continue
		}
		if term != "" && !staffMatches(account, term) {
			continue
		}
		matched = append(matched, *account)
	}
	sortStaff(matched)
	return page(matched, filter.Limit, filter.Offset), len(matched), nil
}

func staffMatches(a *domain.StaffAccount, term string) bool {
	for _, f := range []string{a.Membership.StaffCode, a.Identity.Email, a.Identity.FirstName, a.Identity.LastName, deref(a.Identity.Region)} {
		if containsFold(f, term) {
			return true
		}
	}
	return false
}

func sortStaff(accounts []domain.StaffAccount) {
	identities := make([]domain.Identity, len(accounts))
	byID := make(map[int64]domain.StaffAccount, len(accounts))
	for i, a := range accounts {
		identities[i] = a.Identity
		byID[a.Identity.ID] = a
	}
	newestFirst(identities)
	for i, identity := range identities {
		accounts[i] = byID[identity.ID]
	}
}

func (m *MockStaffRepository) SetActive(ctx context.Context, code string, active bool) (*domain.StaffAccount, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return nil, err
	}
	row, ok := m.s.staff[code]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	stored, ok := m.s.identities[row.membership.IdentityID]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	now := m.s.now()
	row.membership.Active = active
	row.membership.UpdatedAt = now
	stored.AccountStatus = domain.AccountStatusInactive
	if active {
		stored.AccountStatus = domain.AccountStatusActive
	}
	stored.UpdatedAt = now
	return m.account(code)
}

func (m *MockStaffRepository) Count(ctx context.Context) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.s.consumeFailure(); err != nil {
		return 0, err
	}
	return len(m.s.staff), nil
}

// Deactivate flips only the membership flag, leaving account_status untouched.
func (m *MockStaffRepository) Deactivate(code string) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if row, ok := m.s.staff[code]; ok {
		row.membership.Active = false
	}
}

// Package mocks provides in-memory repository implementations for service and HTTP tests.
package mocks

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/listing-admin/internal/domain"
)

// Store is the shared in-memory state behind the mock repositories.
type Store struct {
	mu         sync.RWMutex
	identities map[int64]*domain.Identity
	staff      map[string]*staffRow
	activity   []domain.ActivityEntry
	listings   listingCounts
	nextID     int64
	failNext   error
	now        func() time.Time

	Users     *MockUserRepository
	Staff     *MockStaffRepository
	Activity  *MockActivityRepository
	Dashboard *MockDashboardRepository
}

type staffRow struct {
	membership domain.StaffMembership
	adminID    *int64
	privileges domain.AdminPrivileges
}

type listingCounts struct {
	properties, active, rent, sale int64
}

// NewStore creates an empty store with all mock repositories attached.
func NewStore() *Store {
	s := &Store{
		identities: make(map[int64]*domain.Identity),
		staff:      make(map[string]*staffRow),
		now:        time.Now,
	}
	s.Users = &MockUserRepository{s: s}
	s.Staff = &MockStaffRepository{s: s}
	s.Activity = &MockActivityRepository{s: s}
	s.Dashboard = &MockDashboardRepository{s: s}
	return s
}

// SetFailNext makes the next repository call return err.
func (s *Store) SetFailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

// SetListingCounts seeds the property aggregates reported by the dashboard mock.
func (s *Store) SetListingCounts(properties, active, rent, sale int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = listingCounts{properties: properties, active: active, rent: rent, sale: sale}
}

// Identity returns a copy of the stored identity by numeric id.
func (s *Store) Identity(id int64) (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.identities[id]
	if !ok {
		return domain.Identity{}, false
	}
	return *identity, true
}

// ActivityEntries returns a copy of every recorded activity entry.
func (s *Store) ActivityEntries() []domain.ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ActivityEntry(nil), s.activity...)
}

// consumeFailure must be called with mu held.
func (s *Store) consumeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

// conflict must be called with mu held.
func (s *Store) conflict(candidate *domain.Identity) error {
	for _, existing := range s.identities {
		if existing.ID == candidate.ID {
			continue
		}
		if existing.UserID == candidate.UserID {
			return errUserCodeTaken
		}
		if strings.EqualFold(existing.Email, candidate.Email) {
			return errEmailTaken
		}
		if candidate.PhoneNo != nil && existing.PhoneNo != nil && *existing.PhoneNo == *candidate.PhoneNo {
			return errPhoneTaken
		}
	}
	return nil
}

// insertIdentity must be called with mu held.
func (s *Store) insertIdentity(identity *domain.Identity) error {
	if err := s.conflict(identity); err != nil {
		return err
	}
	s.nextID++
	now := s.now()
	identity.ID = s.nextID
	identity.CreatedAt = now
	identity.UpdatedAt = now
	stored := *identity
	s.identities[stored.ID] = &stored
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func newestFirst(identities []domain.Identity) {
	sort.SliceStable(identities, func(i, j int) bool {
		if identities[i].CreatedAt.Equal(identities[j].CreatedAt) {
			return identities[i].ID > identities[j].ID
		}
		return identities[i].CreatedAt.After(identities[j].CreatedAt)
	})
}

func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

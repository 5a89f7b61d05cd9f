package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/listing-admin/internal/domain"
	"github.com/spec-kit/listing-admin/internal/events"
	"github.com/spec-kit/listing-admin/internal/repository"
	apperrors "github.com/spec-kit/listing-admin/pkg/util/errorutil"
)

// DefaultActivityLimit applies when the caller omits or sends a non-positive limit.
const DefaultActivityLimit = 10

// StatsCache is the read-through cache in front of the dashboard aggregates.
type StatsCache interface {
	Get(ctx context.Context) (domain.DashboardStats, bool, error)
	Set(ctx context.Context, stats domain.DashboardStats) error
	Invalidate(ctx context.Context) error
}

// DashboardService serves the admin dashboard.
type DashboardService struct {
	dashboard repository.DashboardRepository
	activity  repository.ActivityRepository
	cache     StatsCache
	logger    *zap.Logger
}

// DashboardDependencies encapsulates collaborators for the dashboard service.
type DashboardDependencies struct {
	DashboardRepo repository.DashboardRepository
	ActivityRepo  repository.ActivityRepository
	// Cache may be nil.
	Cache  StatsCache
	Logger *zap.Logger
}

// NewDashboardService builds the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		dashboard: deps.DashboardRepo,
		activity:  deps.ActivityRepo,
		cache:     deps.Cache,
		logger:    logger,
	}
}

// Stats returns the headline counts, served from cache when fresh. Cache failures fall through to the store.
func (s *DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	if s.cache != nil {
		stats, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if ok {
			return stats, nil
		}
	}

	stats, err := s.dashboard.Stats(ctx)
	if err != nil {
		return domain.DashboardStats{}, apperrors.NewInternalError("Failed to fetch dashboard statistics", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// RecentActivities returns the newest activity entries.
func (s *DashboardService) RecentActivities(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	entries, err := s.activity.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch recent activities", err)
	}
	return entries, nil
}

// RegisterHandlers drops cached counts whenever an account change can move them.
func (s *DashboardService) RegisterHandlers(dispatcher events.Dispatcher) {
	if s.cache == nil {
		return
	}
	for _, t := range []events.EventType{
		events.EventUserCreated,
		events.EventUserDeleted,
		events.EventUserStatusChanged,
	} {
		dispatcher.Subscribe(t, s.invalidate)
	}
}

func (s *DashboardService) invalidate(ctx context.Context, _ events.Event) error {
	return s.cache.Invalidate(ctx)
}

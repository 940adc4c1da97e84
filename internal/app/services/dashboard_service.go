package services

import (
	"context"
	"time"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/events"
	"github.com/hostelhub/hostelhub/internal/pkg/cache"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardService aggregates the counters for the admin dashboard. Results
// are cached briefly in Redis; any allotment or application event invalidates
// the cache so the dashboard never lags a mutation by more than one read.
type DashboardService struct {
	students     *repositories.StudentRepository
	hostels      *repositories.HostelRepository
	rooms        *repositories.RoomRepository
	applications *repositories.ApplicationRepository
	maintenance  *repositories.MaintenanceRepository
	fees         *repositories.FeeRepository
	cache        *cache.Cache
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(repos *repositories.Repositories, c *cache.Cache) *DashboardService {
	return &DashboardService{
		students:     repos.StudentRepository,
		hostels:      repos.HostelRepository,
		rooms:        repos.RoomRepository,
		applications: repos.ApplicationRepository,
		maintenance:  repos.MaintenanceRepository,
		fees:         repos.FeeRepository,
		cache:        c,
	}
}

// Name implements events.Subscriber
func (s *DashboardService) Name() string {
	return "dashboard-cache"
}

// Handle implements events.Subscriber: any domain event drops the cached stats
func (s *DashboardService) Handle(ctx context.Context, _ events.Event) error {
	s.cache.Invalidate(ctx, dashboardCacheKey)
	return nil
}

// Stats computes the dashboard counters, serving from cache when possible
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var cached dto.DashboardStatsResponse
	if s.cache.Get(ctx, dashboardCacheKey, &cached) {
		return &cached, nil
	}

	stats := &dto.DashboardStatsResponse{}

	var err error
	if stats.Students, err = s.students.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Hostels, err = s.hostels.Count(ctx); err != nil {
		return nil, err
	}

	byStatus, err := s.rooms.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.RoomsVacant = byStatus[models.RoomStatusVacant]
	stats.RoomsOccupied = byStatus[models.RoomStatusOccupied]
	stats.RoomsMaintenance = byStatus[models.RoomStatusUnderMaintenance]
	stats.RoomsTotal = stats.RoomsVacant + stats.RoomsOccupied + stats.RoomsMaintenance
	if stats.RoomsTotal > 0 {
		stats.OccupancyRate = float64(stats.RoomsOccupied) / float64(stats.RoomsTotal)
	}

	if stats.PendingApplications, err = s.applications.CountByStatus(ctx, models.ApplicationStatusPending); err != nil {
		return nil, err
	}
	if stats.OpenMaintenance, err = s.maintenance.CountOpen(ctx); err != nil {
		return nil, err
	}
	if stats.FeesDue, stats.FeesCollected, _, err = s.fees.Summary(ctx); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, dashboardCacheKey, stats, dashboardCacheTTL)

	return stats, nil
}

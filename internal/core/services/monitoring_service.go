package services

import (
	"context"
	"fmt"

	portsrepo "github.com/inkpad-app/inkpad-backend/internal/core/ports/repositories"
	portssvc "github.com/inkpad-app/inkpad-backend/internal/core/ports/services"
	"github.com/inkpad-app/inkpad-backend/internal/metrics"
	"github.com/inkpad-app/inkpad-backend/internal/platform/storage"
)

// MonitoringService exposes the request metrics collector and component health.
type MonitoringService struct {
	collector *metrics.Collector
	userRepo  portsrepo.UserRepository
	pingDB    func(ctx context.Context) error
	blobs     storage.BlobStore
}

func NewMonitoringService(collector *metrics.Collector, userRepo portsrepo.UserRepository, pingDB func(ctx context.Context) error, blobs storage.BlobStore) *MonitoringService {
	return &MonitoringService{collector: collector, userRepo: userRepo, pingDB: pingDB, blobs: blobs}
}

func (s *MonitoringService) Summary(ctx context.Context) (portssvc.MetricsOverview, error) {
	total, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return portssvc.MetricsOverview{}, fmt.Errorf("failed to count users: %w", err)
	}
	return portssvc.MetricsOverview{Summary: s.collector.GetSummary(), TotalRegisteredUsers: total}, nil
}

func (s *MonitoringService) RecentErrors(ctx context.Context, limit int) []metrics.RequestRecord {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.collector.RecentErrors(limit)
}

func (s *MonitoringService) UserActivity(ctx context.Context) metrics.UserActivity {
	return s.collector.GetUserActivity()
}

func (s *MonitoringService) ResetMetrics(ctx context.Context) {
	s.collector.Reset()
}

func (s *MonitoringService) Health(ctx context.Context) (portssvc.HealthReport, bool) {
	report := portssvc.HealthReport{}
	healthy := true

	if err := s.pingDB(ctx); err != nil {
		report["database"] = err.Error()
		healthy = false
	} else {
		report["database"] = "ok"
	}

	if err := s.blobs.Healthy(ctx); err != nil {
		report["storage"] = err.Error()
		healthy = false
	} else {
		report["storage"] = "ok"
	}

	return report, healthy
}

package services

import (
	"context"

	"github.com/inkpad-app/inkpad-backend/internal/metrics"
)

// MetricsOverview is the request metrics summary plus database-derived totals.
type MetricsOverview struct {
	metrics.Summary
	TotalRegisteredUsers int64 `json:"totalRegisteredUsers"`
}

// MonitoringSvcFacade exposes the in-process request metrics and health probes.
type MonitoringSvcFacade interface {
	Summary(ctx context.Context) (MetricsOverview, error)
	RecentErrors(ctx context.Context, limit int) []metrics.RequestRecord
	UserActivity(ctx context.Context) metrics.UserActivity
	ResetMetrics(ctx context.Context)

	// Health checks the database and blob store and reports per-component status.
	Health(ctx context.Context) (HealthReport, bool)
}

// HealthReport maps component names to "ok" or an error description.
type HealthReport map[string]string

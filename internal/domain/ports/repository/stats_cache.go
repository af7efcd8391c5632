package repository

import (
	"context"

	"softcontrol-backoffice/internal/domain/model"
)

// StatsCache holds the dashboard aggregate for a short TTL so the landing
// page does not fan out seven queries per refresh. A cache miss or fault is
// never an error to callers; they recompute.
type StatsCache interface {
	GetDashboard(ctx context.Context) (*model.DashboardStats, error)
	SetDashboard(ctx context.Context, stats *model.DashboardStats) error
}

// File: internal/usecase/stats_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/repository"
	"softcontrol-backoffice/internal/infra/logging"
	"softcontrol-backoffice/internal/infra/metrics"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

// StatsUseCase computes the dashboard aggregates. Everything here is
// derived; a stale read is acceptable and the cache exploits that.
type StatsUseCase interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
	RecentSales(ctx context.Context, limit int) ([]*model.Sale, error)
	RecentCustomers(ctx context.Context, limit int) ([]*model.Customer, error)
}

type statsUC struct {
	customers repository.CustomerRepository
	subs      repository.SubscriptionRepository
	licenses  repository.LicenseRepository
	sales     repository.SaleRepository

	// cache is optional; nil recomputes on every call.
	cache repository.StatsCache

	log *zerolog.Logger
}

func NewStatsUseCase(
	customers repository.CustomerRepository,
	subs repository.SubscriptionRepository,
	licenses repository.LicenseRepository,
	sales repository.SaleRepository,
	cache repository.StatsCache,
	logger *zerolog.Logger,
) *statsUC {
	return &statsUC{customers: customers, subs: subs, licenses: licenses, sales: sales, cache: cache, log: logger}
}

func (u *statsUC) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	defer logging.TraceDuration(u.log, "StatsUC.Dashboard")()

	if u.cache != nil {
		if cached, err := u.cache.GetDashboard(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &model.DashboardStats{}
	var err error

	if stats.TotalCustomers, err = u.customers.Count(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	if stats.NewCustomersMonth, err = u.customers.CountCreatedSince(ctx, repository.NoTX, monthStart); err != nil {
		return nil, err
	}

	byStatus, err := u.subs.CountByStatus(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	stats.ActiveSubscriptions = byStatus[model.SubscriptionStatusActive]
	stats.PendingSubscriptions = byStatus[model.SubscriptionStatusPending]
	stats.ExpiredSubscriptions = byStatus[model.SubscriptionStatusExpired]
	metrics.SetSubscriptionsTotal(byStatus)

	if stats.ActiveLicenses, err = u.licenses.CountActive(ctx, repository.NoTX); err != nil {
		return nil, err
	}
	metrics.SetLicensesActive(stats.ActiveLicenses)

	if stats.TotalRevenue, err = u.sales.SumRevenue(ctx, repository.NoTX, model.PaymentStatusPaid, time.Time{}); err != nil {
		return nil, err
	}
	if stats.MonthlyRevenue, err = u.sales.SumRevenue(ctx, repository.NoTX, model.PaymentStatusPaid, monthStart); err != nil {
		return nil, err
	}
	if stats.PendingRevenue, err = u.sales.SumRevenue(ctx, repository.NoTX, model.PaymentStatusPending, time.Time{}); err != nil {
		return nil, err
	}
	if stats.SalesThisMonth, err = u.sales.CountSince(ctx, repository.NoTX, model.PaymentStatusPaid, monthStart); err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.SetDashboard(ctx, stats); err != nil {
			u.log.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}
	return stats, nil
}

func (u *statsUC) RecentSales(ctx context.Context, limit int) ([]*model.Sale, error) {
	defer logging.TraceDuration(u.log, "StatsUC.RecentSales")()
	if limit <= 0 {
		limit = 10
	}
	return u.sales.ListRecentPaid(ctx, repository.NoTX, limit)
}

func (u *statsUC) RecentCustomers(ctx context.Context, limit int) ([]*model.Customer, error) {
	defer logging.TraceDuration(u.log, "StatsUC.RecentCustomers")()
	if limit <= 0 {
		limit = 10
	}
	return u.customers.List(ctx, repository.NoTX, 0, limit)
}

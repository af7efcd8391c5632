// File: internal/usecase/goal_uc.go
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
var _ GoalUseCase = (*goalUC)(nil)

// GoalUseCase manages dashboard goals. RefreshAuto is invoked by the
// scheduler; everything else serves the management endpoints.
type GoalUseCase interface {
	Create(ctx context.Context, g *model.Goal) error
	Update(ctx context.Context, g *model.Goal) error
	Get(ctx context.Context, id string) (*model.Goal, error)
	List(ctx context.Context) ([]*model.Goal, error)
	Delete(ctx context.Context, id string) error
	// RefreshAuto recomputes CurrentValue for every auto-calculated goal
	// from live aggregates. Per-goal failures are logged and do not stop
	// the sweep.
	RefreshAuto(ctx context.Context) error
}

type goalUC struct {
	goals     repository.GoalRepository
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	subs      repository.SubscriptionRepository
	licenses  repository.LicenseRepository
	log       *zerolog.Logger
}

func NewGoalUseCase(
	goals repository.GoalRepository,
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	subs repository.SubscriptionRepository,
	licenses repository.LicenseRepository,
	logger *zerolog.Logger,
) *goalUC {
	return &goalUC{goals: goals, sales: sales, customers: customers, subs: subs, licenses: licenses, log: logger}
}

func (u *goalUC) Create(ctx context.Context, g *model.Goal) error {
	defer logging.TraceDuration(u.log, "GoalUC.Create")()
	return u.goals.Save(ctx, repository.NoTX, g)
}

func (u *goalUC) Update(ctx context.Context, g *model.Goal) error {
	defer logging.TraceDuration(u.log, "GoalUC.Update")()
	g.UpdatedAt = time.Now()
	return u.goals.Save(ctx, repository.NoTX, g)
}

func (u *goalUC) Get(ctx context.Context, id string) (*model.Goal, error) {
	return u.goals.FindByID(ctx, repository.NoTX, id)
}

func (u *goalUC) List(ctx context.Context) ([]*model.Goal, error) {
	return u.goals.List(ctx, repository.NoTX)
}

func (u *goalUC) Delete(ctx context.Context, id string) error {
	defer logging.TraceDuration(u.log, "GoalUC.Delete")()
	return u.goals.Delete(ctx, repository.NoTX, id)
}

func (u *goalUC) RefreshAuto(ctx context.Context) error {
	defer logging.TraceDuration(u.log, "GoalUC.RefreshAuto")()
	goals, err := u.goals.ListAutoCalculated(ctx, repository.NoTX)
	if err != nil {
		metrics.IncGoalRefresh("failed")
		return err
	}
	for _, g := range goals {
		value, ok, err := u.currentValue(ctx, g)
		if err != nil {
			u.log.Error().Err(err).Str("goal_id", g.ID).Msg("goal value computation failed")
			metrics.IncGoalRefresh("failed")
			continue
		}
		if !ok || value == g.CurrentValue {
			continue
		}
		g.CurrentValue = value
		g.UpdatedAt = time.Now()
		if err := u.goals.Save(ctx, repository.NoTX, g); err != nil {
			u.log.Error().Err(err).Str("goal_id", g.ID).Msg("goal refresh save failed")
			metrics.IncGoalRefresh("failed")
			continue
		}
		metrics.IncGoalRefresh("completed")
	}
	return nil
}

// currentValue maps a goal type to its live aggregate. Custom goals are
// skipped (ok=false); their value is maintained by hand.
func (u *goalUC) currentValue(ctx context.Context, g *model.Goal) (float64, bool, error) {
	switch g.Type {
	case model.GoalTypeSalesRevenue:
		v, err := u.sales.SumRevenue(ctx, repository.NoTX, model.PaymentStatusPaid, g.StartDate)
		return v, true, err
	case model.GoalTypeSalesCount:
		n, err := u.sales.CountSince(ctx, repository.NoTX, model.PaymentStatusPaid, g.StartDate)
		return float64(n), true, err
	case model.GoalTypeNewClients:
		n, err := u.customers.CountCreatedSince(ctx, repository.NoTX, g.StartDate)
		return float64(n), true, err
	case model.GoalTypeActiveSubscriptions:
		byStatus, err := u.subs.CountByStatus(ctx, repository.NoTX)
		if err != nil {
			return 0, false, err
		}
		return float64(byStatus[model.SubscriptionStatusActive]), true, nil
	case model.GoalTypeActiveLicenses:
		n, err := u.licenses.CountActive(ctx, repository.NoTX)
		return float64(n), true, err
	default:
		return 0, false, nil
	}
}

package model

import (
	"time"

	"softcontrol-backoffice/internal/domain"

	"github.com/google/uuid"
)

type GoalType string

const (
	GoalTypeSalesRevenue        GoalType = "sales_revenue"
	GoalTypeSalesCount          GoalType = "sales_count"
	GoalTypeNewClients          GoalType = "new_clients"
	GoalTypeActiveSubscriptions GoalType = "active_subscriptions"
	GoalTypeActiveLicenses      GoalType = "active_licenses"
	GoalTypeCustom              GoalType = "custom"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusFailed    GoalStatus = "failed"
	GoalStatusPaused    GoalStatus = "paused"
)

// Goal is a sales/ops target tracked on the dashboard. Goals with
// AutoCalculate set get their CurrentValue refreshed by the background
// worker from live aggregates.
type Goal struct {
	ID            string
	Title         string
	Description   string
	Type          GoalType
	Unit          string
	TargetValue   float64
	CurrentValue  float64
	StartDate     time.Time
	EndDate       time.Time
	Status        GoalStatus
	AutoCalculate bool
	Priority      string
	CreatedBy     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewGoal(title string, kind GoalType, target float64, start, end time.Time) (*Goal, error) {
	if title == "" || target <= 0 || end.Before(start) {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Goal{
		ID:          uuid.NewString(),
		Title:       title,
		Type:        kind,
		TargetValue: target,
		StartDate:   start,
		EndDate:     end,
		Status:      GoalStatusActive,
		Priority:    "medium",
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ProgressPercent returns completion in [0, +inf) percent.
func (g *Goal) ProgressPercent() float64 {
	if g.TargetValue <= 0 {
		return 0
	}
	return g.CurrentValue / g.TargetValue * 100
}

// ProgressStatus derives the display status from progress and deadline.
func (g *Goal) ProgressStatus(now time.Time) string {
	if g.ProgressPercent() >= 100 {
		return "completed"
	}
	if g.EndDate.Before(now) {
		return "failed"
	}
	return "in_progress"
}

package sched

import (
	"context"
	"time"

	"softcontrol-backoffice/internal/usecase"

	"github.com/rs/zerolog"
)

// GoalWorker periodically refreshes auto-calculated goals from live
// aggregates via the use case.
type GoalWorker struct {
	interval time.Duration
	goalUC   usecase.GoalUseCase
	log      *zerolog.Logger
}

func NewGoalWorker(interval time.Duration, goalUC usecase.GoalUseCase, logger *zerolog.Logger) *GoalWorker {
	compLog := logger.With().Str("component", "GoalWorker").Logger()
	return &GoalWorker{
		interval: interval,
		goalUC:   goalUC,
		log:      &compLog,
	}
}

func (w *GoalWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting goal worker")
	// Run once on startup, then on every tick
	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping goal worker")
			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *GoalWorker) refresh(ctx context.Context) {
	if err := w.goalUC.RefreshAuto(ctx); err != nil {
		w.log.Error().Err(err).Msg("goal refresh failed")
	}
}

package repository

import (
	"context"

	"softcontrol-backoffice/internal/domain/model"
)

// GoalRepository is the port for dashboard goals.
type GoalRepository interface {
	Save(ctx context.Context, tx Tx, g *model.Goal) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Goal, error)
	List(ctx context.Context, tx Tx) ([]*model.Goal, error)
	ListAutoCalculated(ctx context.Context, tx Tx) ([]*model.Goal, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

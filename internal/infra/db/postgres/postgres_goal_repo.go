package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/repository"
)

// Ensure goalRepo implements repository.GoalRepository
var _ repository.GoalRepository = (*goalRepo)(nil)

type goalRepo struct {
	pool *pgxpool.Pool
}

func NewGoalRepo(pool *pgxpool.Pool) *goalRepo {
	return &goalRepo{pool: pool}
}

const goalColumns = `id, title, description, goal_type, unit, target_value, current_value,
  start_date, end_date, status, auto_calculate, priority, created_by, created_at, updated_at`

func (r *goalRepo) Save(ctx context.Context, tx repository.Tx, g *model.Goal) error {
	const q = `
INSERT INTO goals (` + goalColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
ON CONFLICT (id) DO UPDATE SET
  title=$2, description=$3, goal_type=$4, unit=$5, target_value=$6, current_value=$7,
  start_date=$8, end_date=$9, status=$10, auto_calculate=$11, priority=$12, updated_at=$15;`
	_, err := execSQL(ctx, r.pool, tx, q,
		g.ID, g.Title, g.Description, string(g.Type), g.Unit, g.TargetValue, g.CurrentValue,
		g.StartDate, g.EndDate, string(g.Status), g.AutoCalculate, g.Priority, g.CreatedBy, g.CreatedAt, time.Now())
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return err
		default:
			return domain.ErrOperationFailed
		}
	}
	return nil
}

func (r *goalRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Goal, error) {
	const q = `SELECT ` + goalColumns + ` FROM goals WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	g, err := scanGoal(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return g, err
}

func (r *goalRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Goal, error) {
	const q = `SELECT ` + goalColumns + ` FROM goals ORDER BY end_date ASC;`
	return r.queryMany(ctx, tx, q)
}

func (r *goalRepo) ListAutoCalculated(ctx context.Context, tx repository.Tx) ([]*model.Goal, error) {
	const q = `SELECT ` + goalColumns + ` FROM goals WHERE auto_calculate AND status='active' ORDER BY end_date ASC;`
	return r.queryMany(ctx, tx, q)
}

func (r *goalRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM goals WHERE id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *goalRepo) queryMany(ctx context.Context, tx repository.Tx, sql string, args ...interface{}) ([]*model.Goal, error) {
	rows, err := queryRows(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()
	var out []*model.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func scanGoal(row rowScanner) (*model.Goal, error) {
	g := &model.Goal{}
	var kind, status string
	if err := row.Scan(&g.ID, &g.Title, &g.Description, &kind, &g.Unit, &g.TargetValue, &g.CurrentValue,
		&g.StartDate, &g.EndDate, &status, &g.AutoCalculate, &g.Priority, &g.CreatedBy, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, domain.ErrReadDatabaseRow
	}
	g.Type = model.GoalType(kind)
	g.Status = model.GoalStatus(status)
	return g, nil
}

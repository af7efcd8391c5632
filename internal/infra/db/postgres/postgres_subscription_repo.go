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

// Ensure subscriptionRepo implements repository.SubscriptionRepository
var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *subscriptionRepo {
	return &subscriptionRepo{pool: pool}
}

const subscriptionColumns = `id, customer_id, product_id, subscription_type, status, payment_status,
  start_date, end_date, trial_ends_at, auto_renew, stripe_subscription_id, stripe_customer_id,
  last_payment_date, next_payment_date, amount, currency, created_at, updated_at`

func (r *subscriptionRepo) Save(ctx context.Context, tx repository.Tx, s *model.Subscription) error {
	const q = `
INSERT INTO subscriptions (` + subscriptionColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
ON CONFLICT (id) DO UPDATE SET
  subscription_type=$4, status=$5, payment_status=$6, start_date=$7, end_date=$8,
  trial_ends_at=$9, auto_renew=$10, stripe_subscription_id=$11, stripe_customer_id=$12,
  last_payment_date=$13, next_payment_date=$14, amount=$15, currency=$16, updated_at=$18;`
	_, err := execSQL(ctx, r.pool, tx, q,
		s.ID, s.CustomerID, s.ProductID, string(s.SubscriptionType), string(s.Status), string(s.PaymentStatus),
		s.StartDate, s.EndDate, s.TrialEndsAt, s.AutoRenew, s.StripeSubscriptionID, s.StripeCustomerID,
		s.LastPaymentDate, s.NextPaymentDate, s.Amount, s.Currency, s.CreatedAt, time.Now())
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

func (r *subscriptionRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Subscription, error) {
	const q = `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id=$1;`
	return r.queryOne(ctx, tx, q, id)
}

func (r *subscriptionRepo) FindLatestPendingByCustomer(ctx context.Context, tx repository.Tx, customerID string) (*model.Subscription, error) {
	const q = `
SELECT ` + subscriptionColumns + `
  FROM subscriptions
 WHERE customer_id=$1 AND status='pending'
 ORDER BY created_at DESC
 LIMIT 1;`
	return r.queryOne(ctx, tx, q, customerID)
}

func (r *subscriptionRepo) MarkPendingPaymentFailed(ctx context.Context, tx repository.Tx, customerID string) (int, error) {
	const q = `
UPDATE subscriptions
   SET payment_status='failed', updated_at=NOW()
 WHERE customer_id=$1 AND status='pending';`
	tag, err := execSQL(ctx, r.pool, tx, q, customerID)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return 0, err
		default:
			return 0, domain.ErrOperationFailed
		}
	}
	return int(tag.RowsAffected()), nil
}

func (r *subscriptionRepo) ListByCustomer(ctx context.Context, tx repository.Tx, customerID string) ([]*model.Subscription, error) {
	const q = `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE customer_id=$1 ORDER BY created_at DESC;`
	return r.queryMany(ctx, tx, q, customerID)
}

func (r *subscriptionRepo) ListTrials(ctx context.Context, tx repository.Tx, now time.Time, expired bool) ([]*model.Subscription, error) {
	// Trial expiry is derived at read time; no stored transition exists.
	const q = `
SELECT ` + subscriptionColumns + `
  FROM subscriptions
 WHERE subscription_type='trial'
   AND trial_ends_at IS NOT NULL
   AND (($2 AND trial_ends_at < $1) OR (NOT $2 AND trial_ends_at >= $1))
 ORDER BY trial_ends_at ASC;`
	return r.queryMany(ctx, tx, q, now, expired)
}

func (r *subscriptionRepo) ListExpiring(ctx context.Context, tx repository.Tx, within time.Duration) ([]*model.Subscription, error) {
	const q = `
SELECT ` + subscriptionColumns + `
  FROM subscriptions
 WHERE status='active'
   AND end_date IS NOT NULL
   AND end_date > NOW()
   AND end_date <= NOW() + ($1::bigint * INTERVAL '1 second')
 ORDER BY end_date ASC;`
	return r.queryMany(ctx, tx, q, int64(within.Seconds()))
}

func (r *subscriptionRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[model.SubscriptionStatus]int, error) {
	const q = `SELECT status, COUNT(*) FROM subscriptions GROUP BY status;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	counts := make(map[model.SubscriptionStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		counts[model.SubscriptionStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return counts, nil
}

func (r *subscriptionRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM subscriptions WHERE id=$1;`
	if _, err := execSQL(ctx, r.pool, tx, q, id); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *subscriptionRepo) queryMany(ctx context.Context, tx repository.Tx, sql string, args ...interface{}) ([]*model.Subscription, error) {
	rows, err := queryRows(ctx, r.pool, tx, sql, args...)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return nil, err
		default:
			return nil, domain.ErrOperationFailed
		}
	}
	defer rows.Close()
	var out []*model.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *subscriptionRepo) queryOne(ctx context.Context, tx repository.Tx, sql string, args ...interface{}) (*model.Subscription, error) {
	row, err := pickRow(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, err
	}
	s, err := scanSubscription(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return s, err
}

func scanSubscription(row rowScanner) (*model.Subscription, error) {
	s := &model.Subscription{}
	var kind, status, payStatus string
	if err := row.Scan(&s.ID, &s.CustomerID, &s.ProductID, &kind, &status, &payStatus,
		&s.StartDate, &s.EndDate, &s.TrialEndsAt, &s.AutoRenew, &s.StripeSubscriptionID, &s.StripeCustomerID,
		&s.LastPaymentDate, &s.NextPaymentDate, &s.Amount, &s.Currency, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, domain.ErrReadDatabaseRow
	}
	s.SubscriptionType = model.SubscriptionType(kind)
	s.Status = model.SubscriptionStatus(status)
	s.PaymentStatus = model.PaymentStatus(payStatus)
	return s, nil
}

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

// Ensure saleRepo implements repository.SaleRepository
var _ repository.SaleRepository = (*saleRepo)(nil)

type saleRepo struct {
	pool *pgxpool.Pool
}

func NewSaleRepo(pool *pgxpool.Pool) *saleRepo {
	return &saleRepo{pool: pool}
}

const saleColumns = `id, customer_id, subscription_id, product_id, amount, currency, payment_status,
  payment_method, stripe_payment_id, invoice_number, notes, sale_date, created_at`

func (r *saleRepo) Insert(ctx context.Context, tx repository.Tx, s *model.Sale) error {
	const q = `
INSERT INTO sales (` + saleColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13);`
	_, err := execSQL(ctx, r.pool, tx, q,
		s.ID, s.CustomerID, s.SubscriptionID, s.ProductID, s.Amount, s.Currency, string(s.PaymentStatus),
		s.PaymentMethod, s.StripePaymentID, s.InvoiceNumber, s.Notes, s.SaleDate, s.CreatedAt)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return err
		default:
			if isUniqueViolation(err) {
				return domain.ErrAlreadyExists
			}
			return domain.ErrOperationFailed
		}
	}
	return nil
}

func (r *saleRepo) Update(ctx context.Context, tx repository.Tx, s *model.Sale) error {
	const q = `
UPDATE sales SET
  amount=$2, currency=$3, payment_status=$4, payment_method=$5,
  stripe_payment_id=$6, invoice_number=$7, notes=$8, sale_date=$9
 WHERE id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q,
		s.ID, s.Amount, s.Currency, string(s.PaymentStatus), s.PaymentMethod,
		s.StripePaymentID, s.InvoiceNumber, s.Notes, s.SaleDate)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return err
		default:
			return domain.ErrOperationFailed
		}
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *saleRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Sale, error) {
	const q = `SELECT ` + saleColumns + ` FROM sales WHERE id=$1;`
	return r.queryOne(ctx, tx, q, id)
}

func (r *saleRepo) FindPendingBySubscription(ctx context.Context, tx repository.Tx, subscriptionID string) (*model.Sale, error) {
	const q = `
SELECT ` + saleColumns + `
  FROM sales
 WHERE subscription_id=$1 AND payment_status='pending'
 ORDER BY created_at DESC
 LIMIT 1;`
	return r.queryOne(ctx, tx, q, subscriptionID)
}

func (r *saleRepo) ListBySubscription(ctx context.Context, tx repository.Tx, subscriptionID string) ([]*model.Sale, error) {
	const q = `SELECT ` + saleColumns + ` FROM sales WHERE subscription_id=$1 ORDER BY sale_date DESC;`
	return r.queryMany(ctx, tx, q, subscriptionID)
}

func (r *saleRepo) ListRecentPaid(ctx context.Context, tx repository.Tx, limit int) ([]*model.Sale, error) {
	const q = `SELECT ` + saleColumns + ` FROM sales WHERE payment_status='paid' ORDER BY sale_date DESC LIMIT $1;`
	return r.queryMany(ctx, tx, q, limit)
}

func (r *saleRepo) SumRevenue(ctx context.Context, tx repository.Tx, status model.PaymentStatus, since time.Time) (float64, error) {
	const q = `
SELECT COALESCE(SUM(amount), 0)
  FROM sales
 WHERE payment_status=$1
   AND ($2::timestamptz IS NULL OR sale_date >= $2);`
	row, err := pickRow(ctx, r.pool, tx, q, string(status), nullableTime(since))
	if err != nil {
		return 0, err
	}
	var sum float64
	if err := row.Scan(&sum); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return sum, nil
}

func (r *saleRepo) CountSince(ctx context.Context, tx repository.Tx, status model.PaymentStatus, since time.Time) (int, error) {
	const q = `
SELECT COUNT(*)
  FROM sales
 WHERE payment_status=$1
   AND ($2::timestamptz IS NULL OR sale_date >= $2);`
	row, err := pickRow(ctx, r.pool, tx, q, string(status), nullableTime(since))
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func (r *saleRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM sales WHERE id=$1;`
	if _, err := execSQL(ctx, r.pool, tx, q, id); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

// nullableTime maps the zero time to NULL so "all time" queries skip the
// cutoff predicate.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (r *saleRepo) queryMany(ctx context.Context, tx repository.Tx, sql string, args ...interface{}) ([]*model.Sale, error) {
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
	var out []*model.Sale
	for rows.Next() {
		s, err := scanSale(rows)
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

func (r *saleRepo) queryOne(ctx context.Context, tx repository.Tx, sql string, args ...interface{}) (*model.Sale, error) {
	row, err := pickRow(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, err
	}
	s, err := scanSale(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return s, err
}

func scanSale(row rowScanner) (*model.Sale, error) {
	s := &model.Sale{}
	var status string
	if err := row.Scan(&s.ID, &s.CustomerID, &s.SubscriptionID, &s.ProductID, &s.Amount, &s.Currency, &status,
		&s.PaymentMethod, &s.StripePaymentID, &s.InvoiceNumber, &s.Notes, &s.SaleDate, &s.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, domain.ErrReadDatabaseRow
	}
	s.PaymentStatus = model.PaymentStatus(status)
	return s, nil
}

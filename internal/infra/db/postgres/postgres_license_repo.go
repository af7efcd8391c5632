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

// Ensure licenseRepo implements repository.LicenseRepository
var _ repository.LicenseRepository = (*licenseRepo)(nil)

type licenseRepo struct {
	pool *pgxpool.Pool
}

func NewLicenseRepo(pool *pgxpool.Pool) *licenseRepo {
	return &licenseRepo{pool: pool}
}

const licenseColumns = `id, customer_id, subscription_id, product_id, license_key, status,
  activation_date, expiration_date, max_activations, current_activations, created_at, updated_at`

func (r *licenseRepo) Save(ctx context.Context, tx repository.Tx, l *model.License) error {
	const q = `
INSERT INTO licenses (` + licenseColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
ON CONFLICT (id) DO UPDATE SET
  status=$6, activation_date=$7, expiration_date=$8, max_activations=$9,
  current_activations=$10, updated_at=$12;`
	_, err := execSQL(ctx, r.pool, tx, q,
		l.ID, l.CustomerID, l.SubscriptionID, l.ProductID, l.LicenseKey, string(l.Status),
		l.ActivationDate, l.ExpirationDate, l.MaxActivations, l.CurrentActivations, l.CreatedAt, time.Now())
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

func (r *licenseRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.License, error) {
	const q = `SELECT ` + licenseColumns + ` FROM licenses WHERE id=$1;`
	return r.queryOne(ctx, tx, q, id)
}

func (r *licenseRepo) FindByKey(ctx context.Context, tx repository.Tx, licenseKey string) (*model.License, error) {
	const q = `SELECT ` + licenseColumns + ` FROM licenses WHERE license_key=$1 LIMIT 1;`
	return r.queryOne(ctx, tx, q, licenseKey)
}

func (r *licenseRepo) FindInactiveBySubscription(ctx context.Context, tx repository.Tx, subscriptionID string) (*model.License, error) {
	const q = `SELECT ` + licenseColumns + ` FROM licenses WHERE subscription_id=$1 AND status='inactive' LIMIT 1;`
	return r.queryOne(ctx, tx, q, subscriptionID)
}

func (r *licenseRepo) ListByCustomer(ctx context.Context, tx repository.Tx, customerID string) ([]*model.License, error) {
	const q = `SELECT ` + licenseColumns + ` FROM licenses WHERE customer_id=$1 ORDER BY created_at DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q, customerID)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()
	var out []*model.License
	for rows.Next() {
		l, err := scanLicense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *licenseRepo) CountActive(ctx context.Context, tx repository.Tx) (int, error) {
	const q = `SELECT COUNT(*) FROM licenses WHERE status='active';`
	row, err := pickRow(ctx, r.pool, tx, q)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func (r *licenseRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM licenses WHERE id=$1;`
	if _, err := execSQL(ctx, r.pool, tx, q, id); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *licenseRepo) queryOne(ctx context.Context, tx repository.Tx, sql string, args ...interface{}) (*model.License, error) {
	row, err := pickRow(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, err
	}
	l, err := scanLicense(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return l, err
}

func scanLicense(row rowScanner) (*model.License, error) {
	l := &model.License{}
	var status string
	if err := row.Scan(&l.ID, &l.CustomerID, &l.SubscriptionID, &l.ProductID, &l.LicenseKey, &status,
		&l.ActivationDate, &l.ExpirationDate, &l.MaxActivations, &l.CurrentActivations, &l.CreatedAt, &l.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, domain.ErrReadDatabaseRow
	}
	l.Status = model.LicenseStatus(status)
	return l, nil
}

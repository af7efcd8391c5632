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

// Ensure productRepo implements repository.ProductRepository
var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct {
	pool *pgxpool.Pool
}

func NewProductRepo(pool *pgxpool.Pool) *productRepo {
	return &productRepo{pool: pool}
}

const productColumns = `id, name, description, sku, subscription_type, price, currency, duration_days, features, stripe_price_id, is_active, created_at, updated_at`

func (r *productRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id=$1;`
	return r.queryOne(ctx, tx, q, id)
}

func (r *productRepo) FindBySKU(ctx context.Context, tx repository.Tx, sku string) (*model.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE sku=$1 LIMIT 1;`
	return r.queryOne(ctx, tx, q, sku)
}

func (r *productRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE is_active ORDER BY price ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()
	var out []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *productRepo) Save(ctx context.Context, tx repository.Tx, p *model.Product) error {
	const q = `
INSERT INTO products (` + productColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (id) DO UPDATE SET
  name=$2, description=$3, sku=$4, subscription_type=$5, price=$6, currency=$7,
  duration_days=$8, features=$9, stripe_price_id=$10, is_active=$11, updated_at=$13;`
	_, err := execSQL(ctx, r.pool, tx, q,
		p.ID, p.Name, p.Description, p.SKU, string(p.SubscriptionType), p.Price, p.Currency,
		p.DurationDays, p.Features, p.StripePriceID, p.IsActive, p.CreatedAt, time.Now())
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

func (r *productRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM products WHERE id=$1;`
	if _, err := execSQL(ctx, r.pool, tx, q, id); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *productRepo) queryOne(ctx context.Context, tx repository.Tx, sql string, args ...interface{}) (*model.Product, error) {
	row, err := pickRow(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return p, err
}

func scanProduct(row rowScanner) (*model.Product, error) {
	p := &model.Product{}
	var kind string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &kind, &p.Price, &p.Currency,
		&p.DurationDays, &p.Features, &p.StripePriceID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, domain.ErrReadDatabaseRow
	}
	p.SubscriptionType = model.SubscriptionType(kind)
	return p, nil
}

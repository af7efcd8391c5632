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

// Ensure customerRepo implements repository.CustomerRepository
var _ repository.CustomerRepository = (*customerRepo)(nil)

type customerRepo struct {
	pool *pgxpool.Pool
}

func NewCustomerRepo(pool *pgxpool.Pool) *customerRepo {
	return &customerRepo{pool: pool}
}

const customerColumns = `id, auth_user_id, email, full_name, phone, company_name, address, city, country, tax_id, notes, is_active, created_at, updated_at`

func (r *customerRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE id=$1;`
	return r.queryOne(ctx, tx, q, id)
}

func (r *customerRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE lower(email)=lower($1) LIMIT 1;`
	return r.queryOne(ctx, tx, q, email)
}

func (r *customerRepo) FindByAuthUserID(ctx context.Context, tx repository.Tx, authUserID string) (*model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE auth_user_id=$1 LIMIT 1;`
	return r.queryOne(ctx, tx, q, authUserID)
}

func (r *customerRepo) Insert(ctx context.Context, tx repository.Tx, c *model.Customer) error {
	const q = `
INSERT INTO customers (` + customerColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14);`
	_, err := execSQL(ctx, r.pool, tx, q,
		c.ID, c.AuthUserID, c.Email, c.FullName, c.Phone, c.CompanyName,
		c.Address, c.City, c.Country, c.TaxID, c.Notes, c.IsActive, c.CreatedAt, c.UpdatedAt)
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

func (r *customerRepo) Update(ctx context.Context, tx repository.Tx, c *model.Customer) error {
	const q = `
UPDATE customers SET
  auth_user_id=$2, email=$3, full_name=$4, phone=$5, company_name=$6,
  address=$7, city=$8, country=$9, tax_id=$10, notes=$11, is_active=$12, updated_at=$13
 WHERE id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q,
		c.ID, c.AuthUserID, c.Email, c.FullName, c.Phone, c.CompanyName,
		c.Address, c.City, c.Country, c.TaxID, c.Notes, c.IsActive, time.Now())
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

func (r *customerRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC OFFSET $1 LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, offset, limit)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()
	var out []*model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return out, nil
}

func (r *customerRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return r.countWhere(ctx, tx, `SELECT COUNT(*) FROM customers;`)
}

func (r *customerRepo) CountCreatedSince(ctx context.Context, tx repository.Tx, since time.Time) (int, error) {
	return r.countWhere(ctx, tx, `SELECT COUNT(*) FROM customers WHERE created_at >= $1;`, since)
}

func (r *customerRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM customers WHERE id=$1;`
	if _, err := execSQL(ctx, r.pool, tx, q, id); err != nil {
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *customerRepo) countWhere(ctx context.Context, tx repository.Tx, sql string, args ...interface{}) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func (r *customerRepo) queryOne(ctx context.Context, tx repository.Tx, sql string, args ...interface{}) (*model.Customer, error) {
	row, err := pickRow(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, err
	}
	c, err := scanCustomer(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return c, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*model.Customer, error) {
	c := &model.Customer{}
	if err := row.Scan(&c.ID, &c.AuthUserID, &c.Email, &c.FullName, &c.Phone, &c.CompanyName,
		&c.Address, &c.City, &c.Country, &c.TaxID, &c.Notes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return c, nil
}

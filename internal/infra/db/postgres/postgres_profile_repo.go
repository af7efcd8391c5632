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

// Ensure profileRepo implements repository.ProfileRepository
var _ repository.ProfileRepository = (*profileRepo)(nil)

type profileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *profileRepo {
	return &profileRepo{pool: pool}
}

const profileColumns = `id, full_name, email, phone, avatar_url, role, is_active, created_at, updated_at`

func (r *profileRepo) FindByID(ctx context.Context, tx repository.Tx, subjectID string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE id=$1;`
	return r.queryOne(ctx, tx, q, subjectID)
}

func (r *profileRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email)=lower($1) LIMIT 1;`
	return r.queryOne(ctx, tx, q, email)
}

func (r *profileRepo) Upsert(ctx context.Context, tx repository.Tx, p *model.Profile) error {
	const q = `
INSERT INTO profiles (` + profileColumns + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  full_name=$2, email=$3, phone=$4, avatar_url=$5, role=$6, is_active=$7, updated_at=$9;`
	_, err := execSQL(ctx, r.pool, tx, q,
		p.ID, p.FullName, p.Email, p.Phone, p.AvatarURL, string(p.Role), p.IsActive, p.CreatedAt, time.Now())
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return err
		default:
			if isUniqueViolation(err) {
				// Unique email held by a different subject id.
				return domain.ErrEmailTaken
			}
			return domain.ErrOperationFailed
		}
	}
	return nil
}

func (r *profileRepo) List(ctx context.Context, tx repository.Tx) ([]*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at ASC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()
	var out []*model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
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

func (r *profileRepo) Delete(ctx context.Context, tx repository.Tx, subjectID string) error {
	const q = `DELETE FROM profiles WHERE id=$1;`
	tag, err := execSQL(ctx, r.pool, tx, q, subjectID)
	if err != nil {
		return domain.ErrOperationFailed
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) queryOne(ctx context.Context, tx repository.Tx, sql string, args ...interface{}) (*model.Profile, error) {
	row, err := pickRow(ctx, r.pool, tx, sql, args...)
	if err != nil {
		return nil, err
	}
	p, err := scanProfile(row)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return p, err
}

func scanProfile(row rowScanner) (*model.Profile, error) {
	p := &model.Profile{}
	var role string
	if err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.AvatarURL, &role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, domain.ErrReadDatabaseRow
	}
	p.Role = model.Role(role)
	return p, nil
}

package repository

import (
	"context"

	"softcontrol-backoffice/internal/domain/model"
)

// ProfileRepository is the port for staff profiles.
type ProfileRepository interface {
	FindByID(ctx context.Context, tx Tx, subjectID string) (*model.Profile, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.Profile, error)
	// Upsert inserts or replaces the profile keyed by its subject id.
	Upsert(ctx context.Context, tx Tx, p *model.Profile) error
	List(ctx context.Context, tx Tx) ([]*model.Profile, error)
	Delete(ctx context.Context, tx Tx, subjectID string) error
}

package repository

import (
	"context"
	"time"

	"softcontrol-backoffice/internal/domain/model"
)

// CustomerRepository is the port for license purchasers.
type CustomerRepository interface {
	FindByID(ctx context.Context, tx Tx, id string) (*model.Customer, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.Customer, error)
	// FindByAuthUserID looks a customer up by its identity-provider linkage.
	// The linkage column may be absent in legacy deployments; callers treat
	// any failure here as not-found.
	FindByAuthUserID(ctx context.Context, tx Tx, authUserID string) (*model.Customer, error)
	Insert(ctx context.Context, tx Tx, c *model.Customer) error
	Update(ctx context.Context, tx Tx, c *model.Customer) error
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.Customer, error)
	Count(ctx context.Context, tx Tx) (int, error)
	CountCreatedSince(ctx context.Context, tx Tx, since time.Time) (int, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

package repository

import (
	"context"

	"softcontrol-backoffice/internal/domain/model"
)

// LicenseRepository is the port for license credentials.
type LicenseRepository interface {
	Save(ctx context.Context, tx Tx, l *model.License) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.License, error)
	FindByKey(ctx context.Context, tx Tx, licenseKey string) (*model.License, error)
	// FindInactiveBySubscription returns the first inactive license linked
	// to the subscription, or ErrNotFound. Order among several is
	// unspecified.
	FindInactiveBySubscription(ctx context.Context, tx Tx, subscriptionID string) (*model.License, error)
	ListByCustomer(ctx context.Context, tx Tx, customerID string) ([]*model.License, error)
	CountActive(ctx context.Context, tx Tx) (int, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

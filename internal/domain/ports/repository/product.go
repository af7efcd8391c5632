package repository

import (
	"context"

	"softcontrol-backoffice/internal/domain/model"
)

// ProductRepository is the port for sellable products/plans.
type ProductRepository interface {
	FindByID(ctx context.Context, tx Tx, id string) (*model.Product, error)
	FindBySKU(ctx context.Context, tx Tx, sku string) (*model.Product, error)
	ListActive(ctx context.Context, tx Tx) ([]*model.Product, error)
	Save(ctx context.Context, tx Tx, p *model.Product) error
	Delete(ctx context.Context, tx Tx, id string) error
}

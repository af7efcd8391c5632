package repository

import (
	"context"
	"time"

	"softcontrol-backoffice/internal/domain/model"
)

// SaleRepository is the port for payment records.
type SaleRepository interface {
	Insert(ctx context.Context, tx Tx, s *model.Sale) error
	Update(ctx context.Context, tx Tx, s *model.Sale) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Sale, error)
	// FindPendingBySubscription returns the pending sale for a subscription,
	// or ErrNotFound. By convention at most one exists.
	FindPendingBySubscription(ctx context.Context, tx Tx, subscriptionID string) (*model.Sale, error)
	ListBySubscription(ctx context.Context, tx Tx, subscriptionID string) ([]*model.Sale, error)
	ListRecentPaid(ctx context.Context, tx Tx, limit int) ([]*model.Sale, error)
	// SumRevenue aggregates sale amounts for the given payment status since
	// the cutoff; a zero cutoff means all time.
	SumRevenue(ctx context.Context, tx Tx, status model.PaymentStatus, since time.Time) (float64, error)
	CountSince(ctx context.Context, tx Tx, status model.PaymentStatus, since time.Time) (int, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

package repository

import (
	"context"
	"time"

	"softcontrol-backoffice/internal/domain/model"
)

// SubscriptionRepository is the port for customer subscriptions.
type SubscriptionRepository interface {
	Save(ctx context.Context, tx Tx, s *model.Subscription) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Subscription, error)
	// FindLatestPendingByCustomer returns the most recently created pending
	// subscription for the customer, or ErrNotFound. Reconciliation relies
	// on the newest-first tie-break.
	FindLatestPendingByCustomer(ctx context.Context, tx Tx, customerID string) (*model.Subscription, error)
	// MarkPendingPaymentFailed bulk-updates payment_status on every pending
	// subscription of the customer, leaving status untouched. Returns the
	// number of rows touched.
	MarkPendingPaymentFailed(ctx context.Context, tx Tx, customerID string) (int, error)
	ListByCustomer(ctx context.Context, tx Tx, customerID string) ([]*model.Subscription, error)
	// ListTrials returns trial subscriptions classified at read time:
	// expired selects trial_ends_at < now, otherwise trial_ends_at >= now.
	ListTrials(ctx context.Context, tx Tx, now time.Time, expired bool) ([]*model.Subscription, error)
	ListExpiring(ctx context.Context, tx Tx, within time.Duration) ([]*model.Subscription, error)
	CountByStatus(ctx context.Context, tx Tx) (map[model.SubscriptionStatus]int, error)
	Delete(ctx context.Context, tx Tx, id string) error
}

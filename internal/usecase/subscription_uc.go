// File: internal/usecase/subscription_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/repository"
	"softcontrol-backoffice/internal/infra/logging"
)

// Compile-time check
var _ SubscriptionUseCase = (*subscriptionUC)(nil)

// SubscriptionUseCase manages the purchase lifecycle up to (but excluding)
// payment reconciliation, which reacts to provider events instead.
type SubscriptionUseCase interface {
	// Checkout opens a pending subscription for the product together with
	// its inactive license and pending sale record, atomically. The records
	// stay in this state until a payment event settles them.
	Checkout(ctx context.Context, customerID, productID string) (*model.Subscription, *model.License, error)
	Cancel(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.Subscription, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*model.Subscription, error)
	ListTrials(ctx context.Context, expired bool) ([]*model.Subscription, error)
	ListExpiring(ctx context.Context, within time.Duration) ([]*model.Subscription, error)
	CountByStatus(ctx context.Context) (map[model.SubscriptionStatus]int, error)
}

type subscriptionUC struct {
	subs     repository.SubscriptionRepository
	products repository.ProductRepository
	licenses repository.LicenseRepository
	sales    repository.SaleRepository
	tm       repository.TransactionManager
	log      *zerolog.Logger
}

func NewSubscriptionUseCase(
	subs repository.SubscriptionRepository,
	products repository.ProductRepository,
	licenses repository.LicenseRepository,
	sales repository.SaleRepository,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *subscriptionUC {
	return &subscriptionUC{subs: subs, products: products, licenses: licenses, sales: sales, tm: tm, log: logger}
}

func (u *subscriptionUC) Checkout(ctx context.Context, customerID, productID string) (*model.Subscription, *model.License, error) {
	defer logging.TraceDuration(u.log, "SubscriptionUC.Checkout")()
	if customerID == "" || productID == "" {
		return nil, nil, domain.ErrInvalidArgument
	}

	var (
		sub *model.Subscription
		lic *model.License
	)
	err := u.tm.WithTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(ctx context.Context, tx repository.Tx) error {
		product, err := u.products.FindByID(ctx, tx, productID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return domain.ErrInvalidArgument
		}

		sub, err = model.NewSubscription(customerID, product)
		if err != nil {
			return err
		}
		if err := u.subs.Save(ctx, tx, sub); err != nil {
			return err
		}

		lic, err = model.NewLicense(customerID, sub.ID, product.ID, 1)
		if err != nil {
			return err
		}
		if err := u.licenses.Save(ctx, tx, lic); err != nil {
			return err
		}

		// Trials carry no charge, so no sale record is opened for them.
		if product.SubscriptionType == model.SubscriptionTypeTrial {
			return nil
		}
		sale, err := model.NewSale(customerID, sub.ID, product.Price, product.Currency, model.PaymentStatusPending)
		if err != nil {
			return err
		}
		sale.ProductID = &product.ID
		sale.PaymentMethod = "stripe"
		return u.sales.Insert(ctx, tx, sale)
	})
	if err != nil {
		return nil, nil, err
	}
	u.log.Info().Str("customer_id", customerID).Str("subscription_id", sub.ID).Msg("checkout opened")
	return sub, lic, nil
}

func (u *subscriptionUC) Cancel(ctx context.Context, id string) error {
	defer logging.TraceDuration(u.log, "SubscriptionUC.Cancel")()
	sub, err := u.subs.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return err
	}
	sub.Status = model.SubscriptionStatusCancelled
	sub.AutoRenew = false
	sub.UpdatedAt = time.Now()
	return u.subs.Save(ctx, repository.NoTX, sub)
}

func (u *subscriptionUC) Get(ctx context.Context, id string) (*model.Subscription, error) {
	return u.subs.FindByID(ctx, repository.NoTX, id)
}

func (u *subscriptionUC) ListByCustomer(ctx context.Context, customerID string) ([]*model.Subscription, error) {
	return u.subs.ListByCustomer(ctx, repository.NoTX, customerID)
}

func (u *subscriptionUC) ListTrials(ctx context.Context, expired bool) ([]*model.Subscription, error) {
	return u.subs.ListTrials(ctx, repository.NoTX, time.Now(), expired)
}

func (u *subscriptionUC) ListExpiring(ctx context.Context, within time.Duration) ([]*model.Subscription, error) {
	return u.subs.ListExpiring(ctx, repository.NoTX, within)
}

func (u *subscriptionUC) CountByStatus(ctx context.Context) (map[model.SubscriptionStatus]int, error) {
	return u.subs.CountByStatus(ctx, repository.NoTX)
}

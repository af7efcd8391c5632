// File: internal/usecase/reconcile_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/repository"
	"softcontrol-backoffice/internal/infra/logging"
	"softcontrol-backoffice/internal/infra/metrics"
)

// Compile-time check
var _ ReconcileUseCase = (*reconcileUC)(nil)

// ReconcileUseCase reacts to provider payment events by bringing local
// records (subscription, license, sale) in line with what actually got paid.
type ReconcileUseCase interface {
	// HandleEvent applies one parsed payment event. Business misses such as
	// an unknown payer or no pending subscription are logged and swallowed:
	// the returned error is always nil so the caller can acknowledge the
	// delivery, and the signature exists for interface symmetry.
	HandleEvent(ctx context.Context, ev *model.PaymentEvent) error
}

type reconcileUC struct {
	customers repository.CustomerRepository
	subs      repository.SubscriptionRepository
	licenses  repository.LicenseRepository
	sales     repository.SaleRepository
	products  repository.ProductRepository

	// ledger is optional; nil disables event-id deduplication.
	ledger   repository.EventLedger
	dedupTTL time.Duration

	// processor is the optional database-side fast path; nil keeps the
	// step-by-step pipeline only.
	processor repository.PaymentProcessor

	log *zerolog.Logger
}

func NewReconcileUseCase(
	customers repository.CustomerRepository,
	subs repository.SubscriptionRepository,
	licenses repository.LicenseRepository,
	sales repository.SaleRepository,
	products repository.ProductRepository,
	ledger repository.EventLedger,
	dedupTTL time.Duration,
	processor repository.PaymentProcessor,
	logger *zerolog.Logger,
) *reconcileUC {
	return &reconcileUC{
		customers: customers,
		subs:      subs,
		licenses:  licenses,
		sales:     sales,
		products:  products,
		ledger:    ledger,
		dedupTTL:  dedupTTL,
		processor: processor,
		log:       logger,
	}
}

func (u *reconcileUC) HandleEvent(ctx context.Context, ev *model.PaymentEvent) error {
	defer logging.TraceDuration(u.log, "ReconcileUC.HandleEvent")()
	if ev == nil {
		return nil
	}
	log := u.log.With().Str("event_id", ev.ID).Str("event_type", ev.Type).Logger()
	metrics.IncWebhookEvent(ev.Type)

	if u.ledger != nil && u.dedupTTL > 0 && ev.ID != "" {
		first, err := u.ledger.FirstSeen(ctx, ev.ID, u.dedupTTL)
		if err != nil {
			// Ledger faults never block reconciliation; the pipeline is
			// already idempotent for retried deliveries.
			log.Warn().Err(err).Msg("event ledger unavailable, proceeding")
		} else if !first {
			log.Info().Msg("duplicate delivery, skipping")
			metrics.IncWebhookDuplicate()
			return nil
		}
	}

	switch ev.Kind {
	case model.PaymentEventSuccess:
		u.applySuccess(ctx, &log, ev)
	case model.PaymentEventFailure:
		u.applyFailure(ctx, &log, ev)
	default:
		log.Debug().Msg("unhandled event type, acknowledged")
	}
	return nil
}

// applySuccess walks the success pipeline: payer -> newest pending
// subscription -> activate -> license -> sale. Each step past activation is
// best-effort; an earlier miss stops the walk without surfacing an error.
func (u *reconcileUC) applySuccess(ctx context.Context, log *zerolog.Logger, ev *model.PaymentEvent) {
	if ev.Email == "" {
		log.Warn().Msg("success event carries no customer email")
		metrics.IncReconcileOutcome("no_email")
		return
	}

	customer, err := u.customers.FindByEmail(ctx, repository.NoTX, ev.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Str("email", logging.Redact(ev.Email, false)).Msg("no customer for payment event")
			metrics.IncReconcileOutcome("no_customer")
		} else {
			log.Error().Err(err).Msg("customer lookup failed")
			metrics.IncReconcileOutcome("error")
		}
		return
	}

	if u.processor != nil && u.tryRPC(ctx, log, ev, customer) {
		metrics.IncReconcileOutcome("rpc_success")
		return
	}

	sub, err := u.subs.FindLatestPendingByCustomer(ctx, repository.NoTX, customer.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Info().Str("customer_id", customer.ID).Msg("no pending subscription to reconcile")
			metrics.IncReconcileOutcome("no_pending")
		} else {
			log.Error().Err(err).Msg("pending subscription lookup failed")
			metrics.IncReconcileOutcome("error")
		}
		return
	}

	now := time.Now()
	sub.Status = model.SubscriptionStatusActive
	sub.PaymentStatus = model.PaymentStatusPaid
	sub.LastPaymentDate = &now
	if sub.StartDate == nil {
		sub.StartDate = &now
	}
	sub.UpdatedAt = now
	if err := u.subs.Save(ctx, repository.NoTX, sub); err != nil {
		log.Error().Err(err).Str("subscription_id", sub.ID).Msg("subscription activation failed")
		metrics.IncReconcileOutcome("error")
		return
	}
	log.Info().Str("subscription_id", sub.ID).Msg("subscription activated")

	u.activateLicense(ctx, log, sub, now)

	amount := sub.Amount
	if ev.AmountMinor > 0 {
		amount = float64(ev.AmountMinor) / 100
	}
	currency := sub.Currency
	if ev.Currency != "" {
		currency = ev.Currency
	}
	u.settleSale(ctx, log, ev, sub, amount, currency)

	metrics.IncReconcileOutcome("success")
	metrics.AddRevenue(currency, amount)
}

// tryRPC attempts the atomic database-side procedure. On any failure the
// caller falls back to the step-by-step pipeline, so a half-configured
// procedure degrades instead of dropping payments.
func (u *reconcileUC) tryRPC(ctx context.Context, log *zerolog.Logger, ev *model.PaymentEvent, customer *model.Customer) bool {
	sub, err := u.subs.FindLatestPendingByCustomer(ctx, repository.NoTX, customer.ID)
	if err != nil {
		return false
	}
	product, err := u.products.FindByID(ctx, repository.NoTX, sub.ProductID)
	if err != nil {
		return false
	}
	if err := u.processor.ProcessPayment(ctx, customer.Email, customer.FullName, product.SKU, ev.ID); err != nil {
		log.Warn().Err(err).Msg("process_payment rpc failed, falling back")
		return false
	}
	log.Info().Str("customer_id", customer.ID).Msg("payment processed via rpc")
	return true
}

func (u *reconcileUC) activateLicense(ctx context.Context, log *zerolog.Logger, sub *model.Subscription, now time.Time) {
	lic, err := u.licenses.FindInactiveBySubscription(ctx, repository.NoTX, sub.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Error().Err(err).Msg("license lookup failed")
		}
		return
	}
	lic.Status = model.LicenseStatusActive
	lic.CurrentActivations = 1
	lic.ActivationDate = &now
	lic.UpdatedAt = now
	if err := u.licenses.Save(ctx, repository.NoTX, lic); err != nil {
		log.Error().Err(err).Str("license_id", lic.ID).Msg("license activation failed")
		return
	}
	log.Info().Str("license_id", lic.ID).Msg("license activated")
}

// settleSale updates the subscription's pending sale in place when one
// exists, otherwise inserts a fresh paid record.
func (u *reconcileUC) settleSale(ctx context.Context, log *zerolog.Logger, ev *model.PaymentEvent, sub *model.Subscription, amount float64, currency string) {
	sale, err := u.sales.FindPendingBySubscription(ctx, repository.NoTX, sub.ID)
	switch {
	case err == nil:
		sale.PaymentStatus = model.PaymentStatusPaid
		sale.Amount = amount
		sale.Currency = currency
		sale.StripePaymentID = ev.ID
		sale.Notes = "Stripe payment confirmed: " + ev.Type
		if err := u.sales.Update(ctx, repository.NoTX, sale); err != nil {
			log.Error().Err(err).Str("sale_id", sale.ID).Msg("pending sale settlement failed")
			return
		}
		log.Info().Str("sale_id", sale.ID).Msg("pending sale settled")
	case errors.Is(err, domain.ErrNotFound):
		rec, err := model.NewSale(sub.CustomerID, sub.ID, amount, currency, model.PaymentStatusPaid)
		if err != nil {
			log.Error().Err(err).Msg("cannot build sale record")
			return
		}
		rec.ProductID = &sub.ProductID
		rec.PaymentMethod = "stripe"
		rec.StripePaymentID = ev.ID
		rec.Notes = "Stripe payment: " + ev.Type
		if err := u.sales.Insert(ctx, repository.NoTX, rec); err != nil {
			log.Error().Err(err).Msg("sale insert failed")
			return
		}
		log.Info().Str("sale_id", rec.ID).Msg("sale recorded")
	default:
		log.Error().Err(err).Msg("pending sale lookup failed")
	}
}

// applyFailure marks every pending subscription of the payer as
// payment-failed. Status stays pending so the customer can retry checkout.
func (u *reconcileUC) applyFailure(ctx context.Context, log *zerolog.Logger, ev *model.PaymentEvent) {
	if ev.Email == "" {
		log.Warn().Msg("failure event carries no customer email")
		metrics.IncReconcileOutcome("no_email")
		return
	}
	customer, err := u.customers.FindByEmail(ctx, repository.NoTX, ev.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Str("email", logging.Redact(ev.Email, false)).Msg("no customer for failed payment")
			metrics.IncReconcileOutcome("no_customer")
		} else {
			log.Error().Err(err).Msg("customer lookup failed")
			metrics.IncReconcileOutcome("error")
		}
		return
	}
	n, err := u.subs.MarkPendingPaymentFailed(ctx, repository.NoTX, customer.ID)
	if err != nil {
		log.Error().Err(err).Str("customer_id", customer.ID).Msg("marking payment failure failed")
		metrics.IncReconcileOutcome("error")
		return
	}
	log.Info().Str("customer_id", customer.ID).Int("subscriptions", n).Msg("pending subscriptions marked payment-failed")
	metrics.IncReconcileOutcome("failure_recorded")
}

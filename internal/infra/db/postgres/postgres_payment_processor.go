package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"softcontrol-backoffice/internal/domain/ports/repository"
)

// Ensure paymentProcessor implements repository.PaymentProcessor
var _ repository.PaymentProcessor = (*paymentProcessor)(nil)

// paymentProcessor invokes the database-side process_payment procedure,
// which settles customer, subscription, license and sale in one transaction.
type paymentProcessor struct {
	pool *pgxpool.Pool
}

func NewPaymentProcessor(pool *pgxpool.Pool) *paymentProcessor {
	return &paymentProcessor{pool: pool}
}

func (p *paymentProcessor) ProcessPayment(ctx context.Context, customerEmail, customerName, productSKU, providerPaymentID string) error {
	const q = `SELECT process_payment($1, $2, $3, $4);`
	if _, err := p.pool.Exec(ctx, q, customerEmail, customerName, productSKU, providerPaymentID); err != nil {
		return fmt.Errorf("process_payment: %w", err)
	}
	return nil
}

package repository

import "context"

// PaymentProcessor is the optional stored-procedure fast path offered by
// the record store. It performs the whole success reconciliation atomically
// on the database side. The pipeline does not require it; it is selectable
// via configuration.
type PaymentProcessor interface {
	ProcessPayment(ctx context.Context, customerEmail, customerName, productSKU, providerPaymentID string) error
}

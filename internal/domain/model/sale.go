package model

import (
	"time"

	"softcontrol-backoffice/internal/domain"

	"github.com/google/uuid"
)

// Sale records one payment attempt/result tied to a subscription. By
// convention at most one pending sale exists per subscription at a time;
// reconciliation updates that row instead of inserting a duplicate.
type Sale struct {
	ID              string
	CustomerID      string
	SubscriptionID  *string
	ProductID       *string
	Amount          float64
	Currency        string
	PaymentStatus   PaymentStatus
	PaymentMethod   string
	StripePaymentID string
	InvoiceNumber   string
	Notes           string
	SaleDate        time.Time
	CreatedAt       time.Time
}

func NewSale(customerID, subscriptionID string, amount float64, currency string, status PaymentStatus) (*Sale, error) {
	if customerID == "" || amount < 0 {
		return nil, domain.ErrInvalidArgument
	}
	if currency == "" {
		currency = "EUR"
	}
	now := time.Now()
	s := &Sale{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		Amount:        amount,
		Currency:      currency,
		PaymentStatus: status,
		SaleDate:      now,
		CreatedAt:     now,
	}
	if subscriptionID != "" {
		s.SubscriptionID = &subscriptionID
	}
	return s, nil
}

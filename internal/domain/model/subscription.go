package model

import (
	"time"

	"softcontrol-backoffice/internal/domain"

	"github.com/google/uuid"
)

type SubscriptionType string

const (
	SubscriptionTypeMonthly  SubscriptionType = "monthly"
	SubscriptionTypeAnnual   SubscriptionType = "annual"
	SubscriptionTypeLifetime SubscriptionType = "lifetime"
	SubscriptionTypeTrial    SubscriptionType = "trial"
)

func (t SubscriptionType) Valid() bool {
	switch t {
	case SubscriptionTypeMonthly, SubscriptionTypeAnnual, SubscriptionTypeLifetime, SubscriptionTypeTrial:
		return true
	}
	return false
}

type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Subscription is a customer's purchase agreement for a product. Status and
// PaymentStatus are independent axes: a subscription stays pending while its
// payment status records a failed attempt, so the customer can retry.
type Subscription struct {
	ID                   string
	CustomerID           string
	ProductID            string
	SubscriptionType     SubscriptionType
	Status               SubscriptionStatus
	PaymentStatus        PaymentStatus
	StartDate            *time.Time
	EndDate              *time.Time
	TrialEndsAt          *time.Time
	AutoRenew            bool
	StripeSubscriptionID string
	StripeCustomerID     string
	LastPaymentDate      *time.Time
	NextPaymentDate      *time.Time
	Amount               float64
	Currency             string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewSubscription creates a checkout-initiated subscription: pending status,
// pending payment. Trial subscriptions start in trial status with a fixed
// expiry instead.
func NewSubscription(customerID string, product *Product) (*Subscription, error) {
	if customerID == "" || product == nil {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	s := &Subscription{
		ID:               uuid.NewString(),
		CustomerID:       customerID,
		ProductID:        product.ID,
		SubscriptionType: product.SubscriptionType,
		Status:           SubscriptionStatusPending,
		PaymentStatus:    PaymentStatusPending,
		Amount:           product.Price,
		Currency:         product.Currency,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if product.SubscriptionType == SubscriptionTypeTrial {
		s.Status = SubscriptionStatusTrial
		days := 30
		if product.DurationDays != nil {
			days = *product.DurationDays
		}
		ends := now.Add(time.Duration(days) * 24 * time.Hour)
		s.TrialEndsAt = &ends
		s.StartDate = &now
	}
	return s, nil
}

// IsTrialExpired is the read-time trial classification: no stored transition
// flips a trial to expired, queries and callers derive it from the clock.
func (s *Subscription) IsTrialExpired(now time.Time) bool {
	return s.SubscriptionType == SubscriptionTypeTrial &&
		s.TrialEndsAt != nil && s.TrialEndsAt.Before(now)
}

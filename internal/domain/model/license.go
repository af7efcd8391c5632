package model

import (
	"crypto/rand"
	"time"

	"softcontrol-backoffice/internal/domain"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type LicenseStatus string

const (
	LicenseStatusActive   LicenseStatus = "active"
	LicenseStatusInactive LicenseStatus = "inactive"
	LicenseStatusExpired  LicenseStatus = "expired"
	LicenseStatusRevoked  LicenseStatus = "revoked"
)

// License is an activatable credential derived from a subscription. It is
// issued inactive and only flipped active once the parent subscription's
// payment is confirmed. Invariant: CurrentActivations <= MaxActivations.
type License struct {
	ID                 string
	CustomerID         string
	SubscriptionID     *string
	ProductID          *string
	LicenseKey         string
	Status             LicenseStatus
	ActivationDate     *time.Time
	ExpirationDate     *time.Time
	MaxActivations     int
	CurrentActivations int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewLicenseKey generates a sortable, globally unique license key.
func NewLicenseKey() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// NewLicense issues an inactive license bound to a subscription.
func NewLicense(customerID, subscriptionID, productID string, maxActivations int) (*License, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if maxActivations <= 0 {
		maxActivations = 1
	}
	now := time.Now()
	l := &License{
		ID:             uuid.NewString(),
		CustomerID:     customerID,
		LicenseKey:     NewLicenseKey(),
		Status:         LicenseStatusInactive,
		MaxActivations: maxActivations,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if subscriptionID != "" {
		l.SubscriptionID = &subscriptionID
	}
	if productID != "" {
		l.ProductID = &productID
	}
	return l, nil
}

// IsExpired is the read-time expiry classification, analogous to trial
// expiry on subscriptions.
func (l *License) IsExpired(now time.Time) bool {
	return l.ExpirationDate != nil && l.ExpirationDate.Before(now)
}

// Usable reports whether the license can accept a client activation.
func (l *License) Usable(now time.Time) bool {
	return l.Status == LicenseStatusActive && !l.IsExpired(now)
}

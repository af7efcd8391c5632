package model

import (
	"time"

	"softcontrol-backoffice/internal/domain"

	"github.com/google/uuid"
)

// Product is a sellable plan for the licensed software.
type Product struct {
	ID               string
	Name             string
	Description      string
	SKU              string
	SubscriptionType SubscriptionType
	Price            float64
	Currency         string
	DurationDays     *int
	Features         []string
	StripePriceID    string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewProduct(name, sku string, kind SubscriptionType, price float64, currency string) (*Product, error) {
	if name == "" || price < 0 {
		return nil, domain.ErrInvalidArgument
	}
	if !kind.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	if currency == "" {
		currency = "EUR"
	}
	now := time.Now()
	return &Product{
		ID:               uuid.NewString(),
		Name:             name,
		SKU:              sku,
		SubscriptionType: kind,
		Price:            price,
		Currency:         currency,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

package model

import (
	"strings"
	"time"

	"softcontrol-backoffice/internal/domain"

	"github.com/google/uuid"
)

// Customer is a license purchaser. At most one non-deleted customer may
// exist per email; AuthUserID is an optional linkage to the identity
// provider and may be absent in legacy rows.
type Customer struct {
	ID          string
	AuthUserID  *string
	Email       string
	FullName    string
	Phone       string
	CompanyName string
	Address     string
	City        string
	Country     string
	TaxID       string
	Notes       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCustomer builds an active customer. When fullName is empty it falls
// back to the local part of the email, matching auto-provisioning on first
// login.
func NewCustomer(email, fullName, companyName string) (*Customer, error) {
	if email == "" {
		return nil, domain.ErrInvalidArgument
	}
	if fullName == "" {
		fullName = EmailLocalPart(email)
	}
	now := time.Now()
	return &Customer{
		ID:          uuid.NewString(),
		Email:       email,
		FullName:    fullName,
		CompanyName: companyName,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// EmailLocalPart returns everything before the '@', or the input unchanged
// when it contains none.
func EmailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

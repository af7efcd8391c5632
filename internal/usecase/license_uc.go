// File: internal/usecase/license_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/repository"
	"softcontrol-backoffice/internal/infra/logging"
)

// Compile-time check
var _ LicenseUseCase = (*licenseUC)(nil)

// LicenseUseCase manages license credentials and client activations.
type LicenseUseCase interface {
	Issue(ctx context.Context, customerID, subscriptionID, productID string, maxActivations int) (*model.License, error)
	// Revoke is unconditional: it applies to any license regardless of
	// current state, so support can kill a leaked key immediately.
	Revoke(ctx context.Context, id string) error
	// ActivateKey consumes one activation slot for a client install.
	ActivateKey(ctx context.Context, licenseKey string) (*model.License, error)
	Get(ctx context.Context, id string) (*model.License, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*model.License, error)
}

type licenseUC struct {
	licenses repository.LicenseRepository
	log      *zerolog.Logger
}

func NewLicenseUseCase(licenses repository.LicenseRepository, logger *zerolog.Logger) *licenseUC {
	return &licenseUC{licenses: licenses, log: logger}
}

func (u *licenseUC) Issue(ctx context.Context, customerID, subscriptionID, productID string, maxActivations int) (*model.License, error) {
	defer logging.TraceDuration(u.log, "LicenseUC.Issue")()
	lic, err := model.NewLicense(customerID, subscriptionID, productID, maxActivations)
	if err != nil {
		return nil, err
	}
	if err := u.licenses.Save(ctx, repository.NoTX, lic); err != nil {
		return nil, err
	}
	u.log.Info().Str("license_id", lic.ID).Str("customer_id", customerID).Msg("license issued")
	return lic, nil
}

func (u *licenseUC) Revoke(ctx context.Context, id string) error {
	defer logging.TraceDuration(u.log, "LicenseUC.Revoke")()
	lic, err := u.licenses.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return err
	}
	lic.Status = model.LicenseStatusRevoked
	lic.UpdatedAt = time.Now()
	if err := u.licenses.Save(ctx, repository.NoTX, lic); err != nil {
		return err
	}
	u.log.Info().Str("license_id", id).Msg("license revoked")
	return nil
}

func (u *licenseUC) ActivateKey(ctx context.Context, licenseKey string) (*model.License, error) {
	defer logging.TraceDuration(u.log, "LicenseUC.ActivateKey")()
	if licenseKey == "" {
		return nil, domain.ErrInvalidArgument
	}
	lic, err := u.licenses.FindByKey(ctx, repository.NoTX, licenseKey)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if !lic.Usable(now) {
		return nil, domain.ErrLicenseNotUsable
	}
	if lic.CurrentActivations >= lic.MaxActivations {
		return nil, domain.ErrActivationExceeded
	}
	lic.CurrentActivations++
	lic.UpdatedAt = now
	if err := u.licenses.Save(ctx, repository.NoTX, lic); err != nil {
		return nil, err
	}
	return lic, nil
}

func (u *licenseUC) Get(ctx context.Context, id string) (*model.License, error) {
	return u.licenses.FindByID(ctx, repository.NoTX, id)
}

func (u *licenseUC) ListByCustomer(ctx context.Context, customerID string) ([]*model.License, error) {
	return u.licenses.ListByCustomer(ctx, repository.NoTX, customerID)
}

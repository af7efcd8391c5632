// File: internal/usecase/auth_uc.go
package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/adapter"
	"softcontrol-backoffice/internal/domain/ports/repository"
	"softcontrol-backoffice/internal/infra/logging"
)

// Compile-time check
var _ AuthUseCase = (*authUC)(nil)

// AuthUseCase resolves an authenticated session to the back-office user
// behind it: staff, customer, or neither.
type AuthUseCase interface {
	Resolve(ctx context.Context, session adapter.Session) (*model.AuthUser, error)
}

type authUC struct {
	profiles  repository.ProfileRepository
	customers repository.CustomerRepository
	log       *zerolog.Logger
}

func NewAuthUseCase(profiles repository.ProfileRepository, customers repository.CustomerRepository, logger *zerolog.Logger) *authUC {
	return &authUC{profiles: profiles, customers: customers, log: logger}
}

// Resolve maps the session to exactly one of staff/customer/none. A first
// login without a matching customer record auto-provisions one; that insert
// is best-effort and performed at most once per call.
func (u *authUC) Resolve(ctx context.Context, session adapter.Session) (*model.AuthUser, error) {
	defer logging.TraceDuration(u.log, "AuthUC.Resolve")()

	if session.SubjectID == "" {
		return nil, domain.ErrInvalidArgument
	}

	out := &model.AuthUser{
		SubjectID: session.SubjectID,
		Email:     session.Email,
		Kind:      model.UserKindNone,
	}

	profile, err := u.profiles.FindByID(ctx, repository.NoTX, session.SubjectID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		u.log.Error().Err(err).Str("subject_id", session.SubjectID).Msg("profile lookup failed")
	}
	if profile != nil {
		out.Kind = model.UserKindStaff
		out.Profile = profile
		return out, nil
	}

	if customer := u.lookupCustomer(ctx, session); customer != nil {
		out.Kind = model.UserKindCustomer
		out.Customer = customer
		return out, nil
	}

	if session.Email == "" {
		return out, nil
	}

	// First login with no record on either side: provision a customer from
	// the session metadata. Failure is logged and the caller still gets an
	// anonymous result.
	customer, err := model.NewCustomer(session.Email, session.Metadata["full_name"], session.Metadata["company_name"])
	if err != nil {
		u.log.Error().Err(err).Msg("cannot build customer from session")
		return out, nil
	}
	if err := u.customers.Insert(ctx, repository.NoTX, customer); err != nil {
		u.log.Error().Err(err).Str("email", logging.Redact(session.Email, false)).Msg("customer auto-provision failed")
		return out, nil
	}
	u.log.Info().Str("customer_id", customer.ID).Msg("customer auto-provisioned on first login")
	out.Kind = model.UserKindCustomer
	out.Customer = customer
	return out, nil
}

// lookupCustomer tries email first (more reliable than the identity
// linkage, which legacy rows may lack), then auth_user_id. Any linkage
// lookup failure counts as not-found.
func (u *authUC) lookupCustomer(ctx context.Context, session adapter.Session) *model.Customer {
	if session.Email != "" {
		c, err := u.customers.FindByEmail(ctx, repository.NoTX, session.Email)
		if err == nil && c != nil {
			return c
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			u.log.Warn().Err(err).Msg("customer email lookup failed")
		}
	}
	c, err := u.customers.FindByAuthUserID(ctx, repository.NoTX, session.SubjectID)
	if err != nil || c == nil {
		return nil
	}
	return c
}

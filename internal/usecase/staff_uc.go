// File: internal/usecase/staff_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/adapter"
	"softcontrol-backoffice/internal/domain/ports/repository"
	"softcontrol-backoffice/internal/infra/logging"
)

// Compile-time check
var _ StaffUseCase = (*staffUC)(nil)

type CreateStaffInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Role     model.Role
}

// CreateStaffResult reports the provisioned account. Warning is set on
// partial success: the identity account exists but the profile row could not
// be written, so a retry of the same request will repair it.
type CreateStaffResult struct {
	UserID  string
	Warning string
}

// StaffUseCase manages back-office staff accounts. Role policy is enforced
// here, not in the transport layer.
type StaffUseCase interface {
	CreateStaff(ctx context.Context, actor model.Role, in CreateStaffInput) (*CreateStaffResult, error)
	List(ctx context.Context) ([]*model.Profile, error)
	UpdateRole(ctx context.Context, actor model.Role, subjectID string, role model.Role) error
	SetActive(ctx context.Context, actor model.Role, subjectID string, active bool) error
	DeleteStaff(ctx context.Context, actor model.Role, subjectID string) error
}

type staffUC struct {
	profiles repository.ProfileRepository
	identity adapter.IdentityProvider
	log      *zerolog.Logger
}

func NewStaffUseCase(profiles repository.ProfileRepository, identity adapter.IdentityProvider, logger *zerolog.Logger) *staffUC {
	return &staffUC{profiles: profiles, identity: identity, log: logger}
}

// CreateStaff provisions an identity account and its staff profile. The two
// writes are not atomic: when the profile write fails the call still
// succeeds with a warning, because the identity account cannot be enrolled
// twice under the same email.
func (u *staffUC) CreateStaff(ctx context.Context, actor model.Role, in CreateStaffInput) (*CreateStaffResult, error) {
	defer logging.TraceDuration(u.log, "StaffUC.CreateStaff")()

	if in.Email == "" || in.Password == "" || in.FullName == "" {
		return nil, domain.ErrInvalidArgument
	}
	if len(in.Password) < 6 {
		return nil, domain.ErrWeakPassword
	}
	role := in.Role
	if role == "" {
		role = model.RoleStaff
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	if !model.CanCreateRole(actor, role) {
		return nil, domain.ErrPermissionDenied
	}

	if _, err := u.profiles.FindByEmail(ctx, repository.NoTX, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("staff email check: %w", err)
	}

	userID, err := u.identity.CreateUser(ctx, adapter.CreateUserParams{
		Email:    in.Email,
		Password: in.Password,
		Metadata: map[string]string{"full_name": in.FullName},
	})
	if err != nil {
		// The provider may have the account already (e.g. a previous partial
		// run). Reuse it instead of failing enrollment.
		existing, ferr := u.identity.FindUserByEmail(ctx, in.Email)
		if ferr != nil || existing == nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrIdentityProvider, err)
		}
		userID = existing.ID
		u.log.Warn().Str("user_id", userID).Msg("reusing existing identity account")
	}

	profile, err := model.NewProfile(userID, in.FullName, in.Email, in.Phone, role)
	if err != nil {
		return nil, err
	}
	if err := u.profiles.Upsert(ctx, repository.NoTX, profile); err != nil {
		u.log.Error().Err(err).Str("user_id", userID).Msg("profile write failed after identity creation")
		return &CreateStaffResult{
			UserID:  userID,
			Warning: "account created but profile setup failed; retry to repair",
		}, nil
	}

	u.log.Info().Str("user_id", userID).Str("role", string(role)).Msg("staff account created")
	return &CreateStaffResult{UserID: userID}, nil
}

func (u *staffUC) List(ctx context.Context) ([]*model.Profile, error) {
	defer logging.TraceDuration(u.log, "StaffUC.List")()
	return u.profiles.List(ctx, repository.NoTX)
}

func (u *staffUC) UpdateRole(ctx context.Context, actor model.Role, subjectID string, role model.Role) error {
	defer logging.TraceDuration(u.log, "StaffUC.UpdateRole")()
	if !role.Valid() {
		return domain.ErrInvalidArgument
	}
	profile, err := u.profiles.FindByID(ctx, repository.NoTX, subjectID)
	if err != nil {
		return err
	}
	if !model.CanEditRole(actor, profile.Role) || !model.CanCreateRole(actor, role) {
		return domain.ErrPermissionDenied
	}
	profile.Role = role
	return u.profiles.Upsert(ctx, repository.NoTX, profile)
}

func (u *staffUC) SetActive(ctx context.Context, actor model.Role, subjectID string, active bool) error {
	defer logging.TraceDuration(u.log, "StaffUC.SetActive")()
	profile, err := u.profiles.FindByID(ctx, repository.NoTX, subjectID)
	if err != nil {
		return err
	}
	if !model.CanEditRole(actor, profile.Role) {
		return domain.ErrPermissionDenied
	}
	profile.IsActive = active
	return u.profiles.Upsert(ctx, repository.NoTX, profile)
}

func (u *staffUC) DeleteStaff(ctx context.Context, actor model.Role, subjectID string) error {
	defer logging.TraceDuration(u.log, "StaffUC.DeleteStaff")()
	profile, err := u.profiles.FindByID(ctx, repository.NoTX, subjectID)
	if err != nil {
		return err
	}
	if !model.CanDeleteRole(actor, profile.Role) {
		return domain.ErrPermissionDenied
	}
	return u.profiles.Delete(ctx, repository.NoTX, subjectID)
}

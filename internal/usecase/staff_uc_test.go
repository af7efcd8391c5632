//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"softcontrol-backoffice/internal/domain"
	"softcontrol-backoffice/internal/domain/model"
	"softcontrol-backoffice/internal/domain/ports/adapter"
	"softcontrol-backoffice/internal/domain/ports/repository"
	"softcontrol-backoffice/internal/usecase"
)

func validStaffInput() usecase.CreateStaffInput {
	return usecase.CreateStaffInput{
		Email:    "new.staff@example.com",
		Password: "s3cret!",
		FullName: "New Staff",
		Role:     model.RoleStaff,
	}
}

func TestStaffUseCase_CreateStaff(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	t.Run("should provision the identity account and profile", func(t *testing.T) {
		// --- Arrange ---
		profiles := NewMockProfileRepo()
		identity := NewMockIdentity()
		uc := usecase.NewStaffUseCase(profiles, identity, testLogger)

		// --- Act ---
		res, err := uc.CreateStaff(ctx, model.RoleAdmin, validStaffInput())

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if res.UserID == "" {
			t.Fatal("expected a user id")
		}
		if res.Warning != "" {
			t.Errorf("expected no warning, got %q", res.Warning)
		}
		p, err := profiles.FindByID(ctx, nil, res.UserID)
		if err != nil {
			t.Fatalf("expected a profile row, got: %v", err)
		}
		if p.Role != model.RoleStaff || !p.IsActive {
			t.Errorf("expected an active staff profile, got role=%q active=%v", p.Role, p.IsActive)
		}
	})

	t.Run("should reject a short password", func(t *testing.T) {
		uc := usecase.NewStaffUseCase(NewMockProfileRepo(), NewMockIdentity(), testLogger)
		in := validStaffInput()
		in.Password = "abc"
		if _, err := uc.CreateStaff(ctx, model.RoleAdmin, in); !errors.Is(err, domain.ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword, got: %v", err)
		}
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		uc := usecase.NewStaffUseCase(NewMockProfileRepo(), NewMockIdentity(), testLogger)
		in := validStaffInput()
		in.FullName = ""
		if _, err := uc.CreateStaff(ctx, model.RoleAdmin, in); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got: %v", err)
		}
	})

	t.Run("should reject a duplicate staff email", func(t *testing.T) {
		// --- Arrange ---
		profiles := NewMockProfileRepo()
		existing, _ := model.NewProfile("subj-0", "Existing", "new.staff@example.com", "", model.RoleStaff)
		profiles.Upsert(ctx, nil, existing)
		uc := usecase.NewStaffUseCase(profiles, NewMockIdentity(), testLogger)

		// --- Act / Assert ---
		if _, err := uc.CreateStaff(ctx, model.RoleAdmin, validStaffInput()); !errors.Is(err, domain.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got: %v", err)
		}
	})

	t.Run("should deny role escalation by the actor", func(t *testing.T) {
		uc := usecase.NewStaffUseCase(NewMockProfileRepo(), NewMockIdentity(), testLogger)
		in := validStaffInput()
		in.Role = model.RoleAdmin
		if _, err := uc.CreateStaff(ctx, model.RoleAdmin, in); !errors.Is(err, domain.ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got: %v", err)
		}
		if _, err := uc.CreateStaff(ctx, model.RoleStaff, validStaffInput()); !errors.Is(err, domain.ErrPermissionDenied) {
			t.Fatalf("expected read-only staff to be denied, got: %v", err)
		}
	})

	t.Run("should reuse an identity account that already exists", func(t *testing.T) {
		// --- Arrange ---
		profiles := NewMockProfileRepo()
		identity := NewMockIdentity()
		identity.CreateUserFunc = func(ctx context.Context, p adapter.CreateUserParams) (string, error) {
			return "", errors.New("email already registered upstream")
		}
		identity.FindUserByEmailFunc = func(ctx context.Context, email string) (*adapter.IdentityUser, error) {
			return &adapter.IdentityUser{ID: "idp-existing", Email: email}, nil
		}
		uc := usecase.NewStaffUseCase(profiles, identity, testLogger)

		// --- Act ---
		res, err := uc.CreateStaff(ctx, model.RoleSuperAdmin, validStaffInput())

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if res.UserID != "idp-existing" {
			t.Errorf("expected the upstream account reused, got %q", res.UserID)
		}
	})

	t.Run("should surface a provider fault when no account can be found", func(t *testing.T) {
		// --- Arrange ---
		identity := NewMockIdentity()
		identity.CreateUserFunc = func(ctx context.Context, p adapter.CreateUserParams) (string, error) {
			return "", errors.New("gateway timeout")
		}
		uc := usecase.NewStaffUseCase(NewMockProfileRepo(), identity, testLogger)

		// --- Act / Assert ---
		if _, err := uc.CreateStaff(ctx, model.RoleAdmin, validStaffInput()); !errors.Is(err, domain.ErrIdentityProvider) {
			t.Fatalf("expected ErrIdentityProvider, got: %v", err)
		}
	})

	t.Run("should report partial success when the profile write fails", func(t *testing.T) {
		// --- Arrange ---
		profiles := NewMockProfileRepo()
		profiles.UpsertFunc = func(ctx context.Context, tx repository.Tx, p *model.Profile) error {
			return errors.New("deadlock detected")
		}
		uc := usecase.NewStaffUseCase(profiles, NewMockIdentity(), testLogger)

		// --- Act ---
		res, err := uc.CreateStaff(ctx, model.RoleAdmin, validStaffInput())

		// --- Assert ---
		if err != nil {
			t.Fatalf("partial success must not error, got: %v", err)
		}
		if res.Warning == "" {
			t.Error("expected a warning describing the partial state")
		}
		if res.UserID == "" {
			t.Error("expected the identity account id even on partial success")
		}
	})
}

func TestStaffUseCase_Policy(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()

	seed := func(t *testing.T) (*MockProfileRepo, usecase.StaffUseCase) {
		t.Helper()
		profiles := NewMockProfileRepo()
		admin, _ := model.NewProfile("subj-admin", "Admin", "admin@example.com", "", model.RoleAdmin)
		staff, _ := model.NewProfile("subj-staff", "Staff", "staff@example.com", "", model.RoleStaff)
		profiles.Upsert(ctx, nil, admin)
		profiles.Upsert(ctx, nil, staff)
		return profiles, usecase.NewStaffUseCase(profiles, NewMockIdentity(), testLogger)
	}

	t.Run("should let an admin deactivate staff but not peers", func(t *testing.T) {
		profiles, uc := seed(t)
		if err := uc.SetActive(ctx, model.RoleAdmin, "subj-staff", false); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		p, _ := profiles.FindByID(ctx, nil, "subj-staff")
		if p.IsActive {
			t.Error("expected the staff profile deactivated")
		}
		if err := uc.SetActive(ctx, model.RoleAdmin, "subj-admin", false); !errors.Is(err, domain.ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied for an admin target, got: %v", err)
		}
	})

	t.Run("should let only super admins delete admins", func(t *testing.T) {
		_, uc := seed(t)
		if err := uc.DeleteStaff(ctx, model.RoleAdmin, "subj-admin"); !errors.Is(err, domain.ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied, got: %v", err)
		}
		if err := uc.DeleteStaff(ctx, model.RoleSuperAdmin, "subj-admin"); err != nil {
			t.Fatalf("expected super admin delete to pass, got: %v", err)
		}
	})

	t.Run("should deny role changes beyond the actor's reach", func(t *testing.T) {
		profiles, uc := seed(t)
		if err := uc.UpdateRole(ctx, model.RoleAdmin, "subj-staff", model.RoleAdmin); !errors.Is(err, domain.ErrPermissionDenied) {
			t.Fatalf("expected ErrPermissionDenied on promotion to admin, got: %v", err)
		}
		if err := uc.UpdateRole(ctx, model.RoleSuperAdmin, "subj-staff", model.RoleAdmin); err != nil {
			t.Fatalf("expected super admin promotion to pass, got: %v", err)
		}
		p, _ := profiles.FindByID(ctx, nil, "subj-staff")
		if p.Role != model.RoleAdmin {
			t.Errorf("expected role updated, got %q", p.Role)
		}
	})
}

package model

// UserKind tags the outcome of identity resolution.
type UserKind string

const (
	UserKindStaff    UserKind = "staff"
	UserKindCustomer UserKind = "customer"
	UserKindNone     UserKind = "none"
)

// AuthUser is the resolved identity behind an authenticated session:
// exactly one of Profile (staff) or Customer is set when Kind says so.
type AuthUser struct {
	SubjectID string
	Email     string
	Kind      UserKind
	Profile   *Profile
	Customer  *Customer
}

func (u *AuthUser) IsStaff() bool {
	return u != nil && u.Kind == UserKindStaff && u.Profile != nil && u.Profile.IsActive
}

func (u *AuthUser) IsAdmin() bool {
	return u.IsStaff() && (u.Profile.Role == RoleAdmin || u.Profile.Role == RoleSuperAdmin)
}

func (u *AuthUser) IsSuperAdmin() bool {
	return u.IsStaff() && u.Profile.Role == RoleSuperAdmin
}

func (u *AuthUser) IsCustomer() bool {
	return u != nil && u.Kind == UserKindCustomer && u.Customer != nil && u.Customer.IsActive
}

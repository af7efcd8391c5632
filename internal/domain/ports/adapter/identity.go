package adapter

import "context"

// Session is what the identity provider knows about an authenticated
// subject. Metadata carries free-form signup attributes such as full_name
// and company_name.
type Session struct {
	SubjectID string
	Email     string
	Metadata  map[string]string
}

// IdentityUser is an account held by the external identity provider.
type IdentityUser struct {
	ID       string
	Email    string
	Metadata map[string]string
}

// CreateUserParams provisions a confirmed account on the provider side.
type CreateUserParams struct {
	Email    string
	Password string
	Metadata map[string]string
}

// IdentityProvider is the port to the external auth service. Password
// handling, hashing and session issuance all live on the provider side.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, subjectID string) error
	GetUser(ctx context.Context, subjectID string) (*IdentityUser, error)
	FindUserByEmail(ctx context.Context, email string) (*IdentityUser, error)
	// CreateUser provisions an account with admin privileges and returns
	// the new subject id.
	CreateUser(ctx context.Context, p CreateUserParams) (string, error)
}

package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrActivationExceeded = errors.New("activation limit reached")
	ErrLicenseNotUsable   = errors.New("license is not usable")
	ErrPermissionDenied   = errors.New("permission denied")

	// Infrastructure-facing errors surfaced through repositories and adapters
	ErrOperationFailed    = errors.New("storage operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
	ErrInvalidExecContext = errors.New("invalid transaction context")
	ErrIdentityProvider   = errors.New("identity provider fault")
)

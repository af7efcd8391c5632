package model

import (
	"time"

	"softcontrol-backoffice/internal/domain"
)

// Profile is a staff identity. Its ID equals the identity provider's
// subject id so a session maps to at most one profile.
type Profile struct {
	ID        string
	FullName  string
	Email     string
	Phone     string
	AvatarURL string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProfile(subjectID, fullName, email, phone string, role Role) (*Profile, error) {
	if subjectID == "" || fullName == "" || email == "" {
		return nil, domain.ErrInvalidArgument
	}
	if role == "" {
		role = RoleStaff
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &Profile{
		ID:        subjectID,
		FullName:  fullName,
		Email:     email,
		Phone:     phone,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

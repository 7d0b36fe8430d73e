package model

import (
	"context"

	"github.com/google/uuid"
)

// UserStore defines the collaborator contract for the external user record
// store. The credential core never mutates user fields other than the
// password-login flag.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	SetPasswordLoginEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
}

// User represents the external user record, reduced to the fields the
// credential flows need.
type User struct {
	ID              uuid.UUID
	Username        string
	Email           string
	PreferredLocale string
	Verified        bool
}

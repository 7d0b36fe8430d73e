package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CredentialStore owns the persisted password hash record. At most one
// record exists per user; Upsert replaces the record wholesale.
type CredentialStore interface {
	Upsert(ctx context.Context, credential PasswordCredential) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (PasswordCredential, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// PasswordCredential is a user's current password hash record. The salt is
// embedded in the SaltedHash encoding.
type PasswordCredential struct {
	UserID     uuid.UUID
	SaltedHash string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

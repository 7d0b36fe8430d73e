package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ResetCodeStore persists password-reset codes.
//
// Consume and InvalidateActive are both conditional updates guarded by
// `used = FALSE AND invalid = FALSE`; whichever lands first at the store
// wins, which is all the ordering the reset flow requires.
type ResetCodeStore interface {
	Create(ctx context.Context, code ResetCode) error
	Consume(ctx context.Context, userID uuid.UUID, code string, notBefore time.Time) (bool, error)
	InvalidateActive(ctx context.Context, userID uuid.UUID, notBefore time.Time) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// ResetCode describes a password-reset code. Used flips exactly once on
// successful validation; Invalid flips when a newer code supersedes it.
type ResetCode struct {
	UserID    uuid.UUID
	Code      string
	Used      bool
	Invalid   bool
	CreatedAt time.Time
}

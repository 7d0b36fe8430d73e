package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LoginTokenStore persists single-use login tokens.
//
// Consume is the atomicity primitive the verification flow depends on: it
// must flip Used in the same statement that checks the token is still
// unused and young enough, so that two racing verifications cannot both
// succeed. Rows are never deleted; stale tokens age out via the notBefore
// predicate.
type LoginTokenStore interface {
	Create(ctx context.Context, token LoginToken) error
	Consume(ctx context.Context, userID uuid.UUID, token string, notBefore time.Time) (bool, error)
}

// LoginToken describes a short-lived, single-use login token.
type LoginToken struct {
	UserID    uuid.UUID
	Token     string
	Used      bool
	CreatedAt time.Time
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndanilin/accountd/internal/model"
)

// Ensure LoginTokenRepository implements the model.LoginTokenStore interface.
var _ model.LoginTokenStore = (*LoginTokenRepository)(nil)

type LoginTokenRepository struct {
	db db
}

func NewLoginTokenRepository(db db) *LoginTokenRepository {
	return &LoginTokenRepository{db: db}
}

func (r *LoginTokenRepository) Create(ctx context.Context, token model.LoginToken) error {
	const query = `
        INSERT INTO login_tokens (user_id, token, used, created_at)
        VALUES ($1, $2, $3, $4)
    `

	if _, err := r.db.Exec(ctx, query,
		token.UserID,
		token.Token,
		token.Used,
		token.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create login token: %w", err)
	}
	return nil
}

// Consume flips Used on the matching unused, unexpired token. The check and
// the flip are one statement so concurrent verifications of the same token
// are serialized by the database: at most one call returns true.
func (r *LoginTokenRepository) Consume(ctx context.Context, userID uuid.UUID, token string, notBefore time.Time) (bool, error) {
	const query = `
        UPDATE login_tokens
        SET used = TRUE
        WHERE user_id = $1 AND token = $2 AND used = FALSE AND created_at >= $3
    `

	tag, err := r.db.Exec(ctx, query, userID, token, notBefore.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to consume login token: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

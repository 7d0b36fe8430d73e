package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ndanilin/accountd/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

type CredentialRepository struct {
	db db
}

func NewCredentialRepository(db db) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Upsert replaces the user's password hash record wholesale. The conflict
// clause guarantees exactly one record per user after the call without a
// transaction.
func (r *CredentialRepository) Upsert(ctx context.Context, credential model.PasswordCredential) error {
	const query = `
        INSERT INTO credentials (user_id, salted_hash, created_at, updated_at)
        VALUES ($1, $2, NOW(), NOW())
        ON CONFLICT (user_id) DO UPDATE SET salted_hash = EXCLUDED.salted_hash, updated_at = NOW()
    `

	if _, err := r.db.Exec(ctx, query, credential.UserID, credential.SaltedHash); err != nil {
		return fmt.Errorf("failed to upsert credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.PasswordCredential, error) {
	const query = `
        SELECT user_id, salted_hash, created_at, updated_at
        FROM credentials WHERE user_id = $1
    `

	var cred model.PasswordCredential
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&cred.UserID,
		&cred.SaltedHash,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PasswordCredential{}, model.ErrNotFound
		}
		return model.PasswordCredential{}, fmt.Errorf("failed to get credential by user id: %w", err)
	}
	return cred, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	const query = `
        DELETE FROM credentials WHERE user_id = $1
    `

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndanilin/accountd/internal/model"
)

var _ model.ResetCodeStore = (*ResetCodeRepository)(nil)

type ResetCodeRepository struct {
	db db
}

func NewResetCodeRepository(db db) *ResetCodeRepository {
	return &ResetCodeRepository{db: db}
}

func (r *ResetCodeRepository) Create(ctx context.Context, code model.ResetCode) error {
	const query = `
        INSERT INTO reset_codes (user_id, code, used, invalid, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `

	if _, err := r.db.Exec(ctx, query,
		code.UserID,
		code.Code,
		code.Used,
		code.Invalid,
		code.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create reset code: %w", err)
	}
	return nil
}

// Consume flips Used on the matching active code. Racing consumptions and
// invalidations are resolved here: whichever update lands first wins.
func (r *ResetCodeRepository) Consume(ctx context.Context, userID uuid.UUID, code string, notBefore time.Time) (bool, error) {
	const query = `
        UPDATE reset_codes
        SET used = TRUE
        WHERE user_id = $1 AND code = $2 AND used = FALSE AND invalid = FALSE AND created_at >= $3
    `

	tag, err := r.db.Exec(ctx, query, userID, code, notBefore.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to consume reset code: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// InvalidateActive marks every still-usable code for the user invalid and
// returns how many were affected.
func (r *ResetCodeRepository) InvalidateActive(ctx context.Context, userID uuid.UUID, notBefore time.Time) (int64, error) {
	const query = `
        UPDATE reset_codes
        SET invalid = TRUE
        WHERE user_id = $1 AND used = FALSE AND invalid = FALSE AND created_at >= $2
    `

	tag, err := r.db.Exec(ctx, query, userID, notBefore.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate reset codes: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteExpired removes codes issued before the cutoff. Expired codes are
// unverifiable either way; this only keeps the table from growing without
// bound.
func (r *ResetCodeRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const query = `
        DELETE FROM reset_codes
        WHERE created_at < $1
    `

	tag, err := r.db.Exec(ctx, query, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reset codes: %w", err)
	}
	return tag.RowsAffected(), nil
}

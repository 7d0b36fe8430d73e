package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndanilin/accountd/internal/logger"
	"github.com/ndanilin/accountd/internal/model"
)

// ErrResetIssue is the generic failure surfaced when a reset code cannot
// be created. Internal detail stays in the log.
var ErrResetIssue = errors.New("error creating reset authorization")

// ResetCodes issues, validates, and bulk-invalidates password-reset codes.
type ResetCodes struct {
	users     model.UserStore
	codes     model.ResetCodeStore
	generator model.TokenGenerator
	notifier  model.Notifier
	ttl       time.Duration
	resetURL  string
	logger    *logger.Logger
}

func NewResetCodes(
	users model.UserStore,
	codes model.ResetCodeStore,
	generator model.TokenGenerator,
	notifier model.Notifier,
	ttl time.Duration,
	resetURL string,
	logger *logger.Logger,
) *ResetCodes {
	return &ResetCodes{
		users:     users,
		codes:     codes,
		generator: generator,
		notifier:  notifier,
		ttl:       ttl,
		resetURL:  resetURL,
		logger:    logger,
	}
}

// InvalidateActive marks every unused, unexpired code for the user invalid
// and returns the count. Issue calls this first so only the newest code
// for a user is ever usable.
func (s *ResetCodes) InvalidateActive(ctx context.Context, userID uuid.UUID) (int64, error) {
	notBefore := time.Now().UTC().Add(-s.ttl)

	count, err := s.codes.InvalidateActive(ctx, userID, notBefore)
	if err != nil {
		s.logger.Error("reset code service: failed to invalidate codes",
			"user_id", userID,
			"error", err.Error())
		return 0, fmt.Errorf("failed to invalidate reset codes: %w", err)
	}

	if count > 0 {
		s.logger.Info("reset code service: invalidated active codes",
			"user_id", userID,
			"count", count)
	}

	return count, nil
}

// Issue supersedes any active codes for the user, persists a fresh one,
// and emits the reset_code_created event with the reset URL. Store
// failures are logged with detail and surfaced as ErrResetIssue.
func (s *ResetCodes) Issue(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		s.logger.Error("reset code service: failed to get user",
			"user_id", userID,
			"error", err.Error())
		return ErrResetIssue
	}

	if _, err := s.InvalidateActive(ctx, userID); err != nil {
		return ErrResetIssue
	}

	code, err := s.generator.GenerateResetCode()
	if err != nil {
		s.logger.Error("reset code service: failed to generate code",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	err = s.codes.Create(ctx, model.ResetCode{
		UserID:    user.ID,
		Code:      code,
		Used:      false,
		Invalid:   false,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("reset code service: failed to persist code",
			"user_id", userID,
			"error", err.Error())
		return ErrResetIssue
	}

	resetURL := fmt.Sprintf("%s?uid=%s&code=%s", s.resetURL, user.ID, code)
	emit(ctx, s.notifier, s.logger, model.EventResetCodeCreated, map[string]any{
		"email":    user.Email,
		"username": user.Username,
		"resetUrl": resetURL,
	})

	s.logger.Info("reset code service: code issued",
		"user_id", userID)

	return nil
}

// Validate consumes the code if it is active and within the TTL window.
// An invalid, expired, consumed, or unknown code returns (false, nil):
// failing a reset-code check is a normal branch for callers, not an
// exceptional one. Only store failures produce an error.
func (s *ResetCodes) Validate(ctx context.Context, code string, userID uuid.UUID) (bool, error) {
	notBefore := time.Now().UTC().Add(-s.ttl)

	ok, err := s.codes.Consume(ctx, userID, code, notBefore)
	if err != nil {
		s.logger.Error("reset code service: failed to consume code",
			"user_id", userID,
			"error", err.Error())
		return false, fmt.Errorf("failed to consume reset code: %w", err)
	}

	if ok {
		s.logger.Info("reset code service: code validated",
			"user_id", userID)
	}

	return ok, nil
}

// PurgeExpired deletes codes older than the TTL. Expired codes can never
// validate again, so this is housekeeping only.
func (s *ResetCodes) PurgeExpired(ctx context.Context) (int64, error) {
	before := time.Now().UTC().Add(-s.ttl)

	count, err := s.codes.DeleteExpired(ctx, before)
	if err != nil {
		s.logger.Error("reset code service: failed to purge expired codes",
			"error", err.Error())
		return 0, fmt.Errorf("failed to purge expired reset codes: %w", err)
	}

	if count > 0 {
		s.logger.Info("reset code service: purged expired codes",
			"count", count)
	}

	return count, nil
}

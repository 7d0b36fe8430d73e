package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndanilin/accountd/internal/logger"
	"github.com/ndanilin/accountd/internal/model"
)

// Generic failures surfaced by password operations. Detail is logged, not
// exposed; RemovePassword in particular never reveals whether a credential
// existed.
var (
	ErrLoginDatabase  = errors.New("login database error")
	ErrRemovePassword = errors.New("error removing password")
)

// Passwords manages the persisted password hash record per user.
type Passwords struct {
	users    model.UserStore
	creds    model.CredentialStore
	hasher   model.SecretHasher
	notifier model.Notifier
	logger   *logger.Logger
}

func NewPasswords(
	users model.UserStore,
	creds model.CredentialStore,
	hasher model.SecretHasher,
	notifier model.Notifier,
	logger *logger.Logger,
) *Passwords {
	return &Passwords{
		users:    users,
		creds:    creds,
		hasher:   hasher,
		notifier: notifier,
		logger:   logger,
	}
}

// SetPassword hashes the plaintext, replaces the user's credential record
// wholesale, enables password login on the user record, and emits the
// user-password-changed event.
func (s *Passwords) SetPassword(ctx context.Context, userID uuid.UUID, plaintext string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		s.logger.Error("password service: failed to get user",
			"user_id", userID,
			"error", err.Error())
		return ErrLoginDatabase
	}

	saltedHash, err := s.hasher.Hash(plaintext)
	if err != nil {
		s.logger.Error("password service: failed to hash password",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.creds.Upsert(ctx, model.PasswordCredential{
		UserID:     user.ID,
		SaltedHash: saltedHash,
	})
	if err != nil {
		s.logger.Error("password service: failed to store credential",
			"user_id", userID,
			"error", err.Error())
		return ErrLoginDatabase
	}

	if err := s.users.SetPasswordLoginEnabled(ctx, user.ID, true); err != nil {
		s.logger.Error("password service: failed to enable password login",
			"user_id", userID,
			"error", err.Error())
		return ErrLoginDatabase
	}

	emit(ctx, s.notifier, s.logger, model.EventPasswordChanged, map[string]any{
		"email":    user.Email,
		"username": user.Username,
	})

	s.logger.Info("password service: password set",
		"user_id", userID)

	return nil
}

// RemovePassword destroys the credential record and disables password
// login. The outcome does not reveal whether a credential existed.
func (s *Passwords) RemovePassword(ctx context.Context, userID uuid.UUID) error {
	if err := s.creds.Delete(ctx, userID); err != nil {
		s.logger.Error("password service: failed to delete credential",
			"user_id", userID,
			"error", err.Error())
		return ErrRemovePassword
	}

	if err := s.users.SetPasswordLoginEnabled(ctx, userID, false); err != nil {
		s.logger.Error("password service: failed to disable password login",
			"user_id", userID,
			"error", err.Error())
		return ErrRemovePassword
	}

	s.logger.Info("password service: password removed",
		"user_id", userID)

	return nil
}

// VerifyPassword checks the plaintext against the user's current salted
// hash. A user without a credential record is a caller error and yields
// ErrNotFound; callers must check existence before offering password
// login.
func (s *Passwords) VerifyPassword(ctx context.Context, plaintext string, userID uuid.UUID) (bool, error) {
	cred, err := s.creds.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, model.ErrNotFound
		}
		s.logger.Error("password service: failed to get credential",
			"user_id", userID,
			"error", err.Error())
		return false, fmt.Errorf("failed to get credential: %w", err)
	}

	ok, err := s.hasher.Verify(plaintext, cred.SaltedHash)
	if err != nil {
		s.logger.Error("password service: failed to verify password",
			"user_id", userID,
			"error", err.Error())
		return false, fmt.Errorf("failed to verify password: %w", err)
	}

	return ok, nil
}

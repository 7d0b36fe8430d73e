package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndanilin/accountd/internal/logger"
	"github.com/ndanilin/accountd/internal/model"
)

// LoginTokens issues and verifies short-lived, single-use login tokens.
type LoginTokens struct {
	users     model.UserStore
	tokens    model.LoginTokenStore
	generator model.TokenGenerator
	notifier  model.Notifier
	ttl       time.Duration
	logger    *logger.Logger
}

func NewLoginTokens(
	users model.UserStore,
	tokens model.LoginTokenStore,
	generator model.TokenGenerator,
	notifier model.Notifier,
	ttl time.Duration,
	logger *logger.Logger,
) *LoginTokens {
	return &LoginTokens{
		users:     users,
		tokens:    tokens,
		generator: generator,
		notifier:  notifier,
		ttl:       ttl,
		logger:    logger,
	}
}

// Issue generates a login token for the user, persists it, and emits the
// login_token_email event carrying the verification URL. The event is
// emitted only after the row is committed; a notification failure is
// logged and never surfaced.
func (s *LoginTokens) Issue(ctx context.Context, userID uuid.UUID, returnURL string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("login token service: failed to get user",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to get user: %w", err)
	}

	token, err := s.generator.GenerateLoginToken()
	if err != nil {
		s.logger.Error("login token service: failed to generate token",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to generate login token: %w", err)
	}

	err = s.tokens.Create(ctx, model.LoginToken{
		UserID:    user.ID,
		Token:     token,
		Used:      false,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("login token service: failed to persist token",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to persist login token: %w", err)
	}

	loginURL := fmt.Sprintf("%s?uid=%s&token=%s", returnURL, user.ID, token)
	emit(ctx, s.notifier, s.logger, model.EventLoginTokenEmail, map[string]any{
		"userId":   user.ID.String(),
		"username": user.Username,
		"verified": user.Verified,
		"email":    user.Email,
		"loginUrl": loginURL,
		"token":    token,
	})

	s.logger.Info("login token service: token issued",
		"user_id", userID)

	return nil
}

// Verify consumes the token if it is unused and younger than the TTL. Any
// other outcome is ErrUnauthorized; callers cannot tell a wrong token from
// an expired or already-used one.
func (s *LoginTokens) Verify(ctx context.Context, userID uuid.UUID, token string) error {
	notBefore := time.Now().UTC().Add(-s.ttl)

	ok, err := s.tokens.Consume(ctx, userID, token, notBefore)
	if err != nil {
		s.logger.Error("login token service: failed to consume token",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to consume login token: %w", err)
	}
	if !ok {
		return model.ErrUnauthorized
	}

	s.logger.Info("login token service: token verified",
		"user_id", userID)

	return nil
}

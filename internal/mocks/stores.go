// Package mocks provides testify mocks for the store and notifier
// interfaces defined in internal/model.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ndanilin/accountd/internal/model"
)

type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) SetPasswordLoginEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	args := m.Called(ctx, id, enabled)
	return args.Error(0)
}

type LoginTokenStore struct {
	mock.Mock
}

func (m *LoginTokenStore) Create(ctx context.Context, token model.LoginToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *LoginTokenStore) Consume(ctx context.Context, userID uuid.UUID, token string, notBefore time.Time) (bool, error) {
	args := m.Called(ctx, userID, token, notBefore)
	return args.Bool(0), args.Error(1)
}

type ResetCodeStore struct {
	mock.Mock
}

func (m *ResetCodeStore) Create(ctx context.Context, code model.ResetCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *ResetCodeStore) Consume(ctx context.Context, userID uuid.UUID, code string, notBefore time.Time) (bool, error) {
	args := m.Called(ctx, userID, code, notBefore)
	return args.Bool(0), args.Error(1)
}

func (m *ResetCodeStore) InvalidateActive(ctx context.Context, userID uuid.UUID, notBefore time.Time) (int64, error) {
	args := m.Called(ctx, userID, notBefore)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ResetCodeStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type CredentialStore struct {
	mock.Mock
}

func (m *CredentialStore) Upsert(ctx context.Context, credential model.PasswordCredential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

func (m *CredentialStore) GetByUserID(ctx context.Context, userID uuid.UUID) (model.PasswordCredential, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.PasswordCredential), args.Error(1)
}

func (m *CredentialStore) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type Notifier struct {
	mock.Mock
}

func (m *Notifier) Send(ctx context.Context, event string, payload map[string]any) error {
	args := m.Called(ctx, event, payload)
	return args.Error(0)
}

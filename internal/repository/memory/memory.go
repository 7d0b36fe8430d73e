// Package memory provides mutex-guarded in-memory implementations of the
// credential stores. They mirror the conditional-update semantics of the
// postgres repositories and back the service-level scenario and race
// tests; nothing in the server wires them into production paths.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ndanilin/accountd/internal/model"
)

var (
	_ model.LoginTokenStore = (*LoginTokenStore)(nil)
	_ model.ResetCodeStore  = (*ResetCodeStore)(nil)
	_ model.CredentialStore = (*CredentialStore)(nil)
)

// LoginTokenStore keeps login tokens in memory.
type LoginTokenStore struct {
	mu     sync.Mutex
	tokens []model.LoginToken
}

func NewLoginTokenStore() *LoginTokenStore {
	return &LoginTokenStore{}
}

func (s *LoginTokenStore) Create(ctx context.Context, token model.LoginToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = append(s.tokens, token)
	return nil
}

func (s *LoginTokenStore) Consume(ctx context.Context, userID uuid.UUID, token string, notBefore time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tokens {
		t := &s.tokens[i]
		if t.UserID == userID && t.Token == token && !t.Used && !t.CreatedAt.Before(notBefore) {
			t.Used = true
			return true, nil
		}
	}
	return false, nil
}

// ResetCodeStore keeps reset codes in memory.
type ResetCodeStore struct {
	mu    sync.Mutex
	codes []model.ResetCode
}

func NewResetCodeStore() *ResetCodeStore {
	return &ResetCodeStore{}
}

func (s *ResetCodeStore) Create(ctx context.Context, code model.ResetCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes = append(s.codes, code)
	return nil
}

func (s *ResetCodeStore) Consume(ctx context.Context, userID uuid.UUID, code string, notBefore time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.codes {
		c := &s.codes[i]
		if c.UserID == userID && c.Code == code && !c.Used && !c.Invalid && !c.CreatedAt.Before(notBefore) {
			c.Used = true
			return true, nil
		}
	}
	return false, nil
}

func (s *ResetCodeStore) InvalidateActive(ctx context.Context, userID uuid.UUID, notBefore time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for i := range s.codes {
		c := &s.codes[i]
		if c.UserID == userID && !c.Used && !c.Invalid && !c.CreatedAt.Before(notBefore) {
			c.Invalid = true
			count++
		}
	}
	return count, nil
}

func (s *ResetCodeStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.codes[:0]
	var count int64
	for _, c := range s.codes {
		if c.CreatedAt.Before(before) {
			count++
			continue
		}
		kept = append(kept, c)
	}
	s.codes = kept
	return count, nil
}

// CredentialStore keeps password credentials in memory.
type CredentialStore struct {
	mu    sync.Mutex
	creds map[uuid.UUID]model.PasswordCredential
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{creds: make(map[uuid.UUID]model.PasswordCredential)}
}

func (s *CredentialStore) Upsert(ctx context.Context, credential model.PasswordCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if existing, ok := s.creds[credential.UserID]; ok {
		credential.CreatedAt = existing.CreatedAt
	} else {
		credential.CreatedAt = now
	}
	credential.UpdatedAt = now
	s.creds[credential.UserID] = credential
	return nil
}

func (s *CredentialStore) GetByUserID(ctx context.Context, userID uuid.UUID) (model.PasswordCredential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cred, ok := s.creds[userID]
	if !ok {
		return model.PasswordCredential{}, model.ErrNotFound
	}
	return cred, nil
}

func (s *CredentialStore) Delete(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, userID)
	return nil
}

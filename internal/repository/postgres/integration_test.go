//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ndanilin/accountd/internal/model"
	repo "github.com/ndanilin/accountd/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "accountd_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/accountd_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func createTestUser(ctx context.Context, t *testing.T, conn *repo.Connection, email string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := conn.Exec(ctx, `
		INSERT INTO users (id, username, email, verified)
		VALUES ($1, $2, $3, TRUE)
	`, id, email, email)
	require.NoError(t, err)
	return id
}

func TestRepositories_CredentialLifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	t.Run("user_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		id := createTestUser(ctx, t, conn, "user@example.com")

		byID, err := ur.GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "user@example.com", byID.Email)

		byEmail, err := ur.GetByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		require.Equal(t, id, byEmail.ID)

		require.NoError(t, ur.SetPasswordLoginEnabled(ctx, id, true))
		require.ErrorIs(t, ur.SetPasswordLoginEnabled(ctx, uuid.New(), true), model.ErrNotFound)
	})

	t.Run("login_token_repository", func(t *testing.T) {
		lr := repo.NewLoginTokenRepository(conn)
		id := createTestUser(ctx, t, conn, "token@example.com")

		token := model.LoginToken{
			UserID:    id,
			Token:     "lusab-babad",
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, lr.Create(ctx, token))

		notBefore := time.Now().Add(-30 * time.Minute)

		ok, err := lr.Consume(ctx, id, token.Token, notBefore)
		require.NoError(t, err)
		require.True(t, ok)

		// Second consumption of the same token must lose.
		ok, err = lr.Consume(ctx, id, token.Token, notBefore)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("login_token_expiry_window", func(t *testing.T) {
		lr := repo.NewLoginTokenRepository(conn)
		id := createTestUser(ctx, t, conn, "stale@example.com")

		stale := model.LoginToken{
			UserID:    id,
			Token:     "gutuk-damuh",
			CreatedAt: time.Now().UTC().Add(-time.Hour),
		}
		require.NoError(t, lr.Create(ctx, stale))

		ok, err := lr.Consume(ctx, id, stale.Token, time.Now().Add(-30*time.Minute))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("reset_code_repository", func(t *testing.T) {
		rr := repo.NewResetCodeRepository(conn)
		id := createTestUser(ctx, t, conn, "reset@example.com")
		notBefore := time.Now().Add(-24 * time.Hour)

		first := model.ResetCode{UserID: id, Code: "c0de1", CreatedAt: time.Now().UTC()}
		second := model.ResetCode{UserID: id, Code: "c0de2", CreatedAt: time.Now().UTC()}
		require.NoError(t, rr.Create(ctx, first))
		require.NoError(t, rr.Create(ctx, second))

		count, err := rr.InvalidateActive(ctx, id, notBefore)
		require.NoError(t, err)
		require.Equal(t, int64(2), count)

		ok, err := rr.Consume(ctx, id, first.Code, notBefore)
		require.NoError(t, err)
		require.False(t, ok)

		third := model.ResetCode{UserID: id, Code: "c0de3", CreatedAt: time.Now().UTC()}
		require.NoError(t, rr.Create(ctx, third))

		ok, err = rr.Consume(ctx, id, third.Code, notBefore)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = rr.Consume(ctx, id, third.Code, notBefore)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("reset_code_purge", func(t *testing.T) {
		rr := repo.NewResetCodeRepository(conn)
		id := createTestUser(ctx, t, conn, "purge@example.com")

		old := model.ResetCode{UserID: id, Code: "old", CreatedAt: time.Now().UTC().Add(-48 * time.Hour)}
		require.NoError(t, rr.Create(ctx, old))

		count, err := rr.DeleteExpired(ctx, time.Now().Add(-24*time.Hour))
		require.NoError(t, err)
		require.GreaterOrEqual(t, count, int64(1))
	})

	t.Run("credential_repository", func(t *testing.T) {
		cr := repo.NewCredentialRepository(conn)
		id := createTestUser(ctx, t, conn, "cred@example.com")

		require.NoError(t, cr.Upsert(ctx, model.PasswordCredential{UserID: id, SaltedHash: "hash-one"}))
		require.NoError(t, cr.Upsert(ctx, model.PasswordCredential{UserID: id, SaltedHash: "hash-two"}))

		cred, err := cr.GetByUserID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "hash-two", cred.SaltedHash)

		require.NoError(t, cr.Delete(ctx, id))
		_, err = cr.GetByUserID(ctx, id)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

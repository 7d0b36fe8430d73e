package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndanilin/accountd/internal/model"
)

func TestLoginTokenRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	token := model.LoginToken{
		UserID:    uuid.New(),
		Token:     "lusab-babad",
		Used:      false,
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO login_tokens`).
		WithArgs(token.UserID, token.Token, token.Used, token.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewLoginTokenRepository(mock)
	require.NoError(t, repo.Create(context.Background(), token))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginTokenRepository_Consume(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      bool
		wantErr   bool
	}{
		{
			name: "consumes matching row",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE login_tokens`).
					WithArgs(userID, "lusab-babad", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			want: true,
		},
		{
			name: "no matching row",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE login_tokens`).
					WithArgs(userID, "lusab-babad", pgxmock.AnyArg()).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			want: false,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE login_tokens`).
					WithArgs(userID, "lusab-babad", pgxmock.AnyArg()).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewLoginTokenRepository(mock)
			got, err := repo.Consume(context.Background(), userID, "lusab-babad", time.Now().Add(-30*time.Minute))

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

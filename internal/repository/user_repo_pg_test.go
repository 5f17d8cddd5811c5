package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"uconnect/internal/domain"
)

// mockPG wraps a sqlmock connection in a postgres-dialect Bun handle, for
// driving error paths the sqlite harness cannot produce.
func mockPG(t *testing.T) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestUserRepository_Create_pg_unique_violation(t *testing.T) {
	ctx := context.Background()
	db, mock := mockPG(t)
	repo := NewUserRepository(db)

	tests := []struct {
		name       string
		constraint string
		wantErr    error
	}{
		{"registration key", "users_registration_key", domain.ErrDuplicateRegistration},
		{"email key", "users_email_key", domain.ErrDuplicateEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(`INSERT INTO "users"`).
				WillReturnError(&pq.Error{Code: "23505", Constraint: tt.constraint})

			now := time.Now()
			err := repo.Create(ctx, &domain.User{
				Registration: "20240001",
				Name:         "Alice",
				Email:        "alice@campus.edu",
				PasswordHash: "x",
				Role:         domain.RoleStudent,
				AccessStatus: domain.AccessActive,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_pg_other_error_passthrough(t *testing.T) {
	ctx := context.Background()
	db, mock := mockPG(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pq.Error{Code: "53300", Message: "too many connections"})

	now := time.Now()
	err := repo.Create(ctx, &domain.User{
		Registration: "20240001",
		Name:         "Alice",
		Email:        "alice@campus.edu",
		PasswordHash: "x",
		Role:         domain.RoleStudent,
		AccessStatus: domain.AccessActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

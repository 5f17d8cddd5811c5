package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"uconnect/internal/database"
	"uconnect/internal/domain"
)

// testDB opens an in-memory sqlite database with the full schema created.
func testDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := database.Open(database.Config{Driver: "sqlite", DSN: "file::memory:?cache=shared"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.CreateSchema(context.Background(), db))
	return db
}

// seedUser inserts a user with generated natural keys and returns it.
func seedUser(t *testing.T, db *bun.DB, n int) *domain.User {
	t.Helper()
	now := time.Now()
	u := &domain.User{
		Registration: fmt.Sprintf("2024%04d", n),
		Name:         fmt.Sprintf("User %d", n),
		Email:        fmt.Sprintf("user%d@campus.edu", n),
		PasswordHash: "x",
		Role:         domain.RoleStudent,
		AccessStatus: domain.AccessActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := db.NewInsert().Model(u).Exec(context.Background())
	require.NoError(t, err)
	return u
}

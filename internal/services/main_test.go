package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"uconnect/internal/database"
	"uconnect/internal/domain"
)

// testDB opens an in-memory sqlite database with the schema created, so
// services are exercised against real repositories.
func testDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := database.Open(database.Config{Driver: "sqlite", DSN: "file::memory:?cache=shared"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.CreateSchema(context.Background(), db))
	return db
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct{}

func (fakePasswordHasher) Hash(password string) (string, error) {
	return "hash-" + password, nil
}

func (fakePasswordHasher) Compare(hash, password string) error {
	if hash != "hash-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID int64, expiry time.Duration) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return fmt.Sprintf("token-%d", userID), time.Now().Add(expiry), nil
}

func (f *fakeTokenIssuer) Verify(token string) (int64, error) {
	var userID int64
	if _, err := fmt.Sscanf(token, "token-%d", &userID); err != nil {
		return 0, errors.New("malformed token")
	}
	return userID, nil
}

// fakeEmailService records sent announcement notices.
type fakeEmailService struct {
	sent []*domain.AnnouncementNoticeEmailData
	err  error
}

func (f *fakeEmailService) SendAnnouncementNotice(ctx context.Context, data *domain.AnnouncementNoticeEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// mustCreateUser registers a user through the service with generated keys.
func mustCreateUser(t *testing.T, svc domain.UserService, n int, role domain.Role) *domain.User {
	t.Helper()
	user, err := svc.CreateUser(context.Background(),
		fmt.Sprintf("2024%04d", n),
		fmt.Sprintf("User %d", n),
		fmt.Sprintf("user%d@campus.edu", n),
		"password123",
		role,
	)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func strPtr(s string) *string { return &s }

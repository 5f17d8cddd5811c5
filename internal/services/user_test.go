package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uconnect/internal/domain"
	"uconnect/internal/repository"
)

func newUserService(t *testing.T) domain.UserService {
	t.Helper()
	return NewUserService(repository.NewUserRepository(testDB(t)), fakePasswordHasher{})
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)

	user, err := svc.CreateUser(ctx, "20240001", "Alice", "Alice@Campus.EDU", "secret", domain.RoleStudent)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@campus.edu", user.Email, "email is lowercased")
	assert.Equal(t, "hash-secret", user.PasswordHash)
	assert.Equal(t, domain.AccessActive, user.AccessStatus)
}

func TestUserService_CreateUser_validation(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)

	_, err := svc.CreateUser(ctx, "", "Alice", "a@campus.edu", "secret", domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrMissingFields)

	_, err = svc.CreateUser(ctx, "20240001", "Alice", "not-an-email", "secret", domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateUser(ctx, "20240001", "Alice", "a@campus.edu", "secret", domain.Role("wizard"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserService_CreateUser_duplicate_ordering(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)
	mustCreateUser(t, svc, 1, domain.RoleStudent)

	// both keys collide: registration is reported first
	_, err := svc.CreateUser(ctx, "20240001", "Clone", "user1@campus.edu", "secret", domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrDuplicateRegistration)

	// only email collides
	_, err = svc.CreateUser(ctx, "20249999", "Clone", "user1@campus.edu", "secret", domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)
	alice := mustCreateUser(t, svc, 1, domain.RoleStudent)
	mustCreateUser(t, svc, 2, domain.RoleStudent)

	updated, err := svc.UpdateUser(ctx, alice.ID, domain.UserUpdate{Name: strPtr("Alice Renamed")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Alice Renamed", updated.Name)

	// taking another user's email is a conflict
	_, err = svc.UpdateUser(ctx, alice.ID, domain.UserUpdate{Email: strPtr("user2@campus.edu")})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	// keeping your own email is not
	updated, err = svc.UpdateUser(ctx, alice.ID, domain.UserUpdate{Email: strPtr("user1@campus.edu")})
	require.NoError(t, err)
	require.NotNil(t, updated)

	// unknown user: absent, not an error
	missing, err := svc.UpdateUser(ctx, 424242, domain.UserUpdate{Name: strPtr("Ghost")})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserService_UpdateAccessStatus_self_forbidden(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)
	admin := mustCreateUser(t, svc, 1, domain.RoleAdmin)

	// even an admin may not change their own status
	_, err := svc.UpdateAccessStatus(ctx, admin.ID, admin, domain.AccessSuspended)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserService_UpdateAccessStatus(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)
	admin := mustCreateUser(t, svc, 1, domain.RoleAdmin)
	student := mustCreateUser(t, svc, 2, domain.RoleStudent)

	updated, err := svc.UpdateAccessStatus(ctx, student.ID, admin, domain.AccessSuspended)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.AccessSuspended, updated.AccessStatus)

	_, err = svc.UpdateAccessStatus(ctx, student.ID, admin, domain.AccessStatus("frozen"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserService_UpdateRole_authorization(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)
	admin := mustCreateUser(t, svc, 1, domain.RoleAdmin)
	coordinator := mustCreateUser(t, svc, 2, domain.RoleCoordinator)
	student := mustCreateUser(t, svc, 3, domain.RoleStudent)
	teacher := mustCreateUser(t, svc, 4, domain.RoleTeacher)

	// admins are unrestricted
	updated, err := svc.UpdateRole(ctx, student.ID, admin, domain.RoleCoordinator)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCoordinator, updated.Role)

	// coordinators may assign student/teacher
	updated, err = svc.UpdateRole(ctx, teacher.ID, coordinator, domain.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, updated.Role)

	// but not admin or coordinator
	_, err = svc.UpdateRole(ctx, teacher.ID, coordinator, domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.UpdateRole(ctx, teacher.ID, coordinator, domain.RoleCoordinator)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// other roles may not assign at all
	_, err = svc.UpdateRole(ctx, teacher.ID, student, domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// self-modification is forbidden regardless of role
	_, err = svc.UpdateRole(ctx, admin.ID, admin, domain.RoleStudent)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserService_AuthenticateUser_indistinguishable(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)
	mustCreateUser(t, svc, 1, domain.RoleStudent)

	// unknown registration and wrong password both come back (nil, nil)
	user, err := svc.AuthenticateUser(ctx, "00000000", "password123")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.AuthenticateUser(ctx, "20240001", "wrong-password")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.AuthenticateUser(ctx, "20240001", "password123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "20240001", user.Registration)
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)
	alice := mustCreateUser(t, svc, 1, domain.RoleStudent)

	ok, err := svc.ChangePassword(ctx, alice.ID, "wrong", "newpass")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.ChangePassword(ctx, alice.ID, "password123", "newpass")
	require.NoError(t, err)
	assert.True(t, ok)

	// old password no longer works
	user, err := svc.AuthenticateUser(ctx, alice.Registration, "password123")
	require.NoError(t, err)
	assert.Nil(t, user)
	user, err = svc.AuthenticateUser(ctx, alice.Registration, "newpass")
	require.NoError(t, err)
	assert.NotNil(t, user)

	_, err = svc.ChangePassword(ctx, 424242, "x", "y")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_list_and_count(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t)
	mustCreateUser(t, svc, 1, domain.RoleStudent)
	mustCreateUser(t, svc, 2, domain.RoleStudent)
	mustCreateUser(t, svc, 3, domain.RoleTeacher)

	students, err := svc.ListUsersByRole(ctx, domain.RoleStudent, 0, 10)
	require.NoError(t, err)
	assert.Len(t, students, 2)

	total, err := svc.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	teachers, err := svc.CountUsersByRole(ctx, domain.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, 1, teachers)
}

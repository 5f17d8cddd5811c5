package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Role is a user's application role.
type Role string

const (
	RoleStudent     Role = "student"
	RoleTeacher     Role = "teacher"
	RoleCoordinator Role = "coordinator"
	RoleAdmin       Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleCoordinator, RoleAdmin:
		return true
	}
	return false
}

// AccessStatus is a user's account status. Only active users may log in.
type AccessStatus string

const (
	AccessActive    AccessStatus = "active"
	AccessInactive  AccessStatus = "inactive"
	AccessSuspended AccessStatus = "suspended"
)

// Valid reports whether s is one of the known statuses.
func (s AccessStatus) Valid() bool {
	switch s {
	case AccessActive, AccessInactive, AccessSuspended:
		return true
	}
	return false
}

// User represents a registered campus user. Registration number and email are
// natural keys, both unique.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64        `bun:"id,pk,autoincrement" json:"id"`
	Registration string       `bun:"registration,notnull,unique" json:"registration"`
	Name         string       `bun:"name,notnull" json:"name"`
	Email        string       `bun:"email,notnull,unique" json:"email"`
	PasswordHash string       `bun:"password_hash,notnull" json:"-"`
	Role         Role         `bun:"role,notnull" json:"role"`
	AccessStatus AccessStatus `bun:"access_status,notnull,default:'active'" json:"access_status"`
	CreatedAt    time.Time    `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt    time.Time    `bun:"updated_at,notnull" json:"updated_at"`
}

// UserUpdate carries a partial user update; nil fields are left unchanged.
type UserUpdate struct {
	Registration *string
	Name         *string
	Email        *string
}

// PasswordHasher handles one-way hashing and verification of credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues and verifies access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64, expiry time.Duration) (token string, expiresAt time.Time, err error)
	Verify(token string) (userID int64, err error)
}

// UserRepository defines storage operations for users. Lookup methods return
// (nil, nil) when no matching user exists.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByRegistration(ctx context.Context, registration string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, params ListParams) ([]*User, error)
	ListByRole(ctx context.Context, role Role, skip, limit int) ([]*User, error)
	ListByAccessStatus(ctx context.Context, status AccessStatus, skip, limit int) ([]*User, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	RegistrationExists(ctx context.Context, registration string, excludeID int64) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role Role) (int, error)
	CountByStatus(ctx context.Context, status AccessStatus) (int, error)
}

// UserService defines the business logic for user management and
// authentication.
type UserService interface {
	CreateUser(ctx context.Context, registration, name, email, password string, role Role) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByRegistration(ctx context.Context, registration string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*User, error)
	ListUsersByRole(ctx context.Context, role Role, skip, limit int) ([]*User, error)
	ListUsersByStatus(ctx context.Context, status AccessStatus, skip, limit int) ([]*User, error)
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (*User, error)
	UpdateAccessStatus(ctx context.Context, targetID int64, actingUser *User, status AccessStatus) (*User, error)
	UpdateRole(ctx context.Context, targetID int64, actingUser *User, role Role) (*User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	AuthenticateUser(ctx context.Context, registration, password string) (*User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) (bool, error)
	CountUsers(ctx context.Context) (int, error)
	CountUsersByRole(ctx context.Context, role Role) (int, error)
}

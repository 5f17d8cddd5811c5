package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// AccessGrant assigns a named permission to a user.
type AccessGrant struct {
	bun.BaseModel `bun:"table:access_grants,alias:acc"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID     int64     `bun:"user_id,notnull" json:"user_id"`
	Permission string    `bun:"permission,notnull" json:"permission"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
}

// Session is an issued login session. The token is the primary key.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	Token          string    `bun:"token,pk" json:"token"`
	UserID         int64     `bun:"user_id,notnull" json:"user_id"`
	StartDate      time.Time `bun:"start_date,notnull" json:"start_date"`
	ExpirationDate time.Time `bun:"expiration_date,notnull" json:"expiration_date"`
}

// AccessGrantUpdate carries a partial access grant update.
type AccessGrantUpdate struct {
	Permission *string
}

// AccessRepository defines storage operations for access grants.
type AccessRepository interface {
	Create(ctx context.Context, g *AccessGrant) error
	GetByID(ctx context.Context, id int64) (*AccessGrant, error)
	List(ctx context.Context, params ListParams) ([]*AccessGrant, error)
	ListByUser(ctx context.Context, userID int64, skip, limit int) ([]*AccessGrant, error)
	FindPermission(ctx context.Context, userID int64, permission string) (*AccessGrant, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*AccessGrant, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// SessionRepository defines storage operations for login sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// AccessService defines the business logic for permission grants.
type AccessService interface {
	CreateGrant(ctx context.Context, userID int64, permission string) (*AccessGrant, error)
	ListUserPermissions(ctx context.Context, userID int64, skip, limit int) ([]*AccessGrant, error)
	ListAllPermissions(ctx context.Context, skip, limit int) ([]*AccessGrant, error)
	UpdateGrant(ctx context.Context, id int64, update AccessGrantUpdate) (*AccessGrant, error)
	DeleteGrant(ctx context.Context, id int64) (bool, error)
	CheckPermission(ctx context.Context, userID int64, permission string) (bool, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
}

// AuthService defines login, logout, and session validation.
type AuthService interface {
	Login(ctx context.Context, registration, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) (bool, error)
	Validate(ctx context.Context, token string) (*Session, error)
}

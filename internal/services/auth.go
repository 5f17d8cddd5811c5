package services

import (
	"context"
	"time"

	"uconnect/internal/domain"
)

const bearerTokenType = "bearer"

type authService struct {
	userService domain.UserService
	sessionRepo domain.SessionRepository
	issuer      domain.TokenIssuer
	tokenExpiry time.Duration
	now         func() time.Time
}

// NewAuthService creates an AuthService. The now func supplies the reference
// time for session expiry; pass nil for time.Now.
func NewAuthService(userService domain.UserService,
	sessionRepo domain.SessionRepository,
	issuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	now func() time.Time,
) domain.AuthService {
	if tokenExpiry <= 0 {
		tokenExpiry = 30 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &authService{
		userService: userService,
		sessionRepo: sessionRepo,
		issuer:      issuer,
		tokenExpiry: tokenExpiry,
		now:         now,
	}
}

// Login authenticates a registration/password pair, gates on access status,
// issues a token, and records a session row. Invalid credentials are
// indistinguishable between unknown registration and wrong password.
func (s *authService) Login(ctx context.Context, registration, password string) (*domain.LoginResult, error) {
	user, err := s.userService.AuthenticateUser(ctx, registration, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if user.AccessStatus != domain.AccessActive {
		return nil, domain.ErrAccessInactive
	}

	token, expiresAt, err := s.issuer.Issue(user.ID, s.tokenExpiry)
	if err != nil {
		return nil, err
	}
	session := &domain.Session{
		Token:          token,
		UserID:         user.ID,
		StartDate:      s.now(),
		ExpirationDate: expiresAt,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return &domain.LoginResult{
		AccessToken: token,
		TokenType:   bearerTokenType,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// Logout ends the session for the given token. Reports false when no session
// existed.
func (s *authService) Logout(ctx context.Context, token string) (bool, error) {
	return s.sessionRepo.Delete(ctx, token)
}

// Validate checks the token signature and the stored session. An expired
// session is deleted and reported as ErrSessionExpired.
func (s *authService) Validate(ctx context.Context, token string) (*domain.Session, error) {
	if _, err := s.issuer.Verify(token); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !session.ExpirationDate.After(s.now()) {
		if _, err := s.sessionRepo.Delete(ctx, token); err != nil {
			return nil, err
		}
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"uconnect/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
}

// NewUserService creates a UserService with the given repository and password
// hasher.
func NewUserService(userRepo domain.UserRepository, hasher domain.PasswordHasher) domain.UserService {
	return &userService{userRepo: userRepo, hasher: hasher}
}

// CreateUser registers a new user. Registration uniqueness is checked before
// email uniqueness so callers get a deterministic first violation. The
// password is hashed before storage; the plaintext is never persisted.
func (s *userService) CreateUser(ctx context.Context, registration, name, email, password string, role domain.Role) (*domain.User, error) {
	registration = strings.TrimSpace(registration)
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if registration == "" || name == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	if !emailRegexp.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}

	taken, err := s.userRepo.RegistrationExists(ctx, registration, 0)
	if err != nil {
		return nil, fmt.Errorf("check registration: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateRegistration
	}
	taken, err = s.userRepo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		Registration: registration,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		AccessStatus: domain.AccessActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) GetUserByRegistration(ctx context.Context, registration string) (*domain.User, error) {
	return s.userRepo.GetByRegistration(ctx, registration)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.GetByEmail(ctx, strings.ToLower(email))
}

func (s *userService) ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	return s.userRepo.List(ctx, domain.ListParams{Skip: skip, Limit: limit, OrderBy: "created_at", Reverse: true})
}

func (s *userService) ListUsersByRole(ctx context.Context, role domain.Role, skip, limit int) ([]*domain.User, error) {
	return s.userRepo.ListByRole(ctx, role, skip, limit)
}

func (s *userService) ListUsersByStatus(ctx context.Context, status domain.AccessStatus, skip, limit int) ([]*domain.User, error) {
	return s.userRepo.ListByAccessStatus(ctx, status, skip, limit)
}

// UpdateUser applies a partial profile update, re-checking natural-key
// uniqueness with the target excluded. Returns (nil, nil) if the user does
// not exist.
func (s *userService) UpdateUser(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	fields := map[string]any{}
	if update.Registration != nil {
		registration := strings.TrimSpace(*update.Registration)
		if registration != user.Registration {
			taken, err := s.userRepo.RegistrationExists(ctx, registration, id)
			if err != nil {
				return nil, fmt.Errorf("check registration: %w", err)
			}
			if taken {
				return nil, domain.ErrDuplicateRegistration
			}
		}
		fields["registration"] = registration
	}
	if update.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*update.Email))
		if !emailRegexp.MatchString(email) {
			return nil, fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
		}
		if email != user.Email {
			taken, err := s.userRepo.EmailExists(ctx, email, id)
			if err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if taken {
				return nil, domain.ErrDuplicateEmail
			}
		}
		fields["email"] = email
	}
	if update.Name != nil {
		fields["name"] = strings.TrimSpace(*update.Name)
	}
	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
	}
	return s.userRepo.Update(ctx, id, fields)
}

// UpdateAccessStatus changes a user's access status. Users may never change
// their own status, regardless of role.
func (s *userService) UpdateAccessStatus(ctx context.Context, targetID int64, actingUser *domain.User, status domain.AccessStatus) (*domain.User, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown access status %q", domain.ErrInvalidInput, status)
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, nil
	}
	if actingUser.ID == targetID {
		return nil, fmt.Errorf("%w: cannot modify own access status", domain.ErrForbidden)
	}
	return s.userRepo.Update(ctx, targetID, map[string]any{
		"access_status": status,
		"updated_at":    time.Now(),
	})
}

// UpdateRole changes a user's role. Self-modification is forbidden, admins
// are unrestricted, and coordinators may not grant admin or coordinator.
func (s *userService) UpdateRole(ctx context.Context, targetID int64, actingUser *domain.User, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, nil
	}
	if actingUser.ID == targetID {
		return nil, fmt.Errorf("%w: cannot modify own role", domain.ErrForbidden)
	}
	switch actingUser.Role {
	case domain.RoleAdmin:
		// unrestricted
	case domain.RoleCoordinator:
		if role == domain.RoleAdmin || role == domain.RoleCoordinator {
			return nil, fmt.Errorf("%w: coordinators cannot assign admin or coordinator roles", domain.ErrForbidden)
		}
	default:
		return nil, fmt.Errorf("%w: role %q cannot assign roles", domain.ErrForbidden, actingUser.Role)
	}
	return s.userRepo.Update(ctx, targetID, map[string]any{
		"role":       role,
		"updated_at": time.Now(),
	})
}

func (s *userService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return s.userRepo.Delete(ctx, id)
}

// AuthenticateUser verifies a registration/password pair. Unknown
// registration and wrong password both yield (nil, nil) so callers cannot
// probe which accounts exist.
func (s *userService) AuthenticateUser(ctx context.Context, registration, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByRegistration(ctx, registration)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, nil
	}
	return user, nil
}

// ChangePassword verifies the current password before accepting the new one.
// A failed verification returns false rather than an error; an unknown user
// is ErrNotFound because the contract requires an existing account.
func (s *userService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, domain.ErrNotFound
	}
	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return false, nil
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	updated, err := s.userRepo.Update(ctx, userID, map[string]any{
		"password_hash": hash,
		"updated_at":    time.Now(),
	})
	if err != nil {
		return false, err
	}
	return updated != nil, nil
}

func (s *userService) CountUsers(ctx context.Context) (int, error) {
	return s.userRepo.Count(ctx)
}

func (s *userService) CountUsersByRole(ctx context.Context, role domain.Role) (int, error) {
	return s.userRepo.CountByRole(ctx, role)
}

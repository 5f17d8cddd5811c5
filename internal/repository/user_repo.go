package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"uconnect/internal/domain"
)

type userRepository struct {
	*Generic[domain.User]
}

// NewUserRepository returns a user repository backed by db.
func NewUserRepository(db *bun.DB) domain.UserRepository {
	return &userRepository{Generic: NewGeneric[domain.User](db)}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if err := r.Generic.Create(ctx, u); err != nil {
		// The service pre-checks both natural keys; a conflict here means a
		// concurrent insert won the race. Keep the taxonomy identical.
		if errors.Is(err, domain.ErrConflict) {
			return classifyUserConflict(err)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByRegistration(ctx context.Context, registration string) (*domain.User, error) {
	return r.FindByFilter(ctx, map[string]any{"registration": registration})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.FindByFilter(ctx, map[string]any{"email": email})
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role, skip, limit int) ([]*domain.User, error) {
	return r.FindAllByFilter(ctx, skip, limit, map[string]any{"role": role})
}

func (r *userRepository) ListByAccessStatus(ctx context.Context, status domain.AccessStatus, skip, limit int) ([]*domain.User, error) {
	return r.FindAllByFilter(ctx, skip, limit, map[string]any{"access_status": status})
}

func (r *userRepository) RegistrationExists(ctx context.Context, registration string, excludeID int64) (bool, error) {
	return r.naturalKeyExists(ctx, "registration", registration, excludeID)
}

func (r *userRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.naturalKeyExists(ctx, "email", email, excludeID)
}

// naturalKeyExists probes uniqueness for a natural key, optionally excluding
// one id so updates don't collide with the record being updated.
func (r *userRepository) naturalKeyExists(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	q := r.DB().NewSelect().Model((*domain.User)(nil)).Where("? = ?", bun.Ident(column), value)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	ok, err := q.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("%s exists: %w", column, err)
	}
	return ok, nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	return r.Generic.Count(ctx, nil)
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	return r.Generic.Count(ctx, map[string]any{"role": role})
}

func (r *userRepository) CountByStatus(ctx context.Context, status domain.AccessStatus) (int, error) {
	return r.Generic.Count(ctx, map[string]any{"access_status": status})
}

// classifyUserConflict narrows a storage-level conflict to the violated
// natural key when the constraint name reveals it.
func classifyUserConflict(err error) error {
	msg := err.Error()
	switch {
	case containsFold(msg, "registration"):
		return domain.ErrDuplicateRegistration
	case containsFold(msg, "email"):
		return domain.ErrDuplicateEmail
	default:
		return err
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}

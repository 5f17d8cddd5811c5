package services

import (
	"context"
	"strings"
	"time"

	"uconnect/internal/domain"
)

type accessService struct {
	accessRepo domain.AccessRepository
	userRepo   domain.UserRepository
}

// NewAccessService creates an AccessService.
func NewAccessService(accessRepo domain.AccessRepository, userRepo domain.UserRepository) domain.AccessService {
	return &accessService{accessRepo: accessRepo, userRepo: userRepo}
}

// CreateGrant assigns a permission to an existing user.
func (s *accessService) CreateGrant(ctx context.Context, userID int64, permission string) (*domain.AccessGrant, error) {
	permission = strings.TrimSpace(permission)
	if permission == "" || userID == 0 {
		return nil, domain.ErrMissingFields
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	grant := &domain.AccessGrant{
		UserID:     userID,
		Permission: permission,
		CreatedAt:  time.Now(),
	}
	if err := s.accessRepo.Create(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

func (s *accessService) ListUserPermissions(ctx context.Context, userID int64, skip, limit int) ([]*domain.AccessGrant, error) {
	return s.accessRepo.ListByUser(ctx, userID, skip, limit)
}

func (s *accessService) ListAllPermissions(ctx context.Context, skip, limit int) ([]*domain.AccessGrant, error) {
	return s.accessRepo.List(ctx, domain.ListParams{Skip: skip, Limit: limit})
}

func (s *accessService) UpdateGrant(ctx context.Context, id int64, update domain.AccessGrantUpdate) (*domain.AccessGrant, error) {
	fields := map[string]any{}
	if update.Permission != nil {
		permission := strings.TrimSpace(*update.Permission)
		if permission == "" {
			return nil, domain.ErrMissingFields
		}
		fields["permission"] = permission
	}
	return s.accessRepo.Update(ctx, id, fields)
}

func (s *accessService) DeleteGrant(ctx context.Context, id int64) (bool, error) {
	return s.accessRepo.Delete(ctx, id)
}

// CheckPermission reports whether the user holds the named permission.
func (s *accessService) CheckPermission(ctx context.Context, userID int64, permission string) (bool, error) {
	grant, err := s.accessRepo.FindPermission(ctx, userID, permission)
	if err != nil {
		return false, err
	}
	return grant != nil, nil
}

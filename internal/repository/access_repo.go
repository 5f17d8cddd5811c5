package repository

import (
	"context"

	"github.com/uptrace/bun"

	"uconnect/internal/domain"
)

type accessRepository struct {
	*Generic[domain.AccessGrant]
}

// NewAccessRepository returns an access grant repository backed by db.
func NewAccessRepository(db *bun.DB) domain.AccessRepository {
	return &accessRepository{Generic: NewGeneric[domain.AccessGrant](db)}
}

func (r *accessRepository) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]*domain.AccessGrant, error) {
	return r.FindAllByFilter(ctx, skip, limit, map[string]any{"user_id": userID})
}

func (r *accessRepository) FindPermission(ctx context.Context, userID int64, permission string) (*domain.AccessGrant, error) {
	return r.FindByFilter(ctx, map[string]any{"user_id": userID, "permission": permission})
}

package repository

import (
	"context"

	"github.com/uptrace/bun"

	"uconnect/internal/domain"
)

type postRepository struct {
	*Generic[domain.Post]
}

// NewPostRepository returns a post repository backed by db.
func NewPostRepository(db *bun.DB) domain.PostRepository {
	return &postRepository{Generic: NewGeneric[domain.Post](db)}
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]*domain.Post, error) {
	return r.FindAllByFilter(ctx, skip, limit, map[string]any{"author_id": authorID})
}

type announcementRepository struct {
	*Generic[domain.Announcement]
}

// NewAnnouncementRepository returns an announcement repository backed by db.
func NewAnnouncementRepository(db *bun.DB) domain.AnnouncementRepository {
	return &announcementRepository{Generic: NewGeneric[domain.Announcement](db)}
}

func (r *announcementRepository) ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]*domain.Announcement, error) {
	return r.FindAllByFilter(ctx, skip, limit, map[string]any{"author_id": authorID})
}

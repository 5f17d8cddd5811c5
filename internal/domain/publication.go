package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Post is a user publication on the campus mural.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID       int64     `bun:"id,pk,autoincrement" json:"id"`
	Title    string    `bun:"title,notnull" json:"title"`
	Content  string    `bun:"content,notnull" json:"content"`
	Date     time.Time `bun:"date,notnull" json:"date"`
	AuthorID int64     `bun:"author_id,notnull" json:"author_id"`
}

// Announcement is an official communication published by staff.
type Announcement struct {
	bun.BaseModel `bun:"table:announcements,alias:an"`

	ID       int64     `bun:"id,pk,autoincrement" json:"id"`
	Title    string    `bun:"title,notnull" json:"title"`
	Content  string    `bun:"content,notnull" json:"content"`
	Date     time.Time `bun:"date,notnull" json:"date"`
	AuthorID int64     `bun:"author_id,notnull" json:"author_id"`
}

// PublicationUpdate carries a partial update for a post or announcement.
type PublicationUpdate struct {
	Title   *string
	Content *string
}

// PostRepository defines storage operations for posts.
type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	List(ctx context.Context, params ListParams) ([]*Post, error)
	ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]*Post, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*Post, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// AnnouncementRepository defines storage operations for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *Announcement) error
	GetByID(ctx context.Context, id int64) (*Announcement, error)
	List(ctx context.Context, params ListParams) ([]*Announcement, error)
	ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]*Announcement, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*Announcement, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// PostService defines the business logic for mural posts.
type PostService interface {
	CreatePost(ctx context.Context, title, content string, authorID int64) (*Post, error)
	GetPost(ctx context.Context, id int64) (*Post, error)
	ListPosts(ctx context.Context, skip, limit int) ([]*Post, error)
	ListPostsByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]*Post, error)
	UpdatePost(ctx context.Context, id int64, update PublicationUpdate) (*Post, error)
	DeletePost(ctx context.Context, id int64) (bool, error)
}

// AnnouncementService defines the business logic for announcements.
type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, title, content string, authorID int64) (*Announcement, error)
	GetAnnouncement(ctx context.Context, id int64) (*Announcement, error)
	ListAnnouncements(ctx context.Context, skip, limit int) ([]*Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int64, update PublicationUpdate) (*Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) (bool, error)
}

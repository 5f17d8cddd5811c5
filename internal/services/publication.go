package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"uconnect/internal/domain"
)

type postService struct {
	postRepo domain.PostRepository
	userRepo domain.UserRepository
}

// NewPostService creates a PostService.
func NewPostService(postRepo domain.PostRepository, userRepo domain.UserRepository) domain.PostService {
	return &postService{postRepo: postRepo, userRepo: userRepo}
}

func (s *postService) CreatePost(ctx context.Context, title, content string, authorID int64) (*domain.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" || authorID == 0 {
		return nil, domain.ErrMissingFields
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domain.ErrUnknownCreator
	}
	post := &domain.Post{
		Title:    title,
		Content:  content,
		Date:     time.Now(),
		AuthorID: authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *postService) ListPosts(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	return s.postRepo.List(ctx, domain.ListParams{Skip: skip, Limit: limit, OrderBy: "date", Reverse: true})
}

func (s *postService) ListPostsByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]*domain.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID, skip, limit)
}

func (s *postService) UpdatePost(ctx context.Context, id int64, update domain.PublicationUpdate) (*domain.Post, error) {
	fields, err := publicationFields(update)
	if err != nil {
		return nil, err
	}
	return s.postRepo.Update(ctx, id, fields)
}

func (s *postService) DeletePost(ctx context.Context, id int64) (bool, error) {
	return s.postRepo.Delete(ctx, id)
}

type announcementService struct {
	annRepo      domain.AnnouncementRepository
	userRepo     domain.UserRepository
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewAnnouncementService creates an AnnouncementService. emailService may be
// nil; notifications are then skipped.
func NewAnnouncementService(annRepo domain.AnnouncementRepository, userRepo domain.UserRepository, emailService domain.EmailService, logger *slog.Logger) domain.AnnouncementService {
	if logger == nil {
		logger = slog.Default()
	}
	return &announcementService{
		annRepo:      annRepo,
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
	}
}

// CreateAnnouncement publishes an announcement and, when a mailer is
// configured, notifies active users. Notification failures do not fail the
// publication.
func (s *announcementService) CreateAnnouncement(ctx context.Context, title, content string, authorID int64) (*domain.Announcement, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" || authorID == 0 {
		return nil, domain.ErrMissingFields
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domain.ErrUnknownCreator
	}
	ann := &domain.Announcement{
		Title:    title,
		Content:  content,
		Date:     time.Now(),
		AuthorID: authorID,
	}
	if err := s.annRepo.Create(ctx, ann); err != nil {
		return nil, err
	}
	if s.emailService != nil {
		s.notifyActiveUsers(ctx, ann, author)
	}
	return ann, nil
}

func (s *announcementService) notifyActiveUsers(ctx context.Context, ann *domain.Announcement, author *domain.User) {
	recipients, err := s.userRepo.ListByAccessStatus(ctx, domain.AccessActive, 0, domain.DefaultLimit)
	if err != nil {
		s.logger.Warn("announcement notice: list recipients failed", "error", err)
		return
	}
	for _, recipient := range recipients {
		if recipient.ID == author.ID {
			continue
		}
		data := &domain.AnnouncementNoticeEmailData{
			Email:      recipient.Email,
			Name:       recipient.Name,
			Title:      ann.Title,
			Content:    ann.Content,
			AuthorName: author.Name,
		}
		if err := s.emailService.SendAnnouncementNotice(ctx, data); err != nil {
			s.logger.Warn("announcement notice failed", "to", recipient.Email, "error", err)
		}
	}
}

func (s *announcementService) GetAnnouncement(ctx context.Context, id int64) (*domain.Announcement, error) {
	return s.annRepo.GetByID(ctx, id)
}

func (s *announcementService) ListAnnouncements(ctx context.Context, skip, limit int) ([]*domain.Announcement, error) {
	return s.annRepo.List(ctx, domain.ListParams{Skip: skip, Limit: limit, OrderBy: "date", Reverse: true})
}

func (s *announcementService) UpdateAnnouncement(ctx context.Context, id int64, update domain.PublicationUpdate) (*domain.Announcement, error) {
	fields, err := publicationFields(update)
	if err != nil {
		return nil, err
	}
	return s.annRepo.Update(ctx, id, fields)
}

func (s *announcementService) DeleteAnnouncement(ctx context.Context, id int64) (bool, error) {
	return s.annRepo.Delete(ctx, id)
}

func publicationFields(update domain.PublicationUpdate) (map[string]any, error) {
	fields := map[string]any{}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, domain.ErrEmptyTitle
		}
		fields["title"] = title
	}
	if update.Content != nil {
		content := strings.TrimSpace(*update.Content)
		if content == "" {
			return nil, domain.ErrMissingFields
		}
		fields["content"] = content
	}
	return fields, nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"uconnect/internal/domain"
)

type conversationService struct {
	convRepo domain.ConversationRepository
	userRepo domain.UserRepository
}

// NewConversationService creates a ConversationService.
func NewConversationService(convRepo domain.ConversationRepository, userRepo domain.UserRepository) domain.ConversationService {
	return &conversationService{convRepo: convRepo, userRepo: userRepo}
}

// CreateConversation opens a conversation and enrolls the initial
// participants. Participant ids that do not resolve to users are skipped.
func (s *conversationService) CreateConversation(ctx context.Context, title string, convType domain.ConversationType, participantIDs []int64) (*domain.Conversation, error) {
	if !convType.Valid() {
		return nil, domain.ErrUnknownConversationType
	}
	now := time.Now()
	conv := &domain.Conversation{
		Title:     strings.TrimSpace(title),
		Type:      convType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, err
	}
	for _, userID := range participantIDs {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		if err := s.convRepo.AddParticipant(ctx, conv.ID, userID); err != nil {
			return nil, err
		}
	}
	return conv, nil
}

func (s *conversationService) GetConversation(ctx context.Context, id int64) (*domain.Conversation, error) {
	return s.convRepo.GetByID(ctx, id)
}

func (s *conversationService) ListByParticipant(ctx context.Context, userID int64, skip, limit int) ([]*domain.Conversation, error) {
	return s.convRepo.ListByParticipant(ctx, userID, skip, limit)
}

func (s *conversationService) UpdateConversation(ctx context.Context, id int64, update domain.ConversationUpdate) (*domain.Conversation, error) {
	fields := map[string]any{}
	if update.Title != nil {
		fields["title"] = strings.TrimSpace(*update.Title)
	}
	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
	}
	return s.convRepo.Update(ctx, id, fields)
}

func (s *conversationService) DeleteConversation(ctx context.Context, id int64) (bool, error) {
	return s.convRepo.Delete(ctx, id)
}

// AddParticipant enrolls a user into an existing conversation.
func (s *conversationService) AddParticipant(ctx context.Context, conversationID, userID int64) error {
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if conv == nil {
		return fmt.Errorf("%w: conversation %d", domain.ErrNotFound, conversationID)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	return s.convRepo.AddParticipant(ctx, conversationID, userID)
}

func (s *conversationService) RemoveParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	return s.convRepo.RemoveParticipant(ctx, conversationID, userID)
}

type messageService struct {
	msgRepo  domain.MessageRepository
	convRepo domain.ConversationRepository
	userRepo domain.UserRepository
}

// NewMessageService creates a MessageService.
func NewMessageService(msgRepo domain.MessageRepository, convRepo domain.ConversationRepository, userRepo domain.UserRepository) domain.MessageService {
	return &messageService{msgRepo: msgRepo, convRepo: convRepo, userRepo: userRepo}
}

// SendMessage posts a message into an existing conversation. The conversation
// and the author must both exist.
func (s *messageService) SendMessage(ctx context.Context, content string, conversationID, authorID int64) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" || conversationID == 0 || authorID == 0 {
		return nil, domain.ErrMissingFields
	}
	conv, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, fmt.Errorf("%w: conversation %d", domain.ErrNotFound, conversationID)
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, authorID)
	}

	now := time.Now()
	msg := &domain.Message{
		Content:        content,
		ConversationID: conversationID,
		AuthorID:       authorID,
		Timestamp:      now,
		IsRead:         false,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	// Bump the conversation so participant listings surface recent activity.
	if _, err := s.convRepo.Update(ctx, conversationID, map[string]any{"updated_at": now}); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) ListMessages(ctx context.Context, conversationID int64, skip, limit int) ([]*domain.Message, error) {
	return s.msgRepo.ListByConversation(ctx, conversationID, skip, limit)
}

func (s *messageService) ListMessagesByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]*domain.Message, error) {
	return s.msgRepo.ListByAuthor(ctx, authorID, skip, limit)
}

// MarkRead flags a message as read. Returns (nil, nil) for an unknown message.
func (s *messageService) MarkRead(ctx context.Context, messageID int64) (*domain.Message, error) {
	return s.msgRepo.Update(ctx, messageID, map[string]any{"is_read": true})
}

func (s *messageService) DeleteMessage(ctx context.Context, id int64) (bool, error) {
	return s.msgRepo.Delete(ctx, id)
}

package repository

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"uconnect/internal/domain"
)

type conversationRepository struct {
	*Generic[domain.Conversation]
}

// NewConversationRepository returns a conversation repository backed by db.
func NewConversationRepository(db *bun.DB) domain.ConversationRepository {
	return &conversationRepository{Generic: NewGeneric[domain.Conversation](db)}
}

func (r *conversationRepository) ListByParticipant(ctx context.Context, userID int64, skip, limit int) ([]*domain.Conversation, error) {
	params := domain.ListParams{Skip: skip, Limit: limit}.Normalize()
	var convs []*domain.Conversation
	err := r.DB().NewSelect().Model(&convs).
		Join("JOIN conversation_participants AS cp ON cp.conversation_id = c.id").
		Where("cp.user_id = ?", userID).
		OrderExpr("c.updated_at DESC").OrderExpr("c.id ASC").
		Offset(params.Skip).Limit(params.Limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conversations by participant: %w", err)
	}
	return nonNil(convs), nil
}

func (r *conversationRepository) AddParticipant(ctx context.Context, conversationID, userID int64) error {
	p := &domain.ConversationParticipant{ConversationID: conversationID, UserID: userID}
	_, err := r.DB().NewInsert().Model(p).
		On("CONFLICT (conversation_id, user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

func (r *conversationRepository) RemoveParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	res, err := r.DB().NewDelete().Model((*domain.ConversationParticipant)(nil)).
		Where("conversation_id = ?", conversationID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("remove participant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *conversationRepository) IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error) {
	ok, err := r.DB().NewSelect().Model((*domain.ConversationParticipant)(nil)).
		Where("conversation_id = ?", conversationID).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("is participant: %w", err)
	}
	return ok, nil
}

type messageRepository struct {
	*Generic[domain.Message]
}

// NewMessageRepository returns a message repository backed by db.
func NewMessageRepository(db *bun.DB) domain.MessageRepository {
	return &messageRepository{Generic: NewGeneric[domain.Message](db)}
}

// ListByConversation returns messages oldest first, the order a chat renders.
func (r *messageRepository) ListByConversation(ctx context.Context, conversationID int64, skip, limit int) ([]*domain.Message, error) {
	params := domain.ListParams{Skip: skip, Limit: limit}.Normalize()
	var msgs []*domain.Message
	err := r.DB().NewSelect().Model(&msgs).
		Where("conversation_id = ?", conversationID).
		OrderExpr("timestamp ASC").OrderExpr("id ASC").
		Offset(params.Skip).Limit(params.Limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages by conversation: %w", err)
	}
	return nonNil(msgs), nil
}

func (r *messageRepository) ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]*domain.Message, error) {
	return r.FindAllByFilter(ctx, skip, limit, map[string]any{"author_id": authorID})
}

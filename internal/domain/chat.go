package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// ConversationType distinguishes direct, group, and support conversations.
type ConversationType string

const (
	ConversationDirect  ConversationType = "direct"
	ConversationGroup   ConversationType = "group"
	ConversationSupport ConversationType = "support"
)

// Valid reports whether t is one of the known conversation types.
func (t ConversationType) Valid() bool {
	switch t {
	case ConversationDirect, ConversationGroup, ConversationSupport:
		return true
	}
	return false
}

// Conversation is a chat thread between two or more participants.
type Conversation struct {
	bun.BaseModel `bun:"table:conversations,alias:c"`

	ID        int64            `bun:"id,pk,autoincrement" json:"id"`
	Title     string           `bun:"title" json:"title"`
	Type      ConversationType `bun:"type,notnull" json:"type"`
	CreatedAt time.Time        `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time        `bun:"updated_at,notnull" json:"updated_at"`
}

// ConversationParticipant links a user to a conversation.
type ConversationParticipant struct {
	bun.BaseModel `bun:"table:conversation_participants,alias:cp"`

	ConversationID int64 `bun:"conversation_id,pk" json:"conversation_id"`
	UserID         int64 `bun:"user_id,pk" json:"user_id"`
}

// Message is a single chat message inside a conversation.
type Message struct {
	bun.BaseModel `bun:"table:messages,alias:m"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	Content        string    `bun:"content,notnull" json:"content"`
	ConversationID int64     `bun:"conversation_id,notnull" json:"conversation_id"`
	AuthorID       int64     `bun:"author_id,notnull" json:"author_id"`
	Timestamp      time.Time `bun:"timestamp,notnull" json:"timestamp"`
	IsRead         bool      `bun:"is_read,notnull,default:false" json:"is_read"`
}

// ConversationUpdate carries a partial conversation update.
type ConversationUpdate struct {
	Title *string
}

// ConversationRepository defines storage operations for conversations and
// their participants.
type ConversationRepository interface {
	Create(ctx context.Context, c *Conversation) error
	GetByID(ctx context.Context, id int64) (*Conversation, error)
	ListByParticipant(ctx context.Context, userID int64, skip, limit int) ([]*Conversation, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*Conversation, error)
	Delete(ctx context.Context, id int64) (bool, error)
	AddParticipant(ctx context.Context, conversationID, userID int64) error
	RemoveParticipant(ctx context.Context, conversationID, userID int64) (bool, error)
	IsParticipant(ctx context.Context, conversationID, userID int64) (bool, error)
}

// MessageRepository defines storage operations for chat messages.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id int64) (*Message, error)
	ListByConversation(ctx context.Context, conversationID int64, skip, limit int) ([]*Message, error)
	ListByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]*Message, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*Message, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ConversationService defines the business logic for chat conversations.
type ConversationService interface {
	CreateConversation(ctx context.Context, title string, convType ConversationType, participantIDs []int64) (*Conversation, error)
	GetConversation(ctx context.Context, id int64) (*Conversation, error)
	ListByParticipant(ctx context.Context, userID int64, skip, limit int) ([]*Conversation, error)
	UpdateConversation(ctx context.Context, id int64, update ConversationUpdate) (*Conversation, error)
	DeleteConversation(ctx context.Context, id int64) (bool, error)
	AddParticipant(ctx context.Context, conversationID, userID int64) error
	RemoveParticipant(ctx context.Context, conversationID, userID int64) (bool, error)
}

// MessageService defines the business logic for chat messages.
type MessageService interface {
	SendMessage(ctx context.Context, content string, conversationID, authorID int64) (*Message, error)
	ListMessages(ctx context.Context, conversationID int64, skip, limit int) ([]*Message, error)
	ListMessagesByAuthor(ctx context.Context, authorID int64, skip, limit int) ([]*Message, error)
	MarkRead(ctx context.Context, messageID int64) (*Message, error)
	DeleteMessage(ctx context.Context, id int64) (bool, error)
}

package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"uconnect/internal/domain"
)

// Models lists every mapped entity, join tables included. Order matters for
// table creation: referenced tables first.
func Models() []any {
	return []any{
		(*domain.User)(nil),
		(*domain.AcademicGroup)(nil),
		(*domain.GroupMember)(nil),
		(*domain.Event)(nil),
		(*domain.Post)(nil),
		(*domain.Announcement)(nil),
		(*domain.Conversation)(nil),
		(*domain.ConversationParticipant)(nil),
		(*domain.Message)(nil),
		(*domain.AccessGrant)(nil),
		(*domain.Session)(nil),
	}
}

// CreateSchema creates all tables if they do not exist. Used by tests and
// local development; production schemas are managed by migrations.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	return nil
}

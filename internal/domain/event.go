package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Event represents a campus event scheduled for a future date. Events may
// optionally belong to an academic group.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	Title           string    `bun:"title,notnull" json:"title"`
	Description     string    `bun:"description" json:"description"`
	Timestamp       time.Time `bun:"timestamp,notnull" json:"timestamp"`
	EventDate       time.Time `bun:"event_date,notnull" json:"event_date"`
	AcademicGroupID int64     `bun:"academic_group_id,nullzero" json:"academic_group_id,omitempty"`
	CreatorID       int64     `bun:"creator_id,notnull" json:"creator_id"`
}

// EventUpdate carries a partial event update; nil fields are left unchanged.
type EventUpdate struct {
	Title       *string
	Description *string
	EventDate   *time.Time
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, params ListParams) ([]*Event, error)
	ListByCreator(ctx context.Context, creatorID int64, skip, limit int) ([]*Event, error)
	ListByDate(ctx context.Context, date time.Time, skip, limit int) ([]*Event, error)
	ListByAcademicGroup(ctx context.Context, groupID int64, skip, limit int) ([]*Event, error)
	ListUpcoming(ctx context.Context, from time.Time, daysAhead int, skip, limit int) ([]*Event, error)
	ListPast(ctx context.Context, until time.Time, skip, limit int) ([]*Event, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*Event, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	CountByCreator(ctx context.Context, creatorID int64) (int, error)
	CountByDate(ctx context.Context, date time.Time) (int, error)
	CountUpcoming(ctx context.Context, from time.Time, daysAhead int) (int, error)
}

// EventService defines the business logic for event management. Read-side
// queries are unrestricted; mutation requires the creator or an admin.
type EventService interface {
	CreateEvent(ctx context.Context, title, description string, creatorID int64, eventDate time.Time, academicGroupID int64) (*Event, error)
	GetEventByID(ctx context.Context, id int64) (*Event, error)
	ListEvents(ctx context.Context, params ListParams) ([]*Event, error)
	ListEventsByCreator(ctx context.Context, creatorID int64, skip, limit int) ([]*Event, error)
	ListEventsByAcademicGroup(ctx context.Context, groupID int64, skip, limit int) ([]*Event, error)
	GetUpcomingEvents(ctx context.Context, daysAhead, skip, limit int) ([]*Event, error)
	GetPastEvents(ctx context.Context, skip, limit int) ([]*Event, error)
	GetEventsByDate(ctx context.Context, date time.Time, skip, limit int) ([]*Event, error)
	UpdateEvent(ctx context.Context, id int64, actingUser *User, update EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id int64, actingUser *User) (bool, error)
	CountEvents(ctx context.Context) (int, error)
	CountEventsByCreator(ctx context.Context, creatorID int64) (int, error)
	CountUpcomingEvents(ctx context.Context, daysAhead int) (int, error)
	CountEventsByDate(ctx context.Context, date time.Time) (int, error)
	EventExists(ctx context.Context, id int64) (bool, error)
	EventBelongsToUser(ctx context.Context, eventID, userID int64) (bool, error)
}

package services

import (
	"context"
	"strings"
	"time"

	"uconnect/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	groupRepo      domain.AcademicGroupRepository
	now            func() time.Time
	contextTimeout time.Duration
}

// NewEventService creates an EventService. The now func supplies the
// reference time for future/past classification; pass nil for time.Now.
func NewEventService(eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	groupRepo domain.AcademicGroupRepository,
	now func() time.Time,
	timeout time.Duration,
) domain.EventService {
	if now == nil {
		now = time.Now
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &eventService{
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		groupRepo:      groupRepo,
		now:            now,
		contextTimeout: timeout,
	}
}

// CreateEvent validates title, date, and creator before persisting. An
// academic group id that does not resolve is dropped and the event is created
// without a group.
func (s *eventService) CreateEvent(ctx context.Context, title, description string, creatorID int64, eventDate time.Time, academicGroupID int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if !eventDate.After(s.now()) {
		return nil, domain.ErrPastEventDate
	}
	creator, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, domain.ErrUnknownCreator
	}
	if academicGroupID != 0 {
		group, err := s.groupRepo.GetByID(ctx, academicGroupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			academicGroupID = 0
		}
	}

	event := &domain.Event{
		Title:           title,
		Description:     strings.TrimSpace(description),
		Timestamp:       s.now(),
		EventDate:       eventDate,
		AcademicGroupID: academicGroupID,
		CreatorID:       creatorID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id int64) (*domain.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context, params domain.ListParams) ([]*domain.Event, error) {
	if params.OrderBy == "" {
		params.OrderBy = "event_date"
	}
	return s.eventRepo.List(ctx, params)
}

func (s *eventService) ListEventsByCreator(ctx context.Context, creatorID int64, skip, limit int) ([]*domain.Event, error) {
	return s.eventRepo.ListByCreator(ctx, creatorID, skip, limit)
}

func (s *eventService) ListEventsByAcademicGroup(ctx context.Context, groupID int64, skip, limit int) ([]*domain.Event, error) {
	return s.eventRepo.ListByAcademicGroup(ctx, groupID, skip, limit)
}

func (s *eventService) GetUpcomingEvents(ctx context.Context, daysAhead, skip, limit int) ([]*domain.Event, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	return s.eventRepo.ListUpcoming(ctx, s.now(), daysAhead, skip, limit)
}

func (s *eventService) GetPastEvents(ctx context.Context, skip, limit int) ([]*domain.Event, error) {
	return s.eventRepo.ListPast(ctx, s.now(), skip, limit)
}

func (s *eventService) GetEventsByDate(ctx context.Context, date time.Time, skip, limit int) ([]*domain.Event, error) {
	return s.eventRepo.ListByDate(ctx, date, skip, limit)
}

// UpdateEvent applies a partial update after checking that the acting user is
// the creator or an admin. Returns ErrNotFound when the event does not exist,
// since the caller named a specific event to mutate.
func (s *eventService) UpdateEvent(ctx context.Context, id int64, actingUser *domain.User, update domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.authorizeMutation(event, actingUser); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, domain.ErrEmptyTitle
		}
		fields["title"] = title
	}
	if update.Description != nil {
		fields["description"] = strings.TrimSpace(*update.Description)
	}
	if update.EventDate != nil {
		fields["event_date"] = *update.EventDate
	}
	return s.eventRepo.Update(ctx, id, fields)
}

// DeleteEvent removes an event after the same creator-or-admin check.
func (s *eventService) DeleteEvent(ctx context.Context, id int64, actingUser *domain.User) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if event == nil {
		return false, domain.ErrNotFound
	}
	if err := s.authorizeMutation(event, actingUser); err != nil {
		return false, err
	}
	return s.eventRepo.Delete(ctx, id)
}

// authorizeMutation enforces the mutation rule: only the creator or an admin.
func (s *eventService) authorizeMutation(event *domain.Event, actingUser *domain.User) error {
	if event.CreatorID == actingUser.ID || actingUser.Role == domain.RoleAdmin {
		return nil
	}
	return domain.ErrForbidden
}

func (s *eventService) CountEvents(ctx context.Context) (int, error) {
	return s.eventRepo.Count(ctx)
}

func (s *eventService) CountEventsByCreator(ctx context.Context, creatorID int64) (int, error) {
	return s.eventRepo.CountByCreator(ctx, creatorID)
}

func (s *eventService) CountUpcomingEvents(ctx context.Context, daysAhead int) (int, error) {
	if daysAhead <= 0 {
		daysAhead = 7
	}
	return s.eventRepo.CountUpcoming(ctx, s.now(), daysAhead)
}

func (s *eventService) CountEventsByDate(ctx context.Context, date time.Time) (int, error) {
	return s.eventRepo.CountByDate(ctx, date)
}

func (s *eventService) EventExists(ctx context.Context, id int64) (bool, error) {
	return s.eventRepo.Exists(ctx, id)
}

func (s *eventService) EventBelongsToUser(ctx context.Context, eventID, userID int64) (bool, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return false, err
	}
	return event != nil && event.CreatorID == userID, nil
}

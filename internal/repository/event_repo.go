package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"uconnect/internal/domain"
)

type eventRepository struct {
	*Generic[domain.Event]
}

// NewEventRepository returns an event repository backed by db.
func NewEventRepository(db *bun.DB) domain.EventRepository {
	return &eventRepository{Generic: NewGeneric[domain.Event](db)}
}

func (r *eventRepository) ListByCreator(ctx context.Context, creatorID int64, skip, limit int) ([]*domain.Event, error) {
	return r.FindAllByFilter(ctx, skip, limit, map[string]any{"creator_id": creatorID})
}

func (r *eventRepository) ListByAcademicGroup(ctx context.Context, groupID int64, skip, limit int) ([]*domain.Event, error) {
	return r.FindAllByFilter(ctx, skip, limit, map[string]any{"academic_group_id": groupID})
}

// ListByDate returns events scheduled on the calendar day of date.
func (r *eventRepository) ListByDate(ctx context.Context, date time.Time, skip, limit int) ([]*domain.Event, error) {
	start, end := dayBounds(date)
	params := domain.ListParams{Skip: skip, Limit: limit}.Normalize()
	var events []*domain.Event
	err := r.DB().NewSelect().Model(&events).
		Where("event_date >= ?", start).
		Where("event_date < ?", end).
		OrderExpr("event_date ASC").OrderExpr("id ASC").
		Offset(params.Skip).Limit(params.Limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events by date: %w", err)
	}
	return nonNil(events), nil
}

// ListUpcoming returns events with event_date in [from, from+daysAhead days],
// ordered soonest first.
func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time, daysAhead int, skip, limit int) ([]*domain.Event, error) {
	until := from.AddDate(0, 0, daysAhead)
	params := domain.ListParams{Skip: skip, Limit: limit}.Normalize()
	var events []*domain.Event
	err := r.DB().NewSelect().Model(&events).
		Where("event_date >= ?", from).
		Where("event_date <= ?", until).
		OrderExpr("event_date ASC").OrderExpr("id ASC").
		Offset(params.Skip).Limit(params.Limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return nonNil(events), nil
}

// ListPast returns events strictly before until, most recent first.
func (r *eventRepository) ListPast(ctx context.Context, until time.Time, skip, limit int) ([]*domain.Event, error) {
	params := domain.ListParams{Skip: skip, Limit: limit}.Normalize()
	var events []*domain.Event
	err := r.DB().NewSelect().Model(&events).
		Where("event_date < ?", until).
		OrderExpr("event_date DESC").OrderExpr("id ASC").
		Offset(params.Skip).Limit(params.Limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list past events: %w", err)
	}
	return nonNil(events), nil
}

func (r *eventRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.Generic.Exists(ctx, map[string]any{"id": id})
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	return r.Generic.Count(ctx, nil)
}

func (r *eventRepository) CountByCreator(ctx context.Context, creatorID int64) (int, error) {
	return r.Generic.Count(ctx, map[string]any{"creator_id": creatorID})
}

func (r *eventRepository) CountByDate(ctx context.Context, date time.Time) (int, error) {
	start, end := dayBounds(date)
	n, err := r.DB().NewSelect().Model((*domain.Event)(nil)).
		Where("event_date >= ?", start).
		Where("event_date < ?", end).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count events by date: %w", err)
	}
	return n, nil
}

func (r *eventRepository) CountUpcoming(ctx context.Context, from time.Time, daysAhead int) (int, error) {
	until := from.AddDate(0, 0, daysAhead)
	n, err := r.DB().NewSelect().Model((*domain.Event)(nil)).
		Where("event_date >= ?", from).
		Where("event_date <= ?", until).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count upcoming events: %w", err)
	}
	return n, nil
}

// dayBounds returns the [start, end) UTC interval covering date's calendar day.
func dayBounds(date time.Time) (time.Time, time.Time) {
	d := date.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func nonNil[T any](s []*T) []*T {
	if s == nil {
		return []*T{}
	}
	return s
}

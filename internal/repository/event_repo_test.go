package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uconnect/internal/domain"
)

func TestEventRepository_date_ranges(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewEventRepository(db)
	creator := seedUser(t, db, 1)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	mk := func(title string, eventDate time.Time) *domain.Event {
		e := &domain.Event{
			Title:     title,
			Timestamp: now,
			EventDate: eventDate,
			CreatorID: creator.ID,
		}
		require.NoError(t, repo.Create(ctx, e))
		return e
	}

	mk("yesterday", now.AddDate(0, 0, -1))
	today := mk("today evening", now.Add(6*time.Hour))
	mk("in three days", now.AddDate(0, 0, 3))
	mk("in two weeks", now.AddDate(0, 0, 14))

	t.Run("by date", func(t *testing.T) {
		events, err := repo.ListByDate(ctx, now, 0, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, today.ID, events[0].ID)

		n, err := repo.CountByDate(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("upcoming window", func(t *testing.T) {
		events, err := repo.ListUpcoming(ctx, now, 7, 0, 10)
		require.NoError(t, err)
		require.Len(t, events, 2)
		// soonest first
		assert.Equal(t, "today evening", events[0].Title)
		assert.Equal(t, "in three days", events[1].Title)

		n, err := repo.CountUpcoming(ctx, now, 7)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("past", func(t *testing.T) {
		events, err := repo.ListPast(ctx, now, 0, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "yesterday", events[0].Title)
	})
}

func TestEventRepository_ListByCreator(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewEventRepository(db)
	alice := seedUser(t, db, 1)
	bob := seedUser(t, db, 2)

	future := time.Now().AddDate(0, 0, 1)
	for i, creator := range []*domain.User{alice, alice, bob} {
		e := &domain.Event{Title: "event", Timestamp: time.Now(), EventDate: future.Add(time.Duration(i) * time.Hour), CreatorID: creator.ID}
		require.NoError(t, repo.Create(ctx, e))
	}

	events, err := repo.ListByCreator(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	n, err := repo.CountByCreator(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEventRepository_Exists(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewEventRepository(db)
	creator := seedUser(t, db, 1)

	e := &domain.Event{Title: "kickoff", Timestamp: time.Now(), EventDate: time.Now().AddDate(0, 0, 2), CreatorID: creator.ID}
	require.NoError(t, repo.Create(ctx, e))

	ok, err := repo.Exists(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, 424242)
	require.NoError(t, err)
	assert.False(t, ok)
}

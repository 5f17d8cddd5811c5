package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uconnect/internal/domain"
	"uconnect/internal/repository"
)

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo, fakePasswordHasher{})
	posts := NewPostService(repository.NewPostRepository(db), userRepo)
	author := mustCreateUser(t, users, 1, domain.RoleStudent)

	post, err := posts.CreatePost(ctx, "Lost keycard", "Found near the library?", author.ID)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.NotZero(t, post.ID)
	assert.Equal(t, author.ID, post.AuthorID)

	_, err = posts.CreatePost(ctx, "", "content", author.ID)
	assert.ErrorIs(t, err, domain.ErrMissingFields)
	_, err = posts.CreatePost(ctx, "title", "   ", author.ID)
	assert.ErrorIs(t, err, domain.ErrMissingFields)
	_, err = posts.CreatePost(ctx, "title", "content", 424242)
	assert.ErrorIs(t, err, domain.ErrUnknownCreator)
}

func TestPostService_update_and_list(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo, fakePasswordHasher{})
	posts := NewPostService(repository.NewPostRepository(db), userRepo)
	author := mustCreateUser(t, users, 1, domain.RoleStudent)

	first, err := posts.CreatePost(ctx, "First", "one", author.ID)
	require.NoError(t, err)
	_, err = posts.CreatePost(ctx, "Second", "two", author.ID)
	require.NoError(t, err)

	updated, err := posts.UpdatePost(ctx, first.ID, domain.PublicationUpdate{Content: strPtr("edited")})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	_, err = posts.UpdatePost(ctx, first.ID, domain.PublicationUpdate{Title: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)

	byAuthor, err := posts.ListPostsByAuthor(ctx, author.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	deleted, err := posts.DeletePost(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestAnnouncementService_notifies_active_users(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo, fakePasswordHasher{})
	emails := &fakeEmailService{}
	anns := NewAnnouncementService(repository.NewAnnouncementRepository(db), userRepo, emails, nil)

	author := mustCreateUser(t, users, 1, domain.RoleCoordinator)
	mustCreateUser(t, users, 2, domain.RoleStudent)
	suspended := mustCreateUser(t, users, 3, domain.RoleStudent)
	_, err := users.UpdateAccessStatus(ctx, suspended.ID, author, domain.AccessSuspended)
	require.NoError(t, err)

	ann, err := anns.CreateAnnouncement(ctx, "Library hours", "Extended during exams.", author.ID)
	require.NoError(t, err)
	require.NotNil(t, ann)

	// only the active non-author recipient got a notice
	require.Len(t, emails.sent, 1)
	assert.Equal(t, "user2@campus.edu", emails.sent[0].Email)
	assert.Equal(t, "Library hours", emails.sent[0].Title)
	assert.Equal(t, author.Name, emails.sent[0].AuthorName)
}

func TestAnnouncementService_mailer_failure_does_not_fail_publication(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo, fakePasswordHasher{})
	emails := &fakeEmailService{err: assert.AnError}
	anns := NewAnnouncementService(repository.NewAnnouncementRepository(db), userRepo, emails, nil)

	author := mustCreateUser(t, users, 1, domain.RoleCoordinator)
	mustCreateUser(t, users, 2, domain.RoleStudent)

	ann, err := anns.CreateAnnouncement(ctx, "Outage", "Portal down tonight.", author.ID)
	require.NoError(t, err)
	assert.NotNil(t, ann)
}

func TestAnnouncementService_without_mailer(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	userRepo := repository.NewUserRepository(db)
	users := NewUserService(userRepo, fakePasswordHasher{})
	anns := NewAnnouncementService(repository.NewAnnouncementRepository(db), userRepo, nil, nil)

	author := mustCreateUser(t, users, 1, domain.RoleAdmin)

	ann, err := anns.CreateAnnouncement(ctx, "No mailer", "Still publishes.", author.ID)
	require.NoError(t, err)
	require.NotNil(t, ann)

	got, err := anns.GetAnnouncement(ctx, ann.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "No mailer", got.Title)
}

package service

import (
	"context"
	"testing"
	"time"

	"blog-backend/internal/domain"
	"blog-backend/internal/repository"
	appErrors "blog-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPostCreateStartsAsDraft(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "hello", Content: "world"})
	require.NoError(t, err)

	assert.NotEmpty(t, post.ID)
	assert.Equal(t, domain.PostStatusDraft, post.Status)
	assert.Equal(t, "u1", post.AuthorID)
	assert.Equal(t, "name-u1", post.AuthorName)
	assert.Equal(t, f.clock, post.CreatedAt)
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)

	got, err := f.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, *post, *got)
}

func TestPostGetMissing(t *testing.T) {
	f := newFixture()

	_, err := f.posts.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestPostPartialUpdate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "hello", Content: "world"})
	require.NoError(t, err)
	created := post.CreatedAt

	f.advance(time.Minute)
	updated, err := f.posts.Update(ctx, user("u1"), post.ID, UpdatePostInput{
		Status: strPtr(domain.PostStatusPublished),
	})
	require.NoError(t, err)

	assert.Equal(t, "hello", updated.Title, "unset fields stay untouched")
	assert.Equal(t, "world", updated.Content)
	assert.Equal(t, domain.PostStatusPublished, updated.Status)
	assert.Equal(t, created, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created))
}

func TestPostUpdateForbiddenForNonOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = f.posts.Update(ctx, user("u2"), post.ID, UpdatePostInput{Title: strPtr("stolen")})
	require.Error(t, err)
	assert.True(t, appErrors.IsForbidden(err))

	got, err := f.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}

func TestPostAdminBypassesOwnership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	updated, err := f.posts.Update(ctx, admin("mod"), post.ID, UpdatePostInput{
		Status: strPtr(domain.PostStatusArchived),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PostStatusArchived, updated.Status)

	require.NoError(t, f.posts.Delete(ctx, admin("mod"), post.ID))
}

func TestPostDeleteLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	err = f.posts.Delete(ctx, user("u2"), post.ID)
	require.Error(t, err)
	assert.True(t, appErrors.IsForbidden(err))

	require.NoError(t, f.posts.Delete(ctx, user("u1"), post.ID))

	_, err = f.posts.Get(ctx, post.ID)
	assert.True(t, appErrors.IsNotFound(err))

	err = f.posts.Delete(ctx, user("u1"), post.ID)
	assert.True(t, appErrors.IsNotFound(err), "deleting twice surfaces the missing post")
}

func TestPostCreateNotifiesOtherUsers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.registerProfile(t, "u1", "u1@example.com")
	f.registerProfile(t, "u2", "u2@example.com")
	f.registerProfile(t, "u3", "u3@example.com")

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "fresh", Content: "c"})
	require.NoError(t, err)

	events := f.notifier.ofType(domain.EventTypeNewPost)
	require.Len(t, events, 1)
	assert.Equal(t, "name-u1", events[0].AuthorName)
	assert.Equal(t, post.Title, events[0].PostTitle)
	assert.ElementsMatch(t, []string{"u2@example.com", "u3@example.com"}, events[0].RecipientEmails)
	assert.Empty(t, events[0].AuthorEmail, "unused fields stay empty")
}

func TestPostCreateNoRecipientsNoEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.registerProfile(t, "u1", "u1@example.com")

	_, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.ofType(domain.EventTypeNewPost))
}

func TestPostListByAuthor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "mine", Content: "c"})
		require.NoError(t, err)
	}
	_, err := f.posts.Create(ctx, user("u2"), CreatePostInput{Title: "theirs", Content: "c"})
	require.NoError(t, err)

	page, err := f.posts.ListByAuthor(ctx, "u1", repository.NewPageRequest(50, ""))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Size)
	for _, p := range page.Items {
		assert.Equal(t, "u1", p.AuthorID)
	}
}

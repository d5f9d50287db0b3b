package service

import (
	"context"
	"errors"
	"testing"

	"blog-backend/internal/domain"
	"blog-backend/internal/messaging"
	"blog-backend/internal/repository"
	appErrors "blog-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCommentCreateNotifiesPostAuthor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.registerProfile(t, "u1", "u1@example.com")

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "topic", Content: "c"})
	require.NoError(t, err)

	comment, err := f.comments.Create(ctx, user("u2"), post.ID, CreateCommentInput{Content: "nice post"})
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, "u2", comment.AuthorID)

	events := f.notifier.ofType(domain.EventTypeNewComment)
	require.Len(t, events, 1)
	assert.Equal(t, "u1@example.com", events[0].AuthorEmail)
	assert.Equal(t, post.AuthorName, events[0].AuthorName)
	assert.Equal(t, "topic", events[0].PostTitle)
	assert.Equal(t, "name-u2", events[0].CommenterName)
	assert.Equal(t, "nice post", events[0].CommentContent)
	assert.Equal(t, post.ID, events[0].PostID)
}

func TestCommentOnOwnPostSkipsNotification(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.registerProfile(t, "u1", "u1@example.com")

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = f.comments.Create(ctx, user("u1"), post.ID, CreateCommentInput{Content: "self reply"})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.ofType(domain.EventTypeNewComment))
}

func TestCommentAuthorWithoutProfileSkipsNotification(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	comment, err := f.comments.Create(ctx, user("u2"), post.ID, CreateCommentInput{Content: "hi"})
	require.NoError(t, err, "a missing author profile never fails the create")
	assert.Empty(t, f.notifier.ofType(domain.EventTypeNewComment))

	got, err := f.comments.Get(ctx, post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Content)
}

func TestCommentCreateMissingPost(t *testing.T) {
	f := newFixture()

	_, err := f.comments.Create(context.Background(), user("u2"), "ghost", CreateCommentInput{Content: "hi"})
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestCommentUpdateOwnership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	comment, err := f.comments.Create(ctx, user("u2"), post.ID, CreateCommentInput{Content: "v1"})
	require.NoError(t, err)

	// The post's author does not own the comment.
	_, err = f.comments.Update(ctx, user("u1"), post.ID, comment.ID, UpdateCommentInput{Content: strPtr("edited")})
	assert.True(t, appErrors.IsForbidden(err))

	updated, err := f.comments.Update(ctx, user("u2"), post.ID, comment.ID, UpdateCommentInput{Content: strPtr("v2")})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)

	updated, err = f.comments.Update(ctx, admin("mod"), post.ID, comment.ID, UpdateCommentInput{Content: strPtr("moderated")})
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Content)
}

func TestCommentDeleteOwnership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	comment, err := f.comments.Create(ctx, user("u2"), post.ID, CreateCommentInput{Content: "hi"})
	require.NoError(t, err)

	err = f.comments.Delete(ctx, user("u1"), post.ID, comment.ID)
	assert.True(t, appErrors.IsForbidden(err), "owning the post does not grant comment deletion")

	require.NoError(t, f.comments.Delete(ctx, user("u2"), post.ID, comment.ID))

	_, err = f.comments.Get(ctx, post.ID, comment.ID)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestCommentListByPost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := f.comments.Create(ctx, user("u2"), post.ID, CreateCommentInput{Content: "hi"})
		require.NoError(t, err)
	}

	page, err := f.comments.ListByPost(ctx, post.ID, repository.NewPageRequest(3, ""))
	require.NoError(t, err)
	assert.Equal(t, 3, page.Size)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextToken)

	rest, err := f.comments.ListByPost(ctx, post.ID, repository.NewPageRequest(3, *page.NextToken))
	require.NoError(t, err)
	assert.Equal(t, 2, rest.Size)
	assert.False(t, rest.HasMore)
}

// A publisher outage must never surface to the commenting user.
func TestCommentCreateSurvivesPublishFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	failing := messaging.PublisherFunc(func(ctx context.Context, event domain.NotificationEvent) error {
		return errors.New("broker down")
	})
	dispatcher := messaging.NewDispatcher(failing, 8, zap.NewNop())
	defer dispatcher.Close()
	f.comments.notifier = dispatcher

	f.registerProfile(t, "u1", "u1@example.com")
	post, err := f.posts.Create(ctx, user("u1"), CreatePostInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	comment, err := f.comments.Create(ctx, user("u2"), post.ID, CreateCommentInput{Content: "hi"})
	require.NoError(t, err)

	dispatcher.Close()

	got, err := f.comments.Get(ctx, post.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Content)
}

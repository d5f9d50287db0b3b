package service

import (
	"context"
	"testing"

	"blog-backend/internal/domain"
	"blog-backend/internal/repository"
	appErrors "blog-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsUserRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	profile, err := f.profiles.Register(ctx, CreateProfileInput{
		UserID:   "u1",
		Email:    "u1@example.com",
		Username: "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, profile.Role)
	assert.Equal(t, f.clock, profile.CreatedAt)

	events := f.notifier.ofType(domain.EventTypeNewUser)
	require.Len(t, events, 1)
	assert.Equal(t, "u1@example.com", events[0].UserEmail)
	assert.Equal(t, "alice", events[0].UserName)
}

func TestProfileGetMissing(t *testing.T) {
	f := newFixture()

	_, err := f.profiles.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestProfileUpdateAvatar(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.profiles.Register(ctx, CreateProfileInput{UserID: "u1", Email: "u1@example.com", Username: "alice"})
	require.NoError(t, err)

	updated, err := f.profiles.Update(ctx, user("u1"), "u1", UpdateProfileInput{
		AvatarURL: strPtr("https://cdn.example.com/a.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", updated.AvatarURL)
	assert.Equal(t, "u1@example.com", updated.Email, "unset fields stay untouched")

	_, err = f.profiles.Update(ctx, user("u2"), "u1", UpdateProfileInput{AvatarURL: strPtr("x")})
	assert.True(t, appErrors.IsForbidden(err))

	_, err = f.profiles.Update(ctx, admin("mod"), "u1", UpdateProfileInput{AvatarURL: strPtr("https://cdn.example.com/b.png")})
	require.NoError(t, err)
}

func TestProfileDeleteOwnership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.profiles.Register(ctx, CreateProfileInput{UserID: "u1", Email: "u1@example.com", Username: "alice"})
	require.NoError(t, err)

	err = f.profiles.Delete(ctx, user("u2"), "u1")
	assert.True(t, appErrors.IsForbidden(err))

	require.NoError(t, f.profiles.Delete(ctx, user("u1"), "u1"))

	_, err = f.profiles.Get(ctx, "u1")
	assert.True(t, appErrors.IsNotFound(err))
}

func TestProfileDeleteByAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.profiles.Register(ctx, CreateProfileInput{UserID: "u1", Email: "u1@example.com", Username: "alice"})
	require.NoError(t, err)

	require.NoError(t, f.profiles.Delete(ctx, admin("mod"), "u1"))
}

func TestProfileListRequiresAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.registerProfile(t, "u1", "u1@example.com")
	f.registerProfile(t, "u2", "u2@example.com")

	_, err := f.profiles.List(ctx, user("u1"), repository.NewPageRequest(10, ""))
	assert.True(t, appErrors.IsForbidden(err))

	page, err := f.profiles.List(ctx, admin("mod"), repository.NewPageRequest(10, ""))
	require.NoError(t, err)
	assert.Equal(t, 2, page.Size)
}

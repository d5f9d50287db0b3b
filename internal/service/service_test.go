package service

import (
	"context"
	"testing"
	"time"

	"blog-backend/internal/auth"
	"blog-backend/internal/domain"
	"blog-backend/internal/repository/ddb"
	"blog-backend/internal/storage/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// notifierRecorder captures dispatched events synchronously.
type notifierRecorder struct {
	events []domain.NotificationEvent
}

func (n *notifierRecorder) Dispatch(event domain.NotificationEvent) {
	n.events = append(n.events, event)
}

func (n *notifierRecorder) ofType(eventType string) []domain.NotificationEvent {
	var out []domain.NotificationEvent
	for _, e := range n.events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

// fixture wires the services over an in-memory table and a recording
// notifier, with a controllable clock.
type fixture struct {
	table    *memory.Table
	posts    *PostService
	comments *CommentService
	profiles *ProfileService
	notifier *notifierRecorder
	clock    time.Time
}

func newFixture() *fixture {
	table := memory.NewTable()
	logger := zap.NewNop()

	postRepo := ddb.NewPostRepository(table, logger)
	commentRepo := ddb.NewCommentRepository(table, logger)
	profileRepo := ddb.NewProfileRepository(table, logger)

	f := &fixture{
		table:    table,
		notifier: &notifierRecorder{},
		clock:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	f.posts = NewPostService(postRepo, profileRepo, f.notifier, logger)
	f.comments = NewCommentService(commentRepo, postRepo, profileRepo, f.notifier, logger)
	f.profiles = NewProfileService(profileRepo, f.notifier, logger)

	now := func() time.Time { return f.clock }
	f.posts.now = now
	f.comments.now = now
	f.profiles.now = now
	return f
}

// advance moves the fixture clock forward.
func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

// registerProfile stores a profile directly, without the NEW_USER event.
func (f *fixture) registerProfile(t *testing.T, userID, email string) {
	t.Helper()
	repo := ddb.NewProfileRepository(f.table, zap.NewNop())
	require.NoError(t, repo.Save(context.Background(), &domain.Profile{
		UserID:    userID,
		Email:     email,
		Username:  "name-" + userID,
		Role:      domain.RoleUser,
		CreatedAt: f.clock,
	}))
}

func user(id string) auth.Subject {
	return auth.Subject{
		ID:    id,
		Name:  "name-" + id,
		Email: id + "@example.com",
		Roles: []string{domain.RoleUser},
	}
}

func admin(id string) auth.Subject {
	s := user(id)
	s.Roles = append(s.Roles, domain.RoleAdmin)
	return s
}

package service

import (
	"context"
	"time"

	"blog-backend/internal/auth"
	"blog-backend/internal/domain"
	"blog-backend/internal/repository"
	appErrors "blog-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Title   string
	Content string
}

// UpdatePostInput is a partial update: nil fields are left unchanged.
type UpdatePostInput struct {
	Title   *string
	Content *string
	Status  *string
}

// PostService orchestrates post persistence, authorization, and
// notification fan-out.
type PostService struct {
	posts    repository.PostRepository
	profiles repository.ProfileRepository
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewPostService creates a post service.
func NewPostService(
	posts repository.PostRepository,
	profiles repository.ProfileRepository,
	notifier Notifier,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		posts:    posts,
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Create persists a new draft post and notifies every other user with an
// email on file. The notification is best effort: recipient lookup or
// publish problems are logged and never fail the create.
func (s *PostService) Create(ctx context.Context, subject auth.Subject, in CreatePostInput) (*domain.Post, error) {
	now := s.now()
	post := &domain.Post{
		ID:         uuid.New().String(),
		Title:      in.Title,
		Content:    in.Content,
		Status:     domain.PostStatusDraft,
		AuthorID:   subject.ID,
		AuthorName: subject.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}

	s.notifyNewPost(ctx, subject, post)
	return post, nil
}

// Get returns a post or NotFound.
func (s *PostService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, appErrors.NewNotFound(kindPost, postID)
	}
	return post, nil
}

// Update applies a partial update to a post owned by the subject. ADMIN
// subjects bypass the ownership check. Status is a free-form string; no
// transition graph is enforced.
func (s *PostService) Update(ctx context.Context, subject auth.Subject, postID string, in UpdatePostInput) (*domain.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(post.AuthorID, subject); err != nil {
		return nil, err
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Status != nil {
		post.Status = *in.Status
	}
	post.UpdatedAt = s.now()

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post owned by the subject (or any post for ADMIN).
func (s *PostService) Delete(ctx context.Context, subject auth.Subject, postID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if err := auth.Authorize(post.AuthorID, subject); err != nil {
		return err
	}
	return s.posts.Delete(ctx, postID)
}

// List returns one page of all posts.
func (s *PostService) List(ctx context.Context, page repository.PageRequest) (repository.Page[domain.Post], error) {
	return s.posts.FindAll(ctx, page)
}

// ListByAuthor returns one page of the author's posts.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string, page repository.PageRequest) (repository.Page[domain.Post], error) {
	return s.posts.FindAllByAuthor(ctx, authorID, page)
}

func (s *PostService) notifyNewPost(ctx context.Context, subject auth.Subject, post *domain.Post) {
	recipients, err := s.profiles.ListEmailsExcept(ctx, subject.ID)
	if err != nil {
		s.logger.Warn("failed to gather new post recipients",
			zap.String("postId", post.ID),
			zap.Error(err),
		)
		return
	}
	if len(recipients) == 0 {
		return
	}
	s.notifier.Dispatch(domain.NewPostEvent(subject.Name, post.Title, recipients))
}

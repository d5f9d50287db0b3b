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

// CreateCommentInput is the payload for creating a comment.
type CreateCommentInput struct {
	Content string
}

// UpdateCommentInput is a partial update: nil fields are left unchanged.
type UpdateCommentInput struct {
	Content *string
}

// CommentService orchestrates comment persistence, authorization, and the
// new-comment notification to the post's author.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	profiles repository.ProfileRepository
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewCommentService creates a comment service.
func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	profiles repository.ProfileRepository,
	notifier Notifier,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Create persists a new comment under the post and notifies the post's
// author, unless the author is the commenter. The notification is best
// effort: lookup or publish problems are logged and never fail the create.
func (s *CommentService) Create(ctx context.Context, subject auth.Subject, postID string, in CreateCommentInput) (*domain.Comment, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, appErrors.NewNotFound(kindPost, postID)
	}

	now := s.now()
	comment := &domain.Comment{
		ID:         uuid.New().String(),
		PostID:     post.ID,
		Content:    in.Content,
		AuthorID:   subject.ID,
		AuthorName: subject.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}

	if post.AuthorID != subject.ID {
		s.notifyNewComment(ctx, subject, post, comment)
	}
	return comment, nil
}

// Get returns a comment or NotFound.
func (s *CommentService) Get(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, appErrors.NewNotFound(kindComment, commentID)
	}
	return comment, nil
}

// Update applies a partial update to a comment owned by the subject. ADMIN
// subjects bypass the ownership check.
func (s *CommentService) Update(ctx context.Context, subject auth.Subject, postID, commentID string, in UpdateCommentInput) (*domain.Comment, error) {
	comment, err := s.Get(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(comment.AuthorID, subject); err != nil {
		return nil, err
	}

	if in.Content != nil {
		comment.Content = *in.Content
	}
	comment.UpdatedAt = s.now()

	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment owned by the subject (or any comment for ADMIN).
// Ownership means the commenting user, not the post's author.
func (s *CommentService) Delete(ctx context.Context, subject auth.Subject, postID, commentID string) error {
	comment, err := s.Get(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if err := auth.Authorize(comment.AuthorID, subject); err != nil {
		return err
	}
	return s.comments.Delete(ctx, postID, commentID)
}

// ListByPost returns one page of the post's comments in sort-key order.
func (s *CommentService) ListByPost(ctx context.Context, postID string, page repository.PageRequest) (repository.Page[domain.Comment], error) {
	return s.comments.FindByPost(ctx, postID, page)
}

func (s *CommentService) notifyNewComment(ctx context.Context, subject auth.Subject, post *domain.Post, comment *domain.Comment) {
	profile, err := s.profiles.FindByUserID(ctx, post.AuthorID)
	if err != nil {
		s.logger.Warn("failed to look up post author for comment notification",
			zap.String("postId", post.ID),
			zap.Error(err),
		)
		return
	}
	if profile == nil || profile.Email == "" {
		return
	}
	s.notifier.Dispatch(domain.NewCommentEvent(
		profile.Email,
		post.AuthorName,
		post.Title,
		subject.Name,
		comment.Content,
		post.ID,
	))
}

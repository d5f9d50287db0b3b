// Package repository defines the persistence contracts for the content
// table: key construction, continuation-token pagination, and the
// per-entity repository interfaces. The DynamoDB implementation lives in
// the ddb subpackage.
package repository

import (
	"context"

	"blog-backend/internal/domain"
)

// PostRepository persists posts. FindByID returns (nil, nil) on a miss;
// absence is a normal outcome here, the service layer decides whether it
// is an error.
type PostRepository interface {
	Save(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, postID string) (*domain.Post, error)
	Delete(ctx context.Context, postID string) error
	// FindAll scans the whole table and keeps post metadata items. The page
	// boundary is fixed before filtering, so a page may hold fewer posts
	// than requested while more remain.
	FindAll(ctx context.Context, page PageRequest) (Page[domain.Post], error)
	// FindAllByAuthor is FindAll narrowed to one author.
	FindAllByAuthor(ctx context.Context, authorID string, page PageRequest) (Page[domain.Post], error)
}

// CommentRepository persists comments under their parent post's partition.
type CommentRepository interface {
	Save(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, postID, commentID string) (*domain.Comment, error)
	Delete(ctx context.Context, postID, commentID string) error
	// FindByPost range-queries one post's partition for COMMENT# sort keys,
	// in sort-key order.
	FindByPost(ctx context.Context, postID string, page PageRequest) (Page[domain.Comment], error)
}

// ProfileRepository persists user profiles.
type ProfileRepository interface {
	Save(ctx context.Context, profile *domain.Profile) error
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Delete(ctx context.Context, userID string) error
	FindAll(ctx context.Context, page PageRequest) (Page[domain.Profile], error)
	// ListEmailsExcept returns the email of every profile except the named
	// user's, for new-post notification fan-out.
	ListEmailsExcept(ctx context.Context, userID string) ([]string, error)
}

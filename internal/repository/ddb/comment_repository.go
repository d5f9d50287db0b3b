package ddb

import (
	"context"
	"strings"

	"blog-backend/internal/domain"
	"blog-backend/internal/repository"
	"blog-backend/internal/storage"

	"go.uber.org/zap"
)

// ddbComment is the table shape of a comment item. Comments share their
// parent post's partition.
type ddbComment struct {
	PK         string `dynamodbav:"pk"`
	SK         string `dynamodbav:"sk"`
	PostID     string `dynamodbav:"postId"`
	Content    string `dynamodbav:"content"`
	AuthorID   string `dynamodbav:"authorId"`
	AuthorName string `dynamodbav:"authorName"`
	CreatedAt  string `dynamodbav:"createdAt"`
	UpdatedAt  string `dynamodbav:"updatedAt"`
}

// CommentRepository is the DynamoDB-backed comment repository.
type CommentRepository struct {
	engine *Engine[ddbComment]
}

// NewCommentRepository creates a comment repository over the given table.
func NewCommentRepository(table storage.Table, logger *zap.Logger) *CommentRepository {
	return &CommentRepository{
		engine: NewEngine[ddbComment](table, "comment", logger),
	}
}

// Save writes the comment item, overwriting any previous version.
func (r *CommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	pk, sk := repository.CommentKey(comment.PostID, comment.ID)
	return r.engine.Put(ctx, ddbComment{
		PK:         pk,
		SK:         sk,
		PostID:     comment.PostID,
		Content:    comment.Content,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		CreatedAt:  formatTime(comment.CreatedAt),
		UpdatedAt:  formatTime(comment.UpdatedAt),
	})
}

// FindByID returns the comment, or nil when it does not exist.
func (r *CommentRepository) FindByID(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	pk, sk := repository.CommentKey(postID, commentID)
	record, err := r.engine.Get(ctx, pk, sk)
	if err != nil || record == nil {
		return nil, err
	}
	comment, err := record.toDomain()
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes the comment. Missing comments are a no-op.
func (r *CommentRepository) Delete(ctx context.Context, postID, commentID string) error {
	pk, sk := repository.CommentKey(postID, commentID)
	return r.engine.Delete(ctx, pk, sk)
}

// FindByPost returns one page of the post's comments via a sort-key prefix
// range query, in sort-key order.
func (r *CommentRepository) FindByPost(ctx context.Context, postID string, page repository.PageRequest) (repository.Page[domain.Comment], error) {
	pk := repository.Normalize(repository.PostPrefix, postID)
	records, err := r.engine.QueryPrefix(ctx, pk, repository.CommentPrefix, page)
	if err != nil {
		return repository.Page[domain.Comment]{}, err
	}
	return toDomainPage(records, ddbComment.toDomain)
}

func (rec ddbComment) toDomain() (domain.Comment, error) {
	createdAt, err := parseTime(rec.CreatedAt, "comment createdAt")
	if err != nil {
		return domain.Comment{}, err
	}
	updatedAt, err := parseTime(rec.UpdatedAt, "comment updatedAt")
	if err != nil {
		return domain.Comment{}, err
	}
	return domain.Comment{
		ID:         strings.TrimPrefix(rec.SK, repository.CommentPrefix),
		PostID:     strings.TrimPrefix(rec.PostID, repository.PostPrefix),
		Content:    rec.Content,
		AuthorID:   rec.AuthorID,
		AuthorName: rec.AuthorName,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

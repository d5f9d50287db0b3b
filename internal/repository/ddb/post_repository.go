package ddb

import (
	"context"
	"strings"
	"time"

	"blog-backend/internal/domain"
	"blog-backend/internal/repository"
	"blog-backend/internal/storage"
	appErrors "blog-backend/pkg/errors"

	"go.uber.org/zap"
)

// ddbPost is the table shape of a post metadata item.
type ddbPost struct {
	PK           string `dynamodbav:"pk"`
	SK           string `dynamodbav:"sk"`
	Title        string `dynamodbav:"title"`
	Content      string `dynamodbav:"content"`
	Status       string `dynamodbav:"status"`
	AuthorID     string `dynamodbav:"authorId"`
	AuthorName   string `dynamodbav:"authorName"`
	AuthorAvatar string `dynamodbav:"authorAvatar,omitempty"`
	CreatedAt    string `dynamodbav:"createdAt"`
	UpdatedAt    string `dynamodbav:"updatedAt"`
}

// PostRepository is the DynamoDB-backed post repository.
type PostRepository struct {
	engine *Engine[ddbPost]
}

// NewPostRepository creates a post repository over the given table.
func NewPostRepository(table storage.Table, logger *zap.Logger) *PostRepository {
	return &PostRepository{
		engine: NewEngine[ddbPost](table, "post", logger),
	}
}

// Save writes the post's metadata item, overwriting any previous version.
func (r *PostRepository) Save(ctx context.Context, post *domain.Post) error {
	pk, sk := repository.PostKey(post.ID)
	return r.engine.Put(ctx, ddbPost{
		PK:           pk,
		SK:           sk,
		Title:        post.Title,
		Content:      post.Content,
		Status:       post.Status,
		AuthorID:     post.AuthorID,
		AuthorName:   post.AuthorName,
		AuthorAvatar: post.AuthorAvatar,
		CreatedAt:    formatTime(post.CreatedAt),
		UpdatedAt:    formatTime(post.UpdatedAt),
	})
}

// FindByID returns the post, or nil when it does not exist.
func (r *PostRepository) FindByID(ctx context.Context, postID string) (*domain.Post, error) {
	pk, sk := repository.PostKey(postID)
	record, err := r.engine.Get(ctx, pk, sk)
	if err != nil || record == nil {
		return nil, err
	}
	post, err := record.toDomain()
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes the post's metadata item. Missing posts are a no-op.
func (r *PostRepository) Delete(ctx context.Context, postID string) error {
	pk, sk := repository.PostKey(postID)
	return r.engine.Delete(ctx, pk, sk)
}

// FindAll returns one scan page of posts. Comments and profiles share the
// table, so the page is narrowed to metadata items after the scan boundary
// is fixed.
func (r *PostRepository) FindAll(ctx context.Context, page repository.PageRequest) (repository.Page[domain.Post], error) {
	records, err := r.engine.Scan(ctx, page, func(rec ddbPost) bool {
		return rec.SK == repository.MetadataSK && strings.HasPrefix(rec.PK, repository.PostPrefix)
	})
	if err != nil {
		return repository.Page[domain.Post]{}, err
	}
	return toDomainPage(records, ddbPost.toDomain)
}

// FindAllByAuthor is FindAll narrowed to one author's posts.
func (r *PostRepository) FindAllByAuthor(ctx context.Context, authorID string, page repository.PageRequest) (repository.Page[domain.Post], error) {
	records, err := r.engine.Scan(ctx, page, func(rec ddbPost) bool {
		return rec.SK == repository.MetadataSK &&
			strings.HasPrefix(rec.PK, repository.PostPrefix) &&
			rec.AuthorID == authorID
	})
	if err != nil {
		return repository.Page[domain.Post]{}, err
	}
	return toDomainPage(records, ddbPost.toDomain)
}

func (rec ddbPost) toDomain() (domain.Post, error) {
	createdAt, err := parseTime(rec.CreatedAt, "post createdAt")
	if err != nil {
		return domain.Post{}, err
	}
	updatedAt, err := parseTime(rec.UpdatedAt, "post updatedAt")
	if err != nil {
		return domain.Post{}, err
	}
	return domain.Post{
		ID:           strings.TrimPrefix(rec.PK, repository.PostPrefix),
		Title:        rec.Title,
		Content:      rec.Content,
		Status:       rec.Status,
		AuthorID:     rec.AuthorID,
		AuthorName:   rec.AuthorName,
		AuthorAvatar: rec.AuthorAvatar,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// toDomainPage converts a record page into a domain page, keeping the
// continuation position untouched.
func toDomainPage[R, D any](page repository.Page[R], convert func(R) (D, error)) (repository.Page[D], error) {
	items := make([]D, 0, len(page.Items))
	for _, rec := range page.Items {
		item, err := convert(rec)
		if err != nil {
			return repository.Page[D]{}, err
		}
		items = append(items, item)
	}
	return repository.Page[D]{
		Items:     items,
		NextToken: page.NextToken,
		Size:      len(items),
		HasMore:   page.HasMore,
	}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, appErrors.NewInternal("failed to parse "+field, err)
	}
	return t, nil
}

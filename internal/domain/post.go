// Package domain holds the entities persisted in the shared content table
// and the notification event payloads produced when they change.
package domain

import "time"

// Post statuses. The status field is a free-form string; these are the
// values the web client uses, not an enforced transition graph.
const (
	PostStatusDraft     = "DRAFT"
	PostStatusPublished = "PUBLISHED"
	PostStatusArchived  = "ARCHIVED"
)

// Post is a blog post. Exactly one item per post, stored under
// PK "POST#<id>" with the METADATA sort key.
type Post struct {
	ID           string
	Title        string
	Content      string
	Status       string
	AuthorID     string
	AuthorName   string
	AuthorAvatar string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package domain

import "time"

// Comment is a comment on a post. Comments live in their parent post's
// partition under a "COMMENT#<id>" sort key, so one range query returns
// all comments for a post in sort-key order.
type Comment struct {
	ID         string
	PostID     string
	Content    string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

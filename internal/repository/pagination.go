package repository

import (
	"encoding/base64"
	"strings"

	appErrors "blog-backend/pkg/errors"
)

// Page size bounds applied to every paged read.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// tokenDelimiter joins the partition and sort key inside a continuation
// token. Key values in this schema never contain it; if a sort key ever did,
// decoding still works because only the first delimiter splits (the
// remainder, delimiters included, is the sort key). A partition key
// containing it would not survive the round trip.
const tokenDelimiter = "|"

// PageRequest carries the caller's paging parameters. NextToken is the
// opaque token from a previous page, or empty for the first page.
type PageRequest struct {
	Limit     int
	NextToken string
}

// NewPageRequest clamps the limit into the allowed range.
func NewPageRequest(limit int, nextToken string) PageRequest {
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	return PageRequest{Limit: limit, NextToken: nextToken}
}

// EffectiveLimit returns the limit to request from storage.
func (pr PageRequest) EffectiveLimit() int {
	if pr.Limit <= 0 || pr.Limit > MaxPageSize {
		return DefaultPageSize
	}
	return pr.Limit
}

// HasNextToken reports whether the request resumes from a prior position.
func (pr PageRequest) HasNextToken() bool {
	return pr.NextToken != ""
}

// Page is one page of a paged read. Size is len(Items), not a total count:
// a scan page filtered client-side can hold fewer items than requested, or
// none, while HasMore is still true. NextToken is nil exactly when HasMore
// is false.
type Page[T any] struct {
	Items     []T
	NextToken *string
	Size      int
	HasMore   bool
}

// NewPage builds a page from filtered items and the storage layer's
// continuation position.
func NewPage[T any](items []T, lastPK, lastSK string, hasMore bool) Page[T] {
	page := Page[T]{
		Items:   items,
		Size:    len(items),
		HasMore: hasMore,
	}
	if hasMore {
		token := EncodeToken(lastPK, lastSK)
		page.NextToken = &token
	}
	return page
}

// EncodeToken packs the last-seen key pair into an opaque, URL-safe string.
// Tokens are a deterministic function of the key pair; clients must treat
// them as black boxes and pass them back unmodified.
func EncodeToken(pk, sk string) string {
	return base64.URLEncoding.EncodeToString([]byte(pk + tokenDelimiter + sk))
}

// DecodeToken unpacks a continuation token back into its key pair. A token
// that is not valid base64 or lacks the delimiter fails with an
// INVALID_TOKEN error.
func DecodeToken(token string) (pk, sk string, err error) {
	raw, decodeErr := base64.URLEncoding.DecodeString(token)
	if decodeErr != nil {
		return "", "", appErrors.NewInvalidToken("continuation token is not valid base64", decodeErr)
	}
	parts := strings.SplitN(string(raw), tokenDelimiter, 2)
	if len(parts) != 2 {
		return "", "", appErrors.NewInvalidToken("continuation token is missing its key separator", nil)
	}
	return parts[0], parts[1], nil
}

// Package service implements the application operations for posts,
// comments, and profiles: identity assignment, timestamps, ownership
// checks, persistence orchestration, and best-effort notification
// publication.
package service

import (
	"blog-backend/internal/domain"
)

// Entity kind names used in not-found errors.
const (
	kindPost    = "post"
	kindComment = "comment"
	kindProfile = "profile"
)

// Notifier accepts a notification event for asynchronous, best-effort
// publication. messaging.Dispatcher is the production implementation.
type Notifier interface {
	Dispatch(event domain.NotificationEvent)
}

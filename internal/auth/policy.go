package auth

import (
	appErrors "blog-backend/pkg/errors"
)

// Authorize allows a mutation when the subject owns the entity or holds the
// ADMIN role. Every service routes its ownership checks through here so the
// rule lives in exactly one place.
func Authorize(ownerID string, subject Subject) error {
	if subject.ID == ownerID {
		return nil
	}
	if subject.IsAdmin() {
		return nil
	}
	return appErrors.NewForbidden("you can only modify your own content")
}

// RequireAdmin allows an operation only for privileged subjects.
func RequireAdmin(subject Subject) error {
	if subject.IsAdmin() {
		return nil
	}
	return appErrors.NewForbidden("administrator role required")
}

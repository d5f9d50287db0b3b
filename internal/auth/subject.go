// Package auth validates bearer tokens and carries the resulting caller
// identity through request context. It also hosts the single ownership/role
// policy every service uses for mutations.
package auth

import (
	"context"

	"blog-backend/internal/domain"
)

// Subject is the authenticated caller: identity plus role set. Services
// take it explicitly on every call instead of re-reading request state.
type Subject struct {
	ID    string
	Name  string
	Email string
	Roles []string
}

// HasRole reports whether the subject carries the given role.
func (s Subject) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the subject is privileged.
func (s Subject) IsAdmin() bool {
	return s.HasRole(domain.RoleAdmin)
}

type contextKey struct{}

// WithSubject returns a context carrying the authenticated subject.
func WithSubject(ctx context.Context, subject Subject) context.Context {
	return context.WithValue(ctx, contextKey{}, subject)
}

// SubjectFrom extracts the authenticated subject from the context.
func SubjectFrom(ctx context.Context) (Subject, bool) {
	subject, ok := ctx.Value(contextKey{}).(Subject)
	return subject, ok
}

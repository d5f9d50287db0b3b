package service

import (
	"context"
	"time"

	"blog-backend/internal/auth"
	"blog-backend/internal/domain"
	"blog-backend/internal/repository"
	appErrors "blog-backend/pkg/errors"

	"go.uber.org/zap"
)

// CreateProfileInput is the payload for registering a profile. The user
// identifier comes from the identity provider, not from this service.
type CreateProfileInput struct {
	UserID   string
	Email    string
	Username string
}

// UpdateProfileInput is a partial update: nil fields are left unchanged.
type UpdateProfileInput struct {
	AvatarURL *string
}

// ProfileService orchestrates profile persistence, authorization, and the
// new-user notification.
type ProfileService struct {
	profiles repository.ProfileRepository
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewProfileService creates a profile service.
func NewProfileService(profiles repository.ProfileRepository, notifier Notifier, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Register persists a new profile with the USER role and publishes a
// NEW_USER event, best effort.
func (s *ProfileService) Register(ctx context.Context, in CreateProfileInput) (*domain.Profile, error) {
	profile := &domain.Profile{
		UserID:    in.UserID,
		Email:     in.Email,
		Username:  in.Username,
		Role:      domain.RoleUser,
		CreatedAt: s.now(),
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.notifier.Dispatch(domain.NewUserEvent(in.Email, in.Username))
	return profile, nil
}

// Get returns a profile or NotFound.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, appErrors.NewNotFound(kindProfile, userID)
	}
	return profile, nil
}

// Update applies a partial update to the subject's own profile. ADMIN
// subjects may update any profile.
func (s *ProfileService) Update(ctx context.Context, subject auth.Subject, userID string, in UpdateProfileInput) (*domain.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(profile.UserID, subject); err != nil {
		return nil, err
	}

	if in.AvatarURL != nil {
		profile.AvatarURL = *in.AvatarURL
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes the subject's own profile; ADMIN subjects may delete any.
func (s *ProfileService) Delete(ctx context.Context, subject auth.Subject, userID string) error {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.Authorize(profile.UserID, subject); err != nil {
		return err
	}
	return s.profiles.Delete(ctx, userID)
}

// List returns one page of all profiles. Administrators only.
func (s *ProfileService) List(ctx context.Context, subject auth.Subject, page repository.PageRequest) (repository.Page[domain.Profile], error) {
	if err := auth.RequireAdmin(subject); err != nil {
		return repository.Page[domain.Profile]{}, err
	}
	return s.profiles.FindAll(ctx, page)
}

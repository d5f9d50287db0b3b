package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"blog-backend/internal/domain"
	"blog-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type updateProfileRequest struct {
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}

type profileResponse struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func toProfileResponse(profile domain.Profile) profileResponse {
	return profileResponse{
		UserID:    profile.UserID,
		Email:     profile.Email,
		Username:  profile.Username,
		Role:      profile.Role,
		AvatarURL: profile.AvatarURL,
		CreatedAt: profile.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type profileHandler struct {
	profiles *service.ProfileService
	validate *validator.Validate
	logger   *zap.Logger
}

func newProfileHandler(profiles *service.ProfileService, validate *validator.Validate, logger *zap.Logger) *profileHandler {
	return &profileHandler{profiles: profiles, validate: validate, logger: logger}
}

// Register creates the caller's profile from their token claims. The
// identity provider owns credentials; this only materializes the profile
// item and fires the welcome notification.
func (h *profileHandler) Register(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}
	if subject.Email == "" || subject.Name == "" {
		respondValidation(w, "token is missing email or username claims")
		return
	}

	profile, err := h.profiles.Register(r.Context(), service.CreateProfileInput{
		UserID:   subject.ID,
		Email:    subject.Email,
		Username: subject.Name,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, toProfileResponse(*profile))
}

func (h *profileHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.Get(r.Context(), subject.ID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toProfileResponse(*profile))
}

func (h *profileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toProfileResponse(*profile))
}

func (h *profileHandler) Update(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err.Error())
		return
	}

	profile, err := h.profiles.Update(r.Context(), subject, chi.URLParam(r, "userID"), service.UpdateProfileInput{
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toProfileResponse(*profile))
}

func (h *profileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	if err := h.profiles.Delete(r.Context(), subject, chi.URLParam(r, "userID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

func (h *profileHandler) List(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	page, err := h.profiles.List(r.Context(), subject, pageRequestFrom(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, newPageResponse(page, toProfileResponse))
}

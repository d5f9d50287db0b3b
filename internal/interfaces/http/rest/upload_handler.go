package rest

import (
	"encoding/json"
	"net/http"

	"blog-backend/internal/media"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type uploadURLRequest struct {
	ContentType string `json:"contentType" validate:"required,max=100"`
}

type uploadHandler struct {
	uploads  *media.UploadService
	validate *validator.Validate
	logger   *zap.Logger
}

func newUploadHandler(uploads *media.UploadService, validate *validator.Validate, logger *zap.Logger) *uploadHandler {
	return &uploadHandler{uploads: uploads, validate: validate, logger: logger}
}

func (h *uploadHandler) PostThumbnail(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	url, err := h.uploads.PostThumbnailURL(r.Context(), chi.URLParam(r, "postID"), req.ContentType)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, url)
}

func (h *uploadHandler) Avatar(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	url, err := h.uploads.AvatarURL(r.Context(), subject.ID, req.ContentType)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, url)
}

func (h *uploadHandler) decode(w http.ResponseWriter, r *http.Request) (uploadURLRequest, bool) {
	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err.Error())
		return req, false
	}
	return req, true
}

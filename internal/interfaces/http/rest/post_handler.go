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

type createPostRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type updatePostRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=200"`
	Content *string `json:"content"`
	Status  *string `json:"status" validate:"omitempty,max=32"`
}

type postResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Status       string `json:"status"`
	AuthorID     string `json:"authorId"`
	AuthorName   string `json:"authorName"`
	AuthorAvatar string `json:"authorAvatar,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func toPostResponse(post domain.Post) postResponse {
	return postResponse{
		ID:           post.ID,
		Title:        post.Title,
		Content:      post.Content,
		Status:       post.Status,
		AuthorID:     post.AuthorID,
		AuthorName:   post.AuthorName,
		AuthorAvatar: post.AuthorAvatar,
		CreatedAt:    post.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    post.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type postHandler struct {
	posts    *service.PostService
	validate *validator.Validate
	logger   *zap.Logger
}

func newPostHandler(posts *service.PostService, validate *validator.Validate, logger *zap.Logger) *postHandler {
	return &postHandler{posts: posts, validate: validate, logger: logger}
}

func (h *postHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err.Error())
		return
	}

	post, err := h.posts.Create(r.Context(), subject, service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, toPostResponse(*post))
}

func (h *postHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toPostResponse(*post))
}

func (h *postHandler) Update(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err.Error())
		return
	}

	post, err := h.posts.Update(r.Context(), subject, chi.URLParam(r, "postID"), service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toPostResponse(*post))
}

func (h *postHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	if err := h.posts.Delete(r.Context(), subject, chi.URLParam(r, "postID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

func (h *postHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.posts.List(r.Context(), pageRequestFrom(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, newPageResponse(page, toPostResponse))
}

func (h *postHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	page, err := h.posts.ListByAuthor(r.Context(), subject.ID, pageRequestFrom(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, newPageResponse(page, toPostResponse))
}

func respondValidation(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, apiResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

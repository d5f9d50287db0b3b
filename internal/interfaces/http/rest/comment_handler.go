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

type createCommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

type updateCommentRequest struct {
	Content *string `json:"content" validate:"omitempty,max=5000"`
}

type commentResponse struct {
	ID         string `json:"id"`
	PostID     string `json:"postId"`
	Content    string `json:"content"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func toCommentResponse(comment domain.Comment) commentResponse {
	return commentResponse{
		ID:         comment.ID,
		PostID:     comment.PostID,
		Content:    comment.Content,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		CreatedAt:  comment.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  comment.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type commentHandler struct {
	comments *service.CommentService
	validate *validator.Validate
	logger   *zap.Logger
}

func newCommentHandler(comments *service.CommentService, validate *validator.Validate, logger *zap.Logger) *commentHandler {
	return &commentHandler{comments: comments, validate: validate, logger: logger}
}

func (h *commentHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err.Error())
		return
	}

	comment, err := h.comments.Create(r.Context(), subject, chi.URLParam(r, "postID"), service.CreateCommentInput{
		Content: req.Content,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusCreated, toCommentResponse(*comment))
}

func (h *commentHandler) Get(w http.ResponseWriter, r *http.Request) {
	comment, err := h.comments.Get(r.Context(), chi.URLParam(r, "postID"), chi.URLParam(r, "commentID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toCommentResponse(*comment))
}

func (h *commentHandler) Update(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	var req updateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondValidation(w, err.Error())
		return
	}

	comment, err := h.comments.Update(r.Context(), subject, chi.URLParam(r, "postID"), chi.URLParam(r, "commentID"), service.UpdateCommentInput{
		Content: req.Content,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, toCommentResponse(*comment))
}

func (h *commentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectOrFail(w, r)
	if !ok {
		return
	}

	if err := h.comments.Delete(r.Context(), subject, chi.URLParam(r, "postID"), chi.URLParam(r, "commentID")); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, nil)
}

func (h *commentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.comments.ListByPost(r.Context(), chi.URLParam(r, "postID"), pageRequestFrom(r))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, newPageResponse(page, toCommentResponse))
}

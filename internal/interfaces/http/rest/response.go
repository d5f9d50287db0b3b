package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"blog-backend/internal/repository"
	appErrors "blog-backend/pkg/errors"

	"go.uber.org/zap"
)

// apiResponse is the envelope every endpoint returns. Data is omitted from
// error responses.
type apiResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// pageResponse mirrors the repository page shape on the wire.
type pageResponse[T any] struct {
	Result    []T     `json:"result"`
	Size      int     `json:"size"`
	NextToken *string `json:"nextToken,omitempty"`
	HasMore   bool    `json:"hasMore"`
}

func newPageResponse[D, T any](page repository.Page[D], convert func(D) T) pageResponse[T] {
	result := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		result = append(result, convert(item))
	}
	return pageResponse[T]{
		Result:    result,
		Size:      page.Size,
		NextToken: page.NextToken,
		HasMore:   page.HasMore,
	}
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, apiResponse{
		Code:    status,
		Message: http.StatusText(status),
		Data:    data,
	})
}

// respondError maps the application error taxonomy onto HTTP statuses.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	if appErr, ok := err.(*appErrors.AppError); ok {
		switch appErr.Type {
		case appErrors.ErrorTypeNotFound:
			status = http.StatusNotFound
			message = appErr.Message
		case appErrors.ErrorTypeForbidden:
			status = http.StatusForbidden
			message = appErr.Message
		case appErrors.ErrorTypeValidation, appErrors.ErrorTypeInvalidToken:
			status = http.StatusBadRequest
			message = appErr.Message
		case appErrors.ErrorTypeUnavailable:
			status = http.StatusServiceUnavailable
			message = "storage temporarily unavailable"
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	}

	writeJSON(w, status, apiResponse{Code: status, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// pageRequestFrom reads the size and nextToken query parameters.
func pageRequestFrom(r *http.Request) repository.PageRequest {
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		// Bad numbers fall back to the default page size.
		if parsed, err := strconv.Atoi(raw); err == nil {
			size = parsed
		}
	}
	return repository.NewPageRequest(size, r.URL.Query().Get("nextToken"))
}

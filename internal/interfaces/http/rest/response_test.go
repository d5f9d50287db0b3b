package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "blog-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", appErrors.NewNotFound("post", "p1"), http.StatusNotFound},
		{"forbidden", appErrors.NewForbidden("nope"), http.StatusForbidden},
		{"validation", appErrors.NewValidation("bad input"), http.StatusBadRequest},
		{"invalid token", appErrors.NewInvalidToken("bad token", nil), http.StatusBadRequest},
		{"unavailable", appErrors.NewUnavailable("throttled", nil), http.StatusServiceUnavailable},
		{"internal", appErrors.NewInternal("boom", nil), http.StatusInternalServerError},
		{"plain error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, zap.NewNop(), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body apiResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, zap.NewNop(), appErrors.NewInternal("attributevalue blew up", nil))

	var body apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
}

func TestPageRequestFrom(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/posts?size=7&nextToken=abc", nil)
	req := pageRequestFrom(r)
	assert.Equal(t, 7, req.Limit)
	assert.Equal(t, "abc", req.NextToken)

	r = httptest.NewRequest(http.MethodGet, "/posts", nil)
	req = pageRequestFrom(r)
	assert.Equal(t, 20, req.Limit)
	assert.Empty(t, req.NextToken)

	r = httptest.NewRequest(http.MethodGet, "/posts?size=banana", nil)
	assert.Equal(t, 20, pageRequestFrom(r).Limit)

	r = httptest.NewRequest(http.MethodGet, "/posts?size=5000", nil)
	assert.Equal(t, 20, pageRequestFrom(r).Limit)
}

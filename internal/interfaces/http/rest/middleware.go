package rest

import (
	"net/http"
	"time"

	"blog-backend/internal/auth"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// requestLogger logs one line per request with method, path, status, and
// duration.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}

// Authenticate validates the bearer token and stores the caller's Subject
// in the request context. Requests without a valid token get 401.
func Authenticate(validator *auth.JWTValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeJSON(w, http.StatusUnauthorized, apiResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing authorization header",
				})
				return
			}

			claims, err := validator.ValidateToken(header)
			if err != nil {
				logger.Debug("token validation failed", zap.Error(err))
				writeJSON(w, http.StatusUnauthorized, apiResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid or expired token",
				})
				return
			}

			ctx := auth.WithSubject(r.Context(), auth.SubjectOf(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// subjectOrFail extracts the authenticated subject; the auth middleware
// guarantees it is present on every /api route.
func subjectOrFail(w http.ResponseWriter, r *http.Request) (auth.Subject, bool) {
	subject, ok := auth.SubjectFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, apiResponse{
			Code:    http.StatusUnauthorized,
			Message: "not authenticated",
		})
	}
	return subject, ok
}

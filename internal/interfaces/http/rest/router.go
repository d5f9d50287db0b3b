// Package rest exposes the application over HTTP: a chi router, the
// response envelope, and thin handlers that map requests onto the services.
package rest

import (
	"net/http"

	"blog-backend/internal/auth"
	"blog-backend/internal/media"
	"blog-backend/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router wires handlers, middleware, and routes.
type Router struct {
	posts     *service.PostService
	comments  *service.CommentService
	profiles  *service.ProfileService
	uploads   *media.UploadService
	validator *auth.JWTValidator
	logger    *zap.Logger
}

// NewRouter creates a router over the application services.
func NewRouter(
	posts *service.PostService,
	comments *service.CommentService,
	profiles *service.ProfileService,
	uploads *media.UploadService,
	jwtValidator *auth.JWTValidator,
	logger *zap.Logger,
) *Router {
	return &Router{
		posts:     posts,
		comments:  comments,
		profiles:  profiles,
		uploads:   uploads,
		validator: jwtValidator,
		logger:    logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(rt.logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", rt.healthCheck)
	router.Handle("/metrics", promhttp.Handler())

	validate := validator.New()

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(Authenticate(rt.validator, rt.logger))

		postHandler := newPostHandler(rt.posts, validate, rt.logger)
		commentHandler := newCommentHandler(rt.comments, validate, rt.logger)
		profileHandler := newProfileHandler(rt.profiles, validate, rt.logger)
		uploadHandler := newUploadHandler(rt.uploads, validate, rt.logger)

		r.Route("/posts", func(r chi.Router) {
			r.Post("/", postHandler.Create)
			r.Get("/", postHandler.List)
			r.Get("/mine", postHandler.ListMine)
			r.Get("/{postID}", postHandler.Get)
			r.Put("/{postID}", postHandler.Update)
			r.Delete("/{postID}", postHandler.Delete)
			r.Post("/{postID}/thumbnail-upload-url", uploadHandler.PostThumbnail)

			r.Route("/{postID}/comments", func(r chi.Router) {
				r.Post("/", commentHandler.Create)
				r.Get("/", commentHandler.List)
				r.Get("/{commentID}", commentHandler.Get)
				r.Put("/{commentID}", commentHandler.Update)
				r.Delete("/{commentID}", commentHandler.Delete)
			})
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", profileHandler.Register)
			r.Get("/", profileHandler.List)
			r.Get("/me", profileHandler.Me)
			r.Post("/me/avatar-upload-url", uploadHandler.Avatar)
			r.Get("/{userID}", profileHandler.Get)
			r.Put("/{userID}", profileHandler.Update)
			r.Delete("/{userID}", profileHandler.Delete)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

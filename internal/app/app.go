// Package app is the composition root: it builds the storage table,
// repositories, services, notification pipeline, and HTTP router from
// configuration.
package app

import (
	"context"
	"fmt"
	"net/http"

	"blog-backend/internal/auth"
	"blog-backend/internal/config"
	"blog-backend/internal/domain"
	"blog-backend/internal/interfaces/http/rest"
	"blog-backend/internal/media"
	"blog-backend/internal/messaging"
	snspub "blog-backend/internal/messaging/sns"
	"blog-backend/internal/repository/ddb"
	"blog-backend/internal/service"
	"blog-backend/internal/storage/dynamo"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Config     config.Config
	Logger     *zap.Logger
	Handler    http.Handler
	dispatcher *messaging.Dispatcher
}

// New builds the application from environment configuration.
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	table := dynamo.NewTable(dynamodb.NewFromConfig(awsCfg), cfg.TableName, logger)

	posts := ddb.NewPostRepository(table, logger)
	comments := ddb.NewCommentRepository(table, logger)
	profiles := ddb.NewProfileRepository(table, logger)

	var publisher messaging.Publisher
	if cfg.TopicARN != "" {
		publisher = snspub.NewPublisher(sns.NewFromConfig(awsCfg), cfg.TopicARN, logger)
	} else {
		// No topic configured (local mode): log the event instead.
		publisher = messaging.PublisherFunc(func(ctx context.Context, event domain.NotificationEvent) error {
			logger.Info("notification topic not configured, event not sent",
				zap.String("eventType", event.EventType))
			return nil
		})
	}
	dispatcher := messaging.NewDispatcher(publisher, cfg.EventQueueSize, logger)

	postService := service.NewPostService(posts, profiles, dispatcher, logger)
	commentService := service.NewCommentService(comments, posts, profiles, dispatcher, logger)
	profileService := service.NewProfileService(profiles, dispatcher, logger)

	presigner := s3.NewPresignClient(s3.NewFromConfig(awsCfg))
	uploads := media.NewUploadService(presigner, cfg.UploadBucket, cfg.AWSRegion)

	jwtValidator := auth.NewJWTValidator(cfg.JWTSecret, cfg.JWTIssuer)

	router := rest.NewRouter(postService, commentService, profileService, uploads, jwtValidator, logger)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Handler:    router.Setup(),
		dispatcher: dispatcher,
	}, nil
}

// Close drains the notification queue and flushes logs.
func (a *App) Close() {
	a.dispatcher.Close()
	_ = a.Logger.Sync()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

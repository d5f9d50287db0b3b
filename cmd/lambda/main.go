package main

import (
	"context"
	"log"
	"time"

	"blog-backend/internal/app"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var (
	chiLambda   *chiadapter.ChiLambdaV2
	application *app.App

	coldStart     = true
	coldStartTime time.Time
)

// init runs during cold start.
func init() {
	coldStartTime = time.Now()

	var err error
	application, err = app.New(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	chiRouter, ok := application.Handler.(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)

	application.Logger.Info("Lambda cold start completed",
		zap.Duration("duration", time.Since(coldStartTime)))
}

// Handler proxies API Gateway v2 requests through the chi router.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp, err := chiLambda.ProxyWithContextV2(ctx, req)

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}
	if coldStart {
		resp.Headers["X-Cold-Start"] = "true"
		coldStart = false
	}
	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Request-ID"] = req.RequestContext.RequestID
	}

	if resp.StatusCode >= 500 {
		application.Logger.Error("Lambda error response",
			zap.String("method", req.RequestContext.HTTP.Method),
			zap.String("path", req.RequestContext.HTTP.Path),
			zap.Int("status_code", resp.StatusCode),
		)
	}

	return resp, err
}

func main() {
	lambda.Start(Handler)
}

// Package sns publishes notification events to an SNS topic, where the
// notification dispatcher Lambda consumes them.
package sns

import (
	"context"
	"encoding/json"
	"fmt"

	"blog-backend/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

// Publisher publishes events as JSON messages on one SNS topic.
type Publisher struct {
	client   *sns.Client
	topicARN string
	logger   *zap.Logger
}

// NewPublisher creates an SNS publisher for the given topic.
func NewPublisher(client *sns.Client, topicARN string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:   client,
		topicARN: topicARN,
		logger:   logger,
	}
}

// Publish serializes the event and sends it to the topic.
func (p *Publisher) Publish(ctx context.Context, event domain.NotificationEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.EventType, err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(message)),
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event to SNS: %w", event.EventType, err)
	}

	p.logger.Debug("published event to SNS",
		zap.String("eventType", event.EventType),
		zap.String("topic", p.topicARN),
	)
	return nil
}

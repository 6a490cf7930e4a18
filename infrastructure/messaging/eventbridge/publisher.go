// Package eventbridge publishes storefront domain events to an
// EventBridge bus. Publishing is best effort: the storefront never fails a
// request because an event could not be emitted.
package eventbridge

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
)

const eventSource = "sweetshop.storefront"

// Publisher implements ports.EventPublisher over EventBridge.
type Publisher struct {
	client  *eventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewPublisher creates an event publisher for the given bus.
func NewPublisher(client *eventbridge.Client, busName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{
		client:  client,
		busName: busName,
		logger:  logger,
	}
}

// Publish emits one event with the given detail type and JSON-encoded
// detail payload.
func (p *Publisher) Publish(ctx context.Context, detailType string, detail interface{}) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return err
	}

	out, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String(detailType),
				Detail:       aws.String(string(payload)),
			},
		},
	})
	if err != nil {
		p.logger.Warn("failed to publish event",
			zap.String("detailType", detailType),
			zap.Error(err),
		)
		return err
	}
	if out.FailedEntryCount > 0 {
		p.logger.Warn("event entry rejected by bus",
			zap.String("detailType", detailType),
			zap.Int32("failed", out.FailedEntryCount),
		)
	}

	p.logger.Debug("event published", zap.String("detailType", detailType))
	return nil
}

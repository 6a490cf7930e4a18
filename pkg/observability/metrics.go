package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes operational counters to CloudWatch. All calls are best
// effort: a publish failure is logged and never propagated.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger
	enabled   bool
}

// NewMetrics creates a metrics publisher. A nil client disables publishing,
// which is the configuration used in development and tests.
func NewMetrics(namespace string, client *cloudwatch.Client, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
		enabled:   client != nil,
	}
}

// Count increments a named counter by one.
func (m *Metrics) Count(ctx context.Context, name string) {
	m.put(ctx, name, 1, types.StandardUnitCount)
}

// Duration records an operation duration in milliseconds.
func (m *Metrics) Duration(ctx context.Context, name string, d time.Duration) {
	m.put(ctx, name, float64(d.Milliseconds()), types.StandardUnitMilliseconds)
}

func (m *Metrics) put(ctx context.Context, name string, value float64, unit types.StandardUnit) {
	if !m.enabled {
		return
	}

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
			},
		},
	})
	if err != nil && m.logger != nil {
		m.logger.Warn("failed to publish metric",
			zap.String("metric", name),
			zap.Error(err),
		)
	}
}

// Metric names used across the services.
const (
	MetricOrdersPlaced   = "OrdersPlaced"
	MetricCartMerges     = "CartMerges"
	MetricStoreErrors    = "StoreErrors"
	MetricEmailsSent     = "EmailsSent"
	MetricEmailFailures  = "EmailFailures"
	MetricMergeDuration  = "CartMergeDuration"
	MetricOrderDuration  = "PlaceOrderDuration"
)

package notify

import (
	"context"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-cards/internal/aws"
)

const (
	metricAddSuccess = "AddToCartSuccess"
	metricAddFailure = "AddToCartFailure"
)

// CloudWatchSink publishes one count per toast. Publishing errors are logged;
// a toast is never held up or failed by CloudWatch.
type CloudWatchSink struct {
	client    aws.CloudWatchAPI
	namespace string
	logger    *zap.Logger
	nowFunc   func() time.Time
}

func NewCloudWatchSink(client aws.CloudWatchAPI, namespace string, logger *zap.Logger) *CloudWatchSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloudWatchSink{
		client:    client,
		namespace: namespace,
		logger:    logger,
		nowFunc:   time.Now,
	}
}

func (s *CloudWatchSink) NotifySuccess(ctx context.Context, message string) {
	s.put(ctx, metricAddSuccess)
}

func (s *CloudWatchSink) NotifyFailure(ctx context.Context, message string) {
	s.put(ctx, metricAddFailure)
}

func (s *CloudWatchSink) put(ctx context.Context, name string) {
	_, err := s.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(s.namespace),
		MetricData: []cwtypes.MetricDatum{{
			MetricName: sdkaws.String(name),
			Value:      sdkaws.Float64(1),
			Unit:       cwtypes.StandardUnitCount,
			Timestamp:  sdkaws.Time(s.nowFunc()),
		}},
	})
	if err != nil {
		s.logger.Warn("put metric data failed", zap.String("metric", name), zap.Error(err))
	}
}

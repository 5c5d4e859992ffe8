package stats

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/imrishuroy/quickstore/internal/aws"
)

// DefaultNamespace is the CloudWatch namespace used when none is configured.
const DefaultNamespace = "QuickStore/Dashboard"

// Reporter publishes Dashboard snapshots as CloudWatch metrics.
type Reporter struct {
	client    aws.CloudWatchAPI
	namespace string
	nowFunc   func() time.Time
}

// NewReporter creates a Reporter. An empty namespace uses DefaultNamespace.
func NewReporter(client aws.CloudWatchAPI, namespace string) *Reporter {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Reporter{client: client, namespace: namespace, nowFunc: time.Now}
}

// Publish sends one datum per dashboard field.
func (r *Reporter) Publish(ctx context.Context, d Dashboard) error {
	ts := r.nowFunc().UTC()
	datum := func(name string, v float64, unit cwtypes.StandardUnit) cwtypes.MetricDatum {
		return cwtypes.MetricDatum{
			MetricName: sdkaws.String(name),
			Value:      sdkaws.Float64(v),
			Unit:       unit,
			Timestamp:  sdkaws.Time(ts),
		}
	}
	_, err := r.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(r.namespace),
		MetricData: []cwtypes.MetricDatum{
			datum("TotalOrders", float64(d.TotalOrders), cwtypes.StandardUnitCount),
			datum("TotalRevenue", d.TotalRevenue, cwtypes.StandardUnitNone),
			datum("ActiveProducts", float64(d.ActiveProducts), cwtypes.StandardUnitCount),
			datum("LowStockCount", float64(d.LowStockCount), cwtypes.StandardUnitCount),
			datum("OpenTicketsCount", float64(d.OpenTicketsCount), cwtypes.StandardUnitCount),
			datum("TotalReviews", float64(d.TotalReviews), cwtypes.StandardUnitCount),
		},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imrishuroy/quickstore/internal/app"
	"github.com/imrishuroy/quickstore/internal/aws"
	"github.com/imrishuroy/quickstore/internal/config"
	"github.com/imrishuroy/quickstore/internal/stats"
)

// newReporter returns nil unless the collections live in DynamoDB.
func newReporter(cfg config.Config, clients *aws.AWSClients) statsPublisher {
	if cfg.StoreBackend != config.BackendDynamoDB || clients == nil {
		return nil
	}
	return stats.NewReporter(clients.CloudWatch, cfg.MetricsNamespace)
}

func main() {
	ctx := context.Background()
	cfg := config.Load()

	a, clients, err := app.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init storefront: %v", err)
	}

	p := NewProcessor(a.Stats, newReporter(cfg, clients))

	// If RUN_LOCAL=true, process a single simulated event and exit.
	if cfg.RunLocal {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			testBody = `{"type":"order.placed","order_id":"ORD-LOCAL-1","user_id":"GUEST","total":25.74}`
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{{MessageId: "local-1", Body: testBody}},
		}
		if err := p.Handle(ctx, event); err != nil {
			log.Fatalf("local handler error: %v", err)
		}
		return
	}

	lambda.Start(p.Handle)
}

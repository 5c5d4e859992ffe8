package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/imrishuroy/quickstore/internal/handoff"
	"github.com/imrishuroy/quickstore/internal/stats"
)

type statsSource interface {
	Compute(ctx context.Context) (stats.Dashboard, error)
}

type statsPublisher interface {
	Publish(ctx context.Context, d stats.Dashboard) error
}

// Processor consumes handoff events and refreshes the dashboard metrics once per batch.
type Processor struct {
	stats    statsSource
	reporter statsPublisher
}

// NewProcessor creates a processor. A nil reporter skips metrics.
func NewProcessor(src statsSource, rep statsPublisher) *Processor {
	return &Processor{stats: src, reporter: rep}
}

// Handle processes every record in the batch. A bad record fails the batch so
// Lambda retries it and eventually moves it to the DLQ.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	log.Printf("[worker] received %d messages", len(ev.Records))
	for _, rec := range ev.Records {
		if err := p.processMessage(rec); err != nil {
			log.Printf("[worker] error: %v", err)
			return err
		}
	}
	if len(ev.Records) > 0 {
		p.reportStats(ctx)
	}
	return nil
}

func (p *Processor) processMessage(rec events.SQSMessage) error {
	var ev handoff.Event
	if err := json.Unmarshal([]byte(rec.Body), &ev); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if ev.Type != handoff.EventOrderPlaced {
		return fmt.Errorf("message %s: unexpected event type %q", rec.MessageId, ev.Type)
	}
	if ev.OrderID == "" {
		return fmt.Errorf("message %s: missing order id", rec.MessageId)
	}
	log.Printf("[worker] handoff order=%s user=%s total=%.2f link=%s", ev.OrderID, ev.UserID, ev.Total, ev.Link)
	return nil
}

// Metrics failures are logged only; redelivering handoffs would not fix them.
func (p *Processor) reportStats(ctx context.Context) {
	if p.reporter == nil {
		return
	}
	d, err := p.stats.Compute(ctx)
	if err != nil {
		log.Printf("[worker] compute stats: %v", err)
		return
	}
	if err := p.reporter.Publish(ctx, d); err != nil {
		log.Printf("[worker] publish stats: %v", err)
		return
	}
	log.Printf("[worker] stats published orders=%d revenue=%.2f", d.TotalOrders, d.TotalRevenue)
}

package handoff

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/imrishuroy/quickstore/internal/aws"
)

// EventOrderPlaced is the type of the event an SQSChannel publishes.
const EventOrderPlaced = "order.placed"

// Handoff is one order ready to leave the store.
type Handoff struct {
	OrderID string
	UserID  string
	Total   float64
	Link    string
	Message string
}

// Channel delivers a handoff to whoever completes the order outside the store.
type Channel interface {
	Open(ctx context.Context, h Handoff) error
}

// Event is the queued form of a Handoff.
type Event struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Total     float64   `json:"total"`
	Link      string    `json:"link"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type publisher interface {
	Publish(ctx context.Context, body string, groupID string, attributes map[string]string) (string, error)
}

// SQSChannel publishes each handoff as an Event to a queue.
type SQSChannel struct {
	pub     publisher
	nowFunc func() time.Time
}

// NewSQSChannel returns a channel publishing through p.
func NewSQSChannel(p *aws.Publisher) *SQSChannel {
	return &SQSChannel{pub: p, nowFunc: time.Now}
}

func (c *SQSChannel) Open(ctx context.Context, h Handoff) error {
	body, err := json.Marshal(Event{
		Type:      EventOrderPlaced,
		OrderID:   h.OrderID,
		UserID:    h.UserID,
		Total:     h.Total,
		Link:      h.Link,
		Message:   h.Message,
		CreatedAt: c.nowFunc().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal handoff event: %w", err)
	}

	msgID, err := c.pub.Publish(ctx, string(body), h.OrderID, map[string]string{
		"event_type": EventOrderPlaced,
		"order_id":   h.OrderID,
		"user_id":    h.UserID,
	})
	if err != nil {
		return fmt.Errorf("publish handoff %s: %w", h.OrderID, err)
	}
	log.Printf("[handoff] queued order=%s message_id=%s", h.OrderID, msgID)
	return nil
}

// LogChannel only logs the link. Used when no queue is configured.
type LogChannel struct{}

func (LogChannel) Open(_ context.Context, h Handoff) error {
	log.Printf("[handoff] order=%s user=%s link=%s", h.OrderID, h.UserID, h.Link)
	return nil
}

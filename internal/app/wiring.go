package app

import (
	"context"
	"errors"
	"log"

	"github.com/imrishuroy/quickstore/internal/aws"
	"github.com/imrishuroy/quickstore/internal/config"
	"github.com/imrishuroy/quickstore/internal/handoff"
	"github.com/imrishuroy/quickstore/internal/store"
)

var errNoAWSClients = errors.New("aws clients required for dynamodb backend")

// Backend picks the collection medium from cfg.
func Backend(cfg config.Config, clients *aws.AWSClients) (store.Backend, error) {
	if cfg.StoreBackend != config.BackendDynamoDB {
		log.Printf("[app] using in-memory store")
		return store.NewMemoryBackend(), nil
	}
	if clients == nil {
		return nil, errNoAWSClients
	}
	log.Printf("[app] using dynamodb table=%s timeout=%s", cfg.StoreTable, cfg.StoreTimeout)
	return store.NewDynamoBackend(clients.DynamoDB, cfg.StoreTable, cfg.StoreTimeout), nil
}

// Channel publishes handoffs to SQS when a queue is configured and only logs them otherwise.
func Channel(cfg config.Config, clients *aws.AWSClients) handoff.Channel {
	if cfg.HandoffQueueURL == "" || clients == nil {
		return handoff.LogChannel{}
	}
	return handoff.NewSQSChannel(aws.NewPublisher(clients.SQS, cfg.HandoffQueueURL))
}

// FromConfig loads AWS clients when cfg needs them and builds the App.
func FromConfig(ctx context.Context, cfg config.Config) (*App, *aws.AWSClients, error) {
	var clients *aws.AWSClients
	if cfg.NeedsAWS() {
		c, err := aws.NewAWSClients(ctx)
		if err != nil {
			return nil, nil, err
		}
		clients = c
	}
	b, err := Backend(cfg, clients)
	if err != nil {
		return nil, nil, err
	}
	a, err := New(ctx, Config{
		Backend:        b,
		Channel:        Channel(cfg, clients),
		BusinessPhone:  cfg.BusinessPhone,
		IdempotencyTTL: cfg.IdempotencyTTL,
	})
	if err != nil {
		return nil, nil, err
	}
	return a, clients, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/imrishuroy/quickstore/internal/aws"
)

// DefaultDynamoTimeout bounds a single DynamoDB call when no timeout is configured.
const DefaultDynamoTimeout = 5 * time.Second

// collectionItem is the shape persisted in the collections table, one item per collection.
type collectionItem struct {
	Collection string    `dynamodbav:"collection"` // PK
	Payload    string    `dynamodbav:"payload"`    // JSON-encoded collection
	UpdatedAt  time.Time `dynamodbav:"updated_at"`
}

// DynamoBackend stores each collection as a single DynamoDB item.
// Writers in different processes are last-writer-wins; there is no merge.
type DynamoBackend struct {
	client    aws.DynamoDBAPI
	tableName string
	timeout   time.Duration
	nowFunc   func() time.Time
}

// NewDynamoBackend creates a backend over tableName. timeout <= 0 uses DefaultDynamoTimeout.
func NewDynamoBackend(client aws.DynamoDBAPI, tableName string, timeout time.Duration) *DynamoBackend {
	if timeout <= 0 {
		timeout = DefaultDynamoTimeout
	}
	return &DynamoBackend{
		client:    client,
		tableName: tableName,
		timeout:   timeout,
		nowFunc:   time.Now,
	}
}

func (d *DynamoBackend) key(k string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"collection": &types.AttributeValueMemberS{Value: k},
	}
}

func (d *DynamoBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	out, err := d.client.GetItem(ctx, &dyn.GetItemInput{
		TableName:      &d.tableName,
		Key:            d.key(key),
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}
	var it collectionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, false, fmt.Errorf("unmarshal collection item: %w", err)
	}
	return []byte(it.Payload), true, nil
}

func (d *DynamoBackend) put(ctx context.Context, key string, data []byte, condition *string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	item, err := attributevalue.MarshalMap(collectionItem{
		Collection: key,
		Payload:    string(data),
		UpdatedAt:  d.nowFunc().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal collection item: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &d.tableName,
		Item:                item,
		ConditionExpression: condition,
	})
	return err
}

func (d *DynamoBackend) Save(ctx context.Context, key string, data []byte) error {
	if err := d.put(ctx, key, data, nil); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

func (d *DynamoBackend) SaveIfAbsent(ctx context.Context, key string, data []byte) (bool, error) {
	err := d.put(ctx, key, data, awsString("attribute_not_exists(collection)"))
	if err == nil {
		return true, nil
	}
	if isConditionalFailure(err) {
		return false, nil
	}
	return false, fmt.Errorf("put item: %w", err)
}

func (d *DynamoBackend) Remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	_, err := d.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName: &d.tableName,
		Key:       d.key(key),
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func isConditionalFailure(err error) bool {
	var cc *types.ConditionalCheckFailedException
	if errors.As(err, &cc) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException"
}

func awsString(s string) *string { return &s }
func awsBool(b bool) *bool       { return &b }

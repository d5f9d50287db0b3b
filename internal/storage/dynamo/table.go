// Package dynamo implements the storage.Table capability with DynamoDB.
// This is the only package that should know DynamoDB call specifics.
package dynamo

import (
	"context"
	"errors"

	"blog-backend/internal/storage"
	appErrors "blog-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// Table is the DynamoDB-backed storage table.
type Table struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewTable creates a Table over the named DynamoDB table.
func NewTable(client *dynamodb.Client, tableName string, logger *zap.Logger) *Table {
	return &Table{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// Get returns the item at key, or nil if there is none.
func (t *Table) Get(ctx context.Context, key storage.Key) (storage.Item, error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.tableName),
		Key:       storage.KeyItem(key),
	})
	if err != nil {
		return nil, t.classify(err, "get item")
	}
	if out.Item == nil {
		return nil, nil
	}
	return out.Item, nil
}

// Put writes item unconditionally, overwriting any existing item.
func (t *Table) Put(ctx context.Context, item storage.Item) error {
	_, err := t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.tableName),
		Item:      item,
	})
	if err != nil {
		return t.classify(err, "put item")
	}
	return nil
}

// Delete removes the item at key. DynamoDB treats deleting a missing key as
// success, which is exactly the contract.
func (t *Table) Delete(ctx context.Context, key storage.Key) error {
	_, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(t.tableName),
		Key:       storage.KeyItem(key),
	})
	if err != nil {
		return t.classify(err, "delete item")
	}
	return nil
}

// QueryPrefix returns one page of items in partition pk whose sort key
// begins with skPrefix.
func (t *Table) QueryPrefix(ctx context.Context, pk, skPrefix string, limit int32, startKey *storage.Key) (storage.Page, error) {
	keyCond := expression.Key(storage.AttrPK).Equal(expression.Value(pk)).
		And(expression.Key(storage.AttrSK).BeginsWith(skPrefix))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return storage.Page{}, appErrors.NewInternal("failed to build query expression", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(t.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(limit),
	}
	if startKey != nil {
		input.ExclusiveStartKey = storage.KeyItem(*startKey)
	}

	out, err := t.client.Query(ctx, input)
	if err != nil {
		return storage.Page{}, t.classify(err, "query")
	}
	return pageOf(out.Items, out.LastEvaluatedKey), nil
}

// Scan returns one page of items from the whole table.
func (t *Table) Scan(ctx context.Context, limit int32, startKey *storage.Key) (storage.Page, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(t.tableName),
		Limit:     aws.Int32(limit),
	}
	if startKey != nil {
		input.ExclusiveStartKey = storage.KeyItem(*startKey)
	}

	out, err := t.client.Scan(ctx, input)
	if err != nil {
		return storage.Page{}, t.classify(err, "scan")
	}
	return pageOf(out.Items, out.LastEvaluatedKey), nil
}

func pageOf(items []storage.Item, lastKey storage.Item) storage.Page {
	page := storage.Page{Items: items}
	if lastKey != nil {
		key := storage.ItemKey(lastKey)
		page.LastEvaluatedKey = &key
	}
	return page
}

// transientErrorCodes are DynamoDB error codes worth surfacing as a
// transient UNAVAILABLE condition rather than an internal fault.
var transientErrorCodes = map[string]struct{}{
	"ProvisionedThroughputExceededException": {},
	"ThrottlingException":                    {},
	"RequestLimitExceeded":                   {},
	"ServiceUnavailable":                     {},
	"InternalServerError":                    {},
	"LimitExceededException":                 {},
}

// classify maps SDK errors into the application error taxonomy. Throttling
// and timeouts become UNAVAILABLE; everything else is internal. No retry
// happens here; that is the caller's policy, if any.
func (t *Table) classify(err error, op string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		t.logger.Warn("dynamodb call timed out", zap.String("op", op))
		return appErrors.NewUnavailable("storage timed out during "+op, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, transient := transientErrorCodes[apiErr.ErrorCode()]; transient {
			t.logger.Warn("dynamodb throttled",
				zap.String("op", op),
				zap.String("code", apiErr.ErrorCode()),
			)
			return appErrors.NewUnavailable("storage unavailable during "+op, err)
		}
	}

	return appErrors.NewInternal("dynamodb "+op+" failed", err)
}

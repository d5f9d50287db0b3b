// Package ddb implements the repository interfaces over the single-table
// storage boundary. A generic engine handles marshaling, key-positioned
// paging, and token handling once; the per-entity repositories layer key
// construction and filtering on top of it.
package ddb

import (
	"context"

	"blog-backend/internal/repository"
	"blog-backend/internal/storage"
	appErrors "blog-backend/pkg/errors"
	"blog-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"go.uber.org/zap"
)

// Engine provides typed CRUD plus the two paged read patterns over the
// storage table for one record type R. R carries the dynamodbav field
// mapping; the engine never inspects it beyond marshaling.
type Engine[R any] struct {
	table  storage.Table
	kind   string
	logger *zap.Logger
}

// NewEngine creates an engine for record type R. kind names the record in
// logs and errors.
func NewEngine[R any](table storage.Table, kind string, logger *zap.Logger) *Engine[R] {
	return &Engine[R]{
		table:  table,
		kind:   kind,
		logger: logger,
	}
}

// Get returns the record at (pk, sk), or nil when there is none. A miss is
// not an error.
func (e *Engine[R]) Get(ctx context.Context, pk, sk string) (*R, error) {
	item, err := e.table.Get(ctx, storage.Key{PK: pk, SK: sk})
	observability.ObserveStorage("get", err)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var record R
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, appErrors.NewInternal("failed to unmarshal "+e.kind+" item", err)
	}
	return &record, nil
}

// Put writes the record unconditionally. Last write wins; there is no
// version check.
func (e *Engine[R]) Put(ctx context.Context, record R) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return appErrors.NewInternal("failed to marshal "+e.kind+" item", err)
	}

	err = e.table.Put(ctx, item)
	observability.ObserveStorage("put", err)
	return err
}

// Delete removes the record at (pk, sk). Deleting a missing key is a no-op.
func (e *Engine[R]) Delete(ctx context.Context, pk, sk string) error {
	err := e.table.Delete(ctx, storage.Key{PK: pk, SK: sk})
	observability.ObserveStorage("delete", err)
	return err
}

// QueryPrefix returns one page of records in partition pk whose sort key
// begins with skPrefix, in sort-key order. One storage round trip; the page
// may be short even when more items exist.
func (e *Engine[R]) QueryPrefix(ctx context.Context, pk, skPrefix string, page repository.PageRequest) (repository.Page[R], error) {
	startKey, err := startKeyOf(page)
	if err != nil {
		return repository.Page[R]{}, err
	}

	result, err := e.table.QueryPrefix(ctx, pk, skPrefix, int32(page.EffectiveLimit()), startKey)
	observability.ObserveStorage("query", err)
	if err != nil {
		return repository.Page[R]{}, err
	}
	return e.pageOf(result, nil)
}

// Scan returns one page of records from the whole table, narrowed by keep
// after the page boundary is fixed. A page can therefore hold fewer records
// than requested, or none, while HasMore is still true.
func (e *Engine[R]) Scan(ctx context.Context, page repository.PageRequest, keep func(R) bool) (repository.Page[R], error) {
	startKey, err := startKeyOf(page)
	if err != nil {
		return repository.Page[R]{}, err
	}

	result, err := e.table.Scan(ctx, int32(page.EffectiveLimit()), startKey)
	observability.ObserveStorage("scan", err)
	if err != nil {
		return repository.Page[R]{}, err
	}
	return e.pageOf(result, keep)
}

func startKeyOf(page repository.PageRequest) (*storage.Key, error) {
	if !page.HasNextToken() {
		return nil, nil
	}
	pk, sk, err := repository.DecodeToken(page.NextToken)
	if err != nil {
		return nil, err
	}
	return &storage.Key{PK: pk, SK: sk}, nil
}

func (e *Engine[R]) pageOf(result storage.Page, keep func(R) bool) (repository.Page[R], error) {
	records := make([]R, 0, len(result.Items))
	for _, item := range result.Items {
		var record R
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return repository.Page[R]{}, appErrors.NewInternal("failed to unmarshal "+e.kind+" item", err)
		}
		if keep != nil && !keep(record) {
			continue
		}
		records = append(records, record)
	}

	var lastPK, lastSK string
	hasMore := result.LastEvaluatedKey != nil
	if hasMore {
		lastPK = result.LastEvaluatedKey.PK
		lastSK = result.LastEvaluatedKey.SK
	}
	return repository.NewPage(records, lastPK, lastSK, hasMore), nil
}

// Package storage defines the key-value table capability the repositories
// consume: point get/put/delete by composite key, a prefix-bounded range
// query within one partition, and a limited whole-table scan, both with a
// resumable position. The dynamo subpackage backs it with DynamoDB; the
// memory subpackage backs it with an in-process table for tests and local
// runs.
package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names of the composite primary key.
const (
	AttrPK = "pk"
	AttrSK = "sk"
)

// Key is the composite primary key of a table item.
type Key struct {
	PK string
	SK string
}

// Item is a raw table item.
type Item = map[string]types.AttributeValue

// Page is one storage round trip's worth of items. LastEvaluatedKey is the
// resumable position, nil when the read reached the end of its range.
type Page struct {
	Items            []Item
	LastEvaluatedKey *Key
}

// Table is the single-table storage boundary. Limited reads return at most
// limit items in one round trip; they may return fewer even when more
// exist, and callers must tolerate that.
type Table interface {
	// Get returns the item at key, or nil if there is none.
	Get(ctx context.Context, key Key) (Item, error)
	// Put writes item unconditionally, overwriting any existing item.
	Put(ctx context.Context, item Item) error
	// Delete removes the item at key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key Key) error
	// QueryPrefix returns items in partition pk whose sort key begins with
	// skPrefix, in sort-key order, starting after startKey when given.
	QueryPrefix(ctx context.Context, pk, skPrefix string, limit int32, startKey *Key) (Page, error)
	// Scan returns items from the whole table regardless of partition,
	// starting after startKey when given.
	Scan(ctx context.Context, limit int32, startKey *Key) (Page, error)
}

// ItemKey extracts the primary key from a raw item. Items written through
// this package always carry string pk/sk attributes.
func ItemKey(item Item) Key {
	var key Key
	if pk, ok := item[AttrPK].(*types.AttributeValueMemberS); ok {
		key.PK = pk.Value
	}
	if sk, ok := item[AttrSK].(*types.AttributeValueMemberS); ok {
		key.SK = sk.Value
	}
	return key
}

// KeyItem converts a Key to the attribute-value map DynamoDB expects.
func KeyItem(key Key) Item {
	return Item{
		AttrPK: &types.AttributeValueMemberS{Value: key.PK},
		AttrSK: &types.AttributeValueMemberS{Value: key.SK},
	}
}

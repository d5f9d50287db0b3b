// Package memory provides an in-process storage.Table with the same
// paging contract as the DynamoDB implementation. It backs package tests
// and the local development mode.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"blog-backend/internal/storage"
)

// Table is an in-memory storage table ordered by (pk, sk).
type Table struct {
	mu    sync.RWMutex
	items map[storage.Key]storage.Item
}

// NewTable creates an empty in-memory table.
func NewTable() *Table {
	return &Table{
		items: make(map[storage.Key]storage.Item),
	}
}

// Get returns the item at key, or nil if there is none.
func (t *Table) Get(ctx context.Context, key storage.Key) (storage.Item, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	item, ok := t.items[key]
	if !ok {
		return nil, nil
	}
	return copyItem(item), nil
}

// Put writes item unconditionally, overwriting any existing item.
func (t *Table) Put(ctx context.Context, item storage.Item) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items[storage.ItemKey(item)] = copyItem(item)
	return nil
}

// Delete removes the item at key. Deleting a missing key is a no-op.
func (t *Table) Delete(ctx context.Context, key storage.Key) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.items, key)
	return nil
}

// QueryPrefix returns one page of items in partition pk whose sort key
// begins with skPrefix, in sort-key order.
func (t *Table) QueryPrefix(ctx context.Context, pk, skPrefix string, limit int32, startKey *storage.Key) (storage.Page, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := t.sortedKeys(func(k storage.Key) bool {
		return k.PK == pk && strings.HasPrefix(k.SK, skPrefix)
	})
	return t.page(keys, limit, startKey), nil
}

// Scan returns one page of items from the whole table, ignoring partition
// boundaries. Order is (pk, sk) lexicographic; DynamoDB's scan order is its
// own, but both are stable across requests, which is all callers rely on.
func (t *Table) Scan(ctx context.Context, limit int32, startKey *storage.Key) (storage.Page, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := t.sortedKeys(func(storage.Key) bool { return true })
	return t.page(keys, limit, startKey), nil
}

// Len reports the number of stored items.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

func (t *Table) sortedKeys(keep func(storage.Key) bool) []storage.Key {
	keys := make([]storage.Key, 0, len(t.items))
	for k := range t.items {
		if keep(k) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].PK != keys[j].PK {
			return keys[i].PK < keys[j].PK
		}
		return keys[i].SK < keys[j].SK
	})
	return keys
}

func (t *Table) page(keys []storage.Key, limit int32, startKey *storage.Key) storage.Page {
	start := 0
	if startKey != nil {
		// Resume strictly after the last evaluated key.
		start = sort.Search(len(keys), func(i int) bool {
			k := keys[i]
			if k.PK != startKey.PK {
				return k.PK > startKey.PK
			}
			return k.SK > startKey.SK
		})
	}

	end := start + int(limit)
	if limit <= 0 || end > len(keys) {
		end = len(keys)
	}

	page := storage.Page{Items: make([]storage.Item, 0, end-start)}
	for _, k := range keys[start:end] {
		page.Items = append(page.Items, copyItem(t.items[k]))
	}
	if end < len(keys) && end > start {
		last := keys[end-1]
		page.LastEvaluatedKey = &last
	}
	return page
}

func copyItem(item storage.Item) storage.Item {
	out := make(storage.Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

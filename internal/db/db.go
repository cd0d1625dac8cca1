// Package db declares the storage facade the repositories consume.
package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces, not on Store.
type Store interface {
	Pinger
	HashStore
	SetStore
	TxStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// SetStore provides set-membership operations used for key indexes.
type SetStore interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int, error)
}

// SetAddItem holds a single set key plus members for a transactional SADD.
type SetAddItem struct {
	Key     string
	Members []string
}

// TxStore provides multi-key writes executed atomically, so concurrent
// readers observe either the full old state or the full new state.
type TxStore interface {
	// TxDel deletes all keys in one transaction.
	TxDel(ctx context.Context, keys []string) error
	// TxHSetMulti writes all hashes and set additions in one transaction.
	TxHSetMulti(ctx context.Context, items []HashSetItem, sets []SetAddItem) error
}

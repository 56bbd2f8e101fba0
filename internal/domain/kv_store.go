package domain

import "context"

//go:generate mockgen -source=kv_store.go -destination=kv_store_mock.go -package=domain

// KeyValueStore is the persisted string-keyed store shared by the fact
// records, the settings object and the dedup markers.
type KeyValueStore interface {
	// Get returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

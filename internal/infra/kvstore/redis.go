package kvstore

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
)

type redisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore wraps a go-redis client. Every key is stored under
// namespace, which callers never see. Keys are stored without expiry;
// dedup retention is handled by the purge job.
func NewRedisStore(client *redis.Client, namespace string) domain.KeyValueStore {
	return &redisStore{
		client:    client,
		namespace: namespace,
	}
}

func (r *redisStore) key(key string) string {
	return r.namespace + key
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}

	return data, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	for _, key := range keys {
		pipe.Del(ctx, r.key(key))
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)

	iter := r.client.Scan(ctx, 0, r.key(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), r.namespace))
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

func (r *redisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisStore) Close() error {
	return r.client.Close()
}

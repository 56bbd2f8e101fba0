package kvstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/KasumiMercury/primind-reminder-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scheduler/internal/testutil"
)

// runStoreContract exercises the behaviour every backend must share.
func runStoreContract(t *testing.T, store domain.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "contract:missing")
		if !errors.Is(err, domain.ErrKeyNotFound) {
			t.Errorf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		if err := store.Set(ctx, "contract:a", []byte(`["1","2"]`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := store.Get(ctx, "contract:a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != `["1","2"]` {
			t.Errorf("expected %q, got %q", `["1","2"]`, got)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := store.Set(ctx, "contract:a", []byte("500")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := store.Get(ctx, "contract:a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(got) != "500" {
			t.Errorf("expected %q, got %q", "500", got)
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		if err := store.Set(ctx, "", []byte("x")); !errors.Is(err, ErrEmptyKey) {
			t.Errorf("expected ErrEmptyKey, got %v", err)
		}
	})

	t.Run("keys by prefix", func(t *testing.T) {
		for _, key := range []string{"contract:p:1", "contract:p:2", "contract:q:1"} {
			if err := store.Set(ctx, key, []byte("v")); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		keys, err := store.Keys(ctx, "contract:p:")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(keys) != 2 {
			t.Errorf("expected 2 keys, got %v", keys)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := store.Delete(ctx, "contract:p:1", "contract:p:2", "contract:never"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		keys, err := store.Keys(ctx, "contract:p:")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(keys) != 0 {
			t.Errorf("expected no keys, got %v", keys)
		}
		if err := store.Delete(ctx); err != nil {
			t.Errorf("empty delete: unexpected error: %v", err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := store.Ping(ctx); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	runStoreContract(t, store)

	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Ping(context.Background()); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("expected ErrStoreClosed after close, got %v", err)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", []byte("abc")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := store.Get(ctx, "k")
	got[0] = 'z'

	again, _ := store.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reminders.db")

	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	defer store.Close()

	runStoreContract(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reminders.db")

	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	if err := store.Set(ctx, "reminder:dedup:sales_milestone:2024-03-09", []byte("1000")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to reopen sqlite store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "reminder:dedup:sales_milestone:2024-03-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "1000" {
		t.Errorf("expected %q, got %q", "1000", got)
	}
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	runStoreContract(t, NewRedisStore(client, ""))

	ttl, err := client.TTL(ctx, "contract:a").Result()
	if err != nil {
		t.Fatalf("failed to get TTL: %v", err)
	}
	if ttl != -1 {
		t.Errorf("expected no expiry, got %v", ttl)
	}
}

func TestRedisStore_Namespace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	shopA := NewRedisStore(client, "shop-a:")
	shopB := NewRedisStore(client, "shop-b:")

	runStoreContract(t, shopA)

	if err := shopB.Set(ctx, "reminder:dedup:low_stock:2024-03-10", []byte(`["g-1"]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := client.Get(ctx, "shop-a:contract:a").Result()
	if err != nil {
		t.Fatalf("expected namespaced raw key: %v", err)
	}
	if raw == "" {
		t.Error("expected a stored value under the namespace")
	}

	if _, err := shopB.Get(ctx, "contract:a"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Errorf("expected namespaces to be isolated, got %v", err)
	}

	keys, err := shopB.Keys(ctx, "reminder:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 1 || keys[0] != "reminder:dedup:low_stock:2024-03-10" {
		t.Errorf("expected unprefixed key, got %v", keys)
	}

	if err := shopB.Delete(ctx, keys...); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := client.Exists(ctx, "shop-b:reminder:dedup:low_stock:2024-03-10").Result(); n != 0 {
		t.Errorf("expected namespaced key deleted, exists=%d", n)
	}
}

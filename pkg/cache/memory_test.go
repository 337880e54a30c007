package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/merchix/catalog-sweeper/pkg/catalog"
)

func testKey() Key {
	return Key{
		Endpoint:   "https://api.example.com/api/v3/products/multi",
		Credential: "secret",
		MaxPages:   50,
		Delay:      200 * time.Millisecond,
	}
}

func testEntry() *Entry {
	return NewEntry(
		[]catalog.Item{
			{Identifier: "A", Status: "approved", Active: true},
			{Identifier: "B", Status: "rejected"},
		},
		catalog.Tally{"approved": 1, "rejected": 1},
	)
}

func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()
	key := testKey()

	if _, err := store.Get(ctx, key); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get() before Put = %v, want ErrCacheMiss", err)
	}

	entry := testEntry()
	if err := store.Put(ctx, key, entry); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if len(got.Items) != 2 {
		t.Errorf("Items = %v, want 2 entries", got.Items)
	}
	if got.Tally["rejected"] != 1 {
		t.Errorf("Tally = %v, want rejected:1", got.Tally)
	}
}

func TestMemoryStore_KeyedIsolation(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, testKey(), testEntry()); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	other := testKey()
	other.MaxPages = 10
	if _, err := store.Get(ctx, other); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() with different parameters = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()
	key := testKey()

	if err := store.Put(ctx, key, testEntry()); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := store.Get(ctx, key); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() after TTL = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()
	key := testKey()

	if err := store.Put(ctx, key, testEntry()); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, err := store.Get(ctx, key); err != nil {
		t.Errorf("Get() with ttl=0 = %v, want hit", err)
	}
}

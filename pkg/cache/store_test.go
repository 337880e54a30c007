package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Failed to start Redis container: %v", err)
	}

	host, err := redisC.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get Redis host: %v", err)
	}
	port, err := redisC.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get Redis port: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})

	cleanup := func() {
		client.Close()
		redisC.Terminate(ctx)
	}

	return client, cleanup
}

func TestRedisStore_PutGet(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewRedisStore(redisClient, time.Minute)
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
	if len(got.Items) != len(entry.Items) {
		t.Errorf("Items = %v, want %v", got.Items, entry.Items)
	}
	if got.Items[0].Identifier != "A" || !got.Items[0].Active {
		t.Errorf("First item = %+v, want A/active round-tripped", got.Items[0])
	}
	if got.Tally["approved"] != 1 {
		t.Errorf("Tally = %v, want approved:1", got.Tally)
	}
}

func TestRedisStore_TTL(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewRedisStore(redisClient, time.Minute)
	ctx := context.Background()
	key := testKey()

	if err := store.Put(ctx, key, testEntry()); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	ttl, err := redisClient.TTL(ctx, key.String()).Result()
	if err != nil {
		t.Fatalf("TTL lookup failed: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want (0, 1m]", ttl)
	}
}

func TestRedisStore_NilEntry(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	store := NewRedisStore(redisClient, time.Minute)
	if err := store.Put(context.Background(), testKey(), nil); err == nil {
		t.Error("Put(nil) succeeded, want error")
	}
}

func TestNewRedisStore_NilClientPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil redis client")
		}
	}()
	NewRedisStore(nil, time.Minute)
}

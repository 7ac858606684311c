package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedis(client, "test:")
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisRecordOperations(t *testing.T) {
	store, mr := newTestRedis(t)
	ctx := context.Background()

	if err := store.Put(ctx, "alice", "pbkdf2:sha256:10:4:abcd:ef01"); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}
	if got, _ := mr.Get("test:record:alice"); got != "pbkdf2:sha256:10:4:abcd:ef01" {
		t.Errorf("Unexpected raw value: %q", got)
	}

	record, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if record != "pbkdf2:sha256:10:4:abcd:ef01" {
		t.Errorf("Record mismatch: got %s", record)
	}

	if err := store.Put(ctx, "bob", "argon2id::1:16:aa:bb"); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}
	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(entries) != 2 || entries[0].User != "alice" || entries[1].Strategy != "argon2id" {
		t.Errorf("Unexpected entries: %+v", entries)
	}

	if err := store.Delete(ctx, "alice"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := store.Get(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	entries, _ = store.List(ctx)
	if len(entries) != 1 {
		t.Errorf("Expected 1 entry after delete, got %d", len(entries))
	}
}

func TestRedisDefaultPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
	defer store.Close()

	if err := store.Put(context.Background(), "u", "s::1:1::"); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}
	if !mr.Exists(DefaultRedisPrefix + "record:u") {
		t.Error("Record should be stored under the default prefix")
	}
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	store, err := OpenRedis(ctx, mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("OpenRedis failed: %v", err)
	}
	defer store.Close()

	mr.Close()
	if _, err := OpenRedis(ctx, mr.Addr(), "", 0); err == nil {
		t.Error("Expected error connecting to a stopped server")
	}
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key written by the redis store
const DefaultRedisPrefix = "passworks:"

// Redis stores records as plain string keys plus a hash index for listing
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis wraps an existing client
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// OpenRedis connects to addr and checks the connection
func OpenRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedis(client, ""), nil
}

func (r *Redis) recordKey(user string) string { return r.prefix + "record:" + user }
func (r *Redis) indexKey() string             { return r.prefix + "index" }

// Put stores a serialized record and its index entry atomically
func (r *Redis) Put(ctx context.Context, user, record string) error {
	entry, err := json.Marshal(NewEntry(user, record))
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.recordKey(user), record, 0)
		pipe.HSet(ctx, r.indexKey(), user, entry)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return nil
}

// Get retrieves a serialized record
func (r *Redis) Get(ctx context.Context, user string) (string, error) {
	record, err := r.client.Get(ctx, r.recordKey(user)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, user)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read record: %w", err)
	}
	return record, nil
}

// Delete removes a record and its index entry
func (r *Redis) Delete(ctx context.Context, user string) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.recordKey(user))
		pipe.HDel(ctx, r.indexKey(), user)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, user)
	}
	return nil
}

// List returns all index entries sorted by user
func (r *Redis) List(ctx context.Context) ([]Entry, error) {
	raw, err := r.client.HGetAll(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for user, data := range raw {
		var entry Entry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, fmt.Errorf("corrupt index entry %s: %w", user, err)
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].User < entries[j].User })
	return entries, nil
}

// Close closes the underlying client
func (r *Redis) Close() error {
	return r.client.Close()
}

package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("record not found")

// Store persists serialized password records keyed by user
type Store interface {
	Put(ctx context.Context, user, record string) error
	Get(ctx context.Context, user string) (string, error)
	Delete(ctx context.Context, user string) error
	Close() error
}

// Lister is implemented by stores that can enumerate their records
type Lister interface {
	List(ctx context.Context) ([]Entry, error)
}

// Entry describes a stored record without exposing its hash
type Entry struct {
	User     string    `json:"user"`
	Strategy string    `json:"strategy"`
	Updated  time.Time `json:"updated"`
}

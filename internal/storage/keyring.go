package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringService is the OS keyring service name records are stored under
const KeyringService = "passworks"

// Keyring stores records in the OS keyring, one secret per user
type Keyring struct {
	service string
}

// NewKeyring creates a keyring store for service (KeyringService when empty)
func NewKeyring(service string) *Keyring {
	if service == "" {
		service = KeyringService
	}
	return &Keyring{service: service}
}

// Put stores a serialized record in the keyring
func (k *Keyring) Put(ctx context.Context, user, record string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := keyring.Set(k.service, user, record); err != nil {
		return fmt.Errorf("failed to save to keyring: %w", err)
	}
	return nil
}

// Get retrieves a serialized record from the keyring
func (k *Keyring) Get(ctx context.Context, user string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	record, err := keyring.Get(k.service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, user)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read from keyring: %w", err)
	}
	return record, nil
}

// Delete removes a record from the keyring
func (k *Keyring) Delete(ctx context.Context, user string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := keyring.Delete(k.service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, user)
	}
	if err != nil {
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}

// Close is a no-op; the keyring holds no open handles
func (k *Keyring) Close() error {
	return nil
}

package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestKeyringRecordOperations(t *testing.T) {
	keyring.MockInit()
	store := NewKeyring("")
	defer store.Close()
	ctx := context.Background()

	if _, err := store.Get(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := store.Put(ctx, "alice", "pbkdf2:sha256:10:4:abcd:ef01"); err != nil {
		t.Fatalf("Failed to put record: %v", err)
	}

	record, err := store.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("Failed to get record: %v", err)
	}
	if record != "pbkdf2:sha256:10:4:abcd:ef01" {
		t.Errorf("Record mismatch: got %s", record)
	}

	if err := store.Delete(ctx, "alice"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if err := store.Delete(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestKeyringIsNotLister(t *testing.T) {
	var s Store = NewKeyring("")
	if _, ok := s.(Lister); ok {
		t.Error("Keyring store should not advertise listing")
	}
}

func TestNewEntry(t *testing.T) {
	e := NewEntry("dave", "argon2id:x:1:2:aa:bb")
	if e.User != "dave" || e.Strategy != "argon2id" {
		t.Errorf("Entry mismatch: %+v", e)
	}
	if e.Updated.IsZero() {
		t.Error("Entry should carry an update time")
	}

	counts := CountByStrategy([]Entry{e, NewEntry("eve", "pbkdf2:::::"), NewEntry("fred", "argon2id:::::")})
	if counts["argon2id"] != 2 || counts["pbkdf2"] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}
}

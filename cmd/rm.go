package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/illarion/passworks/internal/storage"
)

// Remove deletes the stored records of users
func Remove(ctx context.Context, s Settings, users []string) {
	if len(users) == 0 {
		fmt.Fprintf(os.Stderr, "Error: rm requires at least one user argument\n")
		fmt.Fprintf(os.Stderr, "Usage: passworks rm <user> [user...]\n")
		os.Exit(1)
	}

	store, err := OpenStore(ctx, s)
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	var failed bool
	for _, user := range users {
		if err := store.Delete(ctx, user); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "warning: no record for %s\n", user)
			} else {
				fmt.Fprintf(os.Stderr, "Error: %s: %s\n", user, err)
			}
			failed = true
			continue
		}
		fmt.Printf("✓ Removed %s\n", user)
	}

	// Compact database to reclaim space
	if db, ok := store.(*storage.Bolt); ok {
		if err := db.Compact(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: compaction failed: %s\n", err)
		}
	}

	if failed {
		os.Exit(1)
	}
}

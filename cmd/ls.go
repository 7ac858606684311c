package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/illarion/passworks/internal/storage"
)

// List prints the users that have a stored record
func List(ctx context.Context, s Settings) {
	store, err := OpenStore(ctx, s)
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	lister, ok := store.(storage.Lister)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: backend %q cannot list records\n", s.Backend)
		os.Exit(1)
	}

	entries, err := lister.List(ctx)
	if err != nil {
		HandleError(err)
	}

	if len(entries) == 0 {
		fmt.Println("(no records)")
		return
	}
	for _, e := range entries {
		fmt.Printf("  %-24s %-12s %s\n", e.User, e.Strategy, e.Updated.Local().Format(time.RFC3339))
	}
}

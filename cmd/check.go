package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/illarion/passworks/internal/core"
)

// Check verifies a secret against the stored record for user. With rehash,
// a matching record with outdated parameters is replaced by a fresh one.
func Check(ctx context.Context, s Settings, flags map[string]string, user string, rehash bool) {
	if user == "" {
		fmt.Fprintf(os.Stderr, "Error: check requires a user argument\n")
		fmt.Fprintf(os.Stderr, "Usage: passworks check [--rehash] <user>\n")
		os.Exit(1)
	}

	engine, err := NewEngine(s, flags)
	if err != nil {
		HandleError(err)
	}

	store, err := OpenStore(ctx, s)
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	serialized, err := store.Get(ctx, user)
	if err != nil {
		HandleError(fmt.Errorf("%s: %w", user, err))
	}

	rec, err := engine.Parse(serialized)
	if err != nil {
		HandleError(err)
	}

	cfg, err := engine.Config()
	if err != nil {
		HandleError(err)
	}

	var rehashed bool
	secret := GetSecretOrExit("Enter secret: ")
	err = withSecret(secret, func(secret string) error {
		if _, err := rec.Matches(ctx, secret); err != nil {
			return err
		}
		if !rehash || !core.NeedsRehash(rec, cfg) {
			return nil
		}

		fresh, err := engine.Hash(ctx, secret)
		if err != nil {
			return err
		}
		rehashed = true
		slog.Debug("rehashing record", "user", user, "from", rec.Strategy(), "to", fresh.Strategy())
		return store.Put(ctx, user, fresh.String())
	})
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Secret matches for %s\n", user)
	if rehashed {
		fmt.Printf("✓ Rehashed with %s\n", describeConfig(cfg))
		return
	}
	printRehashNotice(engine, rec)
}

package cmd

import (
	"context"
	"fmt"
	"os"
)

// Set hashes a new secret for user and stores the record
func Set(ctx context.Context, s Settings, flags map[string]string, user string) {
	if user == "" {
		fmt.Fprintf(os.Stderr, "Error: set requires a user argument\n")
		fmt.Fprintf(os.Stderr, "Usage: passworks set <user>\n")
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

	secret := GetNewSecretOrExit()
	err = withSecret(secret, func(secret string) error {
		rec, err := engine.Hash(ctx, secret)
		if err != nil {
			return err
		}
		return store.Put(ctx, user, rec.String())
	})
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Stored record for %s\n", user)
}

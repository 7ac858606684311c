package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/passworks/internal/core"
)

// Verify checks a secret against a serialized record given on the command line
func Verify(ctx context.Context, s Settings, flags map[string]string, serialized string) {
	engine, err := NewEngine(s, flags)
	if err != nil {
		HandleError(err)
	}

	rec, err := engine.Parse(serialized)
	if err != nil {
		HandleError(err)
	}

	secret := GetSecretOrExit("Enter secret: ")
	err = withSecret(secret, func(secret string) error {
		_, err := rec.Matches(ctx, secret)
		return err
	})
	if err != nil {
		HandleError(err)
	}

	fmt.Println("✓ Secret matches")
	printRehashNotice(engine, rec)
}

// printRehashNotice tells the user when rec was hashed with outdated parameters
func printRehashNotice(engine *core.Engine, rec *core.Record) {
	cfg, err := engine.Config()
	if err != nil || !core.NeedsRehash(rec, cfg) {
		return
	}
	fmt.Fprintf(os.Stderr, "notice: record parameters differ from the current configuration\n")
	fmt.Fprint(os.Stderr, core.DiffParams(rec, cfg))
}

package cmd

import (
	"fmt"

	"github.com/illarion/passworks/internal/core"
)

// Inspect prints the fields of a serialized record and how its parameters
// compare to the current configuration. No secret is needed.
func Inspect(s Settings, flags map[string]string, serialized string) {
	engine, err := NewEngine(s, flags)
	if err != nil {
		HandleError(err)
	}

	rec, err := engine.Parse(serialized)
	if err != nil {
		HandleError(err)
	}

	known := "registered"
	if !engine.Registry().Has(rec.Strategy()) {
		known = "not registered"
	}

	fmt.Printf("Strategy:    %s (%s)\n", rec.Strategy(), known)
	fmt.Printf("Algorithm:   %s\n", rec.Algorithm())
	fmt.Printf("Iterations:  %d\n", rec.Iterations())
	fmt.Printf("Key length:  %d\n", rec.KeyLength())
	fmt.Printf("Salt:        %d chars\n", len(rec.Salt()))
	if rec.Sealed() {
		fmt.Printf("Hash:        %d chars\n", len(rec.Hash()))
	} else {
		fmt.Println("Hash:        (none)")
	}

	cfg, err := engine.Config()
	if err != nil {
		HandleError(err)
	}
	if core.NeedsRehash(rec, cfg) {
		fmt.Println()
		fmt.Println("Parameters differ from the current configuration:")
		fmt.Print(core.DiffParams(rec, cfg))
	} else {
		fmt.Println()
		fmt.Println("Parameters match the current configuration")
	}
}

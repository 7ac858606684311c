package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/passworks/internal/core"
	"github.com/illarion/passworks/internal/storage"
)

// Init creates the passworks database and persists the hashing configuration
func Init(s Settings, flags map[string]string) {
	if s.Backend != BackendBolt {
		fmt.Fprintf(os.Stderr, "Error: init creates a bolt database; backend %q needs no initialization\n", s.Backend)
		os.Exit(1)
	}

	if _, err := os.Stat(s.Database); err == nil {
		HandleError(ErrAlreadyExists)
	}

	cfg := core.DefaultConfig()
	if err := cfg.Apply(configFromEnv()); err != nil {
		HandleError(err)
	}
	if err := cfg.Apply(flags); err != nil {
		HandleError(err)
	}
	if !core.NewRegistry().Has(cfg.Strategy) {
		HandleError(fmt.Errorf("%w: unknown strategy %q", core.ErrStrategy, cfg.Strategy))
	}

	db, err := storage.OpenBolt(s.Database)
	if err != nil {
		HandleError(err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		HandleError(err)
	}
	if err := db.SetConfig(cfg); err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Initialized %s (%s)\n", s.Database, describeConfig(cfg))
}

func describeConfig(cfg core.Config) string {
	return fmt.Sprintf("%s/%s, %d iterations, key length %d", cfg.Strategy, cfg.Algorithm, cfg.Iterations, cfg.KeyLength)
}

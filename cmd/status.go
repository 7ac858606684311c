package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/illarion/passworks/internal/crypto"
	"github.com/illarion/passworks/internal/git"
	"github.com/illarion/passworks/internal/storage"
)

// Status shows the configuration, the available strategies and the state of
// the selected backend. No secret is required.
func Status(ctx context.Context, s Settings, flags map[string]string) {
	engine, err := NewEngine(s, flags)
	if err != nil {
		HandleError(err)
	}
	cfg, err := engine.Config()
	if err != nil {
		HandleError(err)
	}

	fmt.Println("Configuration:")
	fmt.Printf("   Strategy:    %s\n", cfg.Strategy)
	fmt.Printf("   Algorithm:   %s\n", cfg.Algorithm)
	fmt.Printf("   Iterations:  %d\n", cfg.Iterations)
	fmt.Printf("   Key length:  %d\n", cfg.KeyLength)
	fmt.Println()
	fmt.Printf("Strategies:  %s\n", strings.Join(engine.Registry().Names(), ", "))
	fmt.Printf("Algorithms:  %s\n", strings.Join(crypto.Algorithms(), ", "))
	fmt.Println()

	fmt.Printf("Backend: %s\n", s.Backend)
	if s.Backend == BackendBolt {
		info, err := os.Stat(s.Database)
		if err != nil {
			fmt.Printf("   %s: not found\n", s.Database)
			fmt.Println("   Run 'passworks init' to create it")
			return
		}
		fmt.Printf("   Database:    %s (%s)\n", s.Database, formatSize(info.Size()))
	}

	store, err := OpenStore(ctx, s)
	if err != nil {
		HandleError(err)
	}
	defer store.Close()

	if db, ok := store.(*storage.Bolt); ok {
		if modified, err := db.GetModified(); err == nil {
			fmt.Printf("   Modified:    %s\n", modified.Local().Format(time.RFC3339))
		}
	}

	if lister, ok := store.(storage.Lister); ok {
		entries, err := lister.List(ctx)
		if err != nil {
			HandleError(err)
		}
		fmt.Printf("   Records:     %d\n", len(entries))
		printStrategyCounts(storage.CountByStrategy(entries))
	}

	if s.Backend == BackendBolt {
		workDir := filepath.Dir(s.Database)
		fmt.Print(git.FormatGitStatus(git.CheckDatabase(ctx, workDir, filepath.Base(s.Database))))
	}
}

func printStrategyCounts(counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("      %-12s %d\n", name, counts[name])
	}
}

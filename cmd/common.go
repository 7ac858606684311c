package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/illarion/passworks/internal/core"
	"github.com/illarion/passworks/internal/storage"
)

var (
	ErrNoDatabase     = errors.New("database not initialized")
	ErrAlreadyExists  = errors.New("database already exists")
	ErrUnknownBackend = errors.New("unknown backend")
)

// LoadConfig resolves the hashing configuration: defaults, then the config
// stored in the bolt database, then the environment, then flags.
func LoadConfig(s Settings, flags map[string]string) (core.Config, error) {
	cfg := core.DefaultConfig()

	if s.Backend == BackendBolt {
		stored, err := storedConfig(s.Database)
		if err != nil {
			return core.Config{}, err
		}
		if stored != nil {
			cfg = *stored
		}
	}

	if err := cfg.Apply(configFromEnv()); err != nil {
		return core.Config{}, err
	}
	if err := cfg.Apply(flags); err != nil {
		return core.Config{}, err
	}
	return cfg, nil
}

// storedConfig returns nil when the database or its config does not exist yet
func storedConfig(path string) (*core.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}

	db, err := storage.OpenBolt(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	cfg, err := db.GetConfig()
	if err != nil {
		slog.Debug("no stored configuration", "db", path, "err", err)
		return nil, nil
	}
	return &cfg, nil
}

// NewEngine builds an initialized engine for s and flags
func NewEngine(s Settings, flags map[string]string) (*core.Engine, error) {
	cfg, err := LoadConfig(s, flags)
	if err != nil {
		return nil, err
	}

	e := core.New()
	if err := e.Init(cfg); err != nil {
		return nil, err
	}
	if !e.Registry().Has(cfg.Strategy) {
		return nil, fmt.Errorf("%w: unknown strategy %q", core.ErrStrategy, cfg.Strategy)
	}
	slog.Debug("engine ready", "strategy", cfg.Strategy, "algorithm", cfg.Algorithm,
		"iterations", cfg.Iterations, "keyLength", cfg.KeyLength)
	return e, nil
}

// OpenStore opens the record store selected by s.Backend
func OpenStore(ctx context.Context, s Settings) (storage.Store, error) {
	switch s.Backend {
	case BackendBolt:
		if _, err := os.Stat(s.Database); err != nil {
			return nil, ErrNoDatabase
		}
		db, err := storage.OpenBolt(s.Database)
		if err != nil {
			return nil, err
		}
		if ok, err := db.IsInitialized(); err != nil || !ok {
			db.Close()
			return nil, ErrNoDatabase
		}
		return db, nil
	case BackendKeyring:
		return storage.NewKeyring(""), nil
	case BackendRedis:
		return storage.OpenRedis(ctx, s.RedisAddr, s.RedisPassword, s.RedisDB)
	default:
		return nil, fmt.Errorf("%w: %q (want %s, %s or %s)", ErrUnknownBackend, s.Backend, BackendBolt, BackendKeyring, BackendRedis)
	}
}

// HandleError handles common errors consistently
func HandleError(err error) {
	switch {
	case errors.Is(err, ErrNoDatabase):
		fmt.Fprintf(os.Stderr, "Error: passworks database not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'passworks init' first\n")
	case errors.Is(err, ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: database already exists\n")
		fmt.Fprintf(os.Stderr, "Use 'passworks status' to see current state\n")
	case errors.Is(err, core.ErrPasswordMismatch):
		fmt.Fprintf(os.Stderr, "Error: password does not match\n")
	case errors.Is(err, storage.ErrNotFound):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Use 'passworks ls' to list stored records\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

// formatSize formats a file size in human-readable form
func formatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.1f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.1f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.1f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}

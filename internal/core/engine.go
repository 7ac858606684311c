package core

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// Engine carries the configuration and strategy registry shared by the
// records it creates. The zero configuration is "not initialized": Init
// must run before NewRecord.
type Engine struct {
	mu       sync.RWMutex
	cfg      *Config
	registry *Registry
}

// Default is the process-wide engine behind the package-level helpers
var Default = New()

// New creates an uninitialized engine with the built-in strategies
func New() *Engine {
	return &Engine{registry: NewRegistry()}
}

// Init replaces the configuration wholesale. With no argument the
// configuration is reset to DefaultConfig. Registered strategies are kept.
// An invalid configuration leaves the previous one in place.
func (e *Engine) Init(cfg ...Config) error {
	next := DefaultConfig()
	switch len(cfg) {
	case 0:
	case 1:
		next = cfg[0]
	default:
		return fmt.Errorf("%w: Init accepts at most one configuration, got %d", ErrInvalidConfig, len(cfg))
	}

	if err := next.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	e.cfg = &next
	e.mu.Unlock()
	return nil
}

// Initialized reports whether Init has been called
func (e *Engine) Initialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg != nil
}

// Config returns a copy of the current configuration
func (e *Engine) Config() (Config, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.cfg == nil {
		return Config{}, ErrNotInitialized
	}
	return *e.cfg, nil
}

// Registry exposes the engine's strategy registry
func (e *Engine) Registry() *Registry {
	return e.registry
}

// AddStrategy registers a custom strategy on the engine
func (e *Engine) AddStrategy(name string, fn Strategy) error {
	return e.registry.AddStrategy(name, fn)
}

// NewRecord creates an unsealed record from the current configuration and
// opts, with a freshly generated salt.
func (e *Engine) NewRecord(opts ...Option) (*Record, error) {
	cfg, err := e.Config()
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	salt, err := GenerateSalt(cfg.KeyLength)
	if err != nil {
		return nil, err
	}

	return &Record{
		strategy:       cfg.Strategy,
		algorithm:      cfg.Algorithm,
		iterations:     cfg.Iterations,
		keyLength:      cfg.KeyLength,
		salt:           salt,
		iterationsText: strconv.Itoa(cfg.Iterations),
		keyLengthText:  strconv.Itoa(cfg.KeyLength),
		registry:       e.registry,
	}, nil
}

// Parse restores a record from its serialized form. It needs no prior Init:
// every parameter comes from the string.
func (e *Engine) Parse(serialized string) (*Record, error) {
	return parseRecord(serialized, e.registry)
}

// Hash creates a record and digests secret into it
func (e *Engine) Hash(ctx context.Context, secret string, opts ...Option) (*Record, error) {
	rec, err := e.NewRecord(opts...)
	if err != nil {
		return nil, err
	}
	return rec.Digest(ctx, secret)
}

// Verify parses serialized and checks candidate against it
func (e *Engine) Verify(ctx context.Context, serialized, candidate string) (*Record, error) {
	rec, err := e.Parse(serialized)
	if err != nil {
		return nil, err
	}
	return rec.Matches(ctx, candidate)
}

// Init initializes the Default engine
func Init(cfg ...Config) error {
	return Default.Init(cfg...)
}

// AddStrategy registers a strategy on the Default engine
func AddStrategy(name string, fn Strategy) error {
	return Default.AddStrategy(name, fn)
}

// NewRecord creates a record on the Default engine
func NewRecord(opts ...Option) (*Record, error) {
	return Default.NewRecord(opts...)
}

// Parse restores a record on the Default engine
func Parse(serialized string) (*Record, error) {
	return Default.Parse(serialized)
}

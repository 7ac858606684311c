package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Params is the per-record context handed to a strategy
type Params struct {
	Algorithm  string
	Iterations int
	KeyLength  int
	Salt       string
}

// Strategy computes the hex-encoded hash of a secret.
//
// Implementations must be safe for concurrent use; the engine calls Hash
// from its own goroutine.
type Strategy interface {
	Hash(ctx context.Context, secret string, p Params) (string, error)
}

// StrategyFunc adapts an ordinary function to the Strategy interface
type StrategyFunc func(ctx context.Context, secret string, p Params) (string, error)

// Hash calls f(ctx, secret, p)
func (f StrategyFunc) Hash(ctx context.Context, secret string, p Params) (string, error) {
	return f(ctx, secret, p)
}

// Registry maps strategy names to implementations
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates a registry holding the built-in strategies
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy, len(builtinStrategies))}
	for name, s := range builtinStrategies {
		r.strategies[name] = s
	}
	return r
}

// AddStrategy registers fn under name. Existing names are never replaced.
func (r *Registry) AddStrategy(name string, fn Strategy) error {
	if name == "" {
		return fmt.Errorf("%w: missing strategy name", ErrStrategy)
	}
	if isNilStrategy(fn) {
		return fmt.Errorf("%w: expected second argument \"fn\" to be a function", ErrStrategy)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.strategies[name]; ok {
		return fmt.Errorf("%w: strategy %q already exists", ErrStrategy, name)
	}
	r.strategies[name] = fn
	return nil
}

// Lookup returns the strategy registered under name
func (r *Registry) Lookup(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrStrategy, name)
	}
	return s, nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.strategies[name]
	return ok
}

// Names returns the registered strategy names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isNilStrategy(fn Strategy) bool {
	if fn == nil {
		return true
	}
	if f, ok := fn.(StrategyFunc); ok && f == nil {
		return true
	}
	return false
}

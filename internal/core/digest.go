package core

import (
	"context"
	"fmt"

	"github.com/illarion/passworks/internal/crypto"
)

type digestResult struct {
	hash string
	err  error
}

// Digest hashes secret with the record's strategy and stores the result.
// It returns the record itself so a verification can be chained:
//
//	rec, err := rec.Digest(ctx, secret)
//	...
//	_, err = rec.Matches(ctx, candidate)
func (r *Record) Digest(ctx context.Context, secret string) (*Record, error) {
	h, err := r.compute(ctx, secret)
	if err != nil {
		return nil, err
	}
	r.setHash(h)
	return r, nil
}

// DigestHash is Digest returning the raw hash string instead of the record
func (r *Record) DigestHash(ctx context.Context, secret string) (string, error) {
	h, err := r.compute(ctx, secret)
	if err != nil {
		return "", err
	}
	r.setHash(h)
	return h, nil
}

// Matches recomputes the hash of candidate with the stored parameters and
// salt and compares it with the stored hash. The stored hash is not
// modified. A mismatch yields ErrPasswordMismatch.
func (r *Record) Matches(ctx context.Context, candidate string) (*Record, error) {
	stored := r.Hash()

	computed, err := r.compute(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if stored == "" || !crypto.ConstantTimeCompare([]byte(computed), []byte(stored)) {
		return nil, ErrPasswordMismatch
	}
	return r, nil
}

// compute resolves the strategy before anything runs, then derives the hash
// on its own goroutine so ctx can abandon a long derivation.
func (r *Record) compute(ctx context.Context, secret string) (string, error) {
	if r.registry == nil {
		return "", ErrNotInitialized
	}
	s, err := r.registry.Lookup(r.strategy)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := r.Params()
	done := make(chan digestResult, 1)
	go func() {
		// Strategy panics come back as ErrStrategy
		defer func() {
			if p := recover(); p != nil {
				done <- digestResult{err: fmt.Errorf("%w: panic: %v", ErrStrategy, p)}
			}
		}()
		h, err := s.Hash(ctx, secret, params)
		done <- digestResult{hash: h, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("strategy %q: %w", r.strategy, res.err)
		}
		return res.hash, nil
	}
}

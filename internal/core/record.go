package core

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

const (
	Delimiter  = ":" // Field separator of the serialized form
	fieldCount = 6
)

// Record is one hashed password: the parameters it was produced with, its
// salt and, once Digest has run, its hash.
//
// Parameters and salt never change after construction. The hash is guarded
// by a mutex, so concurrent Digest calls are safe but the last one to
// finish wins.
type Record struct {
	strategy   string
	algorithm  string
	iterations int
	keyLength  int
	salt       string

	// Numeric fields as serialized, so parsed records round-trip verbatim
	iterationsText string
	keyLengthText  string

	mu   sync.RWMutex
	hash string

	registry *Registry
}

func (r *Record) Strategy() string  { return r.strategy }
func (r *Record) Algorithm() string { return r.algorithm }
func (r *Record) Iterations() int   { return r.iterations }
func (r *Record) KeyLength() int    { return r.keyLength }
func (r *Record) Salt() string      { return r.salt }

// Hash returns the stored hex digest, empty until Digest has completed
func (r *Record) Hash() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hash
}

// Sealed reports whether a hash has been stored
func (r *Record) Sealed() bool {
	return r.Hash() != ""
}

// Params returns the strategy context of the record
func (r *Record) Params() Params {
	return Params{
		Algorithm:  r.algorithm,
		Iterations: r.iterations,
		KeyLength:  r.keyLength,
		Salt:       r.salt,
	}
}

// Config returns the parameters the record was created with
func (r *Record) Config() Config {
	return Config{
		Strategy:   r.strategy,
		Algorithm:  r.algorithm,
		Iterations: r.iterations,
		KeyLength:  r.keyLength,
	}
}

func (r *Record) setHash(h string) {
	r.mu.Lock()
	r.hash = h
	r.mu.Unlock()
}

// String serializes the record as
// strategy:algorithm:iterations:keyLength:salt:hash.
// Numeric fields of a parsed record are written exactly as they were read.
func (r *Record) String() string {
	return strings.Join([]string{
		r.strategy,
		r.algorithm,
		r.iterationsText,
		r.keyLengthText,
		r.salt,
		r.Hash(),
	}, Delimiter)
}

// parseRecord restores every field verbatim. Missing trailing fields are
// empty; anything after the fifth delimiter belongs to the hash.
func parseRecord(serialized string, registry *Registry) (*Record, error) {
	fields := strings.SplitN(serialized, Delimiter, fieldCount)
	for len(fields) < fieldCount {
		fields = append(fields, "")
	}

	iterations, err := parseCount("iterations", fields[2])
	if err != nil {
		return nil, err
	}
	keyLength, err := parseCount("keyLength", fields[3])
	if err != nil {
		return nil, err
	}

	return &Record{
		strategy:       fields[0],
		algorithm:      fields[1],
		iterations:     iterations,
		keyLength:      keyLength,
		salt:           fields[4],
		iterationsText: fields[2],
		keyLengthText:  fields[3],
		hash:           fields[5],
		registry:       registry,
	}, nil
}

func parseCount(field, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrMalformedRecord, field, value)
	}
	return n, nil
}

package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultStrategy   = "pbkdf2"
	DefaultAlgorithm  = "sha256"
	DefaultIterations = 128000
	DefaultKeyLength  = 64
)

// Config holds the hashing parameters copied into every new record
type Config struct {
	Strategy   string `json:"strategy" validate:"required,excludesall=:"`
	Algorithm  string `json:"algorithm" validate:"excludesall=:"`
	Iterations int    `json:"iterations" validate:"gt=0,lte=16777216"`
	KeyLength  int    `json:"keyLength" validate:"gt=0,lte=1048576"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		Strategy:   DefaultStrategy,
		Algorithm:  DefaultAlgorithm,
		Iterations: DefaultIterations,
		KeyLength:  DefaultKeyLength,
	}
}

// Validate checks that the configuration can produce records
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// ParseConfig builds a Config from string fields such as environment
// variables or flags. Known keys are strategy, algorithm, iterations and
// keyLength; missing or empty keys keep their defaults. Numeric fields are
// coerced here, once, and the result is validated.
func ParseConfig(fields map[string]string) (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Apply(fields); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply overrides the fields present in fields and validates the result
func (c *Config) Apply(fields map[string]string) error {
	for key, value := range fields {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch key {
		case "strategy":
			c.Strategy = value
		case "algorithm":
			c.Algorithm = value
		case "iterations":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%w: iterations %q is not an integer", ErrInvalidConfig, value)
			}
			c.Iterations = n
		case "keyLength":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%w: keyLength %q is not an integer", ErrInvalidConfig, value)
			}
			c.KeyLength = n
		default:
			return fmt.Errorf("%w: unknown field %q", ErrInvalidConfig, key)
		}
	}
	return c.Validate()
}

// Option overrides one field of the configuration for a single record
type Option func(*Config)

// WithStrategy selects the strategy for one record
func WithStrategy(name string) Option {
	return func(c *Config) { c.Strategy = name }
}

// WithAlgorithm selects the digest algorithm for one record
func WithAlgorithm(name string) Option {
	return func(c *Config) { c.Algorithm = name }
}

// WithIterations sets the iteration count for one record
func WithIterations(n int) Option {
	return func(c *Config) { c.Iterations = n }
}

// WithKeyLength sets the key length for one record
func WithKeyLength(n int) Option {
	return func(c *Config) { c.KeyLength = n }
}

// WithConfig replaces every field at once
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

package core

import "errors"

var (
	ErrNotInitialized   = errors.New("passworks not initialized: call Init before creating records")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStrategy         = errors.New("strategy error")
	ErrPasswordMismatch = errors.New("password does not match")
	ErrMalformedRecord  = errors.New("malformed record")
)

// Kind classifies an error so callers can tell misuse from a failed check
type Kind int

const (
	KindUnknown       Kind = iota // Not produced by this package
	KindConfiguration             // Not initialized or invalid configuration
	KindStrategy                  // Unknown, duplicate or invalid strategy
	KindMismatch                  // Candidate secret does not match
	KindCodec                     // Serialized record cannot be parsed
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindStrategy:
		return "strategy"
	case KindMismatch:
		return "mismatch"
	case KindCodec:
		return "codec"
	default:
		return "unknown"
	}
}

// KindOf reports the Kind of err
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrNotInitialized), errors.Is(err, ErrInvalidConfig):
		return KindConfiguration
	case errors.Is(err, ErrStrategy):
		return KindStrategy
	case errors.Is(err, ErrPasswordMismatch):
		return KindMismatch
	case errors.Is(err, ErrMalformedRecord):
		return KindCodec
	default:
		return KindUnknown
	}
}

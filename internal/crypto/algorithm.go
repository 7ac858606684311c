package crypto

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

var algorithms = map[string]func() hash.Hash{
	"md5":        md5.New,
	"sha1":       sha1.New,
	"sha224":     sha256.New224,
	"sha256":     sha256.New,
	"sha384":     sha512.New384,
	"sha512":     sha512.New,
	"sha512-256": sha512.New512_256,
	"sha3-256":   sha3.New256,
	"sha3-512":   sha3.New512,
	"blake2b-256": func() hash.Hash {
		h, _ := blake2b.New256(nil) // only fails for oversized keys
		return h
	},
	"blake2b-512": func() hash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	},
}

// NewHash returns the constructor for the named digest algorithm.
// Names are matched case-insensitively and a dash after "sha" is optional,
// so "SHA1", "sha-256" and "sha256" all resolve.
func NewHash(name string) (func() hash.Hash, error) {
	key := normalizeAlgorithm(name)
	h, ok := algorithms[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return h, nil
}

// Algorithms lists the supported algorithm names
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeAlgorithm(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if strings.HasPrefix(key, "sha-") {
		key = "sha" + key[len("sha-"):]
	}
	return key
}

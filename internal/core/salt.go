package core

import (
	"encoding/hex"
	"fmt"

	"github.com/illarion/passworks/internal/crypto"
)

// GenerateSalt returns keyLength random bytes hex-encoded, so the salt
// string is always 2*keyLength characters long.
func GenerateSalt(keyLength int) (string, error) {
	b, err := crypto.GenerateRandom(keyLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

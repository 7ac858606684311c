package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/illarion/passworks/internal/crypto"
	"golang.org/x/term"
)

// EnvSecret holds the secret for non-interactive use
const EnvSecret = "PASSWORKS_SECRET"

var ErrSecretsDiffer = errors.New("secrets do not match")

// GetSecret returns PASSWORKS_SECRET when set, otherwise prompts for the
// secret on the terminal without echo. The caller clears the result.
func GetSecret(prompt string) ([]byte, error) {
	if secret, ok := os.LookupEnv(EnvSecret); ok && secret != "" {
		return []byte(secret), nil
	}
	return promptSecret(prompt)
}

// GetSecretOrExit is like GetSecret but exits on error
func GetSecretOrExit(prompt string) []byte {
	secret, err := GetSecret(prompt)
	if err != nil {
		HandleError(err)
	}
	return secret
}

// GetNewSecretOrExit reads a secret that is about to be hashed. Prompted
// secrets are asked for twice.
func GetNewSecretOrExit() []byte {
	secret, err := GetSecret("Enter secret: ")
	if err != nil {
		HandleError(err)
	}
	if os.Getenv(EnvSecret) != "" {
		return secret
	}

	confirm, err := promptSecret("Confirm secret: ")
	if err != nil {
		crypto.ClearBytes(secret)
		HandleError(err)
	}
	defer crypto.ClearBytes(confirm)

	if !crypto.ConstantTimeCompare(secret, confirm) {
		crypto.ClearBytes(secret)
		HandleError(ErrSecretsDiffer)
	}
	return secret
}

// promptSecret writes prompt to stderr so stdout stays clean for records
func promptSecret(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}
	return secret, nil
}

// withSecret hands the secret to fn as a string and clears the bytes after
func withSecret(secret []byte, fn func(string) error) error {
	defer crypto.ClearBytes(secret)
	return fn(string(secret))
}

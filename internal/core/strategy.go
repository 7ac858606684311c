package core

import (
	"context"
	"encoding/hex"

	"github.com/illarion/passworks/internal/crypto"
)

// Built-in strategy names
const (
	StrategyPBKDF2     = "pbkdf2"      // PBKDF2-HMAC-SHA1, the default
	StrategyPBKDF2HMAC = "pbkdf2-hmac" // PBKDF2 with the PRF named by Algorithm
	StrategyDigest     = "digest"      // Algorithm(salt || secret)
	StrategyArgon2id   = "argon2id"    // Argon2id, Iterations as time cost (at most 16)
)

var builtinStrategies = map[string]Strategy{
	StrategyPBKDF2:     StrategyFunc(pbkdf2Strategy),
	StrategyPBKDF2HMAC: StrategyFunc(pbkdf2HMACStrategy),
	StrategyDigest:     StrategyFunc(digestStrategy),
	StrategyArgon2id:   StrategyFunc(argon2idStrategy),
}

// The salt is mixed in as the bytes of its hex string, not the decoded bytes.
func pbkdf2Strategy(_ context.Context, secret string, p Params) (string, error) {
	kdf, err := crypto.NewKDF([]byte(p.Salt), p.Iterations, p.KeyLength)
	if err != nil {
		return "", err
	}
	return deriveHex(kdf.DeriveKey, secret), nil
}

func pbkdf2HMACStrategy(_ context.Context, secret string, p Params) (string, error) {
	prf, err := crypto.NewHash(p.Algorithm)
	if err != nil {
		return "", err
	}
	kdf, err := crypto.NewKDF([]byte(p.Salt), p.Iterations, p.KeyLength)
	if err != nil {
		return "", err
	}
	kdf.Hash = prf
	return deriveHex(kdf.DeriveKey, secret), nil
}

func digestStrategy(_ context.Context, secret string, p Params) (string, error) {
	newHash, err := crypto.NewHash(p.Algorithm)
	if err != nil {
		return "", err
	}
	h := newHash()
	h.Write([]byte(p.Salt))
	h.Write([]byte(secret))
	return hex.EncodeToString(h.Sum(nil)), nil
}

func argon2idStrategy(_ context.Context, secret string, p Params) (string, error) {
	kdf, err := crypto.NewKDF([]byte(p.Salt), p.Iterations, p.KeyLength)
	if err != nil {
		return "", err
	}
	if err := kdf.CheckArgon2id(); err != nil {
		return "", err
	}
	return deriveHex(kdf.DeriveArgon2id, secret), nil
}

func deriveHex(derive func([]byte) []byte, secret string) string {
	password := []byte(secret)
	defer crypto.ClearBytes(password)

	key := derive(password)
	defer crypto.ClearBytes(key)
	return hex.EncodeToString(key)
}

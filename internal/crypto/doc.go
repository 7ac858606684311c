// Package crypto provides the primitives behind passworks strategies.
//
// Key derivation:
//   - PBKDF2 with a selectable PRF (HMAC-SHA1 when none is set)
//   - Argon2id with Iterations as time cost, 64 MiB memory, 2 threads
//
// Digest algorithms are looked up by name with NewHash; see Algorithms for
// the supported set (SHA-1/2/3, MD5, BLAKE2b).
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
package crypto

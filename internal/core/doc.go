// Package core provides the passworks digest and verification engine.
//
// An Engine holds a Config and a strategy Registry. Records created by the
// engine copy the configuration, get a fresh random salt, and are sealed
// by Digest:
//
//	e := core.New()
//	if err := e.Init(); err != nil { ... }
//	rec, _ := e.NewRecord()
//	rec, _ = rec.Digest(ctx, "secret")
//	line := rec.String() // pbkdf2:sha256:128000:64:<salt>:<hash>
//
// Verification restores the record and recomputes the hash:
//
//	rec, _ := e.Parse(line)
//	if _, err := rec.Matches(ctx, candidate); errors.Is(err, core.ErrPasswordMismatch) { ... }
//
// Built-in strategies:
//   - pbkdf2: PBKDF2-HMAC-SHA1 (default)
//   - pbkdf2-hmac: PBKDF2 with the PRF named by Algorithm
//   - digest: Algorithm(salt || secret)
//   - argon2id: Argon2id with Iterations as time cost
//
// Custom strategies are added with AddStrategy and receive the record's
// Params explicitly.
package core

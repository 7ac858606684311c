// Package storage persists serialized passworks records.
//
// Three backends implement Store:
//   - Bolt: a local BBolt file with config, index and records buckets
//   - Keyring: the OS keyring (one secret per user, no listing)
//   - Redis: string keys plus a hash index
//
// Records are stored as their serialized line. Index entries carry the
// user, strategy and update time so ls and status never read hashes.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage

// Package git checks whether the password database is exposed through git.
//
// The database holds salted hashes; it should be ignored, never tracked.
package git

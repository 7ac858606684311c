package storage

import (
	"strings"
	"time"
)

// NewEntry builds the index entry for a serialized record
func NewEntry(user, record string) Entry {
	strategy, _, _ := strings.Cut(record, ":")
	return Entry{
		User:     user,
		Strategy: strategy,
		Updated:  time.Now().UTC(),
	}
}

// CountByStrategy groups entries by strategy name
func CountByStrategy(entries []Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Strategy]++
	}
	return counts
}

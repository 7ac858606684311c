package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/passworks/internal/storage"
)

// Compact compacts the passworks database to reclaim unused space
func Compact(s Settings) {
	if s.Backend != BackendBolt {
		fmt.Fprintf(os.Stderr, "Error: compact applies to the bolt backend only\n")
		os.Exit(1)
	}

	// Get file size before
	info, err := os.Stat(s.Database)
	if err != nil {
		HandleError(ErrNoDatabase)
	}
	sizeBefore := info.Size()

	db, err := storage.OpenBolt(s.Database)
	if err != nil {
		HandleError(err)
	}
	defer db.Close()

	if err := db.Compact(); err != nil {
		HandleError(err)
	}

	// Get file size after
	info, err = os.Stat(s.Database)
	if err != nil {
		HandleError(err)
	}
	sizeAfter := info.Size()

	fmt.Printf("Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(sizeAfter))
}

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/illarion/passworks/internal/core"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket  = []byte("config")  // Hashing configuration and timestamps
	IndexBucket   = []byte("index")   // User -> Entry JSON for ls/status
	RecordsBucket = []byte("records") // User -> serialized record
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigParams   = []byte("params")
)

// Bolt provides BBolt-based record storage
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens or creates a passworks database
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Close closes the database
func (s *Bolt) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Bolt) Path() string {
	return s.db.Path()
}

// Initialize creates the bucket structure for a new database
func (s *Bolt) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, IndexBucket, RecordsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}

		created, _ := time.Now().MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *Bolt) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// SetConfig stores the hashing configuration
func (s *Bolt) SetConfig(cfg core.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		return config.Put(ConfigParams, data)
	})
}

// GetConfig retrieves the stored hashing configuration
func (s *Bolt) GetConfig() (core.Config, error) {
	var cfg core.Config
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigParams)
		if data == nil {
			return fmt.Errorf("config not found")
		}
		return json.Unmarshal(data, &cfg)
	})
	return cfg, err
}

// GetModified retrieves the last modified timestamp
func (s *Bolt) GetModified() (time.Time, error) {
	var modified time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

// Put stores a serialized record and its index entry in one transaction
func (s *Bolt) Put(ctx context.Context, user, record string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entry, err := json.Marshal(NewEntry(user, record))
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		records, index, err := recordBuckets(tx)
		if err != nil {
			return err
		}
		if err := records.Put([]byte(user), []byte(record)); err != nil {
			return err
		}
		if err := index.Put([]byte(user), entry); err != nil {
			return err
		}
		return touchModified(tx)
	})
}

// Get retrieves a serialized record
func (s *Bolt) Get(ctx context.Context, user string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var record string
	err := s.db.View(func(tx *bolt.Tx) error {
		records, _, err := recordBuckets(tx)
		if err != nil {
			return err
		}
		data := records.Get([]byte(user))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, user)
		}
		// string() copies; the slice is only valid during the transaction
		record = string(data)
		return nil
	})
	return record, err
}

// Delete removes a record and its index entry
func (s *Bolt) Delete(ctx context.Context, user string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		records, index, err := recordBuckets(tx)
		if err != nil {
			return err
		}
		if records.Get([]byte(user)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, user)
		}
		if err := records.Delete([]byte(user)); err != nil {
			return err
		}
		if err := index.Delete([]byte(user)); err != nil {
			return err
		}
		return touchModified(tx)
	})
}

// List returns all index entries in key order
func (s *Bolt) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		_, index, err := recordBuckets(tx)
		if err != nil {
			return err
		}
		return index.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("corrupt index entry %s: %w", k, err)
			}
			entries = append(entries, entry)
			return nil
		})
	})
	return entries, err
}

func recordBuckets(tx *bolt.Tx) (records, index *bolt.Bucket, err error) {
	records = tx.Bucket(RecordsBucket)
	if records == nil {
		return nil, nil, fmt.Errorf("records bucket not found")
	}
	index = tx.Bucket(IndexBucket)
	if index == nil {
		return nil, nil, fmt.Errorf("index bucket not found")
	}
	return records, index, nil
}

func touchModified(tx *bolt.Tx) error {
	config := tx.Bucket(ConfigBucket)
	if config == nil {
		return nil
	}
	modified, _ := time.Now().MarshalBinary()
	return config.Put(ConfigModified, modified)
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after deleting records to reclaim disk space.
func (s *Bolt) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	// Create new database
	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	// Copy all buckets
	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	// Reopen database
	s.db, err = bolt.Open(srcPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const publishedBucket = "published"

// boltStore implements a Store backed by BoltDB. Entries never expire; the
// publish history doubles as an audit trail across runs.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(publishedBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// PublishedBefore reports whether the given row was published in any run.
func (b *boltStore) PublishedBefore(rowID string) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}

	var exists bool
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(publishedBucket))
		if bucket == nil {
			return fmt.Errorf("published bucket missing")
		}
		exists = bucket.Get([]byte(rowID)) != nil
		return nil
	})
	return exists, err
}

// MarkPublished records a successful publish of the given row.
func (b *boltStore) MarkPublished(rowID, title string) error {
	if b == nil || b.db == nil {
		return nil
	}

	record := Record{Title: title, UploadedAt: time.Now().UTC()}
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal publish record: %w", err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(publishedBucket))
		if bucket == nil {
			return fmt.Errorf("published bucket missing")
		}
		return bucket.Put([]byte(rowID), value)
	})
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/domain/interfaces"
	bolt "go.etcd.io/bbolt"
)

// DB is a bbolt-backed property store. Each spreadsheet document gets its
// own bucket keyed by the document path, so settings for one workbook never
// leak into another.
type DB struct {
	db *bolt.DB
}

// Open opens (or creates) the property database at the given path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, goerr.Wrap(err, "failed to create property store directory", goerr.V("path", path))
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open property store", goerr.V("path", path))
	}

	return &DB{db: db}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// ForDocument scopes the store to one spreadsheet document.
func (d *DB) ForDocument(docPath string) interfaces.PropertyStore {
	return &docStore{db: d.db, bucket: []byte(docPath)}
}

type docStore struct {
	db     *bolt.DB
	bucket []byte
}

// Properties returns all stored keys for the document. A document that was
// never configured yields an empty map, not an error.
func (s *docStore) Properties(ctx context.Context) (map[string]string, error) {
	props := map[string]string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			props[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read properties", goerr.V("document", string(s.bucket)))
	}
	return props, nil
}

// SetProperties writes all given keys in one transaction.
func (s *docStore) SetProperties(ctx context.Context, props map[string]string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return err
		}
		for k, v := range props {
			if err := bucket.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to save properties", goerr.V("document", string(s.bucket)))
	}
	return nil
}

// DeleteProperty removes one key. Deleting an absent key is a no-op.
func (s *docStore) DeleteProperty(ctx context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return goerr.Wrap(err, "failed to delete property", goerr.V("key", key))
	}
	return nil
}

package store

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var bucketVault = []byte("kristvault")

// BoltKV is a KV backed by a bbolt file
type BoltKV struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database at path
func OpenBolt(path string) (*BoltKV, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, errors.Wrap(err, "failed to create data directory")
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketVault)
		return err
	})
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, errors.Wrapf(err, "failed to create bucket (additionally failed to close db: %v)", closeErr)
		}
		return nil, errors.Wrap(err, "failed to create bucket")
	}

	return &BoltKV{db: db}, nil
}

func (b *BoltKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var (
		value string
		ok    bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		// bbolt values are only valid inside the transaction
		if data := tx.Bucket(bucketVault).Get([]byte(key)); data != nil {
			value, ok = string(data), true
		}
		return nil
	})
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to get %q", key)
	}
	return value, ok, nil
}

func (b *BoltKV) Set(ctx context.Context, key, value string) error {
	return b.Batch(ctx, func(w Writer) error {
		return w.Set(key, value)
	})
}

func (b *BoltKV) Delete(ctx context.Context, key string) error {
	return b.Batch(ctx, func(w Writer) error {
		return w.Delete(key)
	})
}

func (b *BoltKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var keys []string
	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketVault).Cursor()
		p := []byte(prefix)
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list keys")
	}
	return keys, nil
}

func (b *BoltKV) Batch(ctx context.Context, fn func(w Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		return fn(boltWriter{bucket: tx.Bucket(bucketVault)})
	})
}

// Close closes the database
func (b *BoltKV) Close() error {
	return b.db.Close()
}

type boltWriter struct {
	bucket *bolt.Bucket
}

func (w boltWriter) Set(key, value string) error {
	return errors.Wrapf(w.bucket.Put([]byte(key), []byte(value)), "failed to set %q", key)
}

func (w boltWriter) Delete(key string) error {
	return errors.Wrapf(w.bucket.Delete([]byte(key)), "failed to delete %q", key)
}

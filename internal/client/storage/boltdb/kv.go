package boltdb

import (
	"bytes"
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/bizkeeper/internal/client/storage"
)

// bucketKV реализует storage.KV поверх одного bucket
type bucketKV struct {
	storage *Storage
	bucket  []byte
}

var _ storage.KV = (*bucketKV)(nil)

// Get returns a copy of stored bytes
func (b *bucketKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := b.storage.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", b.bucket)
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrNotFound
		}

		// Значение валидно только внутри транзакции, копируем
		value = bytes.Clone(data)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return value, nil
}

// Set stores value under key
func (b *bucketKV) Set(ctx context.Context, key string, value []byte) error {
	return b.storage.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", b.bucket)
		}

		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to put %q: %w", key, err)
		}

		return nil
	})
}

// Delete removes key, missing key is ignored
func (b *bucketKV) Delete(ctx context.Context, key string) error {
	return b.storage.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", b.bucket)
		}

		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete %q: %w", key, err)
		}

		return nil
	})
}

// Keys returns keys with prefix in byte order
func (b *bucketKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	err := b.storage.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", b.bucket)
		}

		p := []byte(prefix)
		c := bucket.Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, string(k))
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return keys, nil
}

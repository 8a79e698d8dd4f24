// SPDX-License-Identifier: MIT
// Package: gnnlimit/store
//
// badger.go - Backend on a badger LSM tree.

package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
)

// Badger is a Backend stored in a badger database.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens the badger database in dir. An empty dir opens an
// in-memory instance that is discarded on Close.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	opts.MetricsEnabled = false

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("OpenBadger: %w", err)
	}
	return &Badger{db: db}, nil
}

// Get implements Backend.
func (b *Badger) Get(key string) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Put implements Backend.
func (b *Badger) Put(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Keys implements Backend.
func (b *Badger) Keys(prefix string) ([]string, error) {
	var out []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			out = append(out, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("keys %q: %w", prefix, err)
	}
	return out, nil
}

// Close implements Backend.
func (b *Badger) Close() error { return b.db.Close() }

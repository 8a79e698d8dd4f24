// SPDX-License-Identifier: MIT
// Package: gnnlimit/store
//
// backend.go - Backend contract, key helpers, sentinel errors.

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/gnnlimit/core"
)

// Sentinel errors.
var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("store: not found")
	// ErrSchemaMismatch is returned when a stored envelope has a different
	// kind or version than the caller expects.
	ErrSchemaMismatch = errors.New("store: schema mismatch")
	// ErrBadKey rejects empty keys.
	ErrBadKey = core.NewInvalid("store: empty key")
)

// Backend is a byte-oriented key-value store.
type Backend interface {
	// Get returns the value for key or ErrNotFound.
	Get(key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(key string, value []byte) error
	// Keys lists the keys starting with prefix in ascending byte order.
	Keys(prefix string) ([]string, error)
	Close() error
}

// keySep joins the parts of a composite key.
const keySep = "/"

// Key composes "experiment/label". Empty parts are skipped.
func Key(experiment string, label ...string) string {
	parts := make([]string, 0, 1+len(label))
	for _, s := range append([]string{experiment}, label...) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, keySep)
}

func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("%q: %w", key, ErrBadKey)
	}
	return nil
}

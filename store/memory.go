// SPDX-License-Identifier: MIT
// Package: gnnlimit/store
//
// memory.go - ordered in-process Backend.

package store

import (
	"fmt"
	"strings"

	"github.com/tidwall/btree"
)

type memItem struct {
	key   string
	value []byte
}

// Memory is a Backend over an in-process B-tree. Values are copied on the
// way in and out.
type Memory struct {
	tree *btree.BTreeG[memItem]
}

// NewMemory returns an empty Memory backend.
func NewMemory() *Memory {
	return &Memory{tree: btree.NewBTreeG(memItemLess)}
}

func memItemLess(a, b memItem) bool { return a.key < b.key }

// Get implements Backend.
func (m *Memory) Get(key string) ([]byte, error) {
	it, ok := m.tree.Get(memItem{key: key})
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrNotFound)
	}
	return append([]byte(nil), it.value...), nil
}

// Put implements Backend.
func (m *Memory) Put(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.tree.Set(memItem{key: key, value: append([]byte(nil), value...)})
	return nil
}

// Keys implements Backend.
func (m *Memory) Keys(prefix string) ([]string, error) {
	var out []string
	m.tree.Ascend(memItem{key: prefix}, func(it memItem) bool {
		if !strings.HasPrefix(it.key, prefix) {
			return false
		}
		out = append(out, it.key)
		return true
	})
	return out, nil
}

// Close implements Backend. It drops all entries.
func (m *Memory) Close() error {
	m.tree = btree.NewBTreeG(memItemLess)
	return nil
}

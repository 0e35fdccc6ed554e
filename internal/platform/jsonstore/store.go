// Package jsonstore persists named collections of records as flat JSON
// files, one file per collection. It is the only storage layer of the
// server: every operation loads the full collection, computes, and for
// mutations writes the full collection back. Concurrent writers to the
// same collection are serialized by a per-collection mutex; racing
// processes still follow last-writer-wins, which is accepted for a
// single-process deployment.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// Record is any persisted entity with a collection-unique identifier.
type Record interface {
	RecordID() string
}

// Collection binds a record type to <dataDir>/<name>.json.
type Collection[T Record] struct {
	mu   sync.Mutex
	path string
}

// NewCollection returns a collection stored at <dataDir>/<name>.json.
// The backing file is created lazily on first Save.
func NewCollection[T Record](dataDir, name string) *Collection[T] {
	return &Collection[T]{path: filepath.Join(dataDir, name+".json")}
}

// Load reads the whole collection. A missing backing file is an empty
// collection, not an error.
func (c *Collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Save overwrites the whole collection. The write goes to a temp file in
// the same directory and is renamed into place, so readers never observe
// a partial file.
func (c *Collection[T]) Save(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", c.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", c.path, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", c.path, err)
	}
	return nil
}

// NextID derives the next sequential identifier for a collection: the
// numeric suffixes of all existing IDs are scanned and the maximum plus
// one is zero-padded to three digits. Scanning the whole collection
// (rather than trusting the last element) keeps the sequence monotonic
// even if records were deleted or reordered. IDs whose suffix does not
// parse count as zero.
func NextID[T Record](prefix string, records []T) string {
	max := 0
	for _, r := range records {
		n, err := strconv.Atoi(strings.TrimPrefix(r.RecordID(), prefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}

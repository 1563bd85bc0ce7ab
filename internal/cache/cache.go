// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache is a read-through/write-through JSON file cache. Each
// entry is one file in the cache directory, named by a stable fingerprint
// of the caller's key string, so cached results survive process restarts.
//
// The cache is unbounded: no eviction, no size limit, no invalidation on
// upstream change. Freshness is the caller's choice; Get treats any
// existing file as valid forever, GetFresh applies an age cutoff.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/topic-wizard/pkg/types"
)

// DefaultMaxAge is the freshness window used when the config does not
// set one.
const DefaultMaxAge = 24 * time.Hour

// Entry is the on-disk envelope around a cached payload.
type Entry struct {
	// Key is the original caller-supplied key string.
	Key string `json:"key"`

	// Timestamp records when the entry was written, RFC 3339.
	Timestamp time.Time `json:"timestamp"`

	// Data is the JSON-serialized payload.
	Data json.RawMessage `json:"data"`
}

// Cache reads and writes JSON entries under a single directory.
type Cache struct {
	dir    string
	maxAge time.Duration
}

// New returns a Cache for the configured directory. The directory is
// created lazily on first write.
func New(cfg types.CacheConfig) *Cache {
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Cache{dir: cfg.Dir, maxAge: maxAge}
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Fingerprint derives the filename stem for a key: the first 16 hex
// characters of the SHA-256 of the key's UTF-8 bytes. A fixed digest
// keeps cache files valid across processes.
func Fingerprint(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:16]
}

// Put serializes v and writes it under name, overwriting any previous
// entry. name is a caller-chosen filename stem, typically built around
// Fingerprint. The write is not atomic; a torn file reads back as a miss.
func (c *Cache) Put(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling cache payload: %w", err)
	}
	entry := Entry{
		Key:       name,
		Timestamp: time.Now(),
		Data:      data,
	}
	raw, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	path := filepath.Join(c.dir, name+".json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// Get loads the entry under name into v. Age is not checked; any
// readable entry counts. A missing or undecodable file is a miss.
func (c *Cache) Get(name string, v any) bool {
	entry, ok := c.read(name)
	if !ok {
		return false
	}
	return json.Unmarshal(entry.Data, v) == nil
}

// GetFresh is Get with an age cutoff. Entries older than maxAge are
// misses; maxAge <= 0 falls back to the configured window.
func (c *Cache) GetFresh(name string, maxAge time.Duration, v any) bool {
	if maxAge <= 0 {
		maxAge = c.maxAge
	}
	entry, ok := c.read(name)
	if !ok {
		return false
	}
	if time.Since(entry.Timestamp) > maxAge {
		return false
	}
	return json.Unmarshal(entry.Data, v) == nil
}

func (c *Cache) read(name string) (Entry, bool) {
	raw, err := os.ReadFile(filepath.Join(c.dir, name+".json"))
	if err != nil {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry{}, false
	}
	// The file is written indented for inspection; hand callers back the
	// compact payload bytes they stored.
	var compact bytes.Buffer
	if err := json.Compact(&compact, entry.Data); err != nil {
		return Entry{}, false
	}
	entry.Data = compact.Bytes()
	return entry, true
}

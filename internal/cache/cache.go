// Package cache implements the processed-blob cache: a content-addressed
// store of per-file processed output, keyed by a SHA-1 over a canonical
// JSON view of the file's identity (path, mtime, size) plus the adapter
// and tool version that produced the blob.
//
// Disk layout: <root>/<aa>/<bb>/<full-sha1>.json, sharded by the first
// four hex digits of the key two at a time.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Key is the cache key's input tuple, canonicalized (sorted keys) to
// JSON before hashing.
type Key struct {
	AbsolutePath             string `json:"absolute_path"`
	ModTimeNanos             int64  `json:"mtime_ns"`
	Size                     int64  `json:"size"`
	AdapterName              string `json:"adapter_name"`
	AdapterConfigFingerprint string `json:"adapter_config_fingerprint"`
	GroupSize                int    `json:"group_size"`
	ToolVersion              string `json:"tool_version"`
}

// Hash returns the hex SHA-1 of the canonical JSON encoding of k. The
// fields are marshalled through a map, which encoding/json always emits
// with its keys sorted, so the hashed bytes do not depend on the field
// order of Key.
func (k Key) Hash() string {
	data, err := json.Marshal(map[string]any{
		"absolute_path":              k.AbsolutePath,
		"mtime_ns":                   k.ModTimeNanos,
		"size":                       k.Size,
		"adapter_name":               k.AdapterName,
		"adapter_config_fingerprint": k.AdapterConfigFingerprint,
		"group_size":                 k.GroupSize,
		"tool_version":               k.ToolVersion,
	})
	if err != nil {
		// Key has no types that can fail to marshal (strings/ints only).
		panic(fmt.Sprintf("cache: key marshal: %v", err))
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Blob is a single cache entry.
type Blob struct {
	KeyHash  string         `json:"key_hash"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Created  time.Time      `json:"created"`
	Updated  time.Time      `json:"updated"`
}

// Cache is a filesystem-backed processed-blob store rooted at Dir.
type Cache struct {
	Dir     string
	Enabled bool
}

// New returns a Cache rooted at dir. If enabled is false, Get always
// misses and Put is a no-op — the single on/off switch the LG_CACHE
// environment variable (or a fresh-mode flag) controls.
func New(dir string, enabled bool) *Cache {
	return &Cache{Dir: dir, Enabled: enabled}
}

func (c *Cache) pathFor(hash string) string {
	return filepath.Join(c.Dir, hash[:2], hash[2:4], hash+".json")
}

// Get attempts to load the blob for key. Any I/O or JSON error is
// treated as a miss, never surfaced as an error to the caller — cache
// failures must never propagate.
func (c *Cache) Get(key Key) (*Blob, bool) {
	if !c.Enabled {
		return nil, false
	}
	data, err := os.ReadFile(c.pathFor(key.Hash()))
	if err != nil {
		return nil, false
	}
	var blob Blob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, false
	}
	return &blob, true
}

// Put writes text (plus optional metadata) for key, via a sibling .tmp
// file and an atomic rename, so concurrent writers to the same key never
// produce a torn read. Write failures are swallowed, matching the Get
// side's "never propagate" contract.
func (c *Cache) Put(key Key, text string, metadata map[string]any, now time.Time) {
	if !c.Enabled {
		return
	}
	dest := c.pathFor(key.Hash())
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return
	}

	blob := Blob{
		KeyHash:  key.Hash(),
		Text:     text,
		Metadata: metadata,
		Created:  now.UTC(),
		Updated:  now.UTC(),
	}
	if existing, ok := c.Get(key); ok {
		blob.Created = existing.Created
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return
	}

	tmp := dest + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, dest)
}

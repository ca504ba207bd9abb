package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyHashIsStableAndDistinguishesFields(t *testing.T) {
	k1 := Key{AbsolutePath: "/a.go", ModTimeNanos: 1, Size: 10, AdapterName: "go", ToolVersion: "v1"}
	k2 := k1
	assert.Equal(t, k1.Hash(), k2.Hash())

	k3 := k1
	k3.Size = 11
	assert.NotEqual(t, k1.Hash(), k3.Hash())
}

func TestPutThenGetRoundTrips(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, true)
	key := Key{AbsolutePath: "/x.go", ModTimeNanos: 42, Size: 5, AdapterName: "go", ToolVersion: "v1"}

	_, ok := c.Get(key)
	require.False(t, ok)

	c.Put(key, "processed text", map[string]any{"lines": 3}, time.Now())

	blob, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, "processed text", blob.Text)
	assert.Equal(t, key.Hash(), blob.KeyHash)
}

func TestDisabledCacheNeverWritesOrHits(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, false)
	key := Key{AbsolutePath: "/x.go", ModTimeNanos: 1, Size: 1}

	c.Put(key, "text", nil, time.Now())
	_, ok := c.Get(key)
	assert.False(t, ok)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetTreatsCorruptEntryAsMiss(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, true)
	key := Key{AbsolutePath: "/x.go"}
	hash := key.Hash()

	full := filepath.Join(dir, hash[:2], hash[2:4], hash+".json")
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("not json"), 0o644))

	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestShardedLayoutUsesFirstFourHexDigits(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, true)
	key := Key{AbsolutePath: "/x.go", Size: 99}
	c.Put(key, "text", nil, time.Now())

	hash := key.Hash()
	expected := filepath.Join(dir, hash[:2], hash[2:4], hash+".json")
	_, err := os.Stat(expected)
	assert.NoError(t, err)
}

func TestGCJobRemovesEntriesOlderThanMaxAge(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, true)

	oldKey := Key{AbsolutePath: "/old.go"}
	c.Put(oldKey, "old", nil, time.Now())
	oldHash := oldKey.Hash()
	oldPath := filepath.Join(dir, oldHash[:2], oldHash[2:4], oldHash+".json")
	oldTime := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, oldTime, oldTime))

	newKey := Key{AbsolutePath: "/new.go"}
	c.Put(newKey, "new", nil, time.Now())

	job := &GCJob{Cache: c, MaxAge: 24 * time.Hour}
	require.NoError(t, job.Run(context.Background()))

	_, err := os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))

	_, ok := c.Get(newKey)
	assert.True(t, ok)
}

func TestGCJobNoopWhenCacheDisabled(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, false)
	job := &GCJob{Cache: c, MaxAge: time.Hour}
	require.NoError(t, job.Run(context.Background()))
}

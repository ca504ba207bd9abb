package sections

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxmoro/lg-render/internal/cache"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadTemplateFragment(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lg-cfg", "intro.tpl.md"), "Hello from intro")

	p := New(root)
	src, origin, err := p.Load("self", "tpl", "intro")
	require.NoError(t, err)
	assert.Equal(t, "Hello from intro", src)
	assert.Equal(t, "self", origin)
}

func TestLoadMissingTemplateErrors(t *testing.T) {
	root := t.TempDir()
	p := New(root)
	_, _, err := p.Load("self", "tpl", "missing")
	require.Error(t, err)
}

func TestLoadNestedOriginScope(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "services/api", "lg-cfg", "readme.ctx.md"), "api context")

	p := New(root)
	src, origin, err := p.Load("services/api", "ctx", "readme")
	require.NoError(t, err)
	assert.Equal(t, "api context", src)
	assert.Equal(t, "services/api", origin)
}

func TestLoadMarkdownGlobConcatenatesMatches(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lg-cfg", "docs", "a.md"), "A content")
	writeFile(t, filepath.Join(root, "lg-cfg", "docs", "b.md"), "B content")

	p := New(root)
	src, origin, err := p.Load("self", "md", "docs/*.md")
	require.NoError(t, err)
	assert.Equal(t, "self", origin)
	assert.Contains(t, src, "A content")
	assert.Contains(t, src, "B content")
	assert.Less(t, indexOf(src, "A content"), indexOf(src, "B content"))
}

func TestLoadMarkdownGlobWithNoMatchesIsEmptyNotError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lg-cfg", "docs"), 0o755))

	p := New(root)
	src, _, err := p.Load("self", "md", "docs/*.md")
	require.NoError(t, err)
	assert.Empty(t, src)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func TestRenderSectionConcatenatesMatchedFilesAsFencedBlocks(t *testing.T) {
	root := t.TempDir()
	cfgDir := filepath.Join(root, "lg-cfg")
	writeFile(t, filepath.Join(cfgDir, "core.sec.yaml"), "glob: \"*.go\"\n")
	writeFile(t, filepath.Join(cfgDir, "main.go"), "package main\n")
	writeFile(t, filepath.Join(cfgDir, "notes.md"), "# notes\n")

	p := New(root)
	out, err := p.Render("self", "core")
	require.NoError(t, err)
	assert.Contains(t, out, "```go path=main.go")
	assert.Contains(t, out, "package main")
	assert.NotContains(t, out, "notes.md")
}

func TestRenderSectionHonorsBlockList(t *testing.T) {
	root := t.TempDir()
	cfgDir := filepath.Join(root, "lg-cfg")
	writeFile(t, filepath.Join(cfgDir, "src.sec.yaml"), "glob: \"*.go\"\nblock:\n  - \"*_test.go\"\n")
	writeFile(t, filepath.Join(cfgDir, "main.go"), "package main\n")
	writeFile(t, filepath.Join(cfgDir, "main_test.go"), "package main\n")

	p := New(root)
	out, err := p.Render("self", "src")
	require.NoError(t, err)
	assert.Contains(t, out, "main.go")
	assert.NotContains(t, out, "main_test.go")
}

func TestRenderSectionMissingFragmentErrors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lg-cfg"), 0o755))
	p := New(root)
	_, err := p.Render("self", "nope")
	require.Error(t, err)
}

func TestRenderSectionReusesCachedBlobWhenFilesUnchanged(t *testing.T) {
	root := t.TempDir()
	cfgDir := filepath.Join(root, "lg-cfg")
	writeFile(t, filepath.Join(cfgDir, "core.sec.yaml"), "glob: \"*.go\"\n")
	writeFile(t, filepath.Join(cfgDir, "main.go"), "package main\n")

	c := cache.New(t.TempDir(), true)
	p := NewCached(root, c)

	first, err := p.Render("self", "core")
	require.NoError(t, err)

	// Mutate the file on disk without changing the mtime/size footprint the
	// fingerprint tracks — a cache hit should return the stale first render.
	mainPath := filepath.Join(cfgDir, "main.go")
	info, err := os.Stat(mainPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(mainPath, []byte("package mein\n"), 0o644))
	require.NoError(t, os.Chtimes(mainPath, info.ModTime(), info.ModTime()))

	second, err := p.Render("self", "core")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderSectionCacheMissOnFileChange(t *testing.T) {
	root := t.TempDir()
	cfgDir := filepath.Join(root, "lg-cfg")
	writeFile(t, filepath.Join(cfgDir, "core.sec.yaml"), "glob: \"*.go\"\n")
	writeFile(t, filepath.Join(cfgDir, "main.go"), "package main\n")

	c := cache.New(t.TempDir(), true)
	p := NewCached(root, c)

	first, err := p.Render("self", "core")
	require.NoError(t, err)
	assert.Contains(t, first, "package main")

	writeFile(t, filepath.Join(cfgDir, "extra.go"), "package main\n\nvar X = 1\n")

	second, err := p.Render("self", "core")
	require.NoError(t, err)
	assert.Contains(t, second, "extra.go")
	assert.NotEqual(t, first, second)
}

func TestLanguageTagGuessesFromExtension(t *testing.T) {
	assert.Equal(t, "go", languageTag("pkg/main.go"))
	assert.Equal(t, "python", languageTag("lg/slug.py"))
	assert.Equal(t, "", languageTag("Makefile"))
}

package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxmoro/lg-render/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestConfig(t *testing.T, root string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Repo.Root = root
	cfg.Repo.ModesConfig = filepath.Join(root, "lg-cfg", "modes.yaml")
	cfg.Repo.CacheDir = filepath.Join(t.TempDir(), "cache")
	cfg.Repo.CacheEnable = true
	return cfg
}

func TestRenderPlainRootTemplate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lg-cfg", "system.tpl.md"), "Hello, world.")

	r, err := New(newTestConfig(t, root))
	require.NoError(t, err)

	out, err := r.Render(Options{RootTemplate: "tpl:system"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, world.", out)
}

func TestRenderTaskPlaceholder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lg-cfg", "system.tpl.md"), "Task: ${task}")

	r, err := New(newTestConfig(t, root))
	require.NoError(t, err)

	out, err := r.Render(Options{RootTemplate: "tpl:system", TaskText: "fix the bug"})
	require.NoError(t, err)
	assert.Equal(t, "Task: fix the bug", out)
}

func TestRenderHonorsAdaptiveLoaderModes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lg-cfg", "system.tpl.md"),
		"{% mode verbosity:fast %}{% if tag:fast %}quick{% endif %}{% endmode %}")
	writeFile(t, filepath.Join(root, "lg-cfg", "modes.yaml"), `
mode_sets:
  verbosity:
    fast:
      tags: [fast]
`)

	r, err := New(newTestConfig(t, root))
	require.NoError(t, err)

	out, err := r.Render(Options{RootTemplate: "tpl:system"})
	require.NoError(t, err)
	assert.Equal(t, "quick", out)
}

func TestRenderMissingRootTemplateErrors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lg-cfg"), 0o755))

	r, err := New(newTestConfig(t, root))
	require.NoError(t, err)

	_, err = r.Render(Options{RootTemplate: "tpl:missing"})
	require.Error(t, err)
}

func TestParseRootTemplateOriginQualified(t *testing.T) {
	kind, origin, name, err := parseRootTemplate("@services/api:ctx:readme")
	require.NoError(t, err)
	assert.Equal(t, "ctx", kind)
	assert.Equal(t, "services/api", origin)
	assert.Equal(t, "readme", name)
}

func TestParseRootTemplateRejectsUnsupportedKind(t *testing.T) {
	_, _, _, err := parseRootTemplate("md:readme")
	require.Error(t, err)
}

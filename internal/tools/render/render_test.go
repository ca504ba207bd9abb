package render

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxmoro/lg-render/internal/config"
	"github.com/maxmoro/lg-render/internal/renderer"
)

func newTestTool(t *testing.T) *RenderContext {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lg-cfg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lg-cfg", "system.tpl.md"), []byte("Task: ${task}"), 0o644))

	cfg := &config.Config{}
	cfg.Repo.Root = root
	cfg.Repo.ModesConfig = filepath.Join(root, "lg-cfg", "modes.yaml")
	cfg.Repo.CacheDir = filepath.Join(t.TempDir(), "cache")
	cfg.Repo.CacheEnable = true

	r, err := renderer.New(cfg)
	require.NoError(t, err)
	return NewRenderContext(r)
}

func TestRenderContextExecuteRendersDocument(t *testing.T) {
	tool := newTestTool(t)
	params, err := json.Marshal(map[string]any{"root_template": "tpl:system", "task_text": "ship it"})
	require.NoError(t, err)

	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "Task: ship it", result.Content[0].Text)
}

func TestRenderContextExecuteRequiresRootTemplate(t *testing.T) {
	tool := newTestTool(t)
	result, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestRenderContextExecuteReportsRenderErrorAsToolError(t *testing.T) {
	tool := newTestTool(t)
	params, err := json.Marshal(map[string]any{"root_template": "tpl:missing"})
	require.NoError(t, err)

	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

// Package render implements the render_context MCP tool: the single
// tool that exposes the template engine's rendering operation over
// JSON-RPC instead of an in-process call.
package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maxmoro/lg-render/internal/mcp"
	"github.com/maxmoro/lg-render/internal/renderer"
)

type renderContextParams struct {
	RootTemplate string   `json:"root_template"`
	TaskText     string   `json:"task_text,omitempty"`
	ExtraTags    []string `json:"extra_tags,omitempty"`
}

// RenderContext renders a .tpl.md/.ctx.md document against the
// Renderer's bound repository root and returns the assembled string.
type RenderContext struct {
	renderer *renderer.Renderer
}

func NewRenderContext(r *renderer.Renderer) *RenderContext {
	return &RenderContext{renderer: r}
}

func (t *RenderContext) Name() string { return "render_context" }

func (t *RenderContext) Description() string {
	return "Render a .tpl.md or .ctx.md document into a single prompt string, resolving section/include/markdown/task placeholders and evaluating any conditional or mode blocks."
}

func (t *RenderContext) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "root_template": {
      "type": "string",
      "description": "The document to render, as \"kind:name\" (kind is tpl or ctx) optionally origin-qualified as \"@origin:kind:name\", e.g. \"tpl:system\" or \"@services/api:ctx:readme\"."
    },
    "task_text": {
      "type": "string",
      "description": "Task text available to ${task} placeholders in the rendered document."
    },
    "extra_tags": {
      "type": "array",
      "items": {"type": "string"},
      "description": "Additional tags active for the duration of this render, beyond any a mode block activates."
    }
  },
  "required": ["root_template"]
}`)
}

func (t *RenderContext) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p renderContextParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if p.RootTemplate == "" {
		return mcp.ErrorResult("root_template is required"), nil
	}

	out, err := t.renderer.Render(renderer.Options{
		RootTemplate: p.RootTemplate,
		TaskText:     p.TaskText,
		ExtraTags:    p.ExtraTags,
	})
	if err != nil {
		return mcp.ErrorResult(err.Error()), nil
	}

	return &mcp.ToolsCallResult{
		Content: []mcp.ContentBlock{mcp.TextContent(out)},
	}, nil
}

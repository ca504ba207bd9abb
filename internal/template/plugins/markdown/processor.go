package markdown

import (
	"github.com/maxmoro/lg-render/internal/conditions"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

// process emits a resolved Markdown-file reference's content, first
// evaluating its `if:` guard (if any) against the render-time condition
// context — the guard can only be checked here, not at resolve time,
// since active tags and mode state aren't known until a render actually
// begins.
func process(rs *tpl.RenderState, n tpl.Node) (string, error) {
	mn := n.(MarkdownFileNode)
	if mn.Guard != nil {
		ok, err := conditions.Evaluate(mn.Guard, rs.ConditionContext())
		if err != nil {
			return "", err
		}
		if !ok {
			return "", nil
		}
	}
	return mn.Resolved, nil
}

package adaptive

import (
	"github.com/maxmoro/lg-render/internal/conditions"
	"github.com/maxmoro/lg-render/internal/lgerrors"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

func processConditional(rs *tpl.RenderState, n tpl.Node) (string, error) {
	cn := n.(ConditionalNode)
	ctx := rs.ConditionContext()
	for _, c := range cn.Cases {
		ok, err := conditions.Evaluate(c.Condition, ctx)
		if err != nil {
			return "", err
		}
		if ok {
			return rs.H.ProcessNodes(rs, c.Body)
		}
	}
	return rs.H.ProcessNodes(rs, cn.ElseBody)
}

func processModeBlock(rs *tpl.RenderState, n tpl.Node) (string, error) {
	mb := n.(ModeBlockNode)
	if rs.Modes != nil {
		if _, _, ok := rs.Modes.Activate(mb.SetName, mb.ModeName); !ok {
			return "", lgerrors.Semantic(mb.Pos, "unknown mode %q in mode-set %q", mb.ModeName, mb.SetName)
		}
	}
	release := rs.PushMode(mb.SetName, mb.ModeName)
	defer release()
	return rs.H.ProcessNodes(rs, mb.Body)
}

func processComment(rs *tpl.RenderState, n tpl.Node) (string, error) {
	return "", nil
}

package adaptive

import tpl "github.com/maxmoro/lg-render/internal/template"

func resolveConditional(rc *tpl.ResolveContext, n tpl.Node) (tpl.Node, error) {
	cn := n.(ConditionalNode)
	cases := make([]ConditionCase, len(cn.Cases))
	for i, c := range cn.Cases {
		body, err := rc.H.ResolveNodes(rc, c.Body)
		if err != nil {
			return nil, err
		}
		c.Body = body
		cases[i] = c
	}
	cn.Cases = cases
	if cn.ElseBody != nil {
		body, err := rc.H.ResolveNodes(rc, cn.ElseBody)
		if err != nil {
			return nil, err
		}
		cn.ElseBody = body
	}
	return cn, nil
}

func resolveModeBlock(rc *tpl.ResolveContext, n tpl.Node) (tpl.Node, error) {
	mb := n.(ModeBlockNode)
	body, err := rc.H.ResolveNodes(rc, mb.Body)
	if err != nil {
		return nil, err
	}
	mb.Body = body
	return mb, nil
}

package task

import tpl "github.com/maxmoro/lg-render/internal/template"

func process(rs *tpl.RenderState, n tpl.Node) (string, error) {
	tn := n.(TaskNode)
	if rs.HasTask() {
		return rs.Options.TaskText, nil
	}
	if tn.DefaultPrompt != nil {
		return *tn.DefaultPrompt, nil
	}
	return "", nil
}

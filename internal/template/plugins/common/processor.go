package common

import (
	"github.com/maxmoro/lg-render/internal/lgerrors"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

// processSection calls the external section handler with the resolved
// reference and emits its return value verbatim; the processor never
// sees the individual files the handler reads.
func processSection(rs *tpl.RenderState, n tpl.Node) (string, error) {
	sn := n.(SectionNode)
	if rs.Sections == nil {
		return "", lgerrors.Internal("no section handler configured to render %q", sn.ResolvedName)
	}
	return rs.Sections.Render(sn.ResolvedOrigin, sn.ResolvedName)
}

func processInclude(rs *tpl.RenderState, n tpl.Node) (string, error) {
	in := n.(IncludeNode)
	release := rs.PushOrigin(in.ResolvedOrigin)
	defer release()
	return rs.H.ProcessNodes(rs, in.ResolvedNodes)
}

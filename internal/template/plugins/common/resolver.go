package common

import (
	"strings"

	"github.com/maxmoro/lg-render/internal/lgerrors"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

// resolveSection resolves a bare or addressed section reference to a
// canonical (origin, name) pair. Unlike an include, a section reference
// is never loaded or re-parsed here: per the section-service boundary
// (component K), its content is produced opaquely by the section
// handler at render time and the resolver never sees individual files.
func resolveSection(rc *tpl.ResolveContext, n tpl.Node) (tpl.Node, error) {
	sn := n.(SectionNode)
	origin, name := rc.Origin, sn.RawName
	if strings.HasPrefix(name, "@") {
		rest := name[1:]
		idx := strings.Index(rest, ":")
		if idx >= 0 {
			origin, name = rest[:idx], rest[idx+1:]
		}
	}
	sn.ResolvedOrigin, sn.ResolvedName = origin, name
	return sn, nil
}

func resolveInclude(rc *tpl.ResolveContext, n tpl.Node) (tpl.Node, error) {
	in := n.(IncludeNode)
	origin := rc.Origin
	if in.RawOrigin != "self" && in.RawOrigin != "" {
		origin = in.RawOrigin
	}

	key := tpl.IncludeKey(in.IncludeKind, origin, in.RawName)
	if cached, ok := rc.Memoized(key); ok {
		in.ResolvedOrigin, in.ResolvedNodes = origin, cached
		return in, nil
	}
	if err := rc.PushInclude(key, in.Pos); err != nil {
		return nil, err
	}
	defer rc.PopInclude()

	src, resolvedOrigin, err := rc.Loader.Load(origin, in.IncludeKind, in.RawName)
	if err != nil {
		return nil, lgerrors.Resolution(in.Pos, key, "loading %s include %q: %v", in.IncludeKind, in.RawName, err)
	}
	resolved, err := resolveIncludedSource(rc, src, resolvedOrigin)
	if err != nil {
		return nil, err
	}
	rc.Memoize(key, resolved)

	in.ResolvedOrigin, in.ResolvedNodes = resolvedOrigin, resolved
	return in, nil
}

func resolveIncludedSource(rc *tpl.ResolveContext, src, origin string) ([]tpl.Node, error) {
	_, body := tpl.ParseFrontmatter(src)
	doc, err := tpl.ParseDocument(body, origin, rc.Reg, rc.H)
	if err != nil {
		return nil, err
	}
	childRC := rc.WithOrigin(origin)
	return rc.H.ResolveNodes(childRC, doc.Nodes)
}

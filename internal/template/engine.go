package template

import "github.com/maxmoro/lg-render/internal/modesconfig"

// Engine is the assembled template language: a registry with every
// bundled plugin initialized, ready to parse, resolve, and render
// context files. Loader supplies the raw source of templates, context
// includes, and Markdown files (component K, the resolve-time half);
// Sections renders opaque section references at render time (component
// K, the render-time half) — see SectionHandler for why these are two
// distinct boundaries rather than one. Modes is the adaptive_loader
// supplier, optional.
type Engine struct {
	Registry *Registry
	Handlers *Handlers
	Loader   SectionProvider
	Sections SectionHandler
	Modes    *modesconfig.Config
}

// NewEngine builds an Engine from a list of plugins, wiring the
// Handlers closures to the package-level ParseNext/ResolveNode(s)/
// ProcessNode(s) functions before initializing every plugin.
func NewEngine(loader SectionProvider, sections SectionHandler, plugins ...Plugin) (*Engine, error) {
	reg := NewRegistry()
	for _, p := range plugins {
		if err := reg.RegisterPlugin(p); err != nil {
			return nil, err
		}
	}

	h := &Handlers{}
	h.ParseNext = func(pc *ParsingContext) (Node, error) { return ParseNext(pc, reg) }
	h.ResolveNode = ResolveNode
	h.ResolveNodes = ResolveNodes
	h.ProcessNode = ProcessNode
	h.ProcessNodes = ProcessNodes

	if err := reg.InitializePlugins(h); err != nil {
		return nil, err
	}

	return &Engine{Registry: reg, Handlers: h, Loader: loader, Sections: sections}, nil
}

// RenderInput is everything a single top-level render call needs: the
// root document's own origin and source, the tags/modes already
// activated by the caller's adaptive configuration, and the per-render
// options (task text, extra tags).
type RenderInput struct {
	RootOrigin string
	RootSource string
	BaseTags   map[string]bool
	TagSets    map[string]map[string]bool
	Options    RenderOptions
}

// Render parses, resolves, and renders a root document end to end,
// returning the single assembled string a caller hands to an LLM.
func (e *Engine) Render(in RenderInput) (string, error) {
	_, body := ParseFrontmatter(in.RootSource)

	doc, err := ParseDocument(body, in.RootOrigin, e.Registry, e.Handlers)
	if err != nil {
		return "", err
	}

	rc := NewResolveContext(in.RootOrigin, e.Loader, e.Registry, e.Handlers)
	resolved, err := ResolveNodes(rc, doc.Nodes)
	if err != nil {
		return "", err
	}

	rs := NewRenderState(in.RootOrigin, in.BaseTags, in.TagSets, in.Options, e.Registry, e.Handlers, e.Sections)
	rs.Modes = e.Modes
	out, err := ProcessNodes(rs, resolved)
	if err != nil {
		return "", err
	}
	return out, nil
}

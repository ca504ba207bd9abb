package template

import (
	"fmt"
	"sort"

	diag "github.com/maxmoro/lg-render/internal/registry"
)

// Registry is the plugin-driven assembly point for the whole template
// language: every token kind, lexical context, parser rule, resolver and
// processor a plugin contributes lives here. It is built once at
// startup via RegisterPlugin/InitializePlugins and is read-only
// afterwards.
type Registry struct {
	tokens       map[string]*TokenSpec
	contexts     map[string]*TokenContext
	contextOrder []string
	parserRules  []*ParserRule
	processors   map[NodeKind][]ProcessorFunc
	resolvers    map[NodeKind][]ResolverFunc
	plugins      []Plugin
	pluginNames  map[string]bool

	Diagnostics *diag.Log

	regCounter int
}

// NewRegistry returns a registry with no tokens, contexts or rules and a
// single pre-registered processor, the one that renders TEXT nodes.
func NewRegistry() *Registry {
	r := &Registry{
		tokens:      map[string]*TokenSpec{},
		contexts:    map[string]*TokenContext{},
		processors:  map[NodeKind][]ProcessorFunc{},
		resolvers:   map[NodeKind][]ResolverFunc{},
		pluginNames: map[string]bool{},
		Diagnostics: &diag.Log{},
	}
	r.RegisterProcessor(NodeText, func(rs *RenderState, n Node) (string, error) {
		return n.(TextNode).Value, nil
	})
	return r
}

// RegisterToken adds or replaces a token kind. A later registration of
// the same name overwrites the earlier one and is logged as a warning.
func (r *Registry) RegisterToken(spec TokenSpec) {
	if _, exists := r.tokens[spec.Name]; exists {
		r.Diagnostics.Warn("token %q registered more than once, later registration wins", spec.Name)
	}
	spec.order = r.next()
	r.tokens[spec.Name] = &spec
}

// RegisterContext adds or replaces a lexical context.
func (r *Registry) RegisterContext(spec TokenContext) {
	if _, exists := r.contexts[spec.Name]; !exists {
		r.contextOrder = append(r.contextOrder, spec.Name)
	} else {
		r.Diagnostics.Warn("context %q registered more than once, later registration wins", spec.Name)
	}
	spec.order = r.next()
	r.contexts[spec.Name] = &spec
}

// RegisterParserRule appends a parsing rule. Duplicate rule names are
// permitted (plugins may intentionally layer alternatives) but logged.
func (r *Registry) RegisterParserRule(rule ParserRule) {
	for _, existing := range r.parserRules {
		if existing.Name == rule.Name {
			r.Diagnostics.Warn("parser rule %q registered more than once", rule.Name)
			break
		}
	}
	rule.order = r.next()
	r.parserRules = append(r.parserRules, &rule)
}

// RegisterProcessor appends a processor for nodes of kind k, in
// registration order; ProcessNode uses the first registered processor for
// a kind. One processor per kind is expected; the slice just preserves the
// registry's general append-in-order shape used for the other tables.
func (r *Registry) RegisterProcessor(k NodeKind, fn ProcessorFunc) {
	r.processors[k] = append(r.processors[k], fn)
}

// RegisterResolver appends a resolver for nodes of kind k.
func (r *Registry) RegisterResolver(k NodeKind, fn ResolverFunc) {
	r.resolvers[k] = append(r.resolvers[k], fn)
}

func (r *Registry) next() int {
	r.regCounter++
	return r.regCounter
}

// RegisterPlugin runs every RegisterX hook of p against the registry.
// It returns an error if a plugin with the same name was already
// registered.
func (r *Registry) RegisterPlugin(p Plugin) error {
	if r.pluginNames[p.Name()] {
		return fmt.Errorf("plugin %q already registered", p.Name())
	}
	r.pluginNames[p.Name()] = true
	p.RegisterTokens(r)
	p.RegisterContexts(r)
	p.RegisterParserRules(r)
	p.RegisterProcessors(r)
	p.RegisterResolvers(r)
	r.plugins = append(r.plugins, p)
	return nil
}

// InitializePlugins calls Initialize on every registered plugin in
// descending priority order (ties broken by registration order),
// injecting h so that plugins can recurse back into the core passes.
func (r *Registry) InitializePlugins(h *Handlers) error {
	ordered := make([]Plugin, len(r.plugins))
	copy(ordered, r.plugins)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() > ordered[j].Priority()
	})
	for _, p := range ordered {
		if err := p.Initialize(r, h); err != nil {
			return fmt.Errorf("initializing plugin %q: %w", p.Name(), err)
		}
	}
	return nil
}

// sortedParserRules returns parser rules sorted by descending priority,
// ties broken by registration order — recomputed at dispatch time since
// rules may still be appended right up until first use in tests.
func (r *Registry) sortedParserRules() []*ParserRule {
	out := make([]*ParserRule, len(r.parserRules))
	copy(out, r.parserRules)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].order < out[j].order
	})
	return out
}

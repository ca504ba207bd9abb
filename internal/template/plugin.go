package template

// Handlers is the narrow set of recursion entry points injected into
// every plugin at Initialize time. Plugins never import the parser,
// resolver, or processor packages directly: a conditional block's
// "then" branch, for instance, is parsed by repeatedly calling
// ParseNext, resolved by calling ResolveNodes, and rendered by calling
// ProcessNodes, all without the adaptive plugin knowing how any of
// those three passes are actually implemented.
type Handlers struct {
	ParseNext    func(pc *ParsingContext) (Node, error)
	ResolveNode  func(rc *ResolveContext, n Node) (Node, error)
	ResolveNodes func(rc *ResolveContext, nodes []Node) ([]Node, error)
	ProcessNode  func(rs *RenderState, n Node) (string, error)
	ProcessNodes func(rs *RenderState, nodes []Node) (string, error)
}

// Plugin contributes tokens, contexts, parser rules, resolvers and
// processors to a Registry. RegisterX methods are called once, in
// registration order, when the plugin is added via Registry.RegisterPlugin.
// Initialize is called once all plugins have registered, in descending
// Priority order, and is where a plugin stashes the injected Handlers.
type Plugin interface {
	Name() string
	Priority() int
	RegisterTokens(r *Registry)
	RegisterContexts(r *Registry)
	RegisterParserRules(r *Registry)
	RegisterProcessors(r *Registry)
	RegisterResolvers(r *Registry)
	Initialize(r *Registry, h *Handlers) error
}

// ParserRule is a single priority-ordered parsing attempt. Fn returns
// matched=false (node nil, err nil) to decline, letting the dispatcher
// try the next rule in priority order; it returns a non-nil error only
// for a genuine syntax error in input the rule did commit to parsing.
type ParserRule struct {
	Name     string
	Priority int
	Fn       func(pc *ParsingContext) (node Node, matched bool, err error)

	order int
}

// ProcessorFunc renders a single resolved node to its textual output.
type ProcessorFunc func(rs *RenderState, n Node) (string, error)

// ResolverFunc rewrites a single parsed node, resolving cross-scope
// references and loading includes. It returns the (possibly identical)
// node to keep in the resolved tree.
type ResolverFunc func(rc *ResolveContext, n Node) (Node, error)

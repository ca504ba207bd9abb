package template

import (
	"fmt"
	"strings"

	"github.com/maxmoro/lg-render/internal/lgerrors"
)

// SectionProvider is the external dependency the resolver uses to load
// the text of a referenced section, template include, or context
// include. It is the thin "section service" boundary (component K):
// the resolver only ever calls Load, never touches a filesystem or
// database itself.
type SectionProvider interface {
	// Load returns the raw source of the named item as seen from
	// origin ("self" for the root document, or a repo-relative POSIX
	// path for an included file), plus the canonical origin that
	// source should be attributed to (used for nested includes and for
	// error positions).
	Load(origin, kind, name string) (src string, resolvedOrigin string, err error)
}

// ResolveContext carries everything the resolve pass threads through
// recursive descent: the current origin, the section/include loader,
// the registry (for dispatching per-kind resolvers), the shared
// Handlers, and the include-cycle/memoization bookkeeping.
type ResolveContext struct {
	Origin string
	Loader SectionProvider
	Reg    *Registry
	H      *Handlers

	// Siblings and Index give a resolver visibility into the other
	// nodes in the slice currently being resolved and its own position
	// within it, e.g. so a Markdown-file reference can inspect
	// neighboring text for heading context. Both are only meaningful
	// during a ResolveNodes call and are restored by it on return.
	Siblings []Node
	Index    int

	stack []string
	memo  map[string][]Node
}

// NewResolveContext creates a resolve context rooted at origin.
func NewResolveContext(origin string, loader SectionProvider, reg *Registry, h *Handlers) *ResolveContext {
	return &ResolveContext{
		Origin: origin,
		Loader: loader,
		Reg:    reg,
		H:      h,
		memo:   map[string][]Node{},
	}
}

// WithOrigin returns a shallow copy of rc scoped to a nested origin,
// sharing the same cycle stack and memo table.
func (rc *ResolveContext) WithOrigin(origin string) *ResolveContext {
	cp := *rc
	cp.Origin = origin
	return &cp
}

// IncludeKey builds the canonical cycle-detection / memoization key:
// "{kind}[@{origin}]:{name}".
func IncludeKey(kind, origin, name string) string {
	return fmt.Sprintf("%s[@%s]:%s", kind, origin, name)
}

// PushInclude records that key is being resolved, returning an error if
// it is already on the stack (an include cycle). The error names every
// key in the cycle, from the first occurrence of key back to key itself.
func (rc *ResolveContext) PushInclude(key string, pos lgerrors.Position) error {
	for i, k := range rc.stack {
		if k == key {
			chain := append(append([]string{}, rc.stack[i:]...), key)
			return lgerrors.Resolution(pos, key, "include cycle detected: %s", strings.Join(chain, " -> "))
		}
	}
	rc.stack = append(rc.stack, key)
	return nil
}

// PopInclude removes the most recently pushed include key.
func (rc *ResolveContext) PopInclude() {
	if len(rc.stack) > 0 {
		rc.stack = rc.stack[:len(rc.stack)-1]
	}
}

// Memoized returns a previously resolved node sequence for key, if any.
func (rc *ResolveContext) Memoized(key string) ([]Node, bool) {
	nodes, ok := rc.memo[key]
	return nodes, ok
}

// Memoize stores the resolved node sequence for key.
func (rc *ResolveContext) Memoize(key string, nodes []Node) {
	rc.memo[key] = nodes
}

// ResolveNode dispatches n to every resolver registered for its kind,
// in registration order, threading the (possibly rewritten) node
// through each. Kinds with no registered resolver pass through
// unchanged.
func ResolveNode(rc *ResolveContext, n Node) (Node, error) {
	cur := n
	for _, fn := range rc.Reg.resolvers[n.Kind()] {
		var err error
		cur, err = fn(rc, cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// ResolveNodes resolves every node in a slice, preserving order. It sets
// rc.Siblings/rc.Index for the duration of the call so per-node
// resolvers can see their neighbors, restoring rc's previous values on
// return — required because resolveConditional and resolveModeBlock
// recurse into ResolveNodes on the same *ResolveContext they were
// given, rather than a copy.
func ResolveNodes(rc *ResolveContext, nodes []Node) ([]Node, error) {
	savedSiblings, savedIndex := rc.Siblings, rc.Index
	defer func() { rc.Siblings, rc.Index = savedSiblings, savedIndex }()

	rc.Siblings = nodes
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		rc.Index = i
		rn, err := ResolveNode(rc, n)
		if err != nil {
			return nil, err
		}
		out[i] = rn
	}
	return out, nil
}

package template

import (
	"github.com/maxmoro/lg-render/internal/conditions"
	"github.com/maxmoro/lg-render/internal/lgerrors"
	"github.com/maxmoro/lg-render/internal/modesconfig"
)

// RenderOptions are the per-render inputs that do not change as the
// walk descends into includes: the task text (if any) and any
// additional tags layered on top of whatever the caller's tag/mode
// configuration already activated.
type RenderOptions struct {
	TaskText  string
	ExtraTags []string
}

// SectionHandler is the render-time half of the section-service boundary
// (component K): given a resolved, origin-qualified section reference it
// returns the final opaque text to emit. The engine never inspects the
// files a handler reads or the adapters it runs; the handler's output is
// treated as already-rendered text, never re-parsed as template syntax.
type SectionHandler interface {
	Render(origin, name string) (string, error)
}

// modeFrame is one entry of the mode stack: the mode-set and mode name a
// {% mode set:name %}...{% endmode %} block activated, plus what's
// needed to undo its side effects on pop — the tags it newly activated
// (tags already active before entering the block are left alone on
// exit) and the merged-options view it superseded.
type modeFrame struct {
	Set         string
	Mode        string
	addedTags   []string
	prevOptions map[string]any
}

// RenderState is threaded through the render pass. ModeStack and
// OriginStack are managed with push/pop pairs that plugins must
// release on every exit path, including error returns — PushMode and
// PushOrigin return a release func for exactly that purpose, so a
// `defer release()` at the top of a processor can't be forgotten.
type RenderState struct {
	Reg      *Registry
	H        *Handlers
	Sections SectionHandler

	// Modes is the adaptive_loader supplier: mode-set/mode
	// definitions consulted by PushMode to union in activated tags and
	// merge option overrides. Nil is permitted — a render with no mode
	// configuration simply tracks the mode stack for scope/nesting
	// purposes without any tag or option side effects.
	Modes *modesconfig.Config

	Options       RenderOptions
	ActiveTags    map[string]bool
	TagSets       map[string]map[string]bool
	MergedOptions map[string]any

	modeStack   []modeFrame
	originStack []string
}

// NewRenderState builds the root render state for origin, seeding
// ActiveTags from the supplied base tags plus RenderOptions.ExtraTags,
// and seeding HasTask from whether TaskText is non-empty.
func NewRenderState(origin string, baseTags map[string]bool, tagSets map[string]map[string]bool, opts RenderOptions, reg *Registry, h *Handlers, sections SectionHandler) *RenderState {
	active := map[string]bool{}
	for t := range baseTags {
		active[t] = true
	}
	for _, t := range opts.ExtraTags {
		active[t] = true
	}
	return &RenderState{
		Reg:         reg,
		H:           h,
		Sections:    sections,
		Options:     opts,
		ActiveTags:  active,
		TagSets:     tagSets,
		originStack: []string{origin},
	}
}

// CurrentOrigin is the origin of the document currently being rendered.
func (rs *RenderState) CurrentOrigin() string {
	if len(rs.originStack) == 0 {
		return ""
	}
	return rs.originStack[len(rs.originStack)-1]
}

// PushOrigin enters a nested include's origin, returning a release func
// that must be deferred immediately.
func (rs *RenderState) PushOrigin(origin string) func() {
	rs.originStack = append(rs.originStack, origin)
	return func() {
		if len(rs.originStack) > 0 {
			rs.originStack = rs.originStack[:len(rs.originStack)-1]
		}
	}
}

// CurrentMode returns the innermost active mode frame, or ("", "", false)
// if no mode block is active.
func (rs *RenderState) CurrentMode() (set, mode string, ok bool) {
	if len(rs.modeStack) == 0 {
		return "", "", false
	}
	top := rs.modeStack[len(rs.modeStack)-1]
	return top.Set, top.Mode, true
}

// PushMode enters a {% mode %} block: if rs.Modes has a definition for
// set:mode, its tags are unioned into ActiveTags (only tags not already
// active are recorded, so a pre-existing tag is left alone on exit) and
// its option overrides are merged on top of the current MergedOptions
// view. Returns a release func that must be deferred immediately so the
// mode, its tags, and its options are popped on every exit path,
// including an error return from rendering the block's body.
func (rs *RenderState) PushMode(set, mode string) func() {
	frame := modeFrame{Set: set, Mode: mode, prevOptions: rs.MergedOptions}

	if rs.Modes != nil {
		if tags, opts, ok := rs.Modes.Activate(set, mode); ok {
			for _, t := range tags {
				if !rs.ActiveTags[t] {
					rs.ActiveTags[t] = true
					frame.addedTags = append(frame.addedTags, t)
				}
			}
			merged := make(map[string]any, len(rs.MergedOptions)+len(opts))
			for k, v := range rs.MergedOptions {
				merged[k] = v
			}
			for k, v := range opts {
				merged[k] = v
			}
			rs.MergedOptions = merged
		}
	}

	rs.modeStack = append(rs.modeStack, frame)
	return func() {
		if len(rs.modeStack) == 0 {
			return
		}
		top := rs.modeStack[len(rs.modeStack)-1]
		rs.modeStack = rs.modeStack[:len(rs.modeStack)-1]
		for _, t := range top.addedTags {
			delete(rs.ActiveTags, t)
		}
		rs.MergedOptions = top.prevOptions
	}
}

// HasTask reports whether a task was supplied for this render.
func (rs *RenderState) HasTask() bool { return rs.Options.TaskText != "" }

// ConditionContext builds the evaluation context the conditions package
// needs from the render state's current position: the active tags,
// their tag-sets, scope ("local" while the current origin is "self",
// "parent" inside a file from a named sub-scope), and whether a task was
// supplied.
func (rs *RenderState) ConditionContext() *conditions.Context {
	scope := conditions.ScopeLocal
	if o := rs.CurrentOrigin(); o != "" && o != "self" {
		scope = conditions.ScopeParent
	}
	return &conditions.Context{
		ActiveTags: rs.ActiveTags,
		TagSets:    rs.TagSets,
		Scope:      scope,
		HasTask:    rs.HasTask(),
	}
}

// ProcessNode renders a single node using the processor registered for
// its kind. Exactly one processor is expected per kind; if several are
// registered the first one registered is used.
func ProcessNode(rs *RenderState, n Node) (string, error) {
	fns := rs.Reg.processors[n.Kind()]
	if len(fns) == 0 {
		return "", lgerrors.Internal("no processor registered for node kind %q", n.Kind())
	}
	return fns[0](rs, n)
}

// ProcessNodes renders a sequence of nodes and concatenates the result.
func ProcessNodes(rs *RenderState, nodes []Node) (string, error) {
	out := make([]byte, 0, 256)
	for _, n := range nodes {
		s, err := ProcessNode(rs, n)
		if err != nil {
			return "", err
		}
		out = append(out, s...)
	}
	return string(out), nil
}

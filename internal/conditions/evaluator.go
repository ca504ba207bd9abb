package conditions

import "github.com/maxmoro/lg-render/internal/lgerrors"

// Context supplies the runtime facts a condition is evaluated against. It
// is intentionally narrow: active tags, the tag-sets a tag-set query can
// reference, the current scope, and whether a task was supplied.
type Context struct {
	ActiveTags map[string]bool
	// TagSets maps a tag-set name to the full set of tag names that
	// belong to it (not just the active ones) — needed to decide the
	// "nothing in the set is active" branch of TAGSET semantics.
	TagSets map[string]map[string]bool
	Scope   Scope
	HasTask bool
}

// IsTagActive reports whether name is in the active-tags set.
func (c *Context) IsTagActive(name string) bool {
	return c.ActiveTags[name]
}

// IsTagSetSatisfied implements the "disjoint or selected" rule: true if no
// tag from the named set is active, or if the specific queried tag is the
// one that is active.
func (c *Context) IsTagSetSatisfied(setName, tagName string) bool {
	members := c.TagSets[setName]
	anyActive := false
	for tag := range members {
		if c.ActiveTags[tag] {
			anyActive = true
			break
		}
	}
	if !anyActive {
		return true
	}
	return c.ActiveTags[tagName]
}

// Evaluate walks a condition AST and returns its boolean value. Evaluation
// is pure and short-circuits And/Or.
func Evaluate(e *Expr, ctx *Context) (bool, error) {
	if e == nil {
		return false, lgerrors.Internal("nil condition expression")
	}
	switch e.Kind {
	case KindTag:
		return ctx.IsTagActive(e.TagName), nil
	case KindTagSet:
		return ctx.IsTagSetSatisfied(e.SetName, e.TagName), nil
	case KindScope:
		return ctx.Scope == e.ScopeValue, nil
	case KindTask:
		return ctx.HasTask, nil
	case KindGroup:
		return Evaluate(e.Inner, ctx)
	case KindNot:
		v, err := Evaluate(e.Inner, ctx)
		if err != nil {
			return false, err
		}
		return !v, nil
	case KindAnd:
		left, err := Evaluate(e.Left, ctx)
		if err != nil {
			return false, err
		}
		if !left {
			return false, nil
		}
		return Evaluate(e.Right, ctx)
	case KindOr:
		left, err := Evaluate(e.Left, ctx)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return Evaluate(e.Right, ctx)
	default:
		return false, lgerrors.Internal("unknown condition kind %d", e.Kind)
	}
}

// EvaluateText is a convenience wrapper that parses and evaluates a
// condition source string in one call.
func EvaluateText(src string, ctx *Context) (bool, error) {
	expr, err := Parse(src)
	if err != nil {
		return false, err
	}
	return Evaluate(expr, ctx)
}

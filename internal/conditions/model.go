// Package conditions implements the boolean condition sub-language used by
// adaptive blocks and Markdown-file guard expressions: a small, decidable,
// side-effect-free grammar over tags, tag-sets, scope, and task presence.
package conditions

import "fmt"

// Kind identifies a condition AST node variant.
type Kind int

const (
	KindTag Kind = iota
	KindTagSet
	KindScope
	KindTask
	KindGroup
	KindNot
	KindAnd
	KindOr
)

// Scope is the value a ScopeCondition compares against.
type Scope string

const (
	ScopeLocal  Scope = "local"
	ScopeParent Scope = "parent"
)

// Expr is the sealed family of condition AST nodes. Each constructor below
// returns an *Expr with only the fields relevant to its Kind populated.
type Expr struct {
	Kind Kind

	// KindTag
	TagName string

	// KindTagSet
	SetName string

	// KindScope
	ScopeValue Scope

	// KindGroup, KindNot
	Inner *Expr

	// KindAnd, KindOr
	Left, Right *Expr
}

func Tag(name string) *Expr    { return &Expr{Kind: KindTag, TagName: name} }
func Task() *Expr              { return &Expr{Kind: KindTask} }
func Group(inner *Expr) *Expr  { return &Expr{Kind: KindGroup, Inner: inner} }
func Not(inner *Expr) *Expr    { return &Expr{Kind: KindNot, Inner: inner} }
func And(l, r *Expr) *Expr     { return &Expr{Kind: KindAnd, Left: l, Right: r} }
func Or(l, r *Expr) *Expr      { return &Expr{Kind: KindOr, Left: l, Right: r} }
func ScopeCond(s Scope) *Expr  { return &Expr{Kind: KindScope, ScopeValue: s} }

// TagSet builds a `TAGSET:set:name` condition. Both the set name and the
// queried tag name are stored on SetName/TagName respectively so the
// evaluator only needs one field lookup per kind.
func TagSet(setName, tagName string) *Expr {
	return &Expr{Kind: KindTagSet, SetName: setName, TagName: tagName}
}

// String renders the condition back to its source form, used for caching
// keys and diagnostics.
func (e *Expr) String() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindTag:
		return "tag:" + e.TagName
	case KindTagSet:
		return fmt.Sprintf("TAGSET:%s:%s", e.SetName, e.TagName)
	case KindScope:
		return "scope:" + string(e.ScopeValue)
	case KindTask:
		return "task"
	case KindGroup:
		return "(" + e.Inner.String() + ")"
	case KindNot:
		return "NOT " + e.Inner.String()
	case KindAnd:
		return e.Left.String() + " AND " + e.Right.String()
	case KindOr:
		return e.Left.String() + " OR " + e.Right.String()
	default:
		return "<invalid>"
	}
}

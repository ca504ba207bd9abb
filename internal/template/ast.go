package template

import "github.com/maxmoro/lg-render/internal/lgerrors"

// NodeKind tags a concrete Node implementation. The core package only
// defines NodeText; every other kind is introduced by a plugin's node
// package (internal/template/plugins/...), keeping the AST an open,
// registry-driven family rather than a fixed sum type.
type NodeKind string

const (
	NodeText NodeKind = "TEXT"
)

// Node is the sealed-by-convention interface every AST element
// implements. Concrete node types are immutable value-ish structs;
// resolving or processing a node never mutates it in place, it produces
// a new node (or a rendered string) instead.
type Node interface {
	Kind() NodeKind
	Position() lgerrors.Position
}

// Document is a parsed template file: a flat, already-TEXT-coalesced
// sequence of nodes plus the origin (file identity) it was parsed from.
type Document struct {
	Origin string
	Nodes  []Node
}

// TextNode is a run of literal output text with no placeholder or
// directive semantics.
type TextNode struct {
	Value string
	Pos   lgerrors.Position
}

func (n TextNode) Kind() NodeKind            { return NodeText }
func (n TextNode) Position() lgerrors.Position { return n.Pos }

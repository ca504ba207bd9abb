// Package common implements the bare and addressed section/include
// placeholders: ${name}, ${@origin:name}, ${@[origin]:name},
// ${tpl:name}, ${ctx:name}, and their addressed forms.
package common

import (
	"github.com/maxmoro/lg-render/internal/lgerrors"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

const (
	NodeSection tpl.NodeKind = "SECTION"
	NodeInclude tpl.NodeKind = "INCLUDE"
)

// SectionNode references a named, filter-defined collection of source
// files by name, either in the current origin or, via the addressed
// forms, in an explicitly named origin. Its content is never loaded or
// parsed by this engine: ResolvedOrigin/ResolvedName are handed to the
// external section handler at render time, which returns the opaque,
// already-final text this node renders as.
type SectionNode struct {
	RawName        string
	Pos            lgerrors.Position
	ResolvedOrigin string
	ResolvedName   string
}

func (n SectionNode) Kind() tpl.NodeKind          { return NodeSection }
func (n SectionNode) Position() lgerrors.Position { return n.Pos }

// IncludeNode references a named template ("tpl:") or context ("ctx:")
// fragment, optionally addressed into another origin.
type IncludeNode struct {
	IncludeKind    string // "tpl" or "ctx"
	RawOrigin      string // "self" or the as-parsed origin text
	RawName        string
	Pos            lgerrors.Position
	ResolvedOrigin string
	ResolvedNodes  []tpl.Node
}

func (n IncludeNode) Kind() tpl.NodeKind          { return NodeInclude }
func (n IncludeNode) Position() lgerrors.Position { return n.Pos }

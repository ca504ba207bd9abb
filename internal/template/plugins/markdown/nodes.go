// Package markdown implements the ${md:path#anchor,param:value,...}
// placeholder: it pulls in a whole Markdown file (or, with an anchor,
// the section under a matching heading plus any text before the file's
// first heading), normalizes its heading
// levels, and optionally strips a leading H1.
package markdown

import (
	"github.com/maxmoro/lg-render/internal/conditions"
	"github.com/maxmoro/lg-render/internal/lgerrors"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

const NodeMarkdownFile tpl.NodeKind = "MARKDOWN_FILE"

// MarkdownFileNode references a Markdown file by repo-relative path,
// optionally restricted to the section under the heading whose slug
// matches Anchor. Path may contain a '*' glob, in which case IsGlob is
// set and the matched files are loaded and concatenated as one group.
// Origin qualifies which repo/scope Path is resolved against ("self"
// when absent); Guard, if present, is the raw `if:` condition that
// must hold at render time for this reference to emit anything at all.
type MarkdownFileNode struct {
	Path   string
	Anchor string
	Origin string
	IsGlob bool

	StripH1         *bool
	MaxHeadingLevel *int

	GuardSrc string
	Guard    *conditions.Expr

	Pos      lgerrors.Position
	Resolved string
}

func (n MarkdownFileNode) Kind() tpl.NodeKind          { return NodeMarkdownFile }
func (n MarkdownFileNode) Position() lgerrors.Position { return n.Pos }

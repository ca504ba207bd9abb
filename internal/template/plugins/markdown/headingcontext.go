package markdown

import (
	mdcore "github.com/maxmoro/lg-render/internal/markdown"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

// headingContext computes the default (max_heading_level, strip_h1)
// pair a Markdown-file reference should normalize against, from the
// heading structure of the literal text surrounding it in the document
// being resolved:
//
//   - if the immediately preceding text ends mid-heading (no trailing
//     newline, last line is itself an ATX heading), the reference sits
//     on that heading's own line: level P, strip_h1 false.
//   - otherwise, walk backward through sibling nodes for the nearest
//     preceding heading (level P) and whether a horizontal rule isolates
//     it. No heading found, or the heading is isolated by a rule: level
//     1, strip_h1 false. Otherwise: level min(P+1, 6), strip_h1 true
//     unless this reference is part of a continuous chain of Markdown
//     placeholders with no intervening heading (then false, so later
//     members of the chain don't each re-strip their own H1 out from
//     under a shared section).
//
// A glob path is always treated as in-chain with itself, since its
// matched files are concatenated into one block with no heading of
// their own separating them from a sibling placeholder.
func headingContext(rc *tpl.ResolveContext, mn MarkdownFileNode) (maxLevel int, stripH1 bool) {
	if lvl, ok := precedingEndsInsideHeading(rc); ok {
		return lvl, false
	}

	p, hasP, isolated := precedingHeading(rc)
	inChain := mn.IsGlob || inMarkdownChain(rc)

	switch {
	case !hasP:
		return 1, false
	case isolated:
		return 1, false
	default:
		lvl := p + 1
		if lvl > 6 {
			lvl = 6
		}
		return lvl, !inChain
	}
}

func precedingEndsInsideHeading(rc *tpl.ResolveContext) (int, bool) {
	if rc.Index == 0 || rc.Index > len(rc.Siblings) {
		return 0, false
	}
	prev := rc.Siblings[rc.Index-1]
	tn, ok := prev.(tpl.TextNode)
	if !ok {
		return 0, false
	}
	return mdcore.EndsInsideHeading(tn.Value)
}

// precedingHeading walks backward from the reference's own position
// through any immediately adjacent Markdown-file references, looking
// for the nearest preceding heading in the next TEXT node it finds. It
// stops at the first node that is neither TEXT nor another
// Markdown-file reference.
func precedingHeading(rc *tpl.ResolveContext) (p int, hasP bool, isolatedByRule bool) {
	for i := rc.Index - 1; i >= 0; i-- {
		n := rc.Siblings[i]
		if tn, ok := n.(tpl.TextNode); ok {
			lvl, found, isolated := mdcore.PrecedingHeadingContext(tn.Value)
			if isolated {
				return 0, false, true
			}
			if found {
				return lvl, true, false
			}
			continue
		}
		if n.Kind() == NodeMarkdownFile {
			continue
		}
		break
	}
	return 0, false, false
}

// inMarkdownChain reports whether the reference at rc.Index sits next
// to another Markdown-file reference, in either direction, with nothing
// but heading-free prose between them — the "continuous placeholder
// chain" spec.md's heading-context analysis calls out as a special
// case distinct from an isolated placeholder.
func inMarkdownChain(rc *tpl.ResolveContext) bool {
	return adjacentIsMarkdown(rc.Siblings, rc.Index, -1) || adjacentIsMarkdown(rc.Siblings, rc.Index, 1)
}

func adjacentIsMarkdown(siblings []tpl.Node, index, dir int) bool {
	for i := index + dir; i >= 0 && i < len(siblings); i += dir {
		n := siblings[i]
		if tn, ok := n.(tpl.TextNode); ok {
			if _, found, isolated := mdcore.PrecedingHeadingContext(tn.Value); found || isolated {
				return false
			}
			continue
		}
		if n.Kind() == NodeMarkdownFile {
			return true
		}
		return false
	}
	return false
}

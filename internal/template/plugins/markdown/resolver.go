package markdown

import (
	mdcore "github.com/maxmoro/lg-render/internal/markdown"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

func resolve(rc *tpl.ResolveContext, n tpl.Node) (tpl.Node, error) {
	mn := n.(MarkdownFileNode)

	origin := rc.Origin
	if mn.Origin != "" && mn.Origin != "self" {
		origin = mn.Origin
	}

	src, _, err := rc.Loader.Load(origin, "md", mn.Path)
	if err != nil {
		return nil, err
	}

	text := src
	if mn.Anchor != "" {
		text, err = mdcore.SelectKeep(text, []mdcore.SectionMatch{{Kind: "slug", Pattern: mn.Anchor}}, mdcore.PlaceholderPolicy{Mode: "none"})
		if err != nil {
			return nil, err
		}
	}

	defaultLevel, defaultStripH1 := headingContext(rc, mn)
	maxLevel := &defaultLevel
	if mn.MaxHeadingLevel != nil {
		maxLevel = mn.MaxHeadingLevel
	}
	stripH1 := defaultStripH1
	if mn.StripH1 != nil {
		stripH1 = *mn.StripH1
	}

	normalized, _, err := mdcore.Normalize(text, mdcore.NormalizeOptions{
		MaxHeadingLevel: maxLevel,
		StripSingleH1:   stripH1,
		GroupSize:       1,
	})
	if err != nil {
		return nil, err
	}

	mn.Resolved = normalized
	return mn, nil
}

package template

import "github.com/maxmoro/lg-render/internal/lgerrors"

// ParseDocument lexes and parses src into a flat node sequence. It is
// the top of the parsing pass: TEXT runs are handled structurally, and
// everything else is dispatched to the registry's parser rules in
// priority order. Adjacent TextNodes are coalesced once at the end, not
// during scanning, since a rule that declines after partially matching
// the placeholder/directive openers can leave the lexer having already
// split what is logically one run of text.
func ParseDocument(src, origin string, reg *Registry, h *Handlers) (*Document, error) {
	lx, err := NewLexer(src, reg)
	if err != nil {
		return nil, err
	}
	toks, err := lx.Tokenize()
	if err != nil {
		return nil, err
	}
	pc := newParsingContext(toks, src, origin, h)

	var nodes []Node
	for !pc.IsAtEnd() {
		n, err := dispatch(pc, reg)
		if err != nil {
			return nil, err
		}
		if n == nil {
			break
		}
		nodes = append(nodes, n)
	}
	return &Document{Origin: origin, Nodes: coalesceText(nodes)}, nil
}

// ParseNext parses exactly one node from pc, the shared entry point
// injected into plugins as Handlers.ParseNext so that a directive's
// body (e.g. an if-block's branches) can be parsed the same way the
// top-level document is, without the plugin knowing about dispatch.
func ParseNext(pc *ParsingContext, reg *Registry) (Node, error) {
	return dispatch(pc, reg)
}

func dispatch(pc *ParsingContext, reg *Registry) (Node, error) {
	cur := pc.Current()
	if cur.Kind == TokEOF {
		return nil, nil
	}
	if cur.Kind == TokText {
		pc.Advance()
		return TextNode{Value: cur.Value, Pos: cur.Pos}, nil
	}

	for _, rule := range reg.sortedParserRules() {
		saved := pc.Position()
		node, matched, err := rule.Fn(pc)
		if err != nil {
			return nil, err
		}
		if matched {
			return node, nil
		}
		pc.Seek(saved)
	}

	return nil, lgerrors.Syntax(cur.Pos, "unexpected token %q", cur.Value)
}

func coalesceText(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nodes
	}
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if tn, ok := n.(TextNode); ok {
			if len(out) > 0 {
				if prev, ok := out[len(out)-1].(TextNode); ok {
					out[len(out)-1] = TextNode{Value: prev.Value + tn.Value, Pos: prev.Pos}
					continue
				}
			}
		}
		out = append(out, n)
	}
	return out
}

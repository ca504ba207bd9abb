package markdown

import (
	"strconv"
	"strings"

	"github.com/maxmoro/lg-render/internal/conditions"
	"github.com/maxmoro/lg-render/internal/lgerrors"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

const (
	tokOpen   tpl.TokenKind = "DOLLAR_LBRACE"
	tokClose  tpl.TokenKind = "RBRACE"
	tokWord   tpl.TokenKind = "WORD"
	tokColon  tpl.TokenKind = "COLON"
	tokHash   tpl.TokenKind = "HASH"
	tokComma  tpl.TokenKind = "COMMA"
	tokAt     tpl.TokenKind = "AT"
	tokLBrack tpl.TokenKind = "LBRACKET"
	tokRBrack tpl.TokenKind = "RBRACKET"
)

// Plugin implements tpl.Plugin for the ${md:...} placeholder. Like the
// task plugin, it shares the "placeholder" context registered by the
// common plugin and wins the ${md...} spelling by registering at a
// higher priority, declining back to the generic section rule whenever
// the leading identifier isn't "md".
type Plugin struct {
	h *tpl.Handlers
}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string  { return "markdown_placeholder" }
func (p *Plugin) Priority() int { return 25 }

func (p *Plugin) RegisterTokens(r *tpl.Registry)   {}
func (p *Plugin) RegisterContexts(r *tpl.Registry) {}

func (p *Plugin) RegisterParserRules(r *tpl.Registry) {
	r.RegisterParserRule(tpl.ParserRule{Name: "parse_markdown_file", Priority: p.Priority(), Fn: p.parse})
}

func (p *Plugin) RegisterProcessors(r *tpl.Registry) {
	r.RegisterProcessor(NodeMarkdownFile, process)
}

func (p *Plugin) RegisterResolvers(r *tpl.Registry) {
	r.RegisterResolver(NodeMarkdownFile, resolve)
}

func (p *Plugin) Initialize(r *tpl.Registry, h *tpl.Handlers) error {
	p.h = h
	return nil
}

func (p *Plugin) parse(pc *tpl.ParsingContext) (tpl.Node, bool, error) {
	if pc.Current().Kind != tokOpen {
		return nil, false, nil
	}
	saved := pc.Position()
	pos := pc.Current().Pos
	pc.Advance() // ${

	origin, err := tryOrigin(pc)
	if err != nil {
		return nil, false, err
	}

	if pc.Current().Kind != tokWord || pc.Current().Value != "md" || pc.PeekAt(1).Kind != tokColon {
		pc.Seek(saved)
		return nil, false, nil
	}
	pc.Advance() // md
	pc.Advance() // :

	pathTok, err := pc.Consume(tokWord, "path after 'md:'")
	if err != nil {
		return nil, false, err
	}
	node := MarkdownFileNode{Path: pathTok.Value, Origin: origin, IsGlob: strings.Contains(pathTok.Value, "*"), Pos: pos}

	if pc.Current().Kind == tokHash {
		pc.Advance()
		anchorTok, err := pc.Consume(tokWord, "anchor after '#'")
		if err != nil {
			return nil, false, err
		}
		node.Anchor = anchorTok.Value
	}

	for pc.Current().Kind == tokComma {
		pc.Advance()
		keyTok, err := pc.Consume(tokWord, "parameter name")
		if err != nil {
			return nil, false, err
		}
		if _, err := pc.Consume(tokColon, "':' after parameter name"); err != nil {
			return nil, false, err
		}

		if keyTok.Value == "if" {
			src, expr, err := parseGuardCondition(pc)
			if err != nil {
				return nil, false, err
			}
			node.GuardSrc = src
			node.Guard = expr
			continue
		}

		valTok, err := pc.Consume(tokWord, "parameter value")
		if err != nil {
			return nil, false, err
		}
		switch keyTok.Value {
		case "strip_h1":
			b := valTok.Value == "true"
			node.StripH1 = &b
		case "level":
			lvl, err := strconv.Atoi(valTok.Value)
			if err != nil {
				return nil, false, lgerrors.Syntax(valTok.Pos, "invalid 'level' value %q", valTok.Value)
			}
			node.MaxHeadingLevel = &lvl
		case "anchor":
			node.Anchor = valTok.Value
		default:
			return nil, false, lgerrors.Syntax(keyTok.Pos, "unknown markdown placeholder parameter %q", keyTok.Value)
		}
	}

	if _, err := pc.Consume(tokClose, "'}' to close markdown placeholder"); err != nil {
		return nil, false, err
	}
	return node, true, nil
}

// tryOrigin consumes a leading "@origin:" or "@[origin]:" prefix ahead
// of the "md:" keyword, mirroring the bracketed/bare origin forms the
// common plugin accepts for section and include placeholders. It
// returns "" without consuming anything when the placeholder doesn't
// start with '@', leaving it to the generic section rule if "md:"
// doesn't follow either.
func tryOrigin(pc *tpl.ParsingContext) (string, error) {
	if pc.Current().Kind != tokAt {
		return "", nil
	}
	pc.Advance() // @

	if pc.Current().Kind == tokLBrack {
		pc.Advance()
		var parts []string
		for pc.Current().Kind != tokRBrack && !pc.IsAtEnd() {
			parts = append(parts, pc.Advance().Value)
		}
		if pc.IsAtEnd() {
			return "", lgerrors.Syntax(pc.Current().Pos, "expected ']' to close bracketed origin")
		}
		pc.Advance() // ]
		if _, err := pc.Consume(tokColon, "':' after bracketed origin"); err != nil {
			return "", err
		}
		return strings.Join(parts, ""), nil
	}

	originTok, err := pc.Consume(tokWord, "origin identifier")
	if err != nil {
		return "", err
	}
	if _, err := pc.Consume(tokColon, "':' after origin"); err != nil {
		return "", err
	}
	return originTok.Value, nil
}

// parseGuardCondition captures the raw source of an `if:` parameter's
// value — up to the next top-level ',' or '}' — and hands it to the
// independent condition-language parser rather than re-tokenizing it,
// since condition syntax (spaces, AND/OR, nested tag:value pairs)
// doesn't fit the single-WORD-token shape every other parameter value
// has.
func parseGuardCondition(pc *tpl.ParsingContext) (string, *conditions.Expr, error) {
	start := pc.Current().Pos.Offset
	end := start
	for pc.Current().Kind != tokComma && pc.Current().Kind != tokClose {
		if pc.IsAtEnd() {
			return "", nil, lgerrors.Syntax(pc.Current().Pos, "unterminated 'if' condition")
		}
		tok := pc.Advance()
		end = tok.Pos.Offset + len(tok.Value)
	}
	src := strings.TrimSpace(pc.TextBetween(start, end))
	expr, err := conditions.Parse(src)
	if err != nil {
		return "", nil, err
	}
	return src, expr, nil
}

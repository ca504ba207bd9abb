package common

import (
	"fmt"
	"strings"

	"github.com/maxmoro/lg-render/internal/lgerrors"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

const contextName = "placeholder"

const (
	tokOpen    tpl.TokenKind = "DOLLAR_LBRACE"
	tokClose   tpl.TokenKind = "RBRACE"
	tokWord    tpl.TokenKind = "WORD"
	tokColon   tpl.TokenKind = "COLON"
	tokAt      tpl.TokenKind = "AT"
	tokComma   tpl.TokenKind = "COMMA"
	tokHash    tpl.TokenKind = "HASH"
	tokLBrack  tpl.TokenKind = "LBRACKET"
	tokRBrack  tpl.TokenKind = "RBRACKET"
	tokString  tpl.TokenKind = "STRING"
)

// Plugin implements tpl.Plugin for the bare/addressed section and
// include placeholders.
type Plugin struct {
	h *tpl.Handlers
}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string  { return "common_placeholders" }
func (p *Plugin) Priority() int { return 10 }

func (p *Plugin) RegisterTokens(r *tpl.Registry) {
	r.RegisterToken(tpl.TokenSpec{Name: string(tokOpen), Pattern: `\$\{`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokClose), Pattern: `\}`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokWord), Pattern: `[A-Za-z0-9_./*-]+`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokColon), Pattern: `:`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokAt), Pattern: `@`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokComma), Pattern: `,`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokHash), Pattern: `#`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokLBrack), Pattern: `\[`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokRBrack), Pattern: `\]`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokString), Pattern: `"(?:[^"\\]|\\.)*"`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tpl.TokWS), Pattern: `[ \t]+`})
}

func (p *Plugin) RegisterContexts(r *tpl.Registry) {
	r.RegisterContext(tpl.TokenContext{
		Name:  contextName,
		Open:  string(tokOpen),
		Close: string(tokClose),
		Inner: []string{
			string(tokWord), string(tokColon), string(tokAt), string(tokComma),
			string(tokHash), string(tokLBrack), string(tokRBrack), string(tokString),
			string(tpl.TokWS),
		},
	})
}

func (p *Plugin) RegisterParserRules(r *tpl.Registry) {
	r.RegisterParserRule(tpl.ParserRule{
		Name:     "parse_placeholder",
		Priority: p.Priority(),
		Fn:       p.parsePlaceholder,
	})
}

func (p *Plugin) RegisterProcessors(r *tpl.Registry) {
	r.RegisterProcessor(NodeSection, processSection)
	r.RegisterProcessor(NodeInclude, processInclude)
}

func (p *Plugin) RegisterResolvers(r *tpl.Registry) {
	r.RegisterResolver(NodeSection, resolveSection)
	r.RegisterResolver(NodeInclude, resolveInclude)
}

func (p *Plugin) Initialize(r *tpl.Registry, h *tpl.Handlers) error {
	p.h = h
	return nil
}

func (p *Plugin) parsePlaceholder(pc *tpl.ParsingContext) (tpl.Node, bool, error) {
	if pc.Current().Kind != tokOpen {
		return nil, false, nil
	}
	startPos := pc.Current().Pos
	pc.Advance() // ${

	if pc.Current().Kind == tokWord && (pc.Current().Value == "tpl" || pc.Current().Value == "ctx") {
		kindWord := pc.Current().Value
		next := pc.PeekAt(1)
		switch next.Kind {
		case tokAt:
			pc.Advance() // tpl/ctx
			pc.Advance() // @
			origin, name, err := parseAddressedRef(pc)
			if err != nil {
				return nil, false, err
			}
			if _, err := pc.Consume(tokClose, "'}' to close placeholder"); err != nil {
				return nil, false, err
			}
			return IncludeNode{IncludeKind: kindWord, RawOrigin: origin, RawName: name, Pos: startPos}, true, nil
		case tokColon:
			pc.Advance() // tpl/ctx
			pc.Advance() // :
			name, err := parsePath(pc)
			if err != nil {
				return nil, false, err
			}
			if _, err := pc.Consume(tokClose, "'}' to close placeholder"); err != nil {
				return nil, false, err
			}
			return IncludeNode{IncludeKind: kindWord, RawOrigin: "self", RawName: name, Pos: startPos}, true, nil
		}
		// Not actually tpl:/ctx:, fall through to the generic cases below
		// with the identifier still unconsumed.
	}

	if pc.Current().Kind == tokAt {
		pc.Advance()
		origin, name, err := parseAddressedRef(pc)
		if err != nil {
			return nil, false, err
		}
		if _, err := pc.Consume(tokClose, "'}' to close placeholder"); err != nil {
			return nil, false, err
		}
		return SectionNode{RawName: fmt.Sprintf("@%s:%s", origin, name), Pos: startPos}, true, nil
	}

	if pc.Current().Kind != tokWord {
		return nil, false, nil
	}
	name, err := parsePath(pc)
	if err != nil {
		return nil, false, err
	}
	if _, err := pc.Consume(tokClose, "'}' to close placeholder"); err != nil {
		return nil, false, err
	}
	return SectionNode{RawName: name, Pos: startPos}, true, nil
}

func parsePath(pc *tpl.ParsingContext) (string, error) {
	tok, err := pc.Consume(tokWord, "identifier")
	if err != nil {
		return "", err
	}
	return tok.Value, nil
}

func parseAddressedRef(pc *tpl.ParsingContext) (origin, name string, err error) {
	if pc.Current().Kind == tokLBrack {
		pc.Advance()
		var parts []string
		for pc.Current().Kind != tokRBrack && !pc.IsAtEnd() {
			parts = append(parts, pc.Advance().Value)
		}
		if pc.IsAtEnd() {
			return "", "", lgerrors.Syntax(pc.Current().Pos, "expected ']' to close bracketed origin")
		}
		pc.Advance() // ]
		if _, err := pc.Consume(tokColon, "':' after bracketed origin"); err != nil {
			return "", "", err
		}
		nameTok, err := pc.Consume(tokWord, "name after origin")
		if err != nil {
			return "", "", err
		}
		return strings.Join(parts, ""), nameTok.Value, nil
	}

	originTok, err := pc.Consume(tokWord, "origin identifier")
	if err != nil {
		return "", "", err
	}
	if _, err := pc.Consume(tokColon, "':' after origin"); err != nil {
		return "", "", err
	}
	nameTok, err := pc.Consume(tokWord, "name after origin")
	if err != nil {
		return "", "", err
	}
	return originTok.Value, nameTok.Value, nil
}

package adaptive

import (
	"strings"

	"github.com/maxmoro/lg-render/internal/conditions"
	"github.com/maxmoro/lg-render/internal/lgerrors"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

const (
	tokDirOpen   tpl.TokenKind = "PCT_LBRACE"
	tokDirClose  tpl.TokenKind = "PCT_RBRACE"
	tokDirWord   tpl.TokenKind = "DIRECTIVE_WORD"
	tokDirPunct  tpl.TokenKind = "DIRECTIVE_PUNCT"
	tokCmtOpen   tpl.TokenKind = "HASH_LBRACE"
	tokCmtClose  tpl.TokenKind = "RBRACE_HASH"
	tokCmtText   tpl.TokenKind = "COMMENT_TEXT"
)

// Plugin implements tpl.Plugin for if/elif/else/endif, mode/endmode,
// and comment blocks.
type Plugin struct {
	h *tpl.Handlers
}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string  { return "adaptive" }
func (p *Plugin) Priority() int { return 20 }

func (p *Plugin) RegisterTokens(r *tpl.Registry) {
	r.RegisterToken(tpl.TokenSpec{Name: string(tokDirOpen), Pattern: `\{%`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokDirClose), Pattern: `%\}`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokDirWord), Pattern: `[A-Za-z_][A-Za-z0-9_]*`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokDirPunct), Pattern: `[^%A-Za-z_ \t]+`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tpl.TokWS), Pattern: `[ \t]+`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokCmtOpen), Pattern: `\{#`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokCmtClose), Pattern: `#\}`})
	r.RegisterToken(tpl.TokenSpec{Name: string(tokCmtText), Pattern: `[^#]+|#`})
}

func (p *Plugin) RegisterContexts(r *tpl.Registry) {
	r.RegisterContext(tpl.TokenContext{
		Name:  "directive",
		Open:  string(tokDirOpen),
		Close: string(tokDirClose),
		Inner: []string{string(tokDirWord), string(tpl.TokWS), string(tokDirPunct)},
	})
	r.RegisterContext(tpl.TokenContext{
		Name:  "comment",
		Open:  string(tokCmtOpen),
		Close: string(tokCmtClose),
		Inner: []string{string(tokCmtText)},
	})
}

func (p *Plugin) RegisterParserRules(r *tpl.Registry) {
	r.RegisterParserRule(tpl.ParserRule{Name: "parse_directive", Priority: p.Priority(), Fn: p.parseDirective})
	r.RegisterParserRule(tpl.ParserRule{Name: "parse_comment", Priority: p.Priority(), Fn: p.parseComment})
}

func (p *Plugin) RegisterProcessors(r *tpl.Registry) {
	r.RegisterProcessor(NodeConditional, processConditional)
	r.RegisterProcessor(NodeModeBlock, processModeBlock)
	r.RegisterProcessor(NodeComment, processComment)
}

func (p *Plugin) RegisterResolvers(r *tpl.Registry) {
	r.RegisterResolver(NodeConditional, resolveConditional)
	r.RegisterResolver(NodeModeBlock, resolveModeBlock)
}

func (p *Plugin) Initialize(r *tpl.Registry, h *tpl.Handlers) error {
	p.h = h
	return nil
}

var ifTerminators = map[string]bool{"elif": true, "else": true, "endif": true}
var modeTerminators = map[string]bool{"endmode": true}

func (p *Plugin) parseDirective(pc *tpl.ParsingContext) (tpl.Node, bool, error) {
	word, ok := pc.PeekDirectiveWord(tokDirOpen, tokDirWord)
	if !ok {
		return nil, false, nil
	}
	switch word {
	case "if":
		node, err := p.parseIfBlock(pc)
		return node, err == nil, err
	case "mode":
		node, err := p.parseModeBlock(pc)
		return node, err == nil, err
	default:
		return nil, false, lgerrors.Syntax(pc.Current().Pos, "unexpected directive %q", word)
	}
}

func (p *Plugin) parseComment(pc *tpl.ParsingContext) (tpl.Node, bool, error) {
	if pc.Current().Kind != tokCmtOpen {
		return nil, false, nil
	}
	pos := pc.Current().Pos
	pc.Advance()
	for pc.Current().Kind != tokCmtClose {
		if pc.IsAtEnd() {
			return nil, false, lgerrors.Syntax(pos, "unterminated comment")
		}
		pc.Advance()
	}
	pc.Advance() // consume close
	return CommentNode{Pos: pos}, true, nil
}

func (p *Plugin) parseIfBlock(pc *tpl.ParsingContext) (tpl.Node, error) {
	pos := pc.Current().Pos
	firstCase, err := p.parseConditionHeader(pc, "if")
	if err != nil {
		return nil, err
	}
	body, err := p.parseBodyUntil(pc, ifTerminators)
	if err != nil {
		return nil, err
	}
	firstCase.Body = body
	cases := []ConditionCase{firstCase}

	var elseBody []tpl.Node
	for {
		word, ok := pc.PeekDirectiveWord(tokDirOpen, tokDirWord)
		if !ok {
			return nil, lgerrors.Syntax(pos, "unterminated 'if' block")
		}
		switch word {
		case "elif":
			c, err := p.parseConditionHeader(pc, "elif")
			if err != nil {
				return nil, err
			}
			b, err := p.parseBodyUntil(pc, ifTerminators)
			if err != nil {
				return nil, err
			}
			c.Body = b
			cases = append(cases, c)
		case "else":
			if err := p.consumeBareDirective(pc, "else"); err != nil {
				return nil, err
			}
			b, err := p.parseBodyUntil(pc, map[string]bool{"endif": true})
			if err != nil {
				return nil, err
			}
			elseBody = b
		case "endif":
			if err := p.consumeBareDirective(pc, "endif"); err != nil {
				return nil, err
			}
			return ConditionalNode{Cases: cases, ElseBody: elseBody, Pos: pos}, nil
		default:
			return nil, lgerrors.Syntax(pc.Current().Pos, "unexpected %q inside if block", word)
		}
	}
}

func (p *Plugin) parseModeBlock(pc *tpl.ParsingContext) (tpl.Node, error) {
	pos := pc.Current().Pos
	pc.Advance() // {%
	if _, err := pc.Consume(tokDirWord, "'mode' keyword"); err != nil {
		return nil, err
	}
	setTok, err := pc.Consume(tokDirWord, "mode-set name")
	if err != nil {
		return nil, err
	}
	colonTok, err := pc.Consume(tokDirPunct, "':' separating mode-set and mode")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(colonTok.Value) != ":" {
		return nil, lgerrors.Syntax(colonTok.Pos, "expected ':' in mode directive, got %q", colonTok.Value)
	}
	modeTok, err := pc.Consume(tokDirWord, "mode name")
	if err != nil {
		return nil, err
	}
	if _, err := pc.Consume(tokDirClose, "'%}' to close mode directive"); err != nil {
		return nil, err
	}

	body, err := p.parseBodyUntil(pc, modeTerminators)
	if err != nil {
		return nil, err
	}
	if err := p.consumeBareDirective(pc, "endmode"); err != nil {
		return nil, err
	}
	return ModeBlockNode{SetName: setTok.Value, ModeName: modeTok.Value, Body: body, Pos: pos}, nil
}

// parseConditionHeader consumes "{% if " or "{% elif " through the
// closing "%}", reconstructing the raw condition source from byte
// offsets and handing it to the independent condition-language parser
// rather than re-tokenizing it as template tokens.
func (p *Plugin) parseConditionHeader(pc *tpl.ParsingContext, keyword string) (ConditionCase, error) {
	pc.Advance() // {%
	kwTok, err := pc.Consume(tokDirWord, "'"+keyword+"' keyword")
	if err != nil {
		return ConditionCase{}, err
	}
	condStart := kwTok.Pos.Offset + len(kwTok.Value)

	for pc.Current().Kind != tokDirClose {
		if pc.IsAtEnd() {
			return ConditionCase{}, lgerrors.Syntax(kwTok.Pos, "unterminated '%s' directive", keyword)
		}
		pc.Advance()
	}
	condEnd := pc.Current().Pos.Offset
	pc.Advance() // %}

	src := strings.TrimSpace(pc.TextBetween(condStart, condEnd))
	expr, err := conditions.Parse(src)
	if err != nil {
		return ConditionCase{}, err
	}
	return ConditionCase{ConditionSrc: src, Condition: expr}, nil
}

func (p *Plugin) consumeBareDirective(pc *tpl.ParsingContext, keyword string) error {
	pc.Advance() // {%
	if _, err := pc.Consume(tokDirWord, "'"+keyword+"' keyword"); err != nil {
		return err
	}
	_, err := pc.Consume(tokDirClose, "'%}' to close '"+keyword+"'")
	return err
}

func (p *Plugin) parseBodyUntil(pc *tpl.ParsingContext, terminators map[string]bool) ([]tpl.Node, error) {
	var nodes []tpl.Node
	for {
		if pc.IsAtEnd() {
			return nil, lgerrors.Syntax(pc.Current().Pos, "unterminated block, expected one of %v", terminators)
		}
		if word, ok := pc.PeekDirectiveWord(tokDirOpen, tokDirWord); ok && terminators[word] {
			return nodes, nil
		}
		n, err := pc.Handlers().ParseNext(pc)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, lgerrors.Syntax(pc.Current().Pos, "unterminated block, expected one of %v", terminators)
		}
		nodes = append(nodes, n)
	}
}

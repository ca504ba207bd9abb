package task

import (
	"strconv"
	"strings"

	"github.com/maxmoro/lg-render/internal/lgerrors"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

const (
	tokOpen   tpl.TokenKind = "DOLLAR_LBRACE"
	tokClose  tpl.TokenKind = "RBRACE"
	tokWord   tpl.TokenKind = "WORD"
	tokColon  tpl.TokenKind = "COLON"
	tokString tpl.TokenKind = "STRING"
)

// Plugin implements tpl.Plugin for the task placeholder. It shares the
// "placeholder" lexical context with the common plugin and relies on a
// higher registration priority to claim ${task...} before the generic
// section rule would treat "task" as a bare section name.
type Plugin struct {
	h *tpl.Handlers
}

func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string  { return "task_placeholder" }
func (p *Plugin) Priority() int { return 30 }

func (p *Plugin) RegisterTokens(r *tpl.Registry) {}
func (p *Plugin) RegisterContexts(r *tpl.Registry) {}

func (p *Plugin) RegisterParserRules(r *tpl.Registry) {
	r.RegisterParserRule(tpl.ParserRule{Name: "parse_task_placeholder", Priority: p.Priority(), Fn: p.parse})
}

func (p *Plugin) RegisterProcessors(r *tpl.Registry) {
	r.RegisterProcessor(NodeTask, process)
}

func (p *Plugin) RegisterResolvers(r *tpl.Registry) {}

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

	if pc.Current().Kind != tokWord || pc.Current().Value != "task" {
		pc.Seek(saved)
		return nil, false, nil
	}
	pc.Advance() // task

	var defaultPrompt *string
	if pc.Current().Kind == tokColon {
		pc.Advance() // :
		promptTok, err := pc.Consume(tokWord, "'prompt' after ':' in task placeholder")
		if err != nil {
			return nil, false, err
		}
		if promptTok.Value != "prompt" {
			return nil, false, lgerrors.Syntax(promptTok.Pos, "expected 'prompt', got %q", promptTok.Value)
		}
		if _, err := pc.Consume(tokColon, "':' after 'prompt'"); err != nil {
			return nil, false, err
		}
		strTok, err := pc.Consume(tokString, "string literal after 'prompt:'")
		if err != nil {
			return nil, false, err
		}
		unquoted, err := unquote(strTok.Value)
		if err != nil {
			return nil, false, lgerrors.Syntax(strTok.Pos, "%v", err)
		}
		defaultPrompt = &unquoted
	}

	if _, err := pc.Consume(tokClose, "'}' to close task placeholder"); err != nil {
		return nil, false, err
	}

	return TaskNode{DefaultPrompt: defaultPrompt, Pos: pos}, true, nil
}

func unquote(lit string) (string, error) {
	if strings.HasPrefix(lit, `"`) && strings.HasSuffix(lit, `"`) && len(lit) >= 2 {
		return strconv.Unquote(lit)
	}
	return lit, nil
}

// Package adaptive implements the tag/mode control-flow directives:
// {% if <condition> %}...{% elif <condition> %}...{% else %}...{% endif %},
// {% mode set:name %}...{% endmode %}, and {# comment #}.
package adaptive

import (
	"github.com/maxmoro/lg-render/internal/conditions"
	"github.com/maxmoro/lg-render/internal/lgerrors"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

const (
	NodeConditional tpl.NodeKind = "CONDITIONAL"
	NodeModeBlock   tpl.NodeKind = "MODE_BLOCK"
	NodeComment     tpl.NodeKind = "COMMENT"
)

// ConditionCase is one if/elif arm: its source text (kept for error
// messages and round-tripping), the parsed condition expression, and
// the body rendered when the condition holds.
type ConditionCase struct {
	ConditionSrc string
	Condition    *conditions.Expr
	Body         []tpl.Node
}

// ConditionalNode is a full if/elif*/else?/endif chain. Only the first
// case whose condition is true renders; if none match, ElseBody renders
// (nil if there was no else clause).
type ConditionalNode struct {
	Cases    []ConditionCase
	ElseBody []tpl.Node
	Pos      lgerrors.Position
}

func (n ConditionalNode) Kind() tpl.NodeKind          { return NodeConditional }
func (n ConditionalNode) Position() lgerrors.Position { return n.Pos }

// ModeBlockNode activates mode Name within mode-set Set for the extent
// of Body, then deactivates it again.
type ModeBlockNode struct {
	SetName  string
	ModeName string
	Body     []tpl.Node
	Pos      lgerrors.Position
}

func (n ModeBlockNode) Kind() tpl.NodeKind          { return NodeModeBlock }
func (n ModeBlockNode) Position() lgerrors.Position { return n.Pos }

// CommentNode is an author-facing comment; it renders as nothing.
type CommentNode struct {
	Pos lgerrors.Position
}

func (n CommentNode) Kind() tpl.NodeKind          { return NodeComment }
func (n CommentNode) Position() lgerrors.Position { return n.Pos }

// Package task implements the ${task} and ${task:prompt:"..."}
// placeholder, which renders the caller-supplied task text, falling
// back to a literal default prompt when no task was supplied.
package task

import (
	"github.com/maxmoro/lg-render/internal/lgerrors"
	tpl "github.com/maxmoro/lg-render/internal/template"
)

const NodeTask tpl.NodeKind = "TASK"

// TaskNode renders the render's task text, or DefaultPrompt if the
// caller supplied none and DefaultPrompt is set.
type TaskNode struct {
	DefaultPrompt *string
	Pos           lgerrors.Position
}

func (n TaskNode) Kind() tpl.NodeKind          { return NodeTask }
func (n TaskNode) Position() lgerrors.Position { return n.Pos }

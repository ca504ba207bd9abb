// Package template implements the context-sensitive placeholder/directive
// language embedded in Markdown prompt files: a small lexer, a
// priority-ordered recursive-descent parser, a cross-reference resolver,
// and a render pass, all built around a plugin registry so that new
// placeholder and directive kinds can be added without touching the core.
package template

import "github.com/maxmoro/lg-render/internal/lgerrors"

// TokenKind identifies a lexical token kind. Kinds are registered by
// plugins at startup; the core only knows about TEXT, EOF and WS.
type TokenKind string

const (
	TokText TokenKind = "TEXT"
	TokEOF  TokenKind = "EOF"
	TokWS   TokenKind = "WS"
)

// Token is a single lexed unit, tagged with the context it was lexed in
// ("" for the top-level text context).
type Token struct {
	Kind    TokenKind
	Value   string
	Pos     lgerrors.Position
	Context string
}

// TokenSpec is a registered token kind: a name and the regular-expression
// pattern (anchored at the match position) used to recognize it.
type TokenSpec struct {
	Name     string
	Pattern  string
	Priority int

	order int
}

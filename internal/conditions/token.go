package conditions

import "github.com/maxmoro/lg-render/internal/lgerrors"

// TokenKind identifies a condition-lexer token kind.
type TokenKind string

const (
	TokKeyword TokenKind = "KEYWORD"
	TokIdent   TokenKind = "IDENT"
	TokSymbol  TokenKind = "SYMBOL"
	TokEOF     TokenKind = "EOF"
)

// Token is a single lexed unit of a condition expression.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   lgerrors.Position
}

var keywords = map[string]bool{
	"tag": true, "TAGSET": true, "scope": true, "task": true,
	"AND": true, "OR": true, "NOT": true,
}

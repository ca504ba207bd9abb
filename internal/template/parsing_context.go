package template

import "github.com/maxmoro/lg-render/internal/lgerrors"

// ParsingContext is the cursor a ParserRule consumes tokens from.
// Whitespace tokens are dropped before the context is built, so rules
// never have to special-case them (the lexer still produces them, for
// callers that want the raw stream).
type ParsingContext struct {
	toks   []Token
	pos    int
	src    string
	origin string
	h      *Handlers
}

func newParsingContext(toks []Token, src, origin string, h *Handlers) *ParsingContext {
	filtered := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind == TokWS {
			continue
		}
		filtered = append(filtered, t)
	}
	return &ParsingContext{toks: filtered, src: src, origin: origin, h: h}
}

// Position is the current read cursor, usable for save/restore when a
// rule tentatively parses and may need to decline.
func (pc *ParsingContext) Position() int { return pc.pos }

// Seek restores a previously saved Position.
func (pc *ParsingContext) Seek(p int) { pc.pos = p }

func (pc *ParsingContext) Current() Token {
	if pc.pos >= len(pc.toks) {
		return Token{Kind: TokEOF}
	}
	return pc.toks[pc.pos]
}

func (pc *ParsingContext) PeekAt(n int) Token {
	i := pc.pos + n
	if i < 0 || i >= len(pc.toks) {
		return Token{Kind: TokEOF}
	}
	return pc.toks[i]
}

func (pc *ParsingContext) IsAtEnd() bool { return pc.Current().Kind == TokEOF }

func (pc *ParsingContext) Advance() Token {
	t := pc.Current()
	if !pc.IsAtEnd() {
		pc.pos++
	}
	return t
}

func (pc *ParsingContext) Match(kind TokenKind) bool {
	if pc.Current().Kind == kind {
		pc.Advance()
		return true
	}
	return false
}

func (pc *ParsingContext) Consume(kind TokenKind, what string) (Token, error) {
	if pc.Current().Kind != kind {
		return Token{}, lgerrors.Syntax(pc.Current().Pos, "expected %s", what)
	}
	return pc.Advance(), nil
}

// TextBetween returns the raw, un-tokenized source between two byte
// offsets, used when a node embeds a sub-language (conditions) that
// re-lexes its own source rather than consuming template tokens.
func (pc *ParsingContext) TextBetween(startOffset, endOffset int) string {
	if startOffset < 0 {
		startOffset = 0
	}
	if endOffset > len(pc.src) {
		endOffset = len(pc.src)
	}
	if startOffset >= endOffset {
		return ""
	}
	return pc.src[startOffset:endOffset]
}

// Origin is the file identity the document being parsed belongs to.
func (pc *ParsingContext) Origin() string { return pc.origin }

// Handlers exposes the injected recursion entry points to parser rules
// that need to parse a nested body (e.g. an if-block's branches).
func (pc *ParsingContext) Handlers() *Handlers { return pc.h }

// PeekDirectiveWord reports the keyword of the directive starting at
// the current position (e.g. "elif", "endif") without consuming any
// tokens, or ok=false if the current position is not a directive open.
func (pc *ParsingContext) PeekDirectiveWord(openKind, wordKind TokenKind) (string, bool) {
	if pc.Current().Kind != openKind {
		return "", false
	}
	next := pc.PeekAt(1)
	if next.Kind != wordKind {
		return "", false
	}
	return next.Value, true
}

package template

import (
	"regexp"
	"strings"

	"github.com/maxmoro/lg-render/internal/lgerrors"
)

// compiledContext is a TokenContext with its open/close patterns compiled
// and its inner token specs resolved and sorted by priority.
type compiledContext struct {
	spec  TokenContext
	open  *regexp.Regexp
	close *regexp.Regexp
	inner []*compiledToken
}

type compiledToken struct {
	spec    TokenSpec
	pattern *regexp.Regexp
}

// Lexer turns template source into a flat token stream by walking a
// stack of active contexts: at the top level it scans TEXT until any
// registered context's opener matches, then switches into that context
// and tokenizes using only the token kinds that context declares as
// inner, until the context's closer matches.
type Lexer struct {
	src    string
	pos    int
	line   int
	col    int
	stack  []*compiledContext
	opener *regexp.Regexp // alternation of every registered context's open pattern
	byName map[string]*compiledContext
}

// NewLexer builds a lexer for src using the contexts and tokens
// registered in reg. It returns an error if any registered pattern
// fails to compile.
func NewLexer(src string, reg *Registry) (*Lexer, error) {
	l := &Lexer{src: src, line: 1, col: 1, byName: map[string]*compiledContext{}}

	var openAlts []string
	for _, name := range reg.contextOrder {
		ctxSpec := reg.contexts[name]
		cc := &compiledContext{spec: *ctxSpec}
		open, err := regexp.Compile(reg.tokens[ctxSpec.Open].Pattern)
		if err != nil {
			return nil, lgerrors.Internal("context %q: bad open pattern: %v", name, err)
		}
		close, err := regexp.Compile(reg.tokens[ctxSpec.Close].Pattern)
		if err != nil {
			return nil, lgerrors.Internal("context %q: bad close pattern: %v", name, err)
		}
		cc.open, cc.close = open, close
		for _, tokName := range ctxSpec.Inner {
			spec, ok := reg.tokens[tokName]
			if !ok {
				return nil, lgerrors.Internal("context %q: unknown inner token %q", name, tokName)
			}
			pat, err := regexp.Compile(spec.Pattern)
			if err != nil {
				return nil, lgerrors.Internal("token %q: bad pattern: %v", tokName, err)
			}
			cc.inner = append(cc.inner, &compiledToken{spec: *spec, pattern: pat})
		}
		l.byName[name] = cc
		openAlts = append(openAlts, "(?:"+reg.tokens[ctxSpec.Open].Pattern+")")
	}
	if len(openAlts) > 0 {
		combined, err := regexp.Compile(strings.Join(openAlts, "|"))
		if err != nil {
			return nil, lgerrors.Internal("bad combined opener pattern: %v", err)
		}
		l.opener = combined
	}
	return l, nil
}

func (l *Lexer) currentPos() lgerrors.Position {
	return lgerrors.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) advance(n int) {
	for _, r := range l.src[l.pos : l.pos+n] {
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.pos += n
}

// Tokenize scans the entire source and returns its token stream,
// terminated by a TokEOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks, nil
		}
	}
}

func (l *Lexer) activeContext() *compiledContext {
	if len(l.stack) == 0 {
		return nil
	}
	return l.stack[len(l.stack)-1]
}

func (l *Lexer) next() (Token, error) {
	if l.pos >= len(l.src) {
		return Token{Kind: TokEOF, Pos: l.currentPos()}, nil
	}

	ctx := l.activeContext()
	if ctx == nil {
		return l.lexTopLevel()
	}

	remaining := l.src[l.pos:]

	if loc := ctx.close.FindStringIndex(remaining); loc != nil && loc[0] == 0 {
		startPos := l.currentPos()
		value := remaining[loc[0]:loc[1]]
		l.advance(loc[1])
		l.stack = l.stack[:len(l.stack)-1]
		return Token{Kind: TokenKind(ctx.spec.Close), Value: value, Pos: startPos, Context: ctx.spec.Name}, nil
	}

	for _, ct := range ctx.inner {
		if loc := ct.pattern.FindStringIndex(remaining); loc != nil && loc[0] == 0 && loc[1] > 0 {
			startPos := l.currentPos()
			value := remaining[loc[0]:loc[1]]
			l.advance(loc[1])
			return Token{Kind: TokenKind(ct.spec.Name), Value: value, Pos: startPos, Context: ctx.spec.Name}, nil
		}
	}

	return Token{}, lgerrors.Syntax(l.currentPos(), "unrecognized character in %s context: %q", ctx.spec.Name, remaining[:1])
}

func (l *Lexer) lexTopLevel() (Token, error) {
	remaining := l.src[l.pos:]

	if l.opener != nil {
		if loc := l.opener.FindStringIndex(remaining); loc != nil && loc[0] == 0 {
			for _, name := range l.orderedContextNames() {
				cc := l.byName[name]
				if oloc := cc.open.FindStringIndex(remaining); oloc != nil && oloc[0] == 0 {
					startPos := l.currentPos()
					value := remaining[oloc[0]:oloc[1]]
					l.advance(oloc[1])
					l.stack = append(l.stack, cc)
					return Token{Kind: TokenKind(cc.spec.Open), Value: value, Pos: startPos, Context: cc.spec.Name}, nil
				}
			}
		}
	}

	startPos := l.currentPos()
	idx := len(remaining)
	if l.opener != nil {
		if loc := l.opener.FindStringIndex(remaining); loc != nil {
			idx = loc[0]
		}
	}
	if idx == 0 {
		// Defensive: avoid an infinite loop if an opener matches a
		// zero-length span; treat one byte as TEXT and continue.
		idx = 1
	}
	value := remaining[:idx]
	l.advance(idx)
	return Token{Kind: TokText, Value: value, Pos: startPos}, nil
}

func (l *Lexer) orderedContextNames() []string {
	names := make([]string, 0, len(l.byName))
	for name := range l.byName {
		names = append(names, name)
	}
	// Stable precedence: contexts are tried in registration order; the
	// first whose opener matches at the current position wins.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0; j-- {
			a, b := l.byName[names[j-1]], l.byName[names[j]]
			if a.spec.order > b.spec.order {
				names[j-1], names[j] = names[j], names[j-1]
			}
		}
	}
	return names
}

package conditions

import "github.com/maxmoro/lg-render/internal/lgerrors"

// Parser is a recursive-descent parser over the condition grammar:
//
//	expr     := or_expr
//	or_expr  := and_expr ( "OR" and_expr )*
//	and_expr := not_expr ( "AND" not_expr )*
//	not_expr := "NOT" not_expr | primary
//	primary  := group | tag_cond | tagset_cond | scope_cond | task_cond
//	group    := "(" expr ")"
//	tag_cond := "tag" ":" IDENT
//	tagset   := "TAGSET" ":" IDENT ":" IDENT
//	scope    := "scope" ":" ( "local" | "parent" )
//	task     := "task"
type Parser struct {
	toks []Token
	pos  int
}

// Parse lexes and parses a condition source string into its AST.
func Parse(src string) (*Expr, error) {
	toks, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	if p.isAtEnd() {
		return nil, lgerrors.Syntax(p.current().Pos, "empty condition expression")
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		cur := p.current()
		return nil, lgerrors.Syntax(cur.Pos, "unexpected token %q", cur.Value)
	}
	return expr, nil
}

func (p *Parser) current() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: TokEOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) isAtEnd() bool { return p.current().Kind == TokEOF }

func (p *Parser) advance() Token {
	t := p.current()
	if !p.isAtEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) matchKeyword(kw string) bool {
	if c := p.current(); c.Kind == TokKeyword && c.Value == kw {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchSymbol(sym string) bool {
	if c := p.current(); c.Kind == TokSymbol && c.Value == sym {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consumeIdent(context string) (Token, error) {
	c := p.current()
	if c.Kind == TokIdent {
		return p.advance(), nil
	}
	return Token{}, lgerrors.Syntax(c.Pos, "expected identifier %s", context)
}

func (p *Parser) parseExpr() (*Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (*Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.matchKeyword("OR") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or(left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (*Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.matchKeyword("AND") {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = And(left, right)
	}
	return left, nil
}

func (p *Parser) parseNot() (*Expr, error) {
	if p.matchKeyword("NOT") {
		inner, err := p.parseNot() // right-associative
		if err != nil {
			return nil, err
		}
		return Not(inner), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (*Expr, error) {
	if p.matchSymbol("(") {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.matchSymbol(")") {
			return nil, lgerrors.Syntax(p.current().Pos, "expected ')' after grouped expression")
		}
		return Group(expr), nil
	}

	if p.matchKeyword("tag") {
		return p.parseTag()
	}
	if p.matchKeyword("TAGSET") {
		return p.parseTagSet()
	}
	if p.matchKeyword("scope") {
		return p.parseScope()
	}
	if p.matchKeyword("task") {
		return Task(), nil
	}

	cur := p.current()
	if cur.Kind == TokEOF {
		return nil, lgerrors.Syntax(cur.Pos, "unexpected end of condition expression")
	}
	return nil, lgerrors.Syntax(cur.Pos, "unexpected token %q", cur.Value)
}

func (p *Parser) parseTag() (*Expr, error) {
	if !p.matchSymbol(":") {
		return nil, lgerrors.Syntax(p.current().Pos, "expected ':' after 'tag'")
	}
	name, err := p.consumeIdent("after 'tag:'")
	if err != nil {
		return nil, err
	}
	return Tag(name.Value), nil
}

func (p *Parser) parseTagSet() (*Expr, error) {
	if !p.matchSymbol(":") {
		return nil, lgerrors.Syntax(p.current().Pos, "expected ':' after 'TAGSET'")
	}
	setName, err := p.consumeIdent("after 'TAGSET:'")
	if err != nil {
		return nil, err
	}
	if !p.matchSymbol(":") {
		return nil, lgerrors.Syntax(p.current().Pos, "expected ':' after tag-set name")
	}
	tagName, err := p.consumeIdent("after tag-set name")
	if err != nil {
		return nil, err
	}
	return TagSet(setName.Value, tagName.Value), nil
}

func (p *Parser) parseScope() (*Expr, error) {
	if !p.matchSymbol(":") {
		return nil, lgerrors.Syntax(p.current().Pos, "expected ':' after 'scope'")
	}
	typeTok, err := p.consumeIdent("after 'scope:'")
	if err != nil {
		return nil, err
	}
	switch typeTok.Value {
	case "local":
		return ScopeCond(ScopeLocal), nil
	case "parent":
		return ScopeCond(ScopeParent), nil
	default:
		return nil, lgerrors.Syntax(typeTok.Pos, "invalid scope type %q, expected 'local' or 'parent'", typeTok.Value)
	}
}

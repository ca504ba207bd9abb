package conditions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() *Context {
	return &Context{
		ActiveTags: map[string]bool{"python": true, "tests": true},
		TagSets: map[string]map[string]bool{
			"language": {"python": true, "javascript": true, "typescript": true},
			"feature":  {"auth": true, "api": true, "ui": true},
			"empty_set": {},
		},
		Scope: ScopeLocal,
	}
}

func TestLexerKeywordsVsIdentifiers(t *testing.T) {
	toks, err := NewLexer("tag:x AND TAGSET:lang:python").Tokenize()
	require.NoError(t, err)
	kinds := make([]TokenKind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokKeyword, TokSymbol, TokIdent, TokKeyword,
		TokKeyword, TokSymbol, TokIdent, TokSymbol, TokIdent, TokEOF,
	}, kinds)
}

func TestLexerRejectsUnknownByte(t *testing.T) {
	_, err := NewLexer("tag:x & bad").Tokenize()
	require.Error(t, err)
}

func TestParserPrecedenceAndAssociativity(t *testing.T) {
	expr, err := Parse("tag:a OR tag:b AND tag:c")
	require.NoError(t, err)
	require.Equal(t, KindOr, expr.Kind)
	assert.Equal(t, KindAnd, expr.Right.Kind)

	expr, err = Parse("NOT NOT tag:a")
	require.NoError(t, err)
	require.Equal(t, KindNot, expr.Kind)
	assert.Equal(t, KindNot, expr.Inner.Kind)
}

func TestParserRejectsEmptyExpression(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
}

func TestParserRejectsUnclosedGroup(t *testing.T) {
	_, err := Parse("(tag:a")
	assert.Error(t, err)
}

func TestParserRejectsInvalidScope(t *testing.T) {
	_, err := Parse("scope:global")
	assert.Error(t, err)
}

func TestParserRejectsTrailingTokens(t *testing.T) {
	_, err := Parse("tag:a tag:b")
	assert.Error(t, err)
}

func TestEvaluateTagConditions(t *testing.T) {
	ctx := newTestContext()

	ok, err := EvaluateText("tag:python", ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = EvaluateText("tag:ruby", ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateTagSetConditions(t *testing.T) {
	ctx := newTestContext()

	cases := []struct {
		src  string
		want bool
	}{
		{"TAGSET:language:python", true},    // queried tag is the active one
		{"TAGSET:language:javascript", false}, // different tag active in set
		{"TAGSET:feature:auth", true},       // nothing in feature is active
		{"TAGSET:feature:api", true},        // same: disjoint-or-selected
		{"TAGSET:empty_set:anything", true}, // empty set always satisfied
	}
	for _, tc := range cases {
		got, err := EvaluateText(tc.src, ctx)
		require.NoError(t, err)
		assert.Equalf(t, tc.want, got, "condition %q", tc.src)
	}
}

func TestEvaluateScopeConditions(t *testing.T) {
	local := newTestContext()
	ok, err := EvaluateText("scope:local", local)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = EvaluateText("scope:parent", local)
	require.NoError(t, err)
	assert.False(t, ok)

	parent := newTestContext()
	parent.Scope = ScopeParent
	ok, err = EvaluateText("scope:parent", parent)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluateTaskCondition(t *testing.T) {
	ctx := newTestContext()
	ok, err := EvaluateText("task", ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	ctx.HasTask = true
	ok, err = EvaluateText("task", ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluateShortCircuitAnd(t *testing.T) {
	ctx := newTestContext()
	calls := 0
	expr, err := Parse("tag:missing AND tag:python")
	require.NoError(t, err)

	// Replace the right side with a sentinel that would fail evaluation if
	// reached, to prove AND short-circuits when the left side is false.
	expr.Right = &Expr{Kind: Kind(99)}
	ok, err := Evaluate(expr, ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, calls)
}

func TestEvaluateShortCircuitOr(t *testing.T) {
	ctx := newTestContext()
	expr, err := Parse("tag:python OR tag:missing")
	require.NoError(t, err)
	expr.Right = &Expr{Kind: Kind(99)}
	ok, err := Evaluate(expr, ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluateComplexExpression(t *testing.T) {
	ctx := newTestContext()
	ok, err := EvaluateText("TAGSET:language:javascript OR (tag:python AND tag:tests)", ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestExprStringRoundTrips(t *testing.T) {
	expr, err := Parse("NOT (tag:a AND TAGSET:s:n) OR scope:local")
	require.NoError(t, err)
	assert.Contains(t, expr.String(), "NOT (tag:a AND TAGSET:s:n)")
}

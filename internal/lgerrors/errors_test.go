package lgerrors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionString(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected string
	}{
		{"with file", Position{File: "a.tpl.md", Line: 10, Column: 5}, "a.tpl.md:10:5"},
		{"without file", Position{Line: 10, Column: 5}, "10:5"},
		{"line 1 column 1", Position{Line: 1, Column: 1}, "1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.pos.String())
		})
	}
}

func TestSyntaxError(t *testing.T) {
	err := Syntax(Position{Line: 2, Column: 3}, "unexpected byte %q", '$')
	require.Equal(t, KindUserSyntax, err.Kind)
	assert.Equal(t, 2, err.ExitCode())
	assert.Contains(t, err.Error(), "2:3")
}

func TestSyntaxExpected(t *testing.T) {
	err := SyntaxExpected(Position{Line: 1, Column: 1}, "RBRACE", "EOF")
	assert.Equal(t, "RBRACE", err.Expected)
	assert.Contains(t, err.Error(), "expected RBRACE, got EOF")
}

func TestResolutionErrorCarriesKey(t *testing.T) {
	err := Resolution(Position{File: "x.ctx.md"}, "tpl@self:inner", "cyclic inclusion")
	assert.Equal(t, "tpl@self:inner", err.Key)
	assert.Contains(t, err.Error(), "key=tpl@self:inner")
	assert.Equal(t, 1, err.ExitCode())
}

func TestRenderingErrorWrapsCause(t *testing.T) {
	cause := Semantic(Position{}, "missing mode %q", "M")
	err := Rendering("ConditionalNode", "adaptive", cause)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "node=ConditionalNode")
	assert.Contains(t, err.Error(), "plugin=adaptive")
}

func TestListAggregation(t *testing.T) {
	var l List
	assert.False(t, l.HasErrors())
	l.Add(Syntax(Position{Line: 1, Column: 1}, "bad"))
	l.Add(Syntax(Position{Line: 2, Column: 1}, "worse"))
	assert.True(t, l.HasErrors())
	assert.Contains(t, l.Error(), "1:1")
	assert.Contains(t, l.Error(), "2:1")
}

package guards

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndefinedModeReferencePassesWhenKnown(t *testing.T) {
	gctx := &GuardContext{
		ModeReferences: []ModeReference{{Set: "language", Mode: "python"}},
		KnownModes:     map[string]map[string]bool{"language": {"python": true}},
	}
	result := UndefinedModeReference.Check(context.Background(), gctx)
	assert.True(t, result.Passed)
}

func TestUndefinedModeReferenceBlocksWhenUnknown(t *testing.T) {
	gctx := &GuardContext{
		ModeReferences: []ModeReference{{Set: "language", Mode: "rust"}},
		KnownModes:     map[string]map[string]bool{"language": {"python": true}},
	}
	result := UndefinedModeReference.Check(context.Background(), gctx)
	require.False(t, result.Passed)
	assert.Equal(t, HardBlock, result.Severity)
	assert.Contains(t, result.Message, "language:rust")
}

func TestBareTaskPlaceholderFallbackSuggestsWhenPresent(t *testing.T) {
	gctx := &GuardContext{BareTaskPlaceholderCount: 2}
	result := BareTaskPlaceholderFallback.Check(context.Background(), gctx)
	require.False(t, result.Passed)
	assert.Equal(t, Suggestion, result.Severity)
}

func TestBareTaskPlaceholderFallbackPassesWhenAbsent(t *testing.T) {
	gctx := &GuardContext{BareTaskPlaceholderCount: 0}
	result := BareTaskPlaceholderFallback.Check(context.Background(), gctx)
	assert.True(t, result.Passed)
}

func TestDeepConditionalNestingWarnsPastThreshold(t *testing.T) {
	gctx := &GuardContext{MaxConditionalDepth: 4}
	result := DeepConditionalNesting.Check(context.Background(), gctx)
	require.False(t, result.Passed)
	assert.Equal(t, Warning, result.Severity)
}

func TestDeepConditionalNestingPassesAtThreshold(t *testing.T) {
	gctx := &GuardContext{MaxConditionalDepth: 3}
	result := DeepConditionalNesting.Check(context.Background(), gctx)
	assert.True(t, result.Passed)
}

func TestDocumentGuardsRunnerBlocksOnHardBlockOnly(t *testing.T) {
	gctx := &GuardContext{
		BareTaskPlaceholderCount: 1,
		MaxConditionalDepth:      1,
		ModeReferences:           []ModeReference{{Set: "language", Mode: "rust"}},
		KnownModes:               map[string]map[string]bool{"language": {"python": true}},
	}
	outcome := NewRunner().Run(context.Background(), gctx, DocumentGuards())
	assert.True(t, outcome.Blocked)
	assert.Len(t, outcome.HardBlocks(), 1)
	assert.Len(t, outcome.Suggestions(), 1)
}

package guards

import (
	"context"
	"fmt"
)

// UndefinedModeReference flags a {% mode SET:MODE %} block whose SET:MODE
// pair isn't defined anywhere in the adaptive_loader config. This is a
// HARD_BLOCK: the engine itself already treats this as a named semantic
// error at render time, so a lint pass that can see it ahead of time
// should refuse rather than merely warn.
var UndefinedModeReference = NewGuardFunc("undefined_mode_reference", func(_ context.Context, gctx *GuardContext) Result {
	var unknown []string
	for _, ref := range gctx.ModeReferences {
		modes, ok := gctx.KnownModes[ref.Set]
		if !ok || !modes[ref.Mode] {
			unknown = append(unknown, ref.Set+":"+ref.Mode)
		}
	}
	if len(unknown) == 0 {
		return Pass("undefined_mode_reference")
	}
	return Fail("undefined_mode_reference", HardBlock,
		fmt.Sprintf("References mode(s) not defined in the adaptive_loader config: %s.", joinComma(unknown)),
		"Add the mode-set/mode to the modes YAML, or fix the typo in the {% mode %} directive.",
	)
})

// BareTaskPlaceholderFallback suggests adding a :prompt fallback to a
// ${task} placeholder when the document uses the bare form at least once.
// A SUGGESTION, not a block — many documents are only ever rendered with
// task text supplied, so a bare ${task} is a reasonable choice too.
var BareTaskPlaceholderFallback = NewGuardFunc("bare_task_placeholder_fallback", func(_ context.Context, gctx *GuardContext) Result {
	if gctx.BareTaskPlaceholderCount == 0 {
		return Pass("bare_task_placeholder_fallback")
	}
	return Fail("bare_task_placeholder_fallback", Suggestion,
		fmt.Sprintf("Uses the bare ${task} placeholder %d time(s) with no :prompt fallback. If this document can render without task text, the placeholder will simply render empty.", gctx.BareTaskPlaceholderCount),
		`Add a fallback: ${task:prompt:"default text"}, if empty output isn't the intended behavior.`,
	)
})

// DeepConditionalNesting warns when {% if %} blocks nest more than three
// levels deep — a WARNING, since deeply nested conditionals are a
// maintainability smell (hard to reason about which branch applies) but
// not a correctness problem the engine itself would reject.
var DeepConditionalNesting = NewGuardFunc("deep_conditional_nesting", func(_ context.Context, gctx *GuardContext) Result {
	const maxRecommendedDepth = 3
	if gctx.MaxConditionalDepth <= maxRecommendedDepth {
		return Pass("deep_conditional_nesting")
	}
	return Fail("deep_conditional_nesting", Warning,
		fmt.Sprintf("Conditional blocks nest %d levels deep (recommended maximum: %d). Deeply nested {% if %} blocks are hard to reason about.", gctx.MaxConditionalDepth, maxRecommendedDepth),
		"Consider splitting the nested branches into separate included templates, or flattening the condition with AND/OR.",
	)
})

// DocumentGuards returns the full set of document-lint checks lgctl
// validate runs against a parsed document's raw source.
func DocumentGuards() []Guard {
	return []Guard{
		UndefinedModeReference,
		BareTaskPlaceholderFallback,
		DeepConditionalNesting,
	}
}

// joinComma joins strings with commas and "and" for the last element.
func joinComma(ss []string) string {
	switch len(ss) {
	case 0:
		return ""
	case 1:
		return ss[0]
	case 2:
		return ss[0] + " and " + ss[1]
	default:
		return joinStrings(ss[:len(ss)-1], ", ") + ", and " + ss[len(ss)-1]
	}
}

func joinStrings(ss []string, sep string) string {
	result := ""
	for i, s := range ss {
		if i > 0 {
			result += sep
		}
		result += s
	}
	return result
}

package guards

import (
	"regexp"
	"sort"

	"github.com/maxmoro/lg-render/internal/modesconfig"
)

var (
	frontmatterRe  = regexp.MustCompile(`\A---\r?\n`)
	placeholderRe  = regexp.MustCompile(`\$\{[^}]*\}`)
	bareTaskRe     = regexp.MustCompile(`^\$\{\s*task\s*\}$`)
	fallbackTaskRe = regexp.MustCompile(`^\$\{\s*task\s*:\s*prompt\s*:`)
	modeOpenRe     = regexp.MustCompile(`\{%\s*mode\s+([A-Za-z_][A-Za-z0-9_]*)\s*:\s*([A-Za-z_][A-Za-z0-9_]*)\s*%\}`)
	ifOpenRe       = regexp.MustCompile(`\{%\s*if\b`)
	endifRe        = regexp.MustCompile(`\{%\s*endif\s*%\}`)
)

// PopulateDocumentState scans a document's raw source with the plain-text
// heuristics above and builds the GuardContext the document-lint guards
// run against. It deliberately does not re-parse the document through the
// real lexer/parser: a lint pass needs to say something useful about a
// document that might not even parse yet, so it works directly on bytes
// rather than requiring a successful parse first.
//
// modes may be nil, meaning no adaptive_loader config was supplied; in
// that case every {% mode %} reference is treated as undefined.
func PopulateDocumentState(documentName, source string, modes *modesconfig.Config) *GuardContext {
	gctx := &GuardContext{
		DocumentName:   documentName,
		HasFrontmatter: frontmatterRe.MatchString(source),
		KnownModes:     knownModes(modes),
	}

	for _, match := range placeholderRe.FindAllString(source, -1) {
		switch {
		case bareTaskRe.MatchString(match):
			gctx.BareTaskPlaceholderCount++
		case fallbackTaskRe.MatchString(match):
			gctx.FallbackTaskPlaceholderCount++
		default:
			gctx.SectionReferenceCount++
		}
	}

	for _, m := range modeOpenRe.FindAllStringSubmatch(source, -1) {
		gctx.ModeReferences = append(gctx.ModeReferences, ModeReference{Set: m[1], Mode: m[2]})
	}

	gctx.MaxConditionalDepth = maxConditionalDepth(source)

	return gctx
}

// knownModes flattens a modesconfig.Config's mode sets into the
// set-name -> mode-name -> true shape UndefinedModeReference checks
// against. A nil config means no modes are known at all.
func knownModes(modes *modesconfig.Config) map[string]map[string]bool {
	known := make(map[string]map[string]bool)
	if modes == nil {
		return known
	}
	for setName, modeSet := range modes.ModeSets {
		members := make(map[string]bool, len(modeSet))
		for modeName := range modeSet {
			members[modeName] = true
		}
		known[setName] = members
	}
	return known
}

type conditionalEvent struct {
	pos  int
	kind int // +1 open, -1 close
}

// maxConditionalDepth walks {% if %}/{% endif %} occurrences in source
// order (ignoring elif/else, which don't change nesting) and returns the
// deepest nesting level reached. Unbalanced directives are a syntax error
// the real parser will report; the lint pass just counts what's there.
func maxConditionalDepth(source string) int {
	var events []conditionalEvent
	for _, loc := range ifOpenRe.FindAllStringIndex(source, -1) {
		events = append(events, conditionalEvent{pos: loc[0], kind: 1})
	}
	for _, loc := range endifRe.FindAllStringIndex(source, -1) {
		events = append(events, conditionalEvent{pos: loc[0], kind: -1})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].pos < events[j].pos })

	depth, max := 0, 0
	for _, e := range events {
		depth += e.kind
		if depth > max {
			max = depth
		}
	}
	return max
}

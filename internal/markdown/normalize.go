package markdown

import "strings"

// NormalizeOptions mirrors the per-file adapter configuration: whether
// to shift heading levels so the shallowest heading in the file lands
// at MaxHeadingLevel, whether to strip a single leading H1 when this
// file is the only member of its placeholder group (GroupSize==1), and
// an optional keep/drop section filter applied after shifting.
//
// Mixed marks a glob-expanded group whose members don't share a common
// heading structure (e.g. a README next to a changelog); when set,
// heading-level shifting is skipped entirely regardless of
// MaxHeadingLevel, since there's no single "shallowest heading" that
// means the same thing across every file in the group.
type NormalizeOptions struct {
	MaxHeadingLevel *int
	StripSingleH1   bool
	GroupSize       int
	Mixed           bool

	KeepSections []SectionMatch
	DropSections []SectionMatch
	Placeholder  PlaceholderPolicy
}

// NormalizeResult reports what normalization actually did, so a caller
// can fold it into cache-key metadata or diagnostics.
type NormalizeResult struct {
	RemovedH1 bool
	Shifted   bool
}

// Normalize applies, in order, H1-stripping, heading-level shifting,
// and an optional keep/drop section filter, never touching headings or
// section boundaries inside a fenced code block.
func Normalize(text string, opts NormalizeOptions) (string, NormalizeResult, error) {
	lines := strings.Split(text, "\n")
	var result NormalizeResult

	if opts.StripSingleH1 && opts.GroupSize == 1 {
		lines, result.RemovedH1 = stripLeadingH1(lines)
	}

	if !opts.Mixed && opts.MaxHeadingLevel != nil {
		if minLevel, found := minHeadingLevel(lines); found {
			shift := *opts.MaxHeadingLevel - minLevel
			result.Shifted = shift != 0 || result.RemovedH1
			if shift != 0 {
				lines = shiftHeadings(lines, shift)
			}
		}
	}

	out := strings.Join(lines, "\n")
	var err error
	switch {
	case len(opts.DropSections) > 0:
		out, err = SelectDrop(out, opts.DropSections, opts.Placeholder)
	case len(opts.KeepSections) > 0:
		out, err = SelectKeep(out, opts.KeepSections, opts.Placeholder)
	}
	if err != nil {
		return "", result, err
	}
	return out, result, nil
}

func stripLeadingH1(lines []string) ([]string, bool) {
	if len(lines) == 0 {
		return lines, false
	}
	if atxPattern.MatchString(lines[0]) {
		if m := atxPattern.FindStringSubmatch(lines[0]); m != nil && len(m[1]) == 1 {
			return lines[1:], true
		}
	}
	if len(lines) >= 2 && strings.TrimSpace(lines[0]) != "" && setextH1Under.MatchString(lines[1]) {
		return lines[2:], true
	}
	return lines, false
}

func minHeadingLevel(lines []string) (int, bool) {
	fences := FenceIntervals(lines)
	min := -1
	for i, ln := range lines {
		if inFence(fences, i) {
			continue
		}
		if m := atxPattern.FindStringSubmatch(ln); m != nil {
			lvl := len(m[1])
			if min < 0 || lvl < min {
				min = lvl
			}
		}
	}
	if min < 0 {
		return 0, false
	}
	return min, true
}

func shiftHeadings(lines []string, shift int) []string {
	fences := FenceIntervals(lines)
	out := make([]string, len(lines))
	for i, ln := range lines {
		if inFence(fences, i) {
			out[i] = ln
			continue
		}
		if m := atxPattern.FindStringSubmatchIndex(ln); m != nil {
			newLevel := len(ln[m[2]:m[3]]) + shift
			if newLevel < 1 {
				newLevel = 1
			}
			out[i] = strings.Repeat("#", newLevel) + " " + ln[m[4]:m[5]]
			continue
		}
		out[i] = ln
	}
	return out
}

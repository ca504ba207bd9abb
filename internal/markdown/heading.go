package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	atxPattern    = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	setextH1Under = regexp.MustCompile(`^=+\s*$`)
	setextH2Under = regexp.MustCompile(`^-+\s*$`)
	fencePattern  = regexp.MustCompile("^(```|~~~)")
	thematicBreak = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})\s*$`)
)

// Heading is one ATX (`# Title`) or Setext (`Title` + `===`) heading
// found in a document, outside any fenced code block.
type Heading struct {
	Line  int // 0-based line index of the heading's first line
	Level int
	Title string
	Slug  string
}

// FenceIntervals returns the [start,end) line ranges, end exclusive,
// that fall inside a fenced ``` or ~~~ code block, so callers can skip
// them when looking for headings or horizontal rules. A fence is closed
// only by a fence line of the same character.
func FenceIntervals(lines []string) [][2]int {
	var out [][2]int
	open := -1
	marker := ""
	for i, ln := range lines {
		m := fencePattern.FindString(ln)
		if m == "" {
			continue
		}
		if open < 0 {
			open, marker = i, m
		} else if m == marker {
			out = append(out, [2]int{open, i + 1})
			open = -1
		}
	}
	if open >= 0 {
		out = append(out, [2]int{open, len(lines)})
	}
	return out
}

func inFence(fences [][2]int, line int) bool {
	for _, f := range fences {
		if line >= f[0] && line < f[1] {
			return true
		}
	}
	return false
}

// ParseHeadings scans lines for ATX and Setext headings, skipping any
// that fall inside a fenced code block.
func ParseHeadings(lines []string) []Heading {
	fences := FenceIntervals(lines)
	seen := map[string]int{}
	var out []Heading

	for i, ln := range lines {
		if inFence(fences, i) {
			continue
		}
		if m := atxPattern.FindStringSubmatch(ln); m != nil {
			title := m[2]
			out = append(out, Heading{Line: i, Level: len(m[1]), Title: title, Slug: uniqueSlug(seen, title)})
			continue
		}
		if i+1 < len(lines) && !inFence(fences, i+1) && strings.TrimSpace(ln) != "" {
			next := lines[i+1]
			if setextH1Under.MatchString(next) {
				out = append(out, Heading{Line: i, Level: 1, Title: ln, Slug: uniqueSlug(seen, ln)})
			} else if setextH2Under.MatchString(next) {
				out = append(out, Heading{Line: i, Level: 2, Title: ln, Slug: uniqueSlug(seen, ln)})
			}
		}
	}
	return out
}

func uniqueSlug(seen map[string]int, title string) string {
	base := Slugify(title)
	n := seen[base]
	seen[base] = n + 1
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

// PrecedingHeadingContext scans text — a run of literal template output
// that precedes some later placeholder, not a Markdown file in its own
// right — for the last ATX/Setext heading and the last horizontal rule
// outside any fenced code block. If a rule follows the last heading (or
// there is no heading at all but a rule is present), the heading is
// considered shadowed and isolatedByRule is true. found is false only
// when the text contains neither a heading nor a rule, so a caller can
// tell "nothing here" apart from "here, and it's a rule."
func PrecedingHeadingContext(text string) (level int, found bool, isolatedByRule bool) {
	lines := strings.Split(text, "\n")
	fences := FenceIntervals(lines)
	headingLevel, headingLine, ruleLine := -1, -1, -1

	for i := 0; i < len(lines); i++ {
		if inFence(fences, i) {
			continue
		}
		ln := lines[i]
		if m := atxPattern.FindStringSubmatch(ln); m != nil {
			headingLevel, headingLine = len(m[1]), i
			continue
		}
		if i+1 < len(lines) && !inFence(fences, i+1) && strings.TrimSpace(ln) != "" {
			next := lines[i+1]
			if setextH1Under.MatchString(next) {
				headingLevel, headingLine = 1, i
				i++
				continue
			}
			if setextH2Under.MatchString(next) {
				headingLevel, headingLine = 2, i
				i++
				continue
			}
		}
		if thematicBreak.MatchString(ln) {
			ruleLine = i
		}
	}

	if ruleLine > headingLine {
		return 0, true, true
	}
	if headingLine < 0 {
		return 0, false, false
	}
	return headingLevel, true, false
}

// EndsInsideHeading reports whether text has no trailing newline and its
// final, unterminated line is itself an ATX heading — meaning whatever
// comes right after text sits on the same line as that heading rather
// than as a new block.
func EndsInsideHeading(text string) (level int, ok bool) {
	if text == "" || strings.HasSuffix(text, "\n") {
		return 0, false
	}
	lastLine := text
	if idx := strings.LastIndexByte(text, '\n'); idx >= 0 {
		lastLine = text[idx+1:]
	}
	if m := atxPattern.FindStringSubmatch(lastLine); m != nil {
		return len(m[1]), true
	}
	return 0, false
}

package markdown

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SectionMatch identifies a heading section by literal title text,
// GitHub-style slug, or regular expression against the title.
type SectionMatch struct {
	Kind    string // "text" | "slug" | "regex"
	Pattern string
	Flags   string

	// Placeholder overrides the policy's template for sections this
	// match removes, mirroring a SectionRule's own local template.
	Placeholder string
}

func (m SectionMatch) matches(h Heading) (bool, error) {
	switch m.Kind {
	case "slug":
		return h.Slug == m.Pattern, nil
	case "text":
		return strings.EqualFold(strings.TrimSpace(h.Title), strings.TrimSpace(m.Pattern)), nil
	case "regex":
		pat := m.Pattern
		if strings.Contains(m.Flags, "i") {
			pat = "(?i)" + pat
		}
		re, err := regexp.Compile(pat)
		if err != nil {
			return false, err
		}
		return re.MatchString(h.Title), nil
	default:
		return false, nil
	}
}

// lineInterval is a half-open [Start,End) line range belonging to one
// matched heading's section (up to, but not including, the next
// heading at the same or shallower level).
type lineInterval struct {
	Start, End int
}

func sectionInterval(headings []Heading, idx int, totalLines int) lineInterval {
	h := headings[idx]
	end := totalLines
	for j := idx + 1; j < len(headings); j++ {
		if headings[j].Level <= h.Level {
			end = headings[j].Line
			break
		}
	}
	return lineInterval{Start: h.Line, End: end}
}

func mergeIntervals(ivs []lineInterval) []lineInterval {
	if len(ivs) == 0 {
		return nil
	}
	for i := 1; i < len(ivs); i++ {
		for j := i; j > 0 && ivs[j-1].Start > ivs[j].Start; j-- {
			ivs[j-1], ivs[j] = ivs[j], ivs[j-1]
		}
	}
	out := []lineInterval{ivs[0]}
	for _, iv := range ivs[1:] {
		last := &out[len(out)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// PlaceholderPolicy controls what, if anything, SelectKeep/SelectDrop
// leave behind in place of a removed heading section. Mode "none" (the
// zero value) deletes the range outright, matching the behavior section
// dropping always had before placeholders existed. Mode "summary"
// inserts one line per removed range, Template with "{title}", "{lines}",
// and "{bytes}" substituted for the section's heading title, the number
// of lines removed, and the approximate byte count removed.
type PlaceholderPolicy struct {
	Mode     string // "none" | "summary"
	Template string
}

// DefaultPlaceholderTemplate is used when Mode is "summary" and neither
// the policy nor the matching SectionMatch supplies its own template.
const DefaultPlaceholderTemplate = "> *(omitted: {title}, -{lines} lines)*"

// removedRange is one heading section excluded from the output, paired
// with enough context to render a placeholder line in its place.
type removedRange struct {
	Interval    lineInterval
	Title       string
	Placeholder string // per-match override; "" falls back to the policy template
}

func renderPlaceholder(r removedRange, lines []string, policy PlaceholderPolicy) string {
	if policy.Mode != "summary" {
		return ""
	}
	tmpl := strings.TrimSpace(r.Placeholder)
	if tmpl == "" {
		tmpl = strings.TrimSpace(policy.Template)
	}
	if tmpl == "" {
		tmpl = DefaultPlaceholderTemplate
	}

	title := r.Title
	if title == "" {
		title = "section"
	}
	removedLines := r.Interval.End - r.Interval.Start
	removedBytes := 0
	for _, ln := range lines[clampIndex(r.Interval.Start, len(lines)):clampIndex(r.Interval.End, len(lines))] {
		removedBytes += len(ln) + 1
	}

	out := strings.ReplaceAll(tmpl, "{title}", title)
	out = strings.ReplaceAll(out, "{lines}", strconv.Itoa(removedLines))
	out = strings.ReplaceAll(out, "{bytes}", strconv.Itoa(removedBytes))
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func mergeRemovedRanges(rs []removedRange) []removedRange {
	if len(rs) == 0 {
		return nil
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].Interval.Start < rs[j].Interval.Start })
	out := []removedRange{rs[0]}
	for _, r := range rs[1:] {
		last := &out[len(out)-1]
		if r.Interval.Start <= last.Interval.End {
			if r.Interval.End > last.Interval.End {
				last.Interval.End = r.Interval.End
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// applyRemovedRanges walks lines once, copying everything not covered
// by a removed range verbatim and splicing in one placeholder line
// (possibly empty, under PlaceholderPolicy{Mode: "none"}) per range.
func applyRemovedRanges(lines []string, removed []removedRange, policy PlaceholderPolicy) string {
	if len(removed) == 0 {
		return strings.Join(lines, "\n")
	}
	var out []string
	cur := 0
	for _, r := range removed {
		s, e := clampIndex(r.Interval.Start, len(lines)), clampIndex(r.Interval.End, len(lines))
		if e <= s {
			continue
		}
		if cur < s {
			out = append(out, lines[cur:s]...)
		}
		if ph := renderPlaceholder(r, lines, policy); ph != "" {
			out = append(out, ph)
		}
		cur = e
	}
	if cur < len(lines) {
		out = append(out, lines[cur:]...)
	}
	return strings.Join(out, "\n")
}

// SelectDrop removes every section whose heading matches any of
// matches, splicing in a placeholder per policy where each was removed.
func SelectDrop(text string, matches []SectionMatch, policy PlaceholderPolicy) (string, error) {
	lines := strings.Split(text, "\n")
	headings := ParseHeadings(lines)

	var removed []removedRange
	for i, h := range headings {
		for _, m := range matches {
			ok, err := m.matches(h)
			if err != nil {
				return "", err
			}
			if ok {
				removed = append(removed, removedRange{
					Interval:    sectionInterval(headings, i, len(lines)),
					Title:       h.Title,
					Placeholder: m.Placeholder,
				})
				break
			}
		}
	}
	return applyRemovedRanges(lines, mergeRemovedRanges(removed), policy), nil
}

// SelectKeep keeps only the sections whose heading matches any of
// matches (plus any text before the first heading), splicing a
// placeholder per policy into each gap it drops.
func SelectKeep(text string, matches []SectionMatch, policy PlaceholderPolicy) (string, error) {
	lines := strings.Split(text, "\n")
	headings := ParseHeadings(lines)
	titleAtLine := make(map[int]string, len(headings))
	for _, h := range headings {
		titleAtLine[h.Line] = h.Title
	}

	var keep []lineInterval
	if len(headings) > 0 && headings[0].Line > 0 {
		keep = append(keep, lineInterval{Start: 0, End: headings[0].Line})
	}
	for i, h := range headings {
		for _, m := range matches {
			ok, err := m.matches(h)
			if err != nil {
				return "", err
			}
			if ok {
				keep = append(keep, sectionInterval(headings, i, len(lines)))
				break
			}
		}
	}

	gaps := invertIntervals(mergeIntervals(keep), len(lines))
	removed := make([]removedRange, len(gaps))
	for i, g := range gaps {
		removed[i] = removedRange{Interval: g, Title: titleAtLine[g.Start]}
	}
	return applyRemovedRanges(lines, removed, policy), nil
}

func invertIntervals(ivs []lineInterval, total int) []lineInterval {
	var out []lineInterval
	cursor := 0
	for _, iv := range ivs {
		if iv.Start > cursor {
			out = append(out, lineInterval{Start: cursor, End: iv.Start})
		}
		if iv.End > cursor {
			cursor = iv.End
		}
	}
	if cursor < total {
		out = append(out, lineInterval{Start: cursor, End: total})
	}
	return out
}

func applyKeepLines(lines []string, keep []lineInterval) string {
	var out []string
	for _, iv := range keep {
		if iv.Start < 0 {
			iv.Start = 0
		}
		if iv.End > len(lines) {
			iv.End = len(lines)
		}
		out = append(out, lines[iv.Start:iv.End]...)
	}
	return strings.Join(out, "\n")
}

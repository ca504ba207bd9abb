// Package markdown normalizes Markdown-file placeholder content: H1
// stripping, heading-level shifting, and keep/drop section selection by
// GitHub-style slug, literal title, or regular expression, all of it
// aware of fenced code blocks so headings inside a ``` fence are never
// mistaken for document structure.
package markdown

import (
	"regexp"
	"strings"
)

var (
	slugDropRe = regexp.MustCompile(`[^a-z0-9\- ]+`)
	slugDashRe = regexp.MustCompile(`-{2,}`)
)

// Slugify approximates GitHub's heading-anchor slug algorithm: fold to
// lower case, turn whitespace runs into single hyphens, drop anything
// that isn't a letter/digit/hyphen, collapse repeated hyphens, and trim
// hyphens from both ends.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		b.WriteRune(r)
	}
	t := b.String()
	t = strings.Join(strings.Fields(t), " ")
	t = strings.ReplaceAll(t, " ", "-")
	t = slugDropRe.ReplaceAllString(t, "")
	t = slugDashRe.ReplaceAllString(t, "-")
	return strings.Trim(t, "-")
}

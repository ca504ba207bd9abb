package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugifyGitHubStyle(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello, World!"))
	assert.Equal(t, "a-b-c", Slugify("  A   B---C  "))
}

func TestParseHeadingsSkipsFencedCode(t *testing.T) {
	src := "# Title\n\n```\n# not a heading\n```\n\n## Real\n"
	headings := ParseHeadings(splitLines(src))
	require.Len(t, headings, 2)
	assert.Equal(t, "Title", headings[0].Title)
	assert.Equal(t, "Real", headings[1].Title)
}

func TestNormalizeStripsSingleH1(t *testing.T) {
	src := "# Title\n\nBody text\n"
	out, result, err := Normalize(src, NormalizeOptions{StripSingleH1: true, GroupSize: 1})
	require.NoError(t, err)
	assert.True(t, result.RemovedH1)
	assert.NotContains(t, out, "# Title")
	assert.Contains(t, out, "Body text")
}

func TestNormalizeShiftsHeadingLevels(t *testing.T) {
	lvl := 2
	src := "# One\n\n## Two\n"
	out, result, err := Normalize(src, NormalizeOptions{MaxHeadingLevel: &lvl})
	require.NoError(t, err)
	assert.True(t, result.Shifted)
	assert.Contains(t, out, "## One")
	assert.Contains(t, out, "### Two")
}

func TestNormalizeLeavesFencedHeadingsAlone(t *testing.T) {
	lvl := 2
	src := "# One\n\n```\n# inside fence\n```\n"
	out, _, err := Normalize(src, NormalizeOptions{MaxHeadingLevel: &lvl})
	require.NoError(t, err)
	assert.Contains(t, out, "# inside fence")
}

func TestNormalizeSkipsShiftWhenMixed(t *testing.T) {
	lvl := 2
	src := "# One\n\n## Two\n"
	out, result, err := Normalize(src, NormalizeOptions{MaxHeadingLevel: &lvl, Mixed: true})
	require.NoError(t, err)
	assert.False(t, result.Shifted)
	assert.Contains(t, out, "# One")
	assert.Contains(t, out, "## Two")
}

func TestNormalizeAppliesDropSectionsAfterShift(t *testing.T) {
	lvl := 2
	src := "# Doc\n\nIntro\n\n## Secret\n\nhidden\n"
	out, _, err := Normalize(src, NormalizeOptions{
		MaxHeadingLevel: &lvl,
		DropSections:    []SectionMatch{{Kind: "text", Pattern: "Secret"}},
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "## Doc")
}

func TestSelectDropRemovesMatchedSection(t *testing.T) {
	src := "# Doc\n\nIntro\n\n## Secret\n\nhidden\n\n## Public\n\nvisible\n"
	out, err := SelectDrop(src, []SectionMatch{{Kind: "text", Pattern: "Secret"}}, PlaceholderPolicy{Mode: "none"})
	require.NoError(t, err)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestSelectKeepOnlyMatchedSections(t *testing.T) {
	src := "# Doc\n\nIntro\n\n## Keep Me\n\nstay\n\n## Drop Me\n\ngo\n"
	out, err := SelectKeep(src, []SectionMatch{{Kind: "slug", Pattern: "keep-me"}}, PlaceholderPolicy{Mode: "none"})
	require.NoError(t, err)
	assert.Contains(t, out, "stay")
	assert.NotContains(t, out, "go\n")
	assert.NotContains(t, out, "Intro")
}

func TestSelectDropInsertsPlaceholderWhenSummaryMode(t *testing.T) {
	src := "# Doc\n\nIntro\n\n## Secret\n\nhidden\nstuff\n\n## Public\n\nvisible\n"
	out, err := SelectDrop(src, []SectionMatch{{Kind: "text", Pattern: "Secret"}}, PlaceholderPolicy{
		Mode:     "summary",
		Template: "> omitted {title}, {lines} lines, {bytes} bytes",
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "> omitted Secret, 5 lines,")
	assert.Contains(t, out, "visible")
}

func TestSelectDropPerMatchPlaceholderOverridesPolicyTemplate(t *testing.T) {
	src := "# Doc\n\n## Secret\n\nhidden\n"
	out, err := SelectDrop(src, []SectionMatch{{Kind: "text", Pattern: "Secret", Placeholder: "> custom for {title}"}}, PlaceholderPolicy{
		Mode:     "summary",
		Template: "> default for {title}",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "> custom for Secret")
	assert.NotContains(t, out, "> default for")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

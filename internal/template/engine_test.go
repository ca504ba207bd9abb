package template_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxmoro/lg-render/internal/modesconfig"
	tpl "github.com/maxmoro/lg-render/internal/template"
	"github.com/maxmoro/lg-render/internal/template/plugins/adaptive"
	"github.com/maxmoro/lg-render/internal/template/plugins/common"
	mdplugin "github.com/maxmoro/lg-render/internal/template/plugins/markdown"
	"github.com/maxmoro/lg-render/internal/template/plugins/task"
)

type fakeSections struct {
	byOriginAndName map[string]string
}

func (f *fakeSections) Load(origin, kind, name string) (string, string, error) {
	key := fmt.Sprintf("%s/%s:%s", origin, kind, name)
	src, ok := f.byOriginAndName[key]
	if !ok {
		return "", "", fmt.Errorf("no such %s %q in origin %q", kind, name, origin)
	}
	return src, origin, nil
}

// Render implements tpl.SectionHandler: for this fake, a section ref
// resolves to the same raw text a "section" kind Load would — good
// enough to exercise the render-time call boundary without a real file
// walker / adapter pipeline.
func (f *fakeSections) Render(origin, name string) (string, error) {
	src, _, err := f.Load(origin, "section", name)
	return src, err
}

func newTestEngine(t *testing.T, sections *fakeSections) *tpl.Engine {
	t.Helper()
	eng, err := tpl.NewEngine(sections, sections, common.New(), adaptive.New(), mdplugin.New(), task.New())
	require.NoError(t, err)
	return eng
}

func TestRenderPlainText(t *testing.T) {
	eng := newTestEngine(t, &fakeSections{})
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "hello world"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestRenderSectionInclude(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"self/section:greeting": "Hi there",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "${greeting}!"})
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", out)
}

func TestRenderTplInclude(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"self/tpl:footer": "--footer--",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "body\n${tpl:footer}"})
	require.NoError(t, err)
	assert.Equal(t, "body\n--footer--", out)
}

func TestRenderConditionalBlock(t *testing.T) {
	eng := newTestEngine(t, &fakeSections{})
	src := "{% if tag:python %}py{% else %}other{% endif %}"
	out, err := eng.Render(tpl.RenderInput{
		RootOrigin: "self",
		RootSource: src,
		BaseTags:   map[string]bool{"python": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "py", out)

	out, err = eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: src})
	require.NoError(t, err)
	assert.Equal(t, "other", out)
}

func TestRenderElifChain(t *testing.T) {
	eng := newTestEngine(t, &fakeSections{})
	src := "{% if tag:a %}A{% elif tag:b %}B{% elif tag:c %}C{% else %}Z{% endif %}"
	out, err := eng.Render(tpl.RenderInput{
		RootOrigin: "self",
		RootSource: src,
		BaseTags:   map[string]bool{"b": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "B", out)
}

func TestRenderModeBlock(t *testing.T) {
	eng := newTestEngine(t, &fakeSections{})
	src := "{% mode verbosity:fast %}quick{% endmode %}"
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: src})
	require.NoError(t, err)
	assert.Equal(t, "quick", out)
}

func TestRenderCommentProducesNoOutput(t *testing.T) {
	eng := newTestEngine(t, &fakeSections{})
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "a{# hidden #}b"})
	require.NoError(t, err)
	assert.Equal(t, "ab", out)
}

func TestRenderTaskPlaceholderWithFallback(t *testing.T) {
	eng := newTestEngine(t, &fakeSections{})
	src := `${task:prompt:"default work"}`
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: src})
	require.NoError(t, err)
	assert.Equal(t, "default work", out)

	out, err = eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: src, Options: tpl.RenderOptions{TaskText: "ship it"}})
	require.NoError(t, err)
	assert.Equal(t, "ship it", out)
}

func TestRenderMarkdownFilePlaceholder(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"self/md:docs/overview.md": "# Title\n\nBody content\n",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "${md:docs/overview.md}"})
	require.NoError(t, err)
	// No preceding heading: the placeholder keeps its own H1 rather than
	// stripping it, and shifts to level 1 (a no-op here, since it's
	// already a single H1).
	assert.Contains(t, out, "# Title")
	assert.Contains(t, out, "Body content")
}

func TestRenderMarkdownFilePlaceholderStripsH1WhenNotChainedUnderHeading(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"self/md:docs/overview.md": "# Title\n\nBody content\n",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "## Section\n\n${md:docs/overview.md}"})
	require.NoError(t, err)
	// Preceding heading is level 2: max_heading_level defaults to 3, and
	// since this placeholder isn't chained with a sibling Markdown-file
	// reference, strip_h1 defaults to true — the included file's own H1
	// is redundant with "## Section" and is dropped rather than shifted.
	assert.NotContains(t, out, "Title")
	assert.Contains(t, out, "Body content")
}

func TestRenderMarkdownFilePlaceholderChainKeepsEachH1(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"self/md:docs/a.md": "# A\n\nFirst\n",
		"self/md:docs/b.md": "# B\n\nSecond\n",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "## Section\n\n${md:docs/a.md}${md:docs/b.md}"})
	require.NoError(t, err)
	// Two consecutive Markdown-file references with no intervening
	// heading form a chain: strip_h1 is false for both, so each keeps
	// its own (shifted) heading rather than one swallowing the other's.
	assert.Contains(t, out, "### A")
	assert.Contains(t, out, "### B")
	assert.Contains(t, out, "First")
	assert.Contains(t, out, "Second")
}

func TestRenderMarkdownFilePlaceholderIsolatedByRule(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"self/md:docs/overview.md": "# Title\n\nBody content\n",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "## Section\n\n---\n\n${md:docs/overview.md}"})
	require.NoError(t, err)
	// The horizontal rule isolates the preceding heading: treated as if
	// there were no parent heading at all.
	assert.Contains(t, out, "# Title")
	assert.Contains(t, out, "Body content")
}

func TestRenderMarkdownFileGuardSkipsWhenTagInactive(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"self/md:docs/overview.md": "# Title\n\nBody content\n",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "${md:docs/overview.md,if:tag:include_docs}"})
	require.NoError(t, err)
	assert.NotContains(t, out, "Body content")
}

func TestRenderMarkdownFileGuardEmitsWhenTagActive(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"self/md:docs/overview.md": "# Title\n\nBody content\n",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{
		RootOrigin: "self",
		RootSource: "${md:docs/overview.md,if:tag:include_docs}",
		BaseTags:   map[string]bool{"include_docs": true},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Body content")
}

func TestRenderMarkdownFileAddressedOrigin(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"services/api/md:README.md": "# API\n\nDetails\n",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "${@services/api:md:README.md}"})
	require.NoError(t, err)
	assert.Contains(t, out, "Details")
}

func TestRenderMarkdownFileBracketedAddressedOrigin(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"services/api/md:README.md": "# API\n\nDetails\n",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "${@[services/api]:md:README.md}"})
	require.NoError(t, err)
	assert.Contains(t, out, "Details")
}

func TestRenderMarkdownFileGlobPath(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"self/md:docs/*.md": "A\n\nB\n",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "${md:docs/*.md}"})
	require.NoError(t, err)
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "B")
}

func TestRenderDetectsIncludeCycle(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"self/tpl:a": "${tpl:b}",
		"self/tpl:b": "${tpl:a}",
	}}
	eng := newTestEngine(t, sections)
	_, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "${tpl:a}"})
	require.Error(t, err)
}

func TestRenderModeActivatesConfiguredTags(t *testing.T) {
	eng := newTestEngine(t, &fakeSections{})
	eng.Modes = &modesconfig.Config{
		ModeSets: map[string]map[string]modesconfig.ModeDef{
			"verbosity": {
				"fast": {Tags: []string{"fast"}, Options: map[string]any{"max_heading_level": 2}},
			},
		},
	}
	src := "{% mode verbosity:fast %}{% if tag:fast %}on{% else %}off{% endif %}{% endmode %}"
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: src})
	require.NoError(t, err)
	assert.Equal(t, "on", out)
}

func TestRenderModeUnknownModeErrors(t *testing.T) {
	eng := newTestEngine(t, &fakeSections{})
	eng.Modes = &modesconfig.Config{
		ModeSets: map[string]map[string]modesconfig.ModeDef{"verbosity": {}},
	}
	src := "{% mode verbosity:ghost %}x{% endmode %}"
	_, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: src})
	require.Error(t, err)
}

func TestRenderModeTagsDoNotLeakAfterExit(t *testing.T) {
	eng := newTestEngine(t, &fakeSections{})
	eng.Modes = &modesconfig.Config{
		ModeSets: map[string]map[string]modesconfig.ModeDef{
			"verbosity": {"fast": {Tags: []string{"fast"}}},
		},
	}
	src := "{% mode verbosity:fast %}in{% endmode %}{% if tag:fast %}leaked{% else %}clean{% endif %}"
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: src})
	require.NoError(t, err)
	assert.Equal(t, "inclean", out)
}

func TestRenderAddressedSectionReference(t *testing.T) {
	sections := &fakeSections{byOriginAndName: map[string]string{
		"docs/other.md/section:note": "a note",
	}}
	eng := newTestEngine(t, sections)
	out, err := eng.Render(tpl.RenderInput{RootOrigin: "self", RootSource: "${@docs/other.md:note}"})
	require.NoError(t, err)
	assert.Equal(t, "a note", out)
}

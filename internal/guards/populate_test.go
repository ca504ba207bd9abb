package guards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxmoro/lg-render/internal/modesconfig"
)

func TestPopulateDocumentStateDetectsFrontmatter(t *testing.T) {
	gctx := PopulateDocumentState("doc", "---\ntitle: x\n---\nbody", nil)
	assert.True(t, gctx.HasFrontmatter)

	gctx = PopulateDocumentState("doc", "no frontmatter here", nil)
	assert.False(t, gctx.HasFrontmatter)
}

func TestPopulateDocumentStateCountsTaskPlaceholders(t *testing.T) {
	src := `${task} and ${task:prompt:"default"} and ${other_section}`
	gctx := PopulateDocumentState("doc", src, nil)
	assert.Equal(t, 1, gctx.BareTaskPlaceholderCount)
	assert.Equal(t, 1, gctx.FallbackTaskPlaceholderCount)
	assert.Equal(t, 1, gctx.SectionReferenceCount)
}

func TestPopulateDocumentStateExtractsModeReferences(t *testing.T) {
	src := `{% mode language:python %}py stuff{% endmode %}`
	gctx := PopulateDocumentState("doc", src, nil)
	require.Len(t, gctx.ModeReferences, 1)
	assert.Equal(t, ModeReference{Set: "language", Mode: "python"}, gctx.ModeReferences[0])
}

func TestPopulateDocumentStateTracksConditionalDepth(t *testing.T) {
	flat := `{% if a %}x{% endif %}`
	assert.Equal(t, 1, PopulateDocumentState("doc", flat, nil).MaxConditionalDepth)

	nested := `{% if a %}{% if b %}{% if c %}x{% endif %}{% endif %}{% endif %}`
	assert.Equal(t, 3, PopulateDocumentState("doc", nested, nil).MaxConditionalDepth)

	sequential := `{% if a %}x{% endif %}{% if b %}y{% endif %}`
	assert.Equal(t, 1, PopulateDocumentState("doc", sequential, nil).MaxConditionalDepth)
}

func TestPopulateDocumentStateKnownModesFromConfig(t *testing.T) {
	modes := &modesconfig.Config{
		ModeSets: map[string]map[string]modesconfig.ModeDef{
			"language": {
				"python":     modesconfig.ModeDef{},
				"javascript": modesconfig.ModeDef{},
			},
		},
	}
	gctx := PopulateDocumentState("doc", "", modes)
	require.Contains(t, gctx.KnownModes, "language")
	assert.True(t, gctx.KnownModes["language"]["python"])
	assert.False(t, gctx.KnownModes["language"]["go"])
}

func TestPopulateDocumentStateNilModesYieldsNoKnownModes(t *testing.T) {
	gctx := PopulateDocumentState("doc", "", nil)
	assert.Empty(t, gctx.KnownModes)
}

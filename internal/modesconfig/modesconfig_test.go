package modesconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
tag_sets:
  verbosity:
    - fast
    - thorough
mode_sets:
  verbosity:
    fast:
      tags: [fast]
      options:
        max_heading_level: 2
    thorough:
      tags: [thorough]
      options:
        max_heading_level: 4
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "modes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesTagSetsAndModeSets(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fast", "thorough"}, cfg.TagSets["verbosity"])
}

func TestTagSetMembershipBuildsLookupMap(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	membership := cfg.TagSetMembership()
	assert.True(t, membership["verbosity"]["fast"])
	assert.True(t, membership["verbosity"]["thorough"])
	assert.False(t, membership["verbosity"]["other"])
}

func TestActivateReturnsTagsAndOptions(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	tags, opts, ok := cfg.Activate("verbosity", "fast")
	require.True(t, ok)
	assert.Equal(t, []string{"fast"}, tags)
	assert.Equal(t, 2, opts["max_heading_level"])
}

func TestActivateMissingModeSetOrMode(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	_, _, ok := cfg.Activate("nope", "fast")
	assert.False(t, ok)

	_, _, ok = cfg.Activate("verbosity", "nope")
	assert.False(t, ok)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

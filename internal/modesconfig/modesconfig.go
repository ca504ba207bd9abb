// Package modesconfig implements the "adaptive_loader" external
// supplier: a YAML file describing tag-sets (mutually-exclusive tag
// families consumed by the TAGSET condition) and mode-sets (named
// presets that activate a fixed tag set and override render options),
// consumed by the condition evaluator and the mode processor.
package modesconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModeDef is one named preset within a mode-set: the tags it activates
// and the option overrides it applies while active.
type ModeDef struct {
	Tags    []string       `yaml:"tags"`
	Options map[string]any `yaml:"options"`
}

// Config is the parsed tag-set/mode-set configuration.
type Config struct {
	TagSets  map[string][]string        `yaml:"tag_sets"`
	ModeSets map[string]map[string]ModeDef `yaml:"mode_sets"`
}

// Load reads and parses a tag/mode configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mode config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing mode config %s: %w", path, err)
	}
	return &cfg, nil
}

// TagSetMembership returns the internal/conditions.Context-shaped view
// of tag-sets: set name -> (member tag name -> true). Every tag named in
// TagSets is a member of its set regardless of activation state; the
// condition evaluator itself decides, from ActiveTags, whether a given
// TAGSET query is satisfied.
func (c *Config) TagSetMembership() map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(c.TagSets))
	for set, tags := range c.TagSets {
		members := make(map[string]bool, len(tags))
		for _, t := range tags {
			members[t] = true
		}
		out[set] = members
	}
	return out
}

// Activate looks up a modeset:mode pair, returning the tags it activates
// and its option overrides. Missing mode-sets or modes are reported via
// ok=false so the caller can raise a named error rather than silently
// no-op.
func (c *Config) Activate(modeSet, mode string) (tags []string, options map[string]any, ok bool) {
	set, ok := c.ModeSets[modeSet]
	if !ok {
		return nil, nil, false
	}
	def, ok := set[mode]
	if !ok {
		return nil, nil, false
	}
	return def.Tags, def.Options, true
}

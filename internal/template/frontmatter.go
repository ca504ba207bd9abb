package template

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the optional YAML block at the top of a context file,
// fenced by a leading and trailing "---" line. Only the "include" key
// (a string or a list of strings) is decoded; other keys are ignored.
// The block is stripped and never rendered, and the engine takes no
// further action on Include.
type Frontmatter struct {
	Include []string
}

func (f *Frontmatter) IsEmpty() bool { return f == nil || len(f.Include) == 0 }

var frontmatterPattern = regexp.MustCompile(`(?s)\A---[ \t]*\n(.*?)\n---[ \t]*\n?`)

type rawFrontmatter struct {
	Include any `yaml:"include"`
}

// ParseFrontmatter extracts and parses a leading YAML frontmatter block
// from text, returning the parsed frontmatter (nil if text has none or
// the block is not a valid mapping) and the remaining text with the
// frontmatter stripped.
func ParseFrontmatter(text string) (*Frontmatter, string) {
	if !strings.HasPrefix(text, "---") {
		return nil, text
	}
	loc := frontmatterPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, text
	}
	yamlBody := text[loc[2]:loc[3]]
	remaining := text[loc[1]:]

	var raw rawFrontmatter
	if err := yaml.Unmarshal([]byte(yamlBody), &raw); err != nil {
		return nil, text
	}

	fm := &Frontmatter{}
	switch v := raw.Include.(type) {
	case string:
		fm.Include = []string{v}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				fm.Include = append(fm.Include, s)
			}
		}
	}
	return fm, remaining
}

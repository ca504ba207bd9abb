// Package sections implements the default, minimal "section service":
// a thin wrapper over a file walker and a glob filter that fulfils both
// halves of the section-service boundary the template engine consumes —
// tpl.SectionProvider (loading templates, context fragments, and
// Markdown files by path) and tpl.SectionHandler (rendering a named
// section reference into fenced-code-block text).
//
// This is not a production-grade file walker (it does not honor
// .gitignore, nor run per-language adapters beyond a language-tag guess
// from file extension); it exists so the engine is independently
// exercisable end to end against real files on disk.
package sections

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Fragment is the parsed form of a *.sec.yaml file: a named, reusable
// filter describing which files under a directory belong to a section.
// Treated as opaque by the core template engine; only this package's
// Provider interprets it.
type Fragment struct {
	// Glob is a relative glob pattern (matched against the path below
	// Dir, POSIX-style) selecting candidate files. Defaults to "**/*" if
	// empty (meaning: every file, before Allow/Block filtering).
	Glob string `yaml:"glob"`
	// Allow is a whitelist of glob patterns; if non-empty, a file must
	// match at least one to be included.
	Allow []string `yaml:"allow"`
	// Block is a blacklist of glob patterns; a file matching any of
	// these is excluded even if it matched Allow.
	Block []string `yaml:"block"`
}

// loadFragment reads and parses a *.sec.yaml file.
func loadFragment(path string) (*Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading section fragment %s: %w", path, err)
	}
	var frag Fragment
	if err := yaml.Unmarshal(data, &frag); err != nil {
		return nil, fmt.Errorf("parsing section fragment %s: %w", path, err)
	}
	return &frag, nil
}

// matches reports whether relPath (POSIX-style, relative to the
// fragment's directory) is selected by frag.
func (frag *Fragment) matches(relPath string) (bool, error) {
	if frag.Glob != "" {
		ok, err := filepath.Match(frag.Glob, relPath)
		if err != nil {
			return false, err
		}
		if !ok {
			// Glob may be a basename-only pattern (e.g. "*.go"); also try
			// matching just the final path segment.
			ok, err = filepath.Match(frag.Glob, filepath.Base(relPath))
			if err != nil {
				return false, err
			}
		}
		if !ok {
			return false, nil
		}
	}

	for _, block := range frag.Block {
		if ok, _ := filepath.Match(block, relPath); ok {
			return false, nil
		}
	}

	if len(frag.Allow) == 0 {
		return true, nil
	}
	for _, allow := range frag.Allow {
		if ok, _ := filepath.Match(allow, relPath); ok {
			return true, nil
		}
	}
	return false, nil
}

package sections

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/maxmoro/lg-render/internal/cache"
)

// toolVersion tags cache entries written by this Provider; bump it if the
// section-fragment rendering logic changes shape so stale cache entries
// from a previous version are never reused.
const toolVersion = "lg-sections/1"

// Provider is the default tpl.SectionProvider + tpl.SectionHandler: a
// repository rooted at Root, where an origin is either "self" (Root
// itself) or a repo-relative POSIX path to a nested configuration root.
// Each scope's templates and fragments live under its own lg-cfg/ tree.
// Cache, if set, memoizes a fragment's rendered fenced-block text (the
// processed-blob cache) so repeated renders of an unchanged fragment skip
// re-reading and re-concatenating its matched files.
type Provider struct {
	Root  string
	Cache *cache.Cache
}

// New returns a Provider rooted at the given absolute repository path, with
// no processed-blob cache in front of it.
func New(root string) *Provider {
	return &Provider{Root: root}
}

// NewCached returns a Provider rooted at root whose section renders are
// memoized in c.
func NewCached(root string, c *cache.Cache) *Provider {
	return &Provider{Root: root, Cache: c}
}

// scopeDir resolves an origin to its absolute configuration directory.
func (p *Provider) scopeDir(origin string) string {
	if origin == "" || origin == "self" {
		return filepath.Join(p.Root, "lg-cfg")
	}
	return filepath.Join(p.Root, filepath.FromSlash(origin), "lg-cfg")
}

// Load implements tpl.SectionProvider. kind is "tpl", "ctx", or "md".
// A "md" name containing a '*' is a glob: every matching file in origin's
// scope directory is read, in sorted path order, and concatenated with a
// blank line between members. A glob matching nothing is not an error —
// it resolves to an empty string, since a wildcard is inherently
// best-effort about what actually exists.
func (p *Provider) Load(origin, kind, name string) (string, string, error) {
	dir := p.scopeDir(origin)

	switch kind {
	case "tpl":
		return p.loadFile(dir, name+".tpl.md", kind, name, origin)
	case "ctx":
		return p.loadFile(dir, name+".ctx.md", kind, name, origin)
	case "md":
		if strings.Contains(name, "*") {
			return p.loadGlob(dir, name, origin)
		}
		return p.loadFile(dir, name, kind, name, origin)
	default:
		return "", "", fmt.Errorf("unsupported load kind %q", kind)
	}
}

func (p *Provider) loadFile(dir, rel, kind, name, origin string) (string, string, error) {
	full := filepath.Join(dir, filepath.FromSlash(rel))
	data, err := os.ReadFile(full)
	if err != nil {
		return "", "", fmt.Errorf("loading %s %q from origin %q: %w", kind, name, origin, err)
	}
	return string(data), origin, nil
}

func (p *Provider) loadGlob(dir, pattern, origin string) (string, string, error) {
	full := filepath.Join(dir, filepath.FromSlash(pattern))
	matches, err := filepath.Glob(full)
	if err != nil {
		return "", "", fmt.Errorf("invalid glob %q in origin %q: %w", pattern, origin, err)
	}
	sort.Strings(matches)

	var b strings.Builder
	for i, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			return "", "", fmt.Errorf("loading glob member %q from origin %q: %w", m, origin, err)
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.Write(data)
	}
	return b.String(), origin, nil
}

// Render implements tpl.SectionHandler. It locates the *.sec.yaml
// fragment named name in origin's lg-cfg/ directory, walks the scope
// directory applying the fragment's filter, and emits the matched files
// as language-tagged fenced code blocks with per-file path markers — a
// minimal section service, without a real per-language adapter in front
// of it.
func (p *Provider) Render(origin, name string) (string, error) {
	dir := p.scopeDir(origin)
	fragPath := filepath.Join(dir, name+".sec.yaml")

	frag, err := loadFragment(fragPath)
	if err != nil {
		return "", fmt.Errorf("resolving section %q in origin %q: %w", name, origin, err)
	}

	matches, err := p.collect(dir, frag)
	if err != nil {
		return "", err
	}
	sort.Strings(matches)

	var key cache.Key
	if p.Cache != nil {
		fragInfo, err := os.Stat(fragPath)
		if err == nil {
			key = cache.Key{
				AbsolutePath:             fragPath,
				ModTimeNanos:             fragInfo.ModTime().UnixNano(),
				Size:                     fragInfo.Size(),
				AdapterName:              "lg-sections.Provider.Render",
				AdapterConfigFingerprint: groupFingerprint(dir, matches),
				GroupSize:                len(matches),
				ToolVersion:              toolVersion,
			}
			if blob, ok := p.Cache.Get(key); ok {
				return blob.Text, nil
			}
		}
	}

	var b strings.Builder
	for _, rel := range matches {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return "", fmt.Errorf("reading section %q file %q: %w", name, rel, err)
		}
		fmt.Fprintf(&b, "```%s path=%s\n", languageTag(rel), rel)
		b.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			b.WriteByte('\n')
		}
		b.WriteString("```\n\n")
	}
	out := strings.TrimRight(b.String(), "\n")

	if p.Cache != nil && key.ToolVersion != "" {
		p.Cache.Put(key, out, nil, time.Now())
	}
	return out, nil
}

// groupFingerprint builds a fingerprint string from each matched file's
// relative path, size, and mtime, so the cached blob invalidates whenever
// the matched file set or any member's content changes, without needing to
// hash every file's full content.
func groupFingerprint(dir string, matches []string) string {
	var b strings.Builder
	for _, rel := range matches {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			fmt.Fprintf(&b, "%s:missing;", rel)
			continue
		}
		fmt.Fprintf(&b, "%s:%d:%d;", rel, info.Size(), info.ModTime().UnixNano())
	}
	return b.String()
}

// collect walks dir and returns the POSIX-style relative paths the
// fragment's filter selects.
func (p *Provider) collect(dir string, frag *Fragment) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(dir, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, fullPath)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasSuffix(rel, ".sec.yaml") {
			return nil
		}
		ok, err := frag.matches(rel)
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking section scope %s: %w", dir, err)
	}
	return matches, nil
}

// languageTag guesses a fenced-code-block language tag from a file
// extension, falling back to no tag for unrecognized extensions.
func languageTag(relPath string) string {
	switch strings.ToLower(path.Ext(relPath)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js":
		return "javascript"
	case ".ts":
		return "typescript"
	case ".md":
		return "markdown"
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".sh":
		return "bash"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

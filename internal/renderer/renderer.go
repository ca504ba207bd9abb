// Package renderer wires the template engine (internal/template), the
// section service and its processed-blob cache (internal/sections,
// internal/cache), and the adaptive_loader supplier (internal/modesconfig)
// into the single top-level operation: a rendering that takes a
// repository root plus a small set of per-call options and produces one
// UTF-8 string.
package renderer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maxmoro/lg-render/internal/cache"
	"github.com/maxmoro/lg-render/internal/config"
	"github.com/maxmoro/lg-render/internal/modesconfig"
	"github.com/maxmoro/lg-render/internal/sections"
	tpl "github.com/maxmoro/lg-render/internal/template"
	"github.com/maxmoro/lg-render/internal/template/plugins/adaptive"
	"github.com/maxmoro/lg-render/internal/template/plugins/common"
	"github.com/maxmoro/lg-render/internal/template/plugins/markdown"
	"github.com/maxmoro/lg-render/internal/template/plugins/task"
)

// Options are the per-rendering inputs (task_text, extra_tags), plus
// RootTemplate: the repo-relative origin-qualified document to render.
// task_text/extra_tags form an open record — the host still has to name
// which document it wants rendered, so RootTemplate is this renderer's
// one addition to that open record.
type Options struct {
	// RootTemplate names the document to render, as "kind:name" (e.g.
	// "tpl:system") optionally origin-qualified ("@services/api:tpl:name"),
	// using the same forms as an include reference. kind is "tpl" or "ctx".
	RootTemplate string
	TaskText     string
	ExtraTags    []string
}

// Renderer is a ready-to-use rendering pipeline bound to one repository
// root.
type Renderer struct {
	root     string
	provider *sections.Provider
	engine   *tpl.Engine
}

// New builds a Renderer from a loaded config: it opens the processed-blob
// cache under cfg.Repo.CacheDir (relative to cfg.Repo.Root), loads the
// adaptive_loader configuration from cfg.Repo.ModesConfig if present, and
// assembles the template engine with every bundled plugin.
func New(cfg *config.Config) (*Renderer, error) {
	root, err := filepath.Abs(cfg.Repo.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving repo root %s: %w", cfg.Repo.Root, err)
	}

	cacheDir := cfg.Repo.CacheDir
	if !filepath.IsAbs(cacheDir) {
		cacheDir = filepath.Join(root, cacheDir)
	}
	c := cache.New(cacheDir, cfg.Repo.CacheEnable)
	provider := sections.NewCached(root, c)

	eng, err := tpl.NewEngine(provider, provider, common.New(), adaptive.New(), markdown.New(), task.New())
	if err != nil {
		return nil, fmt.Errorf("assembling template engine: %w", err)
	}

	modesPath := cfg.Repo.ModesConfig
	if !filepath.IsAbs(modesPath) {
		modesPath = filepath.Join(root, modesPath)
	}
	if _, statErr := os.Stat(modesPath); statErr == nil {
		modes, loadErr := modesconfig.Load(modesPath)
		if loadErr != nil {
			return nil, fmt.Errorf("loading adaptive_loader config: %w", loadErr)
		}
		eng.Modes = modes
	}

	return &Renderer{root: root, provider: provider, engine: eng}, nil
}

// Render resolves opts.RootTemplate against the repository root, parses,
// resolves, and renders it end to end, returning the single assembled
// output string.
func (r *Renderer) Render(opts Options) (string, error) {
	kind, origin, name, err := parseRootTemplate(opts.RootTemplate)
	if err != nil {
		return "", err
	}

	src, resolvedOrigin, err := r.provider.Load(origin, kind, name)
	if err != nil {
		return "", fmt.Errorf("loading root document %q: %w", opts.RootTemplate, err)
	}

	var tagSets map[string]map[string]bool
	if r.engine.Modes != nil {
		tagSets = r.engine.Modes.TagSetMembership()
	}

	baseTags := make(map[string]bool, len(opts.ExtraTags))
	for _, t := range opts.ExtraTags {
		baseTags[t] = true
	}

	out, err := r.engine.Render(tpl.RenderInput{
		RootOrigin: resolvedOrigin,
		RootSource: src,
		BaseTags:   baseTags,
		TagSets:    tagSets,
		Options: tpl.RenderOptions{
			TaskText:  opts.TaskText,
			ExtraTags: opts.ExtraTags,
		},
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// Source loads and returns the raw, unparsed text of a root template
// reference, for tooling (lint, preview) that needs the document body
// without running it through the engine.
func (r *Renderer) Source(rootTemplate string) (string, error) {
	kind, origin, name, err := parseRootTemplate(rootTemplate)
	if err != nil {
		return "", err
	}
	src, _, err := r.provider.Load(origin, kind, name)
	if err != nil {
		return "", fmt.Errorf("loading root document %q: %w", rootTemplate, err)
	}
	return src, nil
}

// Modes returns the adaptive_loader configuration loaded from
// cfg.Repo.ModesConfig, or nil if none was present.
func (r *Renderer) Modes() *modesconfig.Config {
	return r.engine.Modes
}

// parseRootTemplate splits a RootTemplate string into its origin-qualified
// kind and name, using the include reference forms: "kind:name" or
// "@origin:kind:name".
func parseRootTemplate(spec string) (kind, origin, name string, err error) {
	if spec == "" {
		return "", "", "", fmt.Errorf("root template reference is required")
	}

	rest := spec
	origin = "self"
	if rest[0] == '@' {
		idx := strings.IndexByte(rest, ':')
		if idx < 0 {
			return "", "", "", fmt.Errorf("malformed origin-qualified root template reference %q", spec)
		}
		origin = rest[1:idx]
		rest = rest[idx+1:]
	}

	idx := strings.IndexByte(rest, ':')
	if idx < 0 {
		return "", "", "", fmt.Errorf("root template reference %q must be kind:name", spec)
	}
	kind = rest[:idx]
	name = rest[idx+1:]
	if kind != "tpl" && kind != "ctx" {
		return "", "", "", fmt.Errorf("root template reference %q has unsupported kind %q (want tpl or ctx)", spec, kind)
	}
	if name == "" {
		return "", "", "", fmt.Errorf("root template reference %q is missing a name", spec)
	}
	return kind, origin, name, nil
}

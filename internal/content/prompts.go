// Package content provides MCP prompts and resources for the lg-render server.
package content

import "github.com/maxmoro/lg-render/internal/mcp"

// --- author-template prompt ---

// AuthorTemplatePrompt is an actionable prompt that guides writing a new
// .tpl.md/.ctx.md template file.
type AuthorTemplatePrompt struct{}

func (p *AuthorTemplatePrompt) Definition() mcp.PromptDefinition {
	return mcp.PromptDefinition{
		Name:        "author-template",
		Description: "Interactive guide for authoring a .tpl.md or .ctx.md template file: placeholders, directives, and frontmatter.",
		Arguments:   []mcp.PromptArgument{},
	}
}

func (p *AuthorTemplatePrompt) Get(arguments map[string]string) (*mcp.PromptsGetResult, error) {
	return &mcp.PromptsGetResult{
		Description: "Guide for authoring a template file",
		Messages: []mcp.PromptMessage{
			{
				Role:    "user",
				Content: mcp.TextContent(authorTemplateGuide),
			},
		},
	}, nil
}

const authorTemplateGuide = `# Author a Template File

You are helping a user write a new ` + "`.tpl.md`" + ` or ` + "`.ctx.md`" + ` file for lg-render.

## Your Role

1. Ask what the rendered output needs to contain
2. Pick the right placeholder for each piece of content
3. Use conditionals/modes only where the content genuinely varies
4. Check the result against the grammar reference

## Step 1: Clarify the Goal

Ask:
- What is this file for? (a system prompt, a task context, a section
  fragment consumed by another template?)
- Does its content need to vary by active tags, mode, or the presence of a
  task?
- Does it need to pull in other files verbatim, or re-render them as
  templates themselves?

## Step 2: Pick Placeholders

- Pulling in a named, opaquely-rendered chunk (e.g. a filtered directory
  listing)? Use a **section reference**: ` + "`${name}`" + ` or
  ` + "`${@origin:name}`" + ` for a named sub-scope.
- Pulling in another template/context file that should itself be parsed
  and rendered (and may itself contain placeholders)? Use an
  **include reference**: ` + "`${tpl:name}`" + ` or ` + "`${ctx:name}`" + `.
- Pulling in a plain Markdown file, with heading-level normalization? Use
  ` + "`${md:path[#anchor][,key:val]}`" + `.
- Inserting the task text supplied at render time, with a fallback? Use
  ` + "`${task}`" + ` or ` + "`${task:prompt:\"default text\"}`" + `.

Read the ` + "`lg://grammar`" + ` resource for the exact forms and parameters.

## Step 3: Add Conditionals Sparingly

Only wrap content in ` + "`{% if ... %}`" + ` when it genuinely differs by active
tag/tag-set/scope/task — not as a substitute for just writing the content
plainly. Read the ` + "`lg://condition-grammar`" + ` resource for the condition
language (` + "`tag:`" + `, ` + "`TAGSET:`" + `, ` + "`scope:`" + `, ` + "`task`" + `, ` + "`AND`" + `/` + "`OR`" + `/` + "`NOT`" + `).

## Step 4: Mode Blocks

If a section of the file should only apply — and should activate its own
tags/options — under a specific mode, wrap it in
` + "`{% mode SET:MODE %}...{% endmode %}`" + `. When a mode configuration is
loaded, the mode must exist in it (tag-sets/mode-sets YAML) or rendering
fails with a named error; with no configuration loaded, the block just
renders its body. Don't invent mode names that aren't configured.

## Step 5: Frontmatter (optional)

A leading YAML frontmatter block (between ` + "`---`" + ` lines) may carry an
` + "`include`" + ` key (string or list). The engine strips the block and parses
` + "`include`" + `, but takes no further action on it; every other key is
ignored — don't invent structured keys the engine doesn't recognize.

## Common Mistakes

- Using ` + "`${name}`" + ` (section) when the content actually needs to be
  re-parsed as a template — that's ` + "`${tpl:name}`" + ` instead.
- Wrapping nearly everything in conditionals instead of writing plain text
  where the content doesn't vary.
- Referencing a mode that isn't defined in the adaptive_loader config.
- Forgetting that section output is never re-parsed — a section can't
  recursively include another template.

## Start Now!

Ask: "What should this template produce, and does any of it need to
change based on tags, mode, or task?"
`

// --- configure-modes prompt ---

// ConfigureModesPrompt guides creating the tag-set/mode-set YAML that the
// adaptive_loader external supplier consumes.
type ConfigureModesPrompt struct{}

func (p *ConfigureModesPrompt) Definition() mcp.PromptDefinition {
	return mcp.PromptDefinition{
		Name:        "configure-modes",
		Description: "Interactive guide for writing the tag-set/mode-set YAML configuration consumed by the adaptive_loader.",
		Arguments:   []mcp.PromptArgument{},
	}
}

func (p *ConfigureModesPrompt) Get(arguments map[string]string) (*mcp.PromptsGetResult, error) {
	return &mcp.PromptsGetResult{
		Description: "Guide for configuring tag-sets and mode-sets",
		Messages: []mcp.PromptMessage{
			{
				Role:    "user",
				Content: mcp.TextContent(configureModesGuide),
			},
		},
	}, nil
}

const configureModesGuide = `# Configure Tag-Sets and Mode-Sets

You are helping a user write the adaptive_loader YAML configuration: the
named mode-sets a ` + "`{% mode SET:MODE %}`" + ` directive can activate.

## Step 1: Identify the Axes of Variation

Ask: what are the independent dimensions along which rendered output
should vary? Each dimension becomes one mode-set. Examples:
- ` + "`verbosity`" + `: ` + "`fast`" + ` vs ` + "`thorough`" + `
- ` + "`audience`" + `: ` + "`internal`" + ` vs ` + "`external`" + `

Within a mode-set, modes are alternatives: a template enters one of them
at a time. The engine does not enforce this — a mode block nested inside
another of the same mode-set adds its tags to the outer mode's tags.

## Step 2: Define Tags Per Mode

For each mode, list the tags it should union into the active-tags set
while its block is entered. A tag not already active is removed again
when the block exits; a tag that was already active before entry is left
alone (the mode doesn't own it).

## Step 3: Define Option Overrides

For each mode, list any option key/value pairs that should be merged on
top of the current options view while the block is active (e.g. a
heading-level cap, a verbosity budget). Options are a free-form map —
only document keys the templates actually read.

## Step 4: Tag-Set Membership (optional)

If a tag-set's members should also participate in ` + "`TAGSET:SET:NAME`" + `
condition queries independent of any mode block, list them under
` + "`tag_sets`" + `. This is the disjoint-or-selected family a condition can test
membership against, separate from what a mode block happens to activate.

## Example

` + "```yaml" + `
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
` + "```" + `

## Common Mistakes

- Defining a mode-set with modes that share tags — that defeats the
  mutual-exclusivity a mode-set is for.
- Referencing a mode name from a template that isn't defined here —
  once this configuration is loaded, rendering fails with a named error
  rather than silently no-op.

## Start Now!

Ask: "What are the dimensions along which your templates' output should
vary, and what tags or options should each variant activate?"
`

// --- debug-render prompt ---

// DebugRenderPrompt helps diagnose a rendering failure.
type DebugRenderPrompt struct{}

func (p *DebugRenderPrompt) Definition() mcp.PromptDefinition {
	return mcp.PromptDefinition{
		Name:        "debug-render",
		Description: "Guide for diagnosing a rendering failure: syntax, resolution, semantic, or rendering errors.",
		Arguments: []mcp.PromptArgument{
			{
				Name:        "error_kind",
				Description: "The error kind reported, if known: syntax, resolution, semantic, rendering, or internal",
				Required:    false,
			},
		},
	}
}

func (p *DebugRenderPrompt) Get(arguments map[string]string) (*mcp.PromptsGetResult, error) {
	text := buildDebugRenderGuide(arguments["error_kind"])

	return &mcp.PromptsGetResult{
		Description: "Guide for diagnosing a rendering failure",
		Messages: []mcp.PromptMessage{
			{
				Role:    "user",
				Content: mcp.TextContent(text),
			},
		},
	}, nil
}

func buildDebugRenderGuide(errorKind string) string {
	guide := `# Debug a Rendering Failure

You are helping a user understand why rendering failed. Every error
carries a kind; syntax, resolution and semantic errors also carry a
line:column position.

## Error Kinds

- **syntax**: the raw template text couldn't be tokenized or parsed (e.g.
  an unterminated ` + "`{%`" + ` directive, an unknown placeholder parameter key).
  Fix: look at the exact position, check for a missing closing tag or a
  typo in a recognized keyword.
- **resolution**: the AST parsed fine but a reference couldn't be resolved
  — an include cycle, a missing section/include target. Fix: check the
  include key named in the error against the files actually available
  under the origin's scope directory.
- **semantic**: the reference resolved but is invalid given the active
  configuration — most commonly an unknown mode-set or mode name in a
  ` + "`{% mode %}`" + ` block. Fix: check the adaptive_loader YAML for the exact
  mode-set/mode spelling.
- **rendering**: a plugin failed to produce output for an otherwise valid,
  resolved node (e.g. a section handler error). Fix: check the section
  handler's own error message, it names the origin and name it failed on.
- **internal**: the engine itself hit an invariant violation (e.g. no
  processor registered for a node kind). This should not happen from
  template content alone — treat it as a bug report.
`

	switch errorKind {
	case "syntax":
		guide += `
## Focus: Syntax Errors

Ask for the exact line/column from the error. Check:
- Every ` + "`{%`" + ` has a matching ` + "`%}`" + `, every ` + "`${`" + ` a matching ` + "`}`" + `.
- Directive keywords are spelled exactly: ` + "`if`" + `, ` + "`elif`" + `, ` + "`else`" + `,
  ` + "`endif`" + `, ` + "`mode`" + `, ` + "`endmode`" + `.
- Placeholder parameter keys on ` + "`${md:...}`" + ` are one of ` + "`level`" + `,
  ` + "`strip_h1`" + `, ` + "`anchor`" + `, ` + "`if`" + ` — anything else fails.
`
	case "resolution":
		guide += `
## Focus: Resolution Errors

Ask for the include key named in the error (` + "`{kind}[@{origin}]:{name}`" + `).
Check:
- The file exists under the expected origin's scope directory with the
  expected extension (` + "`.tpl.md`" + ` for ` + "`tpl:`" + `, ` + "`.ctx.md`" + ` for ` + "`ctx:`" + `).
- For a reported cycle, trace the chain of includes named in the error —
  one of them needs to stop including the one before it.
`
	case "semantic":
		guide += `
## Focus: Semantic Errors

Almost always an unknown mode-set or mode in a ` + "`{% mode SET:MODE %}`" + `
block. Check the adaptive_loader YAML's ` + "`mode_sets`" + ` key for the exact
SET and MODE spelling used in the template.
`
	case "rendering":
		guide += `
## Focus: Rendering Errors

Check the underlying error from the section handler or plugin named in
the message — it is not the engine itself that failed, but something it
called out to.
`
	}

	guide += `
## Next Steps

1. Reproduce with the smallest template that still fails.
2. Read the ` + "`lg://grammar`" + ` and ` + "`lg://condition-grammar`" + ` resources if the
   failure is syntax-shaped.
3. If still stuck, treat it as an internal error and report it.
`

	return guide
}

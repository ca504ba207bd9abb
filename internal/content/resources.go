package content

import "github.com/maxmoro/lg-render/internal/mcp"

// --- lg://grammar resource ---

// GrammarResource exposes the template placeholder/directive grammar as a
// reference resource. LLMs authoring .tpl.md/.ctx.md files can read this to
// get the exact placeholder and directive syntax right.
type GrammarResource struct{}

func (r *GrammarResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "lg://grammar",
		Name:        "lg-render Template Grammar",
		Description: "Reference of every placeholder form and directive the template engine recognizes",
		MimeType:    "text/markdown",
	}
}

func (r *GrammarResource) Read() (*mcp.ResourcesReadResult, error) {
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      "lg://grammar",
				MimeType: "text/markdown",
				Text:     grammarContent,
			},
		},
	}, nil
}

// --- lg://condition-grammar resource ---

// ConditionGrammarResource exposes the condition sub-language grammar (the
// text inside `{% if ... %}`/`{% elif ... %}` directives and the `if`
// parameter of `${md:...}` placeholders).
type ConditionGrammarResource struct{}

func (r *ConditionGrammarResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "lg://condition-grammar",
		Name:        "lg-render Condition Grammar",
		Description: "Reference of the tag/tag-set/scope/task condition language used inside if/elif directives and the if parameter of md placeholders",
		MimeType:    "text/markdown",
	}
}

func (r *ConditionGrammarResource) Read() (*mcp.ResourcesReadResult, error) {
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      "lg://condition-grammar",
				MimeType: "text/markdown",
				Text:     conditionGrammarContent,
			},
		},
	}, nil
}

// --- Static content ---

const grammarContent = `# lg-render Template Grammar

## Placeholders (` + "`${...}`" + `)

### Section reference
` + "`${NAME}`" + ` or ` + "`${@ORIGIN:NAME}`" + ` (at-form) or ` + "`${@[ORIGIN]:NAME}`" + ` (bracketed
at-form, permits ` + "`:`" + ` inside ORIGIN). Resolves to a canonical ` + "`(origin, name)`" + `
pair and is rendered by handing that pair to the section handler. The
handler's output is opaque text, emitted verbatim — it is never loaded or
re-parsed as template syntax.

### Include reference
` + "`${tpl:NAME}`" + ` or ` + "`${ctx:NAME}`" + `, optionally origin-qualified with the same
at-forms as sections. The named source is loaded, its frontmatter stripped,
parsed into a child document, and recursively resolved and rendered in
place. Include cycles are detected and reported with every include key of
the cycle named in the error.

### Markdown-file placeholder
` + "`${md:PATH[#ANCHOR][,KEY:VAL...]}`" + `. PATH is a superset of the identifier
form: it may contain ` + "`*`" + ` (marking it as a glob) and an ` + "`#ANCHOR`" + ` suffix.
Recognized parameters: ` + "`level`" + ` (integer 1-6), ` + "`strip_h1`" + ` (boolean),
` + "`anchor`" + ` (string, equivalent to ` + "`#anchor`" + `), ` + "`if`" + ` (condition text, see the
condition grammar). Unknown parameter keys fail with a position-bearing
error. Headings in the included file are shifted so the minimum heading
becomes one level below the heading immediately preceding the placeholder
(capped at 6), and a leading H1 is stripped unless the placeholder is part
of a continuous chain with another MD placeholder. With no preceding
heading, or one separated from the placeholder by a horizontal rule, the
minimum heading becomes level 1 and the H1 is kept; a placeholder inside a
heading line takes that heading's level and keeps the H1.

### Task placeholder
` + "`${task}`" + ` or ` + "`${task:prompt:\"default text\"}`" + `. Renders the render's task text
if one was supplied, else the quoted default literal, else empty.

## Directives (` + "`{% ... %}`" + `)

### Conditional
` + "```" + `
{% if CONDITION %}...{% elif CONDITION %}...{% else %}...{% endif %}
` + "```" + `
Any number of ` + "`elif`" + ` clauses, an optional trailing ` + "`else`" + `. CONDITION is
parsed by the condition grammar (see the condition-grammar reference).

### Mode block
` + "```" + `
{% mode SET:MODE %}...{% endmode %}
` + "```" + `
Entering the block unions the mode's configured tags into the active-tags
set for the block's body and merges the mode's option overrides on top of
the current options view; both are undone on exit. When a mode
configuration is loaded, an unknown mode-set or mode name fails with a
named error; with no mode configuration loaded, the block renders its body
with no tags or options added.

### Comment
` + "`{# anything #}`" + ` produces no output. Comments do not nest.

## Frontmatter

A ` + "`.tpl.md`" + `/` + "`.ctx.md`" + ` file may begin with a YAML frontmatter block
delimited by ` + "`---`" + ` lines. The block is stripped before the body is
parsed and is never rendered. The ` + "`include`" + ` key (string or list of
strings) is parsed, but the engine takes no further action on it; other
keys are ignored.

## Section-fragment files (` + "`*.sec.yaml`" + `)

Opaque to the engine itself; the default section service reads these as
named, reusable filter fragments: a path glob plus allow/block glob-pattern
lists, concatenated into fenced code blocks annotated with
a ` + "`path=`" + ` marker and a guessed language tag.
`

const conditionGrammarContent = `# lg-render Condition Grammar

Conditions are the sub-language inside ` + "`{% if ... %}`" + `, ` + "`{% elif ... %}`" + `, and
the ` + "`if`" + ` parameter of an ` + "`${md:...}`" + ` placeholder.

## Atoms

- **Tag**: ` + "`tag:NAME`" + ` — true iff NAME is in the active-tags set.
- **Tag-set**: ` + "`TAGSET:SET:NAME`" + ` — true iff either no tag from SET is
  active, or NAME is the active one. Once any member of SET is active, only
  that member satisfies tag-set queries against SET.
- **Scope**: ` + "`scope:local`" + ` | ` + "`scope:parent`" + ` — true based on whether the
  current file's origin is ` + "`\"self\"`" + ` (local) or a named sub-scope (parent).
- **Task**: ` + "`task`" + ` — true iff non-empty task text was supplied for this
  render.

## Grammar (recursive descent)

` + "```" + `
expr     := or_expr
or_expr  := and_expr ( "OR" and_expr )*
and_expr := not_expr ( "AND" not_expr )*
not_expr := "NOT" not_expr | primary
primary  := atom | "(" expr ")"
` + "```" + `

` + "`NOT`" + ` is right-associative, ` + "`AND`" + ` and ` + "`OR`" + ` are left-associative, and
` + "`AND`" + ` binds tighter than ` + "`OR`" + `.

## Lexing

Greedy left-to-right scan. Token kinds: keyword (` + "`tag`" + `, ` + "`TAGSET`" + `,
` + "`scope`" + `, ` + "`task`" + `, ` + "`AND`" + `, ` + "`OR`" + `, ` + "`NOT`" + `), identifier (Unicode-aware
letter/digit/underscore/hyphen word), symbol (` + "`(`" + `, ` + "`)`" + `, ` + "`:`" + `), EOF.
Whitespace is skipped. An identifier matching a keyword exactly
(case-sensitive) is promoted to keyword kind. Unrecognized bytes fail with
a position-bearing error.

## Evaluation

Standard short-circuit evaluation: the right operand of an ` + "`AND`" + ` whose
left operand is false, and of an ` + "`OR`" + ` whose left operand is true, is not
evaluated. Evaluation is pure — a condition has no side effects on the
render state.

## Examples

- ` + "`tag:x`" + ` — true iff ` + "`x`" + ` is active.
- ` + "`tag:a AND tag:b`" + ` — true iff both are active.
- ` + "`NOT tag:x OR tag:y`" + ` — true unless ` + "`x`" + ` is active and ` + "`y`" + ` is not.
- ` + "`TAGSET:verbosity:fast`" + ` — true if no ` + "`verbosity`" + ` tag is active, or if
  ` + "`fast`" + ` specifically is.
`

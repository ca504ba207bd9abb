package template

// TokenContext describes a lexically nested region such as ${...},
// {%...%} or {#...#}: the token kind that opens it, the one that closes
// it, and the token kinds recognized while inside it. AllowNesting
// governs whether the same context may open again while already active;
// every context currently registered by the bundled plugins sets it to
// false, since directive bodies are a flat header rather than a nested
// region (nesting of if/elif/endif happens at the parser level, by
// repeated calls into the shared dispatch loop).
type TokenContext struct {
	Name         string
	Open         string
	Close        string
	Inner        []string
	AllowNesting bool
	Priority     int

	order int
}

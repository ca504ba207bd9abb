// Package lgerrors implements the error taxonomy shared by every stage of
// the template pipeline: lexer, parser, resolver, evaluator, and processor.
//
// Every error carries a source position where one is meaningful, plus the
// fields the taxonomy needs to identify what failed: a canonical key for
// resolution errors, a node type and plugin name for rendering errors.
package lgerrors

import "fmt"

// Position identifies a location in a template source file.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Kind classifies an Error by the taxonomy host applications key their
// handling off of (exit codes, MCP tool-error shape, retry behavior).
type Kind string

const (
	KindUserSyntax Kind = "user-syntax" // lex/parse
	KindResolution Kind = "resolution"  // not-found, cycle, scope violation
	KindSemantic   Kind = "semantic"    // unknown mode, bad condition reference
	KindRendering  Kind = "rendering"   // section handler raised
	KindInternal   Kind = "internal"    // invariant violation
)

// Error is the single error type produced by this module. The exported
// fields let callers (the CLI, tests) branch on Kind without string
// matching the message.
type Error struct {
	Kind     Kind
	Pos      Position
	Message  string
	Key      string // canonical include key, for resolution errors
	NodeType string // for rendering errors
	Plugin   string // for rendering errors
	Expected string // expected token kind, for parse errors
	cause    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindResolution:
		if e.Key != "" {
			return fmt.Sprintf("[%s] %s: %s (key=%s)", e.Kind, e.Pos, e.Message, e.Key)
		}
	case KindRendering:
		if e.NodeType != "" {
			return fmt.Sprintf("[%s] %s: %s (node=%s plugin=%s)", e.Kind, e.Pos, e.Message, e.NodeType, e.Plugin)
		}
	}
	if e.Pos == (Position{}) {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Pos, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Wrap attaches a causing error, preserved for errors.Is/As chains.
func (e *Error) Wrap(cause error) *Error {
	e.cause = cause
	return e
}

// Syntax builds a lex/parse error.
func Syntax(pos Position, format string, args ...any) *Error {
	return &Error{Kind: KindUserSyntax, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// SyntaxExpected builds a parse error naming the expected token kind.
func SyntaxExpected(pos Position, expected, got string) *Error {
	return &Error{
		Kind:     KindUserSyntax,
		Pos:      pos,
		Expected: expected,
		Message:  fmt.Sprintf("expected %s, got %s", expected, got),
	}
}

// Resolution builds a resolver error (missing section, missing include,
// cycle, scope violation).
func Resolution(pos Position, key string, format string, args ...any) *Error {
	return &Error{Kind: KindResolution, Pos: pos, Key: key, Message: fmt.Sprintf(format, args...)}
}

// Semantic builds an evaluator/processor semantic error (unknown mode,
// unknown condition type).
func Semantic(pos Position, format string, args ...any) *Error {
	return &Error{Kind: KindSemantic, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Rendering builds a processor error raised by a node processor.
func Rendering(nodeType, plugin string, cause error) *Error {
	return (&Error{
		Kind:     KindRendering,
		NodeType: nodeType,
		Plugin:   plugin,
		Message:  cause.Error(),
	}).Wrap(cause)
}

// Internal builds an invariant-violation error (never expected to surface
// to a well-behaved caller).
func Internal(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// ExitCode implements the CLI exit-code split: user-syntax errors exit
// 2, everything else exits 1.
func (e *Error) ExitCode() int {
	if e.Kind == KindUserSyntax {
		return 2
	}
	return 1
}

// List aggregates multiple errors, e.g. from a lint pass that continues
// past the first failure.
type List struct {
	Errors []*Error
}

func (l *List) Add(err *Error) { l.Errors = append(l.Errors, err) }

func (l *List) HasErrors() bool { return len(l.Errors) > 0 }

func (l *List) Error() string {
	s := ""
	for _, e := range l.Errors {
		s += e.Error() + "\n"
	}
	return s
}

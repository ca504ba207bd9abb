// Package registry holds the plugin-registration diagnostics shared by the
// template engine's registry: a small severity ladder used to report
// duplicate token, context, and parser-rule names without aborting
// startup.
package registry

import "fmt"

// Severity indicates how a registration diagnostic should be treated.
type Severity int

const (
	// Info is purely informational.
	Info Severity = iota
	// Warning means a later registration silently replaced an earlier
	// one; the registry keeps running with the later definition winning.
	Warning
	// Fatal means the registry cannot proceed. A duplicate plugin name is
	// not logged here: Registry.RegisterPlugin returns it as an error.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is a single registration-time finding.
type Diagnostic struct {
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s", d.Severity, d.Message)
}

// Log accumulates diagnostics produced while building a registry. It is
// not safe for concurrent writes; registry construction is single
// threaded by design.
type Log struct {
	entries []Diagnostic
}

func (l *Log) Warn(format string, args ...any) {
	l.entries = append(l.entries, Diagnostic{Severity: Warning, Message: fmt.Sprintf(format, args...)})
}

func (l *Log) Info(format string, args ...any) {
	l.entries = append(l.entries, Diagnostic{Severity: Info, Message: fmt.Sprintf(format, args...)})
}

// Entries returns every diagnostic recorded so far, in recording order.
func (l *Log) Entries() []Diagnostic {
	return l.entries
}

// HasFatal reports whether a Fatal-severity diagnostic was recorded.
func (l *Log) HasFatal() bool {
	for _, d := range l.entries {
		if d.Severity == Fatal {
			return true
		}
	}
	return false
}

func (l *Log) Fatalf(format string, args ...any) {
	l.entries = append(l.entries, Diagnostic{Severity: Fatal, Message: fmt.Sprintf(format, args...)})
}

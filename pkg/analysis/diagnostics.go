package analysis

import (
	"fmt"
	"strings"

	"solgo/compiler-go/pkg/ast"
)

// DiagnosticSeverity classifies a diagnostic.
type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// DiagnosticNote attaches secondary context to a diagnostic, e.g. the
// first of two colliding declarations.
type DiagnosticNote struct {
	Message string
	Node    ast.Node
}

// Diagnostic is one analysis finding. Diagnostics are plain values;
// passes collect them and keep going, so one run reports everything it
// can find.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Message  string
	Node     ast.Node
	Notes    []DiagnosticNote
}

func errorAt(node ast.Node, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityError, Message: fmt.Sprintf(format, args...), Node: node}
}

func warningAt(node ast.Node, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Node: node}
}

// HasErrors reports whether any diagnostic in the list is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Describe renders a diagnostic for terminal output.
func Describe(diag Diagnostic) string {
	var b strings.Builder
	b.WriteString(string(diag.Severity))
	b.WriteString(": ")
	b.WriteString(diag.Message)
	if diag.Node != nil {
		loc := diag.Node.Location()
		fmt.Fprintf(&b, " (%s:%d)", loc.Source, loc.Start)
	}
	for _, note := range diag.Notes {
		b.WriteString("\n  note: ")
		b.WriteString(note.Message)
		if note.Node != nil {
			loc := note.Node.Location()
			fmt.Fprintf(&b, " (%s:%d)", loc.Source, loc.Start)
		}
	}
	return b.String()
}

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"contractabi/internal/ast"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    ast.Position // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

func (e CompilerError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s: %s", e.Position, e.Level, e.Message)
	}
	return fmt.Sprintf("%s: %s[%s]: %s", e.Position, e.Level, e.Code, e.Message)
}

// IsWarning reports whether the diagnostic is advisory.
func (e CompilerError) IsWarning() bool {
	return e.Level == Warning || IsWarning(e.Code)
}

// CodeOf returns the diagnostic code carried by err, or "" when err is not a CompilerError.
func CodeOf(err error) string {
	var ce CompilerError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string       // Description of the suggestion
	Replacement string       // Suggested replacement text (optional)
	Position    ast.Position // Position to apply the fix (optional)
	Length      int          // Length of text to replace (optional)
}

// ErrorReporter renders diagnostics against the source they were found in.
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders one diagnostic:
//
//	warning[W0101]: unresolved type 'amout' is treated as a number
//	   --> token.ts:4:14
//	    |
//	  4 |     balance: amout;
//	    |              ^^^^^ unresolved type name treated as number
//	    = help: did you mean 'amount'?
//
// Suggestions and help print as "= help:" lines, notes as "= note:" lines.
// Diagnostics without a position (assembler state errors) have no snippet.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var b strings.Builder
	paint := levelColor(err.Level)
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		fmt.Fprintf(&b, "%s: %s\n", paint(fmt.Sprintf("%s[%s]", err.Level, err.Code)), err.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", paint(string(err.Level)), err.Message)
	}

	g := newGutter(err.Position.Line)
	if err.Position.Line > 0 {
		fmt.Fprintf(&b, "%s%s %s:%d:%d\n", g.blank(), dim("-->"), er.filename, err.Position.Line, err.Position.Column)
	}

	if line, ok := er.line(err.Position.Line); ok {
		fmt.Fprintf(&b, "%s%s\n", g.blank(), dim("|"))
		fmt.Fprintf(&b, "%s%s %s\n", g.number(err.Position.Line), dim("|"), line)

		marker := er.createMarker(err.Position.Column, err.Length, err.Level)
		if label := markerLabel(err.Code); label != "" {
			marker += " " + paint(label)
		}
		fmt.Fprintf(&b, "%s%s %s\n", g.blank(), dim("|"), marker)
	}

	help := color.New(color.FgCyan, color.Bold).SprintFunc()
	for _, s := range err.Suggestions {
		fmt.Fprintf(&b, "%s= %s %s\n", g.blank(), help("help:"), s.Message)
		if s.Replacement != "" {
			fmt.Fprintf(&b, "%s  %s\n", g.blank(), help(s.Replacement))
		}
	}
	if err.HelpText != "" {
		fmt.Fprintf(&b, "%s= %s %s\n", g.blank(), help("help:"), err.HelpText)
	}
	note := color.New(color.FgBlue, color.Bold).SprintFunc()
	for _, n := range err.Notes {
		fmt.Fprintf(&b, "%s= %s %s\n", g.blank(), note("note:"), n)
	}

	b.WriteString("\n")
	return b.String()
}

// FormatAll formats every diagnostic in order
func (er *ErrorReporter) FormatAll(errs []CompilerError) string {
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(er.FormatError(err))
	}
	return b.String()
}

// line returns the 1-based source line n.
func (er *ErrorReporter) line(n int) (string, bool) {
	if n < 1 || n > len(er.lines) {
		return "", false
	}
	return er.lines[n-1], true
}

// createMarker underlines length columns starting at column.
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	return strings.Repeat(" ", max(0, column-1)) + levelColor(level)(strings.Repeat("^", max(1, length)))
}

// markerLabel is the short description printed after the underline.
func markerLabel(code string) string {
	if code == "" {
		return ""
	}
	desc := GetErrorDescription(code)
	if desc == GetErrorDescription("") {
		return ""
	}
	return strings.ToLower(desc[:1]) + desc[1:]
}

func levelColor(level ErrorLevel) func(...any) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgCyan, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// gutter is the line-number column to the left of a snippet.
type gutter int

func newGutter(line int) gutter {
	return gutter(max(3, len(fmt.Sprint(line))+1))
}

func (g gutter) blank() string {
	return strings.Repeat(" ", int(g)+1)
}

func (g gutter) number(line int) string {
	return fmt.Sprintf("%*d ", int(g), line)
}

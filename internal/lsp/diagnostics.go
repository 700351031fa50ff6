package lsp

import (
	"strings"

	"contractabi/internal/errors"
	"contractabi/internal/parser"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "contractabi"

// ConvertParseErrors transforms syntax and link errors into LSP diagnostics.
func ConvertParseErrors(parseErrors []parser.ParseError) []protocol.Diagnostic {
	errs := make([]errors.CompilerError, 0, len(parseErrors))
	for _, parseErr := range parseErrors {
		errs = append(errs, parseErr.CompilerError())
	}
	return ConvertCompilerErrors(errs)
}

// ConvertCompilerErrors transforms assembler errors and warnings into LSP
// diagnostics. Warnings keep the Warning severity.
func ConvertCompilerErrors(errs []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(errs))
	for _, err := range errs {
		diagnostics = append(diagnostics, toDiagnostic(err))
	}
	return diagnostics
}

func toDiagnostic(err errors.CompilerError) protocol.Diagnostic {
	line := max(err.Position.Line-1, 0) // Convert to 0-based indexing
	start := max(err.Position.Column-1, 0)
	length := err.Length
	if length <= 0 {
		length = 1
	}

	severity := protocol.DiagnosticSeverityError
	if err.IsWarning() {
		severity = protocol.DiagnosticSeverityWarning
	}

	diagnostic := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(start)},
			End:   protocol.Position{Line: uint32(line), Character: uint32(start + length)},
		},
		Severity: ptrSeverity(severity),
		Source:   ptrString(diagnosticSource),
		Message:  diagnosticMessage(err),
	}
	if err.Code != "" {
		diagnostic.Code = &protocol.IntegerOrString{Value: err.Code}
	}
	return diagnostic
}

// diagnosticMessage folds suggestions and notes into the message, since
// editors show nothing else inline.
func diagnosticMessage(err errors.CompilerError) string {
	var b strings.Builder
	b.WriteString(err.Message)
	for _, s := range err.Suggestions {
		b.WriteString("\nhelp: ")
		b.WriteString(s.Message)
	}
	for _, note := range err.Notes {
		b.WriteString("\nnote: ")
		b.WriteString(note)
	}
	if err.HelpText != "" {
		b.WriteString("\nhelp: ")
		b.WriteString(err.HelpText)
	}
	return b.String()
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}

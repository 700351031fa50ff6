package errors

import (
	"fmt"
	"strings"

	"contractabi/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for creating diagnostics with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new error builder
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new warning builder
func NewSemanticWarning(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// SyntaxError wraps a parser failure.
func SyntaxError(message string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorSyntax, message, pos).Build()
}

// CyclicInheritance creates an error for a class whose extends chain loops back on itself
func CyclicInheritance(class string, chain []string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorCyclicInheritance,
		fmt.Sprintf("class '%s' inherits from itself", class), pos).
		WithLength(len(class)).
		WithNote(fmt.Sprintf("inheritance chain: %s", strings.Join(chain, " -> "))).
		WithSuggestion("remove one of the extends clauses to break the cycle").
		Build()
}

// DuplicateDeclaration creates an error for duplicate declarations
func DuplicateDeclaration(name string, pos, previous ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateDeclaration, fmt.Sprintf("duplicate declaration: %s", name), pos).
		WithLength(len(name)).
		WithNote(fmt.Sprintf("'%s' was first declared at %s", name, previous)).
		WithSuggestion(fmt.Sprintf("rename the duplicate '%s' to a unique name", name)).
		Build()
}

// NotAnArrayType creates an error for array argument extraction on a non-array type
func NotAnArrayType(typeName string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorNotAnArrayType,
		fmt.Sprintf("the type node is not an array: %s", typeName), pos).
		WithLength(len(typeName)).
		WithNote("array types are written 'T[]' or 'Array<T>'").
		Build()
}

// UnresolvableAliasDepth creates an error for alias chains or nested types that exceed the depth limit
func UnresolvableAliasDepth(typeName string, limit int, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorUnresolvableAliasDepth,
		fmt.Sprintf("cannot resolve type '%s': nesting exceeds %d levels", typeName, limit), pos).
		WithLength(len(typeName)).
		WithHelp("type aliases must eventually name a primitive, a class, an array or a map").
		WithNote("a type alias that refers back to itself can never be resolved").
		Build()
}

// UnsupportedType creates an error for type expressions that have no encoding
func UnsupportedType(typeText, context string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorUnsupportedType,
		fmt.Sprintf("type '%s' of %s cannot be encoded", typeText, context), pos).
		WithLength(len(typeText)).
		WithNote("callable parameters and return values must use named types").
		Build()
}

// MultipleContractRoots creates an error for a second class qualifying as the contract root
func MultipleContractRoots(name, previous string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorMultipleContractRoots,
		fmt.Sprintf("class '%s' is a second contract root (already found '%s')", name, previous), pos).
		WithLength(len(name)).
		WithHelp("a translation unit may declare exactly one contract class").
		WithSuggestion("remove the contract marker from one of the classes").
		Build()
}

// AssemblerReused creates an error for running an assembler more than once
func AssemblerReused() CompilerError {
	return NewSemanticError(ErrorAssemblerReused, "assembler has already run", ast.Position{}).
		WithHelp("create a new assembler for every model").
		Build()
}

// UnresolvedType creates a warning for a type name that falls back to number
func UnresolvedType(name string, pos ast.Position, candidates []string) CompilerError {
	builder := NewSemanticWarning(WarningUnresolvedType,
		fmt.Sprintf("unresolved type '%s' is treated as a number", name), pos).
		WithLength(len(name))

	similar := findSimilarNames(name, candidates)
	if len(similar) == 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	} else if len(similar) > 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}

	return builder.Build()
}

// SkippedField creates a warning for a storage field that cannot be laid out
func SkippedField(owner, field, typeText string, pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningSkippedField,
		fmt.Sprintf("field '%s.%s' of type '%s' is not stored", owner, field, typeText), pos).
		WithLength(len(field)).
		WithNote("only fields with named types get a storage cell").
		Build()
}

// DuplicateAnnotation creates a warning for a repeated annotation
func DuplicateAnnotation(name, decl string, pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningDuplicateAnnotation,
		fmt.Sprintf("annotation '@%s' appears more than once on '%s'", name, decl), pos).
		WithLength(len(name) + 1).
		WithSuggestion("remove the repeated annotation").
		Build()
}

// ReplacedContractRoot creates a warning when permissive mode replaces an earlier contract root
func ReplacedContractRoot(name, previous string, pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningReplacedContractRoot,
		fmt.Sprintf("contract root '%s' replaces '%s'", name, previous), pos).
		WithLength(len(name)).
		Build()
}

// CallableOutsideContract creates a warning for @deployer/@message methods outside the contract root
func CallableOutsideContract(method, class, annotation string, pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningCallableOutsideContract,
		fmt.Sprintf("'@%s' on '%s.%s' is ignored: '%s' is not the contract root", annotation, class, method, class), pos).
		WithLength(len(method)).
		Build()
}

// Helper functions

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate != target && levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	previous := make([]int, len(b)+1)
	for j := range previous {
		previous[j] = j
	}

	for i := 1; i <= len(a); i++ {
		current := make([]int, len(b)+1)
		current[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[j] = min(current[j-1]+1, previous[j]+1, previous[j-1]+cost)
		}
		previous = current
	}

	return previous[len(b)]
}

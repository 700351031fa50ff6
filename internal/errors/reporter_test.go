package errors

import (
	"fmt"
	"strings"
	"testing"

	"contractabi/internal/ast"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorReporter(t *testing.T) {
	source := `type amount = u64;
@contract
class Token {
    balance: amout;
}`

	reporter := NewErrorReporter("token.ts", source)

	err := UnresolvedType("amout", ast.Position{Line: 4, Column: 14}, []string{"amount", "Token"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "warning["+WarningUnresolvedType+"]")
	assert.Contains(t, formatted, "treated as a number")
	assert.Contains(t, formatted, "token.ts:4:14")
	assert.Contains(t, formatted, "did you mean 'amount'")
}

func TestFormatErrorLayout(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	source := `type amount = u64;
@contract
class Token {
    balance: amout;
}`
	reporter := NewErrorReporter("token.ts", source)

	err := UnresolvedType("amout", ast.Position{Line: 4, Column: 14}, []string{"amount"})
	expected := `warning[W0101]: unresolved type 'amout' is treated as a number
    --> token.ts:4:14
    |
  4 |     balance: amout;
    |              ^^^^^ unresolved type name treated as number
    = help: did you mean 'amount'?

`
	assert.Equal(t, expected, reporter.FormatError(err))

	cyclic := CyclicInheritance("A", []string{"A", "A"}, ast.Position{Line: 1, Column: 7})
	formatted := NewErrorReporter("a.ts", "class A extends A {}").FormatError(cyclic)
	assert.Contains(t, formatted, "    = help: remove one of the extends clauses to break the cycle\n")
	assert.Contains(t, formatted, "    = note: inheritance chain: A -> A\n")
	assert.Less(t, strings.Index(formatted, "= help:"), strings.Index(formatted, "= note:"))
}

func TestFormatErrorWithoutPosition(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	formatted := NewErrorReporter("a.ts", "class A {}").FormatError(AssemblerReused())
	assert.Equal(t, "error[E0401]: assembler has already run\n    = help: create a new assembler for every model\n\n", formatted)
}

func TestUnresolvedTypeSuggestions(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UnresolvedType("Acount", pos, []string{"Account"})
	assert.Equal(t, WarningUnresolvedType, err.Code)
	assert.Equal(t, Warning, err.Level)
	require.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'Account'")

	err = UnresolvedType("xyz", pos, nil)
	assert.Empty(t, err.Suggestions)

	err = UnresolvedType("Acount", pos, []string{"Account", "Amount"})
	require.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "one of")
}

func TestCyclicInheritanceError(t *testing.T) {
	err := CyclicInheritance("A", []string{"A", "B", "A"}, ast.Position{Line: 1, Column: 7})
	assert.Equal(t, ErrorCyclicInheritance, err.Code)
	assert.Equal(t, Error, err.Level)
	require.Len(t, err.Notes, 1)
	assert.Contains(t, err.Notes[0], "A -> B -> A")
}

func TestMultipleContractRootsError(t *testing.T) {
	err := MultipleContractRoots("Second", "First", ast.Position{Line: 9, Column: 7})
	assert.Equal(t, ErrorMultipleContractRoots, err.Code)
	assert.Contains(t, err.Message, "'Second'")
	assert.Contains(t, err.Message, "'First'")
	assert.NotEmpty(t, err.HelpText)
	assert.Len(t, err.Suggestions, 1)
}

func TestCompilerErrorImplementsError(t *testing.T) {
	pos := ast.Position{Filename: "a.ts", Line: 2, Column: 3}
	var err error = NotAnArrayType("u64", pos)

	assert.Equal(t, "a.ts:2:3: error[E0200]: the type node is not an array: u64", err.Error())
	assert.Equal(t, ErrorNotAnArrayType, CodeOf(err))
	assert.Equal(t, ErrorNotAnArrayType, CodeOf(fmt.Errorf("resolving field: %w", err)))
	assert.Equal(t, "", CodeOf(fmt.Errorf("plain")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestCompilerErrorIsWarning(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 1}

	assert.True(t, SkippedField("Token", "hook", "() => void", pos).IsWarning())
	assert.True(t, DuplicateAnnotation("message", "transfer", pos).IsWarning())
	assert.False(t, UnresolvableAliasDepth("loop", 64, pos).IsWarning())
	assert.False(t, AssemblerReused().IsWarning())
}

func TestWarningFormatting(t *testing.T) {
	source := `    @message @message transfer(): void;`
	reporter := NewErrorReporter("token.ts", source)

	err := DuplicateAnnotation("message", "transfer", ast.Position{Line: 1, Column: 14})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "warning[W0103]")
	assert.Contains(t, formatted, "more than once")
	assert.Contains(t, formatted, "remove the repeated annotation")
}

func TestFormatAll(t *testing.T) {
	reporter := NewErrorReporter("token.ts", "class A extends B {}\nclass B extends A {}")
	pos := ast.Position{Line: 1, Column: 7}

	out := reporter.FormatAll([]CompilerError{
		CyclicInheritance("A", []string{"A", "B", "A"}, pos),
		ReplacedContractRoot("B", "A", ast.Position{Line: 2, Column: 7}),
	})

	assert.Contains(t, out, "error[E0101]")
	assert.Contains(t, out, "warning[W0104]")
	assert.Less(t, strings.Index(out, "E0101"), strings.Index(out, "W0104"))
}

func TestErrorMarkerCreation(t *testing.T) {
	source := `  balance: amout;`
	reporter := NewErrorReporter("token.ts", source)

	marker := reporter.createMarker(12, 5, Warning)

	assert.Equal(t, 11, strings.Count(marker, " "))
	assert.Equal(t, 5, strings.Count(marker, "^"))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestSimilarNameFinding(t *testing.T) {
	candidates := []string{"balance", "amount", "total", "balanceOf", "xyz"}

	similar := findSimilarNames("balace", candidates)
	assert.Contains(t, similar, "balance")
	assert.NotContains(t, similar, "xyz")

	similar = findSimilarNames("verydifferent", candidates)
	assert.Empty(t, similar)
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Parser", GetErrorCategory(ErrorSyntax))
	assert.Equal(t, "Type Resolution", GetErrorCategory(ErrorUnsupportedType))
	assert.Equal(t, "Contract", GetErrorCategory(ErrorAssemblerReused))
	assert.Equal(t, "Warning", GetErrorCategory(WarningSkippedField))
	assert.Equal(t, "Unknown error code", GetErrorDescription("E9999"))
}

func TestErrorLevels(t *testing.T) {
	reporter := NewErrorReporter("token.ts", "test")
	pos := ast.Position{Line: 1, Column: 1}

	errorFormatted := reporter.FormatError(CompilerError{Level: Error, Message: "test error", Position: pos})
	warningFormatted := reporter.FormatError(CompilerError{Level: Warning, Message: "test warning", Position: pos})

	assert.Contains(t, errorFormatted, "error:")
	assert.Contains(t, warningFormatted, "warning:")
}

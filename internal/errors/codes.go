package errors

// Error codes for the contract ABI model pass
// These codes are used in diagnostics, the language server and the CLI
// to provide consistent error identification across the toolchain.
//
// Error code ranges:
// E0100-E0199: Parser and link errors
// E0200-E0299: Type resolution errors
// E0400-E0499: Contract model errors
// W0100-W0199: Assembly warnings

const (
	// E0100: Declaration surface could not be parsed
	ErrorSyntax = "E0100"

	// E0101: Class extends chain loops back on itself
	ErrorCyclicInheritance = "E0101"

	// E0102: Name declared twice in the same scope
	ErrorDuplicateDeclaration = "E0102"

	// E0200: Array argument requested from a non-array type expression
	ErrorNotAnArrayType = "E0200"

	// E0201: Alias chasing or type nesting exceeded the configured depth
	ErrorUnresolvableAliasDepth = "E0201"

	// E0202: Type expression has no encoding (function types in callable signatures)
	ErrorUnsupportedType = "E0202"

	// E0400: More than one class qualifies as the contract root
	ErrorMultipleContractRoots = "E0400"

	// E0401: Assembler invoked after it already produced (or failed to produce) a model
	ErrorAssemblerReused = "E0401"

	// W0101: Type name could not be resolved and is treated as an opaque number
	WarningUnresolvedType = "W0101"

	// W0102: Storage field skipped because its type is not a named type
	WarningSkippedField = "W0102"

	// W0103: Declaration carries the same annotation more than once
	WarningDuplicateAnnotation = "W0103"

	// W0104: Earlier contract root replaced by a later one
	WarningReplacedContractRoot = "W0104"

	// W0105: Callable annotation on a method outside the contract root
	WarningCallableOutsideContract = "W0105"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorSyntax:
		return "Declaration surface could not be parsed"
	case ErrorCyclicInheritance:
		return "Class inherits from itself"
	case ErrorDuplicateDeclaration:
		return "Duplicate declaration found"
	case ErrorNotAnArrayType:
		return "Type expression is not an array type"
	case ErrorUnresolvableAliasDepth:
		return "Type alias chain or type nesting is too deep to resolve"
	case ErrorUnsupportedType:
		return "Type expression cannot be encoded"
	case ErrorMultipleContractRoots:
		return "More than one contract root class"
	case ErrorAssemblerReused:
		return "Assembler can only be run once"
	case WarningUnresolvedType:
		return "Unresolved type name treated as number"
	case WarningSkippedField:
		return "Storage field skipped"
	case WarningDuplicateAnnotation:
		return "Annotation repeated on the same declaration"
	case WarningReplacedContractRoot:
		return "Contract root replaced by a later declaration"
	case WarningCallableOutsideContract:
		return "Callable annotation outside the contract root"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than an error
func IsWarning(code string) bool {
	return code != "" && code[0] == 'W'
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case IsWarning(code):
		return "Warning"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0200" && code < "E0300":
		return "Type Resolution"
	case code >= "E0400" && code < "E0500":
		return "Contract"
	default:
		return "Unknown"
	}
}

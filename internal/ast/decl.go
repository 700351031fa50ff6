package ast

// Ident represents any identifier like class names, field names, type names
// Example: "Token", "balance", "account_name"
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

// AnnotationKind is the closed set of decorator tags the pass understands.
type AnnotationKind int

const (
	AnnotationUnknown  AnnotationKind = iota
	AnnotationContract                // @contract marks the contract root class
	AnnotationDeployer                // @deployer marks a constructor-like entry point
	AnnotationMessage                 // @message marks a callable message
)

var annotationKinds = map[string]AnnotationKind{
	"contract": AnnotationContract,
	"deployer": AnnotationDeployer,
	"message":  AnnotationMessage,
}

// AnnotationKindOf maps a decorator name to its tag.
func AnnotationKindOf(name string) AnnotationKind {
	return annotationKinds[name]
}

func (k AnnotationKind) String() string {
	switch k {
	case AnnotationContract:
		return "contract"
	case AnnotationDeployer:
		return "deployer"
	case AnnotationMessage:
		return "message"
	default:
		return "unknown"
	}
}

// AnnotationArg is a decorator argument. Bare flags have an empty Value.
type AnnotationArg struct {
	Key   string
	Value string
}

// Annotation represents decorators like @contract, @deployer, @message(mutates = false)
type Annotation struct {
	Pos    Position
	EndPos Position
	Kind   AnnotationKind
	Name   string
	Args   []AnnotationArg
}

// TypeExpr is a syntactic type expression as written at a use site.
// Examples: "u64", "string[]", "Array<string>", "Map<string, u64>", "(a: u32) => void"
//
// Name is the name the host reports for the expression: "[]" for the bracket
// array form, "Array" / "Map" / the identifier otherwise. Text is the whole
// expression and is what the type table keys on.
type TypeExpr struct {
	Pos    Position
	EndPos Position
	Name   string
	Args   []*TypeExpr
	Text   string
	Func   *FuncSignature // non-nil for function types
}

// IsNamed reports whether the expression is a named type (anything but a function type).
func (t *TypeExpr) IsNamed() bool {
	return t != nil && t.Func == nil
}

func (t *TypeExpr) String() string {
	if t == nil {
		return ""
	}
	return t.Text
}

// FuncSignature is the shape of a function type expression.
type FuncSignature struct {
	Params []*Param
	Return *TypeExpr
}

// Param represents function parameters
// Example: "owner: string", "amount: u64"
type Param struct {
	Pos      Position
	EndPos   Position
	Name     Ident
	Type     *TypeExpr
	Optional bool
	Default  string
}

// FieldDecl represents a class field
// Example: "balance: u64;", "private supply?: u128 = 0;"
type FieldDecl struct {
	Pos         Position
	EndPos      Position
	Annotations []*Annotation
	Modifiers   []string
	Name        Ident
	Type        *TypeExpr
	Optional    bool
	Init        string
}

// FunctionDecl represents a method signature or a top-level function signature
// Example: "@message transfer(to: string, amount: u64): void;"
type FunctionDecl struct {
	Pos         Position
	EndPos      Position
	Annotations []*Annotation
	Modifiers   []string
	Name        Ident
	Params      []*Param
	Return      *TypeExpr // nil when the signature omits the return type
	Method      bool
}

// ClassDecl represents class declarations
// Example: "@contract class Token extends Contract implements Serializable { ... }"
type ClassDecl struct {
	Pos         Position
	EndPos      Position
	Annotations []*Annotation
	Exported    bool
	Abstract    bool
	Name        Ident
	Extends     *TypeExpr
	Implements  []*TypeExpr
	Fields      []*FieldDecl
	Methods     []*FunctionDecl
}

// InterfaceDecl represents interface declarations
// Example: "interface Serializable { serialize(): u8[]; }"
type InterfaceDecl struct {
	Pos         Position
	EndPos      Position
	Annotations []*Annotation
	Name        Ident
	Extends     []*TypeExpr
	Fields      []*FieldDecl
	Methods     []*FunctionDecl
}

// NamespaceDecl represents a namespace block; its members live in their own scope.
type NamespaceDecl struct {
	Pos         Position
	EndPos      Position
	Annotations []*Annotation
	Name        Ident
}

// AliasDecl represents type aliases
// Example: "type account_name = u64;"
type AliasDecl struct {
	Pos         Position
	EndPos      Position
	Annotations []*Annotation
	Name        Ident
	Type        *TypeExpr
}

package ast

// ElementID identifies an element inside its Program. NoElement is the zero value.
type ElementID int

const NoElement ElementID = 0

type ElementKind int

const (
	ClassLike ElementKind = iota
	FunctionLike
	AliasLike
	OtherLike
)

func (k ElementKind) String() string {
	switch k {
	case ClassLike:
		return "class"
	case FunctionLike:
		return "function"
	case AliasLike:
		return "alias"
	default:
		return "other"
	}
}

// Element is a declared symbol. The set of implementations is closed:
// *ClassElement, *FunctionElement, *AliasElement and *OtherElement.
type Element interface {
	ID() ElementID
	Name() string
	Parent() ElementID
	Kind() ElementKind
	Node() Node
	isElement()
}

type elementBase struct {
	id     ElementID
	name   string
	parent ElementID
}

func (e *elementBase) ID() ElementID     { return e.id }
func (e *elementBase) Name() string      { return e.name }
func (e *elementBase) Parent() ElementID { return e.parent }
func (*elementBase) isElement()          {}

// ClassElement is a declared class. Base is filled in by Program.Link.
type ClassElement struct {
	elementBase
	Decl    *ClassDecl
	Base    ElementID
	Methods []ElementID
}

func (*ClassElement) Kind() ElementKind { return ClassLike }
func (c *ClassElement) Node() Node      { return c.Decl }

// FunctionElement is a top-level function or a class method (Parent is the class).
type FunctionElement struct {
	elementBase
	Decl *FunctionDecl
}

func (*FunctionElement) Kind() ElementKind { return FunctionLike }
func (f *FunctionElement) Node() Node      { return f.Decl }

type AliasElement struct {
	elementBase
	Decl *AliasDecl
}

func (*AliasElement) Kind() ElementKind { return AliasLike }
func (a *AliasElement) Node() Node      { return a.Decl }

// OtherElement covers interfaces and namespaces. Namespaces open a scope of
// their own through members.
type OtherElement struct {
	elementBase
	Decl    Declaration
	members map[string]ElementID
}

func (*OtherElement) Kind() ElementKind { return OtherLike }
func (o *OtherElement) Node() Node      { return o.Decl }

// IsScope reports whether the element declares members of its own.
func (o *OtherElement) IsScope() bool {
	_, ok := o.Decl.(*NamespaceDecl)
	return ok
}

// Member returns the member declared directly inside a namespace.
func (o *OtherElement) Member(name string) (ElementID, bool) {
	id, ok := o.members[name]
	return id, ok
}

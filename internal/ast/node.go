package ast

import "fmt"

type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
}

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Contains reports whether the (line, column) pair falls inside [p, end).
func (p Position) Contains(end Position, line, column int) bool {
	if line < p.Line || line > end.Line {
		return false
	}
	if line == p.Line && column < p.Column {
		return false
	}
	if line == end.Line && column >= end.Column {
		return false
	}
	return true
}

type NodeType int

const (
	ILLEGAL NodeType = iota

	// Declarations
	CLASS_DECL
	INTERFACE_DECL
	NAMESPACE_DECL
	ALIAS_DECL
	FUNCTION_DECL
	FIELD_DECL

	// Parts
	ANNOTATION
	PARAM
	TYPE_EXPR
)

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return ILLEGAL }

func (a *Annotation) NodePos() Position    { return a.Pos }
func (a *Annotation) NodeEndPos() Position { return a.EndPos }
func (*Annotation) NodeType() NodeType     { return ANNOTATION }

func (t *TypeExpr) NodePos() Position    { return t.Pos }
func (t *TypeExpr) NodeEndPos() Position { return t.EndPos }
func (*TypeExpr) NodeType() NodeType     { return TYPE_EXPR }

func (p *Param) NodePos() Position    { return p.Pos }
func (p *Param) NodeEndPos() Position { return p.EndPos }
func (*Param) NodeType() NodeType     { return PARAM }

func (f *FieldDecl) NodePos() Position    { return f.Pos }
func (f *FieldDecl) NodeEndPos() Position { return f.EndPos }
func (*FieldDecl) NodeType() NodeType     { return FIELD_DECL }

func (f *FunctionDecl) NodePos() Position    { return f.Pos }
func (f *FunctionDecl) NodeEndPos() Position { return f.EndPos }
func (*FunctionDecl) NodeType() NodeType     { return FUNCTION_DECL }

func (c *ClassDecl) NodePos() Position    { return c.Pos }
func (c *ClassDecl) NodeEndPos() Position { return c.EndPos }
func (*ClassDecl) NodeType() NodeType     { return CLASS_DECL }

func (i *InterfaceDecl) NodePos() Position    { return i.Pos }
func (i *InterfaceDecl) NodeEndPos() Position { return i.EndPos }
func (*InterfaceDecl) NodeType() NodeType     { return INTERFACE_DECL }

func (n *NamespaceDecl) NodePos() Position    { return n.Pos }
func (n *NamespaceDecl) NodeEndPos() Position { return n.EndPos }
func (*NamespaceDecl) NodeType() NodeType     { return NAMESPACE_DECL }

func (a *AliasDecl) NodePos() Position    { return a.Pos }
func (a *AliasDecl) NodeEndPos() Position { return a.EndPos }
func (*AliasDecl) NodeType() NodeType     { return ALIAS_DECL }

// Declaration is any node that carries a name and attached annotations.
type Declaration interface {
	Node
	DeclName() string
	DeclAnnotations() []*Annotation
}

func (f *FieldDecl) DeclName() string                   { return f.Name.Value }
func (f *FieldDecl) DeclAnnotations() []*Annotation     { return f.Annotations }
func (f *FunctionDecl) DeclName() string                { return f.Name.Value }
func (f *FunctionDecl) DeclAnnotations() []*Annotation  { return f.Annotations }
func (c *ClassDecl) DeclName() string                   { return c.Name.Value }
func (c *ClassDecl) DeclAnnotations() []*Annotation     { return c.Annotations }
func (i *InterfaceDecl) DeclName() string               { return i.Name.Value }
func (i *InterfaceDecl) DeclAnnotations() []*Annotation { return i.Annotations }
func (n *NamespaceDecl) DeclName() string               { return n.Name.Value }
func (n *NamespaceDecl) DeclAnnotations() []*Annotation { return n.Annotations }
func (a *AliasDecl) DeclName() string                   { return a.Name.Value }
func (a *AliasDecl) DeclAnnotations() []*Annotation     { return a.Annotations }

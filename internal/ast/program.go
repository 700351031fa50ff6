package ast

import (
	"fmt"
	"strings"
)

// DuplicateDeclarationError is returned when a name is declared twice in one scope.
type DuplicateDeclarationError struct {
	Name     string
	Pos      Position
	Previous Position
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("duplicate declaration '%s' (previously declared at %s)", e.Name, e.Previous)
}

// CyclicInheritanceError is returned by Link when an extends chain loops back on itself.
type CyclicInheritanceError struct {
	Class string
	Pos   Position
	Chain []string
}

func (e *CyclicInheritanceError) Error() string {
	return fmt.Sprintf("class '%s' inherits from itself: %s", e.Class, strings.Join(e.Chain, " -> "))
}

// Program owns every declared element of one translation unit. Elements are
// stored in an arena indexed by ElementID; relations between elements (base
// classes, enclosing scopes) are expressed as IDs.
type Program struct {
	Filename string
	elements []Element
	globals  map[string]ElementID
	topLevel []ElementID
}

func NewProgram(filename string) *Program {
	return &Program{
		Filename: filename,
		globals:  make(map[string]ElementID),
	}
}

// Element returns the element with the given ID, or nil.
func (p *Program) Element(id ElementID) Element {
	if id <= NoElement || int(id) > len(p.elements) {
		return nil
	}
	return p.elements[id-1]
}

// Len returns the number of elements in the arena.
func (p *Program) Len() int {
	return len(p.elements)
}

// Elements returns all elements, class members included, in declaration order.
func (p *Program) Elements() []Element {
	out := make([]Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// TopLevel returns every declaration that is not a class member, in
// declaration order. Declarations nested in namespaces are included.
func (p *Program) TopLevel() []Element {
	out := make([]Element, 0, len(p.topLevel))
	for _, id := range p.topLevel {
		out = append(out, p.Element(id))
	}
	return out
}

func (p *Program) AddClass(decl *ClassDecl, parent ElementID) (*ClassElement, error) {
	el := &ClassElement{Decl: decl}
	if err := p.define(el, &el.elementBase, decl.Name, parent); err != nil {
		return nil, err
	}
	return el, nil
}

func (p *Program) AddAlias(decl *AliasDecl, parent ElementID) (*AliasElement, error) {
	el := &AliasElement{Decl: decl}
	if err := p.define(el, &el.elementBase, decl.Name, parent); err != nil {
		return nil, err
	}
	return el, nil
}

func (p *Program) AddInterface(decl *InterfaceDecl, parent ElementID) (*OtherElement, error) {
	el := &OtherElement{Decl: decl}
	if err := p.define(el, &el.elementBase, decl.Name, parent); err != nil {
		return nil, err
	}
	return el, nil
}

func (p *Program) AddNamespace(decl *NamespaceDecl, parent ElementID) (*OtherElement, error) {
	el := &OtherElement{Decl: decl, members: make(map[string]ElementID)}
	if err := p.define(el, &el.elementBase, decl.Name, parent); err != nil {
		return nil, err
	}
	return el, nil
}

// AddFunction declares a function. When parent is a class the function becomes
// one of its methods and is not visible to name lookup.
func (p *Program) AddFunction(decl *FunctionDecl, parent ElementID) (*FunctionElement, error) {
	el := &FunctionElement{Decl: decl}
	if class, ok := p.Element(parent).(*ClassElement); ok {
		p.push(el, &el.elementBase, decl.Name.Value, parent)
		class.Methods = append(class.Methods, el.id)
		return el, nil
	}
	if err := p.define(el, &el.elementBase, decl.Name, parent); err != nil {
		return nil, err
	}
	return el, nil
}

func (p *Program) push(el Element, base *elementBase, name string, parent ElementID) {
	p.elements = append(p.elements, el)
	base.id = ElementID(len(p.elements))
	base.name = name
	base.parent = parent
}

func (p *Program) define(el Element, base *elementBase, name Ident, parent ElementID) error {
	scope := p.globals
	if ns, ok := p.Element(parent).(*OtherElement); ok && ns.IsScope() {
		scope = ns.members
	}
	if prev, exists := scope[name.Value]; exists {
		return &DuplicateDeclarationError{
			Name:     name.Value,
			Pos:      name.Pos,
			Previous: p.Element(prev).Node().NodePos(),
		}
	}

	p.push(el, base, name.Value, parent)
	scope[name.Value] = base.id
	p.topLevel = append(p.topLevel, base.id)
	return nil
}

// Methods returns the methods of a class in declaration order.
func (p *Program) Methods(class *ClassElement) []*FunctionElement {
	methods := make([]*FunctionElement, 0, len(class.Methods))
	for _, id := range class.Methods {
		if fn, ok := p.Element(id).(*FunctionElement); ok {
			methods = append(methods, fn)
		}
	}
	return methods
}

// Base returns the immediate base class, or nil for a root class.
func (p *Program) Base(class *ClassElement) *ClassElement {
	base, _ := p.Element(class.Base).(*ClassElement)
	return base
}

// Lookup resolves a name as seen from scope: enclosing namespaces first,
// innermost outwards, then the global scope. Dotted names walk namespaces.
func (p *Program) Lookup(name string, scope ElementID) Element {
	if head, rest, qualified := strings.Cut(name, "."); qualified {
		el := p.Lookup(head, scope)
		for _, part := range strings.Split(rest, ".") {
			ns, ok := el.(*OtherElement)
			if !ok || !ns.IsScope() {
				return nil
			}
			id, ok := ns.Member(part)
			if !ok {
				return nil
			}
			el = p.Element(id)
		}
		return el
	}

	for cur := p.Element(scope); cur != nil; cur = p.Element(cur.Parent()) {
		if ns, ok := cur.(*OtherElement); ok && ns.IsScope() {
			if id, found := ns.Member(name); found {
				return p.Element(id)
			}
		}
	}
	if id, ok := p.globals[name]; ok {
		return p.Element(id)
	}
	return nil
}

// Link resolves the base class of every class and rejects cyclic extends
// chains. Classes that are part of a cycle are left without a base so that
// upward walks always terminate.
func (p *Program) Link() []error {
	var errs []error

	for _, el := range p.elements {
		class, ok := el.(*ClassElement)
		if !ok || class.Decl.Extends == nil {
			continue
		}
		if base, ok := p.Lookup(class.Decl.Extends.Name, class.Parent()).(*ClassElement); ok {
			class.Base = base.ID()
		}
	}

	for _, el := range p.elements {
		class, ok := el.(*ClassElement)
		if !ok {
			continue
		}
		seen := map[ElementID]bool{class.ID(): true}
		chain := []string{class.Name()}
		for cur := p.Base(class); cur != nil; cur = p.Base(cur) {
			chain = append(chain, cur.Name())
			if seen[cur.ID()] {
				// A cycle that does not pass through class is reported for its own members.
				if cur.ID() == class.ID() {
					errs = append(errs, &CyclicInheritanceError{
						Class: class.Name(),
						Pos:   class.Decl.Name.Pos,
						Chain: chain,
					})
					class.Base = NoElement
				}
				break
			}
			seen[cur.ID()] = true
		}
	}

	return errs
}

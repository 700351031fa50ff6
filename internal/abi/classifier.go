package abi

import (
	"contractabi/internal/ast"
	"contractabi/internal/config"
)

// Classifier answers questions about declarations from their annotations and
// implemented interfaces. It never modifies the program.
type Classifier struct {
	program *ast.Program
	markers config.MarkersConfig
}

func NewClassifier(program *ast.Program, markers config.MarkersConfig) *Classifier {
	return &Classifier{program: program, markers: markers}
}

// HasAnnotation reports whether any annotation attached to decl carries kind.
func (c *Classifier) HasAnnotation(decl ast.Declaration, kind ast.AnnotationKind) bool {
	return c.Annotation(decl, kind) != nil
}

// Annotation returns the first annotation of the given kind in declaration order.
func (c *Classifier) Annotation(decl ast.Declaration, kind ast.AnnotationKind) *ast.Annotation {
	if decl == nil {
		return nil
	}
	for _, a := range decl.DeclAnnotations() {
		if a.Kind == kind {
			return a
		}
	}
	return nil
}

// ImplementsInterface walks the class and its ancestors upward and reports
// whether any of them lists name in its implements clause.
func (c *Classifier) ImplementsInterface(class *ast.ClassElement, name string) bool {
	for cur := class; cur != nil; cur = c.program.Base(cur) {
		if c.ImplementsDirectly(cur, name) {
			return true
		}
	}
	return false
}

// ImplementsDirectly only looks at the class's own implements clause.
func (c *Classifier) ImplementsDirectly(class *ast.ClassElement, name string) bool {
	if class == nil {
		return false
	}
	for _, impl := range class.Decl.Implements {
		if impl.Name == name {
			return true
		}
	}
	return false
}

// ExtendsBaseNamed checks the immediate base only. Framework bases are often
// not declared in the unit, so the extends clause is compared as written.
func (c *Classifier) ExtendsBaseNamed(class *ast.ClassElement, baseName string) bool {
	if class == nil || class.Decl.Extends == nil {
		return false
	}
	if base := c.program.Base(class); base != nil {
		return base.Name() == baseName
	}
	return class.Decl.Extends.Name == baseName
}

// InterfacesOf lists the interfaces of the class and its ancestors, nearest first.
func (c *Classifier) InterfacesOf(class *ast.ClassElement) []string {
	var interfaces []string
	for cur := class; cur != nil; cur = c.program.Base(cur) {
		for _, impl := range cur.Decl.Implements {
			interfaces = append(interfaces, impl.Name)
		}
	}
	return interfaces
}

func (c *Classifier) IsContractRoot(class *ast.ClassElement) bool {
	return c.HasAnnotation(class.Decl, ast.AnnotationContract) ||
		c.ImplementsInterface(class, c.markers.ContractInterface) ||
		c.ExtendsBaseNamed(class, c.markers.ContractBase)
}

func (c *Classifier) IsStorageClass(class *ast.ClassElement) bool {
	return c.ImplementsInterface(class, c.markers.StorageInterface)
}

func (c *Classifier) IsDeployer(fn *ast.FunctionElement) bool {
	return c.HasAnnotation(fn.Decl, ast.AnnotationDeployer)
}

func (c *Classifier) IsMessage(fn *ast.FunctionElement) bool {
	return c.HasAnnotation(fn.Decl, ast.AnnotationMessage)
}

// DuplicateAnnotations returns every annotation that repeats an earlier
// known annotation of the same kind on decl.
func (c *Classifier) DuplicateAnnotations(decl ast.Declaration) []*ast.Annotation {
	var dups []*ast.Annotation
	seen := make(map[ast.AnnotationKind]bool)
	for _, a := range decl.DeclAnnotations() {
		if a.Kind == ast.AnnotationUnknown {
			continue
		}
		if seen[a.Kind] {
			dups = append(dups, a)
			continue
		}
		seen[a.Kind] = true
	}
	return dups
}

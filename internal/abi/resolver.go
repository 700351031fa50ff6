package abi

import (
	"fmt"
	"sort"
	"strings"

	"contractabi/internal/ast"
	"contractabi/internal/config"
	"contractabi/internal/errors"
)

// Resolver turns syntactic type expressions into TypeDescriptors, looking
// names up through the program as seen from a requesting scope.
//
// Resolution is permissive: a name that resolves to nothing becomes an opaque
// number and is recorded in Warnings. Failures are CompilerErrors with codes
// E0200 (not an array), E0201 (too deep) and E0202 (function type).
type Resolver struct {
	program    *ast.Program
	classifier *Classifier
	cfg        *config.Config

	Warnings []errors.CompilerError
}

func NewResolver(program *ast.Program, cfg *config.Config) *Resolver {
	return &Resolver{
		program:    program,
		classifier: NewClassifier(program, cfg.Markers),
		cfg:        cfg,
	}
}

// Resolve resolves expr as seen from scope.
func (r *Resolver) Resolve(expr *ast.TypeExpr, scope ast.ElementID) (*TypeDescriptor, error) {
	return r.resolve(expr, scope, 0)
}

// ResolveName resolves a bare type name, as written without arguments.
func (r *Resolver) ResolveName(name string, scope ast.ElementID) (*TypeDescriptor, error) {
	return r.Resolve(&ast.TypeExpr{Name: name, Text: name}, scope)
}

func (r *Resolver) resolve(expr *ast.TypeExpr, scope ast.ElementID, depth int) (*TypeDescriptor, error) {
	if depth > r.cfg.Resolver.MaxDepth {
		return nil, errors.UnresolvableAliasDepth(expr.Text, r.cfg.Resolver.MaxDepth, expr.Pos)
	}
	if !expr.IsNamed() {
		return nil, errors.UnsupportedType(expr.Text, "a type argument", expr.Pos)
	}

	desc := &TypeDescriptor{
		Name:         expr.Name,
		OriginalType: expr.Text,
		Pos:          expr.Pos,
	}

	switch {
	case IsString(expr.Name):
		desc.Kind = KindString
		desc.CanonicalName = string(String)

	case IsArrayType(expr.Name):
		elem, err := r.ArrayArgument(expr)
		if err != nil {
			return nil, err
		}
		arg, err := r.resolve(elem, scope, depth+1)
		if err != nil {
			return nil, err
		}
		desc.Kind = KindArray
		desc.TypeArguments = []*TypeDescriptor{arg}
		desc.CanonicalName = arg.CanonicalName + "[]"

	case IsMapType(expr.Name):
		desc.Kind = KindMap
		canonical := make([]string, 0, len(expr.Args))
		for _, a := range expr.Args {
			arg, err := r.resolve(a, scope, depth+1)
			if err != nil {
				return nil, err
			}
			desc.TypeArguments = append(desc.TypeArguments, arg)
			canonical = append(canonical, arg.CanonicalName)
		}
		desc.CanonicalName = "Map<" + strings.Join(canonical, ", ") + ">"

	default:
		if err := r.resolveSymbol(desc, expr, scope, depth); err != nil {
			return nil, err
		}
	}

	r.finish(desc)
	return desc, nil
}

// resolveSymbol classifies a plain name by looking it up. An alias is a
// number whatever it names; chasing its right-hand side in the alias's own
// scope only settles the canonical name, so an alias of a numeric primitive
// shares that primitive's codec. The use-site Name and OriginalType are kept.
func (r *Resolver) resolveSymbol(desc *TypeDescriptor, expr *ast.TypeExpr, scope ast.ElementID, depth int) error {
	desc.Kind = KindNumber
	desc.CanonicalName = expr.Name

	if expr.Name == r.cfg.Markers.AssetAlias {
		return nil
	}

	el := r.program.Lookup(expr.Name, scope)
	switch el := el.(type) {
	case *ast.AliasElement:
		rhs := el.Decl.Type
		if !rhs.IsNamed() {
			return errors.UnsupportedType(rhs.Text, fmt.Sprintf("alias '%s'", el.Name()), expr.Pos)
		}
		target, err := r.resolve(rhs, el.Parent(), depth+1)
		if err != nil {
			return err
		}
		desc.CanonicalName = target.CanonicalName

	case *ast.ClassElement:
		desc.Kind = KindClass
		desc.Serializable = r.classifier.IsStorageClass(el)
		desc.Returnable = r.classifier.ImplementsDirectly(el, r.cfg.Markers.ReturnableInterface)

	case *ast.FunctionElement, *ast.OtherElement:
		// Declared but not a type that can be encoded; kept as an opaque number.

	case nil:
		if !IsPrimitive(expr.Name) {
			r.warn(errors.UnresolvedType(expr.Name, expr.Pos, r.candidates()))
		}
	}
	return nil
}

// isFunctionType reports whether expr is a function type, written inline or
// reached through aliases.
func (r *Resolver) isFunctionType(expr *ast.TypeExpr, scope ast.ElementID) bool {
	for i, n := 0, r.cfg.Resolver.MaxDepth+1; i < n; i++ {
		if !expr.IsNamed() {
			return true
		}
		if expr.Name == r.cfg.Markers.AssetAlias {
			return false
		}
		alias, ok := r.program.Lookup(expr.Name, scope).(*ast.AliasElement)
		if !ok {
			return false
		}
		expr, scope = alias.Decl.Type, alias.Parent()
	}
	return false
}

// warn records w once; the same occurrence can be resolved for more than one callable group.
func (r *Resolver) warn(w errors.CompilerError) {
	for _, prev := range r.Warnings {
		if prev.Code == w.Code && prev.Position == w.Position && prev.Message == w.Message {
			return
		}
	}
	r.Warnings = append(r.Warnings, w)
}

func (r *Resolver) finish(desc *TypeDescriptor) {
	if desc.Kind == KindNumber || desc.Kind == KindString {
		desc.CodecHint = CodecHint(desc.CanonicalName)
		desc.DefaultValue = DefaultValue(desc.CanonicalName)
	}
	desc.primaryKey = desc.Kind == KindNumber && desc.CanonicalName == r.cfg.Resolver.PrimaryKeyType
}

// ArrayArgument returns the element type expression of an array type expression.
func (r *Resolver) ArrayArgument(expr *ast.TypeExpr) (*ast.TypeExpr, error) {
	if !IsArrayType(expr.Name) || len(expr.Args) != 1 {
		return nil, errors.NotAnArrayType(expr.Text, expr.Pos)
	}
	return expr.Args[0], nil
}

// ArrayElementType extracts the element type from the text of an array
// type. For "T[]" it is the text before the first space or '[', for
// "Array<T>" the text between the first '<' and the first '>'.
//
// It is the textual counterpart of ArrayArgument, kept for consumers that
// only hold a declared type string, such as a code generator reading the
// ABI types of a dumped model.
func ArrayElementType(text string, pos ast.Position) (string, error) {
	switch {
	case strings.HasSuffix(text, "[]"):
		end := strings.Index(text, "[")
		if space := strings.Index(text, " "); space != -1 && space < end {
			end = space
		}
		return text[:end], nil

	case strings.HasPrefix(text, "Array<") && strings.HasSuffix(text, ">"):
		start := strings.Index(text, "<")
		end := strings.Index(text, ">")
		return text[start+1 : end], nil

	default:
		return "", errors.NotAnArrayType(text, pos)
	}
}

// candidates lists names a misspelled type might have meant.
func (r *Resolver) candidates() []string {
	var names []string
	for _, el := range r.program.TopLevel() {
		switch el.(type) {
		case *ast.ClassElement, *ast.AliasElement:
			names = append(names, el.Name())
		}
	}
	for name := range codecHints {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

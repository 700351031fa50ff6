package abi

import (
	"fmt"

	"contractabi/internal/ast"
	"contractabi/internal/errors"
)

type FunctionKind int

const (
	FunctionDeployer FunctionKind = iota
	FunctionMessage
)

func (k FunctionKind) String() string {
	if k == FunctionDeployer {
		return "deployer"
	}
	return "message"
}

// Parameter is one parameter of a callable function.
type Parameter struct {
	Name string
	Type *TypeDescriptor
}

// FunctionDescriptor describes one externally callable function of the contract.
type FunctionDescriptor struct {
	Name       string
	Kind       FunctionKind
	Parameters []*Parameter

	// ReturnType is nil for functions that return no value.
	ReturnType     *TypeDescriptor
	HasReturnValue bool

	// Attributes are the arguments of the deployer or message annotation.
	Attributes []ast.AnnotationArg

	Pos ast.Position
}

// FunctionBuilder builds FunctionDescriptors. It does not touch the type table.
type FunctionBuilder struct {
	resolver   *Resolver
	classifier *Classifier
}

func NewFunctionBuilder(resolver *Resolver) *FunctionBuilder {
	return &FunctionBuilder{resolver: resolver, classifier: resolver.classifier}
}

// Build resolves the parameters and return type of fn. Each parameter keeps
// its original type text, the key the assembler deduplicates on.
func (b *FunctionBuilder) Build(fn *ast.FunctionElement, kind FunctionKind) (*FunctionDescriptor, error) {
	desc := &FunctionDescriptor{
		Name: fn.Name(),
		Kind: kind,
		Pos:  fn.Decl.Name.Pos,
	}

	annotation := ast.AnnotationMessage
	if kind == FunctionDeployer {
		annotation = ast.AnnotationDeployer
	}
	if a := b.classifier.Annotation(fn.Decl, annotation); a != nil {
		desc.Attributes = a.Args
	}

	for _, param := range fn.Decl.Params {
		if !param.Type.IsNamed() {
			return nil, errors.UnsupportedType(param.Type.Text,
				fmt.Sprintf("parameter '%s' of '%s'", param.Name.Value, fn.Name()), param.Type.Pos)
		}
		typ, err := b.resolver.Resolve(param.Type, fn.Parent())
		if err != nil {
			return nil, err
		}
		desc.Parameters = append(desc.Parameters, &Parameter{Name: param.Name.Value, Type: typ})
	}

	ret := fn.Decl.Return
	if ret == nil || ret.Name == "void" {
		return desc, nil
	}
	if !ret.IsNamed() {
		return nil, errors.UnsupportedType(ret.Text, fmt.Sprintf("the return value of '%s'", fn.Name()), ret.Pos)
	}
	typ, err := b.resolver.Resolve(ret, fn.Parent())
	if err != nil {
		return nil, err
	}
	desc.ReturnType = typ
	desc.HasReturnValue = true
	return desc, nil
}

func (f *FunctionDescriptor) String() string {
	s := f.Kind.String() + " " + f.Name + "("
	for i, p := range f.Parameters {
		if i > 0 {
			s += ", "
		}
		s += p.Name + ": " + p.Type.OriginalType
	}
	s += ")"
	if f.HasReturnValue {
		s += ": " + f.ReturnType.OriginalType
	}
	return s
}

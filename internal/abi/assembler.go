package abi

import (
	"contractabi/internal/ast"
	"contractabi/internal/config"
	"contractabi/internal/errors"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("contractabi.abi")

// State is the lifecycle of an Assembler. Done is terminal.
type State int

const (
	StateDiscovering State = iota
	StateAssembling
	StateDone
)

func (s State) String() string {
	switch s {
	case StateDiscovering:
		return "discovering"
	case StateAssembling:
		return "assembling"
	default:
		return "done"
	}
}

// Assembler builds one ContractModel from a linked Program. It owns the
// type table and the index counter; an Assembler runs exactly once.
type Assembler struct {
	program    *ast.Program
	cfg        *config.Config
	classifier *Classifier
	resolver   *Resolver
	functions  *FunctionBuilder

	state     State
	lastIndex int
	table     *TypeTable
	contract  *ContractDescriptor
	storages  []*StorageDescriptor
}

func NewAssembler(program *ast.Program, cfg *config.Config) *Assembler {
	if cfg == nil {
		cfg = config.Default()
	}
	resolver := NewResolver(program, cfg)
	return &Assembler{
		program:    program,
		cfg:        cfg,
		classifier: resolver.classifier,
		resolver:   resolver,
		functions:  NewFunctionBuilder(resolver),
		table:      NewTypeTable(),
	}
}

// Assemble runs a fresh Assembler over program.
func Assemble(program *ast.Program, cfg *config.Config) (*ContractModel, error) {
	return NewAssembler(program, cfg).Assemble()
}

func (a *Assembler) State() State {
	return a.state
}

// Assemble discovers the contract root and storage classes, then builds the
// type table and storage layouts. Any error aborts the whole pass and no
// model is returned.
func (a *Assembler) Assemble() (*ContractModel, error) {
	if a.state != StateDiscovering {
		return nil, errors.AssemblerReused()
	}
	defer func() { a.state = StateDone }()

	if err := a.discover(); err != nil {
		log.Errorf("discovery failed: %s", err)
		return nil, err
	}

	a.state = StateAssembling
	a.assemble()

	for _, w := range a.resolver.Warnings {
		log.Warningf("%s", w)
	}
	log.Infof("assembled %s: %d types, %d storage classes", a.program.Filename, a.table.Len(), len(a.storages))

	return &ContractModel{
		Contract: a.contract,
		Storages: a.storages,
		Types:    a.table,
		Warnings: a.resolver.Warnings,
	}, nil
}

func (a *Assembler) warn(w errors.CompilerError) {
	a.resolver.warn(w)
}

func (a *Assembler) discover() error {
	var root *ast.ClassElement
	var classes []*ast.ClassElement

	for _, el := range a.program.TopLevel() {
		switch el := el.(type) {
		case *ast.ClassElement:
			classes = append(classes, el)
			a.checkAnnotations(el.Decl)
			for _, m := range a.program.Methods(el) {
				a.checkAnnotations(m.Decl)
			}

			if a.classifier.IsContractRoot(el) {
				if root != nil {
					if !a.cfg.Assembly.AllowMultipleRoots {
						return errors.MultipleContractRoots(el.Name(), root.Name(), el.Decl.Name.Pos)
					}
					a.warn(errors.ReplacedContractRoot(el.Name(), root.Name(), el.Decl.Name.Pos))
				}
				log.Debugf("contract root candidate: %s", el.Name())
				root = el
			}

			if a.classifier.IsStorageClass(el) {
				fields, err := a.resolver.BuildFields(el)
				if err != nil {
					return err
				}
				log.Debugf("storage class %s: %d fields", el.Name(), len(fields))
				a.storages = append(a.storages, &StorageDescriptor{
					ClassName:  el.Name(),
					Fields:     fields,
					Interfaces: a.classifier.InterfacesOf(el),
					Pos:        el.Decl.Name.Pos,
				})
			}

		case *ast.FunctionElement, *ast.AliasElement, *ast.OtherElement:
			a.checkAnnotations(el.Node().(ast.Declaration))
		}
	}

	for _, class := range classes {
		if class != root {
			a.checkStrayCallables(class)
		}
	}

	if root == nil {
		log.Debugf("no contract root in %s", a.program.Filename)
		return nil
	}
	return a.buildContract(root)
}

func (a *Assembler) buildContract(root *ast.ClassElement) error {
	a.contract = &ContractDescriptor{
		Name:       root.Name(),
		Interfaces: a.classifier.InterfacesOf(root),
		Pos:        root.Decl.Name.Pos,
	}

	for _, m := range a.program.Methods(root) {
		if a.classifier.IsDeployer(m) {
			fn, err := a.functions.Build(m, FunctionDeployer)
			if err != nil {
				return err
			}
			a.contract.Deployers = append(a.contract.Deployers, fn)
		}
		if a.classifier.IsMessage(m) {
			fn, err := a.functions.Build(m, FunctionMessage)
			if err != nil {
				return err
			}
			a.contract.Messages = append(a.contract.Messages, fn)
		}
	}
	return nil
}

func (a *Assembler) checkAnnotations(decl ast.Declaration) {
	for _, dup := range a.classifier.DuplicateAnnotations(decl) {
		a.warn(errors.DuplicateAnnotation(dup.Name, decl.DeclName(), dup.Pos))
	}
}

func (a *Assembler) checkStrayCallables(class *ast.ClassElement) {
	for _, m := range a.program.Methods(class) {
		for _, kind := range []ast.AnnotationKind{ast.AnnotationDeployer, ast.AnnotationMessage} {
			if ann := a.classifier.Annotation(m.Decl, kind); ann != nil {
				a.warn(errors.CallableOutsideContract(m.Name(), class.Name(), ann.Name, ann.Pos))
			}
		}
	}
}

// assemble walks deployers, then messages (parameters before the return
// type), then storage fields, and places each top-level occurrence in the
// type table.
func (a *Assembler) assemble() {
	if a.contract != nil {
		for _, fn := range a.contract.Deployers {
			a.placeFunction(fn)
		}
		for _, fn := range a.contract.Messages {
			a.placeFunction(fn)
		}
	}

	for _, s := range a.storages {
		for _, f := range s.Fields {
			a.place(f.Type)
			f.Layout = &CellLayout{TypeIndex: f.Type.Index, StorageKey: f.StorageKey}
		}
	}
}

func (a *Assembler) placeFunction(fn *FunctionDescriptor) {
	for _, p := range fn.Parameters {
		a.place(p.Type)
	}
	if fn.ReturnType != nil {
		a.place(fn.ReturnType)
	}
}

// place gives desc the index of its original type string, assigning the
// next index the first time the string is seen.
func (a *Assembler) place(desc *TypeDescriptor) {
	if existing, ok := a.table.Get(desc.OriginalType); ok {
		desc.Index = existing.Index
		return
	}
	a.lastIndex++
	desc.Index = a.lastIndex
	a.table.insert(desc.OriginalType, desc)
	log.Debugf("type %d: %s", desc.Index, desc.OriginalType)
}

package abi

import (
	"fmt"
	"strings"

	"contractabi/internal/ast"
	"contractabi/internal/errors"
)

// ContractDescriptor is the contract root class and its callable surface.
type ContractDescriptor struct {
	Name       string
	Deployers  []*FunctionDescriptor
	Messages   []*FunctionDescriptor
	Interfaces []string
	Pos        ast.Position
}

// StorageDescriptor is a storage class with its laid out fields.
type StorageDescriptor struct {
	ClassName  string
	Fields     []*FieldDescriptor
	Interfaces []string
	Pos        ast.Position
}

// ContractModel is the assembled result of one translation unit.
type ContractModel struct {
	// Contract is nil when no class qualifies as the contract root.
	Contract *ContractDescriptor
	Storages []*StorageDescriptor
	Types    *TypeTable
	Warnings []errors.CompilerError
}

// Callables returns the deployer functions followed by the message functions.
func (m *ContractModel) Callables() []*FunctionDescriptor {
	if m.Contract == nil {
		return nil
	}
	out := make([]*FunctionDescriptor, 0, len(m.Contract.Deployers)+len(m.Contract.Messages))
	out = append(out, m.Contract.Deployers...)
	return append(out, m.Contract.Messages...)
}

func (m *ContractModel) Storage(className string) *StorageDescriptor {
	for _, s := range m.Storages {
		if s.ClassName == className {
			return s
		}
	}
	return nil
}

func (s *StorageDescriptor) Field(name string) *FieldDescriptor {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (m *ContractModel) String() string {
	var b strings.Builder

	if m.Contract != nil {
		fmt.Fprintf(&b, "contract %s\n", m.Contract.Name)
		for _, fn := range m.Callables() {
			fmt.Fprintf(&b, "  %s\n", fn)
		}
	} else {
		b.WriteString("no contract\n")
	}

	for _, s := range m.Storages {
		fmt.Fprintf(&b, "storage %s\n", s.ClassName)
		for _, f := range s.Fields {
			fmt.Fprintf(&b, "  %s: %s", f.Name, f.Type.OriginalType)
			if f.Layout != nil {
				fmt.Fprintf(&b, " @%d key=%s", f.Layout.TypeIndex, f.Layout.StorageKey)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("types\n")
	for _, t := range m.Types.Entries() {
		fmt.Fprintf(&b, "  %d %s\n", t.Index, t)
	}
	return b.String()
}

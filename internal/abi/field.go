package abi

import (
	"contractabi/internal/ast"
	"contractabi/internal/errors"
)

// CellLayout places a storage field: the type table index of its type and its key.
type CellLayout struct {
	TypeIndex  int
	StorageKey string
}

// FieldDescriptor is one persisted field of a storage class. Layout stays nil
// until the assembler has built the type table.
type FieldDescriptor struct {
	Name       string
	OwnerName  string
	VarName    string
	Type       *TypeDescriptor
	StorageKey string
	Layout     *CellLayout
	Pos        ast.Position
}

// BuildFields describes the declared fields of a storage class in
// declaration order. Fields of function type, written inline or through an
// alias, are skipped with a warning.
func (r *Resolver) BuildFields(class *ast.ClassElement) ([]*FieldDescriptor, error) {
	var fields []*FieldDescriptor

	for _, f := range class.Decl.Fields {
		if r.isFunctionType(f.Type, class.Parent()) {
			r.warn(errors.SkippedField(class.Name(), f.Name.Value, f.Type.Text, f.Name.Pos))
			continue
		}

		typ, err := r.Resolve(f.Type, class.Parent())
		if err != nil {
			return nil, err
		}
		fields = append(fields, &FieldDescriptor{
			Name:       f.Name.Value,
			OwnerName:  class.Name(),
			VarName:    "_" + f.Name.Value,
			Type:       typ,
			StorageKey: class.Name() + f.Name.Value,
			Pos:        f.Name.Pos,
		})
	}

	return fields, nil
}

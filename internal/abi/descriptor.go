package abi

import (
	"strings"

	"contractabi/internal/ast"
)

// TypeKind is the closed set of encodings a type occurrence can have.
type TypeKind int

const (
	KindNumber TypeKind = iota
	KindString
	KindArray
	KindMap
	KindClass
)

func (k TypeKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindClass:
		return "class"
	default:
		return "unknown"
	}
}

// TypeDescriptor is the canonical description of one type occurrence.
//
// Name is the type name as written at the use site ("[]" for the bracket
// array form) and OriginalType the whole expression; neither is alias
// resolved. CanonicalName is the name reached after chasing aliases.
// Index is 0 until the assembler places the occurrence in the type table.
type TypeDescriptor struct {
	Kind          TypeKind
	Name          string
	OriginalType  string
	CanonicalName string
	TypeArguments []*TypeDescriptor
	CodecHint     string
	DefaultValue  string
	Index         int

	// Class descriptors only.
	Serializable bool
	Returnable   bool

	Pos ast.Position

	primaryKey bool
}

// IsPrimaryKeyType reports whether the type is a number whose canonical
// primitive is the primary key type (u64 unless configured otherwise).
func (t *TypeDescriptor) IsPrimaryKeyType() bool {
	return t.Kind == KindNumber && t.primaryKey
}

// ABIType renders the declared type the way the ABI document spells it:
// "string", the type name, "T[]" for arrays and "K,V{}" for maps.
func (t *TypeDescriptor) ABIType() string {
	switch t.Kind {
	case KindString:
		return "string"
	case KindArray:
		if len(t.TypeArguments) == 0 {
			return t.Name
		}
		return t.TypeArguments[0].OriginalType + "[]"
	case KindMap:
		args := make([]string, 0, len(t.TypeArguments))
		for _, arg := range t.TypeArguments {
			args = append(args, arg.OriginalType)
		}
		return strings.Join(args, ",") + "{}"
	default:
		return t.Name
	}
}

// ElementType returns the single argument of an array descriptor, or nil.
func (t *TypeDescriptor) ElementType() *TypeDescriptor {
	if t.Kind != KindArray || len(t.TypeArguments) != 1 {
		return nil
	}
	return t.TypeArguments[0]
}

func (t *TypeDescriptor) String() string {
	if t == nil {
		return "void"
	}
	s := t.OriginalType + " (" + t.Kind.String()
	if t.CanonicalName != "" && t.CanonicalName != t.OriginalType {
		s += " " + t.CanonicalName
	}
	return s + ")"
}

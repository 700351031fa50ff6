package abi

// PrimitiveType is a primitive type name of the declaration language
type PrimitiveType string

const (
	// Signed integers
	I8    PrimitiveType = "i8"
	I16   PrimitiveType = "i16"
	I32   PrimitiveType = "i32"
	I64   PrimitiveType = "i64"
	ISize PrimitiveType = "isize"

	// Unsigned integers
	U8    PrimitiveType = "u8"
	U16   PrimitiveType = "u16"
	U32   PrimitiveType = "u32"
	U64   PrimitiveType = "u64"
	USize PrimitiveType = "usize"

	// Floats
	F32 PrimitiveType = "f32"
	F64 PrimitiveType = "f64"

	// Other primitives
	Bool    PrimitiveType = "bool"
	Boolean PrimitiveType = "boolean"
	String  PrimitiveType = "string"
)

// codecHints maps a primitive name to the codec wrapper used on the wire.
var codecHints = map[PrimitiveType]string{
	I8:      "Int8",
	I16:     "Int16",
	I32:     "Int32",
	I64:     "Int64",
	ISize:   "Int32",
	U8:      "UInt8",
	U16:     "UInt16",
	U32:     "UInt32",
	U64:     "UInt64",
	USize:   "UInt32",
	F32:     "float32",
	F64:     "float64",
	Bool:    "Bool",
	Boolean: "Bool",
	String:  "String",
}

var defaultValues = map[PrimitiveType]string{
	I8:      "0",
	I16:     "0",
	I32:     "0",
	I64:     "0",
	ISize:   "0",
	U8:      "0",
	U16:     "0",
	U32:     "0",
	U64:     "0",
	USize:   "0",
	F32:     "0",
	F64:     "0",
	Bool:    "false",
	Boolean: "false",
	String:  "''",
}

// CodecHint returns the codec wrapper of a primitive, or "" for anything else.
func CodecHint(name string) string {
	return codecHints[PrimitiveType(name)]
}

// DefaultValue returns the literal used for an uninitialized primitive, or "".
func DefaultValue(name string) string {
	return defaultValues[PrimitiveType(name)]
}

// IsPrimitive checks if a name has an entry in the codec table
func IsPrimitive(name string) bool {
	_, ok := codecHints[PrimitiveType(name)]
	return ok
}

// IsNumericPrimitive checks if a primitive is encoded as a number (booleans included)
func IsNumericPrimitive(name string) bool {
	return IsPrimitive(name) && !IsString(name)
}

func IsString(name string) bool {
	return name == "string" || name == "String"
}

// IsArrayType reports whether a host type name denotes an array: "[]" for T[] or "Array".
func IsArrayType(name string) bool {
	return name == "[]" || name == "Array"
}

func IsMapType(name string) bool {
	return name == "Map"
}

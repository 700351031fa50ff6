package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a whole declaration-surface source file.
type File struct {
	Pos   lexer.Position
	Decls []*Decl `@@*`
}

type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident`
}

// Decl is one top-level or namespace-level declaration together with the
// decorators and modifiers written in front of it.
type Decl struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Decorators []*Decorator `@@*`
	Export     bool         `@"export"?`
	Declare    bool         `@"declare"?`
	Alias      *TypeAlias   `( @@`
	Class      *Class       `| @@`
	Interface  *Interface   `| @@`
	Namespace  *Namespace   `| @@`
	Function   *Function    `| @@ )`
}

// Decorator represents annotations like @contract, @deployer, @message(mutates = false)
type Decorator struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   PosIdent        `"@" @@`
	Args   []*DecoratorArg `[ "(" [ @@ { "," @@ } ] ")" ]`
}

// DecoratorArg is either a bare flag ("payable") or a key/value pair ("mutates = false").
type DecoratorArg struct {
	Pos   lexer.Position
	Key   string `@Ident`
	Value string `[ "=" @(String | Number | Ident) ]`
}

type TypeAlias struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   PosIdent `"type" @@ "="`
	Type   *Type    `@@ ";"`
}

type Class struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Abstract   bool         `@"abstract"?`
	Name       PosIdent     `"class" @@`
	Extends    *NamedType   `[ "extends" @@ ]`
	Implements []*NamedType `[ "implements" @@ { "," @@ } ]`
	Members    []*Member    `"{" @@* "}"`
}

type Interface struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Name    PosIdent     `"interface" @@`
	Extends []*NamedType `[ "extends" @@ { "," @@ } ]`
	Members []*Member    `"{" @@* "}"`
}

type Namespace struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   PosIdent `"namespace" @@ "{"`
	Decls  []*Decl  `@@* "}"`
}

type Function struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   PosIdent `"function" @@`
	Params []*Param `"(" [ @@ { "," @@ } ] ")"`
	Return *Type    `[ ":" @@ ] ";"`
}

// Member is a class or interface member: either a field or a method signature.
type Member struct {
	Pos        lexer.Position
	EndPos     lexer.Position
	Decorators []*Decorator `@@*`
	Modifiers  []string     `@( "public" | "private" | "protected" | "static" | "readonly" )*`
	Name       PosIdent     `@@`
	Method     *MethodSig   `( @@`
	Field      *FieldSig    `| @@ ) ";"?`
}

type MethodSig struct {
	Params []*Param `"(" [ @@ { "," @@ } ] ")"`
	Return *Type    `[ ":" @@ ]`
}

type FieldSig struct {
	Optional bool   `@"?"?`
	Type     *Type  `":" @@`
	Init     string `[ "=" @(String | Number | Ident) ]`
}

type Param struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Name     PosIdent `@@`
	Optional bool     `@"?"?`
	Type     *Type    `":" @@`
	Default  string   `[ "=" @(String | Number | Ident) ]`
}

// Type is either a function type "(a: T) => R" or a named type.
type Type struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Func   *FuncType  `  @@`
	Named  *NamedType `| @@`
}

type FuncType struct {
	Params []*Param `"(" [ @@ { "," @@ } ] ")" Arrow`
	Return *Type    `@@`
}

// NamedType covers "u64", "ns.Foo", "Map<K, V>", "Array<T>" and any number of
// trailing "[]" suffixes.
type NamedType struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string   `@Ident ( @"." @Ident )*`
	Args   []*Type  `[ "<" @@ { "," @@ } ">" ]`
	Dims   []string `( @"[" "]" )*`
}

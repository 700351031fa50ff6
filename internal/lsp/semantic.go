package lsp

import (
	"slices"
	"sort"

	"contractabi/internal/ast"
)

// SemanticTokenTypes is the legend of token types, in wire order.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"class",
	"interface",
	"function",
	"method",
	"parameter",
	"property",
	"decorator",
}

// SemanticTokenModifiers is the legend of token modifiers; bit i is entry i.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
	"static",
	"abstract",
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

// collectSemanticTokens walks every declaration of the program and returns
// its tokens in document order.
func collectSemanticTokens(program *ast.Program) []SemanticToken {
	var tokens []SemanticToken

	if program == nil {
		return tokens
	}

	for _, el := range program.TopLevel() {
		switch el := el.(type) {
		case *ast.ClassElement:
			tokens = append(tokens, walkClass(el.Decl)...)
		case *ast.FunctionElement:
			tokens = append(tokens, walkFunction(el.Decl)...)
		case *ast.AliasElement:
			tokens = append(tokens, walkAnnotations(el.Decl.Annotations)...)
			tokens = append(tokens, makeToken(el.Decl.Name.Pos, el.Decl.Name.Value, "type", "declaration")...)
			tokens = append(tokens, walkType(el.Decl.Type)...)
		case *ast.OtherElement:
			tokens = append(tokens, walkOther(el.Decl)...)
		}
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})
	return tokens
}

// encodeSemanticTokens applies the LSP delta-line, delta-start compression.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return data
}

func walkClass(c *ast.ClassDecl) []SemanticToken {
	tokens := walkAnnotations(c.Annotations)

	modifiers := []string{"declaration"}
	if c.Abstract {
		modifiers = append(modifiers, "abstract")
	}
	tokens = append(tokens, makeToken(c.Name.Pos, c.Name.Value, "class", modifiers...)...)

	tokens = append(tokens, walkType(c.Extends)...)
	for _, impl := range c.Implements {
		tokens = append(tokens, walkType(impl)...)
	}
	tokens = append(tokens, walkMembers(c.Fields, c.Methods)...)
	return tokens
}

func walkOther(decl ast.Declaration) []SemanticToken {
	switch d := decl.(type) {
	case *ast.InterfaceDecl:
		tokens := walkAnnotations(d.Annotations)
		tokens = append(tokens, makeToken(d.Name.Pos, d.Name.Value, "interface", "declaration")...)
		for _, ext := range d.Extends {
			tokens = append(tokens, walkType(ext)...)
		}
		return append(tokens, walkMembers(d.Fields, d.Methods)...)
	case *ast.NamespaceDecl:
		tokens := walkAnnotations(d.Annotations)
		return append(tokens, makeToken(d.Name.Pos, d.Name.Value, "namespace", "declaration")...)
	}
	return nil
}

func walkMembers(fields []*ast.FieldDecl, methods []*ast.FunctionDecl) []SemanticToken {
	var tokens []SemanticToken

	for _, f := range fields {
		tokens = append(tokens, walkAnnotations(f.Annotations)...)
		modifiers := append([]string{"declaration"}, memberModifiers(f.Modifiers)...)
		tokens = append(tokens, makeToken(f.Name.Pos, f.Name.Value, "property", modifiers...)...)
		tokens = append(tokens, walkType(f.Type)...)
	}
	for _, m := range methods {
		tokens = append(tokens, walkFunction(m)...)
	}

	return tokens
}

func walkFunction(f *ast.FunctionDecl) []SemanticToken {
	tokens := walkAnnotations(f.Annotations)

	kind := "function"
	if f.Method {
		kind = "method"
	}
	modifiers := append([]string{"declaration"}, memberModifiers(f.Modifiers)...)
	tokens = append(tokens, makeToken(f.Name.Pos, f.Name.Value, kind, modifiers...)...)

	tokens = append(tokens, walkParams(f.Params)...)
	return append(tokens, walkType(f.Return)...)
}

func walkParams(params []*ast.Param) []SemanticToken {
	var tokens []SemanticToken
	for _, p := range params {
		tokens = append(tokens, makeToken(p.Name.Pos, p.Name.Value, "parameter", "declaration")...)
		tokens = append(tokens, walkType(p.Type)...)
	}
	return tokens
}

func walkAnnotations(annotations []*ast.Annotation) []SemanticToken {
	var tokens []SemanticToken
	for _, a := range annotations {
		// The token covers the '@' and the name, not the argument list.
		tokens = append(tokens, makeToken(a.Pos, "@"+a.Name, "decorator")...)
	}
	return tokens
}

func walkType(t *ast.TypeExpr) []SemanticToken {
	var tokens []SemanticToken

	if t == nil {
		return tokens
	}

	if t.Func != nil {
		tokens = append(tokens, walkParams(t.Func.Params)...)
		return append(tokens, walkType(t.Func.Return)...)
	}

	// The bracket array form shares its position with the element type.
	if t.Name != "[]" {
		tokens = append(tokens, makeToken(t.Pos, t.Name, "type")...)
	}
	for _, arg := range t.Args {
		tokens = append(tokens, walkType(arg)...)
	}

	return tokens
}

func memberModifiers(modifiers []string) []string {
	var out []string
	for _, m := range modifiers {
		if slices.Contains(SemanticTokenModifiers, m) {
			out = append(out, m)
		}
	}
	return out
}

// makeToken creates a semantic token for the text starting at pos
func makeToken(pos ast.Position, value, tokenType string, modifiers ...string) []SemanticToken {
	if value == "" || pos.Line == 0 {
		return nil
	}

	mask := 0
	for _, m := range modifiers {
		mask |= 1 << indexOf(m, SemanticTokenModifiers)
	}

	return []SemanticToken{{
		Line:           uint32(pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(len(value)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: mask,
	}}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	if i := slices.Index(list, target); i >= 0 {
		return i
	}
	return 0
}

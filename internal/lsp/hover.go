package lsp

import (
	"fmt"
	"sort"
	"strings"

	"contractabi/internal/abi"
	"contractabi/internal/ast"
)

// hoverResult is the markdown shown for the identifier spanning [Start, End).
type hoverResult struct {
	Value string
	Start ast.Position
	End   ast.Position
}

// hoverAt describes the declaration under the 1-based (line, column). The
// model may be nil when assembly failed; only declaration shapes are shown then.
func hoverAt(program *ast.Program, model *abi.ContractModel, line, column int) (*hoverResult, bool) {
	if program == nil {
		return nil, false
	}

	for _, el := range program.TopLevel() {
		switch el := el.(type) {
		case *ast.ClassElement:
			if h, ok := hoverClass(el, model, line, column); ok {
				return h, true
			}
		case *ast.AliasElement:
			if within(el.Decl.Name, line, column) {
				text := fmt.Sprintf("(alias) %s = %s", el.Decl.Name.Value, el.Decl.Type)
				return identHover(el.Decl.Name, codeBlock(text)), true
			}
		}
	}
	return nil, false
}

func hoverClass(class *ast.ClassElement, model *abi.ContractModel, line, column int) (*hoverResult, bool) {
	decl := class.Decl

	if within(decl.Name, line, column) {
		return identHover(decl.Name, describeClass(class, model)), true
	}

	var storage *abi.StorageDescriptor
	if model != nil {
		storage = model.Storage(class.Name())
	}
	for _, f := range decl.Fields {
		if !within(f.Name, line, column) {
			continue
		}
		text := codeBlock(fmt.Sprintf("(field) %s.%s: %s", class.Name(), f.Name.Value, f.Type))
		if storage != nil {
			if fd := storage.Field(f.Name.Value); fd != nil {
				text += "\n\n" + describeField(fd)
			}
		}
		return identHover(f.Name, text), true
	}

	for _, m := range decl.Methods {
		fn := callable(model, m)

		if within(m.Name, line, column) {
			if fn == nil {
				return identHover(m.Name, codeBlock(fmt.Sprintf("(method) %s", m.Name.Value))), true
			}
			return identHover(m.Name, describeCallable(fn)), true
		}

		for i, p := range m.Params {
			if !within(p.Name, line, column) {
				continue
			}
			text := codeBlock(fmt.Sprintf("(parameter) %s: %s", p.Name.Value, p.Type))
			if fn != nil && i < len(fn.Parameters) {
				text += "\n\n" + describeType(fn.Parameters[i].Type)
			}
			return identHover(p.Name, text), true
		}
	}

	return nil, false
}

// callable finds the descriptor built for a method, matched on the name position.
func callable(model *abi.ContractModel, m *ast.FunctionDecl) *abi.FunctionDescriptor {
	if model == nil {
		return nil
	}
	for _, fn := range model.Callables() {
		if fn.Pos == m.Name.Pos {
			return fn
		}
	}
	return nil
}

func describeClass(class *ast.ClassElement, model *abi.ContractModel) string {
	kind := "class"
	var details []string

	if model != nil {
		if c := model.Contract; c != nil && c.Pos == class.Decl.Name.Pos {
			kind = "contract"
			details = append(details,
				fmt.Sprintf("- deployers: %d", len(c.Deployers)),
				fmt.Sprintf("- messages: %d", len(c.Messages)))
			if len(c.Interfaces) > 0 {
				details = append(details, "- implements: "+strings.Join(c.Interfaces, ", "))
			}
		}
		if s := model.Storage(class.Name()); s != nil {
			if kind == "class" {
				kind = "storage"
			}
			details = append(details, fmt.Sprintf("- storage fields: %d", len(s.Fields)))
		}
	}

	text := codeBlock(fmt.Sprintf("(%s) %s", kind, class.Name()))
	if len(details) > 0 {
		text += "\n\n" + strings.Join(details, "\n")
	}
	return text
}

func describeCallable(fn *abi.FunctionDescriptor) string {
	lines := []string{codeBlock(fn.String())}
	if len(fn.Attributes) > 0 {
		attrs := make([]string, 0, len(fn.Attributes))
		for _, a := range fn.Attributes {
			if a.Value == "" {
				attrs = append(attrs, a.Key)
			} else {
				attrs = append(attrs, a.Key+" = "+a.Value)
			}
		}
		sort.Strings(attrs)
		lines = append(lines, "attributes: "+strings.Join(attrs, ", "))
	}
	for _, p := range fn.Parameters {
		lines = append(lines, fmt.Sprintf("- `%s` type #%d", p.Name, p.Type.Index))
	}
	if fn.HasReturnValue {
		lines = append(lines, fmt.Sprintf("- returns type #%d", fn.ReturnType.Index))
	}
	return strings.Join(lines, "\n\n")
}

func describeField(f *abi.FieldDescriptor) string {
	lines := []string{describeType(f.Type), "- storage key: `" + f.StorageKey + "`"}
	return strings.Join(lines, "\n")
}

func describeType(t *abi.TypeDescriptor) string {
	lines := []string{
		"- kind: " + t.Kind.String(),
		"- abi type: `" + t.ABIType() + "`",
	}
	if t.CanonicalName != "" && t.CanonicalName != t.OriginalType {
		lines = append(lines, "- resolves to: `"+t.CanonicalName+"`")
	}
	if t.CodecHint != "" {
		lines = append(lines, "- codec: "+t.CodecHint)
	}
	if t.DefaultValue != "" {
		lines = append(lines, "- default: `"+t.DefaultValue+"`")
	}
	if t.IsPrimaryKeyType() {
		lines = append(lines, "- primary key type")
	}
	if t.Index > 0 {
		lines = append(lines, fmt.Sprintf("- type index: %d", t.Index))
	}
	return strings.Join(lines, "\n")
}

func codeBlock(text string) string {
	return "```typescript\n" + text + "\n```"
}

func identHover(id ast.Ident, value string) *hoverResult {
	return &hoverResult{Value: value, Start: id.Pos, End: identEnd(id)}
}

func within(id ast.Ident, line, column int) bool {
	return id.Pos.Contains(identEnd(id), line, column)
}

// identEnd is the position just past the identifier text. Identifiers never
// span lines.
func identEnd(id ast.Ident) ast.Position {
	end := id.Pos
	end.Column += len(id.Value)
	end.Offset += len(id.Value)
	return end
}

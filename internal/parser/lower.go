package parser

import (
	"strconv"
	"strings"

	"contractabi/grammar"
	"contractabi/internal/ast"

	"github.com/alecthomas/participle/v2/lexer"
)

// lowerer turns the participle parse tree into declarations registered in a Program.
type lowerer struct {
	filename string
	program  *ast.Program
	errors   []ParseError
}

func newLowerer(filename string) *lowerer {
	return &lowerer{
		filename: filename,
		program:  ast.NewProgram(filename),
	}
}

func (l *lowerer) makePos(pos lexer.Position) ast.Position {
	return ast.Position{
		Filename: l.filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}

func (l *lowerer) ident(id grammar.PosIdent) ast.Ident {
	return ast.Ident{Pos: l.makePos(id.Pos), EndPos: l.makePos(id.EndPos), Value: id.Value}
}

func (l *lowerer) decls(decls []*grammar.Decl, parent ast.ElementID) {
	for _, d := range decls {
		l.decl(d, parent)
	}
}

func (l *lowerer) decl(d *grammar.Decl, parent ast.ElementID) {
	annotations := l.annotations(d.Decorators)

	var err error
	switch {
	case d.Alias != nil:
		_, err = l.program.AddAlias(&ast.AliasDecl{
			Pos:         l.makePos(d.Pos),
			EndPos:      l.makePos(d.EndPos),
			Annotations: annotations,
			Name:        l.ident(d.Alias.Name),
			Type:        l.typeExpr(d.Alias.Type),
		}, parent)

	case d.Class != nil:
		err = l.class(d, annotations, parent)

	case d.Interface != nil:
		decl := &ast.InterfaceDecl{
			Pos:         l.makePos(d.Pos),
			EndPos:      l.makePos(d.EndPos),
			Annotations: annotations,
			Name:        l.ident(d.Interface.Name),
		}
		for _, ext := range d.Interface.Extends {
			decl.Extends = append(decl.Extends, l.namedType(ext))
		}
		decl.Fields, decl.Methods = l.members(d.Interface.Members)
		_, err = l.program.AddInterface(decl, parent)

	case d.Namespace != nil:
		var ns *ast.OtherElement
		ns, err = l.program.AddNamespace(&ast.NamespaceDecl{
			Pos:         l.makePos(d.Pos),
			EndPos:      l.makePos(d.EndPos),
			Annotations: annotations,
			Name:        l.ident(d.Namespace.Name),
		}, parent)
		if err == nil {
			l.decls(d.Namespace.Decls, ns.ID())
		}

	case d.Function != nil:
		_, err = l.program.AddFunction(&ast.FunctionDecl{
			Pos:         l.makePos(d.Pos),
			EndPos:      l.makePos(d.EndPos),
			Annotations: annotations,
			Name:        l.ident(d.Function.Name),
			Params:      l.params(d.Function.Params),
			Return:      l.typeExpr(d.Function.Return),
		}, parent)
	}

	if err != nil {
		l.linkError(err)
	}
}

func (l *lowerer) class(d *grammar.Decl, annotations []*ast.Annotation, parent ast.ElementID) error {
	c := d.Class
	decl := &ast.ClassDecl{
		Pos:         l.makePos(d.Pos),
		EndPos:      l.makePos(d.EndPos),
		Annotations: annotations,
		Exported:    d.Export,
		Abstract:    c.Abstract,
		Name:        l.ident(c.Name),
	}
	if c.Extends != nil {
		decl.Extends = l.namedType(c.Extends)
	}
	for _, impl := range c.Implements {
		decl.Implements = append(decl.Implements, l.namedType(impl))
	}
	decl.Fields, decl.Methods = l.members(c.Members)

	class, err := l.program.AddClass(decl, parent)
	if err != nil {
		return err
	}
	for _, method := range decl.Methods {
		if _, err := l.program.AddFunction(method, class.ID()); err != nil {
			l.linkError(err)
		}
	}
	return nil
}

func (l *lowerer) members(members []*grammar.Member) ([]*ast.FieldDecl, []*ast.FunctionDecl) {
	var fields []*ast.FieldDecl
	var methods []*ast.FunctionDecl

	for _, m := range members {
		annotations := l.annotations(m.Decorators)
		switch {
		case m.Method != nil:
			methods = append(methods, &ast.FunctionDecl{
				Pos:         l.makePos(m.Pos),
				EndPos:      l.makePos(m.EndPos),
				Annotations: annotations,
				Modifiers:   m.Modifiers,
				Name:        l.ident(m.Name),
				Params:      l.params(m.Method.Params),
				Return:      l.typeExpr(m.Method.Return),
				Method:      true,
			})
		case m.Field != nil:
			fields = append(fields, &ast.FieldDecl{
				Pos:         l.makePos(m.Pos),
				EndPos:      l.makePos(m.EndPos),
				Annotations: annotations,
				Modifiers:   m.Modifiers,
				Name:        l.ident(m.Name),
				Type:        l.typeExpr(m.Field.Type),
				Optional:    m.Field.Optional,
				Init:        m.Field.Init,
			})
		}
	}

	return fields, methods
}

func (l *lowerer) annotations(decorators []*grammar.Decorator) []*ast.Annotation {
	if len(decorators) == 0 {
		return nil
	}

	annotations := make([]*ast.Annotation, 0, len(decorators))
	for _, d := range decorators {
		a := &ast.Annotation{
			Pos:    l.makePos(d.Pos),
			EndPos: l.makePos(d.EndPos),
			Kind:   ast.AnnotationKindOf(d.Name.Value),
			Name:   d.Name.Value,
		}
		for _, arg := range d.Args {
			a.Args = append(a.Args, ast.AnnotationArg{Key: arg.Key, Value: unquote(arg.Value)})
		}
		annotations = append(annotations, a)
	}
	return annotations
}

func (l *lowerer) params(params []*grammar.Param) []*ast.Param {
	out := make([]*ast.Param, 0, len(params))
	for _, p := range params {
		out = append(out, &ast.Param{
			Pos:      l.makePos(p.Pos),
			EndPos:   l.makePos(p.EndPos),
			Name:     l.ident(p.Name),
			Type:     l.typeExpr(p.Type),
			Optional: p.Optional,
			Default:  unquote(p.Default),
		})
	}
	return out
}

func (l *lowerer) typeExpr(t *grammar.Type) *ast.TypeExpr {
	if t == nil {
		return nil
	}
	if t.Func != nil {
		return &ast.TypeExpr{
			Pos:    l.makePos(t.Pos),
			EndPos: l.makePos(t.EndPos),
			Text:   t.String(),
			Func: &ast.FuncSignature{
				Params: l.params(t.Func.Params),
				Return: l.typeExpr(t.Func.Return),
			},
		}
	}
	return l.namedType(t.Named)
}

// namedType lowers "T[][]" into nested "[]" expressions so that every array
// level carries exactly one argument, the same shape "Array<T>" produces.
func (l *lowerer) namedType(n *grammar.NamedType) *ast.TypeExpr {
	expr := &ast.TypeExpr{
		Pos:    l.makePos(n.Pos),
		EndPos: l.makePos(n.EndPos),
		Name:   n.Name,
		Text:   n.BaseString(),
	}
	for _, arg := range n.Args {
		expr.Args = append(expr.Args, l.typeExpr(arg))
	}
	for range n.Dims {
		expr = &ast.TypeExpr{
			Pos:    expr.Pos,
			EndPos: expr.EndPos,
			Name:   "[]",
			Args:   []*ast.TypeExpr{expr},
			Text:   expr.Text + "[]",
		}
	}
	return expr
}

func unquote(s string) string {
	if len(s) >= 2 && (strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "'")) {
		if v, err := strconv.Unquote(s); err == nil {
			return v
		}
		return s[1 : len(s)-1]
	}
	return s
}

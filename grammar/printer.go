package grammar

import (
	"strings"
)

// String renders the type with normalized spacing. The result is used as the
// original-type text of a use site.
func (t *Type) String() string {
	if t == nil {
		return ""
	}
	if t.Func != nil {
		return t.Func.String()
	}
	if t.Named != nil {
		return t.Named.String()
	}
	return ""
}

func (f *FuncType) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") => ")
	b.WriteString(f.Return.String())
	return b.String()
}

func (n *NamedType) String() string {
	return n.BaseString() + strings.Repeat("[]", len(n.Dims))
}

// BaseString renders the named type without its array suffixes.
func (n *NamedType) BaseString() string {
	var b strings.Builder
	b.WriteString(n.Name)
	if len(n.Args) > 0 {
		b.WriteString("<")
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.String())
		}
		b.WriteString(">")
	}
	return b.String()
}

func (p *Param) String() string {
	var b strings.Builder
	b.WriteString(p.Name.Value)
	if p.Optional {
		b.WriteString("?")
	}
	b.WriteString(": ")
	b.WriteString(p.Type.String())
	return b.String()
}

func (d *Decorator) String() string {
	if len(d.Args) == 0 {
		return "@" + d.Name.Value
	}
	args := make([]string, 0, len(d.Args))
	for _, arg := range d.Args {
		if arg.Value == "" {
			args = append(args, arg.Key)
			continue
		}
		args = append(args, arg.Key+" = "+arg.Value)
	}
	return "@" + d.Name.Value + "(" + strings.Join(args, ", ") + ")"
}

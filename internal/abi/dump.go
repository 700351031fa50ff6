package abi

import (
	"gopkg.in/yaml.v3"
)

// The dump types are a human-readable view of a model, not the ABI document.

type typeDump struct {
	Index        int        `yaml:"index"`
	Original     string     `yaml:"original"`
	Kind         string     `yaml:"kind"`
	Canonical    string     `yaml:"canonical,omitempty"`
	ABIType      string     `yaml:"abi_type"`
	Codec        string     `yaml:"codec,omitempty"`
	Default      string     `yaml:"default,omitempty"`
	PrimaryKey   bool       `yaml:"primary_key,omitempty"`
	Serializable bool       `yaml:"serializable,omitempty"`
	Returnable   bool       `yaml:"returnable,omitempty"`
	Arguments    []typeDump `yaml:"arguments,omitempty"`
}

type paramDump struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Ty   int    `yaml:"ty"`
}

type functionDump struct {
	Name       string            `yaml:"name"`
	Params     []paramDump       `yaml:"params"`
	Returns    string            `yaml:"returns,omitempty"`
	ReturnTy   int               `yaml:"return_ty,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

type fieldDump struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Ty   int    `yaml:"ty"`
	Key  string `yaml:"key"`
}

type storageDump struct {
	Class      string      `yaml:"class"`
	Interfaces []string    `yaml:"interfaces,omitempty"`
	Fields     []fieldDump `yaml:"fields"`
}

type contractDump struct {
	Name       string         `yaml:"name"`
	Interfaces []string       `yaml:"interfaces,omitempty"`
	Deployers  []functionDump `yaml:"deployers"`
	Messages   []functionDump `yaml:"messages"`
}

type modelDump struct {
	Contract *contractDump `yaml:"contract,omitempty"`
	Storages []storageDump `yaml:"storages,omitempty"`
	Types    []typeDump    `yaml:"types"`
	Warnings []string      `yaml:"warnings,omitempty"`
}

// Dump renders the model as YAML.
func Dump(m *ContractModel) ([]byte, error) {
	return yaml.Marshal(dumpModel(m))
}

func dumpModel(m *ContractModel) modelDump {
	out := modelDump{Types: []typeDump{}}

	if c := m.Contract; c != nil {
		out.Contract = &contractDump{
			Name:       c.Name,
			Interfaces: c.Interfaces,
			Deployers:  dumpFunctions(c.Deployers),
			Messages:   dumpFunctions(c.Messages),
		}
	}

	for _, s := range m.Storages {
		sd := storageDump{Class: s.ClassName, Interfaces: s.Interfaces, Fields: []fieldDump{}}
		for _, f := range s.Fields {
			fd := fieldDump{Name: f.Name, Type: f.Type.OriginalType, Key: f.StorageKey}
			if f.Layout != nil {
				fd.Ty = f.Layout.TypeIndex
			}
			sd.Fields = append(sd.Fields, fd)
		}
		out.Storages = append(out.Storages, sd)
	}

	for _, t := range m.Types.Entries() {
		out.Types = append(out.Types, dumpType(t))
	}

	for _, w := range m.Warnings {
		out.Warnings = append(out.Warnings, w.Error())
	}
	return out
}

func dumpFunctions(fns []*FunctionDescriptor) []functionDump {
	out := []functionDump{}
	for _, fn := range fns {
		fd := functionDump{Name: fn.Name, Params: []paramDump{}}
		for _, p := range fn.Parameters {
			fd.Params = append(fd.Params, paramDump{Name: p.Name, Type: p.Type.OriginalType, Ty: p.Type.Index})
		}
		if fn.HasReturnValue {
			fd.Returns = fn.ReturnType.OriginalType
			fd.ReturnTy = fn.ReturnType.Index
		}
		if len(fn.Attributes) > 0 {
			fd.Attributes = make(map[string]string, len(fn.Attributes))
			for _, a := range fn.Attributes {
				fd.Attributes[a.Key] = a.Value
			}
		}
		out = append(out, fd)
	}
	return out
}

func dumpType(t *TypeDescriptor) typeDump {
	td := typeDump{
		Index:        t.Index,
		Original:     t.OriginalType,
		Kind:         t.Kind.String(),
		ABIType:      t.ABIType(),
		Codec:        t.CodecHint,
		Default:      t.DefaultValue,
		PrimaryKey:   t.IsPrimaryKeyType(),
		Serializable: t.Serializable,
		Returnable:   t.Returnable,
	}
	if t.CanonicalName != t.OriginalType {
		td.Canonical = t.CanonicalName
	}
	for _, arg := range t.TypeArguments {
		td.Arguments = append(td.Arguments, dumpType(arg))
	}
	return td
}

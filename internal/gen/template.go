// SPDX-License-Identifier: Apache-2.0

package gen

import (
	"strings"
	"text/template"

	"gopkg.widl.org/bindgen.go/internal/ast"
)

// Templater renders the native source text for one validated interface. The
// default implementation emits a C++ delegation skeleton; alternate backends
// plug in here.
type Templater interface {
	Render(iface *ast.Interface, entry Entry) (string, error)
}

var cppPrimitives = map[string]string{
	"Void":               "void",
	"Boolean":            "bool",
	"Byte":               "int8_t",
	"Octet":              "uint8_t",
	"Short":              "int16_t",
	"UnsignedShort":      "uint16_t",
	"Long":               "int32_t",
	"UnsignedLong":       "uint32_t",
	"LongLong":           "int64_t",
	"UnsignedLongLong":   "uint64_t",
	"Float":              "float",
	"UnrestrictedFloat":  "float",
	"Double":             "double",
	"UnrestrictedDouble": "double",
	"String":             "std::string",
	"Object":             "ScriptObject",
	"Any":                "ScriptValue",
}

func cppType(t *ast.Type) string {
	switch t.Kind {
	case ast.TypeKindPrimitive:
		if mapped, ok := cppPrimitives[t.Name]; ok {
			return mapped
		}
		return t.Name
	case ast.TypeKindReference:
		return t.Name + "*"
	case ast.TypeKindNullable:
		return cppType(t.Inner)
	case ast.TypeKindSequence:
		return "std::vector<" + cppType(t.Inner) + ">"
	case ast.TypeKindUnion:
		return "ScriptValue"
	default:
		return "void"
	}
}

func cppArgs(args []*ast.Argument) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		part := cppType(arg.Type) + " " + arg.Name
		if arg.Variadic {
			part = "const std::vector<" + cppType(arg.Type) + ">& " + arg.Name
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

const bindingTemplate = `// This file is generated. Do not edit.

#include "bindings/{{ .Stem }}.h"

namespace bindings {
{{ range .Constants }}
const {{ cpptype .Type }} {{ $.Class }}::{{ .Name.Name }} = {{ .Value }};
{{ end }}{{ range .Attributes }}
{{ cpptype .Type }} {{ $.Class }}::{{ .Name.Name }}() const {
    return impl_->{{ .Name.Name }}();
}
{{ if not .Readonly }}
void {{ $.Class }}::set_{{ .Name.Name }}({{ cpptype .Type }} value) {
    impl_->set_{{ .Name.Name }}(value);
}
{{ end }}{{ end }}{{ range .Operations }}{{ $op := . }}{{ range .Signatures }}
{{ cpptype .Return }} {{ $.Class }}::{{ $op.Name.Name }}({{ cppargs .Args }}) {
    {{ if not (isvoid .Return) }}return {{ end }}impl_->{{ $op.Name.Name }}({{ argnames .Args }});
}
{{ end }}{{ end }}
}  // namespace bindings
`

type templateData struct {
	Interface  *ast.Interface
	Class      string
	Stem       string
	Constants  []*ast.Constant
	Attributes []*ast.Attribute
	Operations []*ast.Operation
}

type templater struct {
	tmpl *template.Template
}

// NewTemplater returns the default C++ skeleton renderer.
func NewTemplater() Templater {
	funcs := template.FuncMap{
		"cpptype": cppType,
		"cppargs": cppArgs,
		"isvoid": func(t *ast.Type) bool {
			return t.Kind == ast.TypeKindPrimitive && t.Name == "Void"
		},
		"argnames": func(args []*ast.Argument) string {
			names := make([]string, 0, len(args))
			for _, arg := range args {
				names = append(names, arg.Name)
			}
			return strings.Join(names, ", ")
		},
	}
	return &templater{
		tmpl: template.Must(template.New("binding").Funcs(funcs).Parse(bindingTemplate)),
	}
}

func (t *templater) Render(iface *ast.Interface, entry Entry) (string, error) {
	data := &templateData{
		Interface: iface,
		Class:     entry.ImplementedAs,
		Stem:      entry.OutputName,
	}
	if data.Class == "" {
		data.Class = iface.Name.Name + "Binding"
	}
	if data.Stem == "" {
		data.Stem = iface.Name.Name
	}
	for _, m := range iface.Members {
		switch member := m.(type) {
		case *ast.Constant:
			data.Constants = append(data.Constants, member)
		case *ast.Attribute:
			data.Attributes = append(data.Attributes, member)
		case *ast.Operation:
			data.Operations = append(data.Operations, member)
		}
	}
	var b strings.Builder
	if err := t.tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
